package textfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("read missing", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "history.txt"))

		blob, ok, err := s.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if ok || blob != "" {
			t.Errorf("got (%q, %v), want empty and not found", blob, ok)
		}
	})

	t.Run("write then read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "history.txt")
		s := New(path)

		if err := s.Write(ctx, "W3tdXQ=="); err != nil {
			t.Fatalf("Write: %v", err)
		}

		blob, ok, err := s.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if !ok || blob != "W3tdXQ==" {
			t.Errorf("got (%q, %v), want stored blob", blob, ok)
		}

		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Errorf("temp file left behind: %v", err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "history.txt"))

		if err := s.Write(ctx, "first"); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := s.Write(ctx, "second"); err != nil {
			t.Fatalf("Write: %v", err)
		}

		blob, _, err := s.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if blob != "second" {
			t.Errorf("got %q, want %q", blob, "second")
		}
	})

	t.Run("remove", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "history.txt"))

		if err := s.Remove(ctx); err != nil {
			t.Fatalf("Remove on empty slot: %v", err)
		}
		if err := s.Write(ctx, "x"); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := s.Remove(ctx); err != nil {
			t.Fatalf("Remove: %v", err)
		}

		_, ok, err := s.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if ok {
			t.Error("slot still set after Remove")
		}
	})
}
