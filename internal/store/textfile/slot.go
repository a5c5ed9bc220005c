// Package textfile provides a history slot backed by a single file on disk.
package textfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// Slot stores the history blob as the entire content of one file. Writes are
// atomic (temp file then rename) and guarded by an flock on a sibling lock
// file so concurrent processes never observe a partial blob.
type Slot struct {
	path string
	mu   sync.RWMutex
}

// New creates a Slot at path. The file and its directory are created on the
// first write.
func New(path string) *Slot {
	return &Slot{path: path}
}

// Path returns the file the slot reads and writes.
func (s *Slot) Path() string {
	return s.path
}

func (s *Slot) Read(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		data  []byte
		found bool
	)
	err := s.withFileLock(syscall.LOCK_SH, func() error {
		b, err := os.ReadFile(s.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("read history file: %w", err)
		}
		data, found = b, true
		return nil
	})
	if err != nil {
		return "", false, err
	}

	return string(data), found, nil
}

func (s *Slot) Write(_ context.Context, blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withFileLock(syscall.LOCK_EX, func() error {
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, []byte(blob), 0o644); err != nil {
			return fmt.Errorf("write history temp file: %w", err)
		}

		if err := os.Rename(tmp, s.path); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename history file: %w", err)
		}
		return nil
	})
}

func (s *Slot) Remove(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withFileLock(syscall.LOCK_EX, func() error {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove history file: %w", err)
		}
		return nil
	})
}

func (s *Slot) lockPath() string {
	return s.path + ".lock"
}

// withFileLock runs fn while holding an flock of lockType on the lock file.
func (s *Slot) withFileLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := syscall.Flock(int(f.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn()
}
