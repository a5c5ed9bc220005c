package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInputSource_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")
	if err := os.WriteFile(path, []byte(`{"parameters":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		src     inputSource
		want    string
		wantErr string
	}{
		{
			name: "file",
			src:  inputSource{file: path, isTerminal: func() bool { return true }},
			want: `{"parameters":{}}`,
		},
		{
			name:    "missing file",
			src:     inputSource{file: filepath.Join(dir, "nope.json"), isTerminal: func() bool { return false }},
			wantErr: "read file",
		},
		{
			name: "piped stdin",
			src:  inputSource{stdin: strings.NewReader("[]"), isTerminal: func() bool { return false }},
			want: "[]",
		},
		{
			name:    "interactive stdin",
			src:     inputSource{stdin: strings.NewReader("[]"), isTerminal: func() bool { return true }},
			wantErr: "stdin is a terminal",
		},
		{
			name: "explicit dash reads stdin",
			src:  inputSource{file: "-", stdin: strings.NewReader("x"), isTerminal: func() bool { return true }},
			want: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.src.read()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("got error %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
