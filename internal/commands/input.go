package commands

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// inputSource reads command input from a file or from stdin.
type inputSource struct {
	file  string
	stdin io.Reader
	// isTerminal reports whether stdin is interactive.
	isTerminal func() bool
}

func stdinSource(file string) inputSource {
	return inputSource{
		file:       file,
		stdin:      os.Stdin,
		isTerminal: stdinIsTerminal,
	}
}

// read returns the whole input. Reading from an interactive stdin is refused
// so the command never blocks waiting for a paste.
func (s inputSource) read() ([]byte, error) {
	if s.file != "" && s.file != "-" {
		data, err := os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}

	if s.file == "" && s.isTerminal() {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	}

	data, err := io.ReadAll(s.stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
