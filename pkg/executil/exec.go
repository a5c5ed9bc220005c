// Package executil runs external commands behind an interface so callers can
// swap in a recorder during tests.
package executil

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Command describes one process invocation.
type Command struct {
	Name  string
	Args  []string
	Dir   string    // working directory; empty uses the current one
	Env   []string  // appended to the current environment
	Stdin io.Reader // optional
}

// Shell returns a command that runs script with sh -c.
func Shell(script string) Command {
	return Command{Name: "sh", Args: []string{"-c", script}}
}

// Executor runs commands.
type Executor interface {
	// Run executes cmd and returns its combined output.
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// RealExecutor calls actual commands.
type RealExecutor struct{}

// Run executes cmd and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	out, err := c.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("exec %s: %w", cmd.Name, err)
	}
	return out, nil
}
