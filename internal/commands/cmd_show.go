package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/tonebook/internal/render"
)

type ShowCmd struct {
	flags  *Flags
	format string
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show a saved filter",
		UsageText: "tonebook show [options] <id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, markdown, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one record id")
	}

	rec, err := cmd.flags.Service.Get(ctx, c.Args().First())
	if err != nil {
		return err
	}

	out := c.Root().Writer
	md := render.Markdown(rec, time.Now())

	switch cmd.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "markdown":
		_, err := fmt.Fprint(out, md)
		return err
	default:
		_, err := fmt.Fprintln(out, render.Terminal(md, terminalWidth()))
		return err
	}
}

// terminalWidth returns the stdout width capped at 100 columns.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return min(w, 100)
}
