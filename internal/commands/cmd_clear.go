package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/printer"
	"github.com/hay-kot/tonebook/internal/styles"
)

type ClearCmd struct {
	flags *Flags
	yes   bool
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags) *ClearCmd {
	return &ClearCmd{flags: flags}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "clear",
		Usage:       "Delete every saved filter",
		UsageText:   "tonebook clear [--yes]",
		Description: "Removes the whole history. Run 'tonebook export' first to keep a copy.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	history := cmd.flags.Service.History()

	count := len(history.List(ctx))
	if count == 0 {
		p.Infof("History is already empty")
		return nil
	}

	if !cmd.yes {
		if !stdinIsTerminal() {
			return fmt.Errorf("refusing to clear without confirmation; pass --yes")
		}

		confirmed := false
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete all %d saved filters?", count)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed),
			),
		).WithTheme(styles.FormTheme()).Run()
		if err != nil {
			return fmt.Errorf("confirm clear: %w", err)
		}
		if !confirmed {
			p.Infof("Cancelled")
			return nil
		}
	}

	if err := history.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	p.Successf("Deleted %d saved filter(s)", count)
	return nil
}
