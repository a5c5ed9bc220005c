package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/printer"
	"github.com/hay-kot/tonebook/internal/tonebook"
)

type PruneCmd struct {
	flags     *Flags
	keep      int
	olderThan string
}

// NewPruneCmd creates a new prune command
func NewPruneCmd(flags *Flags) *PruneCmd {
	return &PruneCmd{flags: flags}
}

// Register adds the prune command to the application
func (cmd *PruneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prune",
		Usage:     "Remove old filters from history",
		UsageText: "tonebook prune [--keep N] [--older-than DURATION]",
		Description: `Removes filters to make room for new ones.

--keep keeps only the newest N filters. --older-than removes filters saved
more than the given duration ago (for example 720h). At least one is required;
when both are set a filter must pass both to survive.`,
		Action: cmd.run,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "keep",
				Aliases:     []string{"k"},
				Usage:       "number of newest filters to keep",
				Destination: &cmd.keep,
			},
			&cli.StringFlag{
				Name:        "older-than",
				Usage:       "remove filters saved longer ago than this (e.g. 720h)",
				Destination: &cmd.olderThan,
			},
		},
	})

	return app
}

func (cmd *PruneCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	var olderThan time.Duration
	if cmd.olderThan != "" {
		d, err := time.ParseDuration(cmd.olderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than: %w", err)
		}
		olderThan = d
	}

	count, err := cmd.flags.Service.Prune(ctx, tonebook.PruneOptions{
		Keep:      cmd.keep,
		OlderThan: olderThan,
	})
	if err != nil {
		return err
	}

	if count == 0 {
		p.Infof("No filters to prune")
		return nil
	}

	p.Successf("Pruned %d filter(s)", count)

	return nil
}
