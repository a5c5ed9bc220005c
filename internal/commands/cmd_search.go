package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type SearchCmd struct {
	flags  *Flags
	format string
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Find saved filters by name",
		UsageText: "tonebook search [options] <query>",
		Description: `Lists saved filters whose name matches the query, ignoring case.

A query containing *, ?, [ or { is a glob matched against the whole name
(e.g. 'warm*'); anything else matches as a substring.`,
		Flags: []cli.Flag{
			formatFlag(&cmd.format),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one query argument")
	}

	query := c.Args().First()
	records := cmd.flags.Service.History().Search(ctx, query)
	return printRecords(ctx, c.Root().Writer, records, cmd.format, fmt.Sprintf("No filters match %q", query))
}
