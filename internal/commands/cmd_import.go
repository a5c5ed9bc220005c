package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/printer"
)

type ImportCmd struct {
	flags  *Flags
	file   string
	format string
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Merge exported history into the local history",
		UsageText: "tonebook import [-f file]",
		Description: `Reads a JSON array produced by 'tonebook export' and merges it.

Every record needs an id, name, parameters and saved_time. If any record is
invalid nothing is imported. Records whose id already exists are skipped, and
when the merged history exceeds 50 records the oldest are dropped.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to export JSON (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
			formatFlag(&cmd.format),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	data, err := stdinSource(cmd.file).read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	summary, err := cmd.flags.Service.History().Import(ctx, string(data))
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if cmd.format == "json" {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	p := printer.Ctx(ctx)
	p.Successf("Imported %d of %d record(s)", summary.Added, summary.Received)
	if summary.Duplicates > 0 {
		p.Infof("%d record(s) already present", summary.Duplicates)
	}
	if summary.Evicted > 0 {
		p.Warnf("%d oldest record(s) dropped to stay within capacity", summary.Evicted)
	}
	return nil
}
