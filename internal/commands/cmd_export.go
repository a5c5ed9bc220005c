package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/printer"
)

type ExportCmd struct {
	flags  *Flags
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "export",
		Usage:       "Export history as JSON",
		UsageText:   "tonebook export [-o file]",
		Description: "Writes every saved filter, newest first, as an indented JSON array that 'tonebook import' accepts.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	text, err := cmd.flags.Service.History().Export(ctx)
	if err != nil {
		return err
	}

	if cmd.output == "" {
		_, err := fmt.Fprintln(c.Root().Writer, text)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cmd.output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(cmd.output, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	printer.Ctx(ctx).Successf("Exported history to %s", cmd.output)
	return nil
}
