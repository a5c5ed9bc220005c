package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/printer"
)

type LsCmd struct {
	flags  *Flags
	format string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List saved filters",
		UsageText:   "tonebook ls [options]",
		Description: "Displays a table of saved filters, newest first, with a summary of significant adjustments.",
		Flags: []cli.Flag{
			formatFlag(&cmd.format),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	records := cmd.flags.Service.History().List(ctx)
	return printRecords(ctx, c.Root().Writer, records, cmd.format, "No saved filters")
}

func formatFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "format",
		Usage:       "output format (text, json)",
		Value:       "text",
		Destination: dest,
	}
}

func printRecords(ctx context.Context, out io.Writer, records []history.Record, format, empty string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		printer.Ctx(ctx).Infof("%s", empty)
		return nil
	}

	return writeRecordTable(out, records, time.Now())
}

func writeRecordTable(out io.Writer, records []history.Record, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSUMMARY\tSAVED")

	for _, r := range records {
		saved := humanize.RelTime(r.SavedTime, now, "ago", "from now")
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Parameters.Summary(), saved)
	}

	return w.Flush()
}
