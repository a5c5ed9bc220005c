package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/printer"
)

type StatsCmd struct {
	flags  *Flags
	format string
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags) *StatsCmd {
	return &StatsCmd{flags: flags}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show history usage",
		UsageText: "tonebook stats [options]",
		Flags: []cli.Flag{
			formatFlag(&cmd.format),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	st := cmd.flags.Service.History().Stats(ctx)
	out := c.Root().Writer

	if cmd.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Records\t%d / %d\n", st.Count, st.MaxCount)
	_, _ = fmt.Fprintf(w, "Usage\t%s\n", printer.Meter(st.UsagePercent, 20))
	_, _ = fmt.Fprintf(w, "Stored size\t%s\n", humanize.Bytes(uint64(st.TotalSizeBytes)))
	_, _ = fmt.Fprintf(w, "Backend\t%s (%s)\n", cmd.flags.Config.Storage.Backend, cmd.flags.Config.Storage.Slot)
	return w.Flush()
}
