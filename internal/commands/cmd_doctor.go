package commands

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/commands/doctor"
	"github.com/hay-kot/tonebook/internal/printer"
)

type DoctorCmd struct {
	flags  *Flags
	format string
	fix    bool
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your tonebook setup",
		UsageText:   "tonebook doctor [options]",
		Description: "Runs diagnostic checks on configuration and on the stored history.",
		Flags: []cli.Flag{
			formatFlag(&cmd.format),
			&cli.BoolFlag{
				Name:        "fix",
				Usage:       "repair fixable issues",
				Destination: &cmd.fix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	checks := []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
		doctor.NewStorageCheck(cmd.flags.Service.History(), cmd.flags.WatchPath, cmd.fix),
	}

	results := doctor.RunAll(ctx, checks)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(ctx, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doctor.NewReport(results))
}

func (cmd *DoctorCmd) outputText(ctx context.Context, results []doctor.Result) error {
	p := printer.Ctx(ctx)
	report := doctor.NewReport(results)

	for _, result := range report.Checks {
		title := result.Name
		if status := result.Status(); status != doctor.StatusPass {
			title += " (" + status.String() + ")"
		}
		p.Section(title)

		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}

		p.Printf("")
	}

	sum := report.Summary
	p.Printf("Summary: %d passed, %d warnings, %d failed", sum.Passed, sum.Warned, sum.Failed)

	if report.Fixable > 0 && !cmd.fix {
		p.Infof("%d issue(s) can be repaired with 'tonebook doctor --fix'", report.Fixable)
	}

	if !report.Healthy {
		return cli.Exit("", 1)
	}

	return nil
}
