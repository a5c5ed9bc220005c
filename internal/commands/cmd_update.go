package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/printer"
	"github.com/hay-kot/tonebook/internal/tonebook"
)

type UpdateCmd struct {
	flags *Flags
	name  string
	set   []string
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(flags *Flags) *UpdateCmd {
	return &UpdateCmd{flags: flags}
}

// Register adds the update command to the application
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Rename a saved filter or change its parameters",
		UsageText: "tonebook update <id> [--name NAME] [--set field=value ...]",
		Description: `Updates a saved filter in place. Its saved time and position are unchanged.

  tonebook update param_1700000000000_x1y2z3 --name "Night Walk"
  tonebook update param_1700000000000_x1y2z3 --set brightness=-20 --set hue=12

Values passed to --set must lie in the parameter's range.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "new record name",
				Destination: &cmd.name,
			},
			&cli.StringSliceFlag{
				Name:        "set",
				Aliases:     []string{"s"},
				Usage:       "parameter assignment field=value (repeatable)",
				Destination: &cmd.set,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one record id")
	}

	opts := tonebook.UpdateOptions{Assignments: cmd.set}
	if c.IsSet("name") {
		opts.Name = &cmd.name
	}
	if opts.Name == nil && len(opts.Assignments) == 0 {
		return fmt.Errorf("nothing to update; pass --name or --set")
	}

	rec, err := cmd.flags.Service.Update(ctx, c.Args().First(), opts)
	if err != nil {
		return err
	}

	printer.Ctx(ctx).Success(fmt.Sprintf("Updated %q", rec.Name), rec.Parameters.Summary())
	return nil
}
