package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/core/validate"
	"github.com/hay-kot/tonebook/internal/printer"
	"github.com/hay-kot/tonebook/internal/styles"
)

type SaveCmd struct {
	flags *Flags
	file  string
	name  string
}

// NewSaveCmd creates a new save command
func NewSaveCmd(flags *Flags) *SaveCmd {
	return &SaveCmd{flags: flags}
}

// Register adds the save command to the application
func (cmd *SaveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "save",
		Usage:     "Normalize an analysis result and save it to history",
		UsageText: "tonebook save [-f analysis.json] [--name NAME]",
		Description: `Normalizes an analysis result and stores the parameters under a name.

Names are 1-20 characters of letters, digits, underscores, CJK ideographs and
single spaces. When --name is omitted and the terminal is interactive, you are
prompted for one. History keeps at most 50 records; delete records to make room.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to analysis JSON (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "record name",
				Destination: &cmd.name,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SaveCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	a, err := readAnalysis(stdinSource(cmd.file))
	if err != nil {
		return err
	}

	name := cmd.name
	if name == "" {
		// The analysis may have come from a pipe, so only prompt when stdin
		// is still the terminal.
		if !stdinIsTerminal() {
			return fmt.Errorf("--name is required when stdin is not a terminal")
		}
		if name, err = promptName(); err != nil {
			return err
		}
	}

	rec, err := cmd.flags.Service.SaveAnalysis(ctx, name, a)
	if err != nil {
		return err
	}

	p.Success(fmt.Sprintf("Saved %q", rec.Name), fmt.Sprintf("%s  %s", rec.ID, rec.Parameters.Summary()))
	return nil
}

func promptName() (string, error) {
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Filter name").
				Description(fmt.Sprintf("Up to %d characters", validate.MaxNameLength)).
				Value(&name).
				Validate(func(s string) error {
					return validate.FilterName(validate.NormalizeName(s))
				}),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt name: %w", err)
	}
	return name, nil
}
