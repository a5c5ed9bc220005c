package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/core/params"
	"github.com/hay-kot/tonebook/internal/render"
)

type NormalizeCmd struct {
	flags  *Flags
	file   string
	format string
}

// NewNormalizeCmd creates a new normalize command
func NewNormalizeCmd(flags *Flags) *NormalizeCmd {
	return &NormalizeCmd{flags: flags}
}

// Register adds the normalize command to the application
func (cmd *NormalizeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "normalize",
		Usage: "Convert an analysis result into filter parameters",
		UsageText: `tonebook normalize [options]

Read from stdin:
  cat analysis.json | tonebook normalize

Read from file:
  tonebook normalize -f analysis.json`,
		Description: `Reads an analysis result and prints the bounded filter parameters.

Each parameter's direction text decides its sign, temperature values above 50
are rescaled by 1/100, every value is clamped to its range, hue is limited to
±30, and values below 0.5 snap to 0.

Input JSON schema:
  {
    "parameters": {
      "brightness": {"direction": "增加", "value": 62, "unit": "%"},
      "hue": -8
    },
    "confidence_score": 0.82,
    "suggestions": ["..."]
  }`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to analysis JSON (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, text)",
				Value:       "json",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NormalizeCmd) run(ctx context.Context, c *cli.Command) error {
	a, err := readAnalysis(stdinSource(cmd.file))
	if err != nil {
		return err
	}

	p := cmd.flags.Service.Normalize(a)
	out := c.Root().Writer

	if cmd.format == "text" {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "PARAMETER\tVALUE")
		for _, f := range params.Fields() {
			r := params.RangeOf(f)
			_, _ = fmt.Fprintf(w, "%s\t%s\n", r.Label, render.FormatValue(p.Get(f), r.Unit))
		}
		return w.Flush()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func readAnalysis(src inputSource) (params.Analysis, error) {
	data, err := src.read()
	if err != nil {
		return params.Analysis{}, fmt.Errorf("read input: %w", err)
	}

	a, err := params.DecodeAnalysis(data)
	if err != nil {
		return params.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	return a, nil
}
