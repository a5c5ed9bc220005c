package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/core/params"
	"github.com/hay-kot/tonebook/internal/render"
)

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	rawFlag := func() cli.Flag {
		return &cli.BoolFlag{
			Name:        "raw",
			Usage:       "print markdown source instead of rendering it",
			Destination: &cmd.raw,
		}
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Reference documentation",
		Description: `Reference documentation for tonebook.

Use 'tonebook doc format' to see the analysis JSON accepted by normalize and save.
Use 'tonebook doc rules' to see the direction keywords in effect.`,
		Commands: []*cli.Command{
			{
				Name:  "format",
				Usage: "Show the analysis input format",
				Description: `Outputs the analysis JSON format along with the bounds each field is
clamped to. Suitable as a prompt fragment for the analysis service.`,
				Flags:  []cli.Flag{rawFlag()},
				Action: cmd.runFormat,
			},
			{
				Name:  "rules",
				Usage: "Show the direction keywords in effect",
				Description: `Outputs the keywords used to classify each field's direction, including
overrides from the normalizer.rules section of the config file.`,
				Flags:  []cli.Flag{rawFlag()},
				Action: cmd.runRules,
			},
		},
	})
	return app
}

func (cmd *DocCmd) runFormat(_ context.Context, c *cli.Command) error {
	cmd.print(c.Root().Writer, formatGuide())
	return nil
}

func (cmd *DocCmd) runRules(_ context.Context, c *cli.Command) error {
	cmd.print(c.Root().Writer, rulesGuide(cmd.flags.Config.Rules()))
	return nil
}

func (cmd *DocCmd) print(w io.Writer, markdown string) {
	if !cmd.raw && stdoutIsTerminal() {
		markdown = render.Terminal(markdown, terminalWidth())
	}
	_, _ = fmt.Fprintln(w, markdown)
}

func formatGuide() string {
	var b strings.Builder
	b.WriteString(`# Analysis Format

An analysis is a JSON object. Every field of ` + "`parameters`" + ` is optional.

` + "```json" + `
{
  "parameters": {
    "brightness": {"direction": "增加", "value": 62, "unit": "%"},
    "temperature": {"direction": "偏冷", "value": 1200},
    "hue": -8
  },
  "confidence_score": 0.85,
  "suggestions": ["lift shadows slightly"]
}
` + "```" + `

A parameter is either a bare number or an object with a ` + "`direction`" + ` and a
` + "`value`" + `. Values may be numbers or numeric strings; anything else reads as 0.
The direction decides the sign, see ` + "`tonebook doc rules`" + `.

## Bounds

| Field | Range | Unit |
|-------|-------|------|
`)
	for _, f := range params.Fields() {
		r := params.RangeOf(f)
		fmt.Fprintf(&b, "| `%s` | %g ~ %g | %s |\n", f, r.Min, r.Max, r.Unit)
	}
	b.WriteString(`
## Adjustments

- Temperatures above 50 in magnitude are divided by 100 before use.
- Hue is limited to -30 ~ 30 after clamping.
- Results are rounded to one decimal; magnitudes below 0.5 become 0.
`)
	return b.String()
}

func rulesGuide(rules params.RuleTable) string {
	var b strings.Builder
	b.WriteString(`# Direction Keywords

Keywords match as case-insensitive substrings of the direction. Neutral is
checked first, then positive, then negative. A direction matching nothing
keeps the sign of the value.
`)
	for _, f := range params.Fields() {
		r := rules[f]
		fmt.Fprintf(&b, "\n## %s\n\n", params.RangeOf(f).Label)
		fmt.Fprintf(&b, "| Polarity | Keywords |\n|----------|----------|\n")
		fmt.Fprintf(&b, "| neutral | %s |\n", keywordList(r.Neutral))
		fmt.Fprintf(&b, "| positive | %s |\n", keywordList(r.Positive))
		fmt.Fprintf(&b, "| negative | %s |\n", keywordList(r.Negative))
	}
	return b.String()
}

func keywordList(keywords []string) string {
	if len(keywords) == 0 {
		return "_none_"
	}
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = "`" + k + "`"
	}
	return strings.Join(quoted, ", ")
}
