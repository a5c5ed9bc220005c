// Package render turns history records into markdown and renders markdown
// for the terminal.
package render

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/core/params"
)

// Markdown describes rec as a markdown document: a header, a parameter table
// and, when present, the analysis confidence and suggestions.
func Markdown(rec history.Record, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rec.Name)
	fmt.Fprintf(&b, "`%s` saved %s (%s)\n\n",
		rec.ID, humanize.RelTime(rec.SavedTime, now, "ago", "from now"), rec.SavedTime.Local().Format("2006-01-02 15:04"))

	b.WriteString("| Parameter | Value | Range |\n")
	b.WriteString("|---|---:|---|\n")
	for _, f := range params.Fields() {
		r := params.RangeOf(f)
		fmt.Fprintf(&b, "| %s | %s | %g ~ %g %s |\n", r.Label, FormatValue(rec.Parameters.Get(f), r.Unit), r.Min, r.Max, r.Unit)
	}

	fmt.Fprintf(&b, "\n**Summary:** %s\n", rec.Parameters.Summary())

	if meta := rec.AnalysisMeta; meta != nil {
		fmt.Fprintf(&b, "\n## Analysis\n\nConfidence: %d%%\n", int(math.Round(meta.ConfidenceScore*100)))
		if len(meta.Suggestions) > 0 {
			b.WriteString("\n")
			for _, s := range meta.Suggestions {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
	}

	return b.String()
}

// FormatValue prints v with an explicit sign and its unit, e.g. "+62%".
func FormatValue(v float64, unit string) string {
	if v == 0 {
		return "0" + unit
	}
	if v > 0 {
		return fmt.Sprintf("+%g%s", v, unit)
	}
	return fmt.Sprintf("%g%s", v, unit)
}

// Terminal renders markdown with the tokyo-night glamour style wrapped at
// width. Glamour's leading and trailing decorative lines are removed. On
// renderer failure the markdown source is returned unchanged.
func Terminal(markdown string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	content := strings.TrimSpace(rendered)
	content = stripLeadingDecorative(content)
	return stripTrailingDecorative(content)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// isDecorativeLine reports whether line holds only horizontal rule
// characters or whitespace once ANSI codes are removed.
func isDecorativeLine(line string) bool {
	stripped := strings.TrimSpace(ansiPattern.ReplaceAllString(line, ""))
	for _, r := range stripped {
		if r != '─' && r != '━' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

func stripLeadingDecorative(content string) string {
	lines := strings.Split(content, "\n")
	start := 0
	for start < len(lines) && isDecorativeLine(lines[start]) {
		start++
	}
	return strings.Join(lines[start:], "\n")
}

func stripTrailingDecorative(content string) string {
	lines := strings.Split(content, "\n")
	end := len(lines)
	for end > 0 && isDecorativeLine(lines[end-1]) {
		end--
	}
	return strings.Join(lines[:end], "\n")
}
