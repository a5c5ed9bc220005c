// Package tmpl renders the shell command templates bound to TUI keys.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Quote returns s wrapped in single quotes for use as one shell word.
// Embedded single quotes are written as '\''.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var funcs = template.FuncMap{
	"shq":   Quote,
	"lower": strings.ToLower,
	"slug":  slug,
}

// slug lowercases s and joins its words with dashes, for file names.
func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Render executes a Go template string with the given data. Referencing a
// field the data does not have is an error.
//
// Available template functions:
//   - shq: quote a value as a single shell word
//   - lower: lowercase a value
//   - slug: lowercase a value and join its words with dashes
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
