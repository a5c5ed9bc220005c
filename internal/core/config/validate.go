package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/tonebook/pkg/tmpl"
)

// ShellData is the data available to keybinding sh templates.
type ShellData struct {
	ID      string
	Name    string
	Summary string
	JSON    string // the record as compact JSON
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate, it checks file access and the contents of rule overrides.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	errs = c.validateFileAccess(errs, configPath)
	errs = c.validateRules(errs)
	errs = c.validateTemplates(errs)

	return errs.ToError()
}

func (c *Config) validateFileAccess(errs criterio.FieldErrorsBuilder, configPath string) criterio.FieldErrorsBuilder {
	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = errs.Append("config", fmt.Errorf("%s is a directory, not a file", configPath))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("config", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("data_dir", fmt.Errorf("cannot access %s: %w", c.DataDir, err))
		}
	}

	return errs
}

// validateRules reports empty keywords and keywords that appear in both the
// positive and negative sets of a field, which would make the negative match
// unreachable.
func (c *Config) validateRules(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	for _, key := range sortedKeys(c.Normalizer.Rules) {
		rule := c.Normalizer.Rules[key]
		field := "normalizer.rules." + key

		sets := map[string][]string{"neutral": rule.Neutral, "positive": rule.Positive, "negative": rule.Negative}
		for _, name := range []string{"neutral", "positive", "negative"} {
			for i, kw := range sets[name] {
				if strings.TrimSpace(kw) == "" {
					errs = errs.Append(fmt.Sprintf("%s.%s[%d]", field, name, i), fmt.Errorf("keyword cannot be empty"))
				}
			}
		}

		for _, kw := range rule.Positive {
			if kw == "" {
				continue
			}
			if slices.ContainsFunc(rule.Negative, func(n string) bool { return strings.EqualFold(n, kw) }) {
				errs = errs.Append(field, fmt.Errorf("keyword %q is both positive and negative", kw))
			}
		}
	}

	return errs
}

// validateTemplates renders every sh keybinding against sample data so
// unknown fields fail here instead of in the TUI.
func (c *Config) validateTemplates(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	sample := ShellData{ID: "sample", Name: "Sample", Summary: "no significant adjustment", JSON: "{}"}
	for _, key := range sortedKeys(c.Keybindings) {
		kb := c.Keybindings[key]
		if kb.Sh == "" {
			continue
		}
		if _, err := tmpl.Render(kb.Sh, sample); err != nil {
			errs = errs.Append("keybindings."+key+".sh", err)
		}
	}
	return errs
}

// Warnings returns non-fatal issues with the configuration.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, key := range sortedKeys(c.Normalizer.Rules) {
		rule := c.Normalizer.Rules[key]
		if len(rule.Positive) == 0 && len(rule.Negative) == 0 {
			warnings = append(warnings, ValidationWarning{
				Category: "Normalizer",
				Item:     key,
				Message:  "override has no positive or negative keywords; raw signs will pass through",
			})
		}
	}

	if c.Storage.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "backend",
			Message:  "memory backend does not persist history between runs",
		})
	}

	if c.Storage.SyncWrites && c.Storage.Backend != BackendBadger {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "sync_writes",
			Message:  fmt.Sprintf("sync_writes has no effect on the %s backend", c.Storage.Backend),
		})
	}

	return warnings
}
