package doctor

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/tonebook/internal/core/config"
)

// ConfigCheck validates the configuration and reports the storage and
// normalizer settings in effect.
type ConfigCheck struct {
	config     *config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Config loaded",
			Status: StatusFail,
			Detail: "configuration not loaded",
		})
		return result
	}

	err := c.config.ValidateDeep(c.configPath)
	warnings := c.config.Warnings()

	if err == nil && len(warnings) == 0 {
		result.Items = append(result.Items,
			CheckItem{Label: "Config valid", Status: StatusPass, Detail: c.source()},
			CheckItem{
				Label:  "Storage",
				Status: StatusPass,
				Detail: c.config.Storage.Backend + " at " + c.config.StorageLocation(),
			},
			CheckItem{Label: "Normalizer rules", Status: StatusPass, Detail: c.rulesDetail()},
		)
		return result
	}

	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				label := fe.Field
				if label == "" {
					label = "validation"
				}
				result.Items = append(result.Items, CheckItem{
					Label:  label,
					Status: StatusFail,
					Detail: fe.Err.Error(),
				})
			}
		} else {
			result.Items = append(result.Items, CheckItem{
				Label:  "validation",
				Status: StatusFail,
				Detail: err.Error(),
			})
		}
	}

	for _, w := range warnings {
		label := w.Category
		if w.Item != "" {
			label += " (" + w.Item + ")"
		}
		result.Items = append(result.Items, CheckItem{
			Label:  label,
			Status: StatusWarn,
			Detail: w.Message,
		})
	}

	return result
}

// source names where the configuration came from.
func (c *ConfigCheck) source() string {
	if c.configPath == "" {
		return "built-in defaults"
	}
	if _, err := os.Stat(c.configPath); err != nil {
		return "built-in defaults (" + c.configPath + " not found)"
	}
	return c.configPath
}

func (c *ConfigCheck) rulesDetail() string {
	fields := c.config.RuleOverrides()
	if len(fields) == 0 {
		return "default keywords"
	}
	return "overrides for " + strings.Join(fields, ", ")
}
