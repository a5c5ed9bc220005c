// Package config handles configuration loading and validation for tonebook.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/core/params"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultSlot is the slot name existing data was written under.
const DefaultSlot = "filter_parser_history"

// Built-in action names for keybindings.
const (
	ActionDelete = "delete"
	ActionReload = "reload"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"d": {
		Action:  ActionDelete,
		Help:    "delete",
		Confirm: "Delete this filter?",
	},
	"r": {
		Action: ActionReload,
		Help:   "reload",
	},
}

// Config holds the application configuration.
type Config struct {
	Storage     StorageConfig         `yaml:"storage"`
	IDScheme    string                `yaml:"id_scheme"`
	Normalizer  NormalizerConfig      `yaml:"normalizer"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the history blob lives.
type StorageConfig struct {
	Backend    string `yaml:"backend"`
	Slot       string `yaml:"slot"`
	SyncWrites bool   `yaml:"sync_writes"` // badger only
}

// NormalizerConfig customizes direction classification.
type NormalizerConfig struct {
	// Rules replaces the default keyword rule of each listed field.
	Rules map[string]params.Rule `yaml:"rules"`
}

// Keybinding defines a TUI keybinding action. Sh is a Go template rendered
// with the selected record.
type Keybinding struct {
	Action  string `yaml:"action"`  // built-in action name (delete, reload)
	Help    string `yaml:"help"`    // help text shown in TUI
	Sh      string `yaml:"sh"`      // shell command template
	Confirm string `yaml:"confirm"` // confirmation prompt (empty = no confirm)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Slot:    DefaultSlot,
		},
		IDScheme:    history.IDSchemeLegacy,
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Slot == "" {
		c.Storage.Slot = defaults.Storage.Slot
	}
	if c.IDScheme == "" {
		c.IDScheme = defaults.IDScheme
	}
}

var (
	backends  = []string{BackendFile, BackendBadger, BackendSQLite, BackendMemory}
	idSchemes = []string{history.IDSchemeLegacy, history.IDSchemeUUID}
	actions   = []string{ActionDelete, ActionReload}
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}

	if !slices.Contains(backends, c.Storage.Backend) {
		errs = errs.Append("storage.backend", fmt.Errorf("unknown backend %q (want one of %v)", c.Storage.Backend, backends))
	}

	if c.Storage.Slot == "" {
		errs = errs.Append("storage.slot", fmt.Errorf("slot name cannot be empty"))
	}

	if !slices.Contains(idSchemes, c.IDScheme) {
		errs = errs.Append("id_scheme", fmt.Errorf("unknown scheme %q (want one of %v)", c.IDScheme, idSchemes))
	}

	seen := make(map[params.Field]string, len(c.Normalizer.Rules))
	for _, key := range sortedKeys(c.Normalizer.Rules) {
		f, ok := params.ParseField(key)
		if !ok {
			errs = errs.Append("normalizer.rules."+key, fmt.Errorf("unknown field %q", key))
			continue
		}
		if prev, dup := seen[f]; dup {
			errs = errs.Append("normalizer.rules."+key, fmt.Errorf("duplicates %q", prev))
			continue
		}
		seen[f] = key
	}

	for _, key := range sortedKeys(c.Keybindings) {
		kb := c.Keybindings[key]
		field := "keybindings." + key
		switch {
		case kb.Action == "" && kb.Sh == "":
			errs = errs.Append(field, fmt.Errorf("must have either action or sh"))
		case kb.Action != "" && kb.Sh != "":
			errs = errs.Append(field, fmt.Errorf("cannot have both action and sh"))
		case kb.Action != "" && !slices.Contains(actions, kb.Action):
			errs = errs.Append(field, fmt.Errorf("unknown action %q (want one of %v)", kb.Action, actions))
		}
	}

	return errs.ToError()
}

// mergeKeybindings merges user keybindings into defaults.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	out := make(map[string]Keybinding, len(defaults)+len(user))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range user {
		out[k] = v
	}
	return out
}

// Rules returns the default rule table with the configured overrides applied.
func (c *Config) Rules() params.RuleTable {
	overrides := make(params.RuleTable, len(c.Normalizer.Rules))
	for _, key := range sortedKeys(c.Normalizer.Rules) {
		f, ok := params.ParseField(key)
		if !ok {
			continue
		}
		if _, set := overrides[f]; set && key != string(f) {
			continue
		}
		overrides[f] = c.Normalizer.Rules[key]
	}
	return params.DefaultRules().Merge(overrides)
}

// Setting is one effective configuration value, for display.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Settings lists the effective values that decide where filters are stored
// and how analyses are classified.
func (c *Config) Settings() []Setting {
	overrides := "none"
	if fields := c.RuleOverrides(); len(fields) > 0 {
		overrides = strings.Join(fields, ", ")
	}

	return []Setting{
		{Key: "storage.backend", Value: c.Storage.Backend},
		{Key: "storage.location", Value: c.StorageLocation()},
		{Key: "storage.slot", Value: c.Storage.Slot},
		{Key: "id_scheme", Value: c.IDScheme},
		{Key: "normalizer.rules", Value: overrides},
		{Key: "keybindings", Value: strings.Join(sortedKeys(c.Keybindings), " ")},
	}
}

// RuleOverrides returns the configured rule keys in sorted order.
func (c *Config) RuleOverrides() []string {
	return sortedKeys(c.Normalizer.Rules)
}

// StorageLocation describes where the configured backend keeps its data.
func (c *Config) StorageLocation() string {
	switch c.Storage.Backend {
	case BackendFile:
		return c.HistoryFile()
	case BackendBadger:
		return c.BadgerDir()
	case BackendSQLite:
		return c.SQLiteFile()
	case BackendMemory:
		return "in-process (not persisted)"
	default:
		return "unknown"
	}
}

// HistoryFile returns the path of the file-backed history slot.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "history.txt")
}

// BadgerDir returns the directory of the badger-backed history slot.
func (c *Config) BadgerDir() string {
	return filepath.Join(c.DataDir, "badger")
}

// SQLiteFile returns the path of the sqlite-backed history slot.
func (c *Config) SQLiteFile() string {
	return filepath.Join(c.DataDir, "tonebook.db")
}

// LogsDir returns the directory for per-run log files.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
