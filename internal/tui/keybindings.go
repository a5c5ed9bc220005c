package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/hay-kot/tonebook/internal/core/config"
	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/tonebook"
	"github.com/hay-kot/tonebook/pkg/executil"
	"github.com/hay-kot/tonebook/pkg/tmpl"
)

// ActionType identifies the kind of action a keybinding triggers.
type ActionType int

const (
	ActionTypeNone ActionType = iota
	ActionTypeDelete
	ActionTypeReload
	ActionTypeShell
)

// Action represents a resolved keybinding action ready for execution.
type Action struct {
	Type       ActionType
	Key        string
	Help       string
	Confirm    string // Non-empty if confirmation required
	ShellCmd   string // For shell actions, the rendered command
	RecordID   string
	RecordName string
	RecordJSON string // passed to shell actions on stdin
}

// NeedsConfirm returns true if the action requires user confirmation.
func (a Action) NeedsConfirm() bool {
	return a.Confirm != ""
}

// KeybindingHandler resolves keybindings to actions.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
	service     *tonebook.Service
	exec        executil.Executor
}

// NewKeybindingHandler creates a new handler with the given config.
func NewKeybindingHandler(keybindings map[string]config.Keybinding, service *tonebook.Service, exec executil.Executor) *KeybindingHandler {
	return &KeybindingHandler{
		keybindings: keybindings,
		service:     service,
		exec:        exec,
	}
}

// Resolve attempts to resolve a key press to an action for the given record.
func (h *KeybindingHandler) Resolve(key string, rec history.Record) (Action, bool) {
	kb, exists := h.keybindings[key]
	if !exists {
		return Action{}, false
	}

	action := Action{
		Key:        key,
		Help:       kb.Help,
		Confirm:    kb.Confirm,
		RecordID:   rec.ID,
		RecordName: rec.Name,
	}

	if kb.Action != "" {
		switch kb.Action {
		case config.ActionDelete:
			action.Type = ActionTypeDelete
		case config.ActionReload:
			action.Type = ActionTypeReload
		default:
			return Action{}, false
		}
		if action.Help == "" {
			action.Help = kb.Action
		}
		return action, true
	}

	if kb.Sh == "" {
		return Action{}, false
	}

	data := shellData(rec)
	action.Type = ActionTypeShell
	action.RecordJSON = data.JSON

	rendered, err := tmpl.Render(kb.Sh, data)
	if err != nil {
		action.ShellCmd = fmt.Sprintf("echo %s >&2; exit 1", tmpl.Quote("template error: "+err.Error()))
		return action, true
	}
	action.ShellCmd = rendered
	return action, true
}

func shellData(rec history.Record) config.ShellData {
	data, err := json.Marshal(rec)
	if err != nil {
		data = []byte("{}")
	}
	return config.ShellData{
		ID:      rec.ID,
		Name:    rec.Name,
		Summary: rec.Parameters.Summary(),
		JSON:    string(data),
	}
}

// Execute runs the given action. Reload has no side effect of its own; the
// caller reloads after every completed action.
func (h *KeybindingHandler) Execute(ctx context.Context, action Action) error {
	switch action.Type {
	case ActionTypeDelete:
		return h.service.Delete(ctx, action.RecordID)
	case ActionTypeReload:
		return nil
	case ActionTypeShell:
		cmd := executil.Shell(action.ShellCmd)
		cmd.Env = []string{"TONEBOOK_RECORD_ID=" + action.RecordID, "TONEBOOK_RECORD_NAME=" + action.RecordName}
		cmd.Stdin = strings.NewReader(action.RecordJSON)

		out, err := h.exec.Run(ctx, cmd)
		if err != nil {
			if msg := strings.TrimSpace(string(out)); msg != "" {
				return fmt.Errorf("%w: %s", err, msg)
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("action type %d not supported by Execute", action.Type)
	}
}

// KeyBindings returns key.Binding objects for integration with bubbles help system.
func (h *KeybindingHandler) KeyBindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(h.keybindings))
	bindings := make([]key.Binding, 0, len(keys))

	for _, k := range keys {
		kb := h.keybindings[k]
		help := kb.Help
		if help == "" && kb.Action != "" {
			help = kb.Action
		}
		if help == "" {
			help = "shell"
		}

		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, help),
		))
	}

	return bindings
}
