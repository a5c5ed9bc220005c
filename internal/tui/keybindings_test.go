package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tonebook/internal/core/config"
	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/core/params"
	"github.com/hay-kot/tonebook/pkg/executil"
)

func sampleRecord() history.Record {
	return history.Record{
		ID:         "param_1718000000000_ab12cd3ef",
		Name:       "Warm Portrait",
		Parameters: params.FilterParameters{Brightness: 62, Temperature: -12},
		SavedTime:  time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC),
	}
}

func TestKeybindingHandler_Resolve(t *testing.T) {
	keybindings := map[string]config.Keybinding{
		"d": {Action: config.ActionDelete, Confirm: "Delete this filter?"},
		"r": {Action: config.ActionReload, Help: "refresh"},
		"o": {Sh: "echo {{ .Name | shq }} {{ .ID }}", Help: "echo"},
		"x": {Sh: "echo {{ .Path }}"},
		"z": {Action: "explode"},
	}

	handler := NewKeybindingHandler(keybindings, nil, nil)
	rec := sampleRecord()

	tests := []struct {
		name      string
		key       string
		wantOK    bool
		wantType  ActionType
		wantHelp  string
		wantShell string
	}{
		{name: "delete uses action name as help", key: "d", wantOK: true, wantType: ActionTypeDelete, wantHelp: "delete"},
		{name: "reload keeps custom help", key: "r", wantOK: true, wantType: ActionTypeReload, wantHelp: "refresh"},
		{name: "shell renders template", key: "o", wantOK: true, wantType: ActionTypeShell, wantHelp: "echo", wantShell: "echo 'Warm Portrait' param_1718000000000_ab12cd3ef"},
		{name: "unknown action is ignored", key: "z", wantOK: false},
		{name: "unknown key returns false", key: "q", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := handler.Resolve(tt.key, rec)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantType, action.Type)
			assert.Equal(t, tt.wantHelp, action.Help)
			assert.Equal(t, rec.ID, action.RecordID)
			if tt.wantShell != "" {
				assert.Equal(t, tt.wantShell, action.ShellCmd)
			}
		})
	}

	t.Run("template error becomes failing command", func(t *testing.T) {
		action, ok := handler.Resolve("x", rec)
		require.True(t, ok)
		assert.Equal(t, ActionTypeShell, action.Type)
		assert.Contains(t, action.ShellCmd, "template error")
		assert.Contains(t, action.ShellCmd, "exit 1")
	})

	t.Run("confirm is carried", func(t *testing.T) {
		action, _ := handler.Resolve("d", rec)
		assert.True(t, action.NeedsConfirm())
	})
}

func TestKeybindingHandler_ExecuteShell(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"c": {Sh: "pbcopy"},
	}, nil, exec)

	action, ok := handler.Resolve("c", sampleRecord())
	require.True(t, ok)
	require.NoError(t, handler.Execute(context.Background(), action))

	require.Len(t, exec.Commands, 1)
	cmd := exec.Commands[0]
	assert.Equal(t, "sh", cmd.Name)
	assert.Equal(t, []string{"-c", "pbcopy"}, cmd.Args)
	assert.Contains(t, cmd.Env, "TONEBOOK_RECORD_ID=param_1718000000000_ab12cd3ef")
	assert.Contains(t, cmd.Input, `"name":"Warm Portrait"`)
}

func TestKeybindingHandler_ExecuteShellFailure(t *testing.T) {
	exec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"sh": []byte("pbcopy: not found\n")},
		Errors:  map[string]error{"sh": errors.New("exit status 127")},
	}
	handler := NewKeybindingHandler(map[string]config.Keybinding{"c": {Sh: "pbcopy"}}, nil, exec)

	action, _ := handler.Resolve("c", sampleRecord())
	err := handler.Execute(context.Background(), action)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pbcopy: not found")
}

func TestKeybindingHandler_KeyBindings(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"r": {Action: config.ActionReload},
		"c": {Sh: "pbcopy", Help: "copy"},
		"o": {Sh: "open ."},
	}, nil, nil)

	bindings := handler.KeyBindings()
	require.Len(t, bindings, 3)

	assert.Equal(t, "c", bindings[0].Help().Key)
	assert.Equal(t, "copy", bindings[0].Help().Desc)
	assert.Equal(t, "shell", bindings[1].Help().Desc)
	assert.Equal(t, "reload", bindings[2].Help().Desc)
}
