package tui

import "github.com/charmbracelet/bubbles/key"

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// previewKeys scroll the preview pane independently of the list.
type previewKeys struct {
	LineDown key.Binding
	LineUp   key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding
}

func defaultPreviewKeys() previewKeys {
	return previewKeys{
		LineDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J/K", "scroll preview")),
		LineUp:   key.NewBinding(key.WithKeys("K")),
		HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d/u", "page preview")),
		HalfUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	}
}

// ShortHelp returns the bindings shown in the list help line.
func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.LineDown, k.HalfDown}
}
