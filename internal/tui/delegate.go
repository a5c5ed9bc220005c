package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/hay-kot/tonebook/internal/core/history"
)

// RecordItem wraps a record for the list component.
type RecordItem struct {
	Record history.Record
}

// FilterValue returns the value used for filtering.
func (i RecordItem) FilterValue() string {
	return i.Record.Name
}

// RecordDelegate handles rendering of record items in the list.
type RecordDelegate struct {
	Styles RecordDelegateStyles
	Now    func() time.Time
}

// RecordDelegateStyles defines the styles for the delegate.
type RecordDelegateStyles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Summary  lipgloss.Style
	Meta     lipgloss.Style
}

// DefaultRecordDelegateStyles returns the default styles.
func DefaultRecordDelegateStyles() RecordDelegateStyles {
	return RecordDelegateStyles{
		Normal:   normalStyle,
		Selected: selectedStyle,
		Summary:  summaryStyle,
		Meta:     metaStyle,
	}
}

// NewRecordDelegate creates a new record delegate with default styles.
func NewRecordDelegate() RecordDelegate {
	return RecordDelegate{
		Styles: DefaultRecordDelegateStyles(),
		Now:    time.Now,
	}
}

// Height returns the height of each item.
func (d RecordDelegate) Height() int {
	return 3
}

// Spacing returns the spacing between items.
func (d RecordDelegate) Spacing() int {
	return 1
}

// Update handles item updates.
func (d RecordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders a single item.
func (d RecordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	recordItem, ok := item.(RecordItem)
	if !ok {
		return
	}

	r := recordItem.Record
	isSelected := index == m.Index()

	nameStyle := d.Styles.Normal
	prefix := "  "
	if isSelected {
		nameStyle = d.Styles.Selected
		prefix = selectedBorderStyle.Render("┃") + " "
	}

	maxWidth := m.Width() - 2
	if maxWidth < 1 {
		maxWidth = 1
	}

	title := nameStyle.Render(truncate(r.Name, maxWidth))
	summary := d.Styles.Summary.Render(truncate(r.Parameters.Summary(), maxWidth))
	meta := d.Styles.Meta.Render(truncate(
		fmt.Sprintf("%s %s %s", humanize.RelTime(r.SavedTime, d.Now(), "ago", "from now"), iconDot, r.ID),
		maxWidth,
	))

	_, _ = fmt.Fprintf(w, "%s%s\n%s%s\n%s%s", prefix, title, prefix, summary, prefix, meta)
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
