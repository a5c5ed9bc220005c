package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stretchr/testify/assert"
)

func TestRecordDelegate_Render(t *testing.T) {
	rec := sampleRecord()
	items := []list.Item{RecordItem{Record: rec}}

	d := NewRecordDelegate()
	d.Now = func() time.Time { return rec.SavedTime.Add(2 * time.Hour) }

	l := list.New(items, d, 80, 20)

	var buf bytes.Buffer
	d.Render(&buf, l, 0, items[0])
	out := buf.String()

	assert.Contains(t, out, "Warm Portrait")
	assert.Contains(t, out, "Brightness +62, Temperature -12")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, rec.ID)
	assert.Contains(t, out, "┃", "selected item has accent bar")
}

func TestRecordDelegate_RenderIgnoresOtherItems(t *testing.T) {
	d := NewRecordDelegate()
	l := list.New(nil, d, 80, 20)

	var buf bytes.Buffer
	d.Render(&buf, l, 0, nil)
	assert.Empty(t, buf.String())
}

func TestRecordItem_FilterValue(t *testing.T) {
	assert.Equal(t, "Warm Portrait", RecordItem{Record: sampleRecord()}.FilterValue())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Warm Por…", truncate("Warm Portrait", 9))
	assert.Equal(t, "…", truncate("Warm", 1))
}
