package history

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImport(t *testing.T) {
	got, err := parseImport(`[
		{
			"id": "param_1_a",
			"name": "sunset",
			"parameters": {"brightness": 250, "hue": 12},
			"saved_time": "2024-02-03T04:05:06.789+02:00",
			"analysis_result": {"confidence_score": 0.4, "suggestions": ["warmer"]}
		}
	]`)
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t, "sunset", rec.Name)
	assert.InDelta(t, 100, rec.Parameters.Brightness, 1e-9)
	assert.InDelta(t, 12, rec.Parameters.Hue, 1e-9)
	assert.Equal(t, time.Date(2024, 2, 3, 2, 5, 6, 789_000_000, time.UTC), rec.SavedTime)
	require.NotNil(t, rec.AnalysisMeta)
	assert.Equal(t, []string{"warmer"}, rec.AnalysisMeta.Suggestions)
}

func TestParseImport_EmptyArray(t *testing.T) {
	got, err := parseImport(`[]`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseImport_NotAnArray(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "null", text: `null`},
		{name: "padded null", text: "  null\n"},
		{name: "object", text: `{"id": "a"}`},
		{name: "string", text: `"[]"`},
		{name: "empty", text: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseImport(tt.text)
			assert.ErrorIs(t, err, ErrMalformedImport)
		})
	}
}

func TestParseImport_ReportsEveryProblem(t *testing.T) {
	_, err := parseImport(`[
		{"id": "", "name": "a", "parameters": {}, "saved_time": "2024-01-01T00:00:00Z"},
		{"id": "b", "name": "b", "parameters": {}, "saved_time": "not a time"}
	]`)
	require.ErrorIs(t, err, ErrMalformedImport)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "[0].id", fieldErrs[0].Field)
	assert.Equal(t, "[1].saved_time", fieldErrs[1].Field)
}
