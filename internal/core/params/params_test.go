package params

import (
	"math"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterParameters_Validate(t *testing.T) {
	ok := FilterParameters{Brightness: 100, Temperature: -500, Hue: 180}
	assert.NoError(t, ok.Validate())

	bad := FilterParameters{Contrast: 101, Temperature: 600, Hue: math.NaN()}
	err := bad.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
	assert.Equal(t, "contrast", fieldErrs[0].Field)
}

func TestFilterParameters_Clamped(t *testing.T) {
	p := FilterParameters{Brightness: 140, Temperature: -900, Hue: math.Inf(1), Shadow: -12}

	got := p.Clamped()

	assert.Equal(t, FilterParameters{Brightness: 100, Temperature: -500, Shadow: -12}, got)
}

func TestFilterParameters_Summary(t *testing.T) {
	tests := []struct {
		name string
		in   FilterParameters
		want string
	}{
		{"nothing significant", FilterParameters{Brightness: 4.9, Hue: -2}, "no significant adjustment"},
		{"signed values in field order", FilterParameters{Hue: -12, Brightness: 62}, "Brightness +62, Hue -12"},
		{"fractional", FilterParameters{Temperature: 5.5}, "Temperature +5.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Summary())
		})
	}
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("  Temperature ")
	assert.True(t, ok)
	assert.Equal(t, FieldTemperature, f)

	_, ok = ParseField("vignette")
	assert.False(t, ok)
}

func TestDecodeAnalysis(t *testing.T) {
	data := []byte(`{
		"parameters": {
			"brightness": {"name": "亮度", "direction": "增加", "value": 62, "unit": "%", "reference": "sRGB"},
			"contrast": {"direction": "降低", "value": "12.5"},
			"saturation": {"direction": "增加", "value": "lots"},
			"hue": -8,
			"shadow": "3.5",
			"highlight": null,
			"sharpness": [1, 2]
		},
		"confidence_score": 0.82,
		"suggestions": ["warm it up"]
	}`)

	a, err := DecodeAnalysis(data)
	require.NoError(t, err)

	assert.Equal(t, "亮度", a.Parameters["brightness"].Info.Name)
	assert.InDelta(t, 62, a.Parameters["brightness"].Info.Value, 1e-9)
	assert.InDelta(t, 12.5, a.Parameters["contrast"].Info.Value, 1e-9)
	assert.Zero(t, a.Parameters["saturation"].Info.Value)
	assert.InDelta(t, -8, a.Parameters["hue"].Info.Value, 1e-9)
	assert.Empty(t, a.Parameters["hue"].Info.Direction)
	assert.InDelta(t, 3.5, a.Parameters["shadow"].Info.Value, 1e-9)
	assert.Zero(t, a.Parameters["highlight"].Info.Value)
	assert.Zero(t, a.Parameters["sharpness"].Info.Value)
	assert.InDelta(t, 0.82, a.ConfidenceScore, 1e-9)

	got := Normalize(a.Parameters)
	assert.Equal(t, FilterParameters{Brightness: 62, Contrast: -12.5, Hue: -8, Shadow: 3.5}, got)
}

func TestDecodeAnalysis_Broken(t *testing.T) {
	_, err := DecodeAnalysis([]byte(`{"parameters": `))
	assert.Error(t, err)
}
