// Package params defines the filter parameter vector and the normalizer that
// derives it from a heuristic image analysis.
package params

import (
	"fmt"
	"math"
	"strings"

	"github.com/hay-kot/criterio"
)

// Field names one dimension of the filter parameter vector.
type Field string

const (
	FieldBrightness  Field = "brightness"
	FieldContrast    Field = "contrast"
	FieldSaturation  Field = "saturation"
	FieldSharpness   Field = "sharpness"
	FieldTemperature Field = "temperature"
	FieldHue         Field = "hue"
	FieldShadow      Field = "shadow"
	FieldHighlight   Field = "highlight"
)

// Fields returns every field in display order.
func Fields() []Field {
	return []Field{
		FieldBrightness,
		FieldContrast,
		FieldSaturation,
		FieldSharpness,
		FieldTemperature,
		FieldHue,
		FieldShadow,
		FieldHighlight,
	}
}

// ParseField resolves a field name, ignoring case and surrounding whitespace.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ranges[f]; !ok {
		return "", false
	}
	return f, true
}

// Range describes the legal bounds and presentation of a field.
type Range struct {
	Min   float64
	Max   float64
	Step  float64
	Unit  string
	Label string
}

// Clamp forces v into [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var ranges = map[Field]Range{
	FieldBrightness:  {Min: -100, Max: 100, Step: 1, Unit: "%", Label: "Brightness"},
	FieldContrast:    {Min: -100, Max: 100, Step: 1, Unit: "%", Label: "Contrast"},
	FieldSaturation:  {Min: -100, Max: 100, Step: 1, Unit: "%", Label: "Saturation"},
	FieldSharpness:   {Min: -100, Max: 100, Step: 1, Unit: "%", Label: "Sharpness"},
	FieldTemperature: {Min: -500, Max: 500, Step: 10, Unit: "K", Label: "Temperature"},
	FieldHue:         {Min: -180, Max: 180, Step: 1, Unit: "°", Label: "Hue"},
	FieldShadow:      {Min: -100, Max: 100, Step: 1, Unit: "%", Label: "Shadow"},
	FieldHighlight:   {Min: -100, Max: 100, Step: 1, Unit: "%", Label: "Highlight"},
}

// RangeOf returns the bounds of f. Unknown fields get a zero Range.
func RangeOf(f Field) Range {
	return ranges[f]
}

// SignificantChange is the magnitude at which an adjustment is worth calling out.
const SignificantChange = 5.0

// FilterParameters is the bounded adjustment vector applied to an image.
type FilterParameters struct {
	Brightness  float64 `json:"brightness"`
	Contrast    float64 `json:"contrast"`
	Saturation  float64 `json:"saturation"`
	Sharpness   float64 `json:"sharpness"`
	Temperature float64 `json:"temperature"`
	Hue         float64 `json:"hue"`
	Shadow      float64 `json:"shadow"`
	Highlight   float64 `json:"highlight"`
}

// Get returns the value of f.
func (p FilterParameters) Get(f Field) float64 {
	switch f {
	case FieldBrightness:
		return p.Brightness
	case FieldContrast:
		return p.Contrast
	case FieldSaturation:
		return p.Saturation
	case FieldSharpness:
		return p.Sharpness
	case FieldTemperature:
		return p.Temperature
	case FieldHue:
		return p.Hue
	case FieldShadow:
		return p.Shadow
	case FieldHighlight:
		return p.Highlight
	default:
		return 0
	}
}

// Set assigns v to f. Unknown fields are ignored.
func (p *FilterParameters) Set(f Field, v float64) {
	switch f {
	case FieldBrightness:
		p.Brightness = v
	case FieldContrast:
		p.Contrast = v
	case FieldSaturation:
		p.Saturation = v
	case FieldSharpness:
		p.Sharpness = v
	case FieldTemperature:
		p.Temperature = v
	case FieldHue:
		p.Hue = v
	case FieldShadow:
		p.Shadow = v
	case FieldHighlight:
		p.Highlight = v
	}
}

// Validate reports every field that is NaN or outside its nominal range.
func (p FilterParameters) Validate() error {
	var errs criterio.FieldErrorsBuilder
	for _, f := range Fields() {
		v := p.Get(f)
		r := RangeOf(f)
		if math.IsNaN(v) || !r.Contains(v) {
			errs = errs.Append(string(f), fmt.Errorf("%g outside range %g ~ %g", v, r.Min, r.Max))
		}
	}
	return errs.ToError()
}

// Clamped returns a copy with every field forced into its nominal range.
// NaN and infinite values become 0.
func (p FilterParameters) Clamped() FilterParameters {
	var out FilterParameters
	for _, f := range Fields() {
		out.Set(f, RangeOf(f).Clamp(finite(p.Get(f))))
	}
	return out
}

// Summary lists the significant adjustments, e.g. "Brightness +62, Hue -12".
func (p FilterParameters) Summary() string {
	var parts []string
	for _, f := range Fields() {
		v := p.Get(f)
		if math.Abs(v) < SignificantChange {
			continue
		}
		sign := ""
		if v > 0 {
			sign = "+"
		}
		parts = append(parts, fmt.Sprintf("%s %s%g", RangeOf(f).Label, sign, v))
	}

	if len(parts) == 0 {
		return "no significant adjustment"
	}
	return strings.Join(parts, ", ")
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
