package params

import (
	"maps"
	"math"
	"slices"
)

const (
	// temperatureScaleThreshold is the raw magnitude above which a temperature
	// is assumed to arrive in a unit 100x larger than the parameter unit.
	temperatureScaleThreshold = 50.0
	temperatureScaleDivisor   = 100.0

	// hueBand is the practical hue rotation limit, narrower than the nominal range.
	hueBand = 30.0

	// noiseFloor is the magnitude below which an adjustment snaps to 0.
	noiseFloor = 0.5
)

// Normalizer converts raw analysis values into a bounded FilterParameters.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	rules RuleTable
}

// NewNormalizer creates a Normalizer using rules. A nil table uses DefaultRules.
func NewNormalizer(rules RuleTable) *Normalizer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Normalizer{rules: rules}
}

// Normalize maps raw field values into a complete FilterParameters. Unknown
// field names are ignored and missing fields stay 0. When several keys name
// the same field, the exact lowercase key wins, otherwise the last key in
// sorted order. It never fails.
func (n *Normalizer) Normalize(raw map[string]RawValue) FilterParameters {
	var out FilterParameters
	exact := make(map[Field]bool, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		f, ok := ParseField(key)
		if !ok || exact[f] {
			continue
		}
		out.Set(f, n.Field(f, raw[key].Info))
		exact[f] = key == string(f)
	}
	return out
}

// Field runs the normalization pipeline for a single field.
func (n *Normalizer) Field(f Field, info RawParameterInfo) float64 {
	r, ok := ranges[f]
	if !ok {
		return 0
	}

	v := finite(info.Value)
	if f == FieldTemperature && math.Abs(v) > temperatureScaleThreshold {
		v /= temperatureScaleDivisor
	}

	switch n.rules[f].Classify(info.Direction) {
	case PolarityNeutral:
		v = 0
	case PolarityPositive:
		v = math.Abs(v)
	case PolarityNegative:
		v = -math.Abs(v)
	}

	v = r.Clamp(v)
	if f == FieldHue {
		v = math.Max(-hueBand, math.Min(hueBand, v))
	}

	return round1(v)
}

// Normalize runs the default Normalizer.
func Normalize(raw map[string]RawValue) FilterParameters {
	return defaultNormalizer.Normalize(raw)
}

var defaultNormalizer = NewNormalizer(nil)

// round1 rounds to one decimal place and snaps sub-noise values to exactly 0.
func round1(v float64) float64 {
	if math.Abs(v) < noiseFloor {
		return 0
	}
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
