package params

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Directions(t *testing.T) {
	tests := []struct {
		name  string
		field string
		raw   RawValue
		want  float64
	}{
		{"positive keyword forces sign", "brightness", Directed("增加", -62), 62},
		{"negative keyword forces sign", "brightness", Directed("压暗", 30), -30},
		{"english positive", "contrast", Directed("Increase contrast", -12.34), 12.3},
		{"english negative", "saturation", Directed("reduce saturation", 8), -8},
		{"neutral wins over positive", "brightness", Directed("适中增加", 40), 0},
		{"unknown direction keeps sign", "sharpness", Directed("???", -17), -17},
		{"empty direction keeps sign", "shadow", Number(22.25), 22.3},
		{"clamped to range", "highlight", Directed("提升", 250), 100},
		{"clamped negative", "contrast", Directed("降低", 400), -100},
		{"below noise floor snaps to zero", "brightness", Directed("增加", 0.49), 0},
		{"at noise floor is kept", "brightness", Directed("增加", 0.5), 0.5},
		{"temperature warm", "temperature", Directed("偏暖", 30), 30},
		{"temperature scaled from large unit", "temperature", Directed("偏冷", 800), -8},
		{"temperature at threshold not scaled", "temperature", Directed("偏暖", 50), 50},
		{"hue narrow band", "hue", Number(170), 30},
		{"hue negative band", "hue", Directed("偏蓝", 45), -30},
		{"hue inside band", "hue", Directed("偏红", 12.26), 12.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]RawValue{tt.field: tt.raw})
			f, ok := ParseField(tt.field)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got.Get(f), 1e-9)
		})
	}
}

func TestNormalize_IgnoresUnknownAndDefaultsMissing(t *testing.T) {
	got := Normalize(map[string]RawValue{
		"vignette":   Number(50),
		"Brightness": Directed("brighten", 10),
	})

	assert.Equal(t, FilterParameters{Brightness: 10}, got)
}

func TestNormalize_CaseVariantKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]RawValue
		want FilterParameters
	}{
		{
			name: "exact key wins",
			raw: map[string]RawValue{
				"Brightness": Number(40),
				"brightness": Number(10),
				"BRIGHTNESS": Number(-20),
			},
			want: FilterParameters{Brightness: 10},
		},
		{
			name: "last sorted variant wins without an exact key",
			raw: map[string]RawValue{
				"HUE": Number(5),
				"Hue": Number(-5),
			},
			want: FilterParameters{Hue: -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 20 {
				assert.Equal(t, tt.want, Normalize(tt.raw))
			}
		})
	}
}

func TestNormalize_NonFiniteIsZero(t *testing.T) {
	got := Normalize(map[string]RawValue{
		"brightness":  Number(math.NaN()),
		"contrast":    Number(math.Inf(1)),
		"temperature": Directed("偏暖", math.Inf(-1)),
	})

	assert.Equal(t, FilterParameters{}, got)
}

func TestNormalize_NoNegativeZero(t *testing.T) {
	got := Normalize(map[string]RawValue{"brightness": Directed("降低", 0.2)})
	assert.False(t, math.Signbit(got.Brightness))
}

func TestNormalize_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	directions := []string{"", "增加", "降低", "适中", "偏暖", "偏冷", "偏红", "偏蓝", "garbage", "increase", "darken"}

	for i := 0; i < 2000; i++ {
		raw := make(map[string]RawValue)
		for _, f := range Fields() {
			v := (rng.Float64()*2 - 1) * math.Pow(10, float64(rng.IntN(6)))
			raw[string(f)] = Directed(directions[rng.IntN(len(directions))], v)
		}

		got := Normalize(raw)
		require.NoError(t, got.Validate(), "iteration %d: %+v", i, got)
		require.LessOrEqual(t, math.Abs(got.Hue), hueBand)
		for _, f := range Fields() {
			v := got.Get(f)
			if v != 0 {
				require.GreaterOrEqual(t, math.Abs(v), noiseFloor)
			}
		}
	}
}

func TestNormalize_NeutralAlwaysZero(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	for i := 0; i < 500; i++ {
		v := (rng.Float64()*2 - 1) * 10000
		for _, f := range Fields() {
			got := Normalize(map[string]RawValue{string(f): Directed("平衡", v)})
			require.Zero(t, got.Get(f), "field %s value %g", f, v)
		}
	}
}

func TestNormalizer_CustomRules(t *testing.T) {
	rules := DefaultRules().Merge(RuleTable{
		FieldBrightness: {Positive: []string{"lighter"}, Negative: []string{"heavier"}},
	})
	n := NewNormalizer(rules)

	got := n.Normalize(map[string]RawValue{
		"brightness": Directed("a bit lighter", -20),
		"contrast":   Directed("增加", -5),
	})

	assert.InDelta(t, 20, got.Brightness, 1e-9)
	assert.InDelta(t, 5, got.Contrast, 1e-9)
}

func TestRule_Classify(t *testing.T) {
	r := DefaultRules()[FieldTemperature]

	assert.Equal(t, PolarityNeutral, r.Classify("中性偏暖"))
	assert.Equal(t, PolarityPositive, r.Classify("WARM tones"))
	assert.Equal(t, PolarityNegative, r.Classify("偏冷"))
	assert.Equal(t, PolarityUnknown, r.Classify(""))
	assert.Equal(t, PolarityUnknown, r.Classify("brighter"))
}
