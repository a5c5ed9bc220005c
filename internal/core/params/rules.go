package params

import "strings"

// Polarity is the outcome of classifying a direction description.
type Polarity int

const (
	PolarityUnknown Polarity = iota
	PolarityNeutral
	PolarityPositive
	PolarityNegative
)

// Rule holds the keyword sets used to classify a direction for one field.
// Keywords match as case-insensitive substrings.
type Rule struct {
	Neutral  []string `yaml:"neutral"`
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// Classify returns the first polarity whose keywords appear in direction,
// checking neutral, then positive, then negative.
func (r Rule) Classify(direction string) Polarity {
	d := strings.ToLower(direction)
	if d == "" {
		return PolarityUnknown
	}

	switch {
	case containsAny(d, r.Neutral):
		return PolarityNeutral
	case containsAny(d, r.Positive):
		return PolarityPositive
	case containsAny(d, r.Negative):
		return PolarityNegative
	default:
		return PolarityUnknown
	}
}

// RuleTable maps each field to its classification rule.
type RuleTable map[Field]Rule

// Merge returns a copy of t where every field present in overrides replaces
// the corresponding rule.
func (t RuleTable) Merge(overrides RuleTable) RuleTable {
	out := make(RuleTable, len(t)+len(overrides))
	for f, r := range t {
		out[f] = r
	}
	for f, r := range overrides {
		out[f] = r
	}
	return out
}

var neutralWords = []string{"适中", "平衡", "正常", "moderate", "balanced", "normal"}

// DefaultRules returns the built-in keyword table. It carries the Chinese
// vocabulary emitted by the analysis service plus English equivalents.
func DefaultRules() RuleTable {
	return RuleTable{
		FieldBrightness: {
			Neutral:  neutralWords,
			Positive: []string{"增加", "提亮", "提升", "增强", "increase", "brighten", "raise", "boost"},
			Negative: []string{"降低", "减少", "压暗", "减弱", "decrease", "darken", "lower", "reduce"},
		},
		FieldContrast: {
			Neutral:  neutralWords,
			Positive: []string{"增加", "提升", "增强", "强化", "increase", "raise", "boost", "strengthen"},
			Negative: []string{"降低", "减少", "柔化", "减弱", "decrease", "lower", "reduce", "soften"},
		},
		FieldSaturation: {
			Neutral:  neutralWords,
			Positive: []string{"增加", "提升", "增强", "鲜艳", "increase", "raise", "boost", "vivid"},
			Negative: []string{"降低", "减少", "淡化", "减弱", "decrease", "lower", "reduce", "mute", "desaturate"},
		},
		FieldSharpness: {
			Neutral:  neutralWords,
			Positive: []string{"增强", "锐化", "清晰", "提升", "increase", "sharpen", "crisp", "boost"},
			Negative: []string{"降低", "模糊", "柔化", "减弱", "decrease", "blur", "soften", "reduce"},
		},
		FieldTemperature: {
			Neutral:  []string{"中性", "平衡", "正常", "neutral", "balanced", "normal"},
			Positive: []string{"偏暖", "暖色", "黄调", "橙调", "warm", "yellow", "orange"},
			Negative: []string{"偏冷", "冷色", "蓝调", "青调", "cool", "cold", "blue", "cyan"},
		},
		FieldHue: {
			Neutral:  neutralWords,
			Positive: []string{"偏红", "偏品红", "red", "magenta"},
			Negative: []string{"偏蓝", "偏绿", "blue", "green"},
		},
		FieldShadow: {
			Neutral:  neutralWords,
			Positive: []string{"提亮", "增加", "提升", "恢复", "lift", "brighten", "increase", "recover"},
			Negative: []string{"压暗", "降低", "减少", "crush", "darken", "decrease", "deepen"},
		},
		FieldHighlight: {
			Neutral:  neutralWords,
			Positive: []string{"提亮", "增加", "提升", "brighten", "increase", "boost"},
			Negative: []string{"降低", "减少", "压制", "恢复", "decrease", "reduce", "recover", "suppress"},
		},
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
