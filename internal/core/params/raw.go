package params

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawParameterInfo is one field of an analysis as reported by the producer.
// Direction is free text and may disagree with the sign of Value.
type RawParameterInfo struct {
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Reference string  `json:"reference"`
}

// UnmarshalJSON accepts numeric strings for value and degrades anything
// non-numeric to 0 instead of failing.
func (r *RawParameterInfo) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name      json.RawMessage `json:"name"`
		Direction json.RawMessage `json:"direction"`
		Value     json.RawMessage `json:"value"`
		Unit      json.RawMessage `json:"unit"`
		Reference json.RawMessage `json:"reference"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = RawParameterInfo{
		Name:      looseString(aux.Name),
		Direction: looseString(aux.Direction),
		Value:     looseNumber(aux.Value),
		Unit:      looseString(aux.Unit),
		Reference: looseString(aux.Reference),
	}
	return nil
}

// RawValue is the boundary representation of one analysis entry. Producers
// send either a RawParameterInfo object or a bare number; both resolve to an
// Info here and nothing downstream inspects the original shape again.
type RawValue struct {
	Info RawParameterInfo
}

// Number wraps a bare value with no direction hint.
func Number(v float64) RawValue {
	return RawValue{Info: RawParameterInfo{Value: v}}
}

// Directed wraps a value with a direction hint.
func Directed(direction string, v float64) RawValue {
	return RawValue{Info: RawParameterInfo{Direction: direction, Value: v}}
}

// UnmarshalJSON never fails: objects decode as RawParameterInfo, bare numbers
// or numeric strings become a value with no direction, anything else is 0.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var info RawParameterInfo
		if err := json.Unmarshal(data, &info); err == nil {
			v.Info = info
			return nil
		}
	}

	*v = Number(looseNumber(data))
	return nil
}

// MarshalJSON always writes the object form.
func (v RawValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Info)
}

// Analysis is the result handed over by the analysis producer.
type Analysis struct {
	Parameters      map[string]RawValue `json:"parameters"`
	ConfidenceScore float64             `json:"confidence_score"`
	Suggestions     []string            `json:"suggestions,omitempty"`
	AnalysisTime    float64             `json:"analysis_time,omitempty"`
}

// DecodeAnalysis parses an analysis document. Only a syntactically broken
// document is an error; malformed field values degrade to 0.
func DecodeAnalysis(data []byte) (Analysis, error) {
	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return Analysis{}, err
	}
	if a.Parameters == nil {
		a.Parameters = map[string]RawValue{}
	}
	a.ConfidenceScore = finite(a.ConfidenceScore)
	return a, nil
}

func looseString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return ""
}

func looseNumber(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return finite(f)
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}
