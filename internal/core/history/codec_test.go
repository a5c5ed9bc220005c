package history

import (
	"encoding/base64"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tonebook/internal/core/params"
)

func TestBlob_RoundTrip(t *testing.T) {
	records := []Record{
		{
			ID:           "param_1700000000000_abc123xyz",
			Name:         "暖色 100% glow",
			Parameters:   params.FilterParameters{Brightness: 12.5, Hue: -30},
			SavedTime:    time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC),
			AnalysisMeta: &AnalysisMeta{ConfidenceScore: 0.7, Suggestions: []string{"a&b=c"}},
		},
	}

	blob, err := encodeBlob(records)
	require.NoError(t, err)

	got, err := decodeBlob(blob)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestBlob_Layers(t *testing.T) {
	blob, err := encodeBlob([]Record{{ID: "x", Name: "名"}})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "名")

	text, err := url.PathUnescape(string(raw))
	require.NoError(t, err)
	assert.Contains(t, text, `"name":"名"`)
}

func TestBlob_Empty(t *testing.T) {
	blob, err := encodeBlob(nil)
	require.NoError(t, err)

	got, err := decodeBlob(blob)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = decodeBlob("  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBlob_PlainJSONFallback(t *testing.T) {
	got, err := decodeBlob(`[{"id":"a","name":"legacy","parameters":{},"saved_time":"2023-01-01T00:00:00Z"}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "legacy", got[0].Name)
}

func TestBlob_Garbage(t *testing.T) {
	_, err := decodeBlob("bm90IGpzb24=") // base64 of "not json"
	assert.Error(t, err)
}

// browserBlob was produced by btoa(encodeURIComponent(JSON.stringify(records)))
// for the record in TestBlob_MatchesBrowserEncoding.
const browserBlob = "JTVCJTdCJTIyaWQlMjIlM0ElMjJwYXJhbV8xNzA5Mjg3MjAwMDAwX2FiYzEyM3h5eiUyMiUyQyUyMm5hbWUlMjIlM0ElMjIlRTYlOUElOTYlRTglODklQjIlMjBnbG93JTIyJTJDJTIycGFyYW1ldGVycyUyMiUzQSU3QiUyMmJyaWdodG5lc3MlMjIlM0ExMi41JTJDJTIyY29udHJhc3QlMjIlM0EwJTJDJTIyc2F0dXJhdGlvbiUyMiUzQS04JTJDJTIyc2hhcnBuZXNzJTIyJTNBMCUyQyUyMnRlbXBlcmF0dXJlJTIyJTNBMy41JTJDJTIyaHVlJTIyJTNBMCUyQyUyMnNoYWRvdyUyMiUzQTAlMkMlMjJoaWdobGlnaHQlMjIlM0EwJTdEJTJDJTIyc2F2ZWRfdGltZSUyMiUzQSUyMjIwMjQtMDMtMDFUMTAlM0EwMCUzQTAwWiUyMiUyQyUyMmFuYWx5c2lzX3Jlc3VsdCUyMiUzQSU3QiUyMmNvbmZpZGVuY2Vfc2NvcmUlMjIlM0EwLjglMkMlMjJzdWdnZXN0aW9ucyUyMiUzQSU1QiUyMndhcm0lMjAlMjYlMjBzb2Z0JTIyJTVEJTdEJTdEJTVE"

func TestBlob_MatchesBrowserEncoding(t *testing.T) {
	records := []Record{
		{
			ID:           "param_1709287200000_abc123xyz",
			Name:         "暖色 glow",
			Parameters:   params.FilterParameters{Brightness: 12.5, Saturation: -8, Temperature: 3.5},
			SavedTime:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			AnalysisMeta: &AnalysisMeta{ConfidenceScore: 0.8, Suggestions: []string{"warm & soft"}},
		},
	}

	blob, err := encodeBlob(records)
	require.NoError(t, err)
	assert.Equal(t, browserBlob, blob)

	got, err := decodeBlob(browserBlob)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `AZaz09-_.!~*'()`, want: `AZaz09-_.!~*'()`},
		{in: `:=&+$@/?#,;`, want: `%3A%3D%26%2B%24%40%2F%3F%23%2C%3B`},
		{in: `"{} []`, want: `%22%7B%7D%20%5B%5D`},
		{in: "暖", want: "%E6%9A%96"},
		{in: "%", want: "%25"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeComponent([]byte(tt.in)), "input %q", tt.in)
	}
}

func TestEncodeText_Empty(t *testing.T) {
	assert.Equal(t, "JTVCJTVE", encodeText([]byte("[]")))
}
