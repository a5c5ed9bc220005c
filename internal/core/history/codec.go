package history

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// The persisted blob is the JSON collection, percent-encoded the way
// encodeURIComponent does it, then base64 encoded. This is a text-safe
// transport encoding. It does not hide or protect the data.

func encodeBlob(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}

	return encodeText(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func encodeText(data []byte) string {
	return base64.StdEncoding.EncodeToString([]byte(escapeComponent(data)))
}

// escapeComponent percent-encodes every byte except A-Z a-z 0-9 and
// - _ . ! ~ * ' ( ), matching encodeURIComponent on UTF-8 input.
func escapeComponent(data []byte) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(data) * 3)
	for _, c := range data {
		if isComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isComponentSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// decodeBlob reverses encodeBlob. Blobs that are not in the transport
// encoding are parsed as plain JSON, which is how older stores were written.
func decodeBlob(blob string) ([]Record, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return []Record{}, nil
	}

	text := blob
	if raw, err := base64.StdEncoding.DecodeString(blob); err == nil {
		if unescaped, err := url.PathUnescape(string(raw)); err == nil {
			text = unescaped
		}
	}

	var records []Record
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	if records == nil {
		records = []Record{}
	}

	return records, nil
}
