// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the maximum number of characters in a filter name.
const MaxNameLength = 20

var (
	errNameRequired = errors.New("name is required")
	errNameTooLong  = fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
)

// NormalizeName trims surrounding whitespace and converts the name to NFC so
// that visually identical names compare and count the same.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// FilterName validates a filter name after normalization. Names are 1 to 20
// characters of ASCII letters, digits, underscores, CJK ideographs, and
// single interior spaces.
func FilterName(name string) error {
	name = NormalizeName(name)
	if name == "" {
		return errNameRequired
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return errNameTooLong
	}

	prevSpace := false
	for _, r := range name {
		switch {
		case r == ' ':
			if prevSpace {
				return fmt.Errorf("name cannot contain consecutive spaces")
			}
			prevSpace = true
			continue
		case isNameRune(r):
		default:
			return fmt.Errorf("name contains invalid character %q (allowed: letters, digits, underscore, CJK)", r)
		}
		prevSpace = false
	}

	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	default:
		return unicode.Is(unicode.Han, r)
	}
}
