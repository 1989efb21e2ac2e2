package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFieldLength is the longest menu field kept, counted in characters.
const MaxFieldLength = 50

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeValue normalizes a decoded form/JSON value. Anything that is not a
// string becomes the empty string.
func NormalizeValue(raw interface{}) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return Normalize(s)
}

// Normalize cleans a free-text menu field: trim, drop characters outside
// letters, digits, Latin-1 accented letters, parentheses, space, '/' and
// '\', cut to MaxFieldLength and apply first-upper/rest-lower casing.
//
// The casing is deliberately naive ("PF do DIA" -> "Pf do dia").
func Normalize(raw string) string {
	trimmed := TrimBlank(raw)

	var b strings.Builder
	b.Grow(len(trimmed))
	kept := 0
	for _, r := range trimmed {
		if !allowedRune(r) {
			continue
		}
		if kept == MaxFieldLength {
			break
		}
		b.WriteRune(r)
		kept++
	}
	return firstUpperRestLower(b.String())
}

// IsValidDate reports whether s has the shape YYYY-MM-DD. Only the shape is
// checked: "2024-13-99" is accepted.
func IsValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// TrimBlank trims the same blanks a browser-side String.prototype.trim does,
// so server and client sanitizers agree. NEL is not a blank there; BOM is.
func TrimBlank(s string) string {
	return strings.TrimFunc(s, isBlank)
}

func isBlank(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r)
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0xC0 && r <= 0xFF: // À-ÿ
		return true
	}
	switch r {
	case '(', ')', ' ', '/', '\\':
		return true
	}
	return false
}

func firstUpperRestLower(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	head := string(unicode.ToUpper(first))
	if first == 'ß' {
		// full case mapping, as the menu editor's browser does
		head = "SS"
	}
	return head + strings.ToLower(s[size:])
}
