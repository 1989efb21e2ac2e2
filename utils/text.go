package utils

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the "Combining Diacritical Marks" block, U+0300..U+036F.
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

// StripAccents decomposes s (NFD) and removes the combining diacritical
// marks, so "João Conceição" becomes "Joao Conceicao". The result is left
// decomposed for anything outside that block.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
