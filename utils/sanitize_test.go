package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation stripped", "feijoada!!", "Feijoada"},
		{"trimmed", "   arroz branco \t\n", "Arroz branco"},
		{"naive casing", "PF do DIA", "Pf do dia"},
		{"accents kept", "FEIJÃO TROPEIRO", "Feijão tropeiro"},
		{"allowed symbols", "suco (laranja)/limão\\uva", "Suco (laranja)/limão\\uva"},
		{"digits", "2 ovos", "2 ovos"},
		{"emoji and dashes removed", "bolo-de-cenoura 🍰", "Bolodecenoura "},
		{"outside latin-1 removed", "pão ŝ €", "Pão  "},
		{"bom trimmed", "\uFEFFsalada", "Salada"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
		{"sharp s first", "ßalat", "SSalat"},
		{"first accented", "ébano", "Ébano"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeTruncatesAfterFiltering(t *testing.T) {
	in := strings.Repeat("a!", 60)
	out := Normalize(in)
	assert.Equal(t, MaxFieldLength, utf8.RuneCountInString(out))
	assert.Equal(t, "A"+strings.Repeat("a", MaxFieldLength-1), out)

	accented := strings.Repeat("ç", 80)
	assert.Equal(t, MaxFieldLength, utf8.RuneCountInString(Normalize(accented)))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"feijoada!!",
		"PF do DIA",
		"  Arroz, feijão e farofa  ",
		"suco (laranja)/limão",
		strings.Repeat("macarrão ", 10),
		"Frango à parmegiana",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeOutputStaysInAllowedSet(t *testing.T) {
	out := Normalize("Arroz <script>alert('x')</script> & feijão; DROP TABLE")
	for _, r := range out {
		assert.True(t, allowedRune(r), "unexpected rune %q in %q", r, out)
	}
	assert.LessOrEqual(t, utf8.RuneCountInString(out), MaxFieldLength)
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "Feijoada", NormalizeValue("feijoada"))
	assert.Equal(t, "", NormalizeValue(42))
	assert.Equal(t, "", NormalizeValue(nil))
	assert.Equal(t, "", NormalizeValue([]string{"arroz"}))
	assert.Equal(t, "", NormalizeValue(map[string]interface{}{"a": "b"}))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-01-05"))
	assert.True(t, IsValidDate("2024-13-99"))
	assert.False(t, IsValidDate("2024-1-5"))
	assert.False(t, IsValidDate("abcd-ef-gh"))
	assert.False(t, IsValidDate("2024/01/05"))
	assert.False(t, IsValidDate(" 2024-01-05"))
	assert.False(t, IsValidDate("2024-01-05\n"))
	assert.False(t, IsValidDate(""))
}

func TestTrimBlank(t *testing.T) {
	assert.Equal(t, "x", TrimBlank(" \t\r\n x \uFEFF"))
	assert.Equal(t, "\u0085x", TrimBlank("\u0085x "))
}
