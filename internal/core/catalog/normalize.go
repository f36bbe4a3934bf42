package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Combining Diacritical Marks block.
var diacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize folds text for name matching: lower case, NFD decomposition
// with the combining diacritical marks removed, surrounding space trimmed.
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(diacritics)))
	folded, _, err := transform.String(t, lower)
	if err != nil {
		// transformers above never fail on valid input; keep the lower-cased text
		folded = lower
	}
	return strings.TrimSpace(folded)
}
