package layout

import (
	"unicode"

	"golang.org/x/text/width"
)

const (
	cjkCharWidth   = 14.0
	latinCharWidth = 8.0
)

// EstimateTextWidth returns the heuristic rendered width of s in px: 14px per
// CJK rune, 8px per any other rune. No shaping or kerning is attempted.
func EstimateTextWidth(s string) float64 {
	w := 0.0
	for _, r := range s {
		if IsWide(r) {
			w += cjkCharWidth
		} else {
			w += latinCharWidth
		}
	}
	return w
}

// IsWide reports whether r renders at full CJK width: kana, Han ideographs,
// CJK symbols and punctuation, and fullwidth forms.
func IsWide(r rune) bool {
	switch {
	case r >= 0x3000 && r <= 0x303F:
		return true
	case unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han):
		return true
	}
	k := width.LookupRune(r).Kind()
	return k == width.EastAsianFullwidth
}
