package views

import (
	"strings"
	"unicode"
)

// invisible lists codepoints that tcell cannot lay out in a single cell run.
// Emoji built from modifiers collapse to their base glyph, and bidi controls
// in push names would otherwise reorder the columns around them.
var invisible = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200B, Hi: 0x200F, Stride: 1}, // zero width space, joiners, LRM/RLM
		{Lo: 0x202A, Hi: 0x202E, Stride: 1}, // bidi embeddings and overrides
		{Lo: 0x2060, Hi: 0x2069, Stride: 1}, // word joiner, bidi isolates
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1}, // BOM
	},
	R32: []unicode.Range32{
		{Lo: 0x1F3FB, Hi: 0x1F3FF, Stride: 1}, // skin tones
		{Lo: 0xE0100, Hi: 0xE01EF, Stride: 1}, // variation selectors supplement
	},
}

// displayName makes a contact or group name safe for one table cell. Invisible
// codepoints are dropped, control characters (newlines in push names
// included) become spaces and surrounding space is trimmed.
func displayName(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(invisible, r):
			return -1
		case unicode.IsControl(r):
			return ' '
		default:
			return r
		}
	}, s)
	return strings.TrimSpace(out)
}
