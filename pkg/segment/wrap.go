package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultWrapWidth is the line length above which tokens are wrapped.
const DefaultWrapWidth = 80

// Wrap breaks text into lines of at least width runes. Text of width runes
// or fewer is returned as is. Otherwise, once a line holds width runes, the
// next whitespace rune is replaced by a newline; a word is never split, so a
// line runs past width until whitespace appears. Existing newlines start a
// new line.
func Wrap(text string, width int) string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	n := 0
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune(r)
			n = 0
		case n >= width && unicode.IsSpace(r):
			b.WriteByte('\n')
			n = 0
		default:
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}
