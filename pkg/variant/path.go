package variant

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/matzehuels/textpics/pkg/segment"
)

// DefaultPrefixLen is how many runes of the token text go into file names.
// Tokens sharing a prefix overwrite each other's files.
const DefaultPrefixLen = 20

// Stem returns the base path of a token's artifacts:
// dir/<kind>.<text prefix>.<font><ext>.
func Stem(dir string, tok segment.Token, font string, prefixLen int, ext string) string {
	name := tok.Kind.String() + "." + Prefix(tok.Text, prefixLen) + "." + font + ext
	return filepath.Join(dir, name)
}

// Prefix returns the first n runes of text, with path separators and
// control characters (including newlines) replaced by '_'.
func Prefix(text string, n int) string {
	r := []rune(text)
	if n >= 0 && len(r) > n {
		r = r[:n]
	}
	for i, c := range r {
		if c == '/' || c == '\\' || unicode.IsControl(c) {
			r[i] = '_'
		}
	}
	return string(r)
}

// ModifiedPath inserts name as a dot-separated segment before the final
// extension: "out/word.hi.serif.png" becomes "out/word.hi.serif.rot_cw.png".
func ModifiedPath(path, name string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + name + ext
}
