// Package fonts locates and loads the scalable outline fonts text is
// rendered with.
//
// Fonts come from three places:
//
//   - a directory of .ttf files, searched flat or recursively ([Discover])
//   - fonts installed on the system, found by name ([System])
//   - fonts compiled into the binary from golang.org/x/image/font/gofont ([Builtin])
//
// A [Ref] only names a font; [Load] parses it into a [Font] that hands out
// sized faces for rendering.
package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/textpics/pkg/errors"
)

// Extension is the font file extension picked up by [Discover].
const Extension = ".ttf"

// Ref is a read-only reference to a font. Name is the display name used in
// output file names; either Path or Data identifies the font bytes.
type Ref struct {
	Name string
	Path string
	Data []byte
}

// String returns the display name.
func (r Ref) String() string { return r.Name }

// RefFromPath builds a Ref whose name is the file stem of path.
func RefFromPath(path string) Ref {
	base := filepath.Base(path)
	return Ref{Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: path}
}

// Discover returns references to every .ttf file in dir, sorted by path.
// With recursive set, subdirectories are searched as well.
func Discover(dir string, recursive bool) ([]Ref, error) {
	if err := errors.ValidateDir(dir, "font directory"); err != nil {
		return nil, err
	}

	var paths []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isFontFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", dir)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "list %s", dir)
		}
		for _, e := range entries {
			if !e.IsDir() && isFontFile(e.Name()) {
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
	}

	sort.Strings(paths)
	refs := make([]Ref, len(paths))
	for i, p := range paths {
		refs[i] = RefFromPath(p)
	}
	return refs, nil
}

func isFontFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// System looks up an installed font by file name or name fragment
// (e.g. "DejaVuSans" or "arial.ttf") in the platform font directories.
func System(name string) (Ref, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return Ref{}, errors.Wrap(errors.ErrCodeFontNotFound, err, "system font %q", name)
	}
	return RefFromPath(path), nil
}

var builtins = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// Builtin returns the embedded Go font with the given name.
func Builtin(name string) (Ref, bool) {
	data, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Ref{}, false
	}
	return Ref{Name: strings.ToLower(name), Data: data}, true
}

// BuiltinNames lists the embedded font names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a font name given on the command line to a Ref. Builtin names
// win over installed fonts.
func Resolve(name string) (Ref, error) {
	if ref, ok := Builtin(name); ok {
		return ref, nil
	}
	return System(name)
}
