package fonts

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/matzehuels/textpics/pkg/errors"
)

// Font is a parsed outline font. Faces are created lazily per point size and
// reused, so a Font can be shared across every token rendered in it.
type Font struct {
	Ref Ref

	font  *truetype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// Load reads and parses the font referenced by ref.
func Load(ref Ref) (*Font, error) {
	data := ref.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(ref.Path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read font %s", ref.Path)
		}
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font %s", ref.Name)
	}
	return &Font{Ref: ref, font: f, faces: make(map[float64]font.Face)}, nil
}

// Name returns the display name of the font.
func (f *Font) Name() string { return f.Ref.Name }

// Face returns a face scaled to size pixels (72 DPI, so points equal pixels).
func (f *Font) Face(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	f.faces[size] = face
	return face
}

// HasGlyph reports whether the font maps r to a real glyph.
func (f *Font) HasGlyph(r rune) bool {
	return f.font.Index(r) != 0
}

// Close releases every face handed out by Face.
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var first error
	for size, face := range f.faces {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
		delete(f.faces, size)
	}
	return first
}
