package raster

import (
	"image"

	"github.com/fogleman/gg"
)

// UnderlineWidth is the stroke width of underlines in pixels.
const UnderlineWidth = 4

// Underliner draws underlines onto a copy of a trimmed raster.
type Underliner interface {
	Underline(img *image.Gray) *image.Gray
}

// SingleUnderline draws one line under short tokens (characters, words).
// The line sits 15% of the font size above the bottom edge and spans the
// raster minus Border on each side.
type SingleUnderline struct {
	FontSize float64
	Border   int
}

// Underline implements Underliner.
func (u SingleUnderline) Underline(img *image.Gray) *image.Gray {
	return drawRules(img, u.Border, []float64{firstRule(img, u.FontSize)})
}

// RuledUnderline draws the first line like SingleUnderline and then repeats
// it every FontSize+3 pixels up to the top border, imitating ruled paper
// behind multi-line text.
type RuledUnderline struct {
	FontSize float64
	Border   int
}

// Underline implements Underliner.
func (u RuledUnderline) Underline(img *image.Gray) *image.Gray {
	step := u.FontSize + 3
	var ys []float64
	for y := firstRule(img, u.FontSize); y >= float64(u.Border); y -= step {
		ys = append(ys, y)
	}
	return drawRules(img, u.Border, ys)
}

func firstRule(img *image.Gray, fontSize float64) float64 {
	return float64(img.Bounds().Dy() - int(0.15*fontSize))
}

func drawRules(img *image.Gray, border int, ys []float64) *image.Gray {
	bg := Background(img)
	w := float64(img.Bounds().Dx())

	dc := gg.NewContextForImage(img)
	dc.SetColor(Ink(bg))
	dc.SetLineWidth(UnderlineWidth)
	dc.SetLineCapButt()
	for _, y := range ys {
		dc.DrawLine(float64(border), y, w-float64(border), y)
		dc.Stroke()
	}
	return binarize(toGray(dc.Image()), Ink(bg), bg)
}
