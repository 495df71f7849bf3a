package raster

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Defaults for base renders.
const (
	DefaultCanvasSize  = 1000
	DefaultOrigin      = 15
	DefaultFontSize    = 25
	DefaultLineSpacing = 4
)

// Facer supplies a font face at a given pixel size. *fonts.Font satisfies it.
type Facer interface {
	Face(size float64) font.Face
}

// RenderOptions describes the canvas a token is drawn onto.
type RenderOptions struct {
	Canvas      image.Point // canvas width and height
	Origin      image.Point // top-left corner of the first line of text
	FontSize    float64     // pixel size of the face
	Foreground  color.Gray
	Background  color.Gray
	LineSpacing int // extra pixels between lines of multi-line text
}

// DefaultRenderOptions returns black text at (15,15) on a white 1000×1000
// canvas at 25px.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Canvas:      image.Pt(DefaultCanvasSize, DefaultCanvasSize),
		Origin:      image.Pt(DefaultOrigin, DefaultOrigin),
		FontSize:    DefaultFontSize,
		Foreground:  color.Gray{Y: 0},
		Background:  color.Gray{Y: 255},
		LineSpacing: DefaultLineSpacing,
	}
}

// Render draws text onto a fresh uniform canvas. Newlines start new lines;
// nothing is wrapped, and text running past the canvas edge is clipped.
// The antialiased drawing is snapped to the two palette colors.
func Render(text string, f Facer, opts RenderOptions) *image.Gray {
	face := f.Face(opts.FontSize)
	m := face.Metrics()
	ascent := float64(m.Ascent.Ceil())
	lineHeight := float64(m.Ascent.Ceil() + m.Descent.Ceil() + opts.LineSpacing)

	dc := gg.NewContext(opts.Canvas.X, opts.Canvas.Y)
	dc.SetColor(opts.Background)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetColor(opts.Foreground)

	x := float64(opts.Origin.X)
	for i, line := range strings.Split(text, "\n") {
		dc.DrawString(line, x, float64(opts.Origin.Y)+ascent+float64(i)*lineHeight)
	}

	return binarize(toGray(dc.Image()), opts.Foreground, opts.Background)
}
