package raster

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Default perturbation strengths.
const (
	DefaultRotateAngle = 5.0
	DefaultSkewAngle   = 15.0
	DefaultBlurRadius  = 2.0
)

// maxShear bounds the canvas growth of Skew; steeper angles are a no-op.
const maxShear = math.MaxInt32

// Rotate rotates img by degrees about its center. Positive angles turn
// counter-clockwise. The canvas grows to hold every rotated corner and the
// uncovered area is filled with the background color.
func Rotate(img *image.Gray, degrees float64) *image.Gray {
	b := img.Bounds()
	bg := Background(img)
	w, h := float64(b.Dx()), float64(b.Dy())

	sin, cos := math.Sincos(degrees * math.Pi / 180)
	nw := expand(w*math.Abs(cos) + h*math.Abs(sin))
	nh := expand(w*math.Abs(sin) + h*math.Abs(cos))

	cx, cy := float64(b.Min.X)+w/2, float64(b.Min.Y)+h/2
	ncx, ncy := float64(nw)/2, float64(nh)/2

	// Source to destination; y grows downward, so +sin on x turns CCW.
	m := f64.Aff3{
		cos, sin, ncx - cos*cx - sin*cy,
		-sin, cos, ncy + sin*cx - cos*cy,
	}

	dst := uniform(nw, nh, bg)
	xdraw.CatmullRom.Transform(dst, m, img, b, xdraw.Src, nil)
	return binarize(dst, Ink(bg), bg)
}

// Skew shears img horizontally by tan(degrees). The canvas is widened by
// |tan(degrees)|·height so nothing is clipped; positive angles lean the top
// of the text to the right. Degenerate angles return an unchanged copy.
func Skew(img *image.Gray, degrees float64) *image.Gray {
	b := img.Bounds()
	bg := Background(img)
	w, h := b.Dx(), b.Dy()

	k := math.Tan(degrees * math.Pi / 180)
	shift := math.Abs(k) * float64(h)
	if math.IsNaN(shift) || shift > maxShear {
		return Clone(img)
	}
	nw := w + int(shift)
	if nw < 0 {
		return Clone(img)
	}

	offset := 0.0
	if k > 0 {
		offset = shift
	}
	m := f64.Aff3{
		1, -k, offset - float64(b.Min.X) + k*float64(b.Min.Y),
		0, 1, -float64(b.Min.Y),
	}

	dst := uniform(nw, h, bg)
	xdraw.CatmullRom.Transform(dst, m, img, b, xdraw.Src, nil)
	return binarize(dst, Ink(bg), bg)
}

// expand rounds a rotated extent up to whole pixels, ignoring float noise.
func expand(v float64) int {
	return max(int(math.Ceil(v-1e-6)), 1)
}
