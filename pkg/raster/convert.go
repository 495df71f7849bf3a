package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Background returns the color of pixel (0,0), which every primitive treats
// as the paper color.
func Background(img *image.Gray) color.Gray {
	b := img.Bounds()
	return img.GrayAt(b.Min.X, b.Min.Y)
}

// Ink returns the foreground color paired with bg: black on light paper,
// white on dark paper.
func Ink(bg color.Gray) color.Gray {
	if bg.Y >= 128 {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 255}
}

// uniform allocates a w×h raster filled with c.
func uniform(w, h int, c color.Gray) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = c.Y
	}
	return g
}

// toGray copies img into a new zero-origin gray raster.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// Clone returns a deep copy of img with a zero origin.
func Clone(img *image.Gray) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return dst
}

// binarize snaps every pixel of g to whichever of fg and bg is closer.
// Ties go to the background. g is modified and returned.
func binarize(g *image.Gray, fg, bg color.Gray) *image.Gray {
	for i, v := range g.Pix {
		if dist(v, fg.Y) < dist(v, bg.Y) {
			g.Pix[i] = fg.Y
		} else {
			g.Pix[i] = bg.Y
		}
	}
	return g
}

func dist(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
