package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Blur applies a Gaussian blur with standard deviation radius. The result is
// grayscale: edges fade through intermediate values.
func Blur(img *image.Gray, radius float64) *image.Gray {
	if radius <= 0 {
		return Clone(img)
	}
	return toGray(imaging.Blur(img, radius))
}
