package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// ContentBounds returns the smallest rectangle holding every pixel that
// differs from the background. ok is false for an all-background raster.
func ContentBounds(img *image.Gray) (box image.Rectangle, ok bool) {
	bg := Background(img).Y
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Min.X, y)+b.Dx()]
		for i, v := range row {
			if v == bg {
				continue
			}
			x := b.Min.X + i
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Trim crops img to its content bounding box grown by border pixels on each
// side, clamped to the raster. It returns nil when img is entirely
// background; callers treat that as nothing to save.
func Trim(img *image.Gray, border int) *image.Gray {
	box, ok := ContentBounds(img)
	if !ok {
		return nil
	}
	border = max(border, 0)
	box = image.Rect(box.Min.X-border, box.Min.Y-border, box.Max.X+border, box.Max.Y+border).
		Intersect(img.Bounds())
	return toGray(imaging.Crop(img, box))
}
