// Package raster implements the image primitives used to synthesize OCR
// training images: rendering text onto a blank canvas, trimming to the inked
// region, and the perturbations that imitate scanning noise.
//
// # Rasters
//
// A raster is an *image.Gray. Rendered rasters hold exactly two values, the
// foreground (ink) and background (paper). The background is always probed
// from pixel (0,0), so every primitive works for inverted palettes too.
//
// Every primitive is a pure function: it allocates and returns a new raster
// and never writes to its input. Variants derived from one trimmed base can
// therefore be produced in any order without interfering with each other.
//
// # Primitives
//
//   - [Render]: draw (possibly multi-line) text with a font face
//   - [Trim]: crop to the content bounding box plus a border
//   - [Rotate]: rotate about the center, expanding the canvas
//   - [Skew]: horizontal shear, widening the canvas
//   - [Blur]: Gaussian blur (output is grayscale)
//   - [SingleUnderline], [RuledUnderline]: underline strategies
//
// Rotate and Skew resample with a Catmull-Rom cubic kernel from
// golang.org/x/image/draw and re-binarize the result.
package raster
