package variant

import (
	"image"

	"github.com/matzehuels/textpics/pkg/raster"
)

// Variant names, used as a segment of the output file name.
const (
	Trim      = "trim"
	RotCCW    = "rot_ccw"
	RotCW     = "rot_cw"
	SkewR     = "skew_r"
	SkewL     = "skew_l"
	Blur      = "blur"
	Underline = "ul"
	SkewRBlur = "skew_r_blur"
	SkewLBlur = "skew_l_blur"
)

// Descriptor names a transform of the trimmed base.
type Descriptor struct {
	Name  string
	Apply func(*image.Gray) *image.Gray
}

// Flags selects the optional variants.
type Flags struct {
	Rotate    bool `toml:"rotate"`
	Skew      bool `toml:"skew"`
	Blur      bool `toml:"blur"`
	Underline bool `toml:"underline"`
	Complex   bool `toml:"complex"`
}

// Count returns how many artifacts one non-blank token produces per font.
func (f Flags) Count() int {
	n := 1
	if f.Rotate {
		n += 2
	}
	if f.Skew {
		n += 2
	}
	if f.Blur {
		n++
	}
	if f.Underline {
		n++
	}
	if f.Complex {
		n += 2
	}
	return n
}

// Params sets the strength of each perturbation.
type Params struct {
	RotateAngle float64 `toml:"rotate_angle"`
	SkewAngle   float64 `toml:"skew_angle"`
	BlurRadius  float64 `toml:"blur_radius"`
}

// DefaultParams returns 5° rotation, 15° skew and a blur radius of 2.
func DefaultParams() Params {
	return Params{
		RotateAngle: raster.DefaultRotateAngle,
		SkewAngle:   raster.DefaultSkewAngle,
		BlurRadius:  raster.DefaultBlurRadius,
	}
}

// Build returns the descriptors enabled by flags, in file-naming order.
// ul draws the underline variant and may be nil when Underline is off.
func Build(flags Flags, p Params, ul raster.Underliner) []Descriptor {
	var ds []Descriptor
	if flags.Rotate {
		ds = append(ds,
			Descriptor{RotCCW, func(img *image.Gray) *image.Gray { return raster.Rotate(img, p.RotateAngle) }},
			Descriptor{RotCW, func(img *image.Gray) *image.Gray { return raster.Rotate(img, -p.RotateAngle) }},
		)
	}
	if flags.Skew {
		ds = append(ds,
			Descriptor{SkewR, func(img *image.Gray) *image.Gray { return raster.Skew(img, p.SkewAngle) }},
			Descriptor{SkewL, func(img *image.Gray) *image.Gray { return raster.Skew(img, -p.SkewAngle) }},
		)
	}
	if flags.Blur {
		ds = append(ds, Descriptor{Blur, func(img *image.Gray) *image.Gray { return raster.Blur(img, p.BlurRadius) }})
	}
	if flags.Underline && ul != nil {
		ds = append(ds, Descriptor{Underline, ul.Underline})
	}
	if flags.Complex {
		ds = append(ds,
			Descriptor{SkewRBlur, func(img *image.Gray) *image.Gray {
				return raster.Blur(raster.Skew(img, p.SkewAngle), p.BlurRadius)
			}},
			Descriptor{SkewLBlur, func(img *image.Gray) *image.Gray {
				return raster.Blur(raster.Skew(img, -p.SkewAngle), p.BlurRadius)
			}},
		)
	}
	return ds
}
