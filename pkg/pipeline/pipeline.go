// Package pipeline drives dataset generation for textpics.
//
// It ties the other packages together: the corpus is segmented into
// tokens, every token is rendered in every font, and each render is turned
// into its variants and persisted. CLI commands and tests share this code
// so both see identical behavior.
//
// # Architecture
//
//  1. Load: read the corpus, discover and parse fonts
//  2. Segment: split the corpus into labeled tokens
//  3. Generate: for each font, for each token: wrap, render, trim, vary, save
//
// # Usage
//
//	opts := pipeline.DefaultOptions()
//	opts.Corpus = "sample_text/lorem_ipsum.txt"
//	opts.FontDir = "fonts/few"
//	opts.Variants.Skew = true
//	opts.Variants.Blur = true
//
//	result, err := pipeline.NewRunner(logger).Run(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Artifacts, "pictures written")
//
// Options is a plain value: it is built once (defaults, then config file,
// then flags), validated, and passed down unchanged.
package pipeline

import (
	"image"
	"image/color"

	"github.com/matzehuels/textpics/pkg/errors"
	"github.com/matzehuels/textpics/pkg/raster"
	"github.com/matzehuels/textpics/pkg/segment"
	"github.com/matzehuels/textpics/pkg/variant"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutputDir is where artifacts are written.
	DefaultOutputDir = "output"

	// DefaultBorder is the padding kept around trimmed text.
	DefaultBorder = 10
)

// Mode selects between the two generation variants.
type Mode string

const (
	// ModeTokens honors every granularity and searches font directories
	// recursively.
	ModeTokens Mode = "tokens"

	// ModeWords renders words only and looks at the top level of the font
	// directory only.
	ModeWords Mode = "words"
)

// UnderlineStyle selects the underline strategy.
type UnderlineStyle string

const (
	// UnderlineAuto picks ruled lines in tokens mode and a single line in
	// words mode.
	UnderlineAuto   UnderlineStyle = "auto"
	UnderlineSingle UnderlineStyle = "single"
	UnderlineRuled  UnderlineStyle = "ruled"
)

// ValidModes is the set of supported modes.
var ValidModes = map[Mode]bool{
	ModeTokens: true,
	ModeWords:  true,
}

// ValidUnderlineStyles is the set of supported underline styles.
var ValidUnderlineStyles = map[UnderlineStyle]bool{
	UnderlineAuto:   true,
	UnderlineSingle: true,
	UnderlineRuled:  true,
}

// =============================================================================
// Options - Generation Configuration
// =============================================================================

// RenderConfig describes the base canvas.
type RenderConfig struct {
	CanvasWidth  int     `toml:"canvas_width"`
	CanvasHeight int     `toml:"canvas_height"`
	OriginX      int     `toml:"origin_x"`
	OriginY      int     `toml:"origin_y"`
	FontSize     float64 `toml:"font_size"`
	LineSpacing  int     `toml:"line_spacing"`
	Border       int     `toml:"border"`
}

// Options contains all configuration for a generation run.
// The struct decodes from TOML (see internal/cli).
type Options struct {
	// Inputs
	Corpus  string   `toml:"corpus"`
	FontDir string   `toml:"font_dir"`
	Fonts   []string `toml:"fonts"` // builtin or installed font names

	// Output
	OutputDir string `toml:"output_dir"`
	Labels    bool   `toml:"labels"` // write labels.jsonl next to the images

	// Segmentation
	Mode             Mode            `toml:"mode"`
	Kinds            segment.KindSet `toml:"kinds"`
	StripPunctuation bool            `toml:"strip_punctuation"`
	NormalizeNFC     bool            `toml:"normalize_nfc"`
	WrapWidth        int             `toml:"wrap_width"`
	PrefixLen        int             `toml:"prefix_len"`

	// Rendering and variants
	Render         RenderConfig   `toml:"render"`
	Variants       variant.Flags  `toml:"variants"`
	Params         variant.Params `toml:"params"`
	UnderlineStyle UnderlineStyle `toml:"underline_style"`
}

// DefaultOptions returns the stock settings: 25px black
// text at (15,15) on a white 1000×1000 canvas, 10px border, words only.
func DefaultOptions() Options {
	return Options{
		OutputDir: DefaultOutputDir,
		Mode:      ModeTokens,
		WrapWidth: segment.DefaultWrapWidth,
		PrefixLen: variant.DefaultPrefixLen,
		Render: RenderConfig{
			CanvasWidth:  raster.DefaultCanvasSize,
			CanvasHeight: raster.DefaultCanvasSize,
			OriginX:      raster.DefaultOrigin,
			OriginY:      raster.DefaultOrigin,
			FontSize:     raster.DefaultFontSize,
			LineSpacing:  raster.DefaultLineSpacing,
			Border:       DefaultBorder,
		},
		Params:         variant.DefaultParams(),
		UnderlineStyle: UnderlineAuto,
	}
}

// WithDefaults returns a copy of o with every unset field defaulted.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.OutputDir == "" {
		o.OutputDir = d.OutputDir
	}
	if o.Mode == "" {
		o.Mode = d.Mode
	}
	if o.WrapWidth == 0 {
		o.WrapWidth = d.WrapWidth
	}
	if o.PrefixLen == 0 {
		o.PrefixLen = d.PrefixLen
	}
	if o.Render.CanvasWidth == 0 {
		o.Render.CanvasWidth = d.Render.CanvasWidth
	}
	if o.Render.CanvasHeight == 0 {
		o.Render.CanvasHeight = d.Render.CanvasHeight
	}
	if o.Render.FontSize == 0 {
		o.Render.FontSize = d.Render.FontSize
	}
	if o.Params == (variant.Params{}) {
		o.Params = d.Params
	}
	if o.UnderlineStyle == "" {
		o.UnderlineStyle = d.UnderlineStyle
	}
	return o
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks that o describes a runnable generation. It touches the
// filesystem only to check that inputs exist; nothing is created.
func (o Options) Validate() error {
	if err := o.ValidateSettings(); err != nil {
		return err
	}
	if err := errors.ValidateFile(o.Corpus, "corpus"); err != nil {
		return err
	}
	if o.FontDir == "" && len(o.Fonts) == 0 {
		return errors.New(errors.ErrCodeNoFonts, "no font directory or font names given")
	}
	if o.FontDir != "" {
		if err := errors.ValidateDir(o.FontDir, "font directory"); err != nil {
			return err
		}
	}
	return errors.ValidateOutputDir(o.OutputDir)
}

// ValidateSettings checks the non-path settings.
func (o Options) ValidateSettings() error {
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid mode: %q (must be one of: tokens, words)", o.Mode)
	}
	if !ValidUnderlineStyles[o.UnderlineStyle] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid underline style: %q (must be one of: auto, single, ruled)", o.UnderlineStyle)
	}
	r := o.Render
	switch {
	case r.CanvasWidth <= 0 || r.CanvasHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas must be positive, got %dx%d", r.CanvasWidth, r.CanvasHeight)
	case r.FontSize <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "font size must be positive, got %v", r.FontSize)
	case r.Border < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "border cannot be negative, got %d", r.Border)
	case o.WrapWidth <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "wrap width must be positive, got %d", o.WrapWidth)
	case o.PrefixLen <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "prefix length must be positive, got %d", o.PrefixLen)
	case o.Params.BlurRadius < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "blur radius cannot be negative, got %v", o.Params.BlurRadius)
	}
	return nil
}

// =============================================================================
// Derived Settings
// =============================================================================

// EffectiveKinds returns the granularities to emit. Words mode always emits
// words only; tokens mode defaults to words when nothing was selected.
func (o Options) EffectiveKinds() segment.KindSet {
	if o.Mode == ModeWords {
		return segment.NewKindSet(segment.Word)
	}
	return o.Kinds.OrDefault()
}

// RecursiveFonts reports whether the font directory is searched recursively.
func (o Options) RecursiveFonts() bool {
	return o.Mode != ModeWords
}

// SegmentConfig returns the segmenter settings.
func (o Options) SegmentConfig() segment.Config {
	return segment.Config{
		Kinds:            o.EffectiveKinds(),
		StripPunctuation: o.StripPunctuation,
		NormalizeNFC:     o.NormalizeNFC,
	}
}

// RenderOptions returns the raster settings for base renders.
func (o Options) RenderOptions() raster.RenderOptions {
	return raster.RenderOptions{
		Canvas:      image.Pt(o.Render.CanvasWidth, o.Render.CanvasHeight),
		Origin:      image.Pt(o.Render.OriginX, o.Render.OriginY),
		FontSize:    o.Render.FontSize,
		Foreground:  color.Gray{Y: 0},
		Background:  color.Gray{Y: 255},
		LineSpacing: o.Render.LineSpacing,
	}
}

// Underliner returns the underline strategy for the active mode.
func (o Options) Underliner() raster.Underliner {
	single := raster.SingleUnderline{FontSize: o.Render.FontSize, Border: o.Render.Border}
	ruled := raster.RuledUnderline{FontSize: o.Render.FontSize, Border: o.Render.Border}

	switch o.UnderlineStyle {
	case UnderlineSingle:
		return single
	case UnderlineRuled:
		return ruled
	}
	if o.Mode == ModeWords {
		return single
	}
	return ruled
}

// ArtifactsPerToken returns how many files each non-blank (font, token)
// pair produces.
func (o Options) ArtifactsPerToken() int {
	return o.Variants.Count()
}
