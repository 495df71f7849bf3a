package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/textpics/pkg/errors"
	"github.com/matzehuels/textpics/pkg/fonts"
	"github.com/matzehuels/textpics/pkg/observability"
	"github.com/matzehuels/textpics/pkg/raster"
	"github.com/matzehuels/textpics/pkg/segment"
	"github.com/matzehuels/textpics/pkg/sink"
	"github.com/matzehuels/textpics/pkg/variant"
)

// Runner executes generation runs.
//
// The Runner keeps no per-run state: the same Runner can execute several
// runs, one after another or from different goroutines, with different
// options.
type Runner struct {
	Logger *log.Logger

	// Hooks receives progress events. Nil means the globally registered
	// hooks (see observability.SetGenerateHooks).
	Hooks observability.GenerateHooks

	// Sink overrides where Run saves artifacts. Nil means files under
	// Options.OutputDir.
	Sink sink.Sink
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Stats summarizes a run.
type Stats struct {
	Fonts        int
	Tokens       int
	TokensByKind map[segment.Kind]int
	Artifacts    int           // files written
	Skipped      int           // (font, token) pairs that rendered blank
	Duration     time.Duration // wall time of the generation loop
}

// Result is returned by Run and Execute.
type Result struct {
	RunID     string
	OutputDir string
	Labels    string // path of labels.jsonl, empty when disabled
	Stats     Stats
}

// =============================================================================
// Run - Full Generation From Options
// =============================================================================

// Run validates opts, loads the corpus and fonts, and generates the
// dataset. Nothing is written when validation or loading fails.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.Corpus)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read corpus %s", opts.Corpus)
	}

	loaded, err := r.LoadFonts(opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, f := range loaded {
			_ = f.Close()
		}
	}()

	runID := uuid.NewString()
	s, labelsPath, closeSink, err := r.openSink(opts, runID)
	if err != nil {
		return nil, err
	}

	result, err := r.Execute(ctx, opts, string(data), loaded, s)
	if cerr := closeSink(); err == nil && cerr != nil {
		err = errors.Wrap(errors.ErrCodeWrite, cerr, "close labels")
	}
	if result != nil {
		result.RunID = runID
		result.Labels = labelsPath
	}
	return result, err
}

// LoadFonts resolves and parses every font opts selects: TTF files under
// FontDir followed by the named fonts. Any unreadable font fails the whole
// load, and an empty selection is an ErrCodeNoFonts error.
func (r *Runner) LoadFonts(opts Options) ([]*fonts.Font, error) {
	refs, err := ResolveFonts(opts)
	if err != nil {
		return nil, err
	}

	loaded := make([]*fonts.Font, 0, len(refs))
	for _, ref := range refs {
		f, err := fonts.Load(ref)
		if err != nil {
			for _, l := range loaded {
				_ = l.Close()
			}
			return nil, err
		}
		r.Logger.Debug("loaded font", "name", f.Name(), "path", ref.Path)
		loaded = append(loaded, f)
	}
	return loaded, nil
}

// ResolveFonts returns the font references opts selects without parsing
// them.
func ResolveFonts(opts Options) ([]fonts.Ref, error) {
	var refs []fonts.Ref
	if opts.FontDir != "" {
		found, err := fonts.Discover(opts.FontDir, opts.RecursiveFonts())
		if err != nil {
			return nil, err
		}
		refs = append(refs, found...)
	}
	for _, name := range opts.Fonts {
		ref, err := fonts.Resolve(name)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		where := opts.FontDir
		if where == "" {
			where = "the given font names"
		}
		return nil, errors.New(errors.ErrCodeNoFonts, "no %s fonts found in %s", fonts.Extension, where)
	}
	return refs, nil
}

func (r *Runner) openSink(opts Options, runID string) (sink.Sink, string, func() error, error) {
	noop := func() error { return nil }

	s := r.Sink
	if s == nil {
		fs, err := sink.NewFileSink(opts.OutputDir)
		if err != nil {
			return nil, "", noop, err
		}
		s = fs
	}
	if !opts.Labels {
		return s, "", noop, nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, "", noop, errors.Wrap(errors.ErrCodeWrite, err, "create output directory")
	}
	path := filepath.Join(opts.OutputDir, sink.LabelsFile)
	ls, err := sink.NewLabelSink(s, path, runID)
	if err != nil {
		return nil, "", noop, err
	}
	return ls, path, ls.Close, nil
}

// =============================================================================
// Execute - Generation Loop
// =============================================================================

// Execute segments corpus and renders every token in every font, saving
// artifacts to s. Fonts form the outer loop, tokens the inner. The context
// is checked between tokens; a cancelled run returns the partial result
// together with the context error.
func (r *Runner) Execute(ctx context.Context, opts Options, corpus string, fs []*fonts.Font, s sink.Sink) (*Result, error) {
	opts = opts.WithDefaults()
	if err := opts.ValidateSettings(); err != nil {
		return nil, err
	}
	if len(fs) == 0 {
		return nil, errors.New(errors.ErrCodeNoFonts, "no fonts to render with")
	}
	hooks := r.hooks()

	tokens := segment.Segment(corpus, opts.SegmentConfig())
	result := &Result{
		OutputDir: opts.OutputDir,
		Stats: Stats{
			Fonts:        len(fs),
			Tokens:       tokens.Len(),
			TokensByKind: make(map[segment.Kind]int),
		},
	}
	for _, k := range opts.EffectiveKinds().Kinds() {
		result.Stats.TokensByKind[k] = tokens.Count(k)
		r.Logger.Info("segmented corpus", "kind", k, "tokens", tokens.Count(k))
	}

	expected := len(fs) * tokens.Len() * opts.ArtifactsPerToken()
	hooks.OnRunStart(ctx, len(fs), tokens.Len(), expected)

	start := time.Now()
	err := r.generate(ctx, opts, tokens.Tokens(), fs, s, hooks, &result.Stats)
	result.Stats.Duration = time.Since(start)
	hooks.OnRunComplete(ctx, result.Stats.Artifacts, result.Stats.Duration, err)

	if err != nil {
		return result, err
	}
	r.Logger.Info("generation complete",
		"artifacts", result.Stats.Artifacts,
		"skipped", result.Stats.Skipped,
		"duration", result.Stats.Duration)
	return result, nil
}

func (r *Runner) generate(ctx context.Context, opts Options, tokens []segment.Token, fs []*fonts.Font, s sink.Sink, hooks observability.GenerateHooks, stats *Stats) error {
	pipe := &variant.Pipeline{
		Border:   opts.Render.Border,
		Variants: variant.Build(opts.Variants, opts.Params, opts.Underliner()),
		Sink:     s,
	}
	renderOpts := opts.RenderOptions()

	for i, f := range fs {
		hooks.OnFontStart(ctx, f.Name(), i, len(fs))
		r.Logger.Info("generating pictures", "font", f.Name(), "font_index", i+1, "fonts", len(fs))

		for _, tok := range tokens {
			if err := ctx.Err(); err != nil {
				return err
			}
			tokStart := time.Now()

			base, err := renderToken(tok, f, opts.WrapWidth, renderOpts)
			if err != nil {
				return err
			}
			stem := variant.Stem(opts.OutputDir, tok, f.Name(), opts.PrefixLen, sink.Ext)
			n, err := pipe.Apply(base, stem, sink.Meta{Token: tok, Font: f.Name()})
			stats.Artifacts += n
			if err != nil {
				return err
			}
			if n == 0 {
				stats.Skipped++
				r.Logger.Debug("skipped blank token", "font", f.Name(), "kind", tok.Kind, "text", tok.Text)
			}
			hooks.OnTokenComplete(ctx, f.Name(), tok.Kind.String(), n, time.Since(tokStart))
		}
	}
	return nil
}

// renderToken draws the wrapped token text. Malformed glyph data can make
// the rasterizer panic; that is reported as a render error.
func renderToken(tok segment.Token, f *fonts.Font, width int, opts raster.RenderOptions) (img *image.Gray, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.New(errors.ErrCodeRender, "render %s %q with %s: %v", tok.Kind, variant.Prefix(tok.Text, variant.DefaultPrefixLen), f.Name(), p)
		}
	}()
	return raster.Render(tok.Wrapped(width), f, opts), nil
}

func (r *Runner) hooks() observability.GenerateHooks {
	if r.Hooks != nil {
		return r.Hooks
	}
	return observability.Generate()
}

// Describe returns a one-line summary of what opts will generate.
func Describe(opts Options) string {
	return fmt.Sprintf("%s mode, kinds %s, %d artifact(s) per token",
		opts.Mode, opts.EffectiveKinds(), opts.ArtifactsPerToken())
}
