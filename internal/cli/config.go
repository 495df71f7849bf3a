package cli

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textpics/pkg/errors"
	"github.com/matzehuels/textpics/pkg/fonts"
	"github.com/matzehuels/textpics/pkg/pipeline"
	"github.com/matzehuels/textpics/pkg/segment"
)

// genOpts holds the command-line flags shared by generate and words.
// Only flags the user actually set override the config file.
type genOpts struct {
	config         string   // TOML config file
	output         string   // output directory
	fonts          []string // builtin or installed font names
	labels         bool     // write labels.jsonl
	underlineStyle string   // auto, single, ruled
	nfc            bool     // NFC-normalize the corpus
	progress       bool     // show the progress view
	strip          bool     // strip punctuation from words

	rotate, skew, blur, underline, complex bool

	// kind letters, generate only
	char, word, sentence, paragraph, all bool
}

// kindFlags maps each granularity flag to its kind.
var kindFlags = []struct {
	name  string
	short string
	kind  segment.Kind
	usage string
}{
	{"chars", "c", segment.Character, "render characters"},
	{"words", "w", segment.Word, "render words (default)"},
	{"sentences", "s", segment.Sentence, "render sentences"},
	{"paragraphs", "p", segment.Paragraph, "render paragraphs"},
	{"all-text", "a", segment.Corpus, "render the whole corpus as one picture"},
}

// bindGenerateFlags registers the flags shared by generate and words.
func bindGenerateFlags(cmd *cobra.Command, o *genOpts) {
	f := cmd.Flags()
	f.StringVar(&o.config, "config", "", "TOML config file (flags override its values)")
	f.StringVarP(&o.output, "out", "o", pipeline.DefaultOutputDir, "output directory")
	f.StringArrayVar(&o.fonts, "font", nil, "builtin ("+strings.Join(fonts.BuiltinNames(), ", ")+") or installed font name (repeatable)")
	f.BoolVar(&o.labels, "labels", false, "write labels.jsonl next to the pictures")
	f.StringVar(&o.underlineStyle, "underline-style", string(pipeline.UnderlineAuto), "underline style: auto, single, ruled")
	f.BoolVar(&o.nfc, "nfc", false, "normalize the corpus to Unicode NFC")
	f.BoolVar(&o.progress, "progress", false, "show an interactive progress view")
	f.BoolVar(&o.strip, "strip-punctuation", false, "strip punctuation from words and characters")

	f.BoolVar(&o.rotate, "rotate", false, "add rotated variants (rot_ccw, rot_cw)")
	f.BoolVar(&o.skew, "skew", false, "add skewed variants (skew_r, skew_l)")
	f.BoolVar(&o.blur, "blur", false, "add a blurred variant")
	f.BoolVar(&o.underline, "underline", false, "add an underlined variant")
	f.BoolVar(&o.complex, "complex", false, "add skewed and blurred variants")
}

// bindKindFlags registers the granularity letters (generate only).
func bindKindFlags(cmd *cobra.Command, o *genOpts) {
	targets := map[segment.Kind]*bool{
		segment.Character: &o.char,
		segment.Word:      &o.word,
		segment.Sentence:  &o.sentence,
		segment.Paragraph: &o.paragraph,
		segment.Corpus:    &o.all,
	}
	for _, kf := range kindFlags {
		cmd.Flags().BoolVarP(targets[kf.kind], kf.name, kf.short, false, kf.usage)
	}
}

// =============================================================================
// Options Assembly
// =============================================================================

// buildOptions layers defaults, the config file, positional arguments and
// changed flags, in that order.
func buildOptions(cmd *cobra.Command, args []string, mode pipeline.Mode, o *genOpts) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if o.config != "" {
		if err := loadConfig(o.config, &opts); err != nil {
			return opts, err
		}
	}
	opts.Mode = mode

	if len(args) > 0 {
		opts.Corpus = args[0]
	}
	if len(args) > 1 {
		opts.FontDir = args[1]
	}

	changed := cmd.Flags().Changed
	if changed("out") {
		opts.OutputDir = o.output
	}
	if changed("font") {
		opts.Fonts = o.fonts
	}
	if changed("labels") {
		opts.Labels = o.labels
	}
	if changed("underline-style") {
		opts.UnderlineStyle = pipeline.UnderlineStyle(o.underlineStyle)
	}
	if changed("nfc") {
		opts.NormalizeNFC = o.nfc
	}
	if changed("strip-punctuation") {
		opts.StripPunctuation = o.strip
	}
	if changed("rotate") {
		opts.Variants.Rotate = o.rotate
	}
	if changed("skew") {
		opts.Variants.Skew = o.skew
	}
	if changed("blur") {
		opts.Variants.Blur = o.blur
	}
	if changed("underline") {
		opts.Variants.Underline = o.underline
	}
	if changed("complex") {
		opts.Variants.Complex = o.complex
	}
	if kinds, ok := o.kindSet(cmd); ok {
		opts.Kinds = kinds
	}

	return opts, opts.Validate()
}

// kindSet returns the kinds selected by flags; ok is false when no kind
// flag was given and the configured kinds should stand.
func (o *genOpts) kindSet(cmd *cobra.Command) (segment.KindSet, bool) {
	if cmd.Flags().Lookup("chars") == nil {
		return 0, false
	}
	selected := map[segment.Kind]bool{
		segment.Character: o.char,
		segment.Word:      o.word,
		segment.Sentence:  o.sentence,
		segment.Paragraph: o.paragraph,
		segment.Corpus:    o.all,
	}
	var set segment.KindSet
	given := false
	for _, kf := range kindFlags {
		if cmd.Flags().Changed(kf.name) {
			given = true
		}
		if selected[kf.kind] {
			set = set.With(kf.kind)
		}
	}
	return set, given
}

// loadConfig decodes a TOML file over opts. Keys that do not map to an
// option are rejected so typos fail loudly.
func loadConfig(path string, opts *pipeline.Options) error {
	if err := errors.ValidateFile(path, "config file"); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}
