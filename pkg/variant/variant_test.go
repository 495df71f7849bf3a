package variant

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/textpics/pkg/raster"
	"github.com/matzehuels/textpics/pkg/segment"
	"github.com/matzehuels/textpics/pkg/sink"
)

func inked(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for y := h / 4; y < 3*h/4; y++ {
		for x := w / 4; x < 3*w/4; x++ {
			img.SetGray(x, y, color.Gray{})
		}
	}
	return img
}

func TestFlagsCount(t *testing.T) {
	tests := []struct {
		flags Flags
		want  int
	}{
		{Flags{}, 1},
		{Flags{Rotate: true}, 3},
		{Flags{Rotate: true, Skew: true}, 5},
		{Flags{Blur: true, Underline: true}, 3},
		{Flags{Complex: true}, 3},
		{Flags{Rotate: true, Skew: true, Blur: true, Underline: true, Complex: true}, 9},
	}
	for _, tt := range tests {
		if got := tt.flags.Count(); got != tt.want {
			t.Errorf("%+v.Count() = %d, want %d", tt.flags, got, tt.want)
		}
	}
}

func TestBuildOrder(t *testing.T) {
	all := Flags{Rotate: true, Skew: true, Blur: true, Underline: true, Complex: true}
	ul := raster.SingleUnderline{FontSize: 25, Border: 10}

	var names []string
	for _, d := range Build(all, DefaultParams(), ul) {
		names = append(names, d.Name)
	}
	want := []string{RotCCW, RotCW, SkewR, SkewL, Blur, Underline, SkewRBlur, SkewLBlur}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Build() = %v, want %v", names, want)
	}
	if len(names)+1 != all.Count() {
		t.Error("Build() and Count() disagree")
	}
}

func TestModifiedPath(t *testing.T) {
	tests := []struct {
		path, name, want string
	}{
		{"out/word.hello.serif.png", "trim", "out/word.hello.serif.trim.png"},
		{"out/word.world..serif.png", "rot_cw", "out/word.world..serif.rot_cw.png"},
		{"out.d/word.x.f.png", "blur", "out.d/word.x.f.blur.png"},
		{"noext", "ul", "noext.ul"},
	}
	for _, tt := range tests {
		if got := ModifiedPath(tt.path, tt.name); got != tt.want {
			t.Errorf("ModifiedPath(%q, %q) = %q, want %q", tt.path, tt.name, got, tt.want)
		}
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"Hello", 20, "Hello"},
		{"abcdefghijklmnopqrstuvwxyz", 20, "abcdefghijklmnopqrst"},
		{"día por día por día por", 20, "día por día por día "},
		{"and/or", 20, "and_or"},
		{"one\ntwo", 20, "one_two"},
		{"", 20, ""},
	}
	for _, tt := range tests {
		if got := Prefix(tt.text, tt.n); got != tt.want {
			t.Errorf("Prefix(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tok := segment.Token{Text: "world.", Kind: segment.Word}
	got := Stem("output", tok, "serif", DefaultPrefixLen, ".png")
	if want := filepath.Join("output", "word.world..serif.png"); got != want {
		t.Errorf("Stem() = %q, want %q", got, want)
	}
}

func TestPipelineApply(t *testing.T) {
	mem := sink.NewMemorySink()
	flags := Flags{Rotate: true, Skew: true}
	p := &Pipeline{Border: 2, Variants: Build(flags, DefaultParams(), nil), Sink: mem}

	base := inked(40, 20)
	before := append([]byte(nil), base.Pix...)
	meta := sink.Meta{Token: segment.Token{Text: "x", Kind: segment.Word}, Font: "f"}

	n, err := p.Apply(base, "out/word.x.f.png", meta)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if n != 5 || n != flags.Count() {
		t.Errorf("Apply() = %d, want 5", n)
	}
	want := []string{
		"out/word.x.f.trim.png",
		"out/word.x.f.rot_ccw.png",
		"out/word.x.f.rot_cw.png",
		"out/word.x.f.skew_r.png",
		"out/word.x.f.skew_l.png",
	}
	if got := paths(mem); !reflect.DeepEqual(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
	if !bytes.Equal(base.Pix, before) {
		t.Error("Apply() modified the base raster")
	}

	arts := mem.Artifacts()
	trimmed := arts[0].Image.(*image.Gray)
	if trimmed.Bounds().Size() != image.Pt(24, 14) {
		t.Errorf("trimmed size = %v, want 24x14", trimmed.Bounds().Size())
	}
	for _, a := range arts {
		if a.Meta.Token != meta.Token || a.Meta.Font != "f" {
			t.Errorf("%s: meta = %+v", a.Path, a.Meta)
		}
	}
	if arts[3].Meta.Variant != SkewR {
		t.Errorf("variant = %q, want %q", arts[3].Meta.Variant, SkewR)
	}
}

func TestPipelineVariantsDeriveFromTrim(t *testing.T) {
	mem := sink.NewMemorySink()
	p := &Pipeline{Border: 0, Variants: Build(Flags{Blur: true, Rotate: true}, DefaultParams(), nil), Sink: mem}

	if _, err := p.Apply(inked(40, 40), "o.png", sink.Meta{}); err != nil {
		t.Fatal(err)
	}
	arts := mem.Artifacts()
	trimmed := arts[0].Image.(*image.Gray)
	want := raster.Rotate(trimmed, 5)
	if got := arts[1].Image.(*image.Gray); !bytes.Equal(got.Pix, want.Pix) {
		t.Error("rot_ccw should be computed from the trimmed base")
	}
	wantBlur := raster.Blur(trimmed, 2)
	if got := arts[3].Image.(*image.Gray); !bytes.Equal(got.Pix, wantBlur.Pix) {
		t.Error("blur should be computed from the trimmed base, not a rotated variant")
	}
}

func TestPipelineBlankBase(t *testing.T) {
	mem := sink.NewMemorySink()
	all := Flags{Rotate: true, Skew: true, Blur: true, Underline: true, Complex: true}
	p := &Pipeline{Border: 10, Variants: Build(all, DefaultParams(), raster.SingleUnderline{FontSize: 25, Border: 10}), Sink: mem}

	blank := image.NewGray(image.Rect(0, 0, 50, 50))
	n, err := p.Apply(blank, "o.png", sink.Meta{})
	if err != nil || n != 0 {
		t.Errorf("Apply(blank) = %d, %v; want 0, nil", n, err)
	}
	if len(paths(mem)) != 0 {
		t.Error("blank base should save nothing")
	}
}

type failingSink struct{ after int }

func (f *failingSink) Save(*sink.Artifact) error {
	if f.after == 0 {
		return errors.New("disk full")
	}
	f.after--
	return nil
}

func TestPipelineSinkError(t *testing.T) {
	p := &Pipeline{Variants: Build(Flags{Rotate: true}, DefaultParams(), nil), Sink: &failingSink{after: 2}}
	n, err := p.Apply(inked(20, 20), "o.png", sink.Meta{})
	if err == nil {
		t.Fatal("Apply() should propagate sink errors")
	}
	if n != 2 {
		t.Errorf("Apply() saved %d before failing, want 2", n)
	}
}

// paths returns the artifact paths saved to mem, in order.
func paths(mem *sink.MemorySink) []string {
	var out []string
	for _, a := range mem.Artifacts() {
		out = append(out, a.Path)
	}
	return out
}
