package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/textpics/pkg/errors"
	"github.com/matzehuels/textpics/pkg/fonts"
	"github.com/matzehuels/textpics/pkg/sink"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func listPNGs(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	sort.Strings(names)
	return names
}

func TestGenerateCommand(t *testing.T) {
	corpus, _ := fixture(t)
	out := filepath.Join(t.TempDir(), "out")

	err := execute(t, "generate", corpus, "--font", "goregular", "-w", "--skew", "--labels", "--out", out, "--strip-punctuation")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := []string{
		"word.Hello.goregular.skew_l.png",
		"word.Hello.goregular.skew_r.png",
		"word.Hello.goregular.trim.png",
		"word.world.goregular.skew_l.png",
		"word.world.goregular.skew_r.png",
		"word.world.goregular.trim.png",
	}
	got := listPNGs(t, out)
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d = %s, want %s", i, got[i], want[i])
		}
	}

	labels, err := sink.ReadLabels(filepath.Join(out, sink.LabelsFile))
	if err != nil {
		t.Fatalf("ReadLabels: %v", err)
	}
	if len(labels) != len(want) {
		t.Errorf("got %d labels, want %d", len(labels), len(want))
	}
}

func TestWordsCommandFlatDiscovery(t *testing.T) {
	corpus, fontDir := fixture(t)
	writeFont := func(path string) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFont(filepath.Join(fontDir, "Top.ttf"))
	writeFont(filepath.Join(fontDir, "sub", "Nested.ttf"))
	out := filepath.Join(t.TempDir(), "out")

	if err := execute(t, "words", corpus, fontDir, "--out", out); err != nil {
		t.Fatalf("words: %v", err)
	}

	// "Hello" and "world." in the top-level font only.
	got := listPNGs(t, out)
	want := []string{"word.Hello.Top.trim.png", "word.world..Top.trim.png"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestGenerateCommandRecursiveDiscovery(t *testing.T) {
	corpus, fontDir := fixture(t)
	nested := filepath.Join(fontDir, "sub", "Nested.ttf")
	if err := os.MkdirAll(filepath.Dir(nested), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(nested, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out")

	if err := execute(t, "generate", corpus, fontDir, "--out", out, "-c"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	// H e l o w r d . as characters
	if got := listPNGs(t, out); len(got) != 8 {
		t.Errorf("got %d character pictures, want 8: %v", len(got), got)
	}
}

func TestGenerateCommandNoFonts(t *testing.T) {
	corpus, fontDir := fixture(t)
	out := filepath.Join(t.TempDir(), "out")

	err := execute(t, "generate", corpus, fontDir, "--out", out)
	if !errors.Is(err, errors.ErrCodeNoFonts) {
		t.Errorf("err = %v, want NO_FONTS", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output directory should not be created when no fonts are found")
	}
}

func TestFontsListing(t *testing.T) {
	rows, err := listFonts(context.Background(), "", fontsOpts{sample: "aé 中"})
	if err != nil {
		t.Fatalf("listFonts: %v", err)
	}
	if len(rows) != len(fonts.BuiltinNames()) {
		t.Fatalf("got %d rows, want the builtin fonts", len(rows))
	}
	for _, r := range rows {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Name, r.Err)
		}
		if r.Source != "builtin" {
			t.Errorf("%s: source = %q", r.Name, r.Source)
		}
		if r.Missing != "中" {
			t.Errorf("%s: missing = %q, want 中", r.Name, r.Missing)
		}
	}
}

func TestFontsListingUnreadable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Broken.ttf"), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := listFonts(context.Background(), dir, fontsOpts{})
	if err != nil {
		t.Fatalf("listFonts: %v", err)
	}
	if len(rows) != 1 || !errors.Is(rows[0].Err, errors.ErrCodeFontLoad) {
		t.Errorf("rows = %+v, want one FONT_LOAD row", rows)
	}
}

func TestFontsCommandEmptyDir(t *testing.T) {
	err := execute(t, "fonts", t.TempDir())
	if !errors.Is(err, errors.ErrCodeNoFonts) {
		t.Errorf("err = %v, want NO_FONTS", err)
	}
}
