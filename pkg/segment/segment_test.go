package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestSegmentDefaultWords(t *testing.T) {
	set := Segment("Hello world. Goodbye world.", Config{})

	want := []string{"Hello", "world", "Goodbye", "world."}
	if got := texts(set, Word); !reflect.DeepEqual(got, want) {
		t.Errorf("words = %q, want %q", got, want)
	}
	if set.Len() != set.Count(Word) {
		t.Errorf("default config should emit words only, got %d tokens", set.Len())
	}
}

func TestSegmentStripPunctuation(t *testing.T) {
	set := Segment("Hello world. Goodbye world.", Config{StripPunctuation: true})

	want := []string{"Hello", "world", "Goodbye"}
	if got := texts(set, Word); !reflect.DeepEqual(got, want) {
		t.Errorf("words = %q, want %q", got, want)
	}
}

func TestSegmentAllKinds(t *testing.T) {
	corpus := "The cat sat. The cat ran.\n\n  Dogs bark.  \nThe cat sat. The cat ran."
	set := Segment(corpus, Config{Kinds: NewKindSet(AllKinds...)})

	tests := []struct {
		kind Kind
		want []string
	}{
		{Corpus, []string{corpus}},
		{Paragraph, []string{"The cat sat. The cat ran.", "Dogs bark."}},
		{Sentence, []string{"The cat sat", "The cat ran.", "Dogs bark."}},
		{Word, []string{"The", "cat", "sat", "ran.", "Dogs", "bark."}},
		{Character, []string{"T", "h", "e", "c", "a", "t", "s", "r", "n", ".", "D", "o", "g", "b", "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := texts(set, tt.kind); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}

	// Coarsest kinds come first.
	tokens := set.Tokens()
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Kind < tokens[i-1].Kind {
			t.Fatalf("token %d (%v) out of kind order", i, tokens[i])
		}
	}
}

func TestSegmentCharactersFollowStripping(t *testing.T) {
	set := Segment("a-b, c!", Config{Kinds: NewKindSet(Character), StripPunctuation: true})
	want := []string{"a", "b", "c"}
	if got := texts(set, Character); !reflect.DeepEqual(got, want) {
		t.Errorf("characters = %q, want %q", got, want)
	}
	if set.Count(Word) != 0 {
		t.Error("words were not requested")
	}
}

func TestSegmentDropsWordsEmptiedByStripping(t *testing.T) {
	set := Segment("yes -- no", Config{StripPunctuation: true})
	if got := texts(set, Word); !reflect.DeepEqual(got, []string{"yes", "no"}) {
		t.Errorf("words = %q", got)
	}
}

func TestSegmentIdempotent(t *testing.T) {
	corpus := "One fish. Two fish.\nRed fish. Blue fish."
	cfg := Config{Kinds: NewKindSet(AllKinds...), StripPunctuation: true}

	a, b := Segment(corpus, cfg), Segment(corpus, cfg)
	if !reflect.DeepEqual(a.Tokens(), b.Tokens()) {
		t.Error("segmenting twice gave different tokens")
	}
}

func TestSegmentNormalizeNFC(t *testing.T) {
	composed, decomposed := "caf\u00e9", "cafe\u0301"
	corpus := composed + " " + decomposed

	if n := Segment(corpus, Config{}).Count(Word); n != 2 {
		t.Errorf("without NFC got %d words, want 2", n)
	}
	if n := Segment(corpus, Config{NormalizeNFC: true}).Count(Word); n != 1 {
		t.Errorf("with NFC got %d words, want 1", n)
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct{ in, want string }{
		{"world.", "world"},
		{"don't", "dont"},
		{"snake_case", "snake_case"},
		{"¿Qué?", "Qué"},
		{"3.14", "314"},
		{"naïve", "naïve"},
		{"«Привет»", "Привет"},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := StripPunctuation(tt.in); got != tt.want {
			t.Errorf("StripPunctuation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSentencesNaiveSplit(t *testing.T) {
	got := Sentences("Dr. Smith paid 3.50 dollars. He left.")
	want := []string{"Dr", "Smith paid 3.50 dollars", "He left."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences() = %q, want %q", got, want)
	}
}

func TestSet(t *testing.T) {
	s := NewSet()
	if !s.Add(Token{"a", Word}) {
		t.Error("first Add should report new")
	}
	if s.Add(Token{"a", Word}) {
		t.Error("duplicate Add should report existing")
	}
	if !s.Add(Token{"a", Character}) {
		t.Error("same text with another kind is a different token")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d", s.Len())
	}

	tokens := s.Tokens()
	tokens[0].Text = "mutated"
	if s.Tokens()[0].Text != "a" {
		t.Error("Tokens() should return a copy")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"word", Word, false},
		{"W", Word, false},
		{"a", Corpus, false},
		{"corpus", Corpus, false},
		{"character", Character, false},
		{"line", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("ParseKind(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestKindSet(t *testing.T) {
	s, err := ParseKindLetters("-cws")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Kinds(); !reflect.DeepEqual(got, []Kind{Sentence, Word, Character}) {
		t.Errorf("Kinds() = %v", got)
	}
	if _, err := ParseKindLetters("x"); err == nil {
		t.Error("unknown letter should fail")
	}
	if got := KindSet(0).OrDefault(); got != NewKindSet(Word) {
		t.Errorf("OrDefault() = %v", got)
	}

	var u KindSet
	if err := u.UnmarshalText([]byte("paragraph, w")); err != nil {
		t.Fatal(err)
	}
	if u != NewKindSet(Paragraph, Word) {
		t.Errorf("UnmarshalText() = %v", u)
	}
	text, _ := u.MarshalText()
	if string(text) != "paragraph,word" {
		t.Errorf("MarshalText() = %q", text)
	}
}

func TestWrap(t *testing.T) {
	short := strings.Repeat("x", 80)
	if Wrap(short, 80) != short {
		t.Error("text at the width limit should not be wrapped")
	}

	long := strings.Repeat("y", 100)
	if got := Wrap(long, 80); got != long {
		t.Errorf("unbroken run should stay on one line, got %d newlines", strings.Count(got, "\n"))
	}

	words := strings.TrimSpace(strings.Repeat("lorem ipsum ", 20))
	got := Wrap(words, 80)
	if !strings.Contains(got, "\n") {
		t.Fatal("long text with spaces should be wrapped")
	}
	for _, line := range strings.Split(got, "\n") {
		// A line ends at the first space after 80 runes, so it holds at
		// most 80 runes plus the rest of the word in progress.
		if n := len([]rune(line)); n > 80+len("ipsum") {
			t.Errorf("line too long (%d): %q", n, line)
		}
	}
}

func TestWrapBreaksAfterWidth(t *testing.T) {
	text := strings.Repeat("a", 79) + "bc d" + strings.Repeat("e", 10)
	want := strings.Repeat("a", 79) + "bc\n" + "d" + strings.Repeat("e", 10)
	if got := Wrap(text, 80); got != want {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
}

func TestWrapPreservesNonSpace(t *testing.T) {
	inputs := []string{
		strings.Repeat("word ", 50),
		strings.Repeat("x", 90) + " tail " + strings.Repeat("z", 200),
		"line one\n" + strings.Repeat("ab\tcd ", 40),
		strings.Repeat("ü ", 100),
	}
	for _, in := range inputs {
		got := Wrap(in, 80)
		if len([]rune(got)) != len([]rune(in)) {
			t.Errorf("rune count changed: %d -> %d", len([]rune(in)), len([]rune(got)))
		}
		if !reflect.DeepEqual(strings.Fields(got), strings.Fields(in)) {
			t.Error("wrapping changed the non-whitespace runs")
		}
		// Every inserted newline replaced a whitespace rune.
		ir, gr := []rune(in), []rune(got)
		for i := range gr {
			if gr[i] != ir[i] && (gr[i] != '\n' || !strings.ContainsRune(" \t\r\v\f\u0085\u00a0", ir[i])) {
				t.Fatalf("position %d: %q replaced by %q", i, ir[i], gr[i])
			}
		}
	}
}

func TestTokenWrapped(t *testing.T) {
	tok := Token{Text: strings.Repeat("ab ", 40), Kind: Paragraph}
	if !strings.Contains(tok.Wrapped(DefaultWrapWidth), "\n") {
		t.Error("Wrapped() should wrap a 120-rune paragraph")
	}
	if tok.Text != strings.Repeat("ab ", 40) {
		t.Error("Wrapped() must not modify the token")
	}
}

// texts returns the text of every token of kind k, in order.
func texts(s *Set, k Kind) []string {
	var out []string
	for _, t := range s.Tokens() {
		if t.Kind == k {
			out = append(out, t.Text)
		}
	}
	return out
}
