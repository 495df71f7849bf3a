package segment

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Config selects which granularities to emit and how words are cleaned.
type Config struct {
	// Kinds to emit; empty means words only.
	Kinds KindSet

	// StripPunctuation removes every rune that is neither a letter, a
	// number, an underscore nor whitespace from words (and so from the
	// characters derived from them).
	StripPunctuation bool

	// NormalizeNFC composes the corpus to Unicode NFC before splitting, so
	// precomposed and decomposed accents yield the same tokens.
	NormalizeNFC bool
}

// Segment splits corpus into tokens of the configured granularities.
// Tokens are grouped by kind, coarsest first, each group in order of first
// occurrence.
func Segment(corpus string, cfg Config) *Set {
	if cfg.NormalizeNFC {
		corpus = norm.NFC.String(corpus)
	}
	kinds := cfg.Kinds.OrDefault()

	paragraphs := unique(Paragraphs(corpus))

	var sentences []string
	for _, p := range paragraphs {
		sentences = append(sentences, Sentences(p)...)
	}
	sentences = unique(sentences)

	var words []string
	for _, s := range sentences {
		words = append(words, Words(s, cfg.StripPunctuation)...)
	}
	words = unique(words)

	var chars []string
	for _, w := range words {
		for _, r := range w {
			chars = append(chars, string(r))
		}
	}

	set := NewSet()
	add := func(k Kind, texts []string) {
		if !kinds.Has(k) {
			return
		}
		for _, t := range texts {
			set.Add(Token{Text: t, Kind: k})
		}
	}
	add(Corpus, []string{corpus})
	add(Paragraph, paragraphs)
	add(Sentence, sentences)
	add(Word, words)
	add(Character, chars)
	return set
}

// Paragraphs splits corpus on newlines, trimming surrounding whitespace and
// dropping empty lines.
func Paragraphs(corpus string) []string {
	var out []string
	for _, line := range strings.Split(corpus, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Sentences splits a paragraph on the literal ". " delimiter. The period
// before the delimiter is consumed; a final period with no trailing space
// stays on the last sentence.
func Sentences(paragraph string) []string {
	return nonEmpty(strings.Split(paragraph, ". "))
}

// Words splits a sentence on single spaces, optionally stripping
// punctuation. Words left empty by stripping are dropped.
func Words(sentence string, stripPunctuation bool) []string {
	var out []string
	for _, w := range strings.Split(sentence, " ") {
		if stripPunctuation {
			w = StripPunctuation(w)
		}
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// StripPunctuation removes every rune that is not a word rune (letter,
// number, underscore) or whitespace.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
