package segment

import (
	"fmt"
	"strings"
)

// Kind is the granularity of a token.
type Kind uint8

// Granularities, coarsest first.
const (
	Corpus Kind = iota
	Paragraph
	Sentence
	Word
	Character
)

// AllKinds lists every granularity, coarsest first.
var AllKinds = []Kind{Corpus, Paragraph, Sentence, Word, Character}

var kindNames = [...]string{
	Corpus:    "corpus",
	Paragraph: "paragraph",
	Sentence:  "sentence",
	Word:      "word",
	Character: "character",
}

// kindLetters are the single-letter flags used on the command line.
var kindLetters = map[rune]Kind{
	'a': Corpus,
	'p': Paragraph,
	's': Sentence,
	'w': Word,
	'c': Character,
}

// String returns the label used in output file names.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind parses a granularity name ("word") or letter ("w").
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if s == name {
			return Kind(k), nil
		}
	}
	if r := []rune(s); len(r) == 1 {
		if k, ok := kindLetters[r[0]]; ok {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown token kind %q (want corpus, paragraph, sentence, word or character)", s)
}

// KindSet is a set of granularities.
type KindSet uint8

// NewKindSet returns a set holding kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// ParseKindLetters parses a flag cluster such as "cws" into a set.
func ParseKindLetters(letters string) (KindSet, error) {
	var s KindSet
	for _, r := range strings.TrimPrefix(letters, "-") {
		k, ok := kindLetters[r]
		if !ok {
			return 0, fmt.Errorf("unknown token kind flag %q (want one of c, w, s, p, a)", r)
		}
		s = s.With(k)
	}
	return s, nil
}

// With returns s plus k.
func (s KindSet) With(k Kind) KindSet { return s | 1<<k }

// Has reports whether k is in s.
func (s KindSet) Has(k Kind) bool { return s&(1<<k) != 0 }

// Empty reports whether no kind is selected.
func (s KindSet) Empty() bool { return s == 0 }

// OrDefault returns s, or just words when s is empty.
func (s KindSet) OrDefault() KindSet {
	if s.Empty() {
		return NewKindSet(Word)
	}
	return s
}

// Kinds lists the members of s, coarsest first.
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for _, k := range AllKinds {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// String joins the member names with commas.
func (s KindSet) String() string {
	var names []string
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ",")
}

// MarshalText implements encoding.TextMarshaler.
func (s KindSet) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts a comma-separated list of kind names or letters.
func (s *KindSet) UnmarshalText(b []byte) error {
	var out KindSet
	for _, part := range strings.Split(string(b), ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return err
		}
		out = out.With(k)
	}
	*s = out
	return nil
}

// Token is one piece of text to render, labeled with its granularity.
// Tokens are compared by value.
type Token struct {
	Text string
	Kind Kind
}

// Wrapped returns the text broken into lines of about width runes.
func (t Token) Wrapped(width int) string {
	return Wrap(t.Text, width)
}

// Set is an insertion-ordered set of tokens.
type Set struct {
	tokens []Token
	seen   map[Token]struct{}
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[Token]struct{})}
}

// Add inserts t and reports whether it was new.
func (s *Set) Add(t Token) bool {
	if _, ok := s.seen[t]; ok {
		return false
	}
	s.seen[t] = struct{}{}
	s.tokens = append(s.tokens, t)
	return true
}

// Len returns the number of tokens.
func (s *Set) Len() int { return len(s.tokens) }

// Tokens returns the tokens in insertion order. The slice is a copy.
func (s *Set) Tokens() []Token {
	return append([]Token(nil), s.tokens...)
}

// Count returns how many tokens have kind k.
func (s *Set) Count(k Kind) int {
	n := 0
	for _, t := range s.tokens {
		if t.Kind == k {
			n++
		}
	}
	return n
}
