// Package segment splits a text corpus into the labeled tokens that get
// rendered into OCR training images.
//
// # Granularities
//
// Tokens come at five granularities ([Kind]), each derived from the one
// above it with deliberately naive string splitting:
//
//	corpus     the raw text, as one token
//	paragraph  corpus split on "\n", trimmed, empties dropped
//	sentence   paragraph split on ". " (abbreviations are not special)
//	word       sentence split on " ", optionally stripped of punctuation
//	character  every rune of every word
//
// Each granularity is deduplicated by value, so a word that appears ten
// times yields one token. A [Set] keeps first-occurrence order, which makes
// runs over the same corpus reproducible.
//
// # Wrapping
//
// [Wrap] breaks long tokens (paragraphs, whole corpora) into lines before
// rendering. It only ever breaks at whitespace, so a run of non-space
// characters longer than the width stays on one line.
package segment
