// Package pkg provides the libraries behind textpics, a generator of
// synthetic OCR training pictures.
//
// # Overview
//
// Textpics takes a text corpus and a set of fonts and writes one labeled PNG
// per token, font and variant. The pkg directory is organized as:
//
//  1. [segment] - Corpus segmentation into characters, words, sentences,
//     paragraphs and the whole corpus, plus line wrapping
//  2. [raster] - Grayscale image primitives: render, trim, rotate, skew,
//     blur, underline
//  3. [variant] - Variant descriptors, output naming and the trim-then-vary
//     pipeline
//  4. [sink] - Artifact persistence (PNG files, memory, labels manifest)
//  5. [fonts] - Font discovery, builtin Go fonts and face caching
//  6. [pipeline] - Orchestration (load → segment → generate)
//
// # Architecture
//
// The typical data flow through textpics:
//
//	corpus.txt + fonts/
//	         ↓
//	    [segment] package (unique tokens per granularity)
//	         ↓
//	    [raster] package (render each token in each font)
//	         ↓
//	    [variant] package (trim, then rotate/skew/blur/underline)
//	         ↓
//	    [sink] package (PNG files + labels.jsonl)
//
// # Quick Start
//
//	opts := pipeline.DefaultOptions()
//	opts.Corpus = "examples/corpus.txt"
//	opts.Fonts = []string{"goregular"}
//	opts.Variants.Rotate = true
//
//	result, err := pipeline.NewRunner(nil).Run(ctx, opts)
//
// # Supporting Packages
//
//   - [errors]: coded errors shared by the CLI and libraries
//   - [observability]: progress hooks emitted by the runner
//   - [buildinfo]: version information injected at build time
package pkg
