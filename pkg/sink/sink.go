// Package sink persists rendered artifacts.
//
// Sinks receive an [Artifact] (target path, raster, labels) and decide what
// to do with it: [FileSink] writes PNG files, [MemorySink] keeps them for
// tests and dry runs, and [LabelSink] records a JSON line per artifact
// before delegating to another sink.
package sink

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/textpics/pkg/errors"
	"github.com/matzehuels/textpics/pkg/segment"
)

// Ext is the file extension of every artifact.
const Ext = ".png"

// Meta labels an artifact with what it depicts.
type Meta struct {
	Token   segment.Token
	Font    string
	Variant string
}

// Artifact is one raster to persist.
type Artifact struct {
	Path  string
	Image image.Image
	Meta  Meta

	encoded []byte
}

// Encoded returns the PNG encoding of the image, computed once.
func (a *Artifact) Encoded() ([]byte, error) {
	if a.encoded != nil {
		return a.encoded, nil
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, a.Image, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "encode %s", a.Path)
	}
	a.encoded = buf.Bytes()
	return a.encoded, nil
}

// Sink persists artifacts. An error aborts the run.
type Sink interface {
	Save(a *Artifact) error
}

// =============================================================================
// FileSink
// =============================================================================

// FileSink writes artifacts as PNG files. Existing files are overwritten.
type FileSink struct {
	dir string
}

// NewFileSink creates dir if needed and returns a sink writing into it.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "create output directory %s", dir)
	}
	return &FileSink{dir: dir}, nil
}

// Dir returns the output directory.
func (s *FileSink) Dir() string { return s.dir }

// Save implements Sink.
func (s *FileSink) Save(a *Artifact) error {
	data, err := a.Encoded()
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.Path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "write %s", filepath.Base(a.Path))
	}
	return nil
}

// =============================================================================
// MemorySink
// =============================================================================

// MemorySink keeps every artifact in memory.
type MemorySink struct {
	mu        sync.Mutex
	artifacts []*Artifact
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Save implements Sink.
func (s *MemorySink) Save(a *Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, a)
	return nil
}

// Artifacts returns the saved artifacts in order.
func (s *MemorySink) Artifacts() []*Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Artifact(nil), s.artifacts...)
}
