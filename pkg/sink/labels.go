package sink

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/matzehuels/textpics/pkg/errors"
)

// LabelsFile is the manifest name written by LabelSink.
const LabelsFile = "labels.jsonl"

// Label is one line of the labels manifest. Text is the full token text,
// not the truncated prefix used in the file name.
type Label struct {
	File    string `json:"file"`
	Text    string `json:"text"`
	Kind    string `json:"kind"`
	Font    string `json:"font"`
	Variant string `json:"variant"`
	BLAKE3  string `json:"blake3"`
	Run     string `json:"run"`
}

// LabelSink appends a Label per artifact to a JSON Lines file and then
// passes the artifact on. Artifacts whose names collide get one line each;
// the last line describes the file left on disk.
type LabelSink struct {
	next  Sink
	runID string
	file  *os.File
	enc   *json.Encoder
}

// NewLabelSink creates (or truncates) path and wraps next.
func NewLabelSink(next Sink, path, runID string) (*LabelSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "create %s", path)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	return &LabelSink{next: next, runID: runID, file: f, enc: enc}, nil
}

// Save implements Sink.
func (s *LabelSink) Save(a *Artifact) error {
	data, err := a.Encoded()
	if err != nil {
		return err
	}
	sum := blake3.Sum256(data)
	label := Label{
		File:    filepath.Base(a.Path),
		Text:    a.Meta.Token.Text,
		Kind:    a.Meta.Token.Kind.String(),
		Font:    a.Meta.Font,
		Variant: a.Meta.Variant,
		BLAKE3:  hex.EncodeToString(sum[:]),
		Run:     s.runID,
	}
	if err := s.enc.Encode(label); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "append label")
	}
	return s.next.Save(a)
}

// Close flushes and closes the manifest.
func (s *LabelSink) Close() error {
	if err := s.file.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "close labels")
	}
	return nil
}

// ReadLabels parses a labels manifest.
func ReadLabels(path string) ([]Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var labels []Label
	dec := json.NewDecoder(f)
	for dec.More() {
		var l Label
		if err := dec.Decode(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}
