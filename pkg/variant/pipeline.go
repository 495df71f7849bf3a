package variant

import (
	"image"

	"github.com/matzehuels/textpics/pkg/raster"
	"github.com/matzehuels/textpics/pkg/sink"
)

// Pipeline trims a base render and saves it with its variants.
type Pipeline struct {
	Border   int
	Variants []Descriptor
	Sink     sink.Sink
}

// Apply trims base and saves the trimmed raster plus every variant derived
// from it, naming each file by inserting the variant name into stem. It
// returns how many artifacts were saved; a blank base saves nothing and is
// not an error. The first sink error stops the pipeline.
func (p *Pipeline) Apply(base *image.Gray, stem string, meta sink.Meta) (int, error) {
	trimmed := raster.Trim(base, p.Border)
	if trimmed == nil {
		return 0, nil
	}

	if err := p.save(trimmed, stem, Trim, meta); err != nil {
		return 0, err
	}
	n := 1
	for _, d := range p.Variants {
		if err := p.save(d.Apply(trimmed), stem, d.Name, meta); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (p *Pipeline) save(img *image.Gray, stem, name string, meta sink.Meta) error {
	meta.Variant = name
	return p.Sink.Save(&sink.Artifact{
		Path:  ModifiedPath(stem, name),
		Image: img,
		Meta:  meta,
	})
}
