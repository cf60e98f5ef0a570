package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

var ErrFrameOutOfRange = errors.New("assets: frame out of range")

// DefaultFramePattern names the frames of the invitation sequence.
const DefaultFramePattern = "/render/ronit_Wedding_%05d.png"

// FramePath formats the asset name of frame index using pattern.
func FramePath(pattern string, index int) string {
	return fmt.Sprintf(pattern, index)
}

// Frames is a numbered image sequence served by a Source.
type Frames struct {
	Source  Source
	Pattern string
	Total   int
}

func (f *Frames) Path(index int) (string, error) {
	if index < 0 || index >= f.Total {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, index, f.Total)
	}
	return FramePath(f.Pattern, index), nil
}

// Index maps an asset name back to its frame index.
func (f *Frames) Index(name string) (int, bool) {
	for i := 0; i < f.Total; i++ {
		if FramePath(f.Pattern, i) == name {
			return i, true
		}
	}
	return 0, false
}

// Decode fetches and decodes one frame.
func (f *Frames) Decode(ctx context.Context, index int) (image.Image, error) {
	name, err := f.Path(index)
	if err != nil {
		return nil, err
	}
	b, err := ReadAll(ctx, f.Source, name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return img, nil
}
