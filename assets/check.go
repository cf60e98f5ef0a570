package assets

import (
	"context"
	"errors"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FrameProblem is one frame that could not be used.
type FrameProblem struct {
	Index int
	Path  string
	Err   error
}

// CheckReport summarizes a scan of a frame sequence.
type CheckReport struct {
	Checked  int
	Size     image.Point
	Missing  []FrameProblem
	Broken   []FrameProblem
	Mismatch []FrameProblem
}

func (r *CheckReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Broken) == 0 && len(r.Mismatch) == 0
}

var errSizeMismatch = errors.New("frame size differs from frame 0")

// CheckFrames fetches and decodes every frame with up to workers fetches in
// flight. Per-frame failures go into the report; the error is only set when
// ctx ends the scan early.
func CheckFrames(ctx context.Context, frames *Frames, workers int) (*CheckReport, error) {
	if workers < 1 {
		workers = 1
	}

	sizes := make([]image.Point, frames.Total)
	problems := make([]*FrameProblem, frames.Total)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < frames.Total; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := frames.Decode(gctx, i)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				name, _ := frames.Path(i)
				problems[i] = &FrameProblem{Index: i, Path: name, Err: err}
				return nil
			}
			sizes[i] = img.Bounds().Size()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &CheckReport{Checked: frames.Total}
	for i, p := range problems {
		if p == nil {
			if report.Size == (image.Point{}) {
				report.Size = sizes[i]
			} else if sizes[i] != report.Size {
				name, _ := frames.Path(i)
				report.Mismatch = append(report.Mismatch, FrameProblem{Index: i, Path: name, Err: errSizeMismatch})
			}
			continue
		}
		if errors.Is(p.Err, ErrNotFound) {
			report.Missing = append(report.Missing, *p)
		} else {
			report.Broken = append(report.Broken, *p)
		}
	}
	return report, nil
}
