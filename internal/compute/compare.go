package compute

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/frame"
	"github.com/san-kum/mandel/internal/storage"
	"github.com/san-kum/mandel/internal/view"
)

// Comparison is the difference between one backend's frame and the
// baseline frame of the same view.
type Comparison struct {
	Backend    string
	Mismatches int
	MaxDelta   int
	Elapsed    time.Duration
}

// Compare renders the configured view with the baseline and every named
// backend concurrently and counts the pixels whose iteration count differs
// from the baseline's.
func Compare(ctx context.Context, cfg *config.Config, baseline string, names []string) ([]Comparison, error) {
	all := append([]string{baseline}, names...)
	frames := make([]*frame.Frame, len(all))
	defer func() {
		for _, f := range frames {
			if f != nil {
				f.Release()
			}
		}
	}()

	eg, gctx := errgroup.WithContext(ctx)
	for i, name := range all {
		eg.Go(func() error {
			c := *cfg
			c.Backend = name
			b, err := New(&c)
			if err != nil {
				return err
			}
			f, _, err := b.Redraw(gctx)
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	base := frames[0]
	out := make([]Comparison, len(names))
	for i, name := range names {
		f := frames[i+1]
		cmp := Comparison{Backend: name, Elapsed: f.Elapsed}
		for p, want := range base.Counts {
			if d := f.Counts[p] - want; d != 0 {
				cmp.Mismatches++
				cmp.MaxDelta = max(cmp.MaxDelta, d, -d)
			}
		}
		out[i] = cmp
	}
	return out, nil
}

// Bench renders b's view at each zoom in turn and records the pass times.
// The center is kept; the view is left at the last zoom.
func Bench(ctx context.Context, b Backend, zooms []string) ([]storage.Measurement, error) {
	ms := make([]storage.Measurement, 0, len(zooms))
	for _, z := range zooms {
		snap := b.View()
		if err := b.Goto(view.Snapshot{CenterRe: snap.CenterRe, CenterIm: snap.CenterIm, Zoom: z}); err != nil {
			return nil, err
		}
		f, ok, err := b.Redraw(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		s := f.Stats(b.MaxIter())
		ms = append(ms, storage.Measurement{
			Backend:  b.Name(),
			Zoom:     z,
			Elapsed:  f.Elapsed,
			MeanIter: s.Mean,
			Interior: float64(s.Interior) / float64(s.Pixels),
		})
		f.Release()
	}
	return ms, nil
}
