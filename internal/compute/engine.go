package compute

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/escape"
	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/frame"
	"github.com/san-kum/mandel/internal/gradient"
	"github.com/san-kum/mandel/internal/logging"
	"github.com/san-kum/mandel/internal/numeric"
	"github.com/san-kum/mandel/internal/redraw"
	"github.com/san-kum/mandel/internal/view"
)

// engine is the Backend for one numeric type. The view is guarded by mu;
// a render pass works on a snapshot taken under the lock, so input can keep
// arriving while it runs.
type engine[T numeric.Real[T]] struct {
	name    string
	field   numeric.Field[T]
	lanes   int
	maxIter int
	eval    *escape.Evaluator[T]
	gen     *frame.Generator[T]
	sched   *redraw.Scheduler
	horizon float64

	mu       sync.Mutex
	state    *view.State[T]
	width    int
	height   int
	pastEdge bool
}

func newEngine[T numeric.Real[T]](name string, f numeric.Field[T], k frame.Kernel[T], cfg *config.Config, horizon float64) (Backend, error) {
	eval, err := escape.NewEvaluator(f, cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	st, err := view.NewState(f, cfg.View.Settings())
	if err != nil {
		return nil, err
	}

	gen := frame.NewGenerator(k, gradient.New(cfg.MaxIter), frame.Options{
		Workers:    cfg.Workers,
		TileWidth:  cfg.TileSize.Width,
		TileHeight: cfg.TileSize.Height,
	})

	logging.Logger().Debug("backend ready",
		"backend", name,
		"lanes", k.Lanes(),
		"workers", gen.Workers(),
		"max_iter", cfg.MaxIter,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

	return &engine[T]{
		name:    name,
		field:   f,
		lanes:   k.Lanes(),
		maxIter: cfg.MaxIter,
		eval:    eval,
		gen:     gen,
		sched:   redraw.New(),
		horizon: horizon,
		state:   st,
		width:   cfg.Width,
		height:  cfg.Height,
	}, nil
}

func (e *engine[T]) Name() string { return e.name }
func (e *engine[T]) Lanes() int   { return e.lanes }
func (e *engine[T]) MaxIter() int { return e.maxIter }
func (e *engine[T]) Dirty() bool  { return e.sched.State() == redraw.Dirty }

func (e *engine[T]) Size() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

func (e *engine[T]) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", fractal.ErrInvalidDimensions, width, height)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if width == e.width && height == e.height {
		return nil
	}
	e.width, e.height = width, height
	e.sched.Invalidate()
	return nil
}

// commit hands a view mutation over to the scheduler.
func (e *engine[T]) commit() {
	if e.state.Dirty() {
		e.state.MarkClean()
		e.sched.Invalidate()
	}
}

func (e *engine[T]) Apply(cmd view.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.state.Apply(cmd); err != nil {
		logging.Logger().Warn("command rejected", "backend", e.name, "command", cmd.String(), "err", err)
		return err
	}
	e.commit()
	return nil
}

func (e *engine[T]) Goto(snap view.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.state.Goto(snap); err != nil {
		return err
	}
	e.commit()
	return nil
}

func (e *engine[T]) View() view.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// begin commits any pending view change, then takes the ticket and the view
// copy together so the pass owns exactly the generation it renders.
func (e *engine[T]) begin() (redraw.Ticket, *view.State[T], int, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commit()
	t, ok := e.sched.Begin()
	if !ok {
		return t, nil, 0, 0, false
	}
	return t, e.state.Clone(), e.width, e.height, true
}

func (e *engine[T]) Redraw(ctx context.Context) (*frame.Frame, bool, error) {
	t, st, w, h, ok := e.begin()
	if !ok {
		return nil, false, nil
	}

	m, err := view.NewMapper(st, w, h)
	if err != nil {
		e.sched.Abort(t)
		return nil, false, err
	}
	e.notePrecision(st.Zoom())

	f, err := e.gen.Render(ctx, m)
	if err != nil {
		e.sched.Abort(t)
		return nil, false, err
	}
	e.sched.Complete(t)

	logging.Logger().Debug("frame rendered",
		"backend", e.name,
		"seq", f.Seq,
		"elapsed", f.Elapsed,
		"zoom", st.Zoom().String(),
		"stale", !e.sched.Current(t))
	return f, true, nil
}

// notePrecision logs once each time the zoom crosses the backend's
// precision horizon. Rendering continues; the image just bands.
func (e *engine[T]) notePrecision(zoom T) {
	past := zoom.Float64() > e.horizon
	e.mu.Lock()
	changed := past != e.pastEdge
	e.pastEdge = past
	e.mu.Unlock()

	if changed && past {
		logging.Logger().Debug("zoom beyond backend precision, expect banding",
			"backend", e.name,
			"zoom", zoom.String(),
			"horizon", e.horizon)
	}
}

func (e *engine[T]) Evaluate(re, im string) (int, error) {
	cx, err := e.field.Parse(re)
	if err != nil {
		return 0, err
	}
	cy, err := e.field.Parse(im)
	if err != nil {
		return 0, err
	}
	return e.eval.Evaluate(numeric.Complex[T]{Re: cx, Im: cy}), nil
}
