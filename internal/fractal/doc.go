// Package fractal holds the shared vocabulary of the escape-time engine.
//
// The engine is split into small packages, leaves first:
//
//   - numeric: the [Real] arithmetic each precision backend provides
//   - escape: the escape-time evaluator with interior short-circuits
//   - view: view state, input commands and the pixel-to-plane mapper
//   - gradient: iteration count to RGB lookup
//   - frame: tiled, parallel frame generation into an RGB buffer
//   - redraw: the CLEAN/DIRTY redraw scheduler
//   - compute: the registry that ties one numeric backend to the above
//
// # Example
//
//	cfg := config.DefaultConfig()
//	b, _ := compute.New(cfg)
//	b.Apply(view.ZoomIn)
//	f, _, _ := b.Redraw(ctx)
//	defer f.Release()
//
// # Thread Safety
//
// compute backends are safe for one input goroutine plus one render
// goroutine. Evaluators and mappers are immutable after construction and may
// be shared by any number of workers.
package fractal
