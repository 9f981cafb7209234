// Package compute binds one numeric backend to a view, a redraw scheduler
// and a frame generator, and exposes the result through the non-generic
// Backend interface the viewers and the CLI work with.
//
// Available backends:
//
//   - fixed64: float64, fastest, artifacts beyond zoom ~1e13
//   - simd4x64: float64 evaluated four pixels at a time
//   - extended: double-double, ~32 significant digits
//   - arbitrary: math/big binary floats, precision.bits (default 256)
//   - decimal: decimal floats, precision.digits (default 77)
//
// Typical loop:
//
//	b, err := compute.New(cfg)
//	...
//	_ = b.Apply(view.ZoomIn)
//	if f, ok, err := b.Redraw(ctx); ok && err == nil {
//		present(f.Pix)
//		f.Release()
//	}
package compute
