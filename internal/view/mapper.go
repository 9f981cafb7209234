package view

import (
	"fmt"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/numeric"
)

// Mapper converts pixel indices to points of the complex plane using the
// backend's own arithmetic. At zoom 1 the image spans 3.5 units
// horizontally and 2 vertically.
type Mapper[T numeric.Real[T]] struct {
	field          numeric.Field[T]
	width, height  int
	scaleX, scaleY T
	center         numeric.Complex[T]
}

func NewMapper[T numeric.Real[T]](st *State[T], width, height int) (*Mapper[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", fractal.ErrInvalidDimensions, width, height)
	}
	f := st.Field()
	zoom := st.Zoom()
	if !numeric.Positive(f, zoom) {
		return nil, &fractal.ConfigurationError{Field: "zoom", Value: zoom.String(), Err: fractal.ErrInvalidZoom}
	}

	spanX := f.Quo(f.FromInt(7), f.FromInt(2))
	spanY := f.FromInt(2)
	return &Mapper[T]{
		field:  f,
		width:  width,
		height: height,
		scaleX: f.Quo(spanX, f.FromInt(int64(width)).Mul(zoom)),
		scaleY: f.Quo(spanY, f.FromInt(int64(height)).Mul(zoom)),
		center: st.Center(),
	}, nil
}

func (m *Mapper[T]) Size() (width, height int) { return m.width, m.height }

// Map returns the plane coordinate of pixel (x, y). x may exceed the width;
// lane kernels map trailing pixels they later discard.
func (m *Mapper[T]) Map(x, y int) numeric.Complex[T] {
	dx := m.field.FromInt(int64(x - m.width/2))
	dy := m.field.FromInt(int64(y - m.height/2))
	return numeric.Complex[T]{
		Re: dx.Mul(m.scaleX).Add(m.center.Re),
		Im: dy.Mul(m.scaleY).Add(m.center.Im),
	}
}
