package frame

import (
	"fmt"

	"github.com/san-kum/mandel/internal/escape"
	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/numeric"
	"github.com/san-kum/mandel/internal/view"
)

// Kernel computes the iteration counts of Lanes() consecutive pixels of one
// row starting at x0. Pixels past the right edge may be computed; the
// generator drops them.
type Kernel[T numeric.Real[T]] interface {
	Lanes() int
	Iterate(m *view.Mapper[T], x0, y int, counts []int)
}

// ScalarKernel evaluates one pixel at a time with any backend.
type ScalarKernel[T numeric.Real[T]] struct {
	eval *escape.Evaluator[T]
}

func NewScalarKernel[T numeric.Real[T]](f numeric.Field[T], budget int) (*ScalarKernel[T], error) {
	eval, err := escape.NewEvaluator(f, budget)
	if err != nil {
		return nil, err
	}
	return &ScalarKernel[T]{eval: eval}, nil
}

func (k *ScalarKernel[T]) Lanes() int { return 1 }

func (k *ScalarKernel[T]) Iterate(m *view.Mapper[T], x0, y int, counts []int) {
	counts[0] = k.eval.Evaluate(m.Map(x0, y))
}

// LaneKernel evaluates numeric.Lanes horizontally adjacent pixels together
// in float64.
type LaneKernel struct {
	budget int
}

func NewLaneKernel(budget int) (*LaneKernel, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: %d", fractal.ErrInvalidBudget, budget)
	}
	return &LaneKernel{budget: budget}, nil
}

func (k *LaneKernel) Lanes() int { return numeric.Lanes }

func (k *LaneKernel) Iterate(m *view.Mapper[numeric.Fixed64], x0, y int, counts []int) {
	var cx, cy numeric.F64x4
	for l := 0; l < numeric.Lanes; l++ {
		c := m.Map(x0+l, y)
		cx[l] = float64(c.Re)
		cy[l] = float64(c.Im)
	}
	res := escape.EvaluateLanes(cx, cy, k.budget)
	copy(counts, res[:])
}
