// Package escape implements the escape-time iteration for z = z^2 + c.
package escape

import (
	"fmt"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/numeric"
)

// Evaluator counts iterations until escape for one numeric backend. The
// constants it needs are built once through the backend's field, so they
// carry the backend's full precision.
type Evaluator[T numeric.Real[T]] struct {
	budget    int
	zero      T
	quarter   T
	one       T
	sixteenth T
	two       T
	four      T
}

func NewEvaluator[T numeric.Real[T]](f numeric.Field[T], budget int) (*Evaluator[T], error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: %d", fractal.ErrInvalidBudget, budget)
	}
	one := f.FromInt(1)
	return &Evaluator[T]{
		budget:    budget,
		zero:      f.FromInt(0),
		quarter:   f.Quo(one, f.FromInt(4)),
		one:       one,
		sixteenth: f.Quo(one, f.FromInt(16)),
		two:       f.FromInt(2),
		four:      f.FromInt(4),
	}, nil
}

func (e *Evaluator[T]) Budget() int { return e.budget }

// Interior reports whether c lies in the main cardioid or the period-2 bulb.
// Both tests are exact membership conditions, so a true result means the
// orbit never escapes.
func (e *Evaluator[T]) Interior(c numeric.Complex[T]) bool {
	x := c.Re.Sub(e.quarter)
	y2 := c.Im.Mul(c.Im)
	q := x.Mul(x).Add(y2)
	if numeric.LessEq(q.Mul(q.Add(x)), e.quarter.Mul(y2)) {
		return true
	}
	x1 := c.Re.Add(e.one)
	return numeric.LessEq(x1.Mul(x1).Add(y2), e.sixteenth)
}

// Evaluate returns the number of completed iterations before |z| exceeded 2,
// or the budget when the orbit stayed bounded.
func (e *Evaluator[T]) Evaluate(c numeric.Complex[T]) int {
	if e.Interior(c) {
		return e.budget
	}

	zx, zy := e.zero, e.zero
	iter := 0
	for iter < e.budget {
		zx2 := zx.Mul(zx)
		zy2 := zy.Mul(zy)
		if numeric.Greater(zx2.Add(zy2), e.four) {
			break
		}
		zy = e.two.Mul(zx).Mul(zy).Add(c.Im)
		zx = zx2.Sub(zy2).Add(c.Re)
		iter++
	}
	return iter
}
