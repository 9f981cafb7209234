package escape

import (
	"strconv"
	"testing"

	"github.com/san-kum/mandel/internal/numeric"
)

func TestEvaluateLanesMatchesScalar(t *testing.T) {
	scalar, _ := NewEvaluator[numeric.Fixed64](numeric.Fixed64Field{}, budget)

	for start := 0; start < len(samples); start += numeric.Lanes {
		var cx, cy numeric.F64x4
		var want [numeric.Lanes]int
		for i := 0; i < numeric.Lanes; i++ {
			p := samples[(start+i)%len(samples)]
			re, _ := strconv.ParseFloat(p.re, 64)
			im, _ := strconv.ParseFloat(p.im, 64)
			cx[i], cy[i] = re, im
			want[i] = scalar.Evaluate(numeric.Complex[numeric.Fixed64]{Re: numeric.Fixed64(re), Im: numeric.Fixed64(im)})
		}

		got := EvaluateLanes(cx, cy, budget)
		if got != want {
			t.Errorf("batch %v,%v: lanes = %v, scalar = %v", cx, cy, got, want)
		}
	}
}

func TestEvaluateLanesFreezesEscapedLanes(t *testing.T) {
	// One lane escapes at once, one never, two in between: the early lanes
	// must keep their own counts while the batch keeps iterating.
	cx := numeric.F64x4{2.5, 0, 0.5, -0.745}
	cy := numeric.F64x4{0, 0, 0.5, 0.113}

	got := EvaluateLanes(cx, cy, budget)
	want := [numeric.Lanes]int{1, budget, 5, 127}
	if got != want {
		t.Errorf("EvaluateLanes = %v, want %v", got, want)
	}
}

func TestEvaluateLanesAllInterior(t *testing.T) {
	cx := numeric.F64x4{0, -1, -0.5, 0.25}
	cy := numeric.F64x4{0, 0, 0.5, 0}

	if m := InteriorLanes(cx, cy); m != numeric.AllLanes {
		t.Fatalf("InteriorLanes = %04b, want all lanes", m)
	}
	got := EvaluateLanes(cx, cy, 7)
	for i, n := range got {
		if n != 7 {
			t.Errorf("lane %d = %d, want 7", i, n)
		}
	}
}

func TestEvaluateLanesBudgetExhausted(t *testing.T) {
	cx := numeric.SplatF64(-1.3)
	cy := numeric.SplatF64(0)
	got := EvaluateLanes(cx, cy, 40)
	for i, n := range got {
		if n != 40 {
			t.Errorf("lane %d = %d, want 40", i, n)
		}
	}
}
