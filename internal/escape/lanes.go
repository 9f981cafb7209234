package escape

import "github.com/san-kum/mandel/internal/numeric"

var (
	laneQuarter   = numeric.SplatF64(0.25)
	laneOne       = numeric.SplatF64(1)
	laneSixteenth = numeric.SplatF64(0.0625)
	laneTwo       = numeric.SplatF64(2)
	laneFour      = numeric.SplatF64(4)
)

// InteriorLanes applies the cardioid and period-2 bulb tests to every lane.
func InteriorLanes(cx, cy numeric.F64x4) numeric.Mask {
	x := cx.Sub(laneQuarter)
	y2 := cy.Mul(cy)
	q := x.Mul(x).Add(y2)
	cardioid := q.Mul(q.Add(x)).Le(laneQuarter.Mul(y2))

	x1 := cx.Add(laneOne)
	bulb := x1.Mul(x1).Add(y2).Le(laneSixteenth)
	return cardioid | bulb
}

// EvaluateLanes runs four independent orbits in lockstep. A lane that escapes
// leaves the active mask: its z stops updating and its count stops growing,
// so every lane ends with the same count the scalar Fixed64 evaluator gives.
func EvaluateLanes(cx, cy numeric.F64x4, budget int) [numeric.Lanes]int {
	var counts [numeric.Lanes]int

	interior := InteriorLanes(cx, cy)
	for i := range counts {
		if interior.Has(i) {
			counts[i] = budget
		}
	}

	active := numeric.AllLanes &^ interior
	var zx, zy numeric.F64x4
	for iter := 0; iter < budget && active.Any(); iter++ {
		zx2 := zx.Mul(zx)
		zy2 := zy.Mul(zy)
		active &^= zx2.Add(zy2).Gt(laneFour)
		if !active.Any() {
			break
		}

		nzy := laneTwo.Mul(zx).Mul(zy).Add(cy)
		nzx := zx2.Sub(zy2).Add(cx)
		zx = numeric.Select(active, nzx, zx)
		zy = numeric.Select(active, nzy, zy)

		for i := range counts {
			if active.Has(i) {
				counts[i]++
			}
		}
	}
	return counts
}
