package numeric

import "math/bits"

// Lanes is the width of the batched Fixed64 backend.
const Lanes = 4

// F64x4 holds four float64 lanes. Fixed-size array loops are simple enough
// for the compiler to keep in registers; no assembly is involved.
type F64x4 [Lanes]float64

// Mask has bit i set when lane i is selected.
type Mask uint8

// AllLanes selects every lane.
const AllLanes Mask = 1<<Lanes - 1

func SplatF64(v float64) F64x4 {
	var r F64x4
	for i := range r {
		r[i] = v
	}
	return r
}

func (v F64x4) Add(o F64x4) F64x4 {
	var r F64x4
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

func (v F64x4) Sub(o F64x4) F64x4 {
	var r F64x4
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Mul rounds each product explicitly, matching Fixed64.Mul.
func (v F64x4) Mul(o F64x4) F64x4 {
	var r F64x4
	for i := range v {
		r[i] = float64(v[i] * o[i])
	}
	return r
}

// Gt returns the lanes where v > o.
func (v F64x4) Gt(o F64x4) Mask {
	var m Mask
	for i := range v {
		if v[i] > o[i] {
			m |= 1 << i
		}
	}
	return m
}

// Le returns the lanes where v <= o.
func (v F64x4) Le(o F64x4) Mask {
	var m Mask
	for i := range v {
		if v[i] <= o[i] {
			m |= 1 << i
		}
	}
	return m
}

// Select takes lanes of a where m is set and lanes of b elsewhere.
func Select(m Mask, a, b F64x4) F64x4 {
	var r F64x4
	for i := range r {
		if m&(1<<i) != 0 {
			r[i] = a[i]
		} else {
			r[i] = b[i]
		}
	}
	return r
}

func (m Mask) Has(i int) bool { return m&(1<<i) != 0 }
func (m Mask) Any() bool      { return m&AllLanes != 0 }
func (m Mask) Count() int     { return bits.OnesCount8(uint8(m & AllLanes)) }
