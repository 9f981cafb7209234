package numeric

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/san-kum/mandel/internal/fractal"
)

// Extended is a double-double real: the unevaluated sum hi+lo with
// |lo| <= ulp(hi)/2. Go has no native float wider than float64, so the
// extended backend gets its extra mantissa from error-free transforms.
type Extended struct {
	hi, lo float64
}

const extendedParseBits = 128

// twoSum returns s, e with s+e == a+b exactly.
func twoSum(a, b float64) (float64, float64) {
	s := a + b
	bb := s - a
	e := (a - (s - bb)) + (b - bb)
	return s, e
}

// quickTwoSum requires |a| >= |b|.
func quickTwoSum(a, b float64) (float64, float64) {
	s := a + b
	e := b - (s - a)
	return s, e
}

func twoProd(a, b float64) (float64, float64) {
	p := a * b
	return p, math.FMA(a, b, -p)
}

func (a Extended) Add(b Extended) Extended {
	s1, s2 := twoSum(a.hi, b.hi)
	t1, t2 := twoSum(a.lo, b.lo)
	s2 += t1
	s1, s2 = quickTwoSum(s1, s2)
	s2 += t2
	s1, s2 = quickTwoSum(s1, s2)
	return Extended{s1, s2}
}

func (a Extended) Sub(b Extended) Extended { return a.Add(b.Neg()) }

func (a Extended) Mul(b Extended) Extended {
	p1, p2 := twoProd(a.hi, b.hi)
	p2 += a.hi*b.lo + a.lo*b.hi
	p1, p2 = quickTwoSum(p1, p2)
	return Extended{p1, p2}
}

func (a Extended) Neg() Extended { return Extended{-a.hi, -a.lo} }

func (a Extended) Cmp(b Extended) int {
	switch {
	case a.hi < b.hi:
		return -1
	case a.hi > b.hi:
		return 1
	case a.lo < b.lo:
		return -1
	case a.lo > b.lo:
		return 1
	}
	return 0
}

func (a Extended) Float64() float64 { return a.hi + a.lo }

func (a Extended) String() string {
	if math.IsNaN(a.hi) || math.IsInf(a.hi, 0) {
		return strconv.FormatFloat(a.hi, 'g', -1, 64)
	}
	f := new(big.Float).SetPrec(extendedParseBits).SetFloat64(a.hi)
	f.Add(f, new(big.Float).SetFloat64(a.lo))
	return f.Text('g', 32)
}

type ExtendedField struct{}

func (ExtendedField) Name() string                 { return "extended" }
func (ExtendedField) FromInt(v int64) Extended     { return ExtendedField{}.fromBig(new(big.Float).SetInt64(v)) }
func (ExtendedField) FromFloat(v float64) Extended { return Extended{hi: v} }

func (ExtendedField) Parse(s string) (Extended, error) {
	f, _, err := big.ParseFloat(strings.TrimSpace(s), 10, extendedParseBits, big.ToNearestEven)
	if err != nil || f.IsInf() {
		return Extended{}, fmt.Errorf("%w: %q", fractal.ErrParse, s)
	}
	// Beyond float64 range the head word overflows.
	if hi, _ := f.Float64(); math.IsInf(hi, 0) {
		return Extended{}, fmt.Errorf("%w: %q", fractal.ErrParse, s)
	}
	return ExtendedField{}.fromBig(f), nil
}

func (ExtendedField) fromBig(f *big.Float) Extended {
	hi, _ := f.Float64()
	rest := new(big.Float).SetPrec(extendedParseBits).Sub(f, new(big.Float).SetFloat64(hi))
	lo, _ := rest.Float64()
	return Extended{hi, lo}
}

// Quo is long division with two correction steps.
func (ExtendedField) Quo(a, b Extended) Extended {
	q1 := a.hi / b.hi
	r := a.Sub(b.Mul(Extended{hi: q1}))
	q2 := r.hi / b.hi
	r = r.Sub(b.Mul(Extended{hi: q2}))
	q3 := r.hi / b.hi
	q1, q2 = quickTwoSum(q1, q2)
	return Extended{q1, q2}.Add(Extended{hi: q3})
}
