package numeric

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/san-kum/mandel/internal/fractal"
)

// DefaultBits is the default mantissa width of the arbitrary backend
// (about 77 decimal digits).
const DefaultBits = 256

// Arbitrary is a binary big float. The wrapped value is never mutated after
// construction.
type Arbitrary struct {
	v *big.Float
}

func (a Arbitrary) prec(b Arbitrary) uint {
	return max(a.v.Prec(), b.v.Prec())
}

func (a Arbitrary) Add(b Arbitrary) Arbitrary {
	return Arbitrary{new(big.Float).SetPrec(a.prec(b)).Add(a.v, b.v)}
}

func (a Arbitrary) Sub(b Arbitrary) Arbitrary {
	return Arbitrary{new(big.Float).SetPrec(a.prec(b)).Sub(a.v, b.v)}
}

func (a Arbitrary) Mul(b Arbitrary) Arbitrary {
	return Arbitrary{new(big.Float).SetPrec(a.prec(b)).Mul(a.v, b.v)}
}

func (a Arbitrary) Neg() Arbitrary {
	return Arbitrary{new(big.Float).SetPrec(a.v.Prec()).Neg(a.v)}
}

func (a Arbitrary) Cmp(b Arbitrary) int { return a.v.Cmp(b.v) }

func (a Arbitrary) Float64() float64 {
	f, _ := a.v.Float64()
	return f
}

func (a Arbitrary) String() string { return a.v.Text('g', -1) }

// Prec returns the mantissa width in bits.
func (a Arbitrary) Prec() uint { return a.v.Prec() }

type ArbitraryField struct {
	bits uint
}

// NewArbitraryField returns a field of the given mantissa width; zero selects
// DefaultBits.
func NewArbitraryField(bits uint) ArbitraryField {
	if bits == 0 {
		bits = DefaultBits
	}
	return ArbitraryField{bits: bits}
}

func (f ArbitraryField) Name() string { return "arbitrary" }
func (f ArbitraryField) Bits() uint   { return f.bits }

func (f ArbitraryField) FromInt(v int64) Arbitrary {
	return Arbitrary{new(big.Float).SetPrec(f.bits).SetInt64(v)}
}

func (f ArbitraryField) FromFloat(v float64) Arbitrary {
	return Arbitrary{new(big.Float).SetPrec(f.bits).SetFloat64(v)}
}

func (f ArbitraryField) Parse(s string) (Arbitrary, error) {
	v, _, err := big.ParseFloat(strings.TrimSpace(s), 10, f.bits, big.ToNearestEven)
	if err != nil || v.IsInf() {
		return Arbitrary{}, fmt.Errorf("%w: %q", fractal.ErrParse, s)
	}
	return Arbitrary{v}, nil
}

func (f ArbitraryField) Quo(a, b Arbitrary) Arbitrary {
	return Arbitrary{new(big.Float).SetPrec(f.bits).Quo(a.v, b.v)}
}
