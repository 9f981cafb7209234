package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/mandel/internal/fractal"
)

// Fixed64 is a native double precision real.
type Fixed64 float64

func (a Fixed64) Add(b Fixed64) Fixed64 { return Fixed64(float64(a) + float64(b)) }
func (a Fixed64) Sub(b Fixed64) Fixed64 { return Fixed64(float64(a) - float64(b)) }

// Mul rounds the product explicitly so it is never fused into a following
// add. Scalar and lane results stay bit-identical on FMA architectures.
func (a Fixed64) Mul(b Fixed64) Fixed64 { return Fixed64(float64(float64(a) * float64(b))) }

func (a Fixed64) Neg() Fixed64     { return -a }
func (a Fixed64) Float64() float64 { return float64(a) }
func (a Fixed64) String() string   { return strconv.FormatFloat(float64(a), 'g', -1, 64) }

func (a Fixed64) Cmp(b Fixed64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

type Fixed64Field struct{}

func (Fixed64Field) Name() string                { return "fixed64" }
func (Fixed64Field) FromInt(v int64) Fixed64     { return Fixed64(v) }
func (Fixed64Field) FromFloat(v float64) Fixed64 { return Fixed64(v) }
func (Fixed64Field) Quo(a, b Fixed64) Fixed64    { return a / b }

func (Fixed64Field) Parse(s string) (Fixed64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", fractal.ErrParse, s)
	}
	return Fixed64(v), nil
}
