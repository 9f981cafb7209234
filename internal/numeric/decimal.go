package numeric

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/san-kum/mandel/internal/fractal"
)

// DefaultDigits is the default number of decimal places kept by the decimal
// backend, roughly the same resolution as DefaultBits.
const DefaultDigits = 77

// Decimal is a base-10 real rounded to a fixed number of decimal places after
// every multiplication and division. Addition and subtraction are exact.
type Decimal struct {
	d      decimal.Decimal
	places int32
}

func (a Decimal) Add(b Decimal) Decimal { return Decimal{a.d.Add(b.d), a.places} }
func (a Decimal) Sub(b Decimal) Decimal { return Decimal{a.d.Sub(b.d), a.places} }

func (a Decimal) Mul(b Decimal) Decimal {
	return Decimal{a.d.Mul(b.d).Round(a.places), a.places}
}

func (a Decimal) Neg() Decimal      { return Decimal{a.d.Neg(), a.places} }
func (a Decimal) Cmp(b Decimal) int { return a.d.Cmp(b.d) }
func (a Decimal) Float64() float64  { return a.d.InexactFloat64() }
func (a Decimal) String() string    { return a.d.String() }

type DecimalField struct {
	places int32
}

// NewDecimalField returns a field keeping digits decimal places; zero or
// negative selects DefaultDigits.
func NewDecimalField(digits int32) DecimalField {
	if digits <= 0 {
		digits = DefaultDigits
	}
	return DecimalField{places: digits}
}

func (f DecimalField) Name() string  { return "decimal" }
func (f DecimalField) Digits() int32 { return f.places }

func (f DecimalField) FromInt(v int64) Decimal {
	return Decimal{decimal.NewFromInt(v), f.places}
}

func (f DecimalField) FromFloat(v float64) Decimal {
	return Decimal{decimal.NewFromFloat(v).Round(f.places), f.places}
}

func (f DecimalField) Parse(s string) (Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %q", fractal.ErrParse, s)
	}
	return Decimal{d.Round(f.places), f.places}, nil
}

func (f DecimalField) Quo(a, b Decimal) Decimal {
	return Decimal{a.d.DivRound(b.d, f.places), f.places}
}
