// Package numeric provides the real-number backends of the escape-time engine.
//
// Every backend supplies a value type implementing [Real] and a [Field] that
// constructs values of that type at the backend's working precision:
//
//   - [Fixed64]: native float64, fastest, bands beyond zoom ~1e13
//   - [Extended]: double-double (~106-bit mantissa) on float64 hardware
//   - [Arbitrary]: math/big binary floats with a configurable bit depth
//   - [Decimal]: decimal fixed-place arithmetic with configurable digits
//
// [F64x4] is the four-lane variant of Fixed64 used by the batched evaluator.
//
// Values are immutable: every operation returns a new value. Constants used
// by the evaluator and the mapper must be built through the Field rather than
// converted from float64 literals, otherwise high precision backends silently
// lose digits.
package numeric
