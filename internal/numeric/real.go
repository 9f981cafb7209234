package numeric

// Real is a scalar coordinate component. T is the implementing type itself.
type Real[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Neg() T
	Cmp(T) int
	Float64() float64
	String() string
}

// Field constructs values of a backend's Real type at its working precision.
type Field[T Real[T]] interface {
	Name() string
	FromInt(int64) T
	FromFloat(float64) T
	Parse(s string) (T, error)
	// Quo is used for view scaling only, never inside the iteration loop.
	Quo(a, b T) T
}

// Complex is one point of the complex plane.
type Complex[T any] struct {
	Re, Im T
}

func LessEq[T Real[T]](a, b T) bool  { return a.Cmp(b) <= 0 }
func Greater[T Real[T]](a, b T) bool { return a.Cmp(b) > 0 }

// Positive reports whether a > 0.
func Positive[T Real[T]](f Field[T], a T) bool {
	return a.Cmp(f.FromInt(0)) > 0
}
