package fractal

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrInvalidZoom indicates a zoom factor that is zero or negative.
	ErrInvalidZoom = errors.New("mandel: zoom must be strictly positive")

	// ErrInvalidDimensions indicates a non-positive image width or height.
	ErrInvalidDimensions = errors.New("mandel: image dimensions must be positive")

	// ErrInvalidBudget indicates a non-positive iteration budget.
	ErrInvalidBudget = errors.New("mandel: iteration budget must be positive")

	// ErrUnknownBackend indicates a numeric backend name that is not registered.
	ErrUnknownBackend = errors.New("mandel: unknown numeric backend")

	// ErrUnknownCommand indicates an input command the view does not handle.
	ErrUnknownCommand = errors.New("mandel: unknown view command")

	// ErrParse indicates a real number that could not be parsed.
	ErrParse = errors.New("mandel: cannot parse real number")
)

// ConfigurationError reports a precondition violation on a configuration or
// view value. It is fatal to the call that returned it.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
