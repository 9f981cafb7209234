package compute

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/frame"
	"github.com/san-kum/mandel/internal/numeric"
	"github.com/san-kum/mandel/internal/view"
)

type Backend interface {
	Name() string
	// Lanes is the number of pixels one kernel call evaluates.
	Lanes() int
	MaxIter() int
	Size() (width, height int)
	Resize(width, height int) error
	Apply(cmd view.Command) error
	Goto(snap view.Snapshot) error
	View() view.Snapshot
	Dirty() bool
	// Redraw renders a frame if one is owed. It reports false when the
	// view is clean.
	Redraw(ctx context.Context) (*frame.Frame, bool, error)
	// Evaluate returns the iteration count of a single point.
	Evaluate(re, im string) (int, error)
}

type factory func(cfg *config.Config) (Backend, error)

var registry = map[string]factory{
	"fixed64":   newFixed64,
	"simd4x64":  newSimd4x64,
	"extended":  newExtended,
	"arbitrary": newArbitrary,
	"decimal":   newDecimal,
}

// Names lists the registered backends in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the backend named by cfg.Backend.
func New(cfg *config.Config) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mk, ok := registry[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", fractal.ErrUnknownBackend, cfg.Backend, Names())
	}
	return mk(cfg)
}

// Zoom levels past which each backend starts to lose pixels to rounding.
const (
	float64Horizon  = 1e13
	extendedHorizon = 1e28
)

func newFixed64(cfg *config.Config) (Backend, error) {
	f := numeric.Fixed64Field{}
	k, err := frame.NewScalarKernel[numeric.Fixed64](f, cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	return newEngine[numeric.Fixed64]("fixed64", f, k, cfg, float64Horizon)
}

func newSimd4x64(cfg *config.Config) (Backend, error) {
	k, err := frame.NewLaneKernel(cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	return newEngine[numeric.Fixed64]("simd4x64", numeric.Fixed64Field{}, k, cfg, float64Horizon)
}

func newExtended(cfg *config.Config) (Backend, error) {
	f := numeric.ExtendedField{}
	k, err := frame.NewScalarKernel[numeric.Extended](f, cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	return newEngine[numeric.Extended]("extended", f, k, cfg, extendedHorizon)
}

func newArbitrary(cfg *config.Config) (Backend, error) {
	f := numeric.NewArbitraryField(cfg.Precision.Bits)
	k, err := frame.NewScalarKernel[numeric.Arbitrary](f, cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	digits := float64(f.Bits()) * math.Log10(2)
	return newEngine[numeric.Arbitrary]("arbitrary", f, k, cfg, math.Pow(10, digits-8))
}

func newDecimal(cfg *config.Config) (Backend, error) {
	f := numeric.NewDecimalField(cfg.Precision.Digits)
	k, err := frame.NewScalarKernel[numeric.Decimal](f, cfg.MaxIter)
	if err != nil {
		return nil, err
	}
	return newEngine[numeric.Decimal]("decimal", f, k, cfg, math.Pow(10, float64(f.Digits())-8))
}
