// Package view holds the view over the complex plane and maps pixels onto it.
package view

import (
	"fmt"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/numeric"
)

// Default view of the interactive explorer.
const (
	DefaultCenterRe   = "-0.705922586560551705765"
	DefaultCenterIm   = "-0.267652025962102419929"
	DefaultZoom       = "0.5"
	DefaultPanStep    = "0.1"
	DefaultZoomFactor = "1.1"
)

// Settings are the textual view parameters. They are parsed at the backend's
// precision so deep views and step constants keep every digit.
type Settings struct {
	CenterRe   string
	CenterIm   string
	Zoom       string
	PanStep    string
	ZoomFactor string
}

func DefaultSettings() Settings {
	return Settings{
		CenterRe:   DefaultCenterRe,
		CenterIm:   DefaultCenterIm,
		Zoom:       DefaultZoom,
		PanStep:    DefaultPanStep,
		ZoomFactor: DefaultZoomFactor,
	}
}

// Snapshot is a printable copy of a view.
type Snapshot struct {
	CenterRe string `json:"center_re" yaml:"center_re"`
	CenterIm string `json:"center_im" yaml:"center_im"`
	Zoom     string `json:"zoom" yaml:"zoom"`
}

// State is the view: center, zoom and the dirty flag. The zero value is not
// usable; build one with NewState. zoom > 0 holds for every State.
type State[T numeric.Real[T]] struct {
	field numeric.Field[T]

	re, im, zoom          T
	defRe, defIm, defZoom T
	step, factor          T

	dirty bool
}

func NewState[T numeric.Real[T]](f numeric.Field[T], s Settings) (*State[T], error) {
	st := &State[T]{field: f, dirty: true}

	fields := []struct {
		name string
		text string
		dst  *T
	}{
		{"center_re", s.CenterRe, &st.defRe},
		{"center_im", s.CenterIm, &st.defIm},
		{"zoom", s.Zoom, &st.defZoom},
		{"pan_step", s.PanStep, &st.step},
		{"zoom_factor", s.ZoomFactor, &st.factor},
	}
	for _, fd := range fields {
		v, err := f.Parse(fd.text)
		if err != nil {
			return nil, &fractal.ConfigurationError{Field: fd.name, Value: fd.text, Err: err}
		}
		*fd.dst = v
	}

	if !numeric.Positive(f, st.defZoom) {
		return nil, &fractal.ConfigurationError{Field: "zoom", Value: s.Zoom, Err: fractal.ErrInvalidZoom}
	}
	if !numeric.Positive(f, st.step) {
		return nil, &fractal.ConfigurationError{Field: "pan_step", Value: s.PanStep, Err: fmt.Errorf("must be positive")}
	}
	if st.factor.Cmp(f.FromInt(1)) <= 0 {
		return nil, &fractal.ConfigurationError{Field: "zoom_factor", Value: s.ZoomFactor, Err: fmt.Errorf("must be greater than 1")}
	}

	st.re, st.im, st.zoom = st.defRe, st.defIm, st.defZoom
	return st, nil
}

func (s *State[T]) Center() numeric.Complex[T] { return numeric.Complex[T]{Re: s.re, Im: s.im} }
func (s *State[T]) Zoom() T                    { return s.zoom }
func (s *State[T]) Field() numeric.Field[T]    { return s.field }
func (s *State[T]) Dirty() bool                { return s.dirty }
func (s *State[T]) MarkClean()                 { s.dirty = false }

// Clone returns an independent copy. Values are immutable, so sharing them
// between the copies is safe.
func (s *State[T]) Clone() *State[T] {
	c := *s
	return &c
}

// Apply performs one command. Quit and None leave the view untouched. A
// mutation that would make zoom non-positive is rejected and the view is
// left as it was.
func (s *State[T]) Apply(cmd Command) error {
	f := s.field
	re, im, zoom := s.re, s.im, s.zoom

	switch cmd {
	case None, Quit:
		return nil
	case PanLeft:
		re = re.Sub(f.Quo(s.step, zoom))
	case PanRight:
		re = re.Add(f.Quo(s.step, zoom))
	case PanUp:
		im = im.Sub(f.Quo(s.step, zoom))
	case PanDown:
		im = im.Add(f.Quo(s.step, zoom))
	case ZoomIn:
		zoom = zoom.Mul(s.factor)
	case ZoomOut:
		zoom = f.Quo(zoom, s.factor)
	case Reset:
		re, im, zoom = s.defRe, s.defIm, s.defZoom
	default:
		return fmt.Errorf("%w: %d", fractal.ErrUnknownCommand, int(cmd))
	}

	if !numeric.Positive(f, zoom) {
		return &fractal.ConfigurationError{Field: "zoom", Value: zoom.String(), Err: fractal.ErrInvalidZoom}
	}

	s.re, s.im, s.zoom = re, im, zoom
	s.dirty = true
	return nil
}

// Goto moves the view to the given center and zoom.
func (s *State[T]) Goto(snap Snapshot) error {
	re, err := s.field.Parse(snap.CenterRe)
	if err != nil {
		return &fractal.ConfigurationError{Field: "center_re", Value: snap.CenterRe, Err: err}
	}
	im, err := s.field.Parse(snap.CenterIm)
	if err != nil {
		return &fractal.ConfigurationError{Field: "center_im", Value: snap.CenterIm, Err: err}
	}
	zoom, err := s.field.Parse(snap.Zoom)
	if err != nil {
		return &fractal.ConfigurationError{Field: "zoom", Value: snap.Zoom, Err: err}
	}
	if !numeric.Positive(s.field, zoom) {
		return &fractal.ConfigurationError{Field: "zoom", Value: snap.Zoom, Err: fractal.ErrInvalidZoom}
	}

	s.re, s.im, s.zoom = re, im, zoom
	s.dirty = true
	return nil
}

func (s *State[T]) Snapshot() Snapshot {
	return Snapshot{
		CenterRe: s.re.String(),
		CenterIm: s.im.String(),
		Zoom:     s.zoom.String(),
	}
}
