package view

import (
	"errors"
	"testing"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/numeric"
)

func TestMapper_Corners(t *testing.T) {
	st := newUnitState(t)
	m, err := NewMapper(st, 7, 4)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}

	tests := []struct {
		x, y   int
		re, im numeric.Fixed64
	}{
		{0, 0, -1.5, -1},
		{3, 2, 0, 0},
		{6, 3, 1.5, 0.5},
		{4, 1, 0.5, -0.5},
	}
	for _, tt := range tests {
		c := m.Map(tt.x, tt.y)
		if c.Re != tt.re || c.Im != tt.im {
			t.Errorf("Map(%d, %d) = (%v, %v), want (%v, %v)", tt.x, tt.y, c.Re, c.Im, tt.re, tt.im)
		}
	}
}

func TestMapper_CenterPixelIsExact(t *testing.T) {
	f := numeric.NewArbitraryField(256)
	s := Settings{
		CenterRe:   "-0.74364388703715870475219150611477",
		CenterIm:   "0.13182590420531197049525518728497",
		Zoom:       "1e30",
		PanStep:    "0.1",
		ZoomFactor: "1.1",
	}
	st, err := NewState[numeric.Arbitrary](f, s)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	m, err := NewMapper(st, 400, 300)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}

	c := m.Map(200, 150)
	if c.Re.Cmp(st.Center().Re) != 0 || c.Im.Cmp(st.Center().Im) != 0 {
		t.Errorf("center pixel = (%s, %s), want the view center", c.Re, c.Im)
	}
}

func TestMapper_DeepZoomResolution(t *testing.T) {
	s := Settings{CenterRe: "-0.75", CenterIm: "0", Zoom: "1e20", PanStep: "0.1", ZoomFactor: "1.1"}

	fixed, err := NewState[numeric.Fixed64](numeric.Fixed64Field{}, s)
	if err != nil {
		t.Fatal(err)
	}
	fm, _ := NewMapper(fixed, 400, 300)
	if fm.Map(201, 150).Re != fm.Map(200, 150).Re {
		t.Error("float64 should not resolve neighbouring pixels at zoom 1e20")
	}

	arb, err := NewState[numeric.Arbitrary](numeric.NewArbitraryField(256), s)
	if err != nil {
		t.Fatal(err)
	}
	am, _ := NewMapper(arb, 400, 300)
	if am.Map(201, 150).Re.Cmp(am.Map(200, 150).Re) <= 0 {
		t.Error("arbitrary precision should resolve neighbouring pixels at zoom 1e20")
	}
}

func TestNewMapper_InvalidDimensions(t *testing.T) {
	st := newUnitState(t)
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := NewMapper(st, dims[0], dims[1]); !errors.Is(err, fractal.ErrInvalidDimensions) {
			t.Errorf("NewMapper(%d, %d): expected ErrInvalidDimensions, got %v", dims[0], dims[1], err)
		}
	}
}
