package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/numeric"
	"github.com/san-kum/mandel/internal/view"
)

const (
	DefaultWidth   = 400
	DefaultHeight  = 300
	DefaultMaxIter = 1000
	DefaultBackend = "fixed64"
	DefaultBits    = 256
	DefaultDigits  = 77
)

type Config struct {
	Width     int             `yaml:"width"`
	Height    int             `yaml:"height"`
	MaxIter   int             `yaml:"max_iter"`
	Backend   string          `yaml:"backend"`
	Workers   int             `yaml:"workers"`
	TileSize  TileConfig      `yaml:"tile_size"`
	Precision PrecisionConfig `yaml:"precision"`
	View      ViewConfig      `yaml:"view"`
}

// TileConfig sets the render tile in pixels. Zero picks the default.
type TileConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PrecisionConfig struct {
	Bits   uint  `yaml:"bits"`
	Digits int32 `yaml:"digits"`
}

type ViewConfig struct {
	CenterRe   string `yaml:"center_re"`
	CenterIm   string `yaml:"center_im"`
	Zoom       string `yaml:"zoom"`
	PanStep    string `yaml:"pan_step"`
	ZoomFactor string `yaml:"zoom_factor"`
}

func (v ViewConfig) Settings() view.Settings {
	return view.Settings{
		CenterRe:   v.CenterRe,
		CenterIm:   v.CenterIm,
		Zoom:       v.Zoom,
		PanStep:    v.PanStep,
		ZoomFactor: v.ZoomFactor,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		MaxIter: DefaultMaxIter,
		Backend: DefaultBackend,
		Precision: PrecisionConfig{
			Bits:   DefaultBits,
			Digits: DefaultDigits,
		},
		View: ViewConfig{
			CenterRe:   view.DefaultCenterRe,
			CenterIm:   view.DefaultCenterIm,
			Zoom:       view.DefaultZoom,
			PanStep:    view.DefaultPanStep,
			ZoomFactor: view.DefaultZoomFactor,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(field string, value any, err error) error {
	return &fractal.ConfigurationError{Field: field, Value: fmt.Sprint(value), Err: err}
}

// Validate checks every value that can be checked without choosing a
// backend. View strings are checked at high precision so deep zooms that
// overflow float64 still pass.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return invalid("width", c.Width, fractal.ErrInvalidDimensions)
	}
	if c.Height <= 0 {
		return invalid("height", c.Height, fractal.ErrInvalidDimensions)
	}
	if c.MaxIter <= 0 {
		return invalid("max_iter", c.MaxIter, fractal.ErrInvalidBudget)
	}
	if c.Backend == "" {
		return invalid("backend", c.Backend, fractal.ErrUnknownBackend)
	}
	if c.Workers < 0 {
		return invalid("workers", c.Workers, fmt.Errorf("must not be negative"))
	}
	if c.TileSize.Width < 0 || c.TileSize.Height < 0 {
		return invalid("tile_size", fmt.Sprintf("%dx%d", c.TileSize.Width, c.TileSize.Height), fmt.Errorf("must not be negative"))
	}
	if c.Precision.Digits < 0 {
		return invalid("precision.digits", c.Precision.Digits, fmt.Errorf("must not be negative"))
	}

	bits := c.Precision.Bits
	if bits == 0 {
		bits = DefaultBits
	}
	_, err := view.NewState[numeric.Arbitrary](numeric.NewArbitraryField(bits), c.View.Settings())
	return err
}

// ApplyPreset moves the configured view to a named landmark.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return invalid("preset", name, fmt.Errorf("unknown preset"))
	}
	c.View.CenterRe = p.CenterRe
	c.View.CenterIm = p.CenterIm
	c.View.Zoom = p.Zoom
	if p.MaxIter > c.MaxIter {
		c.MaxIter = p.MaxIter
	}
	return nil
}
