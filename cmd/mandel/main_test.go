package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/mandel/internal/storage"
)

func TestZoomSequence(t *testing.T) {
	zooms, err := zoomSequence("0.5", 10, 4)
	if err != nil {
		t.Fatalf("zoomSequence: %v", err)
	}
	want := []string{"0.5", "5", "50", "500"}
	if len(zooms) != len(want) {
		t.Fatalf("got %v, want %v", zooms, want)
	}
	for i := range want {
		if zooms[i] != want[i] {
			t.Errorf("zoom %d = %s, want %s", i, zooms[i], want[i])
		}
	}
}

func TestZoomSequence_Deep(t *testing.T) {
	zooms, err := zoomSequence("1e300", 1e10, 3)
	if err != nil {
		t.Fatalf("zoomSequence: %v", err)
	}
	if zooms[2] != "1e+320" {
		t.Errorf("deep zoom = %s, want 1e+320", zooms[2])
	}
}

func TestZoomSequence_Invalid(t *testing.T) {
	if _, err := zoomSequence("wide", 10, 3); err == nil {
		t.Error("expected error for unparsable zoom")
	}
	if _, err := zoomSequence("1", 0, 3); err == nil {
		t.Error("expected error for zero factor")
	}
}

func TestLoadConfig_Preset(t *testing.T) {
	preset, bookmark, configFile = "elephant", "", ""
	centerRe, centerIm, zoom = "", "", ""
	defer func() { preset = "" }()

	cfg, err := loadConfig(&cobra.Command{})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.View.CenterRe != "-1.8" || cfg.View.Zoom != "35" {
		t.Errorf("preset not applied: %+v", cfg.View)
	}
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	preset, bookmark, configFile = "seahorse", "", ""
	centerRe, centerIm, zoom = "", "", "70"
	defer func() { preset, zoom = "", "" }()

	cfg, err := loadConfig(&cobra.Command{})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.View.CenterRe != "-0.75" || cfg.View.Zoom != "70" {
		t.Errorf("flag did not override preset: %+v", cfg.View)
	}
}

func TestLoadConfig_UnknownPreset(t *testing.T) {
	preset, bookmark, configFile = "atlantis", "", ""
	defer func() { preset = "" }()

	if _, err := loadConfig(&cobra.Command{}); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadPrior(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.csv")
	ms := []storage.Measurement{
		{Backend: "fixed64", Zoom: "0.5", Elapsed: 12 * time.Millisecond, MeanIter: 40, Interior: 0.2},
		{Backend: "fixed64", Zoom: "5", Elapsed: 30 * time.Millisecond, MeanIter: 90, Interior: 0.1},
	}
	if err := saveMeasurements(path, ms); err != nil {
		t.Fatalf("saveMeasurements: %v", err)
	}

	prior, err := loadPrior(path)
	if err != nil {
		t.Fatalf("loadPrior: %v", err)
	}
	if prior["0.5"] != 12*time.Millisecond || prior["5"] != 30*time.Millisecond {
		t.Errorf("prior = %v", prior)
	}
}

func TestLoadPrior_Missing(t *testing.T) {
	if _, err := loadPrior(filepath.Join(t.TempDir(), "none.csv")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSpeedup(t *testing.T) {
	tests := []struct {
		before, now time.Duration
		want        string
	}{
		{20 * time.Millisecond, 10 * time.Millisecond, "2.00x"},
		{10 * time.Millisecond, 40 * time.Millisecond, "0.25x"},
		{0, 10 * time.Millisecond, "-"},
	}
	for _, tt := range tests {
		if got := speedup(tt.before, tt.now); got != tt.want {
			t.Errorf("speedup(%v, %v) = %s, want %s", tt.before, tt.now, got, tt.want)
		}
	}
}
