package config

import "sort"

// Preset is a named landmark of the set. Zoom follows the view convention:
// the visible real span is 3.5/zoom.
type Preset struct {
	Description string
	CenterRe    string
	CenterIm    string
	Zoom        string
	MaxIter     int
}

var Presets = map[string]Preset{
	"default": {
		Description: "Starting view of the explorer",
		CenterRe:    "-0.705922586560551705765",
		CenterIm:    "-0.267652025962102419929",
		Zoom:        "0.5",
	},
	"seahorse": {
		Description: "Seahorse Valley, dense filaments and seahorse curls",
		CenterRe:    "-0.75",
		CenterIm:    "0.1",
		Zoom:        "35",
	},
	"elephant": {
		Description: "Elephant Valley, bulbs with trunk-like tendrils",
		CenterRe:    "-1.8",
		CenterIm:    "-0.06",
		Zoom:        "35",
	},
	"spiral": {
		Description: "Spiral minibrot with tight arms",
		CenterRe:    "-0.74275",
		CenterIm:    "0.13175",
		Zoom:        "2333",
		MaxIter:     2000,
	},
	"triple-spiral": {
		Description: "Threefold symmetric spiral",
		CenterRe:    "-0.7465",
		CenterIm:    "0.0965",
		Zoom:        "1166",
		MaxIter:     2000,
	},
	"dragon": {
		Description: "Valley of the Dragon, deep spiral filaments",
		CenterRe:    "-0.7375",
		CenterIm:    "0.1825",
		Zoom:        "700",
		MaxIter:     1500,
	},
	"mini-spiral": {
		Description: "Minibrot inside a spiral arm",
		CenterRe:    "-1.73825",
		CenterIm:    "-0.02275",
		Zoom:        "2333",
		MaxIter:     2000,
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
