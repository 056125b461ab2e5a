package config

import "sort"

// Presets are tuned configurations for the stock scenarios. The *_fine
// variants trade speed for stability: smaller dt and more substeps are the
// standard response to close approaches going jittery.
var Presets = map[string]*Config{
	"binary": {
		Scenario: "two_body", G: 1.0, Softening: 1e-3,
		Dt: 0.01, Substeps: 5, Duration: 100.0, FPS: 30,
		TwoBody: TwoBodyConfig{M1: 1.0, M2: 3.0, Separation: 6.0},
	},
	"binary_tight": {
		Scenario: "two_body", G: 1.0, Softening: 1e-2,
		Dt: 0.005, Substeps: 8, Duration: 60.0, FPS: 30,
		TwoBody: TwoBodyConfig{M1: 1.0, M2: 3.0, Separation: 3.0},
	},
	"quartet": {
		Scenario: "four_body", G: 1.0, Softening: 1e-3,
		Dt: 0.01, Substeps: 5, Duration: 120.0, FPS: 30,
	},
	"quartet_fine": {
		Scenario: "four_body", G: 1.0, Softening: 1e-3,
		Dt: 0.005, Substeps: 8, Duration: 120.0, FPS: 30,
	},
	"figure_eight": {
		Scenario: "figure_eight", G: 1.0, Softening: 1e-4,
		Dt: 0.005, Substeps: 5, Duration: 60.0, FPS: 30,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
