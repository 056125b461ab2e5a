package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultG         = 1.0
	DefaultSoftening = 1e-3
	DefaultDt        = 0.01
	DefaultSubsteps  = 5
	DefaultDuration  = 50.0
	DefaultFPS       = 30
)

// Config is the full run configuration, loadable from YAML. Physical
// constants here are plain numeric parameters handed to the core at
// construction; the core validates positivity.
type Config struct {
	Scenario  string        `yaml:"scenario"`
	G         float64       `yaml:"g"`
	Softening float64       `yaml:"softening"`
	Dt        float64       `yaml:"dt"`
	Substeps  int           `yaml:"substeps"`
	Duration  float64       `yaml:"duration"`
	FPS       int           `yaml:"fps"`
	TwoBody   TwoBodyConfig `yaml:"two_body"`
}

// TwoBodyConfig parameterizes the binary scenario.
type TwoBodyConfig struct {
	M1         float64 `yaml:"m1"`
	M2         float64 `yaml:"m2"`
	Separation float64 `yaml:"separation"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:  "two_body",
		G:         DefaultG,
		Softening: DefaultSoftening,
		Dt:        DefaultDt,
		Substeps:  DefaultSubsteps,
		Duration:  DefaultDuration,
		FPS:       DefaultFPS,
		TwoBody: TwoBodyConfig{
			M1:         1.0,
			M2:         3.0,
			Separation: 6.0,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
