package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds every tunable of a brush run. Distances are millimetres.
type Config struct {
	ZUp            float64 `yaml:"zUp"`
	ZDown          float64 `yaml:"zDown"`
	ZFromColor     bool    `yaml:"zFromColor"`
	ZFromSVG       string  `yaml:"zFromSvg"`
	SmoothDistance float64 `yaml:"smoothDistance"`
	PressDistance  float64 `yaml:"pressDistance"`
	LiftDistance   float64 `yaml:"liftDistance"`
	SegmentLength  float64 `yaml:"segmentLength"`
	FeedRate       float64 `yaml:"feedRate"`
	Unit           string  `yaml:"unit"`
	MergeTolerance float64 `yaml:"mergeTolerance"`
	SearchRadius   float64 `yaml:"searchRadius"`
	Output         string  `yaml:"output"`

	Quantization float64 `yaml:"quantization"`
	Normalize    bool    `yaml:"normalize"`
}

func DefaultConfig() Config {
	return Config{
		ZUp:            -3.0,
		ZDown:          -20.0,
		SmoothDistance: 5.0,
		PressDistance:  50.0,
		LiftDistance:   50.0,
		SegmentLength:  2.0,
		FeedRate:       1000.0,
		Unit:           "mm",
		MergeTolerance: 1.0,
		SearchRadius:   defaultSearchRadius,
		Quantization:   0.1,
		Normalize:      true,
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"smooth distance", c.SmoothDistance},
		{"press distance", c.PressDistance},
		{"lift distance", c.LiftDistance},
		{"segment length", c.SegmentLength},
		{"merge tolerance", c.MergeTolerance},
		{"search radius", c.SearchRadius},
		{"quantization", c.Quantization},
	} {
		if v.val < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfig, v.name, v.val)
		}
	}
	if c.FeedRate <= 0 {
		return fmt.Errorf("%w: feed rate must be positive, got %g", ErrInvalidConfig, c.FeedRate)
	}
	if _, err := outputScale(c.Unit); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
