// Package config holds the environment configuration and the TOML scenario
// files describing workloads.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-sod/quadtree/internal/knn"
	"github.com/go-sod/quadtree/pkg/geom"
)

var ErrInvalidScenario = errors.New("invalid scenario")

type Config struct {
	ScenarioFile string `envconfig:"QTREE_SCENARIO"`
	MetricsAddr  string `envconfig:"QTREE_METRICS_ADDR"`
	Replicas     int    `envconfig:"QTREE_REPLICAS" default:"1"`
	Default      Scenario
	Scenarios    []Scenario `ignored:"true"`
}

// Scenario describes one workload. Fields left out of a scenario file take
// the values of the environment defaults.
type Scenario struct {
	Name       string      `toml:"name" envconfig:"QTREE_NAME" default:"default"`
	Alg        knn.AlgType `toml:"alg" envconfig:"QTREE_ALG" default:"QUADTREE"`
	MinX       float64     `toml:"min_x" envconfig:"QTREE_MIN_X" default:"0"`
	MinY       float64     `toml:"min_y" envconfig:"QTREE_MIN_Y" default:"0"`
	MaxX       float64     `toml:"max_x" envconfig:"QTREE_MAX_X" default:"1000"`
	MaxY       float64     `toml:"max_y" envconfig:"QTREE_MAX_Y" default:"1000"`
	BucketSize int         `toml:"bucket_size" envconfig:"QTREE_BUCKET_SIZE" default:"4"`
	MaxDepth   int         `toml:"max_depth" envconfig:"QTREE_MAX_DEPTH" default:"32"`
	Particles  int         `toml:"particles" envconfig:"QTREE_PARTICLES" default:"10000"`
	Outside    int         `toml:"outside" envconfig:"QTREE_OUTSIDE" default:"0"`
	Steps      int         `toml:"steps" envconfig:"QTREE_STEPS" default:"100"`
	MaxSpeed   float64     `toml:"max_speed" envconfig:"QTREE_MAX_SPEED" default:"5"`
	Queries    int         `toml:"queries" envconfig:"QTREE_QUERIES" default:"1000"`
	K          int         `toml:"k" envconfig:"QTREE_K" default:"8"`
	Verify     bool        `toml:"verify" envconfig:"QTREE_VERIFY" default:"false"`
}

// scenarioFile keeps entries undecoded so each one can be decoded over a
// copy of the defaults; keys absent from an entry keep the default value.
type scenarioFile struct {
	Scenarios []toml.Primitive `toml:"scenario"`
}

func (s Scenario) Universe() (geom.Rect, error) {
	return geom.NewRect(geom.Point{X: s.MinX, Y: s.MinY}, geom.Point{X: s.MaxX, Y: s.MaxY})
}

func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario without name: %w", ErrInvalidScenario)
	}
	if _, err := s.Universe(); err != nil {
		return fmt.Errorf("scenario %s: %v: %w", s.Name, err, ErrInvalidScenario)
	}
	switch s.Alg {
	case knn.AlgTypeQuadTree, knn.AlgTypeBrute, knn.AlgTypeKDTree:
	default:
		return fmt.Errorf("scenario %s: unknown alg %q: %w", s.Name, s.Alg, ErrInvalidScenario)
	}
	if s.BucketSize < 1 || s.MaxDepth < 1 {
		return fmt.Errorf("scenario %s: bucket size and max depth must be positive: %w", s.Name, ErrInvalidScenario)
	}
	if s.Particles < 0 || s.Outside < 0 || s.Steps < 0 || s.Queries < 0 || s.MaxSpeed < 0 {
		return fmt.Errorf("scenario %s: negative workload parameter: %w", s.Name, ErrInvalidScenario)
	}
	if s.Queries > 0 && s.K < 1 {
		return fmt.Errorf("scenario %s: k must be positive: %w", s.Name, ErrInvalidScenario)
	}
	return nil
}

// LoadScenarios fills c.Scenarios from c.ScenarioFile, or with the defaults
// alone when no file is configured.
func (c *Config) LoadScenarios() error {
	if c.ScenarioFile == "" {
		c.Scenarios = []Scenario{c.Default}
		return c.validate()
	}
	var file scenarioFile
	md, err := toml.DecodeFile(c.ScenarioFile, &file)
	if err != nil {
		return fmt.Errorf("unable to decode scenario file %s: %w", c.ScenarioFile, err)
	}
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("scenario file %s has no [[scenario]] entries: %w", c.ScenarioFile, ErrInvalidScenario)
	}
	c.Scenarios = make([]Scenario, len(file.Scenarios))
	for i := range file.Scenarios {
		scenario := c.Default
		if err := md.PrimitiveDecode(file.Scenarios[i], &scenario); err != nil {
			return fmt.Errorf("unable to decode scenario %d in %s: %w", i, c.ScenarioFile, err)
		}
		c.Scenarios[i] = scenario
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.Replicas < 1 {
		return fmt.Errorf("replicas must be positive, got %d: %w", c.Replicas, ErrInvalidScenario)
	}
	names := map[string]bool{}
	for _, s := range c.Scenarios {
		if err := s.Validate(); err != nil {
			return err
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate scenario %s: %w", s.Name, ErrInvalidScenario)
		}
		names[s.Name] = true
	}
	return nil
}
