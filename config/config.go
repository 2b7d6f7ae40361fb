// Package config provides configuration loading and the parameter tables
// that drive the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biosim/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrConfiguration reports an invalid parameter table or config file.
var ErrConfiguration = fmt.Errorf("configuration: %w", components.ErrInvalidArgument)

// Config holds a complete simulation setup.
type Config struct {
	Seed       int64           `yaml:"seed"`
	Years      int             `yaml:"years"`
	Geography  string          `yaml:"geography"`
	Population []Placement     `yaml:"population"`
	Species    SpeciesConfig   `yaml:"species"`
	Habitats   HabitatParams   `yaml:"habitats"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
	Generator  GeneratorConfig `yaml:"generator"`
}

// Placement puts a list of animal records on one cell.
// Records use the keys species, age (optional) and weight.
type Placement struct {
	Loc []int            `yaml:"loc"`
	Pop []map[string]any `yaml:"pop"`
}

// Coord returns the placement target as a grid coordinate.
func (p Placement) Coord() (components.Coord, error) {
	if len(p.Loc) != 2 {
		return components.Coord{}, fmt.Errorf("%w: loc must be [row, col], got %v", ErrConfiguration, p.Loc)
	}
	return components.Coord{Row: p.Loc[0], Col: p.Loc[1]}, nil
}

// SpeciesConfig holds the per-species parameter tables.
type SpeciesConfig struct {
	Herbivore SpeciesParams `yaml:"herbivore"`
	Carnivore SpeciesParams `yaml:"carnivore"`
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	LogEvery   int                      `yaml:"log_every"`  // Years per stats window (0 = no stats)
	Histograms map[string]HistogramSpec `yaml:"histograms"` // Keyed by age, weight or fitness
}

// HistogramSpec bins an attribute from 0 to Max in steps of Delta.
type HistogramSpec struct {
	Max   float64 `yaml:"max"`
	Delta float64 `yaml:"delta"`
}

// GeneratorConfig holds procedural geography parameters.
type GeneratorConfig struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Seed        int64   `yaml:"seed"`        // 0 = use the simulation seed
	Scale       float64 `yaml:"scale"`       // Base noise frequency
	Octaves     int     `yaml:"octaves"`     // FBM octaves
	Persistence float64 `yaml:"persistence"` // Amplitude multiplier per octave
	SeaLevel    float64 `yaml:"sea_level"`   // Elevation below this is water
	HillLevel   float64 `yaml:"hill_level"`  // Elevation above this is hills
	DryLevel    float64 `yaml:"dry_level"`   // Moisture below this is barren
}

// HistogramAttributes are the attribute names accepted in histogram specs.
var HistogramAttributes = []string{"age", "weight", "fitness"}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks every table in the configuration.
func (c *Config) Validate() error {
	if c.Years < 0 {
		return fmt.Errorf("%w: years %d is negative", ErrConfiguration, c.Years)
	}
	for _, s := range components.AllSpecies {
		if err := c.species(s).Validate(s); err != nil {
			return err
		}
	}
	if err := c.Habitats.Validate(); err != nil {
		return err
	}
	for _, p := range c.Population {
		if _, err := p.Coord(); err != nil {
			return err
		}
	}
	for name, spec := range c.Telemetry.Histograms {
		if !contains(HistogramAttributes, name) {
			return unknownKey("histogram", name, HistogramAttributes)
		}
		if spec.Max <= 0 || spec.Delta <= 0 {
			return fmt.Errorf("%w: histogram %s needs positive max and delta", ErrConfiguration, name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Species.Herbivore.Recompute()
	c.Species.Carnivore.Recompute()
}

func (c *Config) species(s components.Species) *SpeciesParams {
	if s == components.Carnivore {
		return &c.Species.Carnivore
	}
	return &c.Species.Herbivore
}

// Params returns an independent copy of the parameter tables, ready to be
// owned by one island.
func (c *Config) Params() *Params {
	p := &Params{Habitat: c.Habitats.clone()}
	for _, s := range components.AllSpecies {
		p.Species[s] = c.species(s).clone()
		p.Species[s].Recompute()
	}
	return p
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
