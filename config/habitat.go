package config

import (
	"fmt"
	"math"

	"github.com/pthm-cable/biosim/components"
)

// HabitatTable holds the constants of one habitat kind.
type HabitatTable struct {
	FMax *float64 `yaml:"f_max,omitempty"` // Fodder capacity; unset for water
}

// HabitatParams holds a table per habitat, keyed by geography code.
type HabitatParams struct {
	Plains HabitatTable `yaml:"L"`
	Hills  HabitatTable `yaml:"H"`
	Barren HabitatTable `yaml:"D"`
	Water  HabitatTable `yaml:"W"`
}

// HabitatKeys lists the habitat table keys.
var HabitatKeys = []string{"f_max"}

func (hp *HabitatParams) table(h components.Habitat) *HabitatTable {
	switch h {
	case components.Plains:
		return &hp.Plains
	case components.Hills:
		return &hp.Hills
	case components.Barren:
		return &hp.Barren
	}
	return &hp.Water
}

// FodderCapacity returns the yearly fodder of a habitat; 0 when unset.
func (hp *HabitatParams) FodderCapacity(h components.Habitat) float64 {
	t := hp.table(h)
	if t.FMax == nil {
		return 0
	}
	return *t.FMax
}

// Validate checks every habitat table.
func (hp *HabitatParams) Validate() error {
	for h := components.Habitat(0); h < components.NumHabitats; h++ {
		if err := checkFMax(h, hp.table(h).FMax); err != nil {
			return err
		}
	}
	return nil
}

// Update applies a table to one habitat. On error hp is unchanged.
func (hp *HabitatParams) Update(h components.Habitat, table map[string]any) error {
	if table == nil {
		return fmt.Errorf("%w: no parameters given for %s", ErrConfiguration, h)
	}
	var next *float64
	for key, raw := range table {
		if key != "f_max" {
			return unknownKey(h.String(), key, HabitatKeys)
		}
		if raw == nil {
			next = nil
			continue
		}
		v, ok := ToFloat(raw)
		if !ok {
			return fmt.Errorf("%w: %s.f_max must be a number, got %T", ErrConfiguration, h, raw)
		}
		next = &v
	}
	if _, ok := table["f_max"]; !ok {
		return nil
	}
	if err := checkFMax(h, next); err != nil {
		return err
	}
	hp.table(h).FMax = next
	return nil
}

func (hp *HabitatParams) clone() HabitatParams {
	c := *hp
	for h := components.Habitat(0); h < components.NumHabitats; h++ {
		if src := hp.table(h).FMax; src != nil {
			v := *src
			c.table(h).FMax = &v
		}
	}
	return c
}

func checkFMax(h components.Habitat, v *float64) error {
	if h == components.Water {
		if v != nil {
			return fmt.Errorf("%w: f_max cannot be set for %s", ErrConfiguration, h)
		}
		return nil
	}
	if v == nil {
		return fmt.Errorf("%w: f_max is required for %s", ErrConfiguration, h)
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return fmt.Errorf("%w: %s.f_max must be a non-negative number, got %v", ErrConfiguration, h, *v)
	}
	if h == components.Barren && *v != 0 {
		return fmt.Errorf("%w: f_max for %s must be 0, got %v", ErrConfiguration, h, *v)
	}
	return nil
}
