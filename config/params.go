package config

import (
	"fmt"

	"github.com/pthm-cable/biosim/components"
)

// Params is the parameter set owned by one island. It is passed by
// reference into every rule so that separate islands never share state.
type Params struct {
	Species [components.NumSpecies]SpeciesParams
	Habitat HabitatParams
}

// DefaultParams returns the embedded default tables.
func DefaultParams() *Params {
	return Default().Params()
}

// For returns the table of a species.
func (p *Params) For(s components.Species) *SpeciesParams {
	return &p.Species[s]
}

// UpdateSpecies validates and applies a partial species table.
func (p *Params) UpdateSpecies(s components.Species, table map[string]any) error {
	if s >= components.NumSpecies {
		return fmt.Errorf("%w: unknown species %d", ErrConfiguration, s)
	}
	return p.Species[s].Update(s, table)
}

// UpdateHabitat validates and applies a habitat table.
func (p *Params) UpdateHabitat(h components.Habitat, table map[string]any) error {
	if h >= components.NumHabitats {
		return fmt.Errorf("%w: unknown habitat %d", ErrConfiguration, h)
	}
	return p.Habitat.Update(h, table)
}
