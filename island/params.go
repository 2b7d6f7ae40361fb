package island

import (
	"fmt"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

// UpdateSpeciesParams applies a partial parameter table to a species named
// "Herbivore" or "Carnivore". A rejected table changes nothing.
func (isl *Island) UpdateSpeciesParams(name string, table map[string]any) error {
	s, err := components.ParseSpecies(name)
	if err != nil {
		return fmt.Errorf("%w: unknown species %q", config.ErrConfiguration, name)
	}
	return isl.params.UpdateSpecies(s, table)
}

// UpdateHabitatParams applies a parameter table to the habitat with the
// given map code. Cell capacities follow immediately; fodder on the ground
// is cut to the new capacity and refilled at the next regrowth.
func (isl *Island) UpdateHabitatParams(code string, table map[string]any) error {
	if len(code) != 1 {
		return fmt.Errorf("%w: habitat code %q must be one character", config.ErrConfiguration, code)
	}
	h, err := components.ParseHabitat(code[0])
	if err != nil {
		return fmt.Errorf("%w: unknown habitat code %q", config.ErrConfiguration, code)
	}
	if err := isl.params.UpdateHabitat(h, table); err != nil {
		return err
	}

	capacity := isl.params.Habitat.FodderCapacity(h)
	isl.eachCell(func(cell *components.Cell) {
		if cell.Habitat == h {
			cell.FodderCapacity = capacity
			cell.FodderRemaining = min(cell.FodderRemaining, capacity)
		}
	})
	return nil
}
