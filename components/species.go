package components

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/biosim/traits"
)

// Species discriminates the two behaviour profiles.
type Species uint8

const (
	Herbivore Species = iota
	Carnivore

	NumSpecies = 2
)

// AllSpecies lists the species in processing order.
var AllSpecies = [NumSpecies]Species{Herbivore, Carnivore}

// String returns the display name for a Species.
func (s Species) String() string {
	names := SpeciesNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// SpeciesNames returns the display names for all species.
// The order matches the Species constants.
func SpeciesNames() []string {
	return []string{"Herbivore", "Carnivore"}
}

// Traits returns the feeding capability set of the species.
func (s Species) Traits() traits.Trait {
	switch s {
	case Herbivore:
		return traits.Grazes
	case Carnivore:
		return traits.Hunts
	}
	return 0
}

// ParseSpecies resolves a species name case-insensitively.
func ParseSpecies(name string) (Species, error) {
	for i, n := range SpeciesNames() {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Species(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown species %q", ErrInvalidArgument, name)
}
