package systems

import (
	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

// CanBreed reports whether the animal is heavy enough to attempt a birth.
func CanBreed(a *components.Animal, p *config.SpeciesParams) bool {
	return a.Weight > 0 && a.Weight >= p.MinBirthWeight
}

// BirthProbability returns the chance that an eligible animal gives birth
// in a cell holding n animals of its species.
func BirthProbability(a *components.Animal, p *config.SpeciesParams, n int) float64 {
	if n < 2 {
		return 0
	}
	return min(1, p.Gamma*a.Fitness*float64(n-1))
}

// AttemptBirth draws a newborn weight and, when the parent can afford it,
// charges the parent and returns the newborn. A failed attempt returns nil
// and leaves the parent untouched.
func AttemptBirth(a *components.Animal, p *config.SpeciesParams, rng *Source) *components.Animal {
	newborn := rng.LogNormal(p.MuLn, p.SigmaLn)
	loss := p.Xi * newborn
	if newborn <= 0 || a.Weight <= loss {
		return nil
	}
	a.Weight -= loss
	ComputeFitness(a, p)

	child := &components.Animal{Species: a.Species, Weight: newborn}
	ComputeFitness(child, p)
	return child
}
