package systems

import (
	"fmt"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

// Spawn constructs an animal and evaluates its initial fitness.
func Spawn(species components.Species, age int, weight float64, p *config.SpeciesParams) (*components.Animal, error) {
	a, err := components.NewAnimal(species, age, weight)
	if err != nil {
		return nil, err
	}
	ComputeFitness(a, p)
	return a, nil
}

// AgeOneYear advances the animal's age by one year.
func AgeOneYear(a *components.Animal) {
	a.Age++
}

// LoseAnnualWeight applies the yearly proportional weight loss.
// Fitness is left for the caller to refresh.
func LoseAnnualWeight(a *components.Animal, p *config.SpeciesParams) {
	if a.Weight < 0 {
		a.Weight = 0
		return
	}
	a.Weight -= p.Eta * a.Weight
}

// GainWeight converts eaten food into body weight and refreshes fitness.
func GainWeight(a *components.Animal, p *config.SpeciesParams, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: food amount %v is negative", components.ErrInvalidArgument, amount)
	}
	gain(a, p, amount)
	return nil
}

func gain(a *components.Animal, p *config.SpeciesParams, amount float64) {
	a.Weight += p.Beta * amount
	ComputeFitness(a, p)
}

// DecideDeath reports whether the animal dies this year. Starved animals die
// without a draw; the rest die with probability omega*(1-fitness).
func DecideDeath(a *components.Animal, p *config.SpeciesParams, rng *Source) bool {
	ComputeFitness(a, p)
	if a.Weight <= 0 {
		return true
	}
	return rng.Float64() < p.Omega*(1-a.Fitness)
}
