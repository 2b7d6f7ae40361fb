package systems

import (
	"math"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

// Fitness evaluates the fitness of an animal with the given age and weight.
// The result lies in [0, 1] and is 0 for non-positive weight.
func Fitness(age int, weight float64, p *config.SpeciesParams) float64 {
	if weight <= 0 {
		return 0
	}
	qAge := 1 / (1 + math.Exp(p.PhiAge*(float64(age)-p.AHalf)))
	qWeight := 1 / (1 + math.Exp(-p.PhiWeight*(weight-p.WHalf)))
	return qAge * qWeight
}

// ComputeFitness refreshes a.Fitness from its current age and weight.
func ComputeFitness(a *components.Animal, p *config.SpeciesParams) float64 {
	a.Fitness = Fitness(a.Age, a.Weight, p)
	return a.Fitness
}
