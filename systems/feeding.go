package systems

import (
	"cmp"
	"math"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/traits"
)

// FoodSupply is what a cell offers its residents during one feeding phase.
type FoodSupply struct {
	Fodder float64              // fodder left on the ground
	Prey   []*components.Animal // surviving grazers, weakest first
	Kills  int                  // grazers taken so far
}

// Feeder is one feeding strategy applied to an animal.
type Feeder func(a *components.Animal, p *config.SpeciesParams, food *FoodSupply, rng *Source)

// feeders maps traits to strategies in the order they are applied.
var feeders = []struct {
	trait traits.Trait
	feed  Feeder
}{
	{traits.Grazes, grazeFeeder},
	{traits.Hunts, huntFeeder},
}

// Feed lets the animal eat from food using every strategy its species has.
func Feed(a *components.Animal, p *config.SpeciesParams, food *FoodSupply, rng *Source) {
	t := a.Species.Traits()
	for _, f := range feeders {
		if t.Has(f.trait) {
			f.feed(a, p, food, rng)
		}
	}
}

func grazeFeeder(a *components.Animal, p *config.SpeciesParams, food *FoodSupply, _ *Source) {
	if food.Fodder <= 0 {
		return
	}
	food.Fodder -= Graze(a, p, food.Fodder)
}

func huntFeeder(a *components.Animal, p *config.SpeciesParams, food *FoodSupply, rng *Source) {
	if len(food.Prey) == 0 {
		return
	}
	var kills int
	food.Prey, kills = Hunt(a, p, food.Prey, rng)
	food.Kills += kills
}

// Graze eats up to F units of the available fodder and returns the amount
// consumed.
func Graze(a *components.Animal, p *config.SpeciesParams, available float64) float64 {
	consumed := max(0, math.Min(p.F, available))
	gain(a, p, consumed)
	return consumed
}

// KillProbability returns the chance that a hunter with fitness own kills
// prey with fitness prey.
func KillProbability(own, prey, deltaPhiMax float64) float64 {
	diff := own - prey
	switch {
	case diff <= 0:
		return 0
	case diff >= deltaPhiMax:
		return 1
	default:
		return diff / deltaPhiMax
	}
}

// Hunt scans prey in order until the hunter's appetite is used up. Every
// scanned prey costs one draw. It returns the prey still alive, in their
// original order, and the number killed.
func Hunt(a *components.Animal, p *config.SpeciesParams, prey []*components.Animal, rng *Source) ([]*components.Animal, int) {
	capacity := p.F
	survivors := make([]*components.Animal, 0, len(prey))
	kills := 0

	i := 0
	for ; i < len(prey) && capacity > 0; i++ {
		h := prey[i]
		r := rng.Float64()
		pk := KillProbability(a.Fitness, h.Fitness, p.KillThreshold())
		if pk > 0 && r <= pk {
			eaten := math.Min(capacity, h.Weight)
			gain(a, p, eaten)
			capacity -= eaten
			kills++
			continue
		}
		survivors = append(survivors, h)
	}
	return append(survivors, prey[i:]...), kills
}

func byFitnessAscending(a, b *components.Animal) int {
	return cmp.Compare(a.Fitness, b.Fitness)
}

func byFitnessDescending(a, b *components.Animal) int {
	return cmp.Compare(b.Fitness, a.Fitness)
}
