package systems

import (
	"slices"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

// PhaseContext carries the shared state a phase needs while it processes
// one cell.
type PhaseContext struct {
	Params *config.Params
	Rand   *Source
	Tally  *Tally

	// Emigrants is filled by the migration phase with the batches leaving
	// the current cell.
	Emigrants [components.NumSpecies][]Batch
}

// PhaseFunc applies one annual phase to a habitable cell.
type PhaseFunc func(cell *components.Cell, ctx *PhaseContext)

// BirthPhase lets every eligible resident attempt a birth. Newborns join
// their species after the whole pass, so they neither breed nor count
// towards N this year.
func BirthPhase(cell *components.Cell, ctx *PhaseContext) {
	for _, s := range components.AllSpecies {
		residents := cell.Residents[s]
		n := len(residents)
		if n < 2 {
			continue
		}
		p := ctx.Params.For(s)
		var newborns []*components.Animal
		for _, a := range residents {
			if !CanBreed(a, p) {
				continue
			}
			if ctx.Rand.Float64() >= BirthProbability(a, p, n) {
				continue
			}
			if child := AttemptBirth(a, p, ctx.Rand); child != nil {
				newborns = append(newborns, child)
			}
		}
		cell.Residents[s] = append(residents, newborns...)
		ctx.Tally.Births[s] += len(newborns)
	}
}

// RegrowPhase restores the cell's fodder to its capacity. Capacity is read
// from the current habitat parameters.
func RegrowPhase(cell *components.Cell, ctx *PhaseContext) {
	cell.FodderCapacity = ctx.Params.Habitat.FodderCapacity(cell.Habitat)
	cell.FodderRemaining = cell.FodderCapacity
}

// FeedingPhase lets grazers eat in random order, then lets hunters, fittest
// first, take the weakest grazers.
func FeedingPhase(cell *components.Cell, ctx *PhaseContext) {
	herbivores := cell.Residents[components.Herbivore]
	ctx.Rand.Shuffle(len(herbivores), func(i, j int) {
		herbivores[i], herbivores[j] = herbivores[j], herbivores[i]
	})

	food := &FoodSupply{Fodder: cell.FodderRemaining}
	for _, h := range herbivores {
		if food.Fodder <= 0 {
			break
		}
		Feed(h, ctx.Params.For(h.Species), food, ctx.Rand)
	}
	cell.FodderRemaining = food.Fodder

	slices.SortStableFunc(herbivores, byFitnessAscending)
	carnivores := cell.Residents[components.Carnivore]
	slices.SortStableFunc(carnivores, byFitnessDescending)

	food.Prey = herbivores
	for _, c := range carnivores {
		if len(food.Prey) == 0 {
			break
		}
		Feed(c, ctx.Params.For(c.Species), food, ctx.Rand)
	}
	cell.Residents[components.Herbivore] = food.Prey
	ctx.Tally.Kills += food.Kills
}

// MigrationPhase removes the residents that decide to leave and records
// them in ctx.Emigrants grouped by destination. An animal with no
// neighbouring cell to pick stays put.
func MigrationPhase(cell *components.Cell, ctx *PhaseContext) {
	for _, s := range components.AllSpecies {
		p := ctx.Params.For(s)
		residents := cell.Residents[s]
		stayers := residents[:0]
		var out batcher
		for _, a := range residents {
			if DecideMigration(a, p, ctx.Rand) {
				if dest, ok := ChooseDestination(cell.Neighbors, ctx.Rand); ok {
					out.add(dest, a)
					continue
				}
			}
			stayers = append(stayers, a)
		}
		ctx.Tally.Migrations[s] += len(residents) - len(stayers)
		clear(residents[len(stayers):])
		cell.Residents[s] = stayers
		ctx.Emigrants[s] = out.batches
	}
}

// CombinePhase merges arrivals into the resident lists.
func CombinePhase(cell *components.Cell, _ *PhaseContext) {
	for _, s := range components.AllSpecies {
		if len(cell.Inbox[s]) == 0 {
			continue
		}
		cell.Residents[s] = append(cell.Residents[s], cell.Inbox[s]...)
		cell.Inbox[s] = nil
	}
}

// AgingPhase ages every resident one year and applies weight loss.
func AgingPhase(cell *components.Cell, ctx *PhaseContext) {
	for _, s := range components.AllSpecies {
		p := ctx.Params.For(s)
		for _, a := range cell.Residents[s] {
			AgeOneYear(a)
			LoseAnnualWeight(a, p)
			ComputeFitness(a, p)
		}
	}
}

// DeathPhase removes the residents that die this year.
func DeathPhase(cell *components.Cell, ctx *PhaseContext) {
	for _, s := range components.AllSpecies {
		p := ctx.Params.For(s)
		residents := cell.Residents[s]
		survivors := residents[:0]
		for _, a := range residents {
			if DecideDeath(a, p, ctx.Rand) {
				continue
			}
			survivors = append(survivors, a)
		}
		ctx.Tally.Deaths[s] += len(residents) - len(survivors)
		clear(residents[len(survivors):])
		cell.Residents[s] = survivors
	}
}
