package systems

import (
	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

// Batch is a group of emigrants of one species bound for one destination.
type Batch struct {
	Dest    components.Coord
	Animals []*components.Animal
}

// DecideMigration reports whether the animal tries to leave its cell.
func DecideMigration(a *components.Animal, p *config.SpeciesParams, rng *Source) bool {
	return rng.Float64() < p.Mu*a.Fitness
}

// ChooseDestination picks one candidate uniformly. It draws nothing and
// returns false when there are no candidates.
func ChooseDestination(candidates []components.Coord, rng *Source) (components.Coord, bool) {
	if len(candidates) == 0 {
		return components.Coord{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

// batcher groups emigrants by destination, keeping first-seen order so
// routing is deterministic.
type batcher struct {
	batches []Batch
	index   map[components.Coord]int
}

func (b *batcher) add(dest components.Coord, a *components.Animal) {
	if b.index == nil {
		b.index = make(map[components.Coord]int)
	}
	i, ok := b.index[dest]
	if !ok {
		i = len(b.batches)
		b.index[dest] = i
		b.batches = append(b.batches, Batch{Dest: dest})
	}
	b.batches[i].Animals = append(b.batches[i].Animals, a)
}
