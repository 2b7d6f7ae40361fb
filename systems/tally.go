package systems

import "github.com/pthm-cable/biosim/components"

// Tally counts the events of one annual cycle.
type Tally struct {
	Births     [components.NumSpecies]int
	Deaths     [components.NumSpecies]int
	Migrations [components.NumSpecies]int
	Kills      int
}

// Add accumulates other into t.
func (t *Tally) Add(other Tally) {
	for s := range components.NumSpecies {
		t.Births[s] += other.Births[s]
		t.Deaths[s] += other.Deaths[s]
		t.Migrations[s] += other.Migrations[s]
	}
	t.Kills += other.Kills
}
