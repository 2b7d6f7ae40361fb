package island

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/systems"
	"github.com/pthm-cable/biosim/telemetry"
)

// RunAnnualCycle advances every cell by one year and returns the year's
// event counts. Every habitable cell completes its decide phases before any
// migrant is routed, and every migrant is routed before any cell commits,
// so no animal migrates twice in one year.
func (isl *Island) RunAnnualCycle() systems.Tally {
	var tally systems.Tally
	if isl.perf != nil {
		isl.perf.StartTick()
	}

	decide := isl.phases.ByCategory(systems.CategoryDecide)
	commit := isl.phases.ByCategory(systems.CategoryCommit)

	var pending []outbound
	for _, e := range isl.order {
		cell := isl.cellMap.Get(e)
		if !cell.Habitable() {
			continue
		}
		ctx := &systems.PhaseContext{Params: isl.params, Rand: isl.rng, Tally: &tally}
		isl.runPhases(decide, cell, ctx)
		pending = append(pending, outbound{origin: e, batches: ctx.Emigrants})
	}

	isl.startPhase(telemetry.PhaseRoute)
	for _, out := range pending {
		isl.route(out.origin, out.batches)
	}

	for _, e := range isl.order {
		cell := isl.cellMap.Get(e)
		if !cell.Habitable() {
			continue
		}
		ctx := &systems.PhaseContext{Params: isl.params, Rand: isl.rng, Tally: &tally}
		isl.runPhases(commit, cell, ctx)
	}

	if isl.perf != nil {
		isl.perf.EndTick()
	}
	slog.Debug("annual cycle", "births", tally.Births, "deaths", tally.Deaths, "kills", tally.Kills, "migrations", tally.Migrations)
	return tally
}

// outbound holds the emigrant batches of one origin cell.
type outbound struct {
	origin  ecs.Entity
	batches [components.NumSpecies][]systems.Batch
}

func (isl *Island) runPhases(phases []systems.PhaseInfo, cell *components.Cell, ctx *systems.PhaseContext) {
	for _, phase := range phases {
		isl.startPhase(phase.ID)
		phase.Run(cell, ctx)
	}
}

func (isl *Island) startPhase(id string) {
	if isl.perf != nil {
		isl.perf.StartPhase(id)
	}
}

// route delivers each batch to its destination inbox. Batches aimed at
// water return to the origin's inbox and rejoin it at combine time.
func (isl *Island) route(origin ecs.Entity, batches [components.NumSpecies][]systems.Batch) {
	home := isl.cellMap.Get(origin)
	for s, list := range batches {
		species := components.Species(s)
		for _, b := range list {
			dest, ok := isl.Cell(b.Dest)
			if !ok || !dest.Habitable() {
				home.Receive(species, b.Animals)
				continue
			}
			dest.Receive(species, b.Animals)
		}
	}
}
