// Package island owns the grid of habitat cells and drives the annual cycle
// across it.
package island

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/systems"
	"github.com/pthm-cable/biosim/telemetry"
)

var (
	// ErrGeography reports a malformed map.
	ErrGeography = fmt.Errorf("geography: %w", components.ErrInvalidArgument)
	// ErrPlacement reports a population that cannot be placed.
	ErrPlacement = fmt.Errorf("placement: %w", components.ErrInvalidArgument)
)

// Island holds one cell entity per grid coordinate. Cells are created once
// and never added or removed.
type Island struct {
	world *ecs.World
	rng   *systems.Source

	cellMapper *ecs.Map2[components.Location, components.Cell]
	cellFilter *ecs.Filter2[components.Location, components.Cell]
	cellMap    *ecs.Map1[components.Cell]

	// Row-major entity order fixes the processing sequence.
	order []ecs.Entity
	index map[components.Coord]ecs.Entity

	geography Geography
	params    *config.Params
	phases    *systems.PhaseRegistry
	perf      *telemetry.PerfCollector
}

// New builds an island from map text. The island keeps params and applies
// later updates to it; rng is the stream every draw comes from.
func New(geography string, params *config.Params, rng *systems.Source) (*Island, error) {
	geo, err := ParseGeography(geography)
	if err != nil {
		return nil, err
	}
	return FromGeography(geo, params, rng), nil
}

// FromGeography builds an island from an already validated map.
func FromGeography(geo Geography, params *config.Params, rng *systems.Source) *Island {
	world := ecs.NewWorld()

	isl := &Island{
		world:      world,
		rng:        rng,
		cellMapper: ecs.NewMap2[components.Location, components.Cell](world),
		cellFilter: ecs.NewFilter2[components.Location, components.Cell](world),
		cellMap:    ecs.NewMap1[components.Cell](world),
		index:      make(map[components.Coord]ecs.Entity, geo.Rows()*geo.Cols()),
		geography:  geo,
		params:     params,
		phases:     systems.NewPhaseRegistry(),
	}

	for r := 1; r <= geo.Rows(); r++ {
		for c := 1; c <= geo.Cols(); c++ {
			coord := components.Coord{Row: r, Col: c}
			h, _ := geo.At(coord)
			capacity := params.Habitat.FodderCapacity(h)
			loc := components.Location{Coord: coord}
			cell := components.Cell{
				Habitat:         h,
				FodderCapacity:  capacity,
				FodderRemaining: capacity,
				Neighbors:       isl.neighbors(coord),
			}
			e := isl.cellMapper.NewEntity(&loc, &cell)
			isl.order = append(isl.order, e)
			isl.index[coord] = e
		}
	}

	slog.Debug("island built", "rows", geo.Rows(), "cols", geo.Cols(), "cells", len(isl.order))
	return isl
}

// neighbors returns the orthogonal neighbours of coord that lie on the map.
func (isl *Island) neighbors(coord components.Coord) []components.Coord {
	var out []components.Coord
	for _, n := range coord.Adjacent() {
		if _, ok := isl.geography.At(n); ok {
			out = append(out, n)
		}
	}
	return out
}

// SetPerfCollector enables per-phase timing of annual cycles.
func (isl *Island) SetPerfCollector(p *telemetry.PerfCollector) {
	isl.perf = p
}

// Rows returns the number of map rows.
func (isl *Island) Rows() int { return isl.geography.Rows() }

// Cols returns the number of map columns.
func (isl *Island) Cols() int { return isl.geography.Cols() }

// Params returns the parameter set the island runs with.
func (isl *Island) Params() *config.Params { return isl.params }

// Cell returns the cell at coord.
func (isl *Island) Cell(coord components.Coord) (*components.Cell, bool) {
	e, ok := isl.index[coord]
	if !ok {
		return nil, false
	}
	return isl.cellMap.Get(e), true
}

// eachCell visits cells in row-major order.
func (isl *Island) eachCell(fn func(cell *components.Cell)) {
	for _, e := range isl.order {
		fn(isl.cellMap.Get(e))
	}
}
