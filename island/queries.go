package island

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/telemetry"
)

// NumAnimals returns the total number of animals on the island.
func (isl *Island) NumAnimals() int {
	n := 0
	for _, c := range isl.NumAnimalsPerSpecies() {
		n += c
	}
	return n
}

// NumAnimalsPerSpecies returns the number of animals of each species.
func (isl *Island) NumAnimalsPerSpecies() [components.NumSpecies]int {
	var counts [components.NumSpecies]int
	query := isl.cellFilter.Query()
	for query.Next() {
		_, cell := query.Get()
		for _, s := range components.AllSpecies {
			counts[s] += cell.Count(s)
		}
	}
	return counts
}

// HistogramValues returns the age, weight and fitness of every animal,
// grouped by species, in row-major cell order.
func (isl *Island) HistogramValues() [components.NumSpecies]telemetry.Samples {
	var out [components.NumSpecies]telemetry.Samples
	isl.eachCell(func(cell *components.Cell) {
		for _, s := range components.AllSpecies {
			for _, a := range cell.Residents[s] {
				out[s].Add(a.Age, a.Weight, a.Fitness)
			}
		}
	})
	return out
}

// OccupancyMatrices returns, per species, a rows x cols matrix of animal
// counts. Element (r-1, c-1) holds the count at coordinate (r, c).
func (isl *Island) OccupancyMatrices() [components.NumSpecies]*mat.Dense {
	var out [components.NumSpecies]*mat.Dense
	for s := range out {
		out[s] = mat.NewDense(isl.Rows(), isl.Cols(), nil)
	}
	query := isl.cellFilter.Query()
	for query.Next() {
		loc, cell := query.Get()
		for _, s := range components.AllSpecies {
			out[s].Set(loc.Coord.Row-1, loc.Coord.Col-1, float64(cell.Count(s)))
		}
	}
	return out
}

// FodderRemaining returns the fodder left uneaten across the island.
func (isl *Island) FodderRemaining() float64 {
	var total float64
	query := isl.cellFilter.Query()
	for query.Next() {
		_, cell := query.Get()
		if cell.Habitable() {
			total += cell.FodderRemaining
		}
	}
	return total
}
