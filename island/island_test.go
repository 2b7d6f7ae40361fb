package island

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/systems"
)

const (
	singlePlains = "WWW\nWLW\nWWW"
	corridor     = "WWWWW\nWLLLW\nWWWWW"
)

func newIsland(t *testing.T, geography string, params *config.Params, seed uint64) *Island {
	t.Helper()
	if params == nil {
		params = config.DefaultParams()
	}
	isl, err := New(geography, params, systems.NewSource(seed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return isl
}

func records(species string, n, age int, weight float64) []map[string]any {
	recs := make([]map[string]any, n)
	for i := range recs {
		recs[i] = map[string]any{"species": species, "age": age, "weight": weight}
	}
	return recs
}

func TestNewBuildsCells(t *testing.T) {
	isl := newIsland(t, "WWWW\nWLHW\nWDLW\nWWWW", nil, 1)

	if isl.Rows() != 4 || isl.Cols() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", isl.Rows(), isl.Cols())
	}
	tests := []struct {
		coord    components.Coord
		habitat  components.Habitat
		capacity float64
	}{
		{components.Coord{Row: 1, Col: 1}, components.Water, 0},
		{components.Coord{Row: 2, Col: 2}, components.Plains, 800},
		{components.Coord{Row: 2, Col: 3}, components.Hills, 300},
		{components.Coord{Row: 3, Col: 2}, components.Barren, 0},
	}
	for _, tt := range tests {
		cell, ok := isl.Cell(tt.coord)
		if !ok {
			t.Fatalf("no cell at %v", tt.coord)
		}
		if cell.Habitat != tt.habitat || cell.FodderCapacity != tt.capacity {
			t.Errorf("%v: %s/%v, want %s/%v", tt.coord, cell.Habitat, cell.FodderCapacity, tt.habitat, tt.capacity)
		}
	}
	if _, ok := isl.Cell(components.Coord{Row: 5, Col: 1}); ok {
		t.Error("cell outside the map")
	}
}

func TestNeighbors(t *testing.T) {
	isl := newIsland(t, singlePlains, nil, 1)

	centre, _ := isl.Cell(components.Coord{Row: 2, Col: 2})
	want := []components.Coord{{Row: 1, Col: 2}, {Row: 3, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 1}}
	if !slices.Equal(centre.Neighbors, want) {
		t.Errorf("centre neighbours = %v, want %v", centre.Neighbors, want)
	}

	corner, _ := isl.Cell(components.Coord{Row: 1, Col: 1})
	want = []components.Coord{{Row: 2, Col: 1}, {Row: 1, Col: 2}}
	if !slices.Equal(corner.Neighbors, want) {
		t.Errorf("corner neighbours = %v, want %v", corner.Neighbors, want)
	}
}

func TestInsertPopulation(t *testing.T) {
	plains := components.Coord{Row: 2, Col: 2}
	water := components.Coord{Row: 1, Col: 1}

	tests := []struct {
		name         string
		coord        components.Coord
		records      []map[string]any
		wantErr      bool
		construction bool
		wantCount    int
	}{
		{"herbivores", plains, records("Herbivore", 3, 5, 20), false, false, 3},
		{"age defaults to zero", plains, []map[string]any{{"species": "Herbivore", "weight": 12.5}}, false, false, 1},
		{"numeric strings", plains, []map[string]any{{"species": "Herbivore", "age": "30", "weight": "14.5"}}, false, false, 1},
		{"float age", plains, []map[string]any{{"species": "Herbivore", "age": 3.0, "weight": 10}}, false, false, 1},
		{"empty into water", water, nil, false, false, 0},
		{"into water", water, records("Herbivore", 1, 5, 20), true, false, 0},
		{"off the map", components.Coord{Row: 9, Col: 9}, records("Herbivore", 1, 5, 20), true, false, 0},
		{"negative age", plains, []map[string]any{{"species": "Herbivore", "age": -1, "weight": 10}}, true, true, 0},
		{"negative weight", plains, []map[string]any{{"species": "Carnivore", "age": 1, "weight": -3}}, true, true, 0},
		{"fractional age", plains, []map[string]any{{"species": "Herbivore", "age": 2.5, "weight": 10}}, true, true, 0},
		{"non-numeric weight", plains, []map[string]any{{"species": "Herbivore", "weight": "heavy"}}, true, true, 0},
		{"missing weight", plains, []map[string]any{{"species": "Herbivore", "age": 1}}, true, true, 0},
		{"huge age", plains, []map[string]any{{"species": "Herbivore", "age": 1e30, "weight": 10}}, true, true, 0},
		{"huge negative age", plains, []map[string]any{{"species": "Herbivore", "age": -1e30, "weight": 10}}, true, true, 0},
		{"boolean age", plains, []map[string]any{{"species": "Herbivore", "age": true, "weight": 10}}, true, true, 0},
		{"unknown species", plains, []map[string]any{{"species": "Omnivore", "weight": 10}}, true, false, 0},
		{"unknown field", plains, []map[string]any{{"species": "Herbivore", "weight": 10, "colour": "grey"}}, true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isl := newIsland(t, singlePlains, nil, 1)
			err := isl.InsertPopulation(tt.coord, tt.records)
			if tt.wantErr {
				if !errors.Is(err, ErrPlacement) || !errors.Is(err, components.ErrInvalidArgument) {
					t.Errorf("error = %v, want ErrPlacement", err)
				}
				if tt.construction && !errors.Is(err, components.ErrConstruction) {
					t.Errorf("error = %v, want wrapped ErrConstruction", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n := isl.NumAnimals(); n != tt.wantCount {
				t.Errorf("animals = %d, want %d", n, tt.wantCount)
			}
		})
	}
}

func TestInsertPopulation_HugeAgeMessage(t *testing.T) {
	isl := newIsland(t, singlePlains, nil, 1)
	err := isl.InsertPopulation(components.Coord{Row: 2, Col: 2},
		[]map[string]any{{"species": "Herbivore", "age": 1e30, "weight": 10}})
	if err == nil {
		t.Fatal("expected error for age 1e30")
	}
	if !strings.Contains(err.Error(), "out of range") || strings.Contains(err.Error(), "negative") {
		t.Errorf("error = %q, want an out of range age", err)
	}
}

func TestInsertPopulationIsAllOrNothing(t *testing.T) {
	isl := newIsland(t, singlePlains, nil, 1)
	recs := records("Herbivore", 4, 5, 20)
	recs = append(recs, map[string]any{"species": "Carnivore", "age": -2, "weight": 8})

	if err := isl.InsertPopulation(components.Coord{Row: 2, Col: 2}, recs); err == nil {
		t.Fatal("expected an error")
	}
	if n := isl.NumAnimals(); n != 0 {
		t.Errorf("animals = %d after failed insert, want 0", n)
	}
}

func TestInsertPlacementsIsAllOrNothing(t *testing.T) {
	isl := newIsland(t, corridor, nil, 1)
	placements := []config.Placement{
		{Loc: []int{2, 2}, Pop: records("Herbivore", 5, 1, 10)},
		{Loc: []int{1, 1}, Pop: records("Carnivore", 1, 1, 10)},
	}
	if err := isl.InsertPlacements(placements); !errors.Is(err, ErrPlacement) {
		t.Fatalf("error = %v, want ErrPlacement", err)
	}
	if n := isl.NumAnimals(); n != 0 {
		t.Errorf("animals = %d after failed batch, want 0", n)
	}

	placements[1].Loc = []int{2, 4}
	if err := isl.InsertPlacements(placements); err != nil {
		t.Fatalf("InsertPlacements: %v", err)
	}
	if got := isl.NumAnimalsPerSpecies(); got != [components.NumSpecies]int{5, 1} {
		t.Errorf("counts = %v, want [5 1]", got)
	}

	bad := []config.Placement{{Loc: []int{2}, Pop: records("Herbivore", 1, 1, 10)}}
	if err := isl.InsertPlacements(bad); !errors.Is(err, ErrPlacement) {
		t.Errorf("short loc error = %v, want ErrPlacement", err)
	}
}

func TestInsertedAnimalsHaveFitness(t *testing.T) {
	isl := newIsland(t, singlePlains, nil, 1)
	if err := isl.InsertPopulation(components.Coord{Row: 2, Col: 2}, records("Herbivore", 1, 5, 20)); err != nil {
		t.Fatal(err)
	}
	cell, _ := isl.Cell(components.Coord{Row: 2, Col: 2})
	a := cell.Residents[components.Herbivore][0]
	want := systems.Fitness(5, 20, isl.Params().For(components.Herbivore))
	if a.Fitness != want || a.Fitness == 0 {
		t.Errorf("fitness = %v, want %v", a.Fitness, want)
	}
}

func TestQueries(t *testing.T) {
	isl := newIsland(t, corridor, nil, 1)
	if err := isl.InsertPopulation(components.Coord{Row: 2, Col: 2}, records("Herbivore", 3, 5, 20)); err != nil {
		t.Fatal(err)
	}
	if err := isl.InsertPopulation(components.Coord{Row: 2, Col: 4}, records("Carnivore", 2, 4, 9)); err != nil {
		t.Fatal(err)
	}

	if n := isl.NumAnimals(); n != 5 {
		t.Errorf("NumAnimals = %d, want 5", n)
	}

	occ := isl.OccupancyMatrices()
	rows, cols := occ[components.Herbivore].Dims()
	if rows != 3 || cols != 5 {
		t.Fatalf("matrix dims = %dx%d, want 3x5", rows, cols)
	}
	if v := occ[components.Herbivore].At(1, 1); v != 3 {
		t.Errorf("herbivores at (2,2) = %v, want 3", v)
	}
	if v := occ[components.Carnivore].At(1, 3); v != 2 {
		t.Errorf("carnivores at (2,4) = %v, want 2", v)
	}
	if v := occ[components.Carnivore].At(1, 1); v != 0 {
		t.Errorf("carnivores at (2,2) = %v, want 0", v)
	}

	values := isl.HistogramValues()
	if values[components.Herbivore].Len() != 3 || values[components.Carnivore].Len() != 2 {
		t.Errorf("sample sizes = %d/%d", values[components.Herbivore].Len(), values[components.Carnivore].Len())
	}
	if values[components.Carnivore].Weight[0] != 9 || values[components.Carnivore].Age[1] != 4 {
		t.Errorf("carnivore samples = %+v", values[components.Carnivore])
	}

	if f := isl.FodderRemaining(); f != 3*800 {
		t.Errorf("fodder = %v, want 2400", f)
	}
}

func TestUpdateParams(t *testing.T) {
	isl := newIsland(t, "WWWW\nWLHW\nWWWW", nil, 1)

	if err := isl.UpdateHabitatParams("H", map[string]any{"f_max": 120}); err != nil {
		t.Fatalf("UpdateHabitatParams: %v", err)
	}
	hills, _ := isl.Cell(components.Coord{Row: 2, Col: 3})
	if hills.FodderCapacity != 120 {
		t.Errorf("hills capacity = %v, want 120", hills.FodderCapacity)
	}
	if hills.FodderRemaining > hills.FodderCapacity {
		t.Errorf("hills fodder %v exceeds capacity %v", hills.FodderRemaining, hills.FodderCapacity)
	}

	// Lowering capacity below the fodder on the ground cuts the fodder too.
	if err := isl.UpdateHabitatParams("L", map[string]any{"f_max": 100}); err != nil {
		t.Fatalf("UpdateHabitatParams: %v", err)
	}
	plains, _ := isl.Cell(components.Coord{Row: 2, Col: 2})
	if plains.FodderCapacity != 100 || plains.FodderRemaining != 100 {
		t.Errorf("plains capacity/remaining = %v/%v, want 100/100", plains.FodderCapacity, plains.FodderRemaining)
	}
	if got := isl.FodderRemaining(); got != 220 {
		t.Errorf("island fodder = %v, want 220", got)
	}

	// Raising capacity leaves fodder alone until regrowth.
	if err := isl.UpdateHabitatParams("L", map[string]any{"f_max": 500}); err != nil {
		t.Fatalf("UpdateHabitatParams: %v", err)
	}
	if plains.FodderCapacity != 500 || plains.FodderRemaining != 100 {
		t.Errorf("plains capacity/remaining = %v/%v, want 500/100", plains.FodderCapacity, plains.FodderRemaining)
	}

	errorCases := []struct {
		name string
		err  error
	}{
		{"water habitat", isl.UpdateHabitatParams("W", map[string]any{"f_max": 10})},
		{"unknown habitat", isl.UpdateHabitatParams("Q", map[string]any{"f_max": 10})},
		{"long code", isl.UpdateHabitatParams("LL", map[string]any{"f_max": 10})},
		{"unknown species", isl.UpdateSpeciesParams("Omnivore", map[string]any{"F": 1})},
		{"unknown key", isl.UpdateSpeciesParams("Herbivore", map[string]any{"appetite": 1})},
		{"herbivore DeltaPhiMax", isl.UpdateSpeciesParams("Herbivore", map[string]any{"DeltaPhiMax": 2})},
	}
	for _, tt := range errorCases {
		if !errors.Is(tt.err, config.ErrConfiguration) {
			t.Errorf("%s: error = %v, want ErrConfiguration", tt.name, tt.err)
		}
	}

	if err := isl.UpdateSpeciesParams("carnivore", map[string]any{"F": 20}); err != nil {
		t.Fatalf("UpdateSpeciesParams: %v", err)
	}
	if f := isl.Params().For(components.Carnivore).F; f != 20 {
		t.Errorf("carnivore F = %v, want 20", f)
	}
}
