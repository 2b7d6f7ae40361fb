package island

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/systems"
)

// Population record fields.
const (
	fieldSpecies = "species"
	fieldAge     = "age"
	fieldWeight  = "weight"
)

var recordFields = []string{fieldSpecies, fieldAge, fieldWeight}

// InsertPopulation adds animals described by records to the cell at coord.
// Each record holds species, age and weight; age defaults to 0. Either every
// record is placed or the cell is left unchanged.
func (isl *Island) InsertPopulation(coord components.Coord, records []map[string]any) error {
	cell, batch, err := isl.preparePopulation(coord, records)
	if err != nil {
		return err
	}
	commitPopulation(cell, batch)
	return nil
}

// InsertPlacements inserts several populations. Nothing is inserted unless
// every placement is valid.
func (isl *Island) InsertPlacements(placements []config.Placement) error {
	type pending struct {
		cell  *components.Cell
		batch [components.NumSpecies][]*components.Animal
	}
	var all []pending
	for _, p := range placements {
		if len(p.Loc) != 2 {
			return fmt.Errorf("%w: loc must be [row, col], got %v", ErrPlacement, p.Loc)
		}
		coord := components.Coord{Row: p.Loc[0], Col: p.Loc[1]}
		cell, batch, err := isl.preparePopulation(coord, p.Pop)
		if err != nil {
			return err
		}
		all = append(all, pending{cell, batch})
	}
	for _, p := range all {
		commitPopulation(p.cell, p.batch)
	}
	return nil
}

// preparePopulation validates records and builds their animals without
// touching the target cell.
func (isl *Island) preparePopulation(coord components.Coord, records []map[string]any) (*components.Cell, [components.NumSpecies][]*components.Animal, error) {
	var batch [components.NumSpecies][]*components.Animal
	cell, ok := isl.Cell(coord)
	if !ok {
		return nil, batch, fmt.Errorf("%w: %v is not on the map", ErrPlacement, coord)
	}
	if len(records) == 0 {
		return cell, batch, nil
	}
	if !cell.Habitable() {
		return nil, batch, fmt.Errorf("%w: %v is %s", ErrPlacement, coord, cell.Habitat)
	}

	for i, rec := range records {
		a, err := isl.parseRecord(rec)
		if err != nil {
			return nil, batch, fmt.Errorf("%w: %v record %d: %w", ErrPlacement, coord, i, err)
		}
		batch[a.Species] = append(batch[a.Species], a)
	}
	return cell, batch, nil
}

func commitPopulation(cell *components.Cell, batch [components.NumSpecies][]*components.Animal) {
	for _, s := range components.AllSpecies {
		cell.Residents[s] = append(cell.Residents[s], batch[s]...)
	}
}

// parseRecord builds an animal from one population record.
func (isl *Island) parseRecord(rec map[string]any) (*components.Animal, error) {
	for key := range rec {
		if !slices.Contains(recordFields, key) {
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}

	name, ok := rec[fieldSpecies].(string)
	if !ok {
		return nil, fmt.Errorf("species must be a name, got %v", rec[fieldSpecies])
	}
	species, err := components.ParseSpecies(name)
	if err != nil {
		return nil, err
	}

	age := 0
	if v, ok := rec[fieldAge]; ok {
		age, err = parseAge(v)
		if err != nil {
			return nil, err
		}
	}

	v, ok := rec[fieldWeight]
	if !ok {
		return nil, fmt.Errorf("%w: weight is missing", components.ErrConstruction)
	}
	weight, err := parseWeight(v)
	if err != nil {
		return nil, err
	}

	return systems.Spawn(species, age, weight, isl.params.For(species))
}

// parseAge accepts integral numbers and numeric strings.
func parseAge(v any) (int, error) {
	f, ok := number(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: age %v is not a whole number", components.ErrConstruction, v)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: age %v is out of range", components.ErrConstruction, v)
	}
	return int(f), nil
}

// parseWeight accepts numbers and numeric strings.
func parseWeight(v any) (float64, error) {
	f, ok := number(v)
	if !ok {
		return 0, fmt.Errorf("%w: weight %v is not a number", components.ErrConstruction, v)
	}
	return f, nil
}

// number converts decoded YAML or JSON values, plus numeric strings, to
// float64.
func number(v any) (float64, bool) {
	if str, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		return f, err == nil && !math.IsNaN(f)
	}
	f, ok := config.ToFloat(v)
	return f, ok && !math.IsNaN(f)
}
