package components

import (
	"fmt"
	"math"
)

// Animal is a single organism. Fitness is derived from Age and Weight and is
// kept current by the rules in the systems package.
type Animal struct {
	Species Species
	Age     int
	Weight  float64
	Fitness float64
}

// NewAnimal validates the attributes and returns an animal with zero fitness.
// Callers that need a valid fitness go through systems.Spawn.
func NewAnimal(species Species, age int, weight float64) (*Animal, error) {
	if species >= NumSpecies {
		return nil, fmt.Errorf("%w: unknown species %d", ErrConstruction, species)
	}
	if age < 0 {
		return nil, fmt.Errorf("%w: age %d is negative", ErrConstruction, age)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, fmt.Errorf("%w: weight %v is not a finite number", ErrConstruction, weight)
	}
	if weight < 0 {
		return nil, fmt.Errorf("%w: weight %v is negative", ErrConstruction, weight)
	}
	return &Animal{Species: species, Age: age, Weight: weight}, nil
}
