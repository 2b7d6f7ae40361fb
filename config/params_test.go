package config

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/pthm-cable/biosim/components"
)

func TestUpdateSpeciesValidation(t *testing.T) {
	tests := []struct {
		name    string
		species components.Species
		table   map[string]any
		wantErr bool
	}{
		{"valid partial", components.Herbivore, map[string]any{"zeta": 3.2, "xi": 1.8}, false},
		{"integer value", components.Carnivore, map[string]any{"F": 65}, false},
		{"json number", components.Carnivore, map[string]any{"omega": json.Number("0.3")}, false},
		{"eta within tolerance", components.Herbivore, map[string]any{"eta": 1.00005}, false},
		{"herbivore DeltaPhiMax nil", components.Herbivore, map[string]any{"DeltaPhiMax": nil}, false},
		{"unknown key", components.Herbivore, map[string]any{"lambda": 1.0}, true},
		{"string value", components.Herbivore, map[string]any{"beta": "0.9"}, true},
		{"bool value", components.Herbivore, map[string]any{"beta": true}, true},
		{"nil value", components.Herbivore, map[string]any{"beta": nil}, true},
		{"negative", components.Carnivore, map[string]any{"gamma": -0.1}, true},
		{"nan", components.Carnivore, map[string]any{"gamma": math.NaN()}, true},
		{"eta above one", components.Herbivore, map[string]any{"eta": 1.5}, true},
		{"herbivore DeltaPhiMax", components.Herbivore, map[string]any{"DeltaPhiMax": 5.0}, true},
		{"carnivore DeltaPhiMax zero", components.Carnivore, map[string]any{"DeltaPhiMax": 0}, true},
		{"carnivore DeltaPhiMax nil", components.Carnivore, map[string]any{"DeltaPhiMax": nil}, true},
		{"nil table", components.Carnivore, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			err := p.UpdateSpecies(tt.species, tt.table)
			if tt.wantErr {
				if !errors.Is(err, ErrConfiguration) {
					t.Fatalf("expected ErrConfiguration, got %v", err)
				}
				if !errors.Is(err, components.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument in chain, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdateSpeciesIsAtomic(t *testing.T) {
	p := DefaultParams()
	before := *p.For(components.Herbivore)

	// One valid key and one invalid key: nothing may be applied
	err := p.UpdateSpecies(components.Herbivore, map[string]any{"beta": 0.1, "eta": 7.0})
	if err == nil {
		t.Fatal("expected error")
	}
	after := *p.For(components.Herbivore)
	if after.Beta != before.Beta || after.Eta != before.Eta {
		t.Errorf("rejected update mutated table: beta %v->%v eta %v->%v",
			before.Beta, after.Beta, before.Eta, after.Eta)
	}
}

func TestUpdateRecomputesDerived(t *testing.T) {
	p := DefaultParams()
	if err := p.UpdateSpecies(components.Carnivore, map[string]any{"w_birth": 10.0, "sigma_birth": 2.0, "zeta": 2.0}); err != nil {
		t.Fatal(err)
	}
	c := p.For(components.Carnivore)

	wantMu := math.Log(100 / math.Sqrt(104))
	wantSigma := math.Sqrt(math.Log(1 + 4.0/100))
	if math.Abs(c.MuLn-wantMu) > 1e-12 || math.Abs(c.SigmaLn-wantSigma) > 1e-12 {
		t.Errorf("MuLn, SigmaLn = %v, %v; want %v, %v", c.MuLn, c.SigmaLn, wantMu, wantSigma)
	}
	if c.MinBirthWeight != 24 {
		t.Errorf("MinBirthWeight = %v, want 24", c.MinBirthWeight)
	}
}

func TestZeroBirthWeightDisablesNewborns(t *testing.T) {
	p := DefaultParams()
	if err := p.UpdateSpecies(components.Herbivore, map[string]any{"w_birth": 0, "sigma_birth": 0}); err != nil {
		t.Fatal(err)
	}
	h := p.For(components.Herbivore)
	if !math.IsInf(h.MuLn, -1) || h.SigmaLn != 0 {
		t.Errorf("MuLn, SigmaLn = %v, %v; want -Inf, 0", h.MuLn, h.SigmaLn)
	}
}

func TestUnknownKeySuggestion(t *testing.T) {
	p := DefaultParams()
	err := p.UpdateSpecies(components.Herbivore, map[string]any{"sigma_brith": 1.0})
	if err == nil || !strings.Contains(err.Error(), `did you mean "sigma_birth"`) {
		t.Errorf("expected suggestion for sigma_birth, got %v", err)
	}
	err = p.UpdateSpecies(components.Herbivore, map[string]any{"completely_wrong": 1.0})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("expected no suggestion, got %v", err)
	}
}

func TestUpdateHabitat(t *testing.T) {
	tests := []struct {
		name    string
		habitat components.Habitat
		table   map[string]any
		wantErr bool
		want    float64
	}{
		{"plains", components.Plains, map[string]any{"f_max": 500}, false, 500},
		{"hills zero", components.Hills, map[string]any{"f_max": 0.0}, false, 0},
		{"barren zero", components.Barren, map[string]any{"f_max": 0}, false, 0},
		{"water nil", components.Water, map[string]any{"f_max": nil}, false, 0},
		{"empty table", components.Plains, map[string]any{}, false, 800},
		{"barren nonzero", components.Barren, map[string]any{"f_max": 10}, true, 0},
		{"water number", components.Water, map[string]any{"f_max": 10}, true, 0},
		{"plains negative", components.Plains, map[string]any{"f_max": -1}, true, 800},
		{"plains nil", components.Plains, map[string]any{"f_max": nil}, true, 800},
		{"plains string", components.Plains, map[string]any{"f_max": "800"}, true, 800},
		{"unknown key", components.Plains, map[string]any{"fmax": 800}, true, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			err := p.UpdateHabitat(tt.habitat, tt.table)
			if tt.wantErr {
				if !errors.Is(err, ErrConfiguration) {
					t.Fatalf("expected ErrConfiguration, got %v", err)
				}
				if got := p.Habitat.FodderCapacity(tt.habitat); tt.habitat != components.Water && got != tt.want {
					t.Errorf("rejected update changed capacity to %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.Habitat.FodderCapacity(tt.habitat); got != tt.want {
				t.Errorf("capacity = %v, want %v", got, tt.want)
			}
		})
	}
}
