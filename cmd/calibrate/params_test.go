package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/biosim/config"
)

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(config.Default())
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestParamVector_DefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector(cfg)
	if got := pv.Specs[0].Default; got != cfg.Species.Herbivore.Gamma {
		t.Errorf("herb_gamma default = %v, want %v", got, cfg.Species.Herbivore.Gamma)
	}
	if got := pv.Specs[7].Default; got != cfg.Species.Carnivore.F {
		t.Errorf("carn_F default = %v, want %v", got, cfg.Species.Carnivore.F)
	}
}

func TestParamVector_ApplyClamps(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector(cfg)
	values := pv.DefaultVector()
	values[0] = 10 // above herb_gamma max
	values[3] = -1 // below herb_F min
	pv.ApplyToConfig(cfg, values)

	if cfg.Species.Herbivore.Gamma != pv.Specs[0].Max {
		t.Errorf("gamma = %v, want clamped to %v", cfg.Species.Herbivore.Gamma, pv.Specs[0].Max)
	}
	if cfg.Species.Herbivore.F != pv.Specs[3].Min {
		t.Errorf("F = %v, want clamped to %v", cfg.Species.Herbivore.F, pv.Specs[3].Min)
	}
}

func TestComputeQuality(t *testing.T) {
	tests := []struct {
		name       string
		herbivores []float64
		carnivores []float64
		want       float64
	}{
		{"no years", nil, nil, 0},
		{"steady at target ratio", []float64{400, 400, 400}, []float64{100, 100, 100}, 1},
		{"single year at target", []float64{400}, []float64{100}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeQuality(tt.herbivores, tt.carnivores)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("computeQuality = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCV(t *testing.T) {
	if got := cv([]float64{5, 5, 5}); got != 0 {
		t.Errorf("cv of constant = %v, want 0", got)
	}
	if got := cv([]float64{1, 3}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("cv = %v, want 0.5", got)
	}
}
