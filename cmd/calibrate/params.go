package main

import (
	"github.com/pthm-cable/biosim/config"
)

// ParamSpec defines a single calibrated parameter.
type ParamSpec struct {
	Name    string  // Column name in the log
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
	field   func(cfg *config.Config) *float64
}

// ParamVector holds the set of all calibrated parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the calibrated parameter set, starting from the
// values in cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{
		Specs: []ParamSpec{
			// Herbivore
			{Name: "herb_gamma", Path: "species.herbivore.gamma", Min: 0.05, Max: 0.6,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.Gamma }},
			{Name: "herb_omega", Path: "species.herbivore.omega", Min: 0.1, Max: 0.9,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.Omega }},
			{Name: "herb_mu", Path: "species.herbivore.mu", Min: 0.0, Max: 0.6,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.Mu }},
			{Name: "herb_F", Path: "species.herbivore.F", Min: 2.0, Max: 30.0,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.F }},
			// Carnivore
			{Name: "carn_gamma", Path: "species.carnivore.gamma", Min: 0.1, Max: 1.0,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.Gamma }},
			{Name: "carn_omega", Path: "species.carnivore.omega", Min: 0.1, Max: 0.95,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.Omega }},
			{Name: "carn_mu", Path: "species.carnivore.mu", Min: 0.0, Max: 0.8,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.Mu }},
			{Name: "carn_F", Path: "species.carnivore.F", Min: 10.0, Max: 80.0,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.F }},
		},
	}
	for i := range pv.Specs {
		pv.Specs[i].Default = pv.Clamp1(i, *pv.Specs[i].field(cfg))
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp1 clamps a single value to the bounds of parameter i.
func (pv *ParamVector) Clamp1(i int, v float64) float64 {
	spec := pv.Specs[i]
	if v < spec.Min {
		return spec.Min
	}
	if v > spec.Max {
		return spec.Max
	}
	return v
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i := range pv.Specs {
		clamped[i] = pv.Clamp1(i, v[i])
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(cfg) = v
	}
}

// EvalRecord is one row of calibrate_log.csv.
type EvalRecord struct {
	Eval      int     `csv:"eval"`
	Fitness   float64 `csv:"fitness"`
	Survived  float64 `csv:"survived_years"`
	Quality   float64 `csv:"quality"`
	HerbGamma float64 `csv:"herb_gamma"`
	HerbOmega float64 `csv:"herb_omega"`
	HerbMu    float64 `csv:"herb_mu"`
	HerbF     float64 `csv:"herb_F"`
	CarnGamma float64 `csv:"carn_gamma"`
	CarnOmega float64 `csv:"carn_omega"`
	CarnMu    float64 `csv:"carn_mu"`
	CarnF     float64 `csv:"carn_F"`
}

// Record builds a log row from clamped parameter values.
func (pv *ParamVector) Record(eval int, fitness float64, r Evaluation, values []float64) EvalRecord {
	v := pv.Clamp(values)
	return EvalRecord{
		Eval:      eval,
		Fitness:   fitness,
		Survived:  r.SurvivedYears,
		Quality:   r.Quality,
		HerbGamma: v[0],
		HerbOmega: v[1],
		HerbMu:    v[2],
		HerbF:     v[3],
		CarnGamma: v[4],
		CarnOmega: v[5],
		CarnMu:    v[6],
		CarnF:     v[7],
	}
}
