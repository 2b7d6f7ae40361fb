package config

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pthm-cable/biosim/components"
)

// etaTolerance allows eta to exceed 1 by rounding noise.
const etaTolerance = 1e-4

// SpeciesParams holds the constants of one species.
type SpeciesParams struct {
	WBirth      float64  `yaml:"w_birth"`     // Newborn weight mean
	SigmaBirth  float64  `yaml:"sigma_birth"` // Newborn weight standard deviation
	Beta        float64  `yaml:"beta"`        // Weight gained per unit of food
	Eta         float64  `yaml:"eta"`         // Fraction of weight lost per year
	AHalf       float64  `yaml:"a_half"`      // Age at which q_age = 0.5
	PhiAge      float64  `yaml:"phi_age"`     // Steepness of the age term
	WHalf       float64  `yaml:"w_half"`      // Weight at which q_weight = 0.5
	PhiWeight   float64  `yaml:"phi_weight"`  // Steepness of the weight term
	Mu          float64  `yaml:"mu"`          // Migration propensity
	Gamma       float64  `yaml:"gamma"`       // Birth rate coefficient
	Zeta        float64  `yaml:"zeta"`        // Birth eligibility multiplier
	Xi          float64  `yaml:"xi"`          // Parent weight lost per unit of newborn weight
	Omega       float64  `yaml:"omega"`       // Death rate coefficient
	F           float64  `yaml:"F"`           // Appetite per year
	DeltaPhiMax *float64 `yaml:"DeltaPhiMax,omitempty"`

	// Derived values, recomputed by Recompute
	MuLn           float64 `yaml:"-"` // Log-normal location for newborn weight
	SigmaLn        float64 `yaml:"-"` // Log-normal scale for newborn weight
	MinBirthWeight float64 `yaml:"-"` // zeta * (w_birth + sigma_birth)
}

// ParamKeys lists the table keys in canonical order.
var ParamKeys = []string{
	"w_birth", "sigma_birth", "beta", "eta", "a_half", "phi_age", "w_half",
	"phi_weight", "mu", "gamma", "zeta", "xi", "omega", "F", "DeltaPhiMax",
}

// field returns the storage for a plain numeric key, or nil.
func (p *SpeciesParams) field(key string) *float64 {
	switch key {
	case "w_birth":
		return &p.WBirth
	case "sigma_birth":
		return &p.SigmaBirth
	case "beta":
		return &p.Beta
	case "eta":
		return &p.Eta
	case "a_half":
		return &p.AHalf
	case "phi_age":
		return &p.PhiAge
	case "w_half":
		return &p.WHalf
	case "phi_weight":
		return &p.PhiWeight
	case "mu":
		return &p.Mu
	case "gamma":
		return &p.Gamma
	case "zeta":
		return &p.Zeta
	case "xi":
		return &p.Xi
	case "omega":
		return &p.Omega
	case "F":
		return &p.F
	}
	return nil
}

// Recompute refreshes the derived newborn-weight constants.
// A zero birth-weight mean makes every newborn weigh 0, so no birth succeeds.
func (p *SpeciesParams) Recompute() {
	w, s := p.WBirth, p.SigmaBirth
	if w > 0 {
		p.MuLn = math.Log(w * w / math.Sqrt(w*w+s*s))
		p.SigmaLn = math.Sqrt(math.Log(1 + s*s/(w*w)))
	} else {
		p.MuLn = math.Inf(-1)
		p.SigmaLn = 0
	}
	p.MinBirthWeight = p.Zeta * (w + s)
}

// KillThreshold returns DeltaPhiMax, or 0 when unset.
func (p *SpeciesParams) KillThreshold() float64 {
	if p.DeltaPhiMax == nil {
		return 0
	}
	return *p.DeltaPhiMax
}

// Validate checks the whole table for the given species.
func (p *SpeciesParams) Validate(s components.Species) error {
	for _, key := range ParamKeys {
		if key == "DeltaPhiMax" {
			continue
		}
		if err := checkValue(s, key, *p.field(key)); err != nil {
			return err
		}
	}
	return checkDeltaPhiMax(s, p.DeltaPhiMax)
}

// Update applies a partial table of key/value pairs. The table is validated
// as a whole first; on error p is unchanged.
func (p *SpeciesParams) Update(s components.Species, table map[string]any) error {
	if table == nil {
		return fmt.Errorf("%w: no parameters given for %s", ErrConfiguration, s)
	}

	next := p.clone()
	for key, raw := range table {
		if key == "DeltaPhiMax" {
			var dpm *float64
			if raw != nil {
				v, ok := ToFloat(raw)
				if !ok {
					return fmt.Errorf("%w: %s.DeltaPhiMax must be a number, got %T", ErrConfiguration, s, raw)
				}
				dpm = &v
			} else if s == components.Herbivore {
				continue
			}
			if err := checkDeltaPhiMax(s, dpm); err != nil {
				return err
			}
			next.DeltaPhiMax = dpm
			continue
		}

		ref := next.field(key)
		if ref == nil {
			return unknownKey(s.String(), key, ParamKeys)
		}
		v, ok := ToFloat(raw)
		if !ok {
			return fmt.Errorf("%w: %s.%s must be a number, got %T", ErrConfiguration, s, key, raw)
		}
		if err := checkValue(s, key, v); err != nil {
			return err
		}
		*ref = v
	}

	next.Recompute()
	*p = next
	return nil
}

func (p *SpeciesParams) clone() SpeciesParams {
	c := *p
	if p.DeltaPhiMax != nil {
		v := *p.DeltaPhiMax
		c.DeltaPhiMax = &v
	}
	return c
}

func checkValue(s components.Species, key string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s.%s must be finite", ErrConfiguration, s, key)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s.%s must not be negative, got %v", ErrConfiguration, s, key, v)
	}
	if key == "eta" && v > 1+etaTolerance {
		return fmt.Errorf("%w: %s.eta must be at most 1, got %v", ErrConfiguration, s, v)
	}
	return nil
}

func checkDeltaPhiMax(s components.Species, v *float64) error {
	switch s {
	case components.Herbivore:
		if v != nil {
			return fmt.Errorf("%w: DeltaPhiMax cannot be set for %s", ErrConfiguration, s)
		}
	case components.Carnivore:
		if v == nil {
			return fmt.Errorf("%w: DeltaPhiMax is required for %s", ErrConfiguration, s)
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			return fmt.Errorf("%w: %s.DeltaPhiMax must be positive, got %v", ErrConfiguration, s, *v)
		}
	}
	return nil
}

// ToFloat accepts the numeric types produced by YAML and JSON decoding.
// Booleans and strings are rejected.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
