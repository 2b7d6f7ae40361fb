package island

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

// GenerateGeography builds a random island map from layered simplex noise.
// Elevation falls off towards the edges so land gathers in the middle, and
// the outer ring is always water. cfg.Seed of zero falls back to seed.
func GenerateGeography(cfg config.GeneratorConfig, seed int64) (Geography, error) {
	if cfg.Rows < 3 || cfg.Cols < 3 {
		return nil, fmt.Errorf("%w: generated map must be at least 3x3, got %dx%d", ErrGeography, cfg.Rows, cfg.Cols)
	}
	if cfg.Octaves < 1 || cfg.Scale <= 0 {
		return nil, fmt.Errorf("%w: generator needs at least one octave and a positive scale", ErrGeography)
	}
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	geo := make(Geography, cfg.Rows)
	for r := range cfg.Rows {
		geo[r] = make([]components.Habitat, cfg.Cols)
		for c := range cfg.Cols {
			if r == 0 || c == 0 || r == cfg.Rows-1 || c == cfg.Cols-1 {
				geo[r][c] = components.Water
				continue
			}
			x, y := float64(c), float64(r)
			elev := octaveNoise(elevNoise, x, y, cfg.Octaves, cfg.Scale, cfg.Persistence)
			elev -= falloff(r, c, cfg.Rows, cfg.Cols)
			moist := octaveNoise(moistNoise, x, y, cfg.Octaves, cfg.Scale, cfg.Persistence)
			geo[r][c] = classify(elev, moist, cfg)
		}
	}
	return geo, nil
}

// classify maps elevation and moisture to a habitat.
func classify(elev, moist float64, cfg config.GeneratorConfig) components.Habitat {
	switch {
	case elev < cfg.SeaLevel:
		return components.Water
	case elev > cfg.HillLevel:
		return components.Hills
	case moist < cfg.DryLevel:
		return components.Barren
	default:
		return components.Plains
	}
}

// falloff lowers elevation with squared distance from the map centre,
// reaching 0.5 at the corners.
func falloff(r, c, rows, cols int) float64 {
	dy := (float64(r) - float64(rows-1)/2) / (float64(rows-1) / 2)
	dx := (float64(c) - float64(cols-1)/2) / (float64(cols-1) / 2)
	return 0.25 * (dx*dx + dy*dy)
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for range octaves {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return math.Max(0, total/maxVal)
}
