package telemetry

import (
	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/systems"
)

// Collector accumulates annual event counts over a window of years and
// produces YearStats.
type Collector struct {
	runID       string
	windowYears int

	// Current window tracking
	windowStart int
	events      systems.Tally
}

// NewCollector creates a new stats collector.
// windowYears: how many years each stats window spans; 0 or less disables
// flushing.
func NewCollector(runID string, windowYears int) *Collector {
	return &Collector{runID: runID, windowYears: max(windowYears, 0)}
}

// Record adds one year's events to the current window.
func (c *Collector) Record(t systems.Tally) {
	c.events.Add(t)
}

// ShouldFlush returns true if the window ending at year is complete.
func (c *Collector) ShouldFlush(year int) bool {
	if c.windowYears == 0 {
		return false
	}
	return year-c.windowStart >= c.windowYears
}

// Flush produces a YearStats and resets counters for the next window.
// The caller must provide:
// - year: the last completed year
// - counts: population per species
// - samples: attribute values per species
// - fodder: fodder remaining across the island
func (c *Collector) Flush(
	year int,
	counts [components.NumSpecies]int,
	samples [components.NumSpecies]Samples,
	fodder float64,
) YearStats {
	herbAge := Summarize(samples[components.Herbivore].Age)
	herbWeight := Summarize(samples[components.Herbivore].Weight)
	herbFitness := Summarize(samples[components.Herbivore].Fitness)
	carnAge := Summarize(samples[components.Carnivore].Age)
	carnWeight := Summarize(samples[components.Carnivore].Weight)
	carnFitness := Summarize(samples[components.Carnivore].Fitness)

	stats := YearStats{
		RunID:       c.runID,
		WindowStart: c.windowStart,
		Year:        year,

		Herbivores: counts[components.Herbivore],
		Carnivores: counts[components.Carnivore],

		HerbivoreBirths:     c.events.Births[components.Herbivore],
		CarnivoreBirths:     c.events.Births[components.Carnivore],
		HerbivoreDeaths:     c.events.Deaths[components.Herbivore],
		CarnivoreDeaths:     c.events.Deaths[components.Carnivore],
		HerbivoreMigrations: c.events.Migrations[components.Herbivore],
		CarnivoreMigrations: c.events.Migrations[components.Carnivore],
		Kills:               c.events.Kills,

		FodderRemaining: fodder,

		HerbivoreAgeMean:     herbAge.Mean,
		HerbivoreWeightMean:  herbWeight.Mean,
		HerbivoreWeightStd:   herbWeight.Std,
		HerbivoreWeightP10:   herbWeight.P10,
		HerbivoreWeightP50:   herbWeight.P50,
		HerbivoreWeightP90:   herbWeight.P90,
		HerbivoreFitnessMean: herbFitness.Mean,

		CarnivoreAgeMean:     carnAge.Mean,
		CarnivoreWeightMean:  carnWeight.Mean,
		CarnivoreWeightStd:   carnWeight.Std,
		CarnivoreWeightP10:   carnWeight.P10,
		CarnivoreWeightP50:   carnWeight.P50,
		CarnivoreWeightP90:   carnWeight.P90,
		CarnivoreFitnessMean: carnFitness.Mean,
	}

	// Reset for next window
	c.windowStart = year
	c.events = systems.Tally{}

	return stats
}
