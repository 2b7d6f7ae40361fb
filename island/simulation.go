package island

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/systems"
	"github.com/pthm-cable/biosim/telemetry"
	"github.com/pthm-cable/biosim/traits"
)

// YearObserver is called after every simulated year with the population
// per species.
type YearObserver func(year int, counts [components.NumSpecies]int)

// Options configure a Simulation's telemetry. The zero value disables all
// output.
type Options struct {
	RunID      string
	Output     *telemetry.OutputManager // nil disables CSV output
	Perf       *telemetry.PerfCollector // nil disables phase timing
	LogEvery   int                      // years per stats window, 0 disables
	LogStats   bool                     // log each stats window
	Histograms map[string]config.HistogramSpec
	OnYear     YearObserver
}

// Simulation runs an island year by year and reports on it.
type Simulation struct {
	island    *Island
	year      int
	seed      int64
	opts      Options
	collector *telemetry.Collector
}

// NewSimulation builds an island from geography, places population on it
// and seeds the random stream. params is owned by the simulation afterwards.
func NewSimulation(geography string, population []config.Placement, params *config.Params, seed int64, opts Options) (*Simulation, error) {
	isl, err := New(geography, params, systems.NewSource(uint64(seed)))
	if err != nil {
		return nil, err
	}
	if err := isl.InsertPlacements(population); err != nil {
		return nil, err
	}
	if opts.Perf != nil {
		isl.SetPerfCollector(opts.Perf)
	}

	sim := &Simulation{
		island:    isl,
		seed:      seed,
		opts:      opts,
		collector: telemetry.NewCollector(opts.RunID, opts.LogEvery),
	}
	slog.Info("simulation created",
		"run_id", opts.RunID,
		"seed", seed,
		"rows", isl.Rows(),
		"cols", isl.Cols(),
		"animals", isl.NumAnimals(),
	)
	for _, sp := range components.AllSpecies {
		slog.Debug("species",
			"name", sp.String(),
			"traits", traits.TraitNames(sp.Traits()),
			"appetite", params.For(sp).F,
		)
	}
	return sim, nil
}

// NewSimulationFromConfig builds a simulation from a loaded configuration.
func NewSimulationFromConfig(cfg *config.Config, opts Options) (*Simulation, error) {
	if opts.LogEvery == 0 {
		opts.LogEvery = cfg.Telemetry.LogEvery
	}
	if opts.Histograms == nil {
		opts.Histograms = cfg.Telemetry.Histograms
	}
	return NewSimulation(cfg.Geography, cfg.Population, cfg.Params(), cfg.Seed, opts)
}

// Simulate runs the given number of years. Telemetry is written after each
// year.
func (s *Simulation) Simulate(years int) error {
	if years < 0 {
		return fmt.Errorf("%w: cannot simulate %d years", components.ErrInvalidArgument, years)
	}
	for range years {
		tally := s.island.RunAnnualCycle()
		s.year++
		s.collector.Record(tally)
		if err := s.afterYear(); err != nil {
			return err
		}
	}
	counts := s.island.NumAnimalsPerSpecies()
	slog.Info("simulation advanced",
		"years", years,
		"year", s.year,
		"herbivores", counts[components.Herbivore],
		"carnivores", counts[components.Carnivore],
	)
	return nil
}

// afterYear handles per-year telemetry.
func (s *Simulation) afterYear() error {
	counts := s.island.NumAnimalsPerSpecies()
	if s.opts.OnYear != nil {
		s.opts.OnYear(s.year, counts)
	}

	out := s.opts.Output
	if err := out.WriteCounts(telemetry.CountRecord{
		Year:      s.year,
		Herbivore: counts[components.Herbivore],
		Carnivore: counts[components.Carnivore],
	}); err != nil {
		return err
	}

	if !s.collector.ShouldFlush(s.year) {
		return nil
	}

	samples := s.island.HistogramValues()
	stats := s.collector.Flush(s.year, counts, samples, s.island.FodderRemaining())
	if s.opts.LogStats {
		stats.LogStats()
	}
	if err := out.WriteStats(stats); err != nil {
		return err
	}
	if err := out.WriteHistograms(s.year, s.histograms(samples)); err != nil {
		return err
	}
	if s.opts.Perf != nil {
		perf := s.opts.Perf.Stats()
		if s.opts.LogStats {
			perf.LogStats()
			if phase, pct := perf.Slowest(); phase != "" {
				slog.Info("slowest phase", "phase", s.island.phases.GetName(phase), "pct", pct)
			}
		}
		if err := out.WritePerf(perf, s.year); err != nil {
			return err
		}
	}
	return nil
}

// histograms bins every configured attribute of every species.
func (s *Simulation) histograms(samples [components.NumSpecies]telemetry.Samples) []telemetry.Histogram {
	var hists []telemetry.Histogram
	for _, attr := range config.HistogramAttributes {
		spec, ok := s.opts.Histograms[attr]
		if !ok {
			continue
		}
		for _, sp := range components.AllSpecies {
			hists = append(hists, telemetry.NewHistogram(sp.String(), attr, samples[sp].Attribute(attr), spec))
		}
	}
	return hists
}

// AddPopulation places more animals on the island. Nothing is placed
// unless every placement is valid.
func (s *Simulation) AddPopulation(population []config.Placement) error {
	return s.island.InsertPlacements(population)
}

// SetAnimalParameters updates the parameter table of a named species.
func (s *Simulation) SetAnimalParameters(species string, table map[string]any) error {
	return s.island.UpdateSpeciesParams(species, table)
}

// SetLandscapeParameters updates the parameter table of a habitat code.
func (s *Simulation) SetLandscapeParameters(code string, table map[string]any) error {
	return s.island.UpdateHabitatParams(code, table)
}

// Year returns the number of years simulated so far.
func (s *Simulation) Year() int { return s.year }

// Seed returns the seed of the random stream.
func (s *Simulation) Seed() int64 { return s.seed }

// NumAnimals returns the total number of animals on the island.
func (s *Simulation) NumAnimals() int { return s.island.NumAnimals() }

// NumAnimalsPerSpecies returns the number of animals keyed by species name.
func (s *Simulation) NumAnimalsPerSpecies() map[string]int {
	counts := s.island.NumAnimalsPerSpecies()
	out := make(map[string]int, len(counts))
	for _, sp := range components.AllSpecies {
		out[sp.String()] = counts[sp]
	}
	return out
}

// Island returns the simulated island.
func (s *Simulation) Island() *Island { return s.island }
