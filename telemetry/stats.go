package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Samples holds one species' attribute values at a point in time.
type Samples struct {
	Age     []float64
	Weight  []float64
	Fitness []float64
}

// Add appends one animal's attributes.
func (s *Samples) Add(age int, weight, fitness float64) {
	s.Age = append(s.Age, float64(age))
	s.Weight = append(s.Weight, weight)
	s.Fitness = append(s.Fitness, fitness)
}

// Len returns the number of animals sampled.
func (s Samples) Len() int { return len(s.Age) }

// Attribute returns the values of a named attribute: "age", "weight" or
// "fitness".
func (s Samples) Attribute(name string) []float64 {
	switch name {
	case "age":
		return s.Age
	case "weight":
		return s.Weight
	case "fitness":
		return s.Fitness
	}
	return nil
}

// Summary describes the distribution of one attribute.
type Summary struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// Summarize computes the mean, standard deviation and empirical quantiles
// of values. An empty input gives a zero summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var sum Summary
	if n == 1 {
		sum.Mean = sorted[0]
	} else {
		sum.Mean, sum.Std = stat.MeanStdDev(sorted, nil)
	}
	sum.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	sum.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	sum.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return sum
}

// YearStats holds aggregated statistics for a window of years.
type YearStats struct {
	RunID       string `csv:"run_id"`
	WindowStart int    `csv:"-"`
	Year        int    `csv:"year"`

	// Population counts at window end
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`

	// Events during window
	HerbivoreBirths     int `csv:"herbivore_births"`
	CarnivoreBirths     int `csv:"carnivore_births"`
	HerbivoreDeaths     int `csv:"herbivore_deaths"`
	CarnivoreDeaths     int `csv:"carnivore_deaths"`
	HerbivoreMigrations int `csv:"herbivore_migrations"`
	CarnivoreMigrations int `csv:"carnivore_migrations"`
	Kills               int `csv:"kills"`

	// Fodder left after the last feeding phase
	FodderRemaining float64 `csv:"fodder_remaining"`

	// Attribute distributions (sampled at window end)
	HerbivoreAgeMean     float64 `csv:"herbivore_age_mean"`
	HerbivoreWeightMean  float64 `csv:"herbivore_weight_mean"`
	HerbivoreWeightStd   float64 `csv:"herbivore_weight_std"`
	HerbivoreWeightP10   float64 `csv:"herbivore_weight_p10"`
	HerbivoreWeightP50   float64 `csv:"herbivore_weight_p50"`
	HerbivoreWeightP90   float64 `csv:"herbivore_weight_p90"`
	HerbivoreFitnessMean float64 `csv:"herbivore_fitness_mean"`

	CarnivoreAgeMean     float64 `csv:"carnivore_age_mean"`
	CarnivoreWeightMean  float64 `csv:"carnivore_weight_mean"`
	CarnivoreWeightStd   float64 `csv:"carnivore_weight_std"`
	CarnivoreWeightP10   float64 `csv:"carnivore_weight_p10"`
	CarnivoreWeightP50   float64 `csv:"carnivore_weight_p50"`
	CarnivoreWeightP90   float64 `csv:"carnivore_weight_p90"`
	CarnivoreFitnessMean float64 `csv:"carnivore_fitness_mean"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s YearStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("year", s.Year),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("herbivore_births", s.HerbivoreBirths),
		slog.Int("carnivore_births", s.CarnivoreBirths),
		slog.Int("herbivore_deaths", s.HerbivoreDeaths),
		slog.Int("carnivore_deaths", s.CarnivoreDeaths),
		slog.Int("herbivore_migrations", s.HerbivoreMigrations),
		slog.Int("carnivore_migrations", s.CarnivoreMigrations),
		slog.Int("kills", s.Kills),
		slog.Float64("fodder_remaining", s.FodderRemaining),
		slog.Float64("herbivore_age_mean", s.HerbivoreAgeMean),
		slog.Float64("herbivore_weight_mean", s.HerbivoreWeightMean),
		slog.Float64("herbivore_weight_p50", s.HerbivoreWeightP50),
		slog.Float64("herbivore_fitness_mean", s.HerbivoreFitnessMean),
		slog.Float64("carnivore_age_mean", s.CarnivoreAgeMean),
		slog.Float64("carnivore_weight_mean", s.CarnivoreWeightMean),
		slog.Float64("carnivore_weight_p50", s.CarnivoreWeightP50),
		slog.Float64("carnivore_fitness_mean", s.CarnivoreFitnessMean),
	)
}

// LogStats logs the window stats using slog.
func (s YearStats) LogStats() {
	slog.Info("stats",
		"year", s.Year,
		"herbivores", s.Herbivores,
		"carnivores", s.Carnivores,
		"herbivore_births", s.HerbivoreBirths,
		"carnivore_births", s.CarnivoreBirths,
		"herbivore_deaths", s.HerbivoreDeaths,
		"carnivore_deaths", s.CarnivoreDeaths,
		"kills", s.Kills,
		"migrations", s.HerbivoreMigrations+s.CarnivoreMigrations,
		"fodder_remaining", s.FodderRemaining,
		"herbivore_weight_mean", s.HerbivoreWeightMean,
		"carnivore_weight_mean", s.CarnivoreWeightMean,
		"herbivore_fitness_mean", s.HerbivoreFitnessMean,
		"carnivore_fitness_mean", s.CarnivoreFitnessMean,
	)
}

// CountRecord is one line of the yearly population log.
type CountRecord struct {
	Year      int `csv:"Year"`
	Herbivore int `csv:"Herbivore"`
	Carnivore int `csv:"Carnivore"`
}
