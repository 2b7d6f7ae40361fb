package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
)

// Minimum viable population: a species below this for extinctionGraceYears
// consecutive years counts as functionally extinct.
const (
	minViablePop         = 5
	extinctionGraceYears = 5
)

// Quality component weights.
const (
	qualityWeightRatio     = 0.5
	qualityWeightStability = 0.5

	qualityWarmupYears = 20 // skip the founding years
	targetRatio        = 4.0
)

// Evaluation summarises one parameter vector across all seeds.
type Evaluation struct {
	SurvivedYears float64
	Quality       float64
}

// FitnessEvaluator runs simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	years      int
	seeds      []int64
	baseConfig *config.Config

	mu   sync.Mutex
	last Evaluation
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, years int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		years:      years,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// Last returns the evaluation from the most recent Evaluate call.
func (fe *FitnessEvaluator) Last() Evaluation {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivedYears int
	herbivores    []float64 // yearly counts after warmup
	carnivores    []float64
	err           error
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is negative survival years, scaled by up to 20% for quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Each seed runs on its own island and generator.
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSurvival, totalQuality float64
	for _, r := range results {
		if r.err != nil {
			// Rejected parameters score as an immediate extinction.
			continue
		}
		quality := computeQuality(r.herbivores, r.carnivores)
		survival := float64(r.survivedYears)
		totalFitness += -(survival * (1.0 + 0.2*quality))
		totalSurvival += survival
		totalQuality += quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.last = Evaluation{SurvivedYears: totalSurvival / n, Quality: totalQuality / n}
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes one run until functional extinction or the year cap.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	var result runResult
	sim, err := island.NewSimulation(cfg.Geography, cfg.Population, cfg.Params(), seed, island.Options{})
	if err != nil {
		result.err = err
		return result
	}

	var herbBelow, carnBelow int
	for sim.Year() < fe.years {
		if err := sim.Simulate(1); err != nil {
			result.err = err
			return result
		}
		counts := sim.Island().NumAnimalsPerSpecies()
		herb := counts[components.Herbivore]
		carn := counts[components.Carnivore]
		result.survivedYears = sim.Year()

		if herb == 0 || carn == 0 {
			return result
		}
		if sim.Year() > qualityWarmupYears {
			result.herbivores = append(result.herbivores, float64(herb))
			result.carnivores = append(result.carnivores, float64(carn))
		}

		herbBelow = belowCount(herb, herbBelow)
		carnBelow = belowCount(carn, carnBelow)
		if herbBelow >= extinctionGraceYears || carnBelow >= extinctionGraceYears {
			return result
		}
	}
	return result
}

func belowCount(pop, below int) int {
	if pop < minViablePop {
		return below + 1
	}
	return 0
}

// copyConfig creates a copy of the base config that can be modified freely.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeQuality computes ecosystem quality in [0, 1] from yearly counts.
func computeQuality(herbivores, carnivores []float64) float64 {
	if len(herbivores) == 0 {
		return 0
	}

	// Population ratio, scored per year on a log scale around the target.
	var ratioSum float64
	for i := range herbivores {
		logErr := math.Log(herbivores[i] / carnivores[i] / targetRatio)
		ratioSum += math.Exp(-logErr * logErr)
	}
	ratioScore := ratioSum / float64(len(herbivores))

	// Stability from the coefficient of variation of both series.
	stabilityScore := 0.0
	if len(herbivores) >= 2 {
		cvHerb := cv(herbivores)
		cvCarn := cv(carnivores)
		stabilityScore = math.Exp(-(cvHerb*cvHerb + cvCarn*cvCarn))
	}

	return clamp01(qualityWeightRatio*ratioScore + qualityWeightStability*stabilityScore)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
