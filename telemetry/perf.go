package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the annual cycle. They match the phase registry IDs;
// PhaseRoute covers migrant routing between the two cell passes.
const (
	PhaseBirth     = "birth"
	PhaseRegrowth  = "regrowth"
	PhaseFeeding   = "feeding"
	PhaseMigration = "migration"
	PhaseRoute     = "route"
	PhaseCombine   = "combine"
	PhaseAging     = "aging"
	PhaseDeath     = "death"
)

// PerfPhases lists every timed phase in execution order.
var PerfPhases = []string{
	PhaseBirth, PhaseRegrowth, PhaseFeeding, PhaseMigration,
	PhaseRoute, PhaseCombine, PhaseAging, PhaseDeath,
}

// PerfSample holds timing data for a single simulated year.
type PerfSample struct {
	YearDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window of years.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	yearStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of years to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 10
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new year.
func (p *PerfCollector) StartTick() {
	p.yearStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase. Phases entered repeatedly
// within one year, once per cell, accumulate.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current year and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		YearDuration: now.Sub(p.yearStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgYearDuration time.Duration
	MinYearDuration time.Duration
	MaxYearDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total year time
	PhasePct map[string]float64

	YearsPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total, minYear, maxYear time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.YearDuration
		if i == 0 || s.YearDuration < minYear {
			minYear = s.YearDuration
		}
		if s.YearDuration > maxYear {
			maxYear = s.YearDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgYearDuration: avg,
		MinYearDuration: minYear,
		MaxYearDuration: maxYear,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		YearsPerSecond:  perSec,
	}
}

// Slowest returns the phase with the largest share of year time, or "" when
// nothing was timed. Ties go to the earlier phase in PerfPhases.
func (s PerfStats) Slowest() (phase string, pct float64) {
	for _, p := range PerfPhases {
		if v, ok := s.PhasePct[p]; ok && (phase == "" || v > pct) {
			phase, pct = p, v
		}
	}
	return phase, pct
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_year_us", s.AvgYearDuration.Microseconds(),
		"min_year_us", s.MinYearDuration.Microseconds(),
		"max_year_us", s.MaxYearDuration.Microseconds(),
		"years_per_sec", int(s.YearsPerSecond),
	}
	for _, phase := range PerfPhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_year_us", s.AvgYearDuration.Microseconds()),
		slog.Int64("min_year_us", s.MinYearDuration.Microseconds()),
		slog.Int64("max_year_us", s.MaxYearDuration.Microseconds()),
		slog.Float64("years_per_sec", s.YearsPerSecond),
	}
	for _, phase := range PerfPhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	RunID        string  `csv:"run_id"`
	Year         int     `csv:"year"`
	AvgYearUS    int64   `csv:"avg_year_us"`
	MinYearUS    int64   `csv:"min_year_us"`
	MaxYearUS    int64   `csv:"max_year_us"`
	YearsPerSec  float64 `csv:"years_per_sec"`
	BirthPct     float64 `csv:"birth_pct"`
	RegrowthPct  float64 `csv:"regrowth_pct"`
	FeedingPct   float64 `csv:"feeding_pct"`
	MigrationPct float64 `csv:"migration_pct"`
	RoutePct     float64 `csv:"route_pct"`
	CombinePct   float64 `csv:"combine_pct"`
	AgingPct     float64 `csv:"aging_pct"`
	DeathPct     float64 `csv:"death_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(runID string, year int) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:        runID,
		Year:         year,
		AvgYearUS:    s.AvgYearDuration.Microseconds(),
		MinYearUS:    s.MinYearDuration.Microseconds(),
		MaxYearUS:    s.MaxYearDuration.Microseconds(),
		YearsPerSec:  s.YearsPerSecond,
		BirthPct:     s.PhasePct[PhaseBirth],
		RegrowthPct:  s.PhasePct[PhaseRegrowth],
		FeedingPct:   s.PhasePct[PhaseFeeding],
		MigrationPct: s.PhasePct[PhaseMigration],
		RoutePct:     s.PhasePct[PhaseRoute],
		CombinePct:   s.PhasePct[PhaseCombine],
		AgingPct:     s.PhasePct[PhaseAging],
		DeathPct:     s.PhasePct[PhaseDeath],
	}
}
