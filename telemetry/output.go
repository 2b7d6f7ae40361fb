package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/biosim/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir   string
	runID string

	countsFile     *os.File
	statsFile      *os.File
	perfFile       *os.File
	histogramsFile *os.File

	// Track if headers have been written
	countsHeaderWritten     bool
	statsHeaderWritten      bool
	perfHeaderWritten       bool
	histogramsHeaderWritten bool
}

// NewRunID returns a fresh identifier for a simulation run.
func NewRunID() string {
	return uuid.NewString()
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir, runID string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, runID: runID}
	files := []struct {
		name string
		dst  **os.File
	}{
		{"counts.csv", &om.countsFile},
		{"stats.csv", &om.statsFile},
		{"perf.csv", &om.perfFile},
		{"histograms.csv", &om.histogramsFile},
	}
	for _, f := range files {
		fh, err := os.Create(filepath.Join(dir, f.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		*f.dst = fh
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteCounts appends one line to counts.csv.
func (om *OutputManager) WriteCounts(rec CountRecord) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.countsFile, []CountRecord{rec}, &om.countsHeaderWritten, "counts")
}

// WriteStats writes a window stats record to stats.csv.
func (om *OutputManager) WriteStats(stats YearStats) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.statsFile, []YearStats{stats}, &om.statsHeaderWritten, "stats")
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, year int) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.perfFile, []PerfStatsCSV{stats.ToCSV(om.runID, year)}, &om.perfHeaderWritten, "perf")
}

// WriteHistograms appends every bin of hists to histograms.csv.
func (om *OutputManager) WriteHistograms(year int, hists []Histogram) error {
	if om == nil || len(hists) == 0 {
		return nil
	}
	var records []HistogramRecord
	for _, h := range hists {
		records = append(records, h.Records(om.runID, year)...)
	}
	return writeRecords(om.histogramsFile, records, &om.histogramsHeaderWritten, "histograms")
}

// writeRecords writes headers on the first call and rows only afterwards.
func writeRecords[T any](f *os.File, records []T, headerWritten *bool, name string) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		*headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.countsFile, om.statsFile, om.perfFile, om.histogramsFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
