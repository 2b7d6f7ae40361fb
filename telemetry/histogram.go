package telemetry

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biosim/config"
)

// Histogram bins one attribute of one species from 0 up to the spec's max.
type Histogram struct {
	Species   string
	Attribute string
	Edges     []float64 // len(Counts)+1 bin boundaries
	Counts    []float64
	Overflow  int // values at or above the last edge
}

// Edges returns the bin boundaries 0, delta, 2*delta, ... up to max.
func Edges(spec config.HistogramSpec) []float64 {
	n := int(math.Round(spec.Max / spec.Delta))
	if n < 1 {
		n = 1
	}
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = float64(i) * spec.Delta
	}
	return edges
}

// NewHistogram bins values according to spec. Negative values are counted
// in the first bin.
func NewHistogram(species, attribute string, values []float64, spec config.HistogramSpec) Histogram {
	edges := Edges(spec)
	limit := edges[len(edges)-1]

	in := make([]float64, 0, len(values))
	overflow := 0
	for _, v := range values {
		if v >= limit {
			overflow++
			continue
		}
		in = append(in, max(v, 0))
	}
	slices.Sort(in)

	return Histogram{
		Species:   species,
		Attribute: attribute,
		Edges:     edges,
		Counts:    stat.Histogram(nil, edges, in, nil),
		Overflow:  overflow,
	}
}

// HistogramRecord is one bin of a histogram in long CSV form.
type HistogramRecord struct {
	RunID     string  `csv:"run_id"`
	Year      int     `csv:"year"`
	Species   string  `csv:"species"`
	Attribute string  `csv:"attribute"`
	Low       float64 `csv:"bin_low"`
	High      float64 `csv:"bin_high"`
	Count     int     `csv:"count"`
}

// Records flattens the histogram into CSV rows. The overflow bin is written
// with an infinite upper bound.
func (h Histogram) Records(runID string, year int) []HistogramRecord {
	recs := make([]HistogramRecord, 0, len(h.Counts)+1)
	for i, c := range h.Counts {
		recs = append(recs, HistogramRecord{
			RunID: runID, Year: year, Species: h.Species, Attribute: h.Attribute,
			Low: h.Edges[i], High: h.Edges[i+1], Count: int(c),
		})
	}
	recs = append(recs, HistogramRecord{
		RunID: runID, Year: year, Species: h.Species, Attribute: h.Attribute,
		Low: h.Edges[len(h.Edges)-1], High: math.Inf(1), Count: h.Overflow,
	})
	return recs
}
