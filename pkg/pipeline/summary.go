package pipeline

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/mulnet/pkg/errors"
)

// MetricSummary describes one metric over the successful records.
type MetricSummary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary aggregates a batch.
type Summary struct {
	Total      int                      `json:"total"`
	Succeeded  int                      `json:"succeeded"`
	Failed     int                      `json:"failed"`
	CacheHits  int                      `json:"cache_hits"`
	ErrorCodes map[errors.Code]int      `json:"error_codes,omitempty"`
	Metrics    map[string]MetricSummary `json:"metrics"`
}

// MetricNames returns the summarized metric names in sorted order.
func (s Summary) MetricNames() []string {
	names := make([]string, 0, len(s.Metrics))
	for k := range s.Metrics {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Summarize computes per-metric statistics. Metrics absent from a record
// (for example skipped edit distances) are left out of that metric's sample.
// StdDev is the sample standard deviation, zero for fewer than two values.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records), Metrics: make(map[string]MetricSummary)}
	samples := make(map[string][]float64)
	for _, rec := range records {
		if rec.CacheHit {
			s.CacheHits++
		}
		if !rec.OK() {
			s.Failed++
			if s.ErrorCodes == nil {
				s.ErrorCodes = make(map[errors.Code]int)
			}
			s.ErrorCodes[rec.ErrorCode]++
			continue
		}
		s.Succeeded++
		for k, v := range rec.Metrics {
			if !math.IsNaN(v) {
				samples[k] = append(samples[k], v)
			}
		}
	}

	for k, xs := range samples {
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) < 2 {
			std = 0
		}
		s.Metrics[k] = MetricSummary{
			N:      len(xs),
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(xs),
			Max:    floats.Max(xs),
		}
	}
	return s
}
