// Package profiling computes the per-column statistical profile of a raw
// table: numeric summaries, categorical frequencies, and missing-value
// ratios. It runs on raw value types directly, independent of schema
// inference.
package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"autodash/domain/dataset"
	"autodash/domain/profile"
)

const (
	maxOutliers  = 5
	maxTopValues = 5

	trendMinValues     = 3
	trendUpThreshold   = 1.05
	trendDownThreshold = 0.95
	outlierFenceFactor = 1.5
)

// Profiler derives a Profile from a raw table
type Profiler struct {
	distributions *DistributionAnalyzer
}

// NewProfiler creates a dataset profiler
func NewProfiler() *Profiler {
	return &Profiler{distributions: NewDistributionAnalyzer()}
}

// Profile computes numeric, categorical, and missing-value statistics for
// every column. Columns that reduce to zero non-missing values are omitted
// from their stats sections entirely.
func (p *Profiler) Profile(t *dataset.Table) *profile.Profile {
	result := &profile.Profile{
		RowCount:    t.NumRows(),
		Numeric:     []profile.NumericColumn{},
		Categorical: []profile.CategoricalColumn{},
		Missing:     []profile.MissingColumn{},
	}

	for i, name := range t.Columns {
		values := t.ColumnValues(i)

		switch t.ColumnKind(i) {
		case dataset.KindNumber:
			series := numericSeries(values)
			if len(series) == 0 {
				break
			}
			result.Numeric = append(result.Numeric, profile.NumericColumn{
				Column:       name,
				NumericStats: p.numericStats(series),
			})
			if dist, ok := p.distributions.Analyze(series); ok {
				result.Distribution = append(result.Distribution, profile.DistributionColumn{
					Column:            name,
					DistributionStats: dist,
				})
			}
		case dataset.KindString:
			catValues := nonMissing(values)
			if len(catValues) == 0 {
				break
			}
			result.Categorical = append(result.Categorical, profile.CategoricalColumn{
				Column:           name,
				CategoricalStats: p.categoricalStats(catValues),
			})
		}

		if ratio := missingRatio(values, t.NumRows()); ratio > 0 {
			result.Missing = append(result.Missing, profile.MissingColumn{
				Column:       name,
				MissingStats: profile.MissingStats{MissingRatio: ratio},
			})
		}
	}

	return result
}

func (p *Profiler) numericStats(series []float64) profile.NumericStats {
	data := stats.Float64Data(series)

	mean, _ := stats.Mean(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	// Sample standard deviation; NaN for a single-value series.
	std, _ := stats.StandardDeviationSample(data)

	return profile.NumericStats{
		Mean:     mean,
		Min:      min,
		Max:      max,
		Std:      profile.Float(std),
		Trend:    detectTrend(series),
		Outliers: detectOutliers(series),
	}
}

// detectTrend splits the series into two contiguous halves in original row
// order (first half = floor(n/2) elements) and compares their means. The
// 1.05/0.95 thresholds are strict: a second half at exactly 1.05x stays flat.
func detectTrend(series []float64) profile.Trend {
	if len(series) < trendMinValues {
		return profile.TrendFlat
	}

	half := len(series) / 2
	first, _ := stats.Mean(stats.Float64Data(series[:half]))
	second, _ := stats.Mean(stats.Float64Data(series[half:]))

	switch {
	case second > first*trendUpThreshold:
		return profile.TrendUp
	case second < first*trendDownThreshold:
		return profile.TrendDown
	default:
		return profile.TrendFlat
	}
}

// detectOutliers applies the Tukey IQR rule with linearly interpolated
// quartiles and collects up to five fence-breakers in encounter order.
func detectOutliers(series []float64) []float64 {
	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	lower := q1 - outlierFenceFactor*iqr
	upper := q3 + outlierFenceFactor*iqr

	outliers := []float64{}
	for _, v := range series {
		if v < lower || v > upper {
			outliers = append(outliers, v)
			if len(outliers) == maxOutliers {
				break
			}
		}
	}
	return outliers
}

// quantile computes the q-th quantile of a sorted series by linear
// interpolation at position (n-1)*q. The stats library's Percentile uses a
// rank rule instead, so quartiles are computed here.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func (p *Profiler) categoricalStats(values []dataset.Value) profile.CategoricalStats {
	counts := make(map[string]int, len(values))
	firstSeen := make(map[string]int, len(values))
	order := []string{}

	for i, v := range values {
		key := v.Str
		if _, ok := counts[key]; !ok {
			firstSeen[key] = i
			order = append(order, key)
		}
		counts[key]++
	}

	// Rank by descending count; ties break by first-encountered order so the
	// result is deterministic regardless of map iteration.
	sort.SliceStable(order, func(a, b int) bool {
		if counts[order[a]] != counts[order[b]] {
			return counts[order[a]] > counts[order[b]]
		}
		return firstSeen[order[a]] < firstSeen[order[b]]
	})

	top := order
	if len(top) > maxTopValues {
		top = top[:maxTopValues]
	}

	topValues := make([]profile.ValueCount, 0, len(top))
	for _, key := range top {
		topValues = append(topValues, profile.ValueCount{Value: key, Count: counts[key]})
	}

	return profile.CategoricalStats{
		UniqueCount: len(counts),
		TopValues:   topValues,
	}
}

func missingRatio(values []dataset.Value, rowCount int) float64 {
	if rowCount == 0 {
		return 0
	}
	missing := 0
	for _, v := range values {
		if v.IsMissing() {
			missing++
		}
	}
	return float64(missing) / float64(rowCount)
}

func numericSeries(values []dataset.Value) []float64 {
	series := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Kind == dataset.KindNumber {
			series = append(series, v.Number)
		}
	}
	return series
}

func nonMissing(values []dataset.Value) []dataset.Value {
	out := make([]dataset.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			out = append(out, v)
		}
	}
	return out
}
