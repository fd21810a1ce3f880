package assembler

import (
	"sort"

	"autodash/domain/dashboard"
	"autodash/domain/dataset"
)

// Raw-mode chart data is capped at the first 200 matched rows
const maxRawDataPoints = 200

type xyPair struct {
	x dataset.Value
	y float64
}

// buildChartData materializes datapoints for one chart spec. Rows where
// either column is missing are dropped; aggregation "none" keeps original
// row order, grouped aggregations emit one record per distinct x ordered
// ascending by x value.
func buildChartData(t *dataset.Table, spec dashboard.ChartSpec) []dashboard.DataPoint {
	xi, okX := t.ColumnIndex(spec.X)
	yi, okY := t.ColumnIndex(spec.Y)
	if !okX || !okY {
		return []dashboard.DataPoint{}
	}

	var pairs []xyPair
	for _, row := range t.Rows {
		x := cellAt(row, xi)
		y := cellAt(row, yi)
		if x.IsMissing() || y.Kind != dataset.KindNumber {
			continue
		}
		pairs = append(pairs, xyPair{x: x, y: y.Number})
	}

	if len(pairs) == 0 {
		return []dashboard.DataPoint{}
	}

	switch spec.Aggregation {
	case dashboard.AggregationMean, dashboard.AggregationSum:
		return aggregatePairs(pairs, spec.Aggregation)
	default:
		return rawPairs(pairs)
	}
}

func rawPairs(pairs []xyPair) []dashboard.DataPoint {
	if len(pairs) > maxRawDataPoints {
		pairs = pairs[:maxRawDataPoints]
	}
	points := make([]dashboard.DataPoint, len(pairs))
	for i, p := range pairs {
		points[i] = dashboard.DataPoint{X: p.x.Interface(), Y: p.y}
	}
	return points
}

type xGroup struct {
	x     dataset.Value
	sum   float64
	count int
}

func aggregatePairs(pairs []xyPair, agg dashboard.Aggregation) []dashboard.DataPoint {
	groups := make(map[string]*xGroup)
	for _, p := range pairs {
		key := p.x.Key()
		g, ok := groups[key]
		if !ok {
			g = &xGroup{x: p.x}
			groups[key] = g
		}
		g.sum += p.y
		g.count++
	}

	ordered := make([]*xGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	// Ascending by x value: deterministic regardless of row order
	sort.Slice(ordered, func(a, b int) bool {
		return ordered[a].x.Less(ordered[b].x)
	})

	points := make([]dashboard.DataPoint, len(ordered))
	for i, g := range ordered {
		y := g.sum
		if agg == dashboard.AggregationMean {
			y = g.sum / float64(g.count)
		}
		points[i] = dashboard.DataPoint{X: g.x.Interface(), Y: y}
	}
	return points
}

func cellAt(row []dataset.Value, i int) dataset.Value {
	if i < len(row) {
		return row[i]
	}
	return dataset.Missing()
}
