// Package insight defines rule-derived textual observations about a dataset
package insight

import (
	"autodash/domain/core"
)

// Type classifies an insight statement
type Type string

const (
	TypeTrend            Type = "trend"
	TypeAnomaly          Type = "anomaly"
	TypeDataQuality      Type = "data_quality"
	TypeDataDistribution Type = "data_distribution"
	TypeDataVolume       Type = "data_volume"
	TypeKPI              Type = "kpi"
)

// Insight is one short observation about a dataset
type Insight struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
}

// Report is the generated insight document for one dataset. Summary is nil
// when the summarization collaborator is unavailable or no insights exist.
type Report struct {
	DatasetID   core.DatasetID `json:"dataset_id"`
	Insights    []Insight      `json:"insights"`
	Summary     *string        `json:"summary"`
	GeneratedAt core.Timestamp `json:"generated_at"`
}
