package ports

import (
	"context"

	"autodash/domain/core"
	"autodash/domain/dataset"
)

// User stat counter fields supported by IncrementUserStat
const (
	StatDatasetsUploaded  = "datasets_uploaded"
	StatDashboardsCreated = "dashboards_created"
	StatInsightsGenerated = "insights_generated"
)

// UserStats holds the per-user usage counters
type UserStats struct {
	DatasetsUploaded  int `json:"datasets_uploaded"`
	DashboardsCreated int `json:"dashboards_created"`
	InsightsGenerated int `json:"insights_generated"`
}

// MetadataStore tracks dataset lifecycle status, dashboard/insight pointers
// keyed by (dataset, user), and per-user usage counters.
type MetadataStore interface {
	CreateDataset(ctx context.Context, ds *dataset.Dataset) error
	GetDataset(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error)
	UpdateDatasetStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMsg string) error
	UpdateDatasetCounts(ctx context.Context, id core.DatasetID, recordCount, fieldCount int) error

	// UpsertDashboardPointer replaces the current-dashboard pointer for the
	// dataset/user pair and returns the previously pointed-to dashboard id,
	// empty if none existed.
	UpsertDashboardPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, dashboardID core.DashboardID) (core.DashboardID, error)

	UpsertInsightPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, hasSummary bool) error

	// IncrementUserStat atomically adds delta to one of the usage counters
	IncrementUserStat(ctx context.Context, userID core.UserID, field string, delta int) error
	GetUserStats(ctx context.Context, userID core.UserID) (*UserStats, error)
}
