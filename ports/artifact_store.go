package ports

import (
	"context"

	"autodash/domain/core"
	"autodash/domain/dashboard"
	"autodash/domain/insight"
	"autodash/domain/profile"
	"autodash/domain/schema"
)

// ArtifactStore persists derived JSON documents (schema, profile, insights,
// dashboards) keyed by dataset or dashboard id. Loads of artifacts that have
// not been generated yet fail with core.ErrMissingArtifact. Documents are
// durable with no transactional guarantee across one another.
type ArtifactStore interface {
	SaveSchema(ctx context.Context, id core.DatasetID, s *schema.Schema) error
	LoadSchema(ctx context.Context, id core.DatasetID) (*schema.Schema, error)

	SaveProfile(ctx context.Context, id core.DatasetID, p *profile.Profile) error
	LoadProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error)

	SaveInsights(ctx context.Context, id core.DatasetID, r *insight.Report) error
	LoadInsights(ctx context.Context, id core.DatasetID) (*insight.Report, error)

	SaveDashboard(ctx context.Context, d *dashboard.Dashboard) error
	LoadDashboard(ctx context.Context, id core.DashboardID) (*dashboard.Dashboard, error)

	// DeleteDashboard reaps a dashboard document no longer referenced by the
	// pointer store. Deleting a missing document is not an error.
	DeleteDashboard(ctx context.Context, id core.DashboardID) error
}
