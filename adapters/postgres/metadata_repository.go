// Package postgres implements the metadata store on PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"autodash/domain/core"
	"autodash/domain/dataset"
	apperrors "autodash/internal/errors"
	"autodash/ports"
)

// metadataRepository implements the MetadataStore interface
type metadataRepository struct {
	db *sqlx.DB
}

// NewMetadataRepository creates a new metadata repository
func NewMetadataRepository(db *sqlx.DB) ports.MetadataStore {
	return &metadataRepository{db: db}
}

// CreateDataset inserts a new dataset record
func (r *metadataRepository) CreateDataset(ctx context.Context, ds *dataset.Dataset) error {
	query := `INSERT INTO datasets (
		id, user_id, original_filename, file_path, record_count, field_count,
		status, error_message, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.UserID, ds.OriginalFilename, ds.FilePath, ds.RecordCount, ds.FieldCount,
		ds.Status, ds.ErrorMessage, ds.CreatedAt, ds.UpdatedAt,
	)
	if err != nil {
		return apperrors.DatabaseError("failed to create dataset", err)
	}
	return nil
}

// GetDataset retrieves a dataset record by its ID
func (r *metadataRepository) GetDataset(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	query := `SELECT
		id, user_id, original_filename, COALESCE(file_path, '') as file_path,
		COALESCE(record_count, 0) as record_count, COALESCE(field_count, 0) as field_count,
		status, COALESCE(error_message, '') as error_message, created_at, updated_at
	FROM datasets WHERE id = $1`

	var ds dataset.Dataset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ds.ID, &ds.UserID, &ds.OriginalFilename, &ds.FilePath,
		&ds.RecordCount, &ds.FieldCount,
		&ds.Status, &ds.ErrorMessage, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, apperrors.DatabaseError("failed to get dataset", err)
	}
	return &ds, nil
}

// UpdateDatasetStatus transitions a dataset's processing state
func (r *metadataRepository) UpdateDatasetStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMsg string) error {
	query := `UPDATE datasets SET status = $2, error_message = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, errorMsg, time.Now())
	if err != nil {
		return apperrors.DatabaseError("failed to update dataset status", err)
	}
	return requireRow(result, "dataset", id.String())
}

// UpdateDatasetCounts records row and column counts after processing
func (r *metadataRepository) UpdateDatasetCounts(ctx context.Context, id core.DatasetID, recordCount, fieldCount int) error {
	query := `UPDATE datasets SET record_count = $2, field_count = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, recordCount, fieldCount, time.Now())
	if err != nil {
		return apperrors.DatabaseError("failed to update dataset counts", err)
	}
	return requireRow(result, "dataset", id.String())
}

// UpsertDashboardPointer replaces the current-dashboard pointer for the
// dataset/user pair and returns the id it previously pointed at.
func (r *metadataRepository) UpsertDashboardPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, dashboardID core.DashboardID) (core.DashboardID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", apperrors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var prev core.DashboardID
	err = tx.QueryRowContext(ctx,
		`SELECT dashboard_id FROM dashboard_pointers WHERE dataset_id = $1 AND user_id = $2 FOR UPDATE`,
		datasetID, userID,
	).Scan(&prev)
	if err != nil && err != sql.ErrNoRows {
		return "", apperrors.DatabaseError("failed to read dashboard pointer", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dashboard_pointers (dataset_id, user_id, dashboard_id, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dataset_id, user_id)
		DO UPDATE SET dashboard_id = EXCLUDED.dashboard_id, updated_at = EXCLUDED.updated_at`,
		datasetID, userID, dashboardID, time.Now(),
	)
	if err != nil {
		return "", apperrors.DatabaseError("failed to upsert dashboard pointer", err)
	}

	if err := tx.Commit(); err != nil {
		return "", apperrors.DatabaseError("failed to commit dashboard pointer", err)
	}
	return prev, nil
}

// UpsertInsightPointer records that insights exist for the dataset/user pair
func (r *metadataRepository) UpsertInsightPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, hasSummary bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO insight_pointers (dataset_id, user_id, has_summary, generated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dataset_id, user_id)
		DO UPDATE SET has_summary = EXCLUDED.has_summary, generated_at = EXCLUDED.generated_at`,
		datasetID, userID, hasSummary, time.Now(),
	)
	if err != nil {
		return apperrors.DatabaseError("failed to upsert insight pointer", err)
	}
	return nil
}

// statColumns whitelists counter fields so they can be spliced into SQL
var statColumns = map[string]string{
	ports.StatDatasetsUploaded:  "datasets_uploaded",
	ports.StatDashboardsCreated: "dashboards_created",
	ports.StatInsightsGenerated: "insights_generated",
}

// IncrementUserStat atomically adds delta to one of the usage counters
func (r *metadataRepository) IncrementUserStat(ctx context.Context, userID core.UserID, field string, delta int) error {
	column, ok := statColumns[field]
	if !ok {
		return fmt.Errorf("unknown user stat field: %s", field)
	}

	query := fmt.Sprintf(`
		INSERT INTO user_stats (user_id, %s, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET %s = user_stats.%s + EXCLUDED.%s, updated_at = EXCLUDED.updated_at`,
		column, column, column, column)

	_, err := r.db.ExecContext(ctx, query, userID, delta, time.Now())
	if err != nil {
		return apperrors.DatabaseError(fmt.Sprintf("failed to increment %s", field), err)
	}
	return nil
}

// GetUserStats returns the usage counters for a user, zeroed when the user
// has no recorded activity yet.
func (r *metadataRepository) GetUserStats(ctx context.Context, userID core.UserID) (*ports.UserStats, error) {
	query := `SELECT datasets_uploaded, dashboards_created, insights_generated
	FROM user_stats WHERE user_id = $1`

	var stats ports.UserStats
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.DatasetsUploaded, &stats.DashboardsCreated, &stats.InsightsGenerated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return &ports.UserStats{}, nil
		}
		return nil, apperrors.DatabaseError("failed to get user stats", err)
	}
	return &stats, nil
}

func requireRow(result sql.Result, resource, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.DatabaseError("failed to check affected rows", err)
	}
	if affected == 0 {
		return core.NewNotFoundError(resource, id)
	}
	return nil
}
