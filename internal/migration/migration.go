package migration

import (
	"context"

	"autodash/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createDatasetsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create datasets table")
	}

	if err := r.createDashboardPointersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create dashboard_pointers table")
	}

	if err := r.createInsightPointersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create insight_pointers table")
	}

	if err := r.createUserStatsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create user_stats table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createDatasetsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS datasets (
		id VARCHAR(255) PRIMARY KEY,
		user_id VARCHAR(255) NOT NULL,
		original_filename TEXT NOT NULL,
		file_path TEXT,
		record_count INTEGER,
		field_count INTEGER,
		status VARCHAR(32) NOT NULL DEFAULT 'PROCESSING',
		error_message TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createDashboardPointersTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS dashboard_pointers (
		dataset_id VARCHAR(255) NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		user_id VARCHAR(255) NOT NULL,
		dashboard_id VARCHAR(255) NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		PRIMARY KEY (dataset_id, user_id)
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createInsightPointersTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS insight_pointers (
		dataset_id VARCHAR(255) NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		user_id VARCHAR(255) NOT NULL,
		has_summary BOOLEAN NOT NULL DEFAULT FALSE,
		generated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		PRIMARY KEY (dataset_id, user_id)
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createUserStatsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS user_stats (
		user_id VARCHAR(255) PRIMARY KEY,
		datasets_uploaded INTEGER NOT NULL DEFAULT 0,
		dashboards_created INTEGER NOT NULL DEFAULT 0,
		insights_generated INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_datasets_user_id ON datasets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_datasets_status ON datasets(status)`,
		`CREATE INDEX IF NOT EXISTS idx_dashboard_pointers_user ON dashboard_pointers(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_insight_pointers_user ON insight_pointers(user_id)`,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return err
		}
	}
	return nil
}
