// Package container wires application dependencies and manages their
// lifecycle.
package container

import (
	"context"
	"fmt"

	"autodash/adapters/artifacts"
	"autodash/adapters/postgres"
	"autodash/adapters/storage"
	"autodash/adapters/summarizer"
	"autodash/internal/assembler"
	"autodash/internal/config"
	"autodash/internal/insights"
	"autodash/internal/migration"
	"autodash/internal/pipeline"
	"autodash/internal/usage"
	"autodash/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Stores (data access layer)
	Metadata  ports.MetadataStore
	Datasets  ports.DatasetStore
	Artifacts ports.ArtifactStore

	// Services
	Usage      *usage.Service
	Dashboards *assembler.Assembler
	Insights   *insights.Service
	Processor  *pipeline.Processor
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// Init connects to the database, runs migrations, and wires all services
func (c *Container) Init(ctx context.Context) error {
	db, err := sqlx.Connect("postgres", c.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	c.DB = db

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		c.Close()
		return fmt.Errorf("database migration failed: %w", err)
	}

	c.Metadata = postgres.NewMetadataRepository(db)
	c.Datasets = storage.NewFileStore(c.Config.Storage.DatasetDir)
	c.Artifacts = artifacts.NewFileStore(c.Config.Storage.DatasetDir, c.Config.Storage.DashboardDir)

	var summarize ports.Summarizer
	if c.Config.Summarizer.APIKey != "" {
		client, err := summarizer.NewCohereClient(summarizer.Config{
			APIKey:    c.Config.Summarizer.APIKey,
			Model:     c.Config.Summarizer.Model,
			BaseURL:   c.Config.Summarizer.BaseURL,
			MaxTokens: c.Config.Summarizer.MaxTokens,
		})
		if err != nil {
			c.Close()
			return fmt.Errorf("summarizer setup failed: %w", err)
		}
		summarize = client
	}

	c.Usage = usage.NewService(c.Metadata)
	c.Dashboards = assembler.NewWithCacheSize(c.Datasets, c.Artifacts, c.Metadata, c.Usage, c.Config.Dashboard.CacheSize)
	c.Insights = insights.NewService(c.Artifacts, c.Metadata, summarize, c.Usage)
	c.Processor = pipeline.NewProcessor(c.Datasets, c.Artifacts, c.Metadata, c.Usage, c.Dashboards)

	return nil
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
