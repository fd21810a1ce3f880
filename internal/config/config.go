package config

import (
	"os"
	"strconv"

	"autodash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Storage    StorageConfig
	Summarizer SummarizerConfig
	Dashboard  DashboardConfig
}

// DatabaseConfig holds metadata datastore connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// StorageConfig holds local file storage paths
type StorageConfig struct {
	DataDir      string
	DatasetDir   string
	DashboardDir string
}

// SummarizerConfig holds summarization provider settings. An empty APIKey
// disables summarization; insight generation degrades to a nil summary.
type SummarizerConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// DashboardConfig holds dashboard generation settings
type DashboardConfig struct {
	CacheSize int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:   loadDatabaseConfig(),
		Storage:    loadStorageConfig(),
		Summarizer: loadSummarizerConfig(),
		Dashboard:  loadDashboardConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:     os.Getenv("DATABASE_URL"),
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}
}

func loadStorageConfig() StorageConfig {
	dataDir := getEnvOrDefault("DATA_DIR", "data")
	return StorageConfig{
		DataDir:      dataDir,
		DatasetDir:   getEnvOrDefault("DATASET_DIR", dataDir+"/datasets"),
		DashboardDir: getEnvOrDefault("DASHBOARD_DIR", dataDir+"/dashboards"),
	}
}

func loadSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{
		APIKey:    os.Getenv("COHERE_API_KEY"),
		Model:     getEnvOrDefault("COHERE_MODEL", "command-r"),
		BaseURL:   getEnvOrDefault("COHERE_BASE_URL", "https://api.cohere.com/v1"),
		MaxTokens: getEnvIntOrDefault("SUMMARY_MAX_TOKENS", 120),
	}
}

func loadDashboardConfig() DashboardConfig {
	return DashboardConfig{
		CacheSize: getEnvIntOrDefault("DASHBOARD_CACHE_SIZE", 128),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Storage.DataDir == "" {
		return errors.ConfigInvalid("DATA_DIR cannot be empty")
	}
	if config.Dashboard.CacheSize < 1 {
		return errors.ConfigInvalid("DASHBOARD_CACHE_SIZE must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
