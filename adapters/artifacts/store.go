// Package artifacts stores derived analysis documents as JSON files on the
// local filesystem. Per-dataset documents live under datasetDir/<dataset_id>/
// (the uploaded file itself sits in the raw/ subdirectory there), dashboard
// documents under their own directory keyed by dashboard id.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"autodash/domain/core"
	"autodash/domain/dashboard"
	"autodash/domain/insight"
	"autodash/domain/profile"
	"autodash/domain/schema"
)

const (
	schemaFile   = "schema.json"
	profileFile  = "profile.json"
	insightsFile = "insights.json"
)

// FileStore is a JSON-file artifact store
type FileStore struct {
	datasetDir   string
	dashboardDir string
}

// NewFileStore creates a local artifact store rooted at the given directories
func NewFileStore(datasetDir, dashboardDir string) *FileStore {
	return &FileStore{datasetDir: datasetDir, dashboardDir: dashboardDir}
}

func (s *FileStore) SaveSchema(ctx context.Context, id core.DatasetID, doc *schema.Schema) error {
	return s.writeDoc(s.datasetPath(id, schemaFile), doc)
}

func (s *FileStore) LoadSchema(ctx context.Context, id core.DatasetID) (*schema.Schema, error) {
	var doc schema.Schema
	if err := s.readDoc(s.datasetPath(id, schemaFile), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) SaveProfile(ctx context.Context, id core.DatasetID, doc *profile.Profile) error {
	return s.writeDoc(s.datasetPath(id, profileFile), doc)
}

func (s *FileStore) LoadProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	var doc profile.Profile
	if err := s.readDoc(s.datasetPath(id, profileFile), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) SaveInsights(ctx context.Context, id core.DatasetID, doc *insight.Report) error {
	return s.writeDoc(s.datasetPath(id, insightsFile), doc)
}

func (s *FileStore) LoadInsights(ctx context.Context, id core.DatasetID) (*insight.Report, error) {
	var doc insight.Report
	if err := s.readDoc(s.datasetPath(id, insightsFile), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) SaveDashboard(ctx context.Context, d *dashboard.Dashboard) error {
	return s.writeDoc(s.dashboardPath(d.DashboardID), d)
}

func (s *FileStore) LoadDashboard(ctx context.Context, id core.DashboardID) (*dashboard.Dashboard, error) {
	var doc dashboard.Dashboard
	if err := s.readDoc(s.dashboardPath(id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) DeleteDashboard(ctx context.Context, id core.DashboardID) error {
	err := os.Remove(s.dashboardPath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting dashboard document: %w", err)
	}
	return nil
}

func (s *FileStore) datasetPath(id core.DatasetID, name string) string {
	return filepath.Join(s.datasetDir, id.String(), name)
}

func (s *FileStore) dashboardPath(id core.DashboardID) string {
	return filepath.Join(s.dashboardDir, id.String()+".json")
}

func (s *FileStore) writeDoc(path string, doc interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	// write then rename so readers never see a partial document
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publishing artifact: %w", err)
	}
	return nil
}

func (s *FileStore) readDoc(path string, doc interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrMissingArtifact, filepath.Base(path))
		}
		return fmt.Errorf("reading artifact: %w", err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("decoding artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
