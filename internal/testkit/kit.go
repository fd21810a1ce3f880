// Package testkit provides in-memory store fakes and dataset fixtures for
// exercising the analysis pipeline without PostgreSQL or the filesystem.
package testkit

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"autodash/adapters/storage"
	"autodash/domain/core"
	"autodash/domain/dashboard"
	"autodash/domain/dataset"
	"autodash/domain/insight"
	"autodash/domain/profile"
	"autodash/domain/schema"
	"autodash/ports"
)

// Kit bundles the in-memory fakes a pipeline test needs
type Kit struct {
	Metadata  *MemoryMetadataStore
	Artifacts *MemoryArtifactStore
	Datasets  *MemoryDatasetStore
}

// NewKit creates a fresh set of empty in-memory stores
func NewKit() *Kit {
	return &Kit{
		Metadata:  NewMemoryMetadataStore(),
		Artifacts: NewMemoryArtifactStore(),
		Datasets:  NewMemoryDatasetStore(),
	}
}

// MemoryDatasetStore holds uploaded files in memory and parses CSV content
// the same way the file-backed store does.
type MemoryDatasetStore struct {
	mu        sync.Mutex
	filenames map[core.DatasetID]string
	contents  map[core.DatasetID][]byte
	tables    map[core.DatasetID]*dataset.Table
}

func NewMemoryDatasetStore() *MemoryDatasetStore {
	return &MemoryDatasetStore{
		filenames: make(map[core.DatasetID]string),
		contents:  make(map[core.DatasetID][]byte),
		tables:    make(map[core.DatasetID]*dataset.Table),
	}
}

// SetTable registers a pre-built table for a dataset id, bypassing parsing
func (s *MemoryDatasetStore) SetTable(id core.DatasetID, t *dataset.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[id] = t
	s.filenames[id] = "fixture.csv"
}

func (s *MemoryDatasetStore) Save(ctx context.Context, id core.DatasetID, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filenames[id] = filename
	s.contents[id] = data
	return "memory://" + id.String() + "/" + filename, nil
}

func (s *MemoryDatasetStore) ReadTable(ctx context.Context, id core.DatasetID) (*dataset.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[id]; ok {
		return t, nil
	}
	filename, ok := s.filenames[id]
	if !ok {
		return nil, core.NewNotFoundError("dataset", id.String())
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, core.NewUnsupportedFormatError(filename)
	}

	records, err := csv.NewReader(bytes.NewReader(s.contents[id])).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}
	return storage.TableFromRecords(records[0], records[1:]), nil
}

// MemoryArtifactStore keeps derived documents in memory. Documents round-trip
// through JSON on save and load so tests observe the same serialization
// behavior as the file-backed store.
type MemoryArtifactStore struct {
	mu         sync.Mutex
	schemas    map[core.DatasetID][]byte
	profiles   map[core.DatasetID][]byte
	insights   map[core.DatasetID][]byte
	dashboards map[core.DashboardID][]byte
}

func NewMemoryArtifactStore() *MemoryArtifactStore {
	return &MemoryArtifactStore{
		schemas:    make(map[core.DatasetID][]byte),
		profiles:   make(map[core.DatasetID][]byte),
		insights:   make(map[core.DatasetID][]byte),
		dashboards: make(map[core.DashboardID][]byte),
	}
}

func (s *MemoryArtifactStore) SaveSchema(ctx context.Context, id core.DatasetID, doc *schema.Schema) error {
	return saveDoc(&s.mu, s.schemas, id, doc)
}

func (s *MemoryArtifactStore) LoadSchema(ctx context.Context, id core.DatasetID) (*schema.Schema, error) {
	var doc schema.Schema
	if err := loadDoc(&s.mu, s.schemas, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MemoryArtifactStore) SaveProfile(ctx context.Context, id core.DatasetID, doc *profile.Profile) error {
	return saveDoc(&s.mu, s.profiles, id, doc)
}

func (s *MemoryArtifactStore) LoadProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	var doc profile.Profile
	if err := loadDoc(&s.mu, s.profiles, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MemoryArtifactStore) SaveInsights(ctx context.Context, id core.DatasetID, doc *insight.Report) error {
	return saveDoc(&s.mu, s.insights, id, doc)
}

func (s *MemoryArtifactStore) LoadInsights(ctx context.Context, id core.DatasetID) (*insight.Report, error) {
	var doc insight.Report
	if err := loadDoc(&s.mu, s.insights, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MemoryArtifactStore) SaveDashboard(ctx context.Context, d *dashboard.Dashboard) error {
	return saveDoc(&s.mu, s.dashboards, d.DashboardID, d)
}

func (s *MemoryArtifactStore) LoadDashboard(ctx context.Context, id core.DashboardID) (*dashboard.Dashboard, error) {
	var doc dashboard.Dashboard
	if err := loadDoc(&s.mu, s.dashboards, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MemoryArtifactStore) DeleteDashboard(ctx context.Context, id core.DashboardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dashboards, id)
	return nil
}

// HasDashboard reports whether a dashboard document is currently stored
func (s *MemoryArtifactStore) HasDashboard(id core.DashboardID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.dashboards[id]
	return ok
}

func saveDoc[K comparable](mu *sync.Mutex, docs map[K][]byte, key K, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	docs[key] = data
	return nil
}

func loadDoc[K comparable](mu *sync.Mutex, docs map[K][]byte, key K, doc interface{}) error {
	mu.Lock()
	data, ok := docs[key]
	mu.Unlock()
	if !ok {
		return core.ErrMissingArtifact
	}
	return json.Unmarshal(data, doc)
}

// MemoryMetadataStore implements the metadata store on maps
type MemoryMetadataStore struct {
	mu                sync.Mutex
	datasets          map[core.DatasetID]*dataset.Dataset
	dashboardPointers map[string]core.DashboardID
	insightPointers   map[string]bool
	stats             map[core.UserID]*ports.UserStats

	// FailGetDataset, when set, is returned by every GetDataset call to
	// simulate a metadata store outage
	FailGetDataset error
}

func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{
		datasets:          make(map[core.DatasetID]*dataset.Dataset),
		dashboardPointers: make(map[string]core.DashboardID),
		insightPointers:   make(map[string]bool),
		stats:             make(map[core.UserID]*ports.UserStats),
	}
}

func pointerKey(datasetID core.DatasetID, userID core.UserID) string {
	return datasetID.String() + "/" + userID.String()
}

func (s *MemoryMetadataStore) CreateDataset(ctx context.Context, ds *dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *ds
	s.datasets[ds.ID] = &copied
	return nil
}

func (s *MemoryMetadataStore) GetDataset(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailGetDataset != nil {
		return nil, s.FailGetDataset
	}
	ds, ok := s.datasets[id]
	if !ok {
		return nil, core.NewNotFoundError("dataset", id.String())
	}
	copied := *ds
	return &copied, nil
}

func (s *MemoryMetadataStore) UpdateDatasetStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.datasets[id]
	if !ok {
		return core.NewNotFoundError("dataset", id.String())
	}
	ds.Status = status
	ds.ErrorMessage = errorMsg
	ds.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryMetadataStore) UpdateDatasetCounts(ctx context.Context, id core.DatasetID, recordCount, fieldCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.datasets[id]
	if !ok {
		return core.NewNotFoundError("dataset", id.String())
	}
	ds.RecordCount = recordCount
	ds.FieldCount = fieldCount
	ds.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryMetadataStore) UpsertDashboardPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, dashboardID core.DashboardID) (core.DashboardID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pointerKey(datasetID, userID)
	prev := s.dashboardPointers[key]
	s.dashboardPointers[key] = dashboardID
	return prev, nil
}

// DashboardPointer returns the current pointer for the dataset/user pair
func (s *MemoryMetadataStore) DashboardPointer(datasetID core.DatasetID, userID core.UserID) core.DashboardID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dashboardPointers[pointerKey(datasetID, userID)]
}

// InsightPointer reports whether an insight pointer exists for the pair
func (s *MemoryMetadataStore) InsightPointer(datasetID core.DatasetID, userID core.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.insightPointers[pointerKey(datasetID, userID)]
	return ok
}

func (s *MemoryMetadataStore) UpsertInsightPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, hasSummary bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insightPointers[pointerKey(datasetID, userID)] = hasSummary
	return nil
}

func (s *MemoryMetadataStore) IncrementUserStat(ctx context.Context, userID core.UserID, field string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[userID]
	if !ok {
		stats = &ports.UserStats{}
		s.stats[userID] = stats
	}
	switch field {
	case ports.StatDatasetsUploaded:
		stats.DatasetsUploaded += delta
	case ports.StatDashboardsCreated:
		stats.DashboardsCreated += delta
	case ports.StatInsightsGenerated:
		stats.InsightsGenerated += delta
	default:
		return fmt.Errorf("unknown user stat field: %s", field)
	}
	return nil
}

func (s *MemoryMetadataStore) GetUserStats(ctx context.Context, userID core.UserID) (*ports.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[userID]
	if !ok {
		return &ports.UserStats{}, nil
	}
	copied := *stats
	return &copied, nil
}

// StubSummarizer returns a canned summary or error and records its calls
type StubSummarizer struct {
	mu      sync.Mutex
	Summary string
	Err     error
	Calls   [][]string
}

func (s *StubSummarizer) Summarize(ctx context.Context, messages []string) (*string, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, append([]string(nil), messages...))
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Summary == "" {
		return nil, nil
	}
	summary := s.Summary
	return &summary, nil
}
