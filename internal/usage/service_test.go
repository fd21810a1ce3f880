package usage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"autodash/domain/core"
	"autodash/domain/dataset"
	"autodash/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore fails the first few increments, then succeeds
type countingStore struct {
	mu        sync.Mutex
	failures  int
	attempts  int
	succeeded int
}

func (s *countingStore) IncrementUserStat(ctx context.Context, userID core.UserID, field string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.attempts <= s.failures {
		return errors.New("transient failure")
	}
	s.succeeded++
	return nil
}

func (s *countingStore) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts, s.succeeded
}

func (s *countingStore) CreateDataset(ctx context.Context, ds *dataset.Dataset) error { return nil }
func (s *countingStore) GetDataset(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	return nil, core.ErrDatasetNotFound
}
func (s *countingStore) UpdateDatasetStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMsg string) error {
	return nil
}
func (s *countingStore) UpdateDatasetCounts(ctx context.Context, id core.DatasetID, recordCount, fieldCount int) error {
	return nil
}
func (s *countingStore) UpsertDashboardPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, dashboardID core.DashboardID) (core.DashboardID, error) {
	return "", nil
}
func (s *countingStore) UpsertInsightPointer(ctx context.Context, datasetID core.DatasetID, userID core.UserID, hasSummary bool) error {
	return nil
}
func (s *countingStore) GetUserStats(ctx context.Context, userID core.UserID) (*ports.UserStats, error) {
	return &ports.UserStats{}, nil
}

func TestIncrementIsAsynchronous(t *testing.T) {
	store := &countingStore{}
	svc := NewService(store)

	svc.Increment(context.Background(), "user-1", ports.StatDatasetsUploaded)

	require.Eventually(t, func() bool {
		_, succeeded := store.counts()
		return succeeded == 1
	}, time.Second, 5*time.Millisecond)
}

func TestIncrementRetriesTransientFailures(t *testing.T) {
	store := &countingStore{failures: 2}
	svc := NewService(store)

	svc.Increment(context.Background(), "user-1", ports.StatDashboardsCreated)

	require.Eventually(t, func() bool {
		attempts, succeeded := store.counts()
		return attempts == 3 && succeeded == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIncrementStopsRetryingOnCancelledContext(t *testing.T) {
	store := &countingStore{failures: maxRetries}
	svc := NewService(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Increment(ctx, "user-1", ports.StatDatasetsUploaded)

	// the first attempt runs, the backoff sees the cancelled context
	require.Eventually(t, func() bool {
		attempts, _ := store.counts()
		return attempts == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(2 * baseDelay)
	attempts, succeeded := store.counts()
	assert.Equal(t, 1, attempts)
	assert.Zero(t, succeeded)
}

func TestIncrementSkipsEmptyUser(t *testing.T) {
	store := &countingStore{}
	svc := NewService(store)

	svc.Increment(context.Background(), "", ports.StatDatasetsUploaded)

	time.Sleep(50 * time.Millisecond)
	attempts, _ := store.counts()
	assert.Zero(t, attempts)
}
