// Package usage tracks per-user activity counters through the metadata
// store. Tracking is best-effort: failures are logged and never propagate to
// the operation being counted.
package usage

import (
	"context"
	"time"

	"autodash/domain/core"
	"autodash/internal"
	"autodash/ports"
)

const (
	maxRetries = 3
	baseDelay  = 100 * time.Millisecond
)

// Service increments user stat counters asynchronously with bounded retry
type Service struct {
	metadata ports.MetadataStore
}

// NewService creates a usage service
func NewService(metadata ports.MetadataStore) *Service {
	return &Service{metadata: metadata}
}

// Increment adds one to a user's counter without blocking the caller.
// Cancelling ctx abandons any pending retries.
func (s *Service) Increment(ctx context.Context, userID core.UserID, field string) {
	if userID == "" {
		internal.DefaultLogger.Debug("[UsageService] skipping %s increment: no user", field)
		return
	}

	go func() {
		if err := s.incrementWithRetry(ctx, userID, field); err != nil {
			internal.DefaultLogger.Warn("[UsageService] failed to increment %s for user %s: %v", field, userID, err)
		}
	}()
}

func (s *Service) incrementWithRetry(ctx context.Context, userID core.UserID, field string) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = s.metadata.IncrementUserStat(ctx, userID, field, 1); err == nil {
			return nil
		}
		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt+1) * baseDelay):
			}
		}
	}
	return err
}
