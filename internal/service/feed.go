package service

import (
	"context"
	"log/slog"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/store"
	"github.com/brewlogapp/brewlog-server/internal/validation"
)

// Feed limits.
const (
	FeedDefaultLimit = 50
	FeedMaxLimit     = 200
)

// FeedService serves the shared activity feed of recent brews.
type FeedService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(st store.Store, logger *slog.Logger) *FeedService {
	return &FeedService{store: st, logger: logger}
}

// RecentBrews returns the newest brews across all users, newest first.
// Limit must be between 1 and FeedMaxLimit; callers default an absent
// limit to FeedDefaultLimit before calling.
func (s *FeedService) RecentBrews(ctx context.Context, limit int) ([]*domain.FeedBrew, error) {
	if limit < 1 || limit > FeedMaxLimit {
		var is validation.Issues
		is.Add("limit", "must be between 1 and 200")
		return nil, is.Err()
	}

	return s.store.ListFeedBrews(ctx, limit)
}
