package service

import (
	"context"
	"log/slog"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/store"
)

// AnalyticsService derives per-bag statistics from brew history.
type AnalyticsService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(st store.Store, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{store: st, logger: logger}
}

// BagAnalytics computes the derived-statistics report for one of the
// owner's bags. Works for archived bags too.
func (s *AnalyticsService) BagAnalytics(ctx context.Context, bagID, ownerID string) (*domain.BagAnalytics, error) {
	brews, err := s.store.ListBrewsChronological(ctx, bagID, ownerID)
	if err != nil {
		return nil, err
	}

	a := domain.ComputeAnalytics(bagID, brews)
	return &a, nil
}
