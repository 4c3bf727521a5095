package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/id"
	"github.com/brewlogapp/brewlog-server/internal/store"
)

// BrewService orchestrates brew logging and the best-brew flag.
type BrewService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBrewService creates a new brew service.
func NewBrewService(st store.Store, logger *slog.Logger) *BrewService {
	return &BrewService{store: st, logger: logger}
}

// BrewInput carries the validated fields for logging a brew.
type BrewInput struct {
	Method       string
	Brewer       string
	Grinder      string
	Dose         *int
	GrindSetting *int
	WaterAmount  *int
	Rating       *float64
	Nutty        *int
	Acidity      *int
	Fruity       *int
	Floral       *int
	Sweetness    *int
	Chocolate    *int
	Notes        string
}

// CreateBrew logs a brew against one of the owner's bags.
// The bag must be visible to the owner; archived bags still accept brews.
func (s *BrewService) CreateBrew(ctx context.Context, bagID, ownerID string, input BrewInput) (*domain.Brew, error) {
	// Verify the bag before writing so an unknown bag reads as not found.
	if _, err := s.store.GetBag(ctx, bagID, ownerID); err != nil {
		return nil, err
	}

	brewID, err := id.Generate("brew")
	if err != nil {
		return nil, fmt.Errorf("generate brew id: %w", err)
	}

	brew := &domain.Brew{
		ID:           brewID,
		BagID:        bagID,
		OwnerID:      ownerID,
		Method:       strings.TrimSpace(input.Method),
		Brewer:       strings.TrimSpace(input.Brewer),
		Grinder:      strings.TrimSpace(input.Grinder),
		Dose:         input.Dose,
		GrindSetting: input.GrindSetting,
		WaterAmount:  input.WaterAmount,
		Rating:       input.Rating,
		Nutty:        input.Nutty,
		Acidity:      input.Acidity,
		Fruity:       input.Fruity,
		Floral:       input.Floral,
		Sweetness:    input.Sweetness,
		Chocolate:    input.Chocolate,
		Notes:        input.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateBrew(ctx, brew); err != nil {
		return nil, err
	}

	s.logger.Info("brew logged",
		"brew_id", brew.ID,
		"bag_id", bagID,
		"owner_id", ownerID,
		"method", brew.Method,
	)

	return brew, nil
}

// ListBrews returns a bag's brews, newest first.
func (s *BrewService) ListBrews(ctx context.Context, bagID, ownerID string) ([]*domain.Brew, error) {
	return s.store.ListBrews(ctx, bagID, ownerID)
}

// MarkBestBrew flags one brew as the bag's best, clearing any previous flag
// atomically.
func (s *BrewService) MarkBestBrew(ctx context.Context, bagID, ownerID, brewID string) (*domain.Brew, error) {
	brew, err := s.store.MarkBestBrew(ctx, bagID, ownerID, brewID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("best brew marked",
		"brew_id", brewID,
		"bag_id", bagID,
		"owner_id", ownerID,
	)

	return brew, nil
}
