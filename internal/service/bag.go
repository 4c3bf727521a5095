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

// BagService orchestrates bag CRUD and lifecycle operations.
type BagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBagService creates a new bag service.
func NewBagService(st store.Store, logger *slog.Logger) *BagService {
	return &BagService{store: st, logger: logger}
}

// BagInput carries the validated fields for creating or updating a bag.
type BagInput struct {
	CoffeeName string
	Roaster    string
	Origin     string
	Process    string
	RoastDate  *time.Time
	Notes      string
}

// BagWithRollup pairs a bag with its brew summary for listings.
type BagWithRollup struct {
	Bag           *domain.Bag
	BrewCount     int
	AverageRating *float64
}

// CreateBag creates a new active bag for the owner.
func (s *BagService) CreateBag(ctx context.Context, ownerID string, input BagInput) (*domain.Bag, error) {
	bagID, err := id.Generate("bag")
	if err != nil {
		return nil, fmt.Errorf("generate bag id: %w", err)
	}

	now := time.Now().UTC()
	bag := &domain.Bag{
		ID:         bagID,
		OwnerID:    ownerID,
		CoffeeName: strings.TrimSpace(input.CoffeeName),
		Roaster:    strings.TrimSpace(input.Roaster),
		Origin:     strings.TrimSpace(input.Origin),
		Process:    strings.TrimSpace(input.Process),
		RoastDate:  input.RoastDate,
		Notes:      input.Notes,
		Status:     domain.BagStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateBag(ctx, bag); err != nil {
		return nil, err
	}

	s.logger.Info("bag created",
		"bag_id", bag.ID,
		"owner_id", ownerID,
		"coffee", bag.CoffeeName,
	)

	return bag, nil
}

// GetBag returns one of the owner's bags.
func (s *BagService) GetBag(ctx context.Context, bagID, ownerID string) (*domain.Bag, error) {
	return s.store.GetBag(ctx, bagID, ownerID)
}

// ListBags returns the owner's bags, newest first, with brew rollups.
// Status narrows the listing when non-empty.
func (s *BagService) ListBags(ctx context.Context, ownerID string, status domain.BagStatus) ([]*BagWithRollup, error) {
	bags, err := s.store.ListBags(ctx, ownerID, store.BagFilter{Status: status})
	if err != nil {
		return nil, err
	}

	rollups, err := s.store.BrewRollups(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]*BagWithRollup, 0, len(bags))
	for _, b := range bags {
		r := rollups[b.ID]
		out = append(out, &BagWithRollup{
			Bag:           b,
			BrewCount:     r.BrewCount,
			AverageRating: r.AverageRating,
		})
	}
	return out, nil
}

// UpdateBag replaces the descriptive fields of one of the owner's bags.
func (s *BagService) UpdateBag(ctx context.Context, bagID, ownerID string, input BagInput) (*domain.Bag, error) {
	bag, err := s.store.GetBag(ctx, bagID, ownerID)
	if err != nil {
		return nil, err
	}

	bag.CoffeeName = strings.TrimSpace(input.CoffeeName)
	bag.Roaster = strings.TrimSpace(input.Roaster)
	bag.Origin = strings.TrimSpace(input.Origin)
	bag.Process = strings.TrimSpace(input.Process)
	bag.RoastDate = input.RoastDate
	bag.Notes = input.Notes
	bag.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateBag(ctx, bag); err != nil {
		return nil, err
	}

	return bag, nil
}

// ArchiveBag moves a bag out of the active rotation. Idempotent.
func (s *BagService) ArchiveBag(ctx context.Context, bagID, ownerID string) (*domain.Bag, error) {
	bag, err := s.store.SetBagStatus(ctx, bagID, ownerID, domain.BagStatusArchived)
	if err != nil {
		return nil, err
	}
	s.logger.Info("bag archived", "bag_id", bagID, "owner_id", ownerID)
	return bag, nil
}

// UnarchiveBag returns an archived bag to the active rotation. Idempotent.
func (s *BagService) UnarchiveBag(ctx context.Context, bagID, ownerID string) (*domain.Bag, error) {
	return s.store.SetBagStatus(ctx, bagID, ownerID, domain.BagStatusActive)
}
