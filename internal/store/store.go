// Package store defines the persistence interface the service layer depends
// on. The sqlite subpackage provides the implementation.
package store

import (
	"context"
	"io"

	"github.com/brewlogapp/brewlog-server/internal/domain"
)

// BagFilter narrows a bag listing.
type BagFilter struct {
	// Status limits results to one lifecycle state. Empty means all.
	Status domain.BagStatus
}

// BagRollup is the per-bag brew summary attached to bag listings.
type BagRollup struct {
	BrewCount     int
	AverageRating *float64
}

// Store is the persistence interface.
//
// Every read and write that targets a specific record takes the owner id and
// treats records belonging to other owners as nonexistent.
type Store interface {
	io.Closer

	// Bags.
	CreateBag(ctx context.Context, bag *domain.Bag) error
	GetBag(ctx context.Context, id, ownerID string) (*domain.Bag, error)
	ListBags(ctx context.Context, ownerID string, filter BagFilter) ([]*domain.Bag, error)
	UpdateBag(ctx context.Context, bag *domain.Bag) error
	SetBagStatus(ctx context.Context, id, ownerID string, status domain.BagStatus) (*domain.Bag, error)

	// Brews.
	CreateBrew(ctx context.Context, brew *domain.Brew) error
	ListBrews(ctx context.Context, bagID, ownerID string) ([]*domain.Brew, error)
	ListBrewsChronological(ctx context.Context, bagID, ownerID string) ([]*domain.Brew, error)

	// MarkBestBrew atomically clears any previous best-brew flag on the bag
	// and sets it on the given brew. The brew must belong to the bag and the
	// bag to the owner, otherwise ErrNotFound and no flags change.
	MarkBestBrew(ctx context.Context, bagID, ownerID, brewID string) (*domain.Brew, error)

	// BrewRollups returns brew counts and average ratings keyed by bag id
	// for all of the owner's bags that have brews.
	BrewRollups(ctx context.Context, ownerID string) (map[string]BagRollup, error)

	// ListFeedBrews returns the newest brews across all owners, joined with
	// bag identity, newest first.
	ListFeedBrews(ctx context.Context, limit int) ([]*domain.FeedBrew, error)
}
