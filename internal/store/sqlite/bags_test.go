package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/store"
)

func TestCreateAndGetBag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateBag(t, s, "user-1", func(b *domain.Bag) {
		b.Notes = "first bag of the season"
	})

	got, err := s.GetBag(ctx, created.ID, "user-1")
	if err != nil {
		t.Fatalf("get bag: %v", err)
	}
	if got.CoffeeName != created.CoffeeName {
		t.Errorf("coffee name = %q, want %q", got.CoffeeName, created.CoffeeName)
	}
	if got.Notes != "first bag of the season" {
		t.Errorf("notes = %q", got.Notes)
	}
	if got.RoastDate == nil {
		t.Fatal("roast date should round-trip")
	}
	if !got.RoastDate.Equal(*created.RoastDate) {
		t.Errorf("roast date = %v, want %v", got.RoastDate, created.RoastDate)
	}
	if got.Status != domain.BagStatusActive {
		t.Errorf("status = %q, want ACTIVE", got.Status)
	}
}

func TestGetBag_OwnershipScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateBag(t, s, "user-1")

	// Another owner sees not found, not forbidden.
	_, err := s.GetBag(ctx, created.ID, "user-2")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got %v", err)
	}

	_, err = s.GetBag(ctx, "bag_nonexistent", "user-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestListBags_OrderAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	older := mustCreateBag(t, s, "user-1", func(b *domain.Bag) {
		b.CreatedAt = now.Add(-2 * time.Hour)
		b.UpdatedAt = now.Add(-2 * time.Hour)
	})
	newer := mustCreateBag(t, s, "user-1", func(b *domain.Bag) {
		b.CreatedAt = now.Add(-1 * time.Hour)
		b.UpdatedAt = now.Add(-1 * time.Hour)
	})
	mustCreateBag(t, s, "user-2")

	bags, err := s.ListBags(ctx, "user-1", store.BagFilter{})
	if err != nil {
		t.Fatalf("list bags: %v", err)
	}
	if len(bags) != 2 {
		t.Fatalf("expected 2 bags, got %d", len(bags))
	}
	// Ordered by last update, newest first.
	if bags[0].ID != newer.ID || bags[1].ID != older.ID {
		t.Errorf("bags not in recently-updated order: %s, %s", bags[0].ID, bags[1].ID)
	}

	// Archive one and filter.
	if _, err := s.SetBagStatus(ctx, older.ID, "user-1", domain.BagStatusArchived); err != nil {
		t.Fatalf("archive bag: %v", err)
	}

	active, err := s.ListBags(ctx, "user-1", store.BagFilter{Status: domain.BagStatusActive})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != newer.ID {
		t.Errorf("active filter returned wrong bags: %v", active)
	}

	archived, err := s.ListBags(ctx, "user-1", store.BagFilter{Status: domain.BagStatusArchived})
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != older.ID {
		t.Errorf("archived filter returned wrong bags: %v", archived)
	}
}

func TestListBags_EmptyIsSlice(t *testing.T) {
	s := newTestStore(t)

	bags, err := s.ListBags(context.Background(), "user-none", store.BagFilter{})
	if err != nil {
		t.Fatalf("list bags: %v", err)
	}
	if bags == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestUpdateBag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateBag(t, s, "user-1")

	created.CoffeeName = "Gesha Village"
	created.Roaster = "Tim Wendelboe"
	created.RoastDate = nil
	created.UpdatedAt = time.Now().UTC()
	if err := s.UpdateBag(ctx, created); err != nil {
		t.Fatalf("update bag: %v", err)
	}

	got, err := s.GetBag(ctx, created.ID, "user-1")
	if err != nil {
		t.Fatalf("get bag: %v", err)
	}
	if got.CoffeeName != "Gesha Village" {
		t.Errorf("coffee name = %q", got.CoffeeName)
	}
	if got.RoastDate != nil {
		t.Errorf("roast date should be cleared, got %v", got.RoastDate)
	}
}

func TestUpdateBag_ForeignOwner(t *testing.T) {
	s := newTestStore(t)

	created := mustCreateBag(t, s, "user-1")
	created.OwnerID = "user-2"
	err := s.UpdateBag(context.Background(), created)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetBagStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateBag(t, s, "user-1")

	archived, err := s.SetBagStatus(ctx, created.ID, "user-1", domain.BagStatusArchived)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.Status != domain.BagStatusArchived {
		t.Errorf("status = %q, want ARCHIVED", archived.Status)
	}
	if archived.ArchivedAt == nil {
		t.Error("archivedAt should be set")
	}

	restored, err := s.SetBagStatus(ctx, created.ID, "user-1", domain.BagStatusActive)
	if err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	if restored.Status != domain.BagStatusActive {
		t.Errorf("status = %q, want ACTIVE", restored.Status)
	}
	if restored.ArchivedAt != nil {
		t.Error("archivedAt should be cleared on unarchive")
	}

	_, err = s.SetBagStatus(ctx, created.ID, "user-2", domain.BagStatusArchived)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got %v", err)
	}
}
