package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/store"
)

func TestCreateBrew_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bag := mustCreateBag(t, s, "user-1")
	dose, grind, water := 18, 24, 280
	rating := 4.5
	acidity := 4
	created := mustCreateBrew(t, s, bag, func(b *domain.Brew) {
		b.Brewer = "Hario Switch"
		b.Grinder = "Comandante C40"
		b.Dose = &dose
		b.GrindSetting = &grind
		b.WaterAmount = &water
		b.Rating = &rating
		b.Acidity = &acidity
		b.Notes = "long bloom"
	})

	brews, err := s.ListBrews(ctx, bag.ID, "user-1")
	if err != nil {
		t.Fatalf("list brews: %v", err)
	}
	if len(brews) != 1 {
		t.Fatalf("expected 1 brew, got %d", len(brews))
	}

	got := brews[0]
	if got.ID != created.ID {
		t.Errorf("id = %q, want %q", got.ID, created.ID)
	}
	if got.Dose == nil || *got.Dose != 18 {
		t.Errorf("dose = %v, want 18", got.Dose)
	}
	if got.Rating == nil || *got.Rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", got.Rating)
	}
	if got.Acidity == nil || *got.Acidity != 4 {
		t.Errorf("acidity = %v, want 4", got.Acidity)
	}
	if got.Sweetness != nil {
		t.Errorf("sweetness should be nil, got %v", got.Sweetness)
	}
	if got.Notes != "long bloom" {
		t.Errorf("notes = %q", got.Notes)
	}
}

func TestCreateBrew_ZeroValuesPersist(t *testing.T) {
	s := newTestStore(t)

	bag := mustCreateBag(t, s, "user-1")
	zero := 0
	mustCreateBrew(t, s, bag, func(b *domain.Brew) {
		b.Dose = &zero
		b.GrindSetting = &zero
	})

	brews, err := s.ListBrews(context.Background(), bag.ID, "user-1")
	if err != nil {
		t.Fatalf("list brews: %v", err)
	}
	// A recorded zero must stay distinct from "not recorded".
	if brews[0].Dose == nil || *brews[0].Dose != 0 {
		t.Errorf("dose = %v, want recorded 0", brews[0].Dose)
	}
	if brews[0].WaterAmount != nil {
		t.Errorf("waterAmount should stay nil, got %v", brews[0].WaterAmount)
	}
}

func TestListBrews_Ordering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bag := mustCreateBag(t, s, "user-1")
	now := time.Now().UTC()
	first := mustCreateBrew(t, s, bag, func(b *domain.Brew) { b.CreatedAt = now.Add(-2 * time.Hour) })
	second := mustCreateBrew(t, s, bag, func(b *domain.Brew) { b.CreatedAt = now.Add(-1 * time.Hour) })

	desc, err := s.ListBrews(ctx, bag.ID, "user-1")
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if desc[0].ID != second.ID || desc[1].ID != first.ID {
		t.Errorf("desc order wrong: %s, %s", desc[0].ID, desc[1].ID)
	}

	asc, err := s.ListBrewsChronological(ctx, bag.ID, "user-1")
	if err != nil {
		t.Fatalf("list asc: %v", err)
	}
	if asc[0].ID != first.ID || asc[1].ID != second.ID {
		t.Errorf("asc order wrong: %s, %s", asc[0].ID, asc[1].ID)
	}
}

func TestListBrews_UnknownBag(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ListBrews(context.Background(), "bag_nope", "user-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// A foreign bag reads the same as a missing one.
	bag := mustCreateBag(t, s, "user-1")
	_, err = s.ListBrews(context.Background(), bag.ID, "user-2")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestMarkBestBrew_Exclusive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bag := mustCreateBag(t, s, "user-1")
	first := mustCreateBrew(t, s, bag)
	second := mustCreateBrew(t, s, bag)

	marked, err := s.MarkBestBrew(ctx, bag.ID, "user-1", first.ID)
	if err != nil {
		t.Fatalf("mark first: %v", err)
	}
	if !marked.IsBest {
		t.Error("first brew should be marked best")
	}

	// Marking the second clears the first.
	if _, err := s.MarkBestBrew(ctx, bag.ID, "user-1", second.ID); err != nil {
		t.Fatalf("mark second: %v", err)
	}

	brews, err := s.ListBrewsChronological(ctx, bag.ID, "user-1")
	if err != nil {
		t.Fatalf("list brews: %v", err)
	}
	var bestIDs []string
	for _, b := range brews {
		if b.IsBest {
			bestIDs = append(bestIDs, b.ID)
		}
	}
	if len(bestIDs) != 1 || bestIDs[0] != second.ID {
		t.Errorf("expected only %s marked best, got %v", second.ID, bestIDs)
	}
}

func TestMarkBestBrew_CrossBagLeavesFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bagA := mustCreateBag(t, s, "user-1")
	bagB := mustCreateBag(t, s, "user-1")
	brewA := mustCreateBrew(t, s, bagA)
	brewB := mustCreateBrew(t, s, bagB)

	if _, err := s.MarkBestBrew(ctx, bagA.ID, "user-1", brewA.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	// Brew from another bag: not found, and bag A's flag survives.
	_, err := s.MarkBestBrew(ctx, bagA.ID, "user-1", brewB.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	brews, err := s.ListBrews(ctx, bagA.ID, "user-1")
	if err != nil {
		t.Fatalf("list brews: %v", err)
	}
	if !brews[0].IsBest {
		t.Error("existing best flag should be untouched after failed mark")
	}
}

func TestMarkBestBrew_ForeignOwner(t *testing.T) {
	s := newTestStore(t)

	bag := mustCreateBag(t, s, "user-1")
	brew := mustCreateBrew(t, s, bag)

	_, err := s.MarkBestBrew(context.Background(), bag.ID, "user-2", brew.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestMarkBestBrew_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bag := mustCreateBag(t, s, "user-1")
	var brews []*domain.Brew
	for range 5 {
		brews = append(brews, mustCreateBrew(t, s, bag))
	}

	// Concurrent marks must all succeed and leave exactly one winner.
	// Repeated rounds keep the write lock contended; a transaction that
	// starts with a read would surface SQLITE_BUSY here.
	for range 10 {
		var wg sync.WaitGroup
		for _, b := range brews {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.MarkBestBrew(ctx, bag.ID, "user-1", b.ID); err != nil {
					t.Errorf("concurrent mark: %v", err)
				}
			}()
		}
		wg.Wait()
	}

	all, err := s.ListBrews(ctx, bag.ID, "user-1")
	if err != nil {
		t.Fatalf("list brews: %v", err)
	}
	var best int
	for _, b := range all {
		if b.IsBest {
			best++
		}
	}
	if best != 1 {
		t.Errorf("expected exactly 1 best brew after concurrent marks, got %d", best)
	}
}

func TestBrewRollups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bagA := mustCreateBag(t, s, "user-1")
	bagB := mustCreateBag(t, s, "user-1")
	empty := mustCreateBag(t, s, "user-1")

	r1, r2 := 3.6, 3.4
	mustCreateBrew(t, s, bagA, func(b *domain.Brew) { b.Rating = &r1 })
	mustCreateBrew(t, s, bagA, func(b *domain.Brew) { b.Rating = &r2 })
	mustCreateBrew(t, s, bagA)
	mustCreateBrew(t, s, bagB)

	rollups, err := s.BrewRollups(ctx, "user-1")
	if err != nil {
		t.Fatalf("rollups: %v", err)
	}

	a := rollups[bagA.ID]
	if a.BrewCount != 3 {
		t.Errorf("bag A count = %d, want 3", a.BrewCount)
	}
	// AVG ignores NULL ratings.
	if a.AverageRating == nil || *a.AverageRating != 3.5 {
		t.Errorf("bag A avg = %v, want 3.5", a.AverageRating)
	}

	b := rollups[bagB.ID]
	if b.BrewCount != 1 {
		t.Errorf("bag B count = %d, want 1", b.BrewCount)
	}
	if b.AverageRating != nil {
		t.Errorf("bag B avg should be nil, got %v", b.AverageRating)
	}

	if _, ok := rollups[empty.ID]; ok {
		t.Error("bag with no brews should be absent from rollups")
	}
}

func TestListFeedBrews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bagA := mustCreateBag(t, s, "user-1")
	bagB := mustCreateBag(t, s, "user-2", func(b *domain.Bag) {
		b.CoffeeName = "La Palma"
		b.Roaster = "September"
	})

	now := time.Now().UTC()
	older := mustCreateBrew(t, s, bagA, func(b *domain.Brew) { b.CreatedAt = now.Add(-2 * time.Hour) })
	newer := mustCreateBrew(t, s, bagB, func(b *domain.Brew) { b.CreatedAt = now.Add(-1 * time.Hour) })

	feed, err := s.ListFeedBrews(ctx, 50)
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 feed entries, got %d", len(feed))
	}

	// Newest first, across owners, with bag identity joined in.
	if feed[0].ID != newer.ID || feed[1].ID != older.ID {
		t.Errorf("feed order wrong: %s, %s", feed[0].ID, feed[1].ID)
	}
	if feed[0].CoffeeName != "La Palma" || feed[0].Roaster != "September" {
		t.Errorf("bag identity not joined: %q %q", feed[0].CoffeeName, feed[0].Roaster)
	}

	limited, err := s.ListFeedBrews(ctx, 1)
	if err != nil {
		t.Fatalf("list feed limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer.ID {
		t.Errorf("limit not applied: %v", limited)
	}
}
