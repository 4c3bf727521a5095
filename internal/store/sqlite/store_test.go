package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	for _, table := range []string{"bags", "brews"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s1, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	// Reopening runs the schema again; it must not fail.
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

// mustCreateBag inserts a bag with sensible defaults for tests.
func mustCreateBag(t *testing.T, s *Store, ownerID string, mutate ...func(*domain.Bag)) *domain.Bag {
	t.Helper()
	now := time.Now().UTC()
	roast := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := &domain.Bag{
		ID:         id.MustGenerate("bag"),
		OwnerID:    ownerID,
		CoffeeName: "Kiamabara AA",
		Roaster:    "Roundhill",
		Origin:     "Kenya",
		Process:    "Washed",
		RoastDate:  &roast,
		Status:     domain.BagStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, m := range mutate {
		m(b)
	}
	if err := s.CreateBag(context.Background(), b); err != nil {
		t.Fatalf("create bag: %v", err)
	}
	return b
}

// mustCreateBrew inserts a brew with sensible defaults for tests.
func mustCreateBrew(t *testing.T, s *Store, bag *domain.Bag, mutate ...func(*domain.Brew)) *domain.Brew {
	t.Helper()
	b := &domain.Brew{
		ID:        id.MustGenerate("brew"),
		BagID:     bag.ID,
		OwnerID:   bag.OwnerID,
		Method:    "V60",
		CreatedAt: time.Now().UTC(),
	}
	for _, m := range mutate {
		m(b)
	}
	if err := s.CreateBrew(context.Background(), b); err != nil {
		t.Fatalf("create brew: %v", err)
	}
	return b
}
