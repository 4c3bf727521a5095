package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/store"
)

// bagColumns is the ordered list of columns selected in bag queries.
// Must match the scan order in scanBag.
const bagColumns = `id, owner_id, coffee_name, roaster, origin, process,
	roast_date, notes, status, archived_at, created_at, updated_at`

// scanBag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Bag.
func scanBag(scanner interface{ Scan(dest ...any) error }) (*domain.Bag, error) {
	var b domain.Bag

	var (
		origin     sql.NullString
		process    sql.NullString
		roastDate  sql.NullString
		notes      sql.NullString
		archivedAt sql.NullString
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&b.ID,
		&b.OwnerID,
		&b.CoffeeName,
		&b.Roaster,
		&origin,
		&process,
		&roastDate,
		&notes,
		&b.Status,
		&archivedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Origin = origin.String
	b.Process = process.String
	b.Notes = notes.String

	b.RoastDate, err = parseNullableDate(roastDate)
	if err != nil {
		return nil, err
	}
	b.ArchivedAt, err = parseNullableTime(archivedAt)
	if err != nil {
		return nil, err
	}
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBag inserts a new bag.
func (s *Store) CreateBag(ctx context.Context, b *domain.Bag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bags (id, owner_id, coffee_name, roaster, origin, process,
			roast_date, notes, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.OwnerID,
		b.CoffeeName,
		b.Roaster,
		nullString(b.Origin),
		nullString(b.Process),
		nullDateString(b.RoastDate),
		nullString(b.Notes),
		b.Status,
		nullTimeString(b.ArchivedAt),
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert bag: %w", err)
	}
	return nil
}

// GetBag retrieves a bag by id, scoped to its owner.
// Returns store.ErrNotFound when the bag does not exist or belongs to
// someone else.
func (s *Store) GetBag(ctx context.Context, id, ownerID string) (*domain.Bag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bagColumns+` FROM bags WHERE id = ? AND owner_id = ?`,
		id, ownerID)

	b, err := scanBag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBags returns the owner's bags ordered by last update, newest first,
// optionally filtered by lifecycle status.
func (s *Store) ListBags(ctx context.Context, ownerID string, filter store.BagFilter) ([]*domain.Bag, error) {
	query := `SELECT ` + bagColumns + ` FROM bags WHERE owner_id = ?`
	args := []any{ownerID}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bags []*domain.Bag
	for rows.Next() {
		b, err := scanBag(rows)
		if err != nil {
			return nil, err
		}
		bags = append(bags, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if bags == nil {
		bags = []*domain.Bag{}
	}

	return bags, nil
}

// UpdateBag writes the mutable fields of a bag, scoped to its owner.
// Returns store.ErrNotFound when no row matched.
func (s *Store) UpdateBag(ctx context.Context, b *domain.Bag) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bags
		SET coffee_name = ?, roaster = ?, origin = ?, process = ?,
			roast_date = ?, notes = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		b.CoffeeName,
		b.Roaster,
		nullString(b.Origin),
		nullString(b.Process),
		nullDateString(b.RoastDate),
		nullString(b.Notes),
		formatTime(b.UpdatedAt),
		b.ID,
		b.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update bag: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetBagStatus archives or unarchives a bag and returns the updated row.
// Returns store.ErrNotFound when the bag is not visible to the owner.
func (s *Store) SetBagStatus(ctx context.Context, id, ownerID string, status domain.BagStatus) (*domain.Bag, error) {
	now := time.Now().UTC()
	var archivedAt *time.Time
	if status == domain.BagStatusArchived {
		archivedAt = &now
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE bags
		SET status = ?, archived_at = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		status,
		nullTimeString(archivedAt),
		formatTime(now),
		id,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update bag status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetBag(ctx, id, ownerID)
}
