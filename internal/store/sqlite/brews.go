package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	"github.com/brewlogapp/brewlog-server/internal/store"
)

// brewColumns is the ordered list of columns selected in brew queries.
// Must match the scan order in scanBrew.
const brewColumns = `id, bag_id, owner_id, method, brewer, grinder,
	dose, grind_setting, water_amount, rating,
	nutty, acidity, fruity, floral, sweetness, chocolate,
	is_best, notes, created_at`

// scanBrew scans a sql.Row (or sql.Rows via its Scan method) into a domain.Brew.
func scanBrew(scanner interface{ Scan(dest ...any) error }) (*domain.Brew, error) {
	var b domain.Brew

	var (
		brewer       sql.NullString
		grinder      sql.NullString
		dose         sql.NullInt64
		grindSetting sql.NullInt64
		waterAmount  sql.NullInt64
		rating       sql.NullFloat64
		nutty        sql.NullInt64
		acidity      sql.NullInt64
		fruity       sql.NullInt64
		floral       sql.NullInt64
		sweetness    sql.NullInt64
		chocolate    sql.NullInt64
		isBest       int
		notes        sql.NullString
		createdAt    string
	)

	err := scanner.Scan(
		&b.ID,
		&b.BagID,
		&b.OwnerID,
		&b.Method,
		&brewer,
		&grinder,
		&dose,
		&grindSetting,
		&waterAmount,
		&rating,
		&nutty,
		&acidity,
		&fruity,
		&floral,
		&sweetness,
		&chocolate,
		&isBest,
		&notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.Brewer = brewer.String
	b.Grinder = grinder.String
	b.Dose = intFromNull(dose)
	b.GrindSetting = intFromNull(grindSetting)
	b.WaterAmount = intFromNull(waterAmount)
	b.Rating = floatFromNull(rating)
	b.Nutty = intFromNull(nutty)
	b.Acidity = intFromNull(acidity)
	b.Fruity = intFromNull(fruity)
	b.Floral = intFromNull(floral)
	b.Sweetness = intFromNull(sweetness)
	b.Chocolate = intFromNull(chocolate)
	b.IsBest = isBest != 0
	b.Notes = notes.String

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBrew inserts a new brew. The caller is responsible for checking that
// the bag exists and belongs to the owner.
func (s *Store) CreateBrew(ctx context.Context, b *domain.Brew) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brews (id, bag_id, owner_id, method, brewer, grinder,
			dose, grind_setting, water_amount, rating,
			nutty, acidity, fruity, floral, sweetness, chocolate,
			is_best, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.BagID,
		b.OwnerID,
		b.Method,
		nullString(b.Brewer),
		nullString(b.Grinder),
		nullInt(b.Dose),
		nullInt(b.GrindSetting),
		nullInt(b.WaterAmount),
		nullFloat(b.Rating),
		nullInt(b.Nutty),
		nullInt(b.Acidity),
		nullInt(b.Fruity),
		nullInt(b.Floral),
		nullInt(b.Sweetness),
		nullInt(b.Chocolate),
		boolToInt(b.IsBest),
		nullString(b.Notes),
		formatTime(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert brew: %w", err)
	}
	return nil
}

// ListBrews returns a bag's brews, newest first.
// Returns store.ErrNotFound when the bag is not visible to the owner.
func (s *Store) ListBrews(ctx context.Context, bagID, ownerID string) ([]*domain.Brew, error) {
	return s.listBrews(ctx, bagID, ownerID, "DESC")
}

// ListBrewsChronological returns a bag's brews, oldest first.
func (s *Store) ListBrewsChronological(ctx context.Context, bagID, ownerID string) ([]*domain.Brew, error) {
	return s.listBrews(ctx, bagID, ownerID, "ASC")
}

func (s *Store) listBrews(ctx context.Context, bagID, ownerID, order string) ([]*domain.Brew, error) {
	// Verify bag visibility first so an unknown bag reads as not found
	// rather than an empty list.
	if _, err := s.GetBag(ctx, bagID, ownerID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+brewColumns+` FROM brews WHERE bag_id = ? ORDER BY created_at `+order,
		bagID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brews []*domain.Brew
	for rows.Next() {
		b, err := scanBrew(rows)
		if err != nil {
			return nil, err
		}
		brews = append(brews, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if brews == nil {
		brews = []*domain.Brew{}
	}

	return brews, nil
}

// MarkBestBrew clears any existing best-brew flag on the bag and sets it on
// the given brew, in one transaction. Membership is verified inside the
// transaction; on any failure the previous flags are left untouched.
func (s *Store) MarkBestBrew(ctx context.Context, bagID, ownerID, brewID string) (*domain.Brew, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Write first: the clear statement takes the write lock up front, where
	// busy_timeout serializes concurrent marks. Starting with a read would
	// make the later lock upgrade fail with SQLITE_BUSY under contention.
	if _, err := tx.ExecContext(ctx,
		`UPDATE brews SET is_best = 0 WHERE bag_id = ? AND is_best = 1`,
		bagID); err != nil {
		return nil, fmt.Errorf("clear best brew: %w", err)
	}

	// The brew must belong to the bag and the bag to the owner. On a miss the
	// rollback restores any flag cleared above.
	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM brews b
		JOIN bags ON bags.id = b.bag_id
		WHERE b.id = ? AND b.bag_id = ? AND bags.owner_id = ?`,
		brewID, bagID, ownerID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE brews SET is_best = 1 WHERE id = ?`,
		brewID); err != nil {
		return nil, fmt.Errorf("set best brew: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+brewColumns+` FROM brews WHERE id = ?`, brewID)
	return scanBrew(row)
}

// BrewRollups returns brew counts and average ratings keyed by bag id for
// the owner's bags. Bags with no brews are absent from the map.
func (s *Store) BrewRollups(ctx context.Context, ownerID string) (map[string]store.BagRollup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT bag_id, COUNT(*), AVG(rating)
		FROM brews
		WHERE owner_id = ?
		GROUP BY bag_id`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rollups := make(map[string]store.BagRollup)
	for rows.Next() {
		var (
			bagID  string
			count  int
			rating sql.NullFloat64
		)
		if err := rows.Scan(&bagID, &count, &rating); err != nil {
			return nil, err
		}
		rollups[bagID] = store.BagRollup{
			BrewCount:     count,
			AverageRating: floatFromNull(rating),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rollups, nil
}

// ListFeedBrews returns the newest brews across all owners joined with the
// identifying fields of their bags.
func (s *Store) ListFeedBrews(ctx context.Context, limit int) ([]*domain.FeedBrew, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixedBrewColumns+`, bags.coffee_name, bags.roaster
		FROM brews b
		JOIN bags ON bags.id = b.bag_id
		ORDER BY b.created_at DESC
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feed []*domain.FeedBrew
	for rows.Next() {
		f, err := scanFeedBrew(rows)
		if err != nil {
			return nil, err
		}
		feed = append(feed, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if feed == nil {
		feed = []*domain.FeedBrew{}
	}

	return feed, nil
}

// prefixedBrewColumns is brewColumns qualified with the brews alias for joins.
const prefixedBrewColumns = `b.id, b.bag_id, b.owner_id, b.method, b.brewer, b.grinder,
	b.dose, b.grind_setting, b.water_amount, b.rating,
	b.nutty, b.acidity, b.fruity, b.floral, b.sweetness, b.chocolate,
	b.is_best, b.notes, b.created_at`

// scanFeedBrew scans a joined brews+bags row.
func scanFeedBrew(rows *sql.Rows) (*domain.FeedBrew, error) {
	var f domain.FeedBrew

	var (
		brewer       sql.NullString
		grinder      sql.NullString
		dose         sql.NullInt64
		grindSetting sql.NullInt64
		waterAmount  sql.NullInt64
		rating       sql.NullFloat64
		nutty        sql.NullInt64
		acidity      sql.NullInt64
		fruity       sql.NullInt64
		floral       sql.NullInt64
		sweetness    sql.NullInt64
		chocolate    sql.NullInt64
		isBest       int
		notes        sql.NullString
		createdAt    string
	)

	err := rows.Scan(
		&f.ID,
		&f.BagID,
		&f.OwnerID,
		&f.Method,
		&brewer,
		&grinder,
		&dose,
		&grindSetting,
		&waterAmount,
		&rating,
		&nutty,
		&acidity,
		&fruity,
		&floral,
		&sweetness,
		&chocolate,
		&isBest,
		&notes,
		&createdAt,
		&f.CoffeeName,
		&f.Roaster,
	)
	if err != nil {
		return nil, err
	}

	f.Brewer = brewer.String
	f.Grinder = grinder.String
	f.Dose = intFromNull(dose)
	f.GrindSetting = intFromNull(grindSetting)
	f.WaterAmount = intFromNull(waterAmount)
	f.Rating = floatFromNull(rating)
	f.Nutty = intFromNull(nutty)
	f.Acidity = intFromNull(acidity)
	f.Fruity = intFromNull(fruity)
	f.Floral = intFromNull(floral)
	f.Sweetness = intFromNull(sweetness)
	f.Chocolate = intFromNull(chocolate)
	f.IsBest = isBest != 0
	f.Notes = notes.String

	f.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
