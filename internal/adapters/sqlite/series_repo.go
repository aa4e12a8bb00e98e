package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gachabot/internal/ports/secondary"
)

// SeriesRepository implements secondary.SeriesRepository with SQLite.
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new SQLite series repository.
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// Create persists a new series.
func (r *SeriesRepository) Create(ctx context.Context, series *secondary.SeriesRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO series (id, title, banner) VALUES (?, ?, ?)",
		series.ID, series.Title, series.Banner,
	)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}

	return nil
}

// GetByID retrieves a series by its ID.
func (r *SeriesRepository) GetByID(ctx context.Context, id int64) (*secondary.SeriesRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.SeriesRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, banner, created_at, updated_at FROM series WHERE id = ?", id,
	).Scan(&record.ID, &record.Title, &record.Banner, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("series %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Update updates an existing series.
func (r *SeriesRepository) Update(ctx context.Context, series *secondary.SeriesRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE series SET title = ?, banner = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		series.Title, series.Banner, series.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update series: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("series %d not found", series.ID)
	}

	return nil
}

// Delete removes a series from persistence.
func (r *SeriesRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM series WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("series %d not found", id)
	}

	return nil
}

// List retrieves all series ordered by title.
func (r *SeriesRepository) List(ctx context.Context) ([]*secondary.SeriesRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, banner, created_at, updated_at FROM series ORDER BY title ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	var series []*secondary.SeriesRecord
	for rows.Next() {
		var (
			createdAt time.Time
			updatedAt time.Time
		)

		record := &secondary.SeriesRecord{}
		err := rows.Scan(&record.ID, &record.Title, &record.Banner, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}

		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		series = append(series, record)
	}

	return series, rows.Err()
}

// GetNextID returns the next available series ID.
func (r *SeriesRepository) GetNextID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id), 0) FROM series",
	).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("failed to get next series ID: %w", err)
	}

	return maxID + 1, nil
}

// CountCharacters returns the number of characters in a series.
func (r *SeriesRepository) CountCharacters(ctx context.Context, seriesID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM characters WHERE series_id = ?", seriesID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count series characters: %w", err)
	}

	return count, nil
}

// Ensure SeriesRepository implements the interface.
var _ secondary.SeriesRepository = (*SeriesRepository)(nil)
