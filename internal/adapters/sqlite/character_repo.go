// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gachabot/internal/ports/secondary"
)

// CharacterRepository implements secondary.CharacterRepository with SQLite.
type CharacterRepository struct {
	db *sql.DB
}

// NewCharacterRepository creates a new SQLite character repository.
func NewCharacterRepository(db *sql.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = "id, series_id, name, stars, gender, artist, image, image_url, anilist_id, aliases, created_at, updated_at"

// Create persists a new character.
func (r *CharacterRepository) Create(ctx context.Context, character *secondary.CharacterRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO characters (id, series_id, name, stars, gender, artist, image, image_url, anilist_id, aliases) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		character.ID,
		nullInt64(character.SeriesID),
		character.Name,
		character.Stars,
		character.Gender,
		nullString(character.Artist),
		character.Image,
		nullString(character.ImageURL),
		nullInt64(character.AnilistID),
		nullString(character.Aliases),
	)
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

// GetByID retrieves a character by its ID.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*secondary.CharacterRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+characterColumns+" FROM characters WHERE id = ?", id,
	)

	record, err := scanCharacter(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("character %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	return record, nil
}

// Update updates an existing character.
func (r *CharacterRepository) Update(ctx context.Context, character *secondary.CharacterRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE characters SET series_id = ?, name = ?, stars = ?, gender = ?, artist = ?, image = ?, image_url = ?, anilist_id = ?, aliases = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		nullInt64(character.SeriesID),
		character.Name,
		character.Stars,
		character.Gender,
		nullString(character.Artist),
		character.Image,
		nullString(character.ImageURL),
		nullInt64(character.AnilistID),
		nullString(character.Aliases),
		character.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("character %d not found", character.ID)
	}

	return nil
}

// Delete removes a character from persistence.
func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM characters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("character %d not found", id)
	}

	return nil
}

// List retrieves characters matching the given filters.
func (r *CharacterRepository) List(ctx context.Context, filters secondary.CharacterFilters) ([]*secondary.CharacterRecord, error) {
	query := "SELECT " + characterColumns + " FROM characters WHERE 1=1"
	var args []interface{}

	if filters.SeriesID != 0 {
		query += " AND series_id = ?"
		args = append(args, filters.SeriesID)
	}
	if filters.Stars != 0 {
		query += " AND stars = ?"
		args = append(args, filters.Stars)
	}
	query += " ORDER BY id ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	return collectCharacters(rows)
}

// Random retrieves one character uniformly at random, or nil when the roster
// is empty.
func (r *CharacterRepository) Random(ctx context.Context) (*secondary.CharacterRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+characterColumns+" FROM characters ORDER BY RANDOM() LIMIT 1",
	)

	record, err := scanCharacter(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random character: %w", err)
	}

	return record, nil
}

// SelectBySeriesPage retrieves one page of a series' characters ordered by ID.
func (r *CharacterRepository) SelectBySeriesPage(ctx context.Context, seriesID int64, page, perPage int) ([]*secondary.CharacterRecord, error) {
	if page < 1 {
		page = 1
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+characterColumns+" FROM characters WHERE series_id = ? ORDER BY id ASC LIMIT ? OFFSET ?",
		seriesID, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to page series characters: %w", err)
	}
	defer rows.Close()

	return collectCharacters(rows)
}

// GetNextID returns the next available character ID.
func (r *CharacterRepository) GetNextID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id), 0) FROM characters",
	).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("failed to get next character ID: %w", err)
	}

	return maxID + 1, nil
}

// SeriesExists checks if a series exists (for validation).
func (r *CharacterRepository) SeriesExists(ctx context.Context, seriesID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM series WHERE id = ?", seriesID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check series: %w", err)
	}

	return count > 0, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row scanner) (*secondary.CharacterRecord, error) {
	var (
		seriesID  sql.NullInt64
		artist    sql.NullString
		imageURL  sql.NullString
		anilistID sql.NullInt64
		aliases   sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.CharacterRecord{}
	err := row.Scan(
		&record.ID, &seriesID, &record.Name, &record.Stars, &record.Gender,
		&artist, &record.Image, &imageURL, &anilistID, &aliases,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.SeriesID = seriesID.Int64
	record.Artist = artist.String
	record.ImageURL = imageURL.String
	record.AnilistID = anilistID.Int64
	record.Aliases = aliases.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

func collectCharacters(rows *sql.Rows) ([]*secondary.CharacterRecord, error) {
	var characters []*secondary.CharacterRecord
	for rows.Next() {
		record, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, record)
	}

	return characters, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt64(n int64) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

// Ensure CharacterRepository implements the interface.
var _ secondary.CharacterRepository = (*CharacterRepository)(nil)
