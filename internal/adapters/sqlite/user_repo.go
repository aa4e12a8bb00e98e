package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gachabot/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts the user or refreshes username/full name on conflict.
func (r *UserRepository) Upsert(ctx context.Context, user *secondary.UserRecord) error {
	languageCode := user.LanguageCode
	if languageCode == "" {
		languageCode = "en"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, full_name, language_code) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			full_name = excluded.full_name,
			updated_at = CURRENT_TIMESTAMP`,
		user.ID, nullString(user.Username), user.FullName, languageCode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*secondary.UserRecord, error) {
	var (
		username  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.UserRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, full_name, language_code, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&record.ID, &username, &record.FullName, &record.LanguageCode, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	record.Username = username.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// SetLanguage updates the preferred language for a user.
func (r *UserRepository) SetLanguage(ctx context.Context, id int64, languageCode string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET language_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		languageCode, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set user language: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}

// Ensure UserRepository implements the interface.
var _ secondary.UserRepository = (*UserRepository)(nil)
