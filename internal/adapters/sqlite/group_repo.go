package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gachabot/internal/ports/secondary"
)

// GroupRepository implements secondary.GroupRepository with SQLite.
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new SQLite group repository.
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Upsert inserts the group or refreshes title/username on conflict.
func (r *GroupRepository) Upsert(ctx context.Context, group *secondary.GroupRecord) error {
	languageCode := group.LanguageCode
	if languageCode == "" {
		languageCode = "en"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (id, title, username, language_code) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			username = excluded.username,
			updated_at = CURRENT_TIMESTAMP`,
		group.ID, group.Title, nullString(group.Username), languageCode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert group: %w", err)
	}

	return nil
}

// GetByID retrieves a group by its ID.
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*secondary.GroupRecord, error) {
	var (
		username  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.GroupRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, username, language_code, created_at, updated_at FROM groups WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Title, &username, &record.LanguageCode, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	record.Username = username.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// SetLanguage updates the language for a group.
func (r *GroupRepository) SetLanguage(ctx context.Context, id int64, languageCode string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE groups SET language_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		languageCode, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set group language: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("group %d not found", id)
	}

	return nil
}

// Ensure GroupRepository implements the interface.
var _ secondary.GroupRepository = (*GroupRepository)(nil)
