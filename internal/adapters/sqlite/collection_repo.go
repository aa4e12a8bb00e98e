package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/gachabot/internal/ports/secondary"
)

// CollectionRepository implements secondary.CollectionRepository with SQLite.
type CollectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new SQLite collection repository.
func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Add appends a character to the user's collection in a chat. The position
// column preserves claim order across removals.
func (r *CollectionRepository) Add(ctx context.Context, userID, chatID, characterID int64) error {
	var nextPos int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) + 1 FROM collections WHERE user_id = ? AND chat_id = ?",
		userID, chatID,
	).Scan(&nextPos)
	if err != nil {
		return fmt.Errorf("failed to compute collection position: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO collections (user_id, chat_id, character_id, position) VALUES (?, ?, ?, ?)",
		userID, chatID, characterID, nextPos,
	)
	if err != nil {
		return fmt.Errorf("failed to add to collection: %w", err)
	}

	return nil
}

// Remove deletes a character from the user's collection in a chat.
func (r *CollectionRepository) Remove(ctx context.Context, userID, chatID, characterID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM collections WHERE user_id = ? AND chat_id = ? AND character_id = ?",
		userID, chatID, characterID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove from collection: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("character %d not in collection", characterID)
	}

	return nil
}

// List retrieves the user's collected character IDs in insertion order.
func (r *CollectionRepository) List(ctx context.Context, userID, chatID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT character_id FROM collections WHERE user_id = ? AND chat_id = ? ORDER BY position ASC",
		userID, chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Contains checks whether the user already collected the character in the chat.
func (r *CollectionRepository) Contains(ctx context.Context, userID, chatID, characterID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM collections WHERE user_id = ? AND chat_id = ? AND character_id = ?",
		userID, chatID, characterID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}

	return count > 0, nil
}

// Count returns the collection size for a user in a chat.
func (r *CollectionRepository) Count(ctx context.Context, userID, chatID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM collections WHERE user_id = ? AND chat_id = ?",
		userID, chatID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count collection: %w", err)
	}

	return count, nil
}

// Oldest returns the earliest-claimed character ID for a user in a chat, or 0
// when the collection is empty.
func (r *CollectionRepository) Oldest(ctx context.Context, userID, chatID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT character_id FROM collections WHERE user_id = ? AND chat_id = ? ORDER BY position ASC LIMIT 1",
		userID, chatID,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get oldest collected character: %w", err)
	}

	return id, nil
}

// Ensure CollectionRepository implements the interface.
var _ secondary.CollectionRepository = (*CollectionRepository)(nil)
