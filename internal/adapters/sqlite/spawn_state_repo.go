package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gachabot/internal/ports/secondary"
)

// SpawnStateRepository implements secondary.SpawnStateRepository with SQLite.
type SpawnStateRepository struct {
	db *sql.DB
}

// NewSpawnStateRepository creates a new SQLite spawn state repository.
func NewSpawnStateRepository(db *sql.DB) *SpawnStateRepository {
	return &SpawnStateRepository{db: db}
}

// Get retrieves the spawn state for a chat, or nil when the chat has never
// been seen.
func (r *SpawnStateRepository) Get(ctx context.Context, chatID int64) (*secondary.SpawnStateRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.SpawnStateRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT chat_id, current_character_id, claim_message_id, messages_since_spawn,
			messages_needed, last_character_id, created_at, updated_at
		 FROM spawn_states WHERE chat_id = ?`,
		chatID,
	).Scan(
		&record.ChatID, &record.CurrentCharacterID, &record.ClaimMessageID,
		&record.MessagesSinceSpawn, &record.MessagesNeeded, &record.LastCharacterID,
		&createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spawn state: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Put inserts or replaces the spawn state for a chat.
func (r *SpawnStateRepository) Put(ctx context.Context, state *secondary.SpawnStateRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO spawn_states (chat_id, current_character_id, claim_message_id,
			messages_since_spawn, messages_needed, last_character_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(chat_id) DO UPDATE SET
			current_character_id = excluded.current_character_id,
			claim_message_id = excluded.claim_message_id,
			messages_since_spawn = excluded.messages_since_spawn,
			messages_needed = excluded.messages_needed,
			last_character_id = excluded.last_character_id,
			updated_at = CURRENT_TIMESTAMP`,
		state.ChatID, state.CurrentCharacterID, state.ClaimMessageID,
		state.MessagesSinceSpawn, state.MessagesNeeded, state.LastCharacterID,
	)
	if err != nil {
		return fmt.Errorf("failed to put spawn state: %w", err)
	}

	return nil
}

// Delete removes the spawn state for a chat.
func (r *SpawnStateRepository) Delete(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM spawn_states WHERE chat_id = ?", chatID)
	if err != nil {
		return fmt.Errorf("failed to delete spawn state: %w", err)
	}

	return nil
}

// Ensure SpawnStateRepository implements the interface.
var _ secondary.SpawnStateRepository = (*SpawnStateRepository)(nil)
