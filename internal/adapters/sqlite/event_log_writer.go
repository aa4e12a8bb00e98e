package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/gachabot/internal/ports/secondary"
)

// EventLogWriter implements secondary.EventLogWriter with SQLite. Events are
// append-only; pruning is an operator concern.
type EventLogWriter struct {
	db *sql.DB
}

// NewEventLogWriter creates a new SQLite event log writer.
func NewEventLogWriter(db *sql.DB) *EventLogWriter {
	return &EventLogWriter{db: db}
}

// LogEvent appends one game event.
func (w *EventLogWriter) LogEvent(ctx context.Context, chatID, userID, characterID int64, kind secondary.EventKind) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO events (chat_id, user_id, character_id, kind) VALUES (?, ?, ?, ?)",
		chatID, userID, characterID, string(kind),
	)
	if err != nil {
		return fmt.Errorf("failed to log %s event: %w", kind, err)
	}

	return nil
}

// Ensure EventLogWriter implements the interface.
var _ secondary.EventLogWriter = (*EventLogWriter)(nil)
