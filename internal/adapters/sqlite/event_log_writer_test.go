package sqlite_test

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/gachabot/internal/adapters/sqlite"
	"github.com/example/gachabot/internal/ports/secondary"
)

func TestEventLogWriter_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	writer := sqlite.NewEventLogWriter(db)
	ctx := context.Background()

	err := writer.LogEvent(ctx, -1000, 100, 7, secondary.EventClaim)
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var kind string
	var userID int64
	err = db.QueryRow("SELECT kind, user_id FROM events WHERE chat_id = -1000").Scan(&kind, &userID)
	if err != nil {
		t.Fatalf("failed to read event back: %v", err)
	}
	if kind != "claim" {
		t.Errorf("expected kind 'claim', got '%s'", kind)
	}
	if userID != 100 {
		t.Errorf("expected user 100, got %d", userID)
	}
}

func TestEventLogWriter_LogEvent_ZeroActor(t *testing.T) {
	db := setupTestDB(t)
	writer := sqlite.NewEventLogWriter(db)
	ctx := context.Background()

	// Escapes have no claiming user
	err := writer.LogEvent(ctx, -1000, 0, 7, secondary.EventEscape)
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}
}

func TestEventLogWriter_LogEvent_UnknownKind(t *testing.T) {
	db := setupTestDB(t)
	writer := sqlite.NewEventLogWriter(db)
	ctx := context.Background()

	// The CHECK constraint rejects kinds outside the known set
	err := writer.LogEvent(ctx, -1000, 100, 7, secondary.EventKind("mystery"))
	if err == nil {
		t.Error("expected error for unknown event kind")
	}
}
