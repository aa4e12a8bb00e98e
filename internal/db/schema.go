package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh gachabot installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests use this schema via GetSchemaSQL(): if repository code references a
// column that doesn't exist here, tests fail immediately with "no such
// column" instead of drifting against production.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Series (franchise a character belongs to)
CREATE TABLE IF NOT EXISTS series (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	banner BLOB,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Characters (collectible records)
CREATE TABLE IF NOT EXISTS characters (
	id INTEGER PRIMARY KEY,
	series_id INTEGER,
	name TEXT NOT NULL,
	stars INTEGER NOT NULL DEFAULT 1 CHECK(stars BETWEEN 1 AND 5),
	gender TEXT NOT NULL DEFAULT 'other',
	artist TEXT,
	image BLOB,
	image_url TEXT,
	anilist_id INTEGER,
	aliases TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (series_id) REFERENCES series(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_characters_series ON characters(series_id);
CREATE INDEX IF NOT EXISTS idx_characters_anilist ON characters(anilist_id);

-- Users (anyone the bot has seen send a message)
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT,
	full_name TEXT NOT NULL DEFAULT '',
	language_code TEXT NOT NULL DEFAULT 'en',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Groups (chats the game runs in)
CREATE TABLE IF NOT EXISTS groups (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	username TEXT,
	language_code TEXT NOT NULL DEFAULT 'en',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Spawn state (one row per group chat; claim window bookkeeping)
CREATE TABLE IF NOT EXISTS spawn_states (
	chat_id INTEGER PRIMARY KEY,
	current_character_id INTEGER NOT NULL DEFAULT 0,
	claim_message_id INTEGER NOT NULL DEFAULT 0,
	messages_since_spawn INTEGER NOT NULL DEFAULT 0,
	messages_needed INTEGER NOT NULL DEFAULT 0,
	last_character_id INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Collections (claimed characters per user per chat)
CREATE TABLE IF NOT EXISTS collections (
	user_id INTEGER NOT NULL,
	chat_id INTEGER NOT NULL,
	character_id INTEGER NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, chat_id, character_id),
	FOREIGN KEY (character_id) REFERENCES characters(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_collections_chat ON collections(chat_id);

-- Events (append-only game audit trail)
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chat_id INTEGER NOT NULL,
	user_id INTEGER NOT NULL DEFAULT 0,
	character_id INTEGER NOT NULL DEFAULT 0,
	kind TEXT NOT NULL CHECK(kind IN ('spawn', 'claim', 'escape', 'cheat', 'swap')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_events_chat ON events(chat_id);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables and runs pending migrations.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := RunMigrations(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// TableExists checks whether a table is present in the database.
func TableExists(database *sql.DB, name string) (bool, error) {
	var count int
	err := database.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	return count > 0, nil
}
