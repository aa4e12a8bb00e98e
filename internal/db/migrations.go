package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_aliases_to_characters",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_events_table",
		Up:      migrationV2,
	},
}

// RunMigrations applies all pending migrations in order.
func RunMigrations(database *sql.DB) error {
	for _, m := range migrations {
		applied, err := migrationApplied(database, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := database.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func migrationApplied(database *sql.DB, version int) (bool, error) {
	var count int
	err := database.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %d: %w", version, err)
	}
	return count > 0, nil
}

// migrationV1 adds the aliases column for alternate character names. Fresh
// installs already have it from SchemaSQL; only pre-alias databases need the
// ALTER.
func migrationV1(database *sql.DB) error {
	hasColumn, err := columnExists(database, "characters", "aliases")
	if err != nil {
		return err
	}
	if hasColumn {
		return nil
	}

	if _, err := database.Exec("ALTER TABLE characters ADD COLUMN aliases TEXT"); err != nil {
		return fmt.Errorf("failed to add aliases column: %w", err)
	}
	return nil
}

// migrationV2 backfills the events audit table on databases created before it
// existed. SchemaSQL uses IF NOT EXISTS so this is a no-op on fresh installs.
func migrationV2(database *sql.DB) error {
	exists, err := TableExists(database, "events")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = database.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL DEFAULT 0,
			character_id INTEGER NOT NULL DEFAULT 0,
			kind TEXT NOT NULL CHECK(kind IN ('spawn', 'claim', 'escape', 'cheat', 'swap')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_events_chat ON events(chat_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	return nil
}

func columnExists(database *sql.DB, table, column string) (bool, error) {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			ctype      string
			notnull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &primaryKey); err != nil {
			return false, fmt.Errorf("failed to scan column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
