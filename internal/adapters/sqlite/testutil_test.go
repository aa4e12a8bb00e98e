// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/gachabot/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedSeries inserts a test series and returns its ID.
func seedSeries(t *testing.T, db *sql.DB, id int64, title string) int64 {
	t.Helper()
	if id == 0 {
		id = 1
	}
	if title == "" {
		title = "Test Series"
	}
	_, err := db.Exec("INSERT INTO series (id, title) VALUES (?, ?)", id, title)
	if err != nil {
		t.Fatalf("failed to seed series: %v", err)
	}
	return id
}

// seedCharacter inserts a test character and returns its ID.
func seedCharacter(t *testing.T, db *sql.DB, id, seriesID int64, name string) int64 {
	t.Helper()
	if id == 0 {
		id = 1
	}
	if name == "" {
		name = "Test Character"
	}
	var series interface{}
	if seriesID != 0 {
		series = seriesID
	}
	_, err := db.Exec(
		"INSERT INTO characters (id, series_id, name, stars, gender) VALUES (?, ?, ?, 3, 'other')",
		id, series, name,
	)
	if err != nil {
		t.Fatalf("failed to seed character: %v", err)
	}
	return id
}

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id int64, username string) int64 {
	t.Helper()
	if id == 0 {
		id = 100
	}
	if username == "" {
		username = "testuser"
	}
	_, err := db.Exec(
		"INSERT INTO users (id, username, full_name) VALUES (?, ?, 'Test User')",
		id, username,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedGroup inserts a test group chat and returns its ID.
func seedGroup(t *testing.T, db *sql.DB, id int64, title string) int64 {
	t.Helper()
	if id == 0 {
		id = -1000
	}
	if title == "" {
		title = "Test Group"
	}
	_, err := db.Exec("INSERT INTO groups (id, title) VALUES (?, ?)", id, title)
	if err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	return id
}
