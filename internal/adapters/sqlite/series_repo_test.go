package sqlite_test

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/gachabot/internal/adapters/sqlite"
	"github.com/example/gachabot/internal/ports/secondary"
)

func TestSeriesRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSeriesRepository(db)
	ctx := context.Background()

	series := &secondary.SeriesRecord{
		ID:    1,
		Title: "Moonlit Academy",
	}

	err := repo.Create(ctx, series)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Title != "Moonlit Academy" {
		t.Errorf("expected title 'Moonlit Academy', got '%s'", retrieved.Title)
	}
}

func TestSeriesRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSeriesRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999)
	if err == nil {
		t.Error("expected error for non-existent series")
	}
}

func TestSeriesRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSeriesRepository(db)
	ctx := context.Background()

	seedSeries(t, db, 1, "Old Title")

	series, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	series.Title = "New Title"
	series.Banner = []byte{0x89, 0x50}

	err = repo.Update(ctx, series)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Title != "New Title" {
		t.Errorf("expected title 'New Title', got '%s'", retrieved.Title)
	}
	if len(retrieved.Banner) != 2 {
		t.Errorf("expected banner to round-trip, got %d bytes", len(retrieved.Banner))
	}
}

func TestSeriesRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSeriesRepository(db)
	ctx := context.Background()

	seedSeries(t, db, 1, "")

	err := repo.Delete(ctx, 1)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = repo.GetByID(ctx, 1)
	if err == nil {
		t.Error("expected error after deletion")
	}
}

func TestSeriesRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSeriesRepository(db)
	ctx := context.Background()

	// Should come back sorted by title
	seedSeries(t, db, 1, "Zephyr Chronicle")
	seedSeries(t, db, 2, "Ashen Vanguard")

	series, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	if series[0].Title != "Ashen Vanguard" {
		t.Errorf("expected 'Ashen Vanguard' first, got '%s'", series[0].Title)
	}
}

func TestSeriesRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSeriesRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != 1 {
		t.Errorf("expected 1, got %d", id)
	}

	seedSeries(t, db, 3, "")

	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != 4 {
		t.Errorf("expected 4, got %d", id)
	}
}

func TestSeriesRepository_CountCharacters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSeriesRepository(db)
	ctx := context.Background()

	seedSeries(t, db, 1, "")
	seedCharacter(t, db, 1, 1, "A")
	seedCharacter(t, db, 2, 1, "B")
	seedCharacter(t, db, 3, 0, "C")

	count, err := repo.CountCharacters(ctx, 1)
	if err != nil {
		t.Fatalf("CountCharacters failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 characters, got %d", count)
	}
}
