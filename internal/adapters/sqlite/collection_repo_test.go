package sqlite_test

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/gachabot/internal/adapters/sqlite"
)

func TestCollectionRepository_Add(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	seedCharacter(t, db, 1, 0, "")

	err := repo.Add(ctx, 100, -1000, 1)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	has, err := repo.Contains(ctx, 100, -1000, 1)
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !has {
		t.Error("expected character to be in collection")
	}
}

func TestCollectionRepository_Add_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	seedCharacter(t, db, 1, 0, "")

	if err := repo.Add(ctx, 100, -1000, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := repo.Add(ctx, 100, -1000, 1)
	if err == nil {
		t.Error("expected error for duplicate claim")
	}
}

func TestCollectionRepository_List_InsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	seedCharacter(t, db, 1, 0, "A")
	seedCharacter(t, db, 2, 0, "B")
	seedCharacter(t, db, 3, 0, "C")

	// Claim out of ID order
	for _, id := range []int64{3, 1, 2} {
		if err := repo.Add(ctx, 100, -1000, id); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	ids, err := repo.List(ctx, 100, -1000)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(ids) != 3 {
		t.Fatalf("expected 3 characters, got %d", len(ids))
	}
	if ids[0] != 3 || ids[1] != 1 || ids[2] != 2 {
		t.Errorf("expected claim order [3 1 2], got %v", ids)
	}
}

func TestCollectionRepository_Remove(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	seedCharacter(t, db, 1, 0, "")

	if err := repo.Add(ctx, 100, -1000, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := repo.Remove(ctx, 100, -1000, 1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	has, err := repo.Contains(ctx, 100, -1000, 1)
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if has {
		t.Error("expected character to be gone after removal")
	}
}

func TestCollectionRepository_Remove_NotCollected(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	err := repo.Remove(ctx, 100, -1000, 999)
	if err == nil {
		t.Error("expected error for character not in collection")
	}
}

func TestCollectionRepository_Count_PerChat(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	seedCharacter(t, db, 1, 0, "")
	seedCharacter(t, db, 2, 0, "")

	// Same user, two chats; each chat counts independently
	if err := repo.Add(ctx, 100, -1000, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := repo.Add(ctx, 100, -1000, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := repo.Add(ctx, 100, -2000, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	count, err := repo.Count(ctx, 100, -1000)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 in first chat, got %d", count)
	}

	count, err = repo.Count(ctx, 100, -2000)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 in second chat, got %d", count)
	}
}

func TestCollectionRepository_Oldest(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	seedCharacter(t, db, 1, 0, "")
	seedCharacter(t, db, 2, 0, "")

	if err := repo.Add(ctx, 100, -1000, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := repo.Add(ctx, 100, -1000, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	oldest, err := repo.Oldest(ctx, 100, -1000)
	if err != nil {
		t.Fatalf("Oldest failed: %v", err)
	}
	if oldest != 2 {
		t.Errorf("expected oldest to be 2 (claimed first), got %d", oldest)
	}
}

func TestCollectionRepository_Oldest_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	oldest, err := repo.Oldest(ctx, 100, -1000)
	if err != nil {
		t.Fatalf("Oldest failed: %v", err)
	}
	if oldest != 0 {
		t.Errorf("expected 0 for empty collection, got %d", oldest)
	}
}

func TestCollectionRepository_Oldest_SurvivesRemoval(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCollectionRepository(db)
	ctx := context.Background()

	seedCharacter(t, db, 1, 0, "")
	seedCharacter(t, db, 2, 0, "")
	seedCharacter(t, db, 3, 0, "")

	for _, id := range []int64{1, 2, 3} {
		if err := repo.Add(ctx, 100, -1000, id); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := repo.Remove(ctx, 100, -1000, 1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	// Positions keep claim order even after the head is removed
	oldest, err := repo.Oldest(ctx, 100, -1000)
	if err != nil {
		t.Fatalf("Oldest failed: %v", err)
	}
	if oldest != 2 {
		t.Errorf("expected oldest to be 2 after removal, got %d", oldest)
	}
}
