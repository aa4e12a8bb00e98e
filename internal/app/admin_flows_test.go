package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/example/gachabot/internal/config"
	"github.com/example/gachabot/internal/core/conversation"
	"github.com/example/gachabot/internal/ports/secondary"
)

// ============================================================================
// Test Helper
// ============================================================================

type adminFixture struct {
	service    *AdminService
	waits      *conversation.Engine
	messenger  *mockMessenger
	characters *mockCharacterRepository
	series     *mockSeriesRepository
	groups     *mockGroupRepository
}

func newAdminFixture(adminIDs ...int64) *adminFixture {
	f := &adminFixture{
		messenger:  newMockMessenger(),
		characters: newMockCharacterRepository(),
		series:     newMockSeriesRepository(),
		groups:     newMockGroupRepository(),
	}
	f.waits = conversation.NewEngine(f.messenger)

	cfg := config.Default()
	cfg.AdminIDs = adminIDs

	characterService := NewCharacterService(f.characters, newMockMetadataClient(), 16)
	seriesService := NewSeriesService(f.series, f.characters)
	f.service = NewAdminService(cfg, f.messenger, f.waits,
		characterService, seriesService, f.groups, zap.NewNop())
	return f
}

func adminUpdate(senderID int64) secondary.Update {
	return secondary.Update{
		Kind:     secondary.UpdateText,
		ChatID:   -1000,
		IsGroup:  true,
		SenderID: senderID,
		Text:     "/addseries",
	}
}

func answerText(senderID int64, text string) secondary.Update {
	return secondary.Update{
		Kind:     secondary.UpdateText,
		ChatID:   -1000,
		IsGroup:  true,
		SenderID: senderID,
		Text:     text,
	}
}

// ============================================================================
// Authorization Tests
// ============================================================================

func TestAddSeries_DeniedForNonAdmin(t *testing.T) {
	f := newAdminFixture(500)
	ctx := context.Background()

	err := f.service.AddSeries(ctx, adminUpdate(100))
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if f.messenger.sentCount() != 1 {
		t.Errorf("expected one denial notice, got %d messages", f.messenger.sentCount())
	}
	if len(f.series.series) != 0 {
		t.Error("expected no series to be created")
	}
}

// ============================================================================
// AddSeries Dialog Tests
// ============================================================================

func TestAddSeries_FullDialog(t *testing.T) {
	f := newAdminFixture(100)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- f.service.AddSeries(ctx, adminUpdate(100))
	}()

	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	f.waits.Dispatch(answerText(100, "Moonlit Academy"))

	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	banner := answerText(100, "")
	banner.Kind = secondary.UpdatePhoto
	banner.PhotoBytes = []byte{0xFF, 0xD8}
	f.waits.Dispatch(banner)

	if err := <-done; err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}

	if len(f.series.series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(f.series.series))
	}
	for _, series := range f.series.series {
		if series.Title != "Moonlit Academy" {
			t.Errorf("expected title Moonlit Academy, got %s", series.Title)
		}
		if len(series.Banner) == 0 {
			t.Error("expected banner to be stored")
		}
	}
	if !f.messenger.sentContaining("Moonlit Academy") {
		t.Error("expected confirmation naming the series")
	}
}

func TestAddSeries_AbandonedBeforeTitle(t *testing.T) {
	f := newAdminFixture(100)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- f.service.AddSeries(ctx, adminUpdate(100))
	}()

	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	// Cancelling stands in for the dialog timeout
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}
	if len(f.series.series) != 0 {
		t.Error("expected no series after an abandoned dialog")
	}
}

func TestAddSeries_BannerTimeoutRollsBackInsert(t *testing.T) {
	f := newAdminFixture(100)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- f.service.AddSeries(ctx, adminUpdate(100))
	}()

	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	f.waits.Dispatch(answerText(100, "Moonlit Academy"))

	// The series exists between the two steps
	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	if len(f.series.series) != 1 {
		t.Fatalf("expected 1 series mid-dialog, got %d", len(f.series.series))
	}

	// Cancelling stands in for the banner step timing out
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}
	if len(f.series.series) != 0 {
		t.Errorf("expected the insert rolled back, %d series remain", len(f.series.series))
	}
	if !f.messenger.sentContaining("Timed out") {
		t.Error("expected the timeout notice")
	}
}

// ============================================================================
// Character Dialog Tests
// ============================================================================

func TestRenameCharacter_Dialog(t *testing.T) {
	f := newAdminFixture(100)
	f.characters.characters[7] = &secondary.CharacterRecord{ID: 7, Name: "Old Name", Stars: 3}
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- f.service.RenameCharacter(ctx, adminUpdate(100), 7)
	}()

	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	f.waits.Dispatch(answerText(100, "New Name"))

	if err := <-done; err != nil {
		t.Fatalf("RenameCharacter failed: %v", err)
	}
	if f.characters.characters[7].Name != "New Name" {
		t.Errorf("expected rename, got %s", f.characters.characters[7].Name)
	}
}

func TestRenameCharacter_UnknownCharacter(t *testing.T) {
	f := newAdminFixture(100)
	ctx := context.Background()

	if err := f.service.RenameCharacter(ctx, adminUpdate(100), 404); err == nil {
		t.Fatal("expected error for unknown character")
	}
}

func TestSetCharacterPhoto_Dialog(t *testing.T) {
	f := newAdminFixture(100)
	f.characters.characters[7] = &secondary.CharacterRecord{ID: 7, Name: "Aria", Stars: 3}
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- f.service.SetCharacterPhoto(ctx, adminUpdate(100), 7)
	}()

	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	photo := answerText(100, "")
	photo.Kind = secondary.UpdatePhoto
	photo.PhotoBytes = []byte{0xFF, 0xD8, 0xFF}
	f.waits.Dispatch(photo)

	if err := <-done; err != nil {
		t.Fatalf("SetCharacterPhoto failed: %v", err)
	}
	if len(f.characters.characters[7].Image) != 3 {
		t.Error("expected image bytes to be stored")
	}
}

func TestSetCharacterGender_Dialog(t *testing.T) {
	f := newAdminFixture(100)
	f.characters.characters[7] = &secondary.CharacterRecord{ID: 7, Name: "Aria", Stars: 3, Gender: "other"}
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- f.service.SetCharacterGender(ctx, adminUpdate(100), 7)
	}()

	waitUntil(t, func() bool { return f.waits.Waiting(100) })
	f.waits.Dispatch(secondary.Update{
		Kind:         secondary.UpdateCallback,
		ChatID:       -1000,
		IsGroup:      true,
		SenderID:     100,
		CallbackID:   "cb-gender",
		CallbackData: "gender_female",
	})

	if err := <-done; err != nil {
		t.Fatalf("SetCharacterGender failed: %v", err)
	}
	if f.characters.characters[7].Gender != "female" {
		t.Errorf("expected gender female, got %s", f.characters.characters[7].Gender)
	}
	f.messenger.mu.Lock()
	deleted := len(f.messenger.deleted)
	f.messenger.mu.Unlock()
	if deleted != 1 {
		t.Errorf("expected keyboard prompt to be deleted, got %d deletions", deleted)
	}
}
