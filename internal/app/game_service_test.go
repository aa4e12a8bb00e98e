package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/gachabot/internal/core/conversation"
	"github.com/example/gachabot/internal/core/spawn"
	"github.com/example/gachabot/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

type sentMessage struct {
	chatID  int64
	content secondary.Content
}

// mockMessenger implements secondary.Messenger for testing. Safe for
// concurrent use; negotiation tests send from multiple goroutines.
type mockMessenger struct {
	mu       sync.Mutex
	sent     []sentMessage
	deleted  []secondary.Handle
	answered []string
	nextID   int
	sendErr  error
}

func newMockMessenger() *mockMessenger {
	return &mockMessenger{nextID: 1000}
}

func (m *mockMessenger) Send(ctx context.Context, chatID int64, content secondary.Content) (secondary.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return secondary.Handle{}, m.sendErr
	}
	m.nextID++
	m.sent = append(m.sent, sentMessage{chatID: chatID, content: content})
	return secondary.Handle{ChatID: chatID, MessageID: m.nextID}, nil
}

func (m *mockMessenger) Edit(ctx context.Context, handle secondary.Handle, content secondary.Content) error {
	return nil
}

func (m *mockMessenger) Delete(ctx context.Context, handle secondary.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, handle)
	return nil
}

func (m *mockMessenger) AnswerCallback(ctx context.Context, callbackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answered = append(m.answered, callbackID)
	return nil
}

func (m *mockMessenger) Run(ctx context.Context, handle func(secondary.Update)) error {
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockMessenger) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockMessenger) lastSent() sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

func (m *mockMessenger) sentContaining(fragment string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.sent {
		if strings.Contains(msg.content.HTML, fragment) {
			return true
		}
	}
	return false
}

// mockUserRepository implements secondary.UserRepository for testing.
type mockUserRepository struct {
	users map[int64]*secondary.UserRecord
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*secondary.UserRecord)}
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *secondary.UserRecord) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*secondary.UserRecord, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, nil
}

func (m *mockUserRepository) SetLanguage(ctx context.Context, id int64, languageCode string) error {
	if user, ok := m.users[id]; ok {
		user.LanguageCode = languageCode
	}
	return nil
}

// mockSpawnStateRepository implements secondary.SpawnStateRepository for
// testing.
type mockSpawnStateRepository struct {
	states map[int64]*secondary.SpawnStateRecord
}

func newMockSpawnStateRepository() *mockSpawnStateRepository {
	return &mockSpawnStateRepository{states: make(map[int64]*secondary.SpawnStateRecord)}
}

func (m *mockSpawnStateRepository) Get(ctx context.Context, chatID int64) (*secondary.SpawnStateRecord, error) {
	if state, ok := m.states[chatID]; ok {
		copied := *state
		return &copied, nil
	}
	return nil, nil
}

func (m *mockSpawnStateRepository) Put(ctx context.Context, state *secondary.SpawnStateRecord) error {
	copied := *state
	m.states[state.ChatID] = &copied
	return nil
}

func (m *mockSpawnStateRepository) Delete(ctx context.Context, chatID int64) error {
	delete(m.states, chatID)
	return nil
}

type loggedEvent struct {
	chatID      int64
	userID      int64
	characterID int64
	kind        secondary.EventKind
}

// mockEventLog implements secondary.EventLogWriter for testing.
type mockEventLog struct {
	mu     sync.Mutex
	events []loggedEvent
}

func (m *mockEventLog) LogEvent(ctx context.Context, chatID, userID, characterID int64, kind secondary.EventKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, loggedEvent{chatID, userID, characterID, kind})
	return nil
}

func (m *mockEventLog) kinds() []secondary.EventKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]secondary.EventKind, 0, len(m.events))
	for _, event := range m.events {
		kinds = append(kinds, event.kind)
	}
	return kinds
}

// ============================================================================
// Test Helper
// ============================================================================

type gameFixture struct {
	service     *GameService
	waits       *conversation.Engine
	messenger   *mockMessenger
	users       *mockUserRepository
	groups      *mockGroupRepository
	states      *mockSpawnStateRepository
	characters  *mockCharacterRepository
	collections *mockCollectionRepository
	events      *mockEventLog
}

func newGameFixture(config spawn.Config) *gameFixture {
	f := &gameFixture{
		messenger:   newMockMessenger(),
		users:       newMockUserRepository(),
		groups:      newMockGroupRepository(),
		states:      newMockSpawnStateRepository(),
		characters:  newMockCharacterRepository(),
		collections: newMockCollectionRepository(),
		events:      &mockEventLog{},
	}
	f.waits = conversation.NewEngine(f.messenger)
	f.service = NewGameService(config, f.messenger, f.users, f.groups,
		f.states, f.characters, f.collections, f.events, f.waits, zap.NewNop())
	return f
}

// quickGameConfig spawns on every message so tests stay short.
func quickGameConfig() spawn.Config {
	return spawn.Config{MinMessages: 1, MaxMessages: 2, EscapeAfter: 5, CollectionCap: 9}
}

func groupText(chatID, senderID int64, text string) secondary.Update {
	return secondary.Update{
		Kind:       secondary.UpdateText,
		ChatID:     chatID,
		ChatTitle:  "Gacha Corner",
		IsGroup:    true,
		SenderID:   senderID,
		SenderName: "Player One",
		MessageID:  42,
		Text:       text,
	}
}

func replyText(chatID, senderID int64, text string, replyToID int) secondary.Update {
	update := groupText(chatID, senderID, text)
	update.ReplyToID = replyToID
	return update
}

func waitUntil(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

// ============================================================================
// HandleUpdate Tests
// ============================================================================

func TestHandleUpdate_RecordsUserAndGroup(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria", Stars: 4}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))

	if _, ok := f.users.users[100]; !ok {
		t.Error("expected sender to be recorded")
	}
	if _, ok := f.groups.groups[-1000]; !ok {
		t.Error("expected group to be recorded")
	}
}

func TestHandleUpdate_IgnoresCommands(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria", Stars: 4}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "/collection"))

	if f.messenger.sentCount() != 0 {
		t.Error("expected no spawn from a command")
	}
	if len(f.events.kinds()) != 0 {
		t.Error("expected no events from a command")
	}
}

func TestHandleUpdate_SpawnAnnouncedAndLogged(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria Nightshade", Stars: 4}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))

	if f.messenger.sentCount() != 1 {
		t.Fatalf("expected 1 announcement, got %d", f.messenger.sentCount())
	}
	if !f.messenger.sentContaining("Aria Nightshade") {
		t.Error("expected announcement to name the character")
	}
	kinds := f.events.kinds()
	if len(kinds) != 1 || kinds[0] != secondary.EventSpawn {
		t.Errorf("expected one spawn event, got %v", kinds)
	}
}

func TestHandleUpdate_ClaimFlow(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria Nightshade", Stars: 4}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))
	claimID := f.states.states[-1000].ClaimMessageID
	if claimID == 0 {
		t.Fatal("expected an open claim window")
	}

	f.service.HandleUpdate(ctx, replyText(-1000, 100, "aria", claimID))

	if got := f.collections.collections[collectionKey(100, -1000)]; len(got) != 1 || got[0] != 1 {
		t.Errorf("unexpected collection: %v", got)
	}
	if !f.messenger.sentContaining("Player One") {
		t.Error("expected claim notice to name the claimer")
	}
	kinds := f.events.kinds()
	if len(kinds) != 2 || kinds[1] != secondary.EventClaim {
		t.Errorf("expected claim event, got %v", kinds)
	}
}

func TestHandleUpdate_WrongGuessRepliesToGuess(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria Nightshade", Stars: 4}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))
	claimID := f.states.states[-1000].ClaimMessageID

	guess := replyText(-1000, 100, "sakura", claimID)
	f.service.HandleUpdate(ctx, guess)

	last := f.messenger.lastSent()
	if last.content.ReplyToID != guess.MessageID {
		t.Errorf("expected miss notice threaded under the guess, got reply-to %d", last.content.ReplyToID)
	}
	if len(f.collections.collections[collectionKey(100, -1000)]) != 0 {
		t.Error("expected no claim on a wrong guess")
	}
}

func TestHandleUpdate_BotGuesserLogsCheat(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria Nightshade", Stars: 4}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))
	claimID := f.states.states[-1000].ClaimMessageID

	guess := replyText(-1000, 200, "aria", claimID)
	guess.SenderIsBot = true
	f.service.HandleUpdate(ctx, guess)

	kinds := f.events.kinds()
	if len(kinds) != 2 || kinds[1] != secondary.EventCheat {
		t.Errorf("expected cheat event, got %v", kinds)
	}
	if _, ok := f.users.users[200]; ok {
		t.Error("expected bot sender not to be recorded as a player")
	}
}

func TestHandleUpdate_EscapeRepliesToSpawnMessage(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria Nightshade", Stars: 4}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))
	claimID := f.states.states[-1000].ClaimMessageID
	if claimID == 0 {
		t.Fatal("expected an open claim window")
	}

	// Age the claim past the escape threshold with ordinary chatter
	for i := 0; i < 5; i++ {
		f.service.HandleUpdate(ctx, groupText(-1000, 100, "chatter"))
	}

	if f.states.states[-1000].CurrentCharacterID != 0 {
		t.Fatal("expected the claim window closed after the escape")
	}
	last := f.messenger.lastSent()
	if last.content.ReplyToID != claimID {
		t.Errorf("expected escape notice threaded under spawn message %d, got reply-to %d",
			claimID, last.content.ReplyToID)
	}
	kinds := f.events.kinds()
	if len(kinds) != 2 || kinds[1] != secondary.EventEscape {
		t.Errorf("expected escape event, got %v", kinds)
	}
}

func TestHandleUpdate_UnclaimedCallbackIsAcked(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	ctx := context.Background()

	f.service.HandleUpdate(ctx, secondary.Update{
		Kind:         secondary.UpdateCallback,
		ChatID:       -1000,
		IsGroup:      true,
		SenderID:     100,
		CallbackID:   "cb-1",
		CallbackData: "stale_button",
	})

	f.messenger.mu.Lock()
	answered := len(f.messenger.answered)
	f.messenger.mu.Unlock()
	if answered != 1 {
		t.Errorf("expected stale callback to be acked, got %d acks", answered)
	}
}

func TestHandleUpdate_DispatchFeedsOutstandingWait(t *testing.T) {
	f := newGameFixture(quickGameConfig())
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Aria", Stars: 4}
	ctx := context.Background()

	var got *secondary.Update
	done := make(chan struct{})
	go func() {
		defer close(done)
		got = f.waits.WaitForUpdate(ctx, 100, conversation.AnyText(), 2*time.Second)
	}()
	waitUntil(t, func() bool { return f.waits.Waiting(100) })

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "dialog answer"))
	<-done

	if got == nil || got.Text != "dialog answer" {
		t.Fatalf("expected wait to consume the update, got %+v", got)
	}
	if f.messenger.sentCount() != 0 {
		t.Error("expected consumed update not to reach the spawn engine")
	}
}

// ============================================================================
// Swap Negotiation Tests
// ============================================================================

func TestHandleUpdate_SwapNegotiationAccepted(t *testing.T) {
	f := newGameFixture(spawn.Config{MinMessages: 1, MaxMessages: 2, EscapeAfter: 5, CollectionCap: 2})
	for id := int64(1); id <= 3; id++ {
		f.characters.characters[id] = &secondary.CharacterRecord{ID: id, Name: "Char" + string(rune('A'+id-1)), Stars: 3}
	}
	f.characters.randomNext = f.characters.characters[3]
	f.collections.collections[collectionKey(100, -1000)] = []int64{1, 2}
	ctx := context.Background()

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))
	claimID := f.states.states[-1000].ClaimMessageID

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.service.HandleUpdate(ctx, replyText(-1000, 100, "CharC", claimID))
	}()
	waitUntil(t, func() bool { return f.waits.Waiting(100) })

	f.service.HandleUpdate(ctx, secondary.Update{
		Kind:         secondary.UpdateCallback,
		ChatID:       -1000,
		IsGroup:      true,
		SenderID:     100,
		CallbackID:   "cb-swap",
		CallbackData: "swap_yes",
	})
	<-done

	got := f.collections.collections[collectionKey(100, -1000)]
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("expected oldest evicted and new claimed, got %v", got)
	}
	kinds := f.events.kinds()
	if len(kinds) != 2 || kinds[1] != secondary.EventSwap {
		t.Errorf("expected swap event, got %v", kinds)
	}
}

func TestHandleUpdate_SwapNegotiationTimesOutAsDecline(t *testing.T) {
	f := newGameFixture(spawn.Config{MinMessages: 1, MaxMessages: 2, EscapeAfter: 5, CollectionCap: 1})
	f.characters.characters[1] = &secondary.CharacterRecord{ID: 1, Name: "Kept", Stars: 3}
	f.characters.characters[2] = &secondary.CharacterRecord{ID: 2, Name: "Passing", Stars: 3}
	f.characters.randomNext = f.characters.characters[2]
	f.collections.collections[collectionKey(100, -1000)] = []int64{1}
	ctx, cancel := context.WithCancel(context.Background())

	f.service.HandleUpdate(ctx, groupText(-1000, 100, "hello"))
	claimID := f.states.states[-1000].ClaimMessageID

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.service.HandleUpdate(ctx, replyText(-1000, 100, "Passing", claimID))
	}()
	waitUntil(t, func() bool { return f.waits.Waiting(100) })

	// Cancelling stands in for the decision timeout
	cancel()
	<-done

	got := f.collections.collections[collectionKey(100, -1000)]
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected collection unchanged, got %v", got)
	}
	if f.states.states[-1000].CurrentCharacterID != 0 {
		t.Error("expected claim window to be closed after the decline")
	}
}
