// Package spawn implements the per-chat state machine governing character
// spawns, claim windows, and guess resolution.
//
// Each chat is either Idle (no open claim, counting messages toward the next
// spawn) or Spawned (a claim window is open). The state is persisted per
// chat; the engine serializes mutations within one chat but never across
// chats, so unrelated conversations stay concurrent.
package spawn

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/example/gachabot/internal/core/guess"
	"github.com/example/gachabot/internal/ports/secondary"
)

// Config holds the engine's tuning knobs. All pass-through values.
type Config struct {
	// MinMessages and MaxMessages bound the spawn threshold, drawn
	// uniformly from [MinMessages, MaxMessages).
	MinMessages int
	MaxMessages int

	// EscapeAfter is how many messages a claim may stay open before the
	// character escapes.
	EscapeAfter int

	// CollectionCap is the hard limit on collection size per user per chat.
	CollectionCap int
}

// Notifier is the engine's outbound seam for mid-transition messaging. The
// spawn announcement must succeed before the claim window opens, and a swap
// negotiation must conclude before the claim window closes, so both run
// inside the engine rather than after it returns.
type Notifier interface {
	// AnnounceSpawn presents a character in a chat and returns the message
	// ID replies must target.
	AnnounceSpawn(ctx context.Context, chatID int64, character *secondary.CharacterRecord) (int, error)

	// NegotiateSwap asks the guesser whether to trade their oldest
	// character for the incoming one. Returns false on decline or timeout.
	NegotiateSwap(ctx context.Context, update secondary.Update, incoming, oldest *secondary.CharacterRecord) (bool, error)
}

// ResultKind discriminates what the engine did with one message.
type ResultKind int

const (
	// ResultNothing means the message only advanced counters.
	ResultNothing ResultKind = iota
	// ResultSpawned means a new character was presented.
	ResultSpawned
	// ResultEscaped means an unclaimed character was force-expired.
	ResultEscaped
	// ResultWrongGuess means a reply to the claim message missed.
	ResultWrongGuess
	// ResultCheated means a bot account guessed correctly; the claim is
	// voided.
	ResultCheated
	// ResultClaimed means the guesser collected the character.
	ResultClaimed
	// ResultSwapped means the guesser collected the character by trading
	// out their oldest one.
	ResultSwapped
	// ResultSwapDeclined means the guesser's collection was full and they
	// let the character go.
	ResultSwapDeclined
	// ResultAlreadyCollected means the guesser already owns the character;
	// the claim stays open for others.
	ResultAlreadyCollected
)

// Result describes the outcome of processing one message.
type Result struct {
	Kind      ResultKind
	Character *secondary.CharacterRecord // spawned, escaped, or claimed character
	MessageID int                        // claim message ID, ResultSpawned and ResultEscaped
	Evicted   *secondary.CharacterRecord // traded-out character, ResultSwapped only
}

// Engine runs the spawn-collect state machine. Safe for concurrent use;
// messages for the same chat are processed one at a time.
type Engine struct {
	config      Config
	states      secondary.SpawnStateRepository
	characters  secondary.CharacterRepository
	collections secondary.CollectionRepository
	notifier    Notifier

	// intn is the threshold randomness source, swappable in tests.
	intn func(n int) int

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewEngine creates a spawn engine.
func NewEngine(config Config, states secondary.SpawnStateRepository, characters secondary.CharacterRepository, collections secondary.CollectionRepository, notifier Notifier) *Engine {
	return &Engine{
		config:      config,
		states:      states,
		characters:  characters,
		collections: collections,
		notifier:    notifier,
		intn:        rand.Intn,
		locks:       make(map[int64]*sync.Mutex),
	}
}

// Config returns the engine's tuning knobs.
func (e *Engine) Config() Config {
	return e.config
}

// HandleMessage feeds one qualifying group message through the state
// machine. Callers filter out commands and non-group traffic before calling.
func (e *Engine) HandleMessage(ctx context.Context, update secondary.Update) (*Result, error) {
	if !update.IsGroup || update.Kind != secondary.UpdateText {
		return &Result{Kind: ResultNothing}, nil
	}

	lock := e.chatLock(update.ChatID)
	lock.Lock()
	defer lock.Unlock()

	state, err := e.loadOrCreateState(ctx, update.ChatID)
	if err != nil {
		return nil, err
	}

	if state.CurrentCharacterID != 0 && update.ReplyToID == state.ClaimMessageID {
		return e.resolveGuess(ctx, state, update)
	}

	return e.advanceCounter(ctx, state)
}

// advanceCounter handles ordinary traffic: count toward the next spawn, or
// age an open claim toward escape.
func (e *Engine) advanceCounter(ctx context.Context, state *secondary.SpawnStateRecord) (*Result, error) {
	state.MessagesSinceSpawn++

	if state.CurrentCharacterID != 0 {
		if state.MessagesSinceSpawn >= e.config.EscapeAfter {
			return e.expireClaim(ctx, state)
		}
		if err := e.states.Put(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to persist claim age: %w", err)
		}
		return &Result{Kind: ResultNothing}, nil
	}

	if state.MessagesSinceSpawn >= state.MessagesNeeded {
		return e.trySpawn(ctx, state)
	}

	if err := e.states.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist spawn counter: %w", err)
	}
	return &Result{Kind: ResultNothing}, nil
}

// trySpawn picks a character and opens a claim window. The threshold stays
// crossed when the pick is skipped, so the next message retries.
func (e *Engine) trySpawn(ctx context.Context, state *secondary.SpawnStateRecord) (*Result, error) {
	character, err := e.pickCharacter(ctx, state.LastCharacterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		if err := e.states.Put(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to persist spawn counter: %w", err)
		}
		return &Result{Kind: ResultNothing}, nil
	}

	messageID, err := e.notifier.AnnounceSpawn(ctx, state.ChatID, character)
	if err != nil {
		// The announcement is the claim anchor; without it no window opens.
		return nil, fmt.Errorf("failed to announce spawn: %w", err)
	}

	state.CurrentCharacterID = character.ID
	state.ClaimMessageID = messageID
	state.MessagesSinceSpawn = 0
	state.MessagesNeeded = e.drawThreshold()
	if err := e.states.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist spawn state: %w", err)
	}

	return &Result{Kind: ResultSpawned, Character: character, MessageID: messageID}, nil
}

// pickCharacter draws a random character, avoiding a back-to-back repeat of
// the previous spawn. Returns nil when the roster is empty or only the
// repeat is available this draw.
func (e *Engine) pickCharacter(ctx context.Context, lastID int64) (*secondary.CharacterRecord, error) {
	for attempt := 0; attempt < 2; attempt++ {
		character, err := e.characters.Random(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to pick character: %w", err)
		}
		if character == nil {
			return nil, nil
		}
		if character.ID != lastID {
			return character, nil
		}
	}
	return nil, nil
}

// expireClaim force-expires a stale claim. No new spawn on the same tick,
// so claim windows never overlap.
func (e *Engine) expireClaim(ctx context.Context, state *secondary.SpawnStateRecord) (*Result, error) {
	character, err := e.characters.GetByID(ctx, state.CurrentCharacterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load escaping character: %w", err)
	}

	// The notice replies to the stranded announcement, so keep its ID past
	// the claim clear
	claimMessageID := state.ClaimMessageID

	e.closeClaim(state, character.ID)
	if err := e.states.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist escape: %w", err)
	}

	return &Result{Kind: ResultEscaped, Character: character, MessageID: claimMessageID}, nil
}

// resolveGuess handles a reply to the open claim message.
func (e *Engine) resolveGuess(ctx context.Context, state *secondary.SpawnStateRecord, update secondary.Update) (*Result, error) {
	character, err := e.characters.GetByID(ctx, state.CurrentCharacterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spawned character: %w", err)
	}

	if !guess.Matches(update.Text, character.Name, character.Aliases) {
		return &Result{Kind: ResultWrongGuess, Character: character}, nil
	}

	if update.SenderIsBot {
		// An automated responder corrupts fairness; void the whole claim.
		e.closeClaim(state, character.ID)
		if err := e.states.Put(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to persist voided claim: %w", err)
		}
		return &Result{Kind: ResultCheated, Character: character}, nil
	}

	owned, err := e.collections.Contains(ctx, update.SenderID, state.ChatID, character.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if owned {
		return &Result{Kind: ResultAlreadyCollected, Character: character}, nil
	}

	count, err := e.collections.Count(ctx, update.SenderID, state.ChatID)
	if err != nil {
		return nil, fmt.Errorf("failed to count collection: %w", err)
	}
	if count >= e.config.CollectionCap {
		return e.negotiateSwap(ctx, state, update, character)
	}

	// Collection mutation first, claim clear second: a crash in between
	// leaves a closed-looking claim recoverable on the next read, never a
	// lost character.
	if err := e.collections.Add(ctx, update.SenderID, state.ChatID, character.ID); err != nil {
		return nil, fmt.Errorf("failed to add to collection: %w", err)
	}

	e.closeClaim(state, character.ID)
	if err := e.states.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist claim: %w", err)
	}

	return &Result{Kind: ResultClaimed, Character: character}, nil
}

// negotiateSwap runs the capacity negotiation. Whatever the guesser decides,
// the claim window closes afterwards.
func (e *Engine) negotiateSwap(ctx context.Context, state *secondary.SpawnStateRecord, update secondary.Update, character *secondary.CharacterRecord) (*Result, error) {
	oldestID, err := e.collections.Oldest(ctx, update.SenderID, state.ChatID)
	if err != nil {
		return nil, fmt.Errorf("failed to find oldest collected character: %w", err)
	}
	oldest, err := e.characters.GetByID(ctx, oldestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load oldest collected character: %w", err)
	}

	accepted, err := e.notifier.NegotiateSwap(ctx, update, character, oldest)
	if err != nil {
		return nil, fmt.Errorf("swap negotiation failed: %w", err)
	}

	if accepted {
		if err := e.collections.Remove(ctx, update.SenderID, state.ChatID, oldest.ID); err != nil {
			return nil, fmt.Errorf("failed to remove swapped character: %w", err)
		}
		if err := e.collections.Add(ctx, update.SenderID, state.ChatID, character.ID); err != nil {
			return nil, fmt.Errorf("failed to add swapped character: %w", err)
		}
	}

	e.closeClaim(state, character.ID)
	if err := e.states.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist swap outcome: %w", err)
	}

	if accepted {
		return &Result{Kind: ResultSwapped, Character: character, Evicted: oldest}, nil
	}
	return &Result{Kind: ResultSwapDeclined, Character: character}, nil
}

// closeClaim returns a chat to Idle and redraws the next threshold.
func (e *Engine) closeClaim(state *secondary.SpawnStateRecord, lastCharacterID int64) {
	state.LastCharacterID = lastCharacterID
	state.CurrentCharacterID = 0
	state.ClaimMessageID = 0
	state.MessagesSinceSpawn = 0
	state.MessagesNeeded = e.drawThreshold()
}

func (e *Engine) loadOrCreateState(ctx context.Context, chatID int64) (*secondary.SpawnStateRecord, error) {
	state, err := e.states.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spawn state: %w", err)
	}
	if state == nil {
		state = &secondary.SpawnStateRecord{
			ChatID:         chatID,
			MessagesNeeded: e.drawThreshold(),
		}
	}
	return state, nil
}

// drawThreshold samples the next spawn threshold from [MinMessages,
// MaxMessages).
func (e *Engine) drawThreshold() int {
	span := e.config.MaxMessages - e.config.MinMessages
	if span <= 0 {
		return e.config.MinMessages
	}
	return e.config.MinMessages + e.intn(span)
}

// chatLock returns the mutex serializing one chat's transitions.
func (e *Engine) chatLock(chatID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[chatID] = lock
	}
	return lock
}
