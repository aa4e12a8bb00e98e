// Package conversation implements the ask-and-wait primitive behind every
// multi-step dialog: send a prompt (or not), then suspend the calling flow
// until a matching update arrives from a specific user or a timeout fires.
//
// At most one wait is outstanding per user. Registering a second wait for a
// user who already has one supersedes the older wait: the older call returns
// nil as if it timed out. Superseding keeps a user's latest dialog
// authoritative when an admin abandons one flow and starts another.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/gachabot/internal/ports/secondary"
)

// Predicate decides whether an inbound update satisfies a wait. Predicates
// are evaluated in update arrival order; the first match wins.
type Predicate func(update secondary.Update) bool

// pendingWait is one outstanding conversational request. It lives only in
// memory and is destroyed on match, timeout, cancel, or supersede.
type pendingWait struct {
	token     string
	userID    int64
	predicate Predicate

	// matched carries at most one update. The dispatcher removes the wait
	// from the registry before sending, so a wait is fulfilled at most once
	// and the buffered send never blocks.
	matched chan secondary.Update

	// retired is closed when the wait is removed without a match.
	retired chan struct{}
}

// Engine registers pending waits and fulfills them from the inbound update
// stream. Safe for concurrent use.
type Engine struct {
	messenger secondary.Messenger

	mu    sync.Mutex
	waits map[int64]*pendingWait
}

// NewEngine creates a wait engine sending prompts through messenger.
func NewEngine(messenger secondary.Messenger) *Engine {
	return &Engine{
		messenger: messenger,
		waits:     make(map[int64]*pendingWait),
	}
}

// Ask sends a prompt to a chat, then suspends until userID sends an update
// satisfying predicate or timeout elapses. The handle of the prompt message
// is returned even when the wait times out, so callers can edit or delete
// the prompt during cleanup. A nil update means timeout.
func (e *Engine) Ask(ctx context.Context, chatID, userID int64, prompt secondary.Content, predicate Predicate, timeout time.Duration) (secondary.Handle, *secondary.Update, error) {
	handle, err := e.messenger.Send(ctx, chatID, prompt)
	if err != nil {
		return secondary.Handle{}, nil, err
	}

	update := e.WaitForUpdate(ctx, userID, predicate, timeout)
	return handle, update, nil
}

// WaitForUpdate suspends until userID sends an update satisfying predicate
// or timeout elapses, without sending a prompt. Returns nil on timeout,
// cancellation, or supersede. A non-positive timeout returns nil immediately
// without registering a wait.
func (e *Engine) WaitForUpdate(ctx context.Context, userID int64, predicate Predicate, timeout time.Duration) *secondary.Update {
	if timeout <= 0 {
		return nil
	}

	wait := e.register(userID, predicate)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case update := <-wait.matched:
		return &update
	case <-wait.retired:
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}

	// Timed out or cancelled. If the dispatcher already consumed a matching
	// update, it won the race and the update must not be dropped.
	if e.retire(wait) {
		return nil
	}
	select {
	case update := <-wait.matched:
		return &update
	case <-wait.retired:
		return nil
	}
}

// Dispatch offers an inbound update to the outstanding waits. Returns true
// when a wait consumed the update, in which case ordinary handling must
// skip it.
func (e *Engine) Dispatch(update secondary.Update) bool {
	e.mu.Lock()
	wait, ok := e.waits[update.SenderID]
	if !ok || !wait.predicate(update) {
		e.mu.Unlock()
		return false
	}
	delete(e.waits, update.SenderID)
	e.mu.Unlock()

	wait.matched <- update
	return true
}

// Waiting reports whether a wait is outstanding for userID.
func (e *Engine) Waiting(userID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.waits[userID]
	return ok
}

// register installs a new wait for userID, superseding any existing one.
func (e *Engine) register(userID int64, predicate Predicate) *pendingWait {
	wait := &pendingWait{
		token:     uuid.New().String(),
		userID:    userID,
		predicate: predicate,
		matched:   make(chan secondary.Update, 1),
		retired:   make(chan struct{}),
	}

	e.mu.Lock()
	if old, ok := e.waits[userID]; ok {
		close(old.retired)
	}
	e.waits[userID] = wait
	e.mu.Unlock()

	return wait
}

// retire removes a wait that has not matched yet. Returns true when this
// call removed it; false means the dispatcher (or a supersede) got there
// first. Idempotent.
func (e *Engine) retire(wait *pendingWait) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, ok := e.waits[wait.userID]
	if !ok || current.token != wait.token {
		return false
	}
	delete(e.waits, wait.userID)
	close(wait.retired)
	return true
}
