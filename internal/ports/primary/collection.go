package primary

import "context"

// CollectionService defines the primary port for collection operations.
type CollectionService interface {
	// ListCollection lists a user's collected characters in a chat, in claim
	// order.
	ListCollection(ctx context.Context, userID, chatID int64) ([]*Character, error)

	// AddToCollection claims a character for a user in a chat. Fails with
	// ErrCollectionFull when the cap is reached and ErrAlreadyCollected on a
	// duplicate.
	AddToCollection(ctx context.Context, userID, chatID, characterID int64) error

	// SwapIntoCollection removes the user's oldest claimed character and
	// inserts the new one, preserving the cap.
	SwapIntoCollection(ctx context.Context, userID, chatID, characterID int64) (evicted int64, err error)

	// RemoveFromCollection releases a character from a user's collection.
	RemoveFromCollection(ctx context.Context, userID, chatID, characterID int64) error
}
