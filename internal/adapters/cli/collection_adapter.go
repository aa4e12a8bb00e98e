package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/gachabot/internal/ports/primary"
)

// CollectionAdapter is a thin adapter that translates CLI operations to
// CollectionService calls. Useful for inspecting and repairing player
// collections without going through the bot.
type CollectionAdapter struct {
	service primary.CollectionService
	out     io.Writer
}

// NewCollectionAdapter creates a new CollectionAdapter with the given
// service.
func NewCollectionAdapter(service primary.CollectionService, out io.Writer) *CollectionAdapter {
	return &CollectionAdapter{
		service: service,
		out:     out,
	}
}

// List prints a user's collection in one chat, in claim order.
func (a *CollectionAdapter) List(ctx context.Context, userID, chatID int64) ([]*primary.Character, error) {
	characters, err := a.service.ListCollection(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}

	if len(characters) == 0 {
		fmt.Fprintf(a.out, "User %d has no characters in chat %d.\n", userID, chatID)
		return characters, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "POS\tID\tNAME\tSTARS")
	fmt.Fprintln(w, "---\t--\t----\t-----")
	for i, character := range characters {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\n", i+1, character.ID, character.Name, character.Stars)
	}
	w.Flush()

	return characters, nil
}

// Grant force-adds a character to a user's collection.
func (a *CollectionAdapter) Grant(ctx context.Context, userID, chatID, characterID int64) error {
	if err := a.service.AddToCollection(ctx, userID, chatID, characterID); err != nil {
		return fmt.Errorf("failed to grant character: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Granted character %d to user %d in chat %d\n", characterID, userID, chatID)
	return nil
}

// Swap trades a user's oldest claimed character for the given one, keeping
// the collection at its cap.
func (a *CollectionAdapter) Swap(ctx context.Context, userID, chatID, characterID int64) error {
	evicted, err := a.service.SwapIntoCollection(ctx, userID, chatID, characterID)
	if err != nil {
		return fmt.Errorf("failed to swap character: %w", err)
	}
	if evicted == 0 {
		fmt.Fprintf(a.out, "✓ Granted character %d to user %d in chat %d (collection had room)\n", characterID, userID, chatID)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Swapped character %d out for %d (user %d, chat %d)\n", evicted, characterID, userID, chatID)
	return nil
}

// Revoke removes a character from a user's collection.
func (a *CollectionAdapter) Revoke(ctx context.Context, userID, chatID, characterID int64) error {
	if err := a.service.RemoveFromCollection(ctx, userID, chatID, characterID); err != nil {
		return fmt.Errorf("failed to revoke character: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Revoked character %d from user %d in chat %d\n", characterID, userID, chatID)
	return nil
}
