package app

import (
	"context"
	"fmt"

	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/ports/secondary"
)

// CollectionServiceImpl implements the CollectionService interface.
type CollectionServiceImpl struct {
	collectionRepo secondary.CollectionRepository
	characterRepo  secondary.CharacterRepository
	cap            int
}

// NewCollectionService creates a new CollectionService with injected
// dependencies. cap is the per-user per-chat collection limit.
func NewCollectionService(collectionRepo secondary.CollectionRepository, characterRepo secondary.CharacterRepository, cap int) *CollectionServiceImpl {
	return &CollectionServiceImpl{
		collectionRepo: collectionRepo,
		characterRepo:  characterRepo,
		cap:            cap,
	}
}

// ListCollection lists a user's collected characters in a chat, in claim
// order.
func (s *CollectionServiceImpl) ListCollection(ctx context.Context, userID, chatID int64) ([]*primary.Character, error) {
	ids, err := s.collectionRepo.List(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}

	characters := make([]*primary.Character, 0, len(ids))
	for _, id := range ids {
		record, err := s.characterRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load collected character: %w", err)
		}
		characters = append(characters, &primary.Character{
			ID:       record.ID,
			SeriesID: record.SeriesID,
			Name:     record.Name,
			Stars:    record.Stars,
			Gender:   record.Gender,
		})
	}
	return characters, nil
}

// AddToCollection claims a character for a user in a chat.
func (s *CollectionServiceImpl) AddToCollection(ctx context.Context, userID, chatID, characterID int64) error {
	owned, err := s.collectionRepo.Contains(ctx, userID, chatID, characterID)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if owned {
		return ErrAlreadyCollected
	}

	count, err := s.collectionRepo.Count(ctx, userID, chatID)
	if err != nil {
		return fmt.Errorf("failed to count collection: %w", err)
	}
	if count >= s.cap {
		return ErrCollectionFull
	}

	return s.collectionRepo.Add(ctx, userID, chatID, characterID)
}

// SwapIntoCollection removes the user's oldest claimed character and inserts
// the new one, preserving the cap.
func (s *CollectionServiceImpl) SwapIntoCollection(ctx context.Context, userID, chatID, characterID int64) (int64, error) {
	owned, err := s.collectionRepo.Contains(ctx, userID, chatID, characterID)
	if err != nil {
		return 0, fmt.Errorf("failed to check collection: %w", err)
	}
	if owned {
		return 0, ErrAlreadyCollected
	}

	oldest, err := s.collectionRepo.Oldest(ctx, userID, chatID)
	if err != nil {
		return 0, fmt.Errorf("failed to find oldest collected character: %w", err)
	}
	if oldest == 0 {
		// Nothing to swap out; plain insert
		return 0, s.collectionRepo.Add(ctx, userID, chatID, characterID)
	}

	if err := s.collectionRepo.Remove(ctx, userID, chatID, oldest); err != nil {
		return 0, fmt.Errorf("failed to remove swapped character: %w", err)
	}
	if err := s.collectionRepo.Add(ctx, userID, chatID, characterID); err != nil {
		return 0, fmt.Errorf("failed to add swapped character: %w", err)
	}
	return oldest, nil
}

// RemoveFromCollection releases a character from a user's collection.
func (s *CollectionServiceImpl) RemoveFromCollection(ctx context.Context, userID, chatID, characterID int64) error {
	return s.collectionRepo.Remove(ctx, userID, chatID, characterID)
}

// Ensure CollectionServiceImpl implements the interface.
var _ primary.CollectionService = (*CollectionServiceImpl)(nil)
