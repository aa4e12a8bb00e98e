// Package app contains the application services implementing the primary
// ports, orchestrating repositories, the game engines, and the transport.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/gachabot/internal/core/cache"
	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/ports/secondary"
)

// CharacterServiceImpl implements the CharacterService interface.
type CharacterServiceImpl struct {
	characterRepo secondary.CharacterRepository
	metadata      secondary.MetadataClient
	metaCache     *cache.LRU[int64, *secondary.CharacterMeta]
}

// NewCharacterService creates a new CharacterService with injected
// dependencies. cacheSize bounds the metadata cache.
func NewCharacterService(characterRepo secondary.CharacterRepository, metadata secondary.MetadataClient, cacheSize int) *CharacterServiceImpl {
	return &CharacterServiceImpl{
		characterRepo: characterRepo,
		metadata:      metadata,
		metaCache:     cache.NewLRU[int64, *secondary.CharacterMeta](cacheSize),
	}
}

// CreateCharacter creates a new character.
func (s *CharacterServiceImpl) CreateCharacter(ctx context.Context, req primary.CreateCharacterRequest) (*primary.CreateCharacterResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("character name is required")
	}
	if req.Stars < 1 || req.Stars > 5 {
		return nil, fmt.Errorf("stars must be between 1 and 5, got %d", req.Stars)
	}
	if req.SeriesID != 0 {
		exists, err := s.characterRepo.SeriesExists(ctx, req.SeriesID)
		if err != nil {
			return nil, fmt.Errorf("failed to validate series: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("series %d not found", req.SeriesID)
		}
	}

	nextID, err := s.characterRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate character ID: %w", err)
	}

	gender := req.Gender
	if gender == "" {
		gender = "other"
	}

	record := &secondary.CharacterRecord{
		ID:        nextID,
		SeriesID:  req.SeriesID,
		Name:      req.Name,
		Stars:     req.Stars,
		Gender:    gender,
		Artist:    req.Artist,
		AnilistID: req.AnilistID,
	}

	if err := s.characterRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	created, err := s.characterRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created character: %w", err)
	}

	return &primary.CreateCharacterResponse{
		CharacterID: created.ID,
		Character:   s.recordToCharacter(created),
	}, nil
}

// GetCharacter retrieves a character by ID.
func (s *CharacterServiceImpl) GetCharacter(ctx context.Context, characterID int64) (*primary.Character, error) {
	record, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return s.recordToCharacter(record), nil
}

// ListCharacters lists characters with optional filters.
func (s *CharacterServiceImpl) ListCharacters(ctx context.Context, filters primary.CharacterFilters) ([]*primary.Character, error) {
	records, err := s.characterRepo.List(ctx, secondary.CharacterFilters{
		SeriesID: filters.SeriesID,
		Stars:    filters.Stars,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	characters := make([]*primary.Character, 0, len(records))
	for _, record := range records {
		characters = append(characters, s.recordToCharacter(record))
	}
	return characters, nil
}

// RenameCharacter updates a character's name.
func (s *CharacterServiceImpl) RenameCharacter(ctx context.Context, characterID int64, name string) error {
	if name == "" {
		return fmt.Errorf("character name is required")
	}

	record, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return err
	}

	record.Name = name
	return s.characterRepo.Update(ctx, record)
}

// SetCharacterImage replaces a character's image bytes.
func (s *CharacterServiceImpl) SetCharacterImage(ctx context.Context, characterID int64, image []byte) error {
	record, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return err
	}

	record.Image = image
	return s.characterRepo.Update(ctx, record)
}

// SetCharacterGender updates a character's gender.
func (s *CharacterServiceImpl) SetCharacterGender(ctx context.Context, characterID int64, gender string) error {
	switch gender {
	case "female", "male", "other":
	default:
		return fmt.Errorf("unknown gender %q", gender)
	}

	record, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return err
	}

	record.Gender = gender
	return s.characterRepo.Update(ctx, record)
}

// SetCharacterAliases replaces a character's alternate names.
func (s *CharacterServiceImpl) SetCharacterAliases(ctx context.Context, characterID int64, aliases []string) error {
	record, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return err
	}

	record.Aliases = strings.Join(aliases, "\n")
	return s.characterRepo.Update(ctx, record)
}

// DeleteCharacter deletes a character.
func (s *CharacterServiceImpl) DeleteCharacter(ctx context.Context, characterID int64) error {
	return s.characterRepo.Delete(ctx, characterID)
}

// RefreshMetadata re-fetches external metadata for a character and updates
// its name and image URL from the upstream record.
func (s *CharacterServiceImpl) RefreshMetadata(ctx context.Context, characterID int64) (*primary.Character, error) {
	record, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if record.AnilistID == 0 {
		return nil, ErrNoMetadataRef
	}

	meta, ok := s.metaCache.Get(record.AnilistID)
	if !ok {
		meta, err = s.metadata.Character(ctx, record.AnilistID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch metadata: %w", err)
		}
		s.metaCache.Put(record.AnilistID, meta)
	}

	if meta.Name != "" {
		record.Name = meta.Name
	}
	if meta.ImageURL != "" {
		record.ImageURL = meta.ImageURL
	}
	if err := s.characterRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	return s.recordToCharacter(record), nil
}

// recordToCharacter converts a persistence record to a primary port entity.
func (s *CharacterServiceImpl) recordToCharacter(record *secondary.CharacterRecord) *primary.Character {
	var aliases []string
	if record.Aliases != "" {
		aliases = strings.Split(record.Aliases, "\n")
	}
	return &primary.Character{
		ID:        record.ID,
		SeriesID:  record.SeriesID,
		Name:      record.Name,
		Stars:     record.Stars,
		Gender:    record.Gender,
		Artist:    record.Artist,
		ImageURL:  record.ImageURL,
		AnilistID: record.AnilistID,
		Aliases:   aliases,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// Ensure CharacterServiceImpl implements the interface.
var _ primary.CharacterService = (*CharacterServiceImpl)(nil)
