// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI and bot adapters call into.
package primary

import "context"

// CharacterService defines the primary port for character operations.
type CharacterService interface {
	// CreateCharacter creates a new character.
	CreateCharacter(ctx context.Context, req CreateCharacterRequest) (*CreateCharacterResponse, error)

	// GetCharacter retrieves a character by ID.
	GetCharacter(ctx context.Context, characterID int64) (*Character, error)

	// ListCharacters lists characters with optional filters.
	ListCharacters(ctx context.Context, filters CharacterFilters) ([]*Character, error)

	// RenameCharacter updates a character's name.
	RenameCharacter(ctx context.Context, characterID int64, name string) error

	// SetCharacterImage replaces a character's image bytes.
	SetCharacterImage(ctx context.Context, characterID int64, image []byte) error

	// SetCharacterGender updates a character's gender.
	SetCharacterGender(ctx context.Context, characterID int64, gender string) error

	// SetCharacterAliases replaces a character's alternate names.
	SetCharacterAliases(ctx context.Context, characterID int64, aliases []string) error

	// DeleteCharacter deletes a character.
	DeleteCharacter(ctx context.Context, characterID int64) error

	// RefreshMetadata re-fetches external metadata for a character and
	// updates its name/image URL from the upstream record.
	RefreshMetadata(ctx context.Context, characterID int64) (*Character, error)
}

// CreateCharacterRequest contains parameters for creating a character.
type CreateCharacterRequest struct {
	SeriesID  int64 // Optional
	Name      string
	Stars     int
	Gender    string
	Artist    string // Optional
	AnilistID int64 // Optional
}

// CreateCharacterResponse contains the result of creating a character.
type CreateCharacterResponse struct {
	CharacterID int64
	Character   *Character
}

// Character represents a character entity at the port boundary.
type Character struct {
	ID        int64
	SeriesID  int64
	Name      string
	Stars     int
	Gender    string
	Artist    string
	ImageURL  string
	AnilistID int64
	Aliases   []string
	CreatedAt string
	UpdatedAt string
}

// CharacterFilters contains filter options for listing characters.
type CharacterFilters struct {
	SeriesID int64
	Stars    int
	Limit    int
}
