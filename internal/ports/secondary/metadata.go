package secondary

import "context"

// CharacterMeta is external character metadata keyed by AniList ID.
type CharacterMeta struct {
	AnilistID   int64
	Name        string
	SiteURL     string
	ImageURL    string
	Description string
}

// MetadataClient defines the secondary port for external character metadata
// lookup. Implementations are expected to be slow (network) and are fronted
// by a bounded cache at the service layer.
type MetadataClient interface {
	// Character fetches metadata for one character.
	Character(ctx context.Context, anilistID int64) (*CharacterMeta, error)
}
