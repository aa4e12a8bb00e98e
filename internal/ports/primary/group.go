package primary

import "context"

// GroupService defines the primary port for group chat operations.
type GroupService interface {
	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID int64) (*Group, error)

	// SetGroupLanguage updates the language the bot speaks in a group.
	SetGroupLanguage(ctx context.Context, groupID int64, languageCode string) error
}

// Group represents a group chat entity at the port boundary.
type Group struct {
	ID           int64
	Title        string
	Username     string
	LanguageCode string
	CreatedAt    string
}
