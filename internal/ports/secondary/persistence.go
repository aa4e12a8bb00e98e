// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems: persistence, the chat transport, and metadata lookup.
package secondary

import "context"

// CharacterRepository defines the secondary port for character persistence.
type CharacterRepository interface {
	// Create persists a new character.
	Create(ctx context.Context, character *CharacterRecord) error

	// GetByID retrieves a character by its ID.
	GetByID(ctx context.Context, id int64) (*CharacterRecord, error)

	// Update updates an existing character.
	Update(ctx context.Context, character *CharacterRecord) error

	// Delete removes a character from persistence.
	Delete(ctx context.Context, id int64) error

	// List retrieves characters matching the given filters.
	List(ctx context.Context, filters CharacterFilters) ([]*CharacterRecord, error)

	// Random retrieves one character uniformly at random, or nil when the
	// roster is empty.
	Random(ctx context.Context) (*CharacterRecord, error)

	// SelectBySeriesPage retrieves one page of a series' characters ordered
	// by ID. Pages are 1-based.
	SelectBySeriesPage(ctx context.Context, seriesID int64, page, perPage int) ([]*CharacterRecord, error)

	// GetNextID returns the next available character ID.
	GetNextID(ctx context.Context) (int64, error)

	// SeriesExists checks if a series exists (for validation).
	SeriesExists(ctx context.Context, seriesID int64) (bool, error)
}

// CharacterRecord represents a character as stored in persistence.
type CharacterRecord struct {
	ID       int64
	SeriesID int64 // 0 means null
	Name     string
	Stars    int
	Gender   string
	Artist   string // Empty string means null
	Image    []byte // Lazily cached image bytes; nil means not fetched yet
	ImageURL string // Empty string means null
	AnilistID int64 // 0 means null - cross-reference to external metadata
	Aliases  string // Newline-joined alternate names; empty string means null
	CreatedAt string
	UpdatedAt string
}

// CharacterFilters contains filter options for querying characters.
type CharacterFilters struct {
	SeriesID int64
	Stars    int
	Limit    int
}

// SeriesRepository defines the secondary port for series persistence.
type SeriesRepository interface {
	// Create persists a new series.
	Create(ctx context.Context, series *SeriesRecord) error

	// GetByID retrieves a series by its ID.
	GetByID(ctx context.Context, id int64) (*SeriesRecord, error)

	// Update updates an existing series.
	Update(ctx context.Context, series *SeriesRecord) error

	// Delete removes a series from persistence.
	Delete(ctx context.Context, id int64) error

	// List retrieves all series ordered by title.
	List(ctx context.Context) ([]*SeriesRecord, error)

	// GetNextID returns the next available series ID.
	GetNextID(ctx context.Context) (int64, error)

	// CountCharacters returns the number of characters in a series.
	CountCharacters(ctx context.Context, seriesID int64) (int, error)
}

// SeriesRecord represents a series as stored in persistence.
type SeriesRecord struct {
	ID        int64
	Title     string
	Banner    []byte // nil means no banner uploaded
	CreatedAt string
	UpdatedAt string
}

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// Upsert inserts the user or refreshes username/full name on conflict.
	Upsert(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by its ID.
	GetByID(ctx context.Context, id int64) (*UserRecord, error)

	// SetLanguage updates the preferred language for a user.
	SetLanguage(ctx context.Context, id int64, languageCode string) error
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID           int64
	Username     string // Empty string means null
	FullName     string
	LanguageCode string
	CreatedAt    string
	UpdatedAt    string
}

// GroupRepository defines the secondary port for group chat persistence.
type GroupRepository interface {
	// Upsert inserts the group or refreshes title/username on conflict.
	Upsert(ctx context.Context, group *GroupRecord) error

	// GetByID retrieves a group by its ID.
	GetByID(ctx context.Context, id int64) (*GroupRecord, error)

	// SetLanguage updates the language for a group.
	SetLanguage(ctx context.Context, id int64, languageCode string) error
}

// GroupRecord represents a group chat as stored in persistence.
type GroupRecord struct {
	ID           int64
	Title        string
	Username     string // Empty string means null
	LanguageCode string
	CreatedAt    string
	UpdatedAt    string
}

// SpawnStateRepository defines the secondary port for per-chat spawn state
// persistence. One row per chat, created lazily on first touch.
type SpawnStateRepository interface {
	// Get retrieves the spawn state for a chat, or nil when the chat has
	// never been seen.
	Get(ctx context.Context, chatID int64) (*SpawnStateRecord, error)

	// Put inserts or replaces the spawn state for a chat.
	Put(ctx context.Context, state *SpawnStateRecord) error

	// Delete removes the spawn state for a chat.
	Delete(ctx context.Context, chatID int64) error
}

// SpawnStateRecord represents a chat's spawn bookkeeping as stored in
// persistence. CurrentCharacterID is non-zero iff a claim window is open.
type SpawnStateRecord struct {
	ChatID             int64
	CurrentCharacterID int64 // 0 means no open claim
	ClaimMessageID     int   // 0 means no open claim
	MessagesSinceSpawn int
	MessagesNeeded     int
	LastCharacterID    int64 // Previous spawn, for back-to-back repeat avoidance
	CreatedAt          string
	UpdatedAt          string
}

// CollectionRepository defines the secondary port for per-user per-chat
// collection persistence.
type CollectionRepository interface {
	// Add appends a character to the user's collection in a chat. Returns an
	// error if the character is already present.
	Add(ctx context.Context, userID, chatID, characterID int64) error

	// Remove deletes a character from the user's collection in a chat.
	Remove(ctx context.Context, userID, chatID, characterID int64) error

	// List retrieves the user's collected character IDs in insertion order.
	List(ctx context.Context, userID, chatID int64) ([]int64, error)

	// Contains checks whether the user already collected the character in
	// the chat.
	Contains(ctx context.Context, userID, chatID, characterID int64) (bool, error)

	// Count returns the collection size for a user in a chat.
	Count(ctx context.Context, userID, chatID int64) (int, error)

	// Oldest returns the earliest-claimed character ID for a user in a chat,
	// or 0 when the collection is empty.
	Oldest(ctx context.Context, userID, chatID int64) (int64, error)
}

// EventKind enumerates the game audit event kinds.
type EventKind string

const (
	// EventSpawn records a character being presented in a chat.
	EventSpawn EventKind = "spawn"
	// EventClaim records a successful claim.
	EventClaim EventKind = "claim"
	// EventEscape records a forced expiry of an unclaimed character.
	EventEscape EventKind = "escape"
	// EventCheat records a claim rejected because the guesser was a bot.
	EventCheat EventKind = "cheat"
	// EventSwap records a collection swap accepted during a cap negotiation.
	EventSwap EventKind = "swap"
)

// EventLogWriter defines the secondary port for the append-only game audit
// trail.
type EventLogWriter interface {
	// LogEvent appends one game event. userID and characterID may be zero
	// when not applicable to the event kind.
	LogEvent(ctx context.Context, chatID, userID, characterID int64, kind EventKind) error
}
