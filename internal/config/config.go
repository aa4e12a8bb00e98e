package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults for the game tuning knobs. They mirror the production values the
// bot has always run with; `gachabot init` writes them out so operators can
// tune per deployment.
const (
	DefaultSpawnMinMessages    = 80
	DefaultSpawnMaxMessages    = 160
	DefaultEscapeAfterMessages = 35
	DefaultCollectionCap       = 9
	DefaultMetadataCacheSize   = 256
	DefaultLanguageCode        = "en"
)

// Config represents the flat gachabot configuration
type Config struct {
	Version      string  `json:"version"`
	BotToken     string  `json:"bot_token"`
	AdminIDs     []int64 `json:"admin_ids,omitempty"` // users allowed to run edit dialogs
	LanguageCode string  `json:"language_code,omitempty"`

	SpawnMinMessages    int `json:"spawn_min_messages"`
	SpawnMaxMessages    int `json:"spawn_max_messages"`
	EscapeAfterMessages int `json:"escape_after_messages"`
	CollectionCap       int `json:"collection_cap"`
	MetadataCacheSize   int `json:"metadata_cache_size,omitempty"`
}

// LoadConfig reads config.json from the gachabot dot-directory under the
// user's home. Returns error if no config found - caller should handle
// accordingly (usually by suggesting `gachabot init`).
func LoadConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the gachabot dot-directory.
func SaveConfig(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Dir returns the gachabot dot-directory path (~/.gachabot).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".gachabot"), nil
}

// Default returns a Config populated with default tuning values and an empty
// bot token.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SpawnMinMessages == 0 {
		c.SpawnMinMessages = DefaultSpawnMinMessages
	}
	if c.SpawnMaxMessages == 0 {
		c.SpawnMaxMessages = DefaultSpawnMaxMessages
	}
	if c.EscapeAfterMessages == 0 {
		c.EscapeAfterMessages = DefaultEscapeAfterMessages
	}
	if c.CollectionCap == 0 {
		c.CollectionCap = DefaultCollectionCap
	}
	if c.MetadataCacheSize == 0 {
		c.MetadataCacheSize = DefaultMetadataCacheSize
	}
	if c.LanguageCode == "" {
		c.LanguageCode = DefaultLanguageCode
	}
}

// Validate checks the invariants between tuning values.
func (c *Config) Validate() error {
	if c.SpawnMinMessages < 1 {
		return fmt.Errorf("spawn_min_messages must be at least 1, got %d", c.SpawnMinMessages)
	}
	if c.SpawnMaxMessages <= c.SpawnMinMessages {
		return fmt.Errorf("spawn_max_messages (%d) must be greater than spawn_min_messages (%d)",
			c.SpawnMaxMessages, c.SpawnMinMessages)
	}
	if c.EscapeAfterMessages < 1 {
		return fmt.Errorf("escape_after_messages must be at least 1, got %d", c.EscapeAfterMessages)
	}
	if c.CollectionCap < 1 {
		return fmt.Errorf("collection_cap must be at least 1, got %d", c.CollectionCap)
	}
	return nil
}

// IsAdmin reports whether the user is listed in admin_ids.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
