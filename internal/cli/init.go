package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/gachabot/internal/config"
	"github.com/example/gachabot/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the gachabot database and config",
		Long:  `Initialize the gachabot database at ~/.gachabot/gachabot.db with the required schema, and write a default config.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing gachabot database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			created, err := initConfig()
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			if created {
				fmt.Println("✓ Config file created at ~/.gachabot/config.json")
			} else {
				fmt.Println("✓ Config file already exists, left untouched")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  1. Put your bot token into ~/.gachabot/config.json (bot_token)")
			fmt.Println("  2. gachabot series create \"My First Series\"")
			fmt.Println("  3. gachabot character create \"First Character\" --stars 3")
			fmt.Println("  4. gachabot run")

			return nil
		},
	}
}

// initConfig writes the default config.json unless one already exists.
func initConfig() (created bool, err error) {
	dir, err := config.Dir()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err == nil {
		return false, nil
	}

	if err := config.SaveConfig(config.Default()); err != nil {
		return false, err
	}
	return true, nil
}
