package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/gachabot/internal/config"
	"github.com/example/gachabot/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the gachabot environment",
		Long: `Environment health check for gachabot.

Validates:
- Config file (~/.gachabot/config.json) and bot token
- Database file and schema
- Roster size (at least one character to spawn)
- Admin list (needed for the in-chat edit dialogs)

Examples:
  gachabot doctor              # Run full health check
  gachabot doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfig(),
				checkDatabase(),
				checkRoster(),
				checkAdmins(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printResults(results)
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Exit code only, no output")
	return cmd
}

func printResults(results []CheckResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	fmt.Println()
	fmt.Println("Check          Status")
	fmt.Println("─────────────────────")
	for _, r := range results {
		var status string
		switch r.Status {
		case "✓":
			status = green.Sprint(r.Status)
		case "⚠":
			status = yellow.Sprint(r.Status)
		default:
			status = red.Sprint(r.Status)
		}
		fmt.Printf("%-14s %s\n", r.Name, status)
	}
	fmt.Println()

	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			fmt.Printf("%s: %s\n", r.Name, r.Details)
		}
	}
}

func checkConfig() CheckResult {
	cfg, err := config.LoadConfig()
	if err != nil {
		return CheckResult{
			Name:    "config",
			Status:  "✗",
			Details: "no config found, run: gachabot init",
		}
	}
	if cfg.BotToken == "" {
		return CheckResult{
			Name:    "config",
			Status:  "⚠",
			Details: "bot_token is empty, the bot cannot connect to Telegram",
		}
	}
	return CheckResult{Name: "config", Status: "✓"}
}

func checkDatabase() CheckResult {
	dbPath, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		return CheckResult{
			Name:    "database",
			Status:  "✗",
			Details: "no ~/.gachabot directory, run: gachabot init",
		}
	}

	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	for _, table := range []string{"characters", "series", "collections", "spawn_states", "events"} {
		exists, err := db.TableExists(database, table)
		if err != nil {
			return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
		}
		if !exists {
			return CheckResult{
				Name:    "database",
				Status:  "✗",
				Details: fmt.Sprintf("missing table %s, run: gachabot init", table),
			}
		}
	}
	return CheckResult{Name: "database", Status: "✓"}
}

func checkRoster() CheckResult {
	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "roster", Status: "✗", Details: err.Error()}
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM characters").Scan(&count); err != nil {
		return CheckResult{Name: "roster", Status: "✗", Details: err.Error()}
	}
	if count == 0 {
		return CheckResult{
			Name:    "roster",
			Status:  "⚠",
			Details: "no characters yet, nothing can spawn",
		}
	}
	return CheckResult{Name: "roster", Status: "✓"}
}

func checkAdmins() CheckResult {
	cfg, err := config.LoadConfig()
	if err != nil || len(cfg.AdminIDs) == 0 {
		return CheckResult{
			Name:    "admins",
			Status:  "⚠",
			Details: "no admin_ids configured, in-chat edit dialogs are disabled",
		}
	}
	return CheckResult{Name: "admins", Status: "✓"}
}
