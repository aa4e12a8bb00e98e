package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/gachabot/internal/cli"
	"github.com/example/gachabot/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "gachabot",
		Short:   "gachabot - collectible character bot for Telegram groups",
		Version: version.String(),
		Long: `gachabot runs a collect-the-characters game in Telegram group chats.
Characters spawn as the chat talks, get claimed by replying with their name,
and escape when ignored. This CLI manages the roster and runs the bot.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.CharacterCmd())
	rootCmd.AddCommand(cli.SeriesCmd())
	rootCmd.AddCommand(cli.CollectionCmd())
	rootCmd.AddCommand(cli.GroupCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
