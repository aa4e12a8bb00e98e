package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/wire"
)

// CharacterCmd returns the character command
func CharacterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Manage the character roster",
		Long:  `Create, inspect and edit the characters that spawn in group chats.`,
	}

	cmd.AddCommand(characterCreateCmd())
	cmd.AddCommand(characterListCmd())
	cmd.AddCommand(characterShowCmd())
	cmd.AddCommand(characterRenameCmd())
	cmd.AddCommand(characterAliasCmd())
	cmd.AddCommand(characterDeleteCmd())
	cmd.AddCommand(characterRefreshCmd())

	return cmd
}

func characterCreateCmd() *cobra.Command {
	var seriesID int64
	var stars int
	var gender string
	var artist string
	var anilistID int64

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new character",
		Long: `Create a new character in the roster.

Examples:
  gachabot character create "Aria Nightshade" --stars 5 --series 1
  gachabot character create "Nix" --stars 2 --gender other --anilist 124845`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, err := wire.CharacterAdapter().Create(ctx, primary.CreateCharacterRequest{
				SeriesID:  seriesID,
				Name:      args[0],
				Stars:     stars,
				Gender:    gender,
				Artist:    artist,
				AnilistID: anilistID,
			})
			return err
		},
	}

	cmd.Flags().Int64Var(&seriesID, "series", 0, "Series ID the character belongs to")
	cmd.Flags().IntVar(&stars, "stars", 3, "Rarity from 1 to 5")
	cmd.Flags().StringVar(&gender, "gender", "", "female, male or other")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist credit")
	cmd.Flags().Int64Var(&anilistID, "anilist", 0, "AniList character ID for metadata refresh")
	return cmd
}

func characterListCmd() *cobra.Command {
	var seriesID int64
	var stars int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, err := wire.CharacterAdapter().List(ctx, primary.CharacterFilters{
				SeriesID: seriesID,
				Stars:    stars,
			})
			return err
		},
	}

	cmd.Flags().Int64Var(&seriesID, "series", 0, "Filter by series ID")
	cmd.Flags().IntVar(&stars, "stars", 0, "Filter by star rating")
	return cmd
}

func characterShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show character details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = wire.CharacterAdapter().Show(context.Background(), id)
			return err
		},
	}
}

func characterRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return wire.CharacterAdapter().Rename(context.Background(), id, args[1])
		},
	}
}

func characterAliasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alias [id] [alias...]",
		Short: "Replace a character's alternate names",
		Long: `Replace the full alias list of a character. Aliases count as correct
guesses alongside the canonical name.

Examples:
  gachabot character alias 7 "Josephine Baker" "Jo"
  gachabot character alias 7        # clear all aliases`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return wire.CharacterAdapter().SetAliases(context.Background(), id, args[1:])
		},
	}
}

func characterDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return wire.CharacterAdapter().Delete(context.Background(), id)
		},
	}
}

func characterRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [id]",
		Short: "Refresh character metadata from AniList",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = wire.CharacterAdapter().Refresh(context.Background(), id)
			return err
		},
	}
}

// parseID parses a numeric entity ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}
