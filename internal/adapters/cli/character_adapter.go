// Package cli contains thin adapters translating CLI operations to service
// calls and rendering their results for the terminal.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/gachabot/internal/ports/primary"
)

// CharacterAdapter is a thin adapter that translates CLI operations to
// CharacterService calls. It depends only on the service interface, enabling
// easy testing with mocks.
type CharacterAdapter struct {
	service primary.CharacterService
	out     io.Writer
}

// NewCharacterAdapter creates a new CharacterAdapter with the given service.
func NewCharacterAdapter(service primary.CharacterService, out io.Writer) *CharacterAdapter {
	return &CharacterAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a character and prints a confirmation.
func (a *CharacterAdapter) Create(ctx context.Context, req primary.CreateCharacterRequest) (*primary.Character, error) {
	resp, err := a.service.CreateCharacter(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Created character %d: %s (%d★)\n",
		resp.CharacterID, resp.Character.Name, resp.Character.Stars)
	return resp.Character, nil
}

// List lists characters with optional filters.
func (a *CharacterAdapter) List(ctx context.Context, filters primary.CharacterFilters) ([]*primary.Character, error) {
	characters, err := a.service.ListCharacters(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	if len(characters) == 0 {
		fmt.Fprintln(a.out, "No characters found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first character:")
		fmt.Fprintln(a.out, "  gachabot character create \"Aria Nightshade\" --stars 5")
		return characters, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSERIES\tSTARS\tGENDER")
	fmt.Fprintln(w, "--\t----\t------\t-----\t------")

	for _, character := range characters {
		series := "-"
		if character.SeriesID != 0 {
			series = fmt.Sprintf("%d", character.SeriesID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			character.ID,
			character.Name,
			series,
			character.Stars,
			character.Gender,
		)
	}

	w.Flush()
	return characters, nil
}

// Show displays details for a single character.
func (a *CharacterAdapter) Show(ctx context.Context, characterID int64) (*primary.Character, error) {
	character, err := a.service.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	fmt.Fprintf(a.out, "\nCharacter: %d\n", character.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", character.Name)
	fmt.Fprintf(a.out, "Stars:   %d\n", character.Stars)
	fmt.Fprintf(a.out, "Gender:  %s\n", character.Gender)
	if character.SeriesID != 0 {
		fmt.Fprintf(a.out, "Series:  %d\n", character.SeriesID)
	}
	if character.Artist != "" {
		fmt.Fprintf(a.out, "Artist:  %s\n", character.Artist)
	}
	if character.AnilistID != 0 {
		fmt.Fprintf(a.out, "AniList: %d\n", character.AnilistID)
	}
	if len(character.Aliases) > 0 {
		fmt.Fprintf(a.out, "Aliases: %s\n", strings.Join(character.Aliases, ", "))
	}
	fmt.Fprintf(a.out, "Created: %s\n", character.CreatedAt)
	fmt.Fprintln(a.out)

	return character, nil
}

// Rename updates a character's name.
func (a *CharacterAdapter) Rename(ctx context.Context, characterID int64, name string) error {
	if err := a.service.RenameCharacter(ctx, characterID, name); err != nil {
		return fmt.Errorf("failed to rename character: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Renamed character %d to %s\n", characterID, name)
	return nil
}

// SetAliases replaces a character's alternate names.
func (a *CharacterAdapter) SetAliases(ctx context.Context, characterID int64, aliases []string) error {
	if err := a.service.SetCharacterAliases(ctx, characterID, aliases); err != nil {
		return fmt.Errorf("failed to set aliases: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Set %d alias(es) for character %d\n", len(aliases), characterID)
	return nil
}

// Delete removes a character.
func (a *CharacterAdapter) Delete(ctx context.Context, characterID int64) error {
	if err := a.service.DeleteCharacter(ctx, characterID); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Deleted character %d\n", characterID)
	return nil
}

// Refresh re-fetches external metadata for a character.
func (a *CharacterAdapter) Refresh(ctx context.Context, characterID int64) (*primary.Character, error) {
	character, err := a.service.RefreshMetadata(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh metadata: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Refreshed character %d from AniList: %s\n", character.ID, character.Name)
	return character, nil
}
