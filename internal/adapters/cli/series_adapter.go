package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/gachabot/internal/ports/primary"
)

// SeriesAdapter is a thin adapter that translates CLI operations to
// SeriesService calls.
type SeriesAdapter struct {
	service primary.SeriesService
	out     io.Writer
}

// NewSeriesAdapter creates a new SeriesAdapter with the given service.
func NewSeriesAdapter(service primary.SeriesService, out io.Writer) *SeriesAdapter {
	return &SeriesAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a series and prints a confirmation.
func (a *SeriesAdapter) Create(ctx context.Context, title string) (*primary.Series, error) {
	series, err := a.service.CreateSeries(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to create series: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Created series %d: %s\n", series.ID, series.Title)
	return series, nil
}

// List lists all series.
func (a *SeriesAdapter) List(ctx context.Context) ([]*primary.Series, error) {
	series, err := a.service.ListSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	if len(series) == 0 {
		fmt.Fprintln(a.out, "No series found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first series:")
		fmt.Fprintln(a.out, "  gachabot series create \"Moonlit Academy\"")
		return series, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCHARACTERS\tBANNER")
	fmt.Fprintln(w, "--\t-----\t----------\t------")

	for _, s := range series {
		banner := "-"
		if s.HasBanner {
			banner = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", s.ID, s.Title, s.CharacterCount, banner)
	}

	w.Flush()
	return series, nil
}

// Show displays details for a single series.
func (a *SeriesAdapter) Show(ctx context.Context, seriesID int64) (*primary.Series, error) {
	series, err := a.service.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	fmt.Fprintf(a.out, "\nSeries: %d\n", series.ID)
	fmt.Fprintf(a.out, "Title:      %s\n", series.Title)
	fmt.Fprintf(a.out, "Characters: %d\n", series.CharacterCount)
	fmt.Fprintf(a.out, "Banner:     %v\n", series.HasBanner)
	fmt.Fprintf(a.out, "Created:    %s\n", series.CreatedAt)
	fmt.Fprintln(a.out)

	return series, nil
}

// Rename updates a series title.
func (a *SeriesAdapter) Rename(ctx context.Context, seriesID int64, title string) error {
	if err := a.service.RenameSeries(ctx, seriesID, title); err != nil {
		return fmt.Errorf("failed to rename series: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Renamed series %d to %s\n", seriesID, title)
	return nil
}

// Delete removes a series. Its characters keep existing without a series.
func (a *SeriesAdapter) Delete(ctx context.Context, seriesID int64) error {
	if err := a.service.DeleteSeries(ctx, seriesID); err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Deleted series %d\n", seriesID)
	return nil
}

// Page lists one page of a series roster.
func (a *SeriesAdapter) Page(ctx context.Context, seriesID int64, page, perPage int) ([]*primary.Character, error) {
	characters, err := a.service.SeriesPage(ctx, seriesID, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to load series page: %w", err)
	}

	if len(characters) == 0 {
		fmt.Fprintf(a.out, "No characters on page %d.\n", page)
		return characters, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTARS")
	fmt.Fprintln(w, "--\t----\t-----")
	for _, character := range characters {
		fmt.Fprintf(w, "%d\t%s\t%d\n", character.ID, character.Name, character.Stars)
	}
	w.Flush()

	return characters, nil
}
