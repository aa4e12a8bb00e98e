package primary

import "context"

// SeriesService defines the primary port for series operations.
type SeriesService interface {
	// CreateSeries creates a new series.
	CreateSeries(ctx context.Context, title string) (*Series, error)

	// GetSeries retrieves a series by ID.
	GetSeries(ctx context.Context, seriesID int64) (*Series, error)

	// ListSeries lists all series.
	ListSeries(ctx context.Context) ([]*Series, error)

	// RenameSeries updates a series title.
	RenameSeries(ctx context.Context, seriesID int64, title string) error

	// SetSeriesBanner replaces a series banner image.
	SetSeriesBanner(ctx context.Context, seriesID int64, banner []byte) error

	// DeleteSeries deletes a series. Characters keep existing with their
	// series reference cleared.
	DeleteSeries(ctx context.Context, seriesID int64) error

	// SeriesPage retrieves one page of a series roster.
	SeriesPage(ctx context.Context, seriesID int64, page, perPage int) ([]*Character, error)
}

// Series represents a series entity at the port boundary.
type Series struct {
	ID             int64
	Title          string
	HasBanner      bool
	CharacterCount int
	CreatedAt      string
	UpdatedAt      string
}
