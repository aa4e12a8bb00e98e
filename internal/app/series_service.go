package app

import (
	"context"
	"fmt"

	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/ports/secondary"
)

// SeriesServiceImpl implements the SeriesService interface.
type SeriesServiceImpl struct {
	seriesRepo    secondary.SeriesRepository
	characterRepo secondary.CharacterRepository
}

// NewSeriesService creates a new SeriesService with injected dependencies.
func NewSeriesService(seriesRepo secondary.SeriesRepository, characterRepo secondary.CharacterRepository) *SeriesServiceImpl {
	return &SeriesServiceImpl{
		seriesRepo:    seriesRepo,
		characterRepo: characterRepo,
	}
}

// CreateSeries creates a new series.
func (s *SeriesServiceImpl) CreateSeries(ctx context.Context, title string) (*primary.Series, error) {
	if title == "" {
		return nil, fmt.Errorf("series title is required")
	}

	nextID, err := s.seriesRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate series ID: %w", err)
	}

	record := &secondary.SeriesRecord{
		ID:    nextID,
		Title: title,
	}
	if err := s.seriesRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create series: %w", err)
	}

	return s.GetSeries(ctx, nextID)
}

// GetSeries retrieves a series by ID.
func (s *SeriesServiceImpl) GetSeries(ctx context.Context, seriesID int64) (*primary.Series, error) {
	record, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	count, err := s.seriesRepo.CountCharacters(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to count series characters: %w", err)
	}

	return s.recordToSeries(record, count), nil
}

// ListSeries lists all series.
func (s *SeriesServiceImpl) ListSeries(ctx context.Context) ([]*primary.Series, error) {
	records, err := s.seriesRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	series := make([]*primary.Series, 0, len(records))
	for _, record := range records {
		count, err := s.seriesRepo.CountCharacters(ctx, record.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count series characters: %w", err)
		}
		series = append(series, s.recordToSeries(record, count))
	}
	return series, nil
}

// RenameSeries updates a series title.
func (s *SeriesServiceImpl) RenameSeries(ctx context.Context, seriesID int64, title string) error {
	if title == "" {
		return fmt.Errorf("series title is required")
	}

	record, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return err
	}

	record.Title = title
	return s.seriesRepo.Update(ctx, record)
}

// SetSeriesBanner replaces a series banner image.
func (s *SeriesServiceImpl) SetSeriesBanner(ctx context.Context, seriesID int64, banner []byte) error {
	record, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return err
	}

	record.Banner = banner
	return s.seriesRepo.Update(ctx, record)
}

// DeleteSeries deletes a series. Characters keep existing with their series
// reference cleared by the schema's ON DELETE SET NULL.
func (s *SeriesServiceImpl) DeleteSeries(ctx context.Context, seriesID int64) error {
	return s.seriesRepo.Delete(ctx, seriesID)
}

// SeriesPage retrieves one page of a series roster.
func (s *SeriesServiceImpl) SeriesPage(ctx context.Context, seriesID int64, page, perPage int) ([]*primary.Character, error) {
	if perPage < 1 {
		perPage = 10
	}

	records, err := s.characterRepo.SelectBySeriesPage(ctx, seriesID, page, perPage)
	if err != nil {
		return nil, err
	}

	characters := make([]*primary.Character, 0, len(records))
	for _, record := range records {
		characters = append(characters, &primary.Character{
			ID:       record.ID,
			SeriesID: record.SeriesID,
			Name:     record.Name,
			Stars:    record.Stars,
			Gender:   record.Gender,
		})
	}
	return characters, nil
}

func (s *SeriesServiceImpl) recordToSeries(record *secondary.SeriesRecord, count int) *primary.Series {
	return &primary.Series{
		ID:             record.ID,
		Title:          record.Title,
		HasBanner:      len(record.Banner) > 0,
		CharacterCount: count,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

// Ensure SeriesServiceImpl implements the interface.
var _ primary.SeriesService = (*SeriesServiceImpl)(nil)
