package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/gachabot/internal/ports/primary"
)

// mockSeriesService implements primary.SeriesService for testing.
type mockSeriesService struct {
	series    map[int64]*primary.Series
	pages     map[int64][]*primary.Character
	nextID    int64
	createErr error
}

func newMockSeriesService() *mockSeriesService {
	return &mockSeriesService{
		series: make(map[int64]*primary.Series),
		pages:  make(map[int64][]*primary.Character),
		nextID: 1,
	}
}

func (m *mockSeriesService) CreateSeries(ctx context.Context, title string) (*primary.Series, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	series := &primary.Series{ID: m.nextID, Title: title}
	m.series[m.nextID] = series
	m.nextID++
	return series, nil
}

func (m *mockSeriesService) GetSeries(ctx context.Context, seriesID int64) (*primary.Series, error) {
	if series, ok := m.series[seriesID]; ok {
		return series, nil
	}
	return nil, errors.New("series not found")
}

func (m *mockSeriesService) ListSeries(ctx context.Context) ([]*primary.Series, error) {
	var result []*primary.Series
	for _, series := range m.series {
		result = append(result, series)
	}
	return result, nil
}

func (m *mockSeriesService) RenameSeries(ctx context.Context, seriesID int64, title string) error {
	if series, ok := m.series[seriesID]; ok {
		series.Title = title
		return nil
	}
	return errors.New("series not found")
}

func (m *mockSeriesService) SetSeriesBanner(ctx context.Context, seriesID int64, banner []byte) error {
	return nil
}

func (m *mockSeriesService) DeleteSeries(ctx context.Context, seriesID int64) error {
	delete(m.series, seriesID)
	return nil
}

func (m *mockSeriesService) SeriesPage(ctx context.Context, seriesID int64, page, perPage int) ([]*primary.Character, error) {
	return m.pages[seriesID], nil
}

func TestSeriesAdapter_Create(t *testing.T) {
	service := newMockSeriesService()
	var out bytes.Buffer
	adapter := NewSeriesAdapter(service, &out)

	series, err := adapter.Create(context.Background(), "Moonlit Academy")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if series.ID == 0 {
		t.Error("expected series ID to be set")
	}
	if !strings.Contains(out.String(), "Moonlit Academy") {
		t.Errorf("expected confirmation to name the series, got %q", out.String())
	}
}

func TestSeriesAdapter_ListEmpty(t *testing.T) {
	service := newMockSeriesService()
	var out bytes.Buffer
	adapter := NewSeriesAdapter(service, &out)

	if _, err := adapter.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No series found.") {
		t.Errorf("expected empty-state hint, got %q", out.String())
	}
}

func TestSeriesAdapter_ListTable(t *testing.T) {
	service := newMockSeriesService()
	service.series[5] = &primary.Series{ID: 5, Title: "Moonlit Academy", CharacterCount: 3, HasBanner: true}
	var out bytes.Buffer
	adapter := NewSeriesAdapter(service, &out)

	if _, err := adapter.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "Moonlit Academy") || !strings.Contains(out.String(), "yes") {
		t.Errorf("expected table with banner marker, got %q", out.String())
	}
}

func TestSeriesAdapter_Page(t *testing.T) {
	service := newMockSeriesService()
	service.series[5] = &primary.Series{ID: 5, Title: "Moonlit Academy"}
	service.pages[5] = []*primary.Character{{ID: 1, Name: "Aria", Stars: 5}}
	var out bytes.Buffer
	adapter := NewSeriesAdapter(service, &out)

	characters, err := adapter.Page(context.Background(), 5, 1, 10)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(characters) != 1 {
		t.Fatalf("expected 1 character, got %d", len(characters))
	}
	if !strings.Contains(out.String(), "Aria") {
		t.Errorf("expected roster output, got %q", out.String())
	}
}

func TestSeriesAdapter_PageEmpty(t *testing.T) {
	service := newMockSeriesService()
	var out bytes.Buffer
	adapter := NewSeriesAdapter(service, &out)

	if _, err := adapter.Page(context.Background(), 5, 2, 10); err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if !strings.Contains(out.String(), "No characters on page 2.") {
		t.Errorf("expected empty page notice, got %q", out.String())
	}
}
