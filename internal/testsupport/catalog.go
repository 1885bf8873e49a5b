package testsupport

import (
	"context"
	"fmt"

	"boxoffice/internal/services"
	"boxoffice/internal/tmdb"
)

// FakeCatalog is an in-memory tmdb.Catalog. Discover pages are keyed by
// release year (0 for all time) and served in order.
type FakeCatalog struct {
	Pages   map[int][]tmdb.DiscoverPage
	Details map[int64]tmdb.MovieDetails
	// DetailErrors makes MovieDetails fail for the given IDs.
	DetailErrors map[int64]error

	DiscoverCalls []tmdb.DiscoverOptions
	DetailCalls   []int64
}

var _ tmdb.Catalog = (*FakeCatalog)(nil)

// NewFakeCatalog returns an empty fake.
func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		Pages:        map[int][]tmdb.DiscoverPage{},
		Details:      map[int64]tmdb.MovieDetails{},
		DetailErrors: map[int64]error{},
	}
}

// AddMovie registers a discover entry on the last page for year (creating
// page 1 when needed) together with its details.
func (f *FakeCatalog) AddMovie(year int, details tmdb.MovieDetails) {
	pages := f.Pages[year]
	if len(pages) == 0 {
		pages = append(pages, tmdb.DiscoverPage{Page: 1, TotalPages: 1})
	}
	last := &pages[len(pages)-1]
	last.Results = append(last.Results, tmdb.Movie{ID: details.ID, Title: details.Title})
	last.TotalResults++
	f.Pages[year] = pages
	f.Details[details.ID] = details
}

// Discover implements tmdb.Catalog.
func (f *FakeCatalog) Discover(_ context.Context, opts tmdb.DiscoverOptions) (*tmdb.DiscoverPage, error) {
	f.DiscoverCalls = append(f.DiscoverCalls, opts)
	pages := f.Pages[opts.Year]
	page := opts.Page
	if page < 1 {
		page = 1
	}
	if page > len(pages) {
		return &tmdb.DiscoverPage{Page: page, TotalPages: len(pages), Results: []tmdb.Movie{}}, nil
	}
	resp := pages[page-1]
	resp.TotalPages = len(pages)
	return &resp, nil
}

// MovieDetails implements tmdb.Catalog.
func (f *FakeCatalog) MovieDetails(_ context.Context, movieID int64) (*tmdb.MovieDetails, error) {
	f.DetailCalls = append(f.DetailCalls, movieID)
	if err, ok := f.DetailErrors[movieID]; ok {
		return nil, err
	}
	details, ok := f.Details[movieID]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "catalog", "detail", fmt.Sprintf("movie %d", movieID), nil)
	}
	return &details, nil
}
