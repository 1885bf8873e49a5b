package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"boxoffice/internal/logging"
	"boxoffice/internal/services"
	"boxoffice/internal/table"
	"boxoffice/internal/tmdb"
)

// Dataset is a built table plus the bookkeeping of how it was produced.
type Dataset struct {
	Variant    Variant
	Table      *table.Table
	Discovered int
	Rejected   []Row
}

// Builder assembles dataset tables from the catalog.
type Builder struct {
	catalog tmdb.Catalog
	logger  *slog.Logger
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(catalog tmdb.Catalog, logger *slog.Logger) *Builder {
	return &Builder{
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "dataset"),
	}
}

// Enrich looks up the details of every discover result, one request at a
// time, and returns the merged rows in input order. The first failed lookup
// aborts enrichment and no rows are returned.
func Enrich(ctx context.Context, catalog tmdb.Catalog, results []tmdb.Movie) ([]Row, error) {
	rows := make([]Row, 0, len(results))
	for _, movie := range results {
		details, err := catalog.MovieDetails(ctx, movie.ID)
		if err != nil {
			return nil, fmt.Errorf("enrich %q (id %d): %w", movie.Title, movie.ID, err)
		}
		rows = append(rows, Row{
			ID:          movie.ID,
			Film:        movie.Title,
			Revenue:     details.Revenue,
			Budget:      details.Budget,
			ReleaseDate: details.ReleaseDate,
		})
	}
	return rows, nil
}

// Discover fetches the variant's discover pages in order and concatenates
// their results. It stops early once the catalog reports no further pages.
func (b *Builder) Discover(ctx context.Context, v Variant) ([]tmdb.Movie, error) {
	pages := v.Pages
	if pages < 1 {
		pages = 1
	}
	var results []tmdb.Movie
	for page := 1; page <= pages; page++ {
		resp, err := b.catalog.Discover(ctx, v.discoverOptions(page))
		if err != nil {
			return nil, fmt.Errorf("discover %s page %d: %w", v.Name, page, err)
		}
		results = append(results, resp.Results...)
		if resp.TotalPages > 0 && page >= resp.TotalPages {
			break
		}
	}
	return results, nil
}

// Build discovers, enriches, filters, and tabulates one dataset variant.
func (b *Builder) Build(ctx context.Context, v Variant) (*Dataset, error) {
	ctx = services.WithDataset(ctx, v.Name)
	logger := logging.WithContext(ctx, b.logger)

	results, err := b.Discover(services.WithStage(ctx, "discover"), v)
	if err != nil {
		return nil, err
	}
	logger.Info("discover complete", logging.Int("results", len(results)))

	rows, err := Enrich(services.WithStage(ctx, "enrich"), b.catalog, results)
	if err != nil {
		return nil, err
	}

	tbl, err := table.New(v.Schema)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{Variant: v, Table: tbl, Discovered: len(results)}
	for _, row := range rows {
		if v.QualityFilter && !Accept(row) {
			ds.Rejected = append(ds.Rejected, row)
			logger.Warn("row rejected by budget sanity check",
				logging.String("film", row.Film),
				logging.Int64("budget", row.Budget),
				logging.Int64("threshold", MinPlausibleBudget),
			)
			continue
		}
		if err := tbl.Append(v.Values(row)...); err != nil {
			return nil, err
		}
	}
	logger.Info("dataset built",
		logging.Int("rows", tbl.Len()),
		logging.Int("rejected", len(ds.Rejected)),
	)
	return ds, nil
}
