package dataset

import (
	"fmt"

	"boxoffice/internal/table"
	"boxoffice/internal/tmdb"
)

// Row is one discover result merged with its detail lookup. Budget is the
// raw, positive catalog value.
type Row struct {
	ID          int64
	Film        string
	Revenue     int64
	Budget      int64
	ReleaseDate string
}

// Variant describes one dataset: which movies to discover and how their
// rows are projected into a table.
type Variant struct {
	Name          string
	Title         string
	Year          int
	Pages         int
	QualityFilter bool
	Schema        table.Schema
	project       func(Row) []any
}

// Yearly is the per-release-year dataset: film and revenue only, no budget
// filter.
func Yearly(year, pages int) Variant {
	return Variant{
		Name:  fmt.Sprintf("yearly_%d", year),
		Title: fmt.Sprintf("Top grossing films of %d", year),
		Year:  year,
		Pages: pages,
		Schema: table.Schema{Columns: []table.ColumnSchema{
			{Name: table.ColumnFilm, Kind: table.KindString},
			{Name: table.ColumnRevenue, Kind: table.KindInt},
		}},
		project: func(r Row) []any {
			return []any{r.Film, r.Revenue}
		},
	}
}

// AllTime is the unfiltered dataset. Budgets are stored negated so that
// revenue plus budget is the gross profit, and rows failing Accept are
// dropped.
func AllTime(pages int) Variant {
	return Variant{
		Name:          "all_time",
		Title:         "Top grossing films of all time",
		Pages:         pages,
		QualityFilter: true,
		Schema: table.Schema{Columns: []table.ColumnSchema{
			{Name: table.ColumnFilm, Kind: table.KindString},
			{Name: table.ColumnRevenue, Kind: table.KindInt},
			{Name: table.ColumnBudget, Kind: table.KindInt},
			{Name: table.ColumnReleaseDate, Kind: table.KindString},
		}},
		project: func(r Row) []any {
			return []any{r.Film, r.Revenue, -r.Budget, r.ReleaseDate}
		},
	}
}

// Values projects a row onto the variant's table columns.
func (v Variant) Values(r Row) []any {
	if v.project == nil {
		return []any{r.Film, r.Revenue}
	}
	return v.project(r)
}

func (v Variant) discoverOptions(page int) tmdb.DiscoverOptions {
	return tmdb.DiscoverOptions{Year: v.Year, Page: page}
}
