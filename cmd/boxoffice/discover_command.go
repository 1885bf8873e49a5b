package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"boxoffice/internal/tmdb"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var year int
	var page int
	var allTime bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List TMDB discover results sorted by revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			opts := tmdb.DiscoverOptions{Year: cfg.Report.Year, Page: page}
			if cmd.Flags().Changed("year") {
				opts.Year = year
			}
			if allTime {
				opts.Year = 0
			}

			client, err := ctx.catalog(cfg)
			if err != nil {
				return err
			}
			resp, err := client.Discover(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			label := "all time"
			if opts.Year > 0 {
				label = strconv.Itoa(opts.Year)
			}
			fmt.Fprintln(out, heading(fmt.Sprintf("Top grossing films (%s), page %d of %d", label, resp.Page, resp.TotalPages), shouldColorize(out)))
			rows := make([][]string, 0, len(resp.Results))
			for i, m := range resp.Results {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					strconv.FormatInt(m.ID, 10),
					m.Title,
					m.ReleaseDate,
					strconv.FormatFloat(m.Popularity, 'f', 1, 64),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "ID", "Title", "Release", "Popularity"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Release year (defaults to report.year)")
	cmd.Flags().IntVar(&page, "page", 1, "Discover page to fetch")
	cmd.Flags().BoolVar(&allTime, "all-time", false, "Ignore the release year")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}
