package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"boxoffice/internal/artifact"
	"boxoffice/internal/notifications"
	"boxoffice/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var year int
	var pages int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the yearly and all-time box office report",
		Long: `Fetch the top grossing films for a release year and of all time from TMDB,
derive gross profit, render the charts, and export the tables to the
configured artifact bucket.

Examples:
  boxoffice report                 # Use the configured year
  boxoffice report --year 2019     # Report on 2019 releases
  boxoffice report --pages 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cmd.Flags().Changed("year") {
				cfg.Report.Year = year
			}
			if cmd.Flags().Changed("pages") {
				cfg.Report.Pages = pages
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closeLog, err := ctx.logger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			client, err := ctx.catalog(cfg)
			if err != nil {
				return err
			}
			store, err := artifact.Open(cmd.Context(), cfg.ArtifactURL())
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := report.New(report.Options{
				Config:   cfg,
				Catalog:  client,
				Store:    store,
				Logger:   logger,
				Notifier: notifications.NewService(cfg),
			})
			if err != nil {
				return err
			}
			result, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, summarizeReport(result, store.URL()))
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderReport(result, runner.Formatter(), store.URL(), shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Release year for the yearly dataset (defaults to report.year)")
	cmd.Flags().IntVar(&pages, "pages", 0, "Discover pages per dataset (defaults to report.pages)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output a JSON summary")
	return cmd
}
