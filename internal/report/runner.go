package report

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"boxoffice/internal/artifact"
	"boxoffice/internal/chart"
	"boxoffice/internal/config"
	"boxoffice/internal/dataset"
	"boxoffice/internal/logging"
	"boxoffice/internal/money"
	"boxoffice/internal/notifications"
	"boxoffice/internal/services"
	"boxoffice/internal/table"
	"boxoffice/internal/tmdb"
)

const stageReport = "report"

// Options wires a Runner. Config, Catalog and Store are required.
type Options struct {
	Config   *config.Config
	Catalog  tmdb.Catalog
	Store    *artifact.Store
	Logger   *slog.Logger
	Notifier notifications.Service

	// Now and NewRunID default to time.Now and uuid.NewString.
	Now      func() time.Time
	NewRunID func() string
}

// Runner executes report runs.
type Runner struct {
	cfg       *config.Config
	catalog   tmdb.Catalog
	store     *artifact.Store
	notifier  notifications.Service
	base      *slog.Logger
	logger    *slog.Logger
	now       func() time.Time
	newRunID  func() string
	formatter money.Formatter
	palette   []color.Color
}

// RenderedChart describes one stored chart.
type RenderedChart struct {
	Name    string
	Key     string
	Mean    decimal.Decimal
	HasMean bool
}

// Result summarises a completed run.
type Result struct {
	RunID       string
	Yearly      *dataset.Dataset
	AllTime     *dataset.Dataset
	Gross       *table.Table // all-time table plus the derived gross column
	Charts      []RenderedChart
	Artifacts   []artifact.Artifact
	ManifestKey string
}

// New validates the options and prepares the currency formatter and palette.
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageReport, "new", "config is required", nil)
	}
	if opts.Catalog == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageReport, "new", "catalog is required", nil)
	}
	if opts.Store == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageReport, "new", "artifact store is required", nil)
	}
	cfg := opts.Config
	formatter, err := money.NewFormatter(cfg.Chart.Locale, cfg.Chart.Currency, cfg.Chart.Symbol)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageReport, "new", "currency formatter", err)
	}
	palette, err := chart.ParsePalette(cfg.Chart.Palette)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:       cfg,
		catalog:   opts.Catalog,
		store:     opts.Store,
		notifier:  opts.Notifier,
		base:      opts.Logger,
		logger:    logging.NewComponentLogger(opts.Logger, stageReport),
		now:       opts.Now,
		newRunID:  opts.NewRunID,
		formatter: formatter,
		palette:   palette,
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newRunID == nil {
		r.newRunID = uuid.NewString
	}
	if r.notifier == nil {
		r.notifier = notifications.NewService(nil)
	}
	return r, nil
}

// Formatter returns the currency formatter used for chart axes.
func (r *Runner) Formatter() money.Formatter { return r.formatter }

// Run executes one report. The output lock is held for the whole run when a
// lock path is configured.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if path := r.cfg.Output.LockPath; path != "" {
		lock, err := artifact.Lock(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = lock.Release() }()
	}

	runID := r.newRunID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	started := r.now()
	logger.Info("report started",
		logging.String(logging.FieldEventType, "report_start"),
		logging.Int("year", r.cfg.Report.Year),
		logging.Int("pages", r.cfg.Report.Pages),
		logging.String("bucket", r.store.URL()),
	)

	result, err := r.run(ctx, runID)
	if err != nil {
		logging.ErrorWithContext(logger, "report failed", "report_error",
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.Error(err),
		)
		r.notify(ctx, logger, notifications.EventReportFailed, notifications.Payload{
			"runID": runID,
			"error": err.Error(),
		})
		return nil, err
	}
	logger.Info("report complete",
		logging.String(logging.FieldEventType, "report_complete"),
		logging.Int("artifacts", len(result.Artifacts)),
		logging.String("manifest", result.ManifestKey),
		logging.Duration("elapsed", r.now().Sub(started)),
	)
	r.notify(ctx, logger, notifications.EventReportCompleted, notifications.Payload{
		"runID":     runID,
		"year":      r.cfg.Report.Year,
		"artifacts": len(result.Artifacts),
		"manifest":  result.ManifestKey,
	})
	return result, nil
}

// notify never fails the run; delivery problems are logged.
func (r *Runner) notify(ctx context.Context, logger *slog.Logger, event notifications.Event, payload notifications.Payload) {
	if err := r.notifier.Publish(ctx, event, payload); err != nil {
		logger.Warn("notification failed",
			logging.String(logging.FieldEventType, "notification_failed"),
			logging.String("event", string(event)),
			logging.Error(err),
		)
	}
}

func (r *Runner) run(ctx context.Context, runID string) (*Result, error) {
	builder := dataset.NewBuilder(r.catalog, r.base)
	result := &Result{RunID: runID}

	yearly, err := builder.Build(ctx, dataset.Yearly(r.cfg.Report.Year, r.cfg.Report.Pages))
	if err != nil {
		return nil, err
	}
	result.Yearly = yearly

	allTime, err := builder.Build(ctx, dataset.AllTime(r.cfg.Report.Pages))
	if err != nil {
		return nil, err
	}
	result.AllTime = allTime

	gross, err := table.WithGross(allTime.Table)
	if err != nil {
		return nil, err
	}
	result.Gross = gross

	exports := []struct {
		name string
		tbl  *table.Table
	}{
		{yearly.Variant.Name, yearly.Table},
		{allTime.Variant.Name, gross},
	}
	exportCtx := services.WithStage(ctx, "export")
	for _, e := range exports {
		for _, format := range r.cfg.Report.TableFormats {
			data, tf, err := encodeTable(format, e.tbl, e.name)
			if err != nil {
				return nil, err
			}
			if _, err := r.store.Put(exportCtx, artifact.Key(runID, e.name+"."+tf.ext), tf.contentType, data); err != nil {
				return nil, err
			}
		}
	}

	chartCtx := services.WithStage(ctx, "chart")
	for _, job := range r.chartJobs(yearly, gross) {
		rendered, err := r.renderChart(chartCtx, runID, job)
		if err != nil {
			return nil, err
		}
		result.Charts = append(result.Charts, rendered)
	}

	result.Artifacts = r.store.Artifacts()
	key, err := r.store.WriteManifest(ctx, artifact.Manifest{
		RunID:     runID,
		CreatedAt: r.now().UTC(),
		Datasets:  []artifact.DatasetInfo{datasetInfo(yearly), datasetInfo(allTime)},
		Artifacts: result.Artifacts,
	})
	if err != nil {
		return nil, err
	}
	result.ManifestKey = key
	return result, nil
}

type chartJob struct {
	name string
	tbl  *table.Table
	spec chart.Spec
}

func (r *Runner) chartJobs(yearly *dataset.Dataset, gross *table.Table) []chartJob {
	base := chart.Spec{Palette: r.palette, Formatter: r.formatter}
	bar := func(title, value, label string, mean bool) chart.Spec {
		s := base
		s.Kind = chart.Bar
		s.Title = title
		s.Category = table.ColumnFilm
		s.Value = value
		s.XLabel = label
		s.YLabel = "Film"
		s.MeanLine = mean && r.cfg.Chart.MeanLine
		return s
	}
	scatter := base
	scatter.Kind = chart.Scatter
	scatter.Title = "Revenue vs gross profit, all time"
	scatter.X = table.ColumnRevenue
	scatter.Y = table.ColumnGross
	scatter.XLabel = "Revenue"
	scatter.YLabel = "Gross profit"

	return []chartJob{
		{
			name: yearly.Variant.Name + "_revenue",
			tbl:  yearly.Table,
			spec: bar(yearly.Variant.Title, table.ColumnRevenue, "Revenue", true),
		},
		{
			name: "all_time_revenue",
			tbl:  gross,
			spec: bar("Top grossing films of all time", table.ColumnRevenue, "Revenue", false),
		},
		{
			name: "all_time_gross",
			tbl:  gross,
			spec: bar("Gross profit of the top grossing films", table.ColumnGross, "Gross profit", true),
		},
		{
			name: "all_time_revenue_vs_gross",
			tbl:  gross,
			spec: scatter,
		},
	}
}

func (r *Runner) renderChart(ctx context.Context, runID string, job chartJob) (RenderedChart, error) {
	c, err := chart.Render(job.tbl, job.spec)
	if err != nil {
		return RenderedChart{}, fmt.Errorf("chart %s: %w", job.name, err)
	}
	format := r.cfg.Report.ImageFormat
	var buf bytes.Buffer
	if err := c.Encode(&buf, format, r.cfg.Report.ChartWidth, r.cfg.Report.ChartHeight); err != nil {
		return RenderedChart{}, fmt.Errorf("chart %s: %w", job.name, err)
	}
	stored, err := r.store.Put(ctx, artifact.Key(runID, job.name+"."+format), chart.ContentType(format), buf.Bytes())
	if err != nil {
		return RenderedChart{}, err
	}
	return RenderedChart{Name: job.name, Key: stored.Key, Mean: c.Mean, HasMean: c.HasMean}, nil
}

func datasetInfo(ds *dataset.Dataset) artifact.DatasetInfo {
	return artifact.DatasetInfo{
		Name:       ds.Variant.Name,
		Title:      ds.Variant.Title,
		Rows:       ds.Table.Len(),
		Discovered: ds.Discovered,
		Rejected:   len(ds.Rejected),
	}
}
