package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	if err := c.validateChart(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigLocation
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'boxoffice config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.Year < earliestCatalogYear || c.Report.Year > latestPlausibleYear {
		return fmt.Errorf("report.year must be a four-digit year between %d and %d", earliestCatalogYear, latestPlausibleYear)
	}
	if c.Report.Pages < 1 || c.Report.Pages > maxReportPages {
		return fmt.Errorf("report.pages must be between 1 and %d", maxReportPages)
	}
	for _, format := range c.Report.TableFormats {
		switch format {
		case "csv", "xlsx", "parquet":
		default:
			return fmt.Errorf("report.table_formats: unsupported value %q", format)
		}
	}
	switch c.Report.ImageFormat {
	case "png", "svg":
	default:
		return fmt.Errorf("report.image_format: unsupported value %q", c.Report.ImageFormat)
	}
	if c.Report.ChartWidth <= 0 || c.Report.ChartHeight <= 0 {
		return errors.New("report.chart_width and report.chart_height must be positive")
	}
	return nil
}

func (c *Config) validateChart() error {
	for _, entry := range c.Chart.Palette {
		if !hexColorPattern.MatchString(entry) {
			return fmt.Errorf("chart.palette: %q is not a #rrggbb color", entry)
		}
	}
	if _, err := language.Parse(c.Chart.Locale); err != nil {
		return fmt.Errorf("chart.locale: %w", err)
	}
	if _, err := currency.ParseISO(c.Chart.Currency); err != nil {
		return fmt.Errorf("chart.currency: %w", err)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	u, err := url.Parse(topic)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL, got %q", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
