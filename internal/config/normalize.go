package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTMDB()
	c.normalizeReport()
	c.normalizeChart()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeNotifications()
	return c.normalizeLogging()
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

func (c *Config) normalizeReport() {
	if c.Report.Pages == 0 {
		c.Report.Pages = defaultReportPages
	}
	formats := make([]string, 0, len(c.Report.TableFormats))
	seen := make(map[string]struct{}, len(c.Report.TableFormats))
	for _, format := range c.Report.TableFormats {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" {
			continue
		}
		if _, ok := seen[format]; ok {
			continue
		}
		seen[format] = struct{}{}
		formats = append(formats, format)
	}
	c.Report.TableFormats = formats
	c.Report.ImageFormat = strings.ToLower(strings.TrimSpace(c.Report.ImageFormat))
	if c.Report.ImageFormat == "" {
		c.Report.ImageFormat = defaultImageFormat
	}
	if c.Report.ChartWidth == 0 {
		c.Report.ChartWidth = defaultChartWidth
	}
	if c.Report.ChartHeight == 0 {
		c.Report.ChartHeight = defaultChartHeight
	}
}

func (c *Config) normalizeChart() {
	palette := make([]string, 0, len(c.Chart.Palette))
	for _, entry := range c.Chart.Palette {
		if entry = strings.TrimSpace(entry); entry != "" {
			palette = append(palette, entry)
		}
	}
	c.Chart.Palette = palette
	c.Chart.Locale = strings.TrimSpace(c.Chart.Locale)
	if c.Chart.Locale == "" {
		c.Chart.Locale = defaultChartLocale
	}
	c.Chart.Currency = strings.ToUpper(strings.TrimSpace(c.Chart.Currency))
	if c.Chart.Currency == "" {
		c.Chart.Currency = defaultChartCurrency
	}
}

func (c *Config) normalizeOutput() error {
	c.Output.BucketURL = strings.TrimSpace(c.Output.BucketURL)
	var err error
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if strings.TrimSpace(c.Output.LockPath) == "" {
		c.Output.LockPath = defaultLockPath
	}
	if c.Output.LockPath, err = expandPath(strings.TrimSpace(c.Output.LockPath)); err != nil {
		return fmt.Errorf("output.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}
	return nil
}
