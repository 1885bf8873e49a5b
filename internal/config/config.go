package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed sample_config.toml
var sampleConfig string

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key" yaml:"api_key"`
	BaseURL  string `toml:"base_url" yaml:"base_url"`
	Language string `toml:"language" yaml:"language"`
}

// Report selects the datasets and artifact formats produced by a run.
type Report struct {
	Year         int      `toml:"year" yaml:"year"`
	Pages        int      `toml:"pages" yaml:"pages"`
	TableFormats []string `toml:"table_formats" yaml:"table_formats"`
	ImageFormat  string   `toml:"image_format" yaml:"image_format"`
	ChartWidth   float64  `toml:"chart_width" yaml:"chart_width"`   // inches
	ChartHeight  float64  `toml:"chart_height" yaml:"chart_height"` // inches
}

// Chart contains chart styling and currency formatting settings.
type Chart struct {
	Palette  []string `toml:"palette" yaml:"palette"`
	Locale   string   `toml:"locale" yaml:"locale"`
	Currency string   `toml:"currency" yaml:"currency"`
	Symbol   string   `toml:"symbol" yaml:"symbol"`
	MeanLine bool     `toml:"mean_line" yaml:"mean_line"`
}

// Output describes where artifacts land. BucketURL wins over Dir when set.
type Output struct {
	BucketURL string `toml:"bucket_url" yaml:"bucket_url"`
	Dir       string `toml:"dir" yaml:"dir"`
	LockPath  string `toml:"lock_path" yaml:"lock_path"`
}

// Notifications configures ntfy push notifications for finished runs.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic" yaml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout" yaml:"request_timeout"` // seconds
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" yaml:"format"`
	Level  string `toml:"level" yaml:"level"`
	// File, when set, receives a copy of every log line.
	File string `toml:"file" yaml:"file"`
}

// Config encapsulates all configuration values for boxoffice.
//
// Configuration sections by subsystem:
//   - TMDB: catalog credentials and endpoint
//   - Report: dataset year, discover depth, export formats, chart size
//   - Chart: palette, mean line, and currency formatting
//   - Output: artifact bucket and run lock
//   - Notifications: ntfy topic for run results
//   - Logging: log format, level and optional run log file
type Config struct {
	TMDB          TMDB          `toml:"tmdb" yaml:"tmdb"`
	Report        Report        `toml:"report" yaml:"report"`
	Chart         Chart         `toml:"chart" yaml:"chart"`
	Output        Output        `toml:"output" yaml:"output"`
	Notifications Notifications `toml:"notifications" yaml:"notifications"`
	Logging       Logging       `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := decode(file, resolvedPath, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decode(r io.Reader, path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(r)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return toml.NewDecoder(r).Decode(cfg)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigLocation)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("boxoffice.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the local output, lock and log directories. Remote
// buckets are left alone.
func (c *Config) EnsureDirectories() error {
	if dir := strings.TrimSpace(c.Output.Dir); dir != "" && strings.TrimSpace(c.Output.BucketURL) == "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	if lock := strings.TrimSpace(c.Output.LockPath); lock != "" {
		dir := filepath.Dir(lock)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lock directory %q: %w", dir, err)
		}
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		dir := filepath.Dir(file)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	return nil
}

// ArtifactURL returns the bucket URL artifacts are written to. When no
// bucket is configured the local output directory is used via file://.
func (c *Config) ArtifactURL() string {
	if bucket := strings.TrimSpace(c.Output.BucketURL); bucket != "" {
		return bucket
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(c.Output.Dir)}
	return u.String()
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
