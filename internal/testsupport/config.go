package testsupport

import (
	"path/filepath"
	"testing"

	"boxoffice/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.TMDB.APIKey = "test"
	cfgVal.Output.Dir = filepath.Join(base, "reports")
	cfgVal.Output.LockPath = filepath.Join(base, "boxoffice.lock")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTMDBBaseURL points the test config at a fake catalog server.
func WithTMDBBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = url
	}
}

// WithBucketURL overrides the artifact bucket, typically with "mem://".
func WithBucketURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.BucketURL = url
	}
}

// WithTableFormats overrides the exported table formats.
func WithTableFormats(formats ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.TableFormats = formats
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Output.Dir)
}
