package config

const (
	defaultTMDBLanguage   = "en-US"
	defaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	defaultReportYear     = 2017
	defaultReportPages    = 1
	defaultImageFormat    = "png"
	defaultChartWidth     = 10.0
	defaultChartHeight    = 6.0
	defaultChartLocale    = "en-US"
	defaultChartCurrency  = "USD"
	defaultChartSymbol    = "$"
	defaultOutputDir      = "~/.local/share/boxoffice/reports"
	defaultLockPath       = "~/.local/share/boxoffice/boxoffice.lock"
	defaultNtfyTimeout    = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	maxReportPages        = 50
	earliestCatalogYear   = 1874
	latestPlausibleYear   = 2100
	defaultConfigLocation = "~/.config/boxoffice/config.toml"
)

var (
	defaultTableFormats = []string{"csv", "xlsx", "parquet"}
	defaultPalette      = []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			Language: defaultTMDBLanguage,
			BaseURL:  defaultTMDBBaseURL,
		},
		Report: Report{
			Year:         defaultReportYear,
			Pages:        defaultReportPages,
			TableFormats: append([]string(nil), defaultTableFormats...),
			ImageFormat:  defaultImageFormat,
			ChartWidth:   defaultChartWidth,
			ChartHeight:  defaultChartHeight,
		},
		Chart: Chart{
			Palette:  append([]string(nil), defaultPalette...),
			Locale:   defaultChartLocale,
			Currency: defaultChartCurrency,
			Symbol:   defaultChartSymbol,
			MeanLine: true,
		},
		Output: Output{
			BucketURL: "",
			Dir:       defaultOutputDir,
			LockPath:  defaultLockPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
