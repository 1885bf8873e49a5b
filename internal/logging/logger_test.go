package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boxoffice/internal/config"
	"boxoffice/internal/logging"
	"boxoffice/internal/services"
)

func newBufferLogger(t *testing.T, format, level string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, closeLog, err := logging.New(logging.Options{Format: format, Level: level, Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLog() })
	return logger, &buf
}

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "test"

	logger, closeLog, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Debug("debug message")
	if err := closeLog(); err != nil {
		t.Fatalf("close without log file: %v", err)
	}
}

func TestNewFromConfigWritesRunLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Logging.File = filepath.Join(t.TempDir(), "reports", "boxoffice.log")

	logger, closeLog, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Error("catalog unreachable", logging.String(logging.FieldComponent, "report"))
	if err := closeLog(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	if err := closeLog(); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected log file to be closed, got %v", err)
	}

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "ERROR report: catalog unreachable") {
		t.Fatalf("unexpected log file content %q", content)
	}
}

func TestFileOutputAppendsAndMirrorsConsole(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(logPath, []byte("previous run\n"), 0o644); err != nil {
		t.Fatalf("seed log file: %v", err)
	}

	var console bytes.Buffer
	logger, closeLog, err := logging.New(logging.Options{Format: "console", Console: &console, File: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("report complete", logging.Int("artifacts", 10))
	if err := closeLog(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.HasPrefix(string(content), "previous run\n") {
		t.Fatalf("expected append, got %q", content)
	}
	if !strings.Contains(string(content), "report complete artifacts=10") {
		t.Fatalf("expected record in file, got %q", content)
	}
	if !strings.Contains(console.String(), "report complete artifacts=10") {
		t.Fatalf("expected record on console, got %q", console.String())
	}
}

func TestFileOnlyOutputWithDiscardedConsole(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "quiet.log")
	logger, closeLog, err := logging.New(logging.Options{Format: "json", Console: io.Discard, File: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("discover page", logging.Int("page", 1))
	if err := closeLog(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"page":1`) {
		t.Fatalf("unexpected log file content %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "never.log")
	if _, _, err := logging.New(logging.Options{Format: "xml", File: logPath}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatalf("expected no log file for rejected options, got %v", err)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logger, buf := newBufferLogger(t, "console", "info")

	logger.Info("message without caller", logging.String(logging.FieldComponent, "catalog"), logging.Int("rows", 3))

	text := buf.String()
	if strings.Contains(text, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", text)
	}
	if !strings.Contains(text, "catalog: message without caller") {
		t.Fatalf("expected component prefix, got %q", text)
	}
	if !strings.Contains(text, "rows=3") {
		t.Fatalf("expected rows attribute, got %q", text)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logger, buf := newBufferLogger(t, "console", "debug")

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerFirstComponentWins(t *testing.T) {
	logger, buf := newBufferLogger(t, "console", "info")

	nested := logging.NewComponentLogger(logging.NewComponentLogger(logger, "report"), "dataset")
	nested.Info("enriched", logging.String("title", "Wonder Woman"))

	text := buf.String()
	if !strings.Contains(text, "INFO report: enriched") {
		t.Fatalf("expected outer component prefix, got %q", text)
	}
	if strings.Contains(text, "component=") {
		t.Fatalf("expected component to be lifted out of fields, got %q", text)
	}
	if !strings.Contains(text, `title="Wonder Woman"`) {
		t.Fatalf("expected quoted title, got %q", text)
	}
}

func TestConsoleLoggerFlattensGroups(t *testing.T) {
	logger, buf := newBufferLogger(t, "console", "info")

	logger.WithGroup("movie").Info("rejected", slog.Int64("budget", 281), slog.Group("gross", slog.Int("rank", 2)))

	text := buf.String()
	for _, fragment := range []string{"movie.budget=281", "movie.gross.rank=2"} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in %q", fragment, text)
		}
	}
}

func TestJSONLoggerUsesCanonicalKeys(t *testing.T) {
	logger, buf := newBufferLogger(t, "json", "info")
	logger.Warn("budget rejected", logging.Int64("budget", 281))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected lower-case level, got %v", entry["level"])
	}
	if entry["msg"] != "budget rejected" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	logger, buf := newBufferLogger(t, "console", "info")

	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithStage(ctx, "enrich")
	ctx = services.WithDataset(ctx, "yearly")
	logging.WithContext(ctx, logger).Info("enriched")

	for _, fragment := range []string{"run_id=run-42", "stage=enrich", "dataset=yearly"} {
		if !strings.Contains(buf.String(), fragment) {
			t.Fatalf("expected %q in %q", fragment, buf.String())
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "test")
	logger.Error("ignored")
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("expected nop logger to be disabled")
	}
}
