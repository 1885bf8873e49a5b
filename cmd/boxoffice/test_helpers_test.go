package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeMovie struct {
	ID      int64
	Title   string
	Revenue int64
	Budget  int64
	Release string
}

type cliTestEnv struct {
	server     *httptest.Server
	configPath string
	outputDir  string
}

var yearlyMovies = []fakeMovie{
	{ID: 181808, Title: "Star Wars: The Last Jedi", Revenue: 1332539889, Budget: 200000000, Release: "2017-12-13"},
	{ID: 321612, Title: "Beauty and the Beast", Revenue: 1263521126, Budget: 160000000, Release: "2017-03-16"},
}

var allTimeMovies = []fakeMovie{
	{ID: 19995, Title: "Avatar", Revenue: 2781505847, Budget: 237000000, Release: "2009-12-10"},
	{ID: 597, Title: "Titanic", Revenue: 1845034188, Budget: 200000000, Release: "1997-11-18"},
	{ID: 99999, Title: "Glitch", Revenue: 900000000, Budget: 1, Release: "2005-05-05"},
}

func newFakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	details := map[string]fakeMovie{}
	for _, m := range append(append([]fakeMovie(nil), yearlyMovies...), allTimeMovies...) {
		details[fmt.Sprintf("/movie/%d", m.ID)] = m
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/discover/movie":
			movies := allTimeMovies
			if r.URL.Query().Get("primary_release_year") == "2017" {
				movies = yearlyMovies
			}
			results := make([]map[string]any, 0, len(movies))
			for _, m := range movies {
				results = append(results, map[string]any{"id": m.ID, "title": m.Title, "release_date": m.Release})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"page": 1, "total_pages": 1, "total_results": len(results), "results": results,
			})
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			m, ok := details[r.URL.Path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": m.ID, "title": m.Title, "revenue": m.Revenue, "budget": m.Budget, "release_date": m.Release,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("TMDB_API_KEY", "")
	server := newFakeTMDB(t)

	outputDir := filepath.Join(base, "reports")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[tmdb]
api_key = "test"
base_url = %q

[report]
year = 2017
pages = 1
table_formats = ["csv", "parquet"]
image_format = "svg"
chart_width = 4.0
chart_height = 3.0

[output]
dir = %q
lock_path = %q

[logging]
level = "error"
`, server.URL, outputDir, filepath.Join(base, "boxoffice.lock"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{server: server, configPath: configPath, outputDir: outputDir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
