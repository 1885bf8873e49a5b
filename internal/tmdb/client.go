package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"boxoffice/internal/services"
)

// SortRevenueDesc is the only ordering the discover query uses.
const SortRevenueDesc = "revenue.desc"

const stageCatalog = "catalog"

// Movie represents a single discover result.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
}

// DiscoverPage models one page of the TMDB discover response.
type DiscoverPage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// MovieDetails carries the detail fields missing from discover results.
type MovieDetails struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Revenue     int64  `json:"revenue"`
	Budget      int64  `json:"budget"`
	ReleaseDate string `json:"release_date"`
}

// DiscoverOptions contains the optional discover filters.
type DiscoverOptions struct {
	Year int // primary release year, 0 for all time
	Page int // 1-based, 0 means the first page
}

// Catalog defines the TMDB operations used to build datasets.
type Catalog interface {
	Discover(ctx context.Context, opts DiscoverOptions) (*DiscoverPage, error)
	MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageCatalog, "new", "tmdb api key required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageCatalog, "new", "tmdb base url required", nil)
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Discover lists movies sorted by revenue, descending, optionally restricted
// to one primary release year.
func (c *Client) Discover(ctx context.Context, opts DiscoverOptions) (*DiscoverPage, error) {
	if opts.Year != 0 && (opts.Year < 1000 || opts.Year > 9999) {
		return nil, services.Wrap(services.ErrValidation, stageCatalog, "discover", fmt.Sprintf("year %d is not a four-digit year", opts.Year), nil)
	}
	if opts.Page < 0 {
		return nil, services.Wrap(services.ErrValidation, stageCatalog, "discover", "page must not be negative", nil)
	}
	params := url.Values{}
	params.Set("sort_by", SortRevenueDesc)
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}
	if opts.Page > 1 {
		params.Set("page", strconv.Itoa(opts.Page))
	}

	var payload struct {
		Page         int      `json:"page"`
		Results      *[]Movie `json:"results"`
		TotalPages   int      `json:"total_pages"`
		TotalResults int      `json:"total_results"`
	}
	if err := c.get(ctx, "discover", "/discover/movie", params, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return nil, services.Wrap(services.ErrParse, stageCatalog, "discover", "response has no results field", nil)
	}
	return &DiscoverPage{
		Page:         payload.Page,
		Results:      *payload.Results,
		TotalPages:   payload.TotalPages,
		TotalResults: payload.TotalResults,
	}, nil
}

// MovieDetails fetches movie details by TMDB ID.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, services.Wrap(services.ErrValidation, stageCatalog, "detail", "movie id must be positive", nil)
	}
	var payload MovieDetails
	if err := c.get(ctx, "detail", fmt.Sprintf("/movie/%d", movieID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	if payload.ID == 0 {
		payload.ID = movieID
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, stageCatalog, operation, "parse tmdb url", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, stageCatalog, operation, "build request", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrTransport, stageCatalog, operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, stageCatalog, operation, fmt.Sprintf("%s returned 404 (latency=%v)", path, latency), nil)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return services.Wrap(services.ErrTransport, stageCatalog, operation, fmt.Sprintf("tmdb returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrParse, stageCatalog, operation, "decode tmdb response", err)
	}
	return nil
}
