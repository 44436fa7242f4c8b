package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "Marquee/1.0"

	// notFoundError is what OMDb answers when a search matches nothing
	notFoundError = "Movie not found!"

	// enrichWorkers bounds concurrent detail lookups per search
	enrichWorkers = 4
)

// Client implements domain.CatalogRepository and domain.DetailsRepository for OMDb
type Client struct {
	baseURL      string
	apiKey       string
	enrichGenres bool
	httpClient   *http.Client
	logger       *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithGenreEnrichment fills Genre on search results with one detail lookup each
func WithGenreEnrichment(enabled bool) Option {
	return func(c *Client) { c.enrichGenres = enabled }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs a keyed GET against the API root
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, domain.ErrNotConfigured
	}
	query.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s/?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// Never log the key
	redacted := url.Values{}
	for k, v := range query {
		if k != "apikey" {
			redacted[k] = v
		}
	}
	c.logger.Debug("omdb request", "query", redacted.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("omdb request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// OMDb reports a bad key as 401 with a JSON error body
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalog, env.Error)
		}
		return nil, fmt.Errorf("%w: unauthorized", domain.ErrCatalog)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetwork, resp.StatusCode)
	}

	return body, nil
}

// Search returns movies matching query. "Movie not found!" is an empty result.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", "movie")

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrCatalog, err)
	}

	if resp.Response != "True" {
		if resp.Error == notFoundError {
			return []domain.Movie{}, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalog, resp.Error)
	}

	movies := MapSearchResults(resp.Search)
	if c.enrichGenres {
		c.enrich(ctx, movies)
	}
	return movies, nil
}

// Details looks up one movie by IMDb identifier
func (c *Client) Details(ctx context.Context, imdbID string) (*domain.Movie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "short")

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp DetailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrCatalog, err)
	}

	if resp.Response != "True" {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalog, resp.Error)
	}

	movie := MapDetails(resp)
	return &movie, nil
}

// enrich fills Genre in place. A failed lookup leaves that movie untouched.
func (c *Client) enrich(ctx context.Context, movies []domain.Movie) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)

	for i := range movies {
		if movies[i].ImdbID == "" {
			continue
		}
		i := i
		g.Go(func() error {
			details, err := c.Details(gctx, movies[i].ImdbID)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					c.logger.Debug("genre lookup failed", "imdb_id", movies[i].ImdbID, "error", err)
				}
				return nil
			}
			movies[i].Genre = details.Genre
			return nil
		})
	}
	_ = g.Wait()
}
