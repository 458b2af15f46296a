// Package tmdb is a rate-limited, retrying client for The Movie Database v3 API.
package tmdb

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

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/normalize"
)

const (
	defaultBaseURL    = "https://api.themoviedb.org/3"
	defaultTimeout    = 30 * time.Second
	defaultRPS        = 20.0
	defaultBurst      = 10
	defaultAttempts   = 3
	defaultRetryDelay = 250 * time.Millisecond
)

// Sentinel errors for TMDB responses.
var (
	ErrNotFound    = errors.New("tmdb: not found")
	ErrRateLimited = errors.New("tmdb: rate limited by server")
	ErrServer      = errors.New("tmdb: server error")
	ErrBadRequest  = errors.New("tmdb: bad request")
)

// Options configures a Client. Zero values take defaults.
type Options struct {
	BaseURL           string
	APIKey            string
	ImageBaseURL      string
	Timeout           time.Duration
	RequestsPerSecond float64
	RetryAttempts     int
}

// Client fetches and normalizes TMDB records.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	normalizer normalize.Normalizer
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	attempts   uint
	retryDelay time.Duration
}

// New creates a TMDB client.
func New(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRPS
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = defaultAttempts
	}

	return &Client{
		http:       &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), defaultBurst),
		normalizer: normalize.Normalizer{ImageBaseURL: opts.ImageBaseURL},
		logger:     logger,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		attempts:   uint(opts.RetryAttempts),
		retryDelay: defaultRetryDelay,
	}
}

// get fetches path and decodes the JSON body into out.
// Server errors and 429s are retried; other failures return immediately.
// The returned error is a domain error: NotFound for 404, ProviderUnavailable otherwise.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + query.Encode()

	body, err := retry.DoWithData(
		func() ([]byte, error) { return c.do(ctx, endpoint, path) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying tmdb request", "path", path, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domainerrors.NotFoundf("tmdb resource not found: %s", path).WithCause(err)
		}
		return domainerrors.ProviderUnavailable("tmdb request failed: "+path, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return domainerrors.ProviderUnavailable("tmdb returned an unreadable response: "+path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CineList/1.0")

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.Unrecoverable(ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	default:
		return nil, retry.Unrecoverable(fmt.Errorf("%w: status %d: %s", ErrBadRequest, resp.StatusCode, truncate(body, 200)))
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
