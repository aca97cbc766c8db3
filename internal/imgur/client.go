// Package imgur provides a rate-limited Imgur API client for expanding
// album links into their constituent images.
package imgur

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dormdex/dormdex-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.imgur.com"

	// Imgur's free tier allows roughly 12500 requests per day; stay
	// well under it.
	defaultRPS   = 2.0
	defaultBurst = 5

	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited Imgur API client.
type Client struct {
	http     *http.Client
	limiter  *ratelimit.KeyedRateLimiter
	logger   *slog.Logger
	clientID string

	// Overridable in tests.
	baseURL string
}

// New creates a new Imgur client. The client ID credential is passed in
// explicitly; the client never reads the environment.
func New(clientID string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:  ratelimit.New(defaultRPS, defaultBurst),
		logger:   logger,
		clientID: clientID,
		baseURL:  defaultBaseURL,
	}
}

// get executes a rate-limited GET against the API, returning the body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Client-ID "+c.clientID)

	c.logger.Debug("imgur request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
