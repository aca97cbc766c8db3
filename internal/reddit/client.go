// Package reddit provides a rate-limited Reddit API client for listing
// fetches and best-effort avatar lookups.
package reddit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"encoding/json/v2"

	"github.com/dormdex/dormdex-server/internal/ratelimit"
)

const (
	defaultAuthURL   = "https://www.reddit.com"
	defaultAPIURL    = "https://oauth.reddit.com"
	defaultPublicURL = "https://www.reddit.com"

	// Reddit allows 60 requests per minute for script apps.
	defaultRPS   = 1.0
	defaultBurst = 5

	defaultTimeout = 30 * time.Second

	// Tokens last an hour; refresh a minute early.
	tokenSlack = time.Minute
)

// Credentials holds the script-app credential set used for the listing
// fetch. Passed in explicitly; the client never reads the environment.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Client is a rate-limited Reddit API client.
type Client struct {
	http      *http.Client
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
	creds     Credentials
	userAgent string

	// Overridable in tests.
	authURL   string
	apiURL    string
	publicURL string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// New creates a new Reddit client.
func New(creds Credentials, userAgent string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:   ratelimit.New(defaultRPS, defaultBurst),
		logger:    logger,
		creds:     creds,
		userAgent: userAgent,
		authURL:   defaultAuthURL,
		apiURL:    defaultAPIURL,
		publicURL: defaultPublicURL,
	}
}

// accessToken returns a valid OAuth token, requesting one via the
// password grant when the cached token is missing or stale.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenSlack)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed: status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.UnmarshalRead(resp.Body, &tokenResp); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	c.logger.Debug("reddit token refreshed",
		"expires_in", tokenResp.ExpiresIn,
	)

	return c.token, nil
}

// doAuthed executes a rate-limited, authenticated GET against the API host.
func (c *Client) doAuthed(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := c.apiURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	return c.get(ctx, reqURL, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
}

// get executes a rate-limited GET, keyed by host, returning the body.
func (c *Client) get(ctx context.Context, rawURL string, decorate func(*http.Request)) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if decorate != nil {
		decorate(req)
	}

	c.logger.Debug("reddit request", "url", rawURL)

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
