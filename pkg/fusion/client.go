// Package fusion is a Go client for the Yelp Fusion API (v3).
//
// A client is constructed from application credentials; construction
// performs the OAuth2 client-credentials exchange and every subsequent
// request carries the resulting bearer token. Obtain credentials by
// creating an app at https://www.yelp.com/developers/
//
//	c, err := fusion.New(ctx, clientID, clientSecret)
//	if err != nil {
//		return err
//	}
//	resp, err := c.Search(ctx, fusion.SearchParams{
//		Term:     "coffee",
//		Location: "San Francisco, CA",
//		Limit:    120,
//	})
//
// Search limits above the upstream's 50-item page ceiling are
// assembled transparently across multiple requests.
package fusion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/openlocal/fusion-go/pkg/client"
	"github.com/openlocal/fusion-go/pkg/ratelimit"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const tokenPath = "/oauth2/token"

// Client provides access to the Fusion API endpoints.
type Client struct {
	core   *client.Client
	header http.Header
	logger zerolog.Logger
}

// Option customizes the client.
type Option func(*client.Config)

// WithBaseURL overrides the upstream base URL (for testing).
func WithBaseURL(baseURL string) Option {
	return func(cfg *client.Config) {
		cfg.BaseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *client.Config) {
		cfg.HTTPClient = httpClient
	}
}

// WithClock overrides the clock used for quota waits.
func WithClock(clock client.Clock) Option {
	return func(cfg *client.Config) {
		cfg.Clock = clock
	}
}

// WithSchedule overrides the quota reset schedule.
func WithSchedule(schedule ratelimit.Schedule) Option {
	return func(cfg *client.Config) {
		cfg.Schedule = schedule
	}
}

// WithMaxRetries overrides the transient-failure retry ceiling.
func WithMaxRetries(maxRetries int) Option {
	return func(cfg *client.Config) {
		cfg.MaxRetries = maxRetries
	}
}

// tokenResponse is the OAuth2 client-credentials exchange response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// New exchanges the application credentials for a bearer token and
// returns a ready client.
func New(ctx context.Context, clientID, clientSecret string, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}

	cfg := client.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	core, err := client.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create core client: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)

	var token tokenResponse
	if err := core.PostForm(ctx, tokenPath, form, &token); err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned no access token")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token.AccessToken)

	return &Client{
		core:   core,
		header: header,
		logger: log.With().Str("component", "fusion").Logger(),
	}, nil
}
