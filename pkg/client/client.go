// Package client provides the core Fusion HTTP client with bounded
// retry and daily-quota backoff.
//
// A single call either returns the decoded 200 body, waits out the
// upstream quota reset on 429 and re-issues the identical request, or
// retries transport and non-200 failures up to a fixed ceiling before
// giving up with ErrRetryExhausted.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openlocal/fusion-go/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for request operations.
var (
	fusionRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fusion_requests_total",
		Help: "Total Fusion requests by endpoint and status",
	}, []string{"endpoint", "status"})

	fusionRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fusion_request_duration_seconds",
		Help:    "Fusion request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	fusionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fusion_errors_total",
		Help: "Total Fusion errors by class",
	}, []string{"class"})

	fusionRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fusion_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	fusionRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fusion_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})
)

// Request describes a single upstream call. It stays immutable across
// retry attempts; the executor rebuilds the wire-level request from it
// on every attempt.
type Request struct {
	// Method is http.MethodGet or http.MethodPost.
	Method string

	// Endpoint is the path below the base URL, e.g. "/v3/businesses/search".
	Endpoint string

	// Query is encoded into the URL when present.
	Query url.Values

	// Form is sent as an application/x-www-form-urlencoded body (POST only).
	Form url.Values

	// Header holds extra headers, typically the bearer authorization.
	Header http.Header
}

// Client is the core Fusion HTTP client.
type Client struct {
	httpClient *http.Client
	config     Config
	clock      Clock
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is prepended to every endpoint path.
	BaseURL string

	// Timeout for a single HTTP attempt.
	Timeout time.Duration

	// MaxRetries bounds retries of transport and non-200 failures.
	// Quota (429) waits do not count against it.
	MaxRetries int

	// Schedule describes when the upstream daily quota resets.
	Schedule ratelimit.Schedule

	// Clock abstracts time for quota waits. Defaults to the system
	// clock; tests inject a fake.
	Clock Clock

	// HTTPClient overrides the default HTTP client when set.
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://api.yelp.com",
		Timeout:    30 * time.Second,
		MaxRetries: 5,
		Schedule:   ratelimit.DefaultSchedule(),
		Clock:      SystemClock(),
	}
}

// New creates a new core client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be >= 0 (got %d)", cfg.MaxRetries)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.Schedule.Location == nil {
		cfg.Schedule = ratelimit.DefaultSchedule()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	logger := log.With().Str("component", "fusion-client").Logger()

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		clock:      clock,
		logger:     logger,
	}, nil
}

// Get performs a GET request and decodes the 200 body into out.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, header http.Header, out any) error {
	return c.execute(ctx, Request{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Query:    query,
		Header:   header,
	}, out)
}

// PostForm performs a POST request with a form-encoded body and
// decodes the 200 body into out.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	return c.execute(ctx, Request{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Form:     form,
	}, out)
}

// execute runs the retry loop for a single logical request.
//
// The attempt counter lives in loop state rather than recursion so an
// arbitrarily long run of quota waits cannot grow the stack. 429
// responses wait until the next quota reset and re-issue the request
// without consuming retry budget; every other failure consumes one
// retry until the ceiling is hit.
func (c *Client) execute(ctx context.Context, r Request, out any) error {
	start := time.Now()
	defer func() {
		fusionRequestDuration.WithLabelValues(r.Endpoint).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	attempt := 0

	for {
		status, body, err := c.send(ctx, r)

		switch {
		case err == nil && status == http.StatusOK:
			fusionRequestsTotal.WithLabelValues(r.Endpoint, "200").Inc()
			if attempt > 0 {
				c.logger.Info().
					Str("endpoint", r.Endpoint).
					Int("attempt", attempt+1).
					Msg("Request succeeded after retry")
			}
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil

		case err == nil && status == http.StatusTooManyRequests:
			fusionRequestsTotal.WithLabelValues(r.Endpoint, "429").Inc()
			fusionErrorsTotal.WithLabelValues(string(ErrorClassRateLimit)).Inc()

			wait := c.config.Schedule.WaitUntilReset(c.clock.Now())
			c.logger.Warn().
				Str("endpoint", r.Endpoint).
				Dur("wait", wait).
				Msg("Over quota limit, sleeping until reset")

			if err := c.clock.Sleep(ctx, wait); err != nil {
				return fmt.Errorf("%w: %v", ErrContextCancelled, err)
			}
			// Quota waits do not consume retry budget.
			continue

		default:
			class := classify(status, err)
			fusionErrorsTotal.WithLabelValues(string(class)).Inc()

			if err != nil {
				fusionRequestsTotal.WithLabelValues(r.Endpoint, "network_error").Inc()
				lastErr = err
			} else {
				fusionRequestsTotal.WithLabelValues(r.Endpoint, fmt.Sprintf("%d", status)).Inc()
				lastErr = &APIError{
					StatusCode: status,
					ErrorClass: class,
					Message:    http.StatusText(status),
				}
			}

			if attempt >= c.config.MaxRetries {
				fusionRetryExhaustedTotal.WithLabelValues(string(class)).Inc()
				c.logger.Error().
					Str("url", c.config.BaseURL+r.Endpoint).
					Str("params", r.Query.Encode()).
					Int("attempts", attempt+1).
					Err(lastErr).
					Msg("Request failed, retries exhausted")
				return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, attempt+1, lastErr)
			}

			attempt++
			fusionRetriesTotal.WithLabelValues(string(class)).Inc()
			c.logger.Debug().
				Str("endpoint", r.Endpoint).
				Str("error_class", string(class)).
				Int("attempt", attempt).
				Msg("Retrying request")
		}
	}
}

// send performs one HTTP attempt and reads the full body.
func (c *Client) send(ctx context.Context, r Request) (int, []byte, error) {
	u := c.config.BaseURL + r.Endpoint
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	if len(r.Form) > 0 {
		body = strings.NewReader(r.Form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if len(r.Form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, data, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}
