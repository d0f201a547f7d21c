// Package testutil provides testing utilities for the Fusion client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TestToken is the bearer token issued by the default token handler.
const TestToken = "test-access-token"

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockFusion is a configurable mock Fusion API server for testing.
// Its default handlers issue a bearer token on the OAuth2 endpoint and
// answer everything else with an empty 200 body.
type MockFusion struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	pathCounts        map[string]int
	LastQuery         url.Values
	LastAuthorization string
	LastForm          url.Values
}

// NewMockFusion creates a new mock Fusion server.
func NewMockFusion() *MockFusion {
	mock := &MockFusion{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()

		mock.mu.Lock()
		mock.RequestCount++
		mock.pathCounts[r.URL.Path]++
		mock.LastQuery = r.URL.Query()
		mock.LastAuthorization = r.Header.Get("Authorization")
		mock.LastForm = r.PostForm
		mock.mu.Unlock()

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		// Default handlers
		if r.URL.Path == "/oauth2/token" {
			mock.tokenHandler(w, r)
			return
		}
		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockFusion) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockFusion) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockFusion) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.pathCounts = make(map[string]int)
	m.LastQuery = nil
	m.LastAuthorization = ""
	m.LastForm = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockFusion) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockFusion) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetSearchDataset serves the search endpoint from a synthetic dataset
// of datasetSize businesses with IDs biz-0..biz-(n-1), sliced by the
// request's offset and limit parameters.
func (m *MockFusion) SetSearchDataset(datasetSize int) {
	m.SetHandler("/v3/businesses/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		if limit <= 0 {
			limit = 20
		}

		end := offset + limit
		if end > datasetSize {
			end = datasetSize
		}

		items := make([]string, 0, limit)
		for i := offset; i < end; i++ {
			items = append(items, fmt.Sprintf(`{"id":"biz-%d","name":"Business %d","rating":4.5}`, i, i))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"total":%d,"region":{"center":{"latitude":37.77,"longitude":-122.42}},"businesses":[%s]}`,
			datasetSize, strings.Join(items, ","))
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockFusion) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// PathCount returns the number of requests made to a specific path.
func (m *MockFusion) PathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// tokenHandler answers the OAuth2 client-credentials exchange.
func (m *MockFusion) tokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":15552000}`, TestToken)
}

// defaultHandler provides a minimal 200 response.
func (m *MockFusion) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{}`))
}

// NewQuotaExceededResponse creates a 429 quota-exceeded response.
func NewQuotaExceededResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": {"code": "ACCESS_LIMIT_REACHED", "description": "You've reached the access limit for this client."}}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}
