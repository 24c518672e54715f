// Package testutil provides testing utilities for the profile client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// UserFixture describes one known user served by the mock API across
// its profile, solved, and badges endpoints.
type UserFixture struct {
	Reputation float64
	Ranking    int
	Solved     int
	Badges     []string
}

// MockAPI is a configurable mock of the Alfa LeetCode API for testing.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
}

// NewMockAPI creates a new mock API server. Unknown paths get the
// platform's 404 error envelope.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.notFoundHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetUser wires the three per-username endpoints to a fixture.
func (m *MockAPI) SetUser(username string, fixture UserFixture) {
	m.SetResponse("/"+username, MockResponse{
		StatusCode: http.StatusOK,
		Body: fmt.Sprintf(`{"username": %q, "reputation": %g, "ranking": %d}`,
			username, fixture.Reputation, fixture.Ranking),
	})
	m.SetResponse("/"+username+"/solved", MockResponse{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"solvedProblem": %d}`, fixture.Solved),
	})

	badges := make([]map[string]string, 0, len(fixture.Badges))
	for _, name := range fixture.Badges {
		badges = append(badges, map[string]string{"displayName": name})
	}
	body, _ := json.Marshal(map[string]any{"badges": badges, "badgesCount": len(badges)})
	m.SetResponse("/"+username+"/badges", MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
	})
}

// SetUserDelay wires all endpoints of a user to respond slowly with an
// empty-but-valid payload set.
func (m *MockAPI) SetUserDelay(username string, fixture UserFixture, delay time.Duration) {
	m.SetUser(username, fixture)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range []string{"/" + username, "/" + username + "/solved", "/" + username + "/badges"} {
		inner := m.handlers[path]
		m.handlers[path] = func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(delay)
			inner(w, r)
		}
	}
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// notFoundHandler mimics the platform's unknown-user response.
func (m *MockAPI) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"errors": [{"message": "That user does not exist."}]}`))
}

// NewNotFoundEnvelope creates a 200 response carrying the error envelope
// the platform sometimes uses for unknown users.
func NewNotFoundEnvelope() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"errors": [{"message": "That user does not exist."}]}`,
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"errors": [{"message": "Too many requests"}]}`,
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"errors": [{"message": "Internal server error"}]}`,
	}
}

// NewMalformedResponse creates a 200 response with an undecodable body.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `<!DOCTYPE html><html>not json</html>`,
	}
}
