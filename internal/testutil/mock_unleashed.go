// Package testutil provides testing utilities for the Unleashed client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock Unleashed endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// RecordedRequest captures one request as seen by the mock server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
}

// MockUnleashed is a configurable mock Unleashed API server for testing.
type MockUnleashed struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
	requests []RecordedRequest
}

// NewMockUnleashed creates a new mock Unleashed server.
func NewMockUnleashed() *MockUnleashed {
	mock := &MockUnleashed{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
		})
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockUnleashed) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockUnleashed) Close() {
	m.server.Close()
}

// Reset clears all recorded requests.
func (m *MockUnleashed) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockUnleashed) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockUnleashed) SetResponse(path string, resp MockResponse) {
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

// Requests returns a copy of all recorded requests in arrival order.
func (m *MockUnleashed) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount returns the number of requests made to the server.
func (m *MockUnleashed) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// defaultHandler responds with an empty unpaginated envelope.
func (m *MockUnleashed) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"Items": []}`))
}

// ListBody builds a paginated list envelope from raw JSON item literals.
func ListBody(numberOfPages int, items ...string) string {
	return fmt.Sprintf(`{"Items": [%s], "Pagination": {"NumberOfPages": %d, "PageSize": 200}}`,
		strings.Join(items, ", "), numberOfPages)
}

// UnpaginatedBody builds a list envelope without a Pagination object.
func UnpaginatedBody(items ...string) string {
	return fmt.Sprintf(`{"Items": [%s]}`, strings.Join(items, ", "))
}

// NewListResponse creates a 200 OK paginated list response.
func NewListResponse(numberOfPages int, items ...string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       ListBody(numberOfPages, items...),
	}
}

// NewUnpaginatedResponse creates a 200 OK list response without pagination
// metadata.
func NewUnpaginatedResponse(items ...string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       UnpaginatedBody(items...),
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"description": "Internal server error"}`,
	}
}

// NewForbiddenResponse creates a 403 response, which Unleashed returns for a
// bad signature.
func NewForbiddenResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusForbidden,
		Body:       `{"description": "Invalid api-auth-signature"}`,
	}
}
