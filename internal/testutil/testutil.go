// Package testutil provides testing utilities and helpers for the tokenmint library.
package testutil

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// MockTime provides a controllable time source for deterministic testing
type MockTime struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockTime creates a new mock time provider
func NewMockTime(t time.Time) *MockTime {
	return &MockTime{now: t}
}

// Now returns the current mock time
func (m *MockTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock time forward by the given duration
func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock time to a specific value
func (m *MockTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// SequenceSource is a deterministic byte source for testing. Each call
// returns the big-endian encoding of an incrementing read counter, so any
// two reads yield distinct (but reproducible) bytes as long as n is wide
// enough to hold the counter.
type SequenceSource struct {
	mu   sync.Mutex
	next uint64

	// Reads counts completed ReadBytes calls.
	Reads int
}

// ReadBytes returns n bytes encoding the next value of the read counter.
func (s *SequenceSource) ReadBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.next
	s.next++
	s.Reads++
	b := make([]byte, n)
	for i := n - 1; i >= 0 && seq > 0; i-- {
		b[i] = byte(seq)
		seq >>= 8
	}
	return b, nil
}

// FixedSource always returns the same bytes, truncated or cycled to the
// requested length.
type FixedSource struct {
	Bytes []byte
}

// ReadBytes returns n bytes cycled from the fixed pattern.
func (s FixedSource) ReadBytes(n int) ([]byte, error) {
	if len(s.Bytes) == 0 {
		return make([]byte, n), nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = s.Bytes[i%len(s.Bytes)]
	}
	return b, nil
}

// FailingSource fails every read with the configured error.
type FailingSource struct {
	Err error
}

// ReadBytes always returns the configured error.
func (s FailingSource) ReadBytes(int) ([]byte, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return nil, fmt.Errorf("byte source failed")
}

// NewLogRecorder returns a slog.Logger writing to the returned buffer,
// for asserting on structured log output.
func NewLogRecorder() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// AssertStringContains fails the test if s does not contain substr
func AssertStringContains(t *testing.T, s, substr string) {
	t.Helper()
	found := false
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("string %q does not contain %q", s, substr)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, message string) {
	t.Helper()
	if !condition {
		t.Errorf("assertion failed: %s", message)
	}
}

// HTTPRequest is a helper for making test HTTP requests
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
}

// NewHTTPRequest creates a new HTTP request helper
func NewHTTPRequest(method, url string) *HTTPRequest {
	return &HTTPRequest{
		Method:  method,
		URL:     url,
		Headers: make(map[string]string),
	}
}

// WithHeader adds a header to the request
func (r *HTTPRequest) WithHeader(key, value string) *HTTPRequest {
	r.Headers[key] = value
	return r
}

// Do executes the HTTP request
func (r *HTTPRequest) Do(handler http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(r.Method, r.URL, nil)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}
