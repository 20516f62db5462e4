// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

// MockMusic is a test double for services.Music that records its calls.
type MockMusic struct {
	mu sync.Mutex

	SearchItems []ytmusic.SearchItem
	SearchErr   error
	PlaylistID  json.RawMessage
	CreateErr   error

	SearchCalls int
	CreateCalls int
	LastQuery   string
	LastOptions ytmusic.SearchOptions
	LastTitle   string
	LastDesc    string
	LastSongIDs []string
}

func (m *MockMusic) Search(ctx context.Context, query string, opts ytmusic.SearchOptions) ([]ytmusic.SearchItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls++
	m.LastQuery, m.LastOptions = query, opts
	return m.SearchItems, m.SearchErr
}

func (m *MockMusic) CreatePlaylist(ctx context.Context, title, description string, videoIDs []string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	m.LastTitle, m.LastDesc, m.LastSongIDs = title, description, videoIDs
	return m.PlaylistID, m.CreateErr
}

// Calls returns the total number of client invocations.
func (m *MockMusic) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SearchCalls + m.CreateCalls
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
