package ytmusic

import "fmt"

// Artist is an artist reference on a search row.
type Artist struct {
	Name *string `json:"name,omitempty"`
	ID   *string `json:"id,omitempty"`
}

// Album is an album reference on a search row.
type Album struct {
	Name *string `json:"name,omitempty"`
	ID   *string `json:"id,omitempty"`
}

// SearchItem is one raw search row. Every field is optional.
type SearchItem struct {
	VideoID  *string  `json:"videoId,omitempty"`
	Title    *string  `json:"title,omitempty"`
	Artists  []Artist `json:"artists,omitempty"`
	Album    *Album   `json:"album,omitempty"`
	Duration *string  `json:"duration,omitempty"`
	Year     *string  `json:"year,omitempty"`
}

// SearchOptions narrows a search.
type SearchOptions struct {
	Filter string // "songs", "videos" or "" for unfiltered
	Limit  int    // maximum rows returned; 0 returns the first page
}

// APIError is a non-2xx response from YouTube Music.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("youtube music API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("youtube music API error: status %d", e.StatusCode)
}

func ptr[T any](v T) *T { return &v }
