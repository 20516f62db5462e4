package services

import (
	"context"
	"encoding/json"

	"github.com/desertthunder/hrvxo-music/internal/models"
	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

const (
	// SearchFilter restricts searches to songs.
	SearchFilter = "songs"
	// SearchLimit caps the number of search results.
	SearchLimit = 10
)

// Backend defines the operations exposed over HTTP.
type Backend interface {
	// Search finds songs matching query.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// CreatePlaylist creates a private playlist holding the requested songs.
	CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*CreatePlaylistResponse, error)
}

// Music is the YouTube Music capability the [Facade] depends on. [*ytmusic.Client] implements it.
type Music interface {
	Search(ctx context.Context, query string, opts ytmusic.SearchOptions) ([]ytmusic.SearchItem, error)
	CreatePlaylist(ctx context.Context, title, description string, videoIDs []string) (json.RawMessage, error)
}

// MusicProvider returns the shared [Music] client, resolving credentials on first use.
type MusicProvider func(ctx context.Context) (Music, error)

// PlaylistRecorder stores playlists after they are created.
type PlaylistRecorder interface {
	RecordPlaylist(ctx context.Context, record *models.PlaylistRecord) error
}

// SearchResult is a normalized search row.
type SearchResult struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    *string `json:"album,omitempty"`
	Duration *string `json:"duration,omitempty"`
}

// CreatePlaylistRequest is the body of a playlist creation call.
type CreatePlaylistRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SongIDs     []string `json:"song_ids"`
}

// CreatePlaylistResponse carries the ID of a created playlist.
type CreatePlaylistResponse struct {
	PlaylistID string `json:"playlistId"`
}
