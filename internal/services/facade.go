package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/hrvxo-music/internal/models"
	"github.com/desertthunder/hrvxo-music/internal/shared"
	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

// Facade implements [Backend] on top of a [Music] client.
type Facade struct {
	provider MusicProvider
	recorder PlaylistRecorder
	logger   *log.Logger
}

// NewFacade creates a [Facade]. recorder may be nil to skip playlist history.
func NewFacade(provider MusicProvider, recorder PlaylistRecorder, logger *log.Logger) *Facade {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Facade{provider: provider, recorder: recorder, logger: logger}
}

func (f *Facade) music(ctx context.Context) (Music, error) {
	m, err := f.provider(ctx)
	if err != nil {
		return nil, credentialError(err)
	}
	return m, nil
}

// Search returns up to [SearchLimit] songs matching query.
func (f *Facade) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, validationError("Query cannot be empty")
	}

	m, err := f.music(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.Search(ctx, query, ytmusic.SearchOptions{Filter: SearchFilter, Limit: SearchLimit})
	if err != nil {
		return nil, upstreamError(err)
	}

	results, err := NormalizeAll(items)
	if err != nil {
		return nil, upstreamError(err)
	}
	return results, nil
}

// CreatePlaylist creates a private playlist and returns its ID.
//
// The playlist is recorded when a [PlaylistRecorder] is configured; recording failures are logged
// and do not fail the call.
func (f *Facade) CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*CreatePlaylistResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validationError("Playlist title cannot be empty")
	}
	if len(req.SongIDs) == 0 {
		return nil, validationError("Must provide at least one song ID")
	}

	m, err := f.music(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := m.CreatePlaylist(ctx, req.Title, req.Description, req.SongIDs)
	if err != nil {
		return nil, upstreamError(err)
	}

	id, ok := playlistID(raw)
	if !ok {
		return nil, &Error{
			Kind:    Upstream,
			Message: "Failed to create playlist",
			Err:     fmt.Errorf("%w: unusable playlistId %s", shared.ErrMalformedResponse, string(raw)),
		}
	}

	if f.recorder != nil {
		record := models.NewPlaylistRecord(id, req.Title, req.Description, req.SongIDs)
		if err := f.recorder.RecordPlaylist(ctx, record); err != nil {
			f.logger.Error("failed to record playlist", "playlist_id", id, "error", err)
		}
	}

	return &CreatePlaylistResponse{PlaylistID: id}, nil
}

// playlistID accepts only a non-empty JSON string.
func playlistID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}
