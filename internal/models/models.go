package models

import (
	"errors"
	"time"
)

// Model defines the base interface for persisted records.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the data access operations for a model type.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// PlaylistRecord is a playlist created through the service.
type PlaylistRecord struct {
	id          string
	sequence    int
	playlistID  string
	title       string
	description string
	songIDs     []string
	createdAt   time.Time
}

// NewPlaylistRecord creates an unsaved [PlaylistRecord] stamped with the current time.
func NewPlaylistRecord(playlistID, title, description string, songIDs []string) *PlaylistRecord {
	return &PlaylistRecord{
		playlistID:  playlistID,
		title:       title,
		description: description,
		songIDs:     append([]string(nil), songIDs...),
		createdAt:   time.Now().UTC(),
	}
}

func (p *PlaylistRecord) ID() string { return p.id }
func (p *PlaylistRecord) Sequence() int { return p.sequence }
func (p *PlaylistRecord) PlaylistID() string { return p.playlistID }
func (p *PlaylistRecord) Title() string { return p.title }
func (p *PlaylistRecord) Description() string { return p.description }
func (p *PlaylistRecord) SongIDs() []string { return p.songIDs }
func (p *PlaylistRecord) TrackCount() int { return len(p.songIDs) }
func (p *PlaylistRecord) CreatedAt() time.Time { return p.createdAt }

func (p *PlaylistRecord) SetID(id string) { p.id = id }
func (p *PlaylistRecord) SetSequence(seq int) { p.sequence = seq }
func (p *PlaylistRecord) SetSongIDs(ids []string) { p.songIDs = ids }
func (p *PlaylistRecord) SetCreatedAt(t time.Time) { p.createdAt = t }

// Validate requires a playlist ID and a title.
func (p *PlaylistRecord) Validate() error {
	if p.playlistID == "" {
		return errors.New("playlist ID is required")
	}
	if p.title == "" {
		return errors.New("title is required")
	}
	return nil
}
