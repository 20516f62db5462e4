package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/hrvxo-music/internal/models"
	"github.com/desertthunder/hrvxo-music/internal/shared"
)

// ErrRecordNotFound is returned when no history record matches a lookup.
var ErrRecordNotFound = errors.New("playlist record not found")

const historyColumns = `id, sequence, playlist_id, title, description, created_at`

// PlaylistHistoryRepository implements models.Repository[*models.PlaylistRecord].
type PlaylistHistoryRepository struct {
	db *sql.DB
}

// NewPlaylistHistoryRepository creates a new PlaylistHistoryRepository with the given database connection
func NewPlaylistHistoryRepository(db *sql.DB) *PlaylistHistoryRepository {
	return &PlaylistHistoryRepository{db: db}
}

// Create inserts a record with a generated ID and sequence.
func (r *PlaylistHistoryRepository) Create(record *models.PlaylistRecord) error {
	return r.RecordPlaylist(context.Background(), record)
}

// RecordPlaylist inserts record and its video IDs in one transaction.
func (r *PlaylistHistoryRepository) RecordPlaylist(ctx context.Context, record *models.PlaylistRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "playlist_history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := shared.GenerateID()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO playlist_history (id, sequence, playlist_id, title, description, track_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, sequence, record.PlaylistID(), record.Title(), record.Description(), record.TrackCount(), record.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert playlist record: %w", err)
	}

	for pos, videoID := range record.SongIDs() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO playlist_history_tracks (history_id, position, video_id) VALUES (?, ?, ?)`,
			id, pos, videoID)
		if err != nil {
			return fmt.Errorf("failed to insert track %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit playlist record: %w", err)
	}

	record.SetID(id)
	record.SetSequence(sequence)
	return nil
}

// Get retrieves a record by ID.
func (r *PlaylistHistoryRepository) Get(id string) (*models.PlaylistRecord, error) {
	row := r.db.QueryRow(`SELECT `+historyColumns+` FROM playlist_history WHERE id = ?`, id)
	return r.loadOne(row)
}

// GetByPlaylistID retrieves a record by its YouTube Music playlist ID.
func (r *PlaylistHistoryRepository) GetByPlaylistID(playlistID string) (*models.PlaylistRecord, error) {
	row := r.db.QueryRow(`SELECT `+historyColumns+` FROM playlist_history WHERE playlist_id = ?`, playlistID)
	return r.loadOne(row)
}

// List retrieves records newest first.
//
// Supported criteria: "limit" (int) caps the number of records; "title" (string) filters by substring.
func (r *PlaylistHistoryRepository) List(criteria map[string]any) ([]*models.PlaylistRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM playlist_history WHERE 1 = 1`
	args := []any{}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query += " AND title LIKE ?"
		args = append(args, "%"+title+"%")
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist history: %w", err)
	}

	records := []*models.PlaylistRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	for _, record := range records {
		if err := r.loadSongIDs(record); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (r *PlaylistHistoryRepository) loadOne(row *sql.Row) (*models.PlaylistRecord, error) {
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadSongIDs(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *PlaylistHistoryRepository) loadSongIDs(record *models.PlaylistRecord) error {
	rows, err := r.db.Query(
		`SELECT video_id FROM playlist_history_tracks WHERE history_id = ? ORDER BY position`, record.ID())
	if err != nil {
		return fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan playlist track: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	record.SetSongIDs(ids)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.PlaylistRecord, error) {
	var (
		id          string
		sequence    int
		playlistID  string
		title       string
		description string
		createdAt   time.Time
	)

	if err := s.Scan(&id, &sequence, &playlistID, &title, &description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan playlist record: %w", err)
	}

	record := models.NewPlaylistRecord(playlistID, title, description, nil)
	record.SetID(id)
	record.SetSequence(sequence)
	record.SetCreatedAt(createdAt)
	return record, nil
}
