package main

import (
	"context"
	"encoding/csv"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/hrvxo-music/internal/formatter"
	"github.com/desertthunder/hrvxo-music/internal/services"
)

// Search looks up songs and prints them in the requested format.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	backend, done := r.backendFor(cmd)
	defer done()

	r.logger.Debug("searching youtube music", "query", query)

	results, err := backend.Search(ctx, query)
	if err != nil {
		return err
	}

	return formatter.WriteSearchResults(r.output, format, results, r.palette)
}

// Create creates a private playlist from the given video IDs.
func (r *Runner) Create(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	req := services.CreatePlaylistRequest{
		Title:       cmd.StringArg("title"),
		Description: cmd.String("description"),
		SongIDs:     cmd.StringSlice("song"),
	}

	backend, done := r.backendFor(cmd)
	defer done()

	r.logger.Debug("creating playlist", "title", req.Title, "songs", len(req.SongIDs))

	resp, err := backend.CreatePlaylist(ctx, req)
	if err != nil {
		return err
	}

	switch format {
	case formatter.FormatJSON:
		return r.writeJSON(resp, true)
	case formatter.FormatCSV:
		w := csv.NewWriter(r.output)
		w.Write([]string{"playlist_id", "title", "tracks"})
		w.Write([]string{resp.PlaylistID, req.Title, strconv.Itoa(len(req.SongIDs))})
		w.Flush()
		return w.Error()
	}

	if err := r.writePlain("%s\n", r.palette.OK("✓ Playlist created")); err != nil {
		return err
	}
	r.writePlain("Title: %s\n", req.Title)
	r.writePlain("ID: %s\n", resp.PlaylistID)
	return r.writePlain("Tracks: %d\n", len(req.SongIDs))
}
