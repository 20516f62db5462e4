package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/hrvxo-music/internal/formatter"
	"github.com/desertthunder/hrvxo-music/internal/shared"
)

// HistoryList prints recorded playlists, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	repo, closeDB, err := r.history()
	defer closeDB()
	if err != nil {
		if errors.Is(err, shared.ErrHistoryDisabled) {
			return fmt.Errorf("%w: set database.path or DATABASE_PATH", err)
		}
		return err
	}

	records, err := repo.List(map[string]any{
		"limit": cmd.Int("limit"),
		"title": cmd.String("title"),
	})
	if err != nil {
		return err
	}

	return formatter.WriteHistory(r.output, format, records, r.palette)
}
