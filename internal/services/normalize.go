package services

import (
	"fmt"
	"strings"

	"github.com/desertthunder/hrvxo-music/internal/shared"
	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

const artistSeparator = ", "

// Normalize converts a raw search row into a [SearchResult].
//
// A missing video ID, or an artist or album present without a name, fails with
// [shared.ErrMalformedResponse]. A missing title becomes "".
func Normalize(item ytmusic.SearchItem) (SearchResult, error) {
	if item.VideoID == nil || *item.VideoID == "" {
		return SearchResult{}, fmt.Errorf("%w: search item has no videoId", shared.ErrMalformedResponse)
	}

	names := make([]string, 0, len(item.Artists))
	for i, a := range item.Artists {
		if a.Name == nil {
			return SearchResult{}, fmt.Errorf("%w: artist %d of %s has no name", shared.ErrMalformedResponse, i, *item.VideoID)
		}
		names = append(names, *a.Name)
	}

	result := SearchResult{
		ID:       *item.VideoID,
		Artist:   strings.Join(names, artistSeparator),
		Duration: item.Duration,
	}
	if item.Title != nil {
		result.Title = *item.Title
	}
	if item.Album != nil {
		if item.Album.Name == nil {
			return SearchResult{}, fmt.Errorf("%w: album of %s has no name", shared.ErrMalformedResponse, *item.VideoID)
		}
		result.Album = item.Album.Name
	}

	return result, nil
}

// NormalizeAll normalizes items in order. Any fault discards the whole batch.
func NormalizeAll(items []ytmusic.SearchItem) ([]SearchResult, error) {
	results := make([]SearchResult, 0, len(items))
	for i, item := range items {
		result, err := Normalize(item)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		results = append(results, result)
	}
	return results, nil
}
