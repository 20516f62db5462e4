package ytmusic

import (
	"context"
	"encoding/json"
	"regexp"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

const privacyPrivate = "PRIVATE"

// CreatePlaylist creates a private playlist holding videoIDs in order.
//
// It returns the raw "playlistId" value of the response, which is nil when YouTube Music omits it.
// Callers must check the value: a successful HTTP exchange does not guarantee a usable identifier.
func (c *Client) CreatePlaylist(ctx context.Context, title, description string, videoIDs []string) (json.RawMessage, error) {
	body := map[string]any{
		"title":         title,
		"description":   htmlTag.ReplaceAllString(description, ""),
		"privacyStatus": privacyPrivate,
	}
	if len(videoIDs) > 0 {
		body["videoIds"] = videoIDs
	}

	var resp map[string]json.RawMessage
	if err := c.post(ctx, "playlist/create", body, &resp); err != nil {
		return nil, err
	}

	return resp["playlistId"], nil
}
