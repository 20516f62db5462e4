package ytmusic

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// search params select a result category; they are the protobuf blobs the web client sends.
var filterParams = map[string]string{
	"songs":  "EgWKAQIIAWoMEA4QChADEAQQCRAF",
	"videos": "EgWKAQIQAWoMEA4QChADEAQQCRAF",
}

const (
	runSeparator  = " • "
	pageTypeAlbum = "MUSIC_PAGE_TYPE_ALBUM"
)

var (
	durationPattern = regexp.MustCompile(`^(\d+:)*\d+:\d+$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
)

type textRuns struct {
	Runs []textRun `json:"runs"`
}

type textRun struct {
	Text               string              `json:"text"`
	NavigationEndpoint *navigationEndpoint `json:"navigationEndpoint"`
}

type navigationEndpoint struct {
	BrowseEndpoint *struct {
		BrowseID string `json:"browseId"`
		Configs  struct {
			Music struct {
				PageType string `json:"pageType"`
			} `json:"browseEndpointContextMusicConfig"`
		} `json:"browseEndpointContextSupportedConfigs"`
	} `json:"browseEndpoint"`
	WatchEndpoint *watchEndpoint `json:"watchEndpoint"`
}

type watchEndpoint struct {
	VideoID string `json:"videoId"`
}

type listItemRenderer struct {
	FlexColumns []struct {
		Column struct {
			Text textRuns `json:"text"`
		} `json:"musicResponsiveListItemFlexColumnRenderer"`
	} `json:"flexColumns"`
	PlaylistItemData *struct {
		VideoID string `json:"videoId"`
	} `json:"playlistItemData"`
	Overlay *struct {
		Thumbnail struct {
			Content struct {
				PlayButton struct {
					PlayNavigationEndpoint struct {
						WatchEndpoint *watchEndpoint `json:"watchEndpoint"`
					} `json:"playNavigationEndpoint"`
				} `json:"musicPlayButtonRenderer"`
			} `json:"content"`
		} `json:"musicItemThumbnailOverlayRenderer"`
	} `json:"overlay"`
}

type sectionList struct {
	Contents []struct {
		MusicShelf *struct {
			Contents []struct {
				Item *listItemRenderer `json:"musicResponsiveListItemRenderer"`
			} `json:"contents"`
		} `json:"musicShelfRenderer"`
	} `json:"contents"`
}

type searchResponse struct {
	Contents struct {
		Tabbed *struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionList *sectionList `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"tabbedSearchResultsRenderer"`
		SectionList *sectionList `json:"sectionListRenderer"`
	} `json:"contents"`
}

// Search queries YouTube Music and returns raw rows in result order.
//
// Only the first page of results is read, which holds up to 20 rows.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchItem, error) {
	body := map[string]any{"query": query}
	if opts.Filter != "" {
		params, ok := filterParams[opts.Filter]
		if !ok {
			return nil, fmt.Errorf("unsupported search filter %q", opts.Filter)
		}
		body["params"] = params
	}

	var resp searchResponse
	if err := c.post(ctx, "search", body, &resp); err != nil {
		return nil, err
	}

	items := parseSearchResponse(&resp)
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items, nil
}

func parseSearchResponse(resp *searchResponse) []SearchItem {
	list := resp.Contents.SectionList
	if tabbed := resp.Contents.Tabbed; tabbed != nil && len(tabbed.Tabs) > 0 {
		list = tabbed.Tabs[0].TabRenderer.Content.SectionList
	}
	if list == nil {
		return []SearchItem{}
	}

	items := []SearchItem{}
	for _, section := range list.Contents {
		if section.MusicShelf == nil {
			continue
		}
		for _, row := range section.MusicShelf.Contents {
			if row.Item == nil {
				continue
			}
			items = append(items, parseListItem(row.Item))
		}
	}
	return items
}

func parseListItem(r *listItemRenderer) SearchItem {
	var item SearchItem

	if len(r.FlexColumns) > 0 {
		if runs := r.FlexColumns[0].Column.Text.Runs; len(runs) > 0 {
			item.Title = ptr(runs[0].Text)
			if ep := runs[0].NavigationEndpoint; ep != nil && ep.WatchEndpoint != nil && ep.WatchEndpoint.VideoID != "" {
				item.VideoID = ptr(ep.WatchEndpoint.VideoID)
			}
		}
	}

	switch {
	case r.PlaylistItemData != nil && r.PlaylistItemData.VideoID != "":
		item.VideoID = ptr(r.PlaylistItemData.VideoID)
	case r.Overlay != nil:
		if we := r.Overlay.Thumbnail.Content.PlayButton.PlayNavigationEndpoint.WatchEndpoint; we != nil && we.VideoID != "" {
			item.VideoID = ptr(we.VideoID)
		}
	}

	if len(r.FlexColumns) > 1 {
		parseDetailRuns(r.FlexColumns[1].Column.Text.Runs, &item)
	}
	return item
}

// parseDetailRuns reads the "artists • album • duration" column.
//
// Linked runs are albums (browse IDs starting with MPRE) or artists; unlinked runs are
// classified by shape, and any remaining text counts as an artist without an ID.
func parseDetailRuns(runs []textRun, item *SearchItem) {
	for _, run := range runs {
		text := run.Text
		if text == runSeparator || strings.TrimSpace(text) == "" || strings.TrimSpace(text) == "&" || strings.TrimSpace(text) == "," {
			continue
		}

		if ep := run.NavigationEndpoint; ep != nil && ep.BrowseEndpoint != nil {
			id := ep.BrowseEndpoint.BrowseID
			if strings.HasPrefix(id, "MPRE") || ep.BrowseEndpoint.Configs.Music.PageType == pageTypeAlbum {
				item.Album = &Album{Name: ptr(text), ID: ptr(id)}
				continue
			}
			item.Artists = append(item.Artists, Artist{Name: ptr(text), ID: ptr(id)})
			continue
		}

		switch {
		case durationPattern.MatchString(text):
			item.Duration = ptr(text)
		case yearPattern.MatchString(text):
			item.Year = ptr(text)
		case strings.HasSuffix(text, " views") || strings.HasSuffix(text, " plays"):
			// play counts on video rows
		default:
			item.Artists = append(item.Artists, Artist{Name: ptr(text)})
		}
	}
}
