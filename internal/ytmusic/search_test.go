package ytmusic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// songRow builds a musicResponsiveListItemRenderer the way YouTube Music returns song results.
func songRow(videoID, title string, details []map[string]any) map[string]any {
	row := map[string]any{
		"flexColumns": []any{
			map[string]any{"musicResponsiveListItemFlexColumnRenderer": map[string]any{
				"text": map[string]any{"runs": []any{map[string]any{
					"text":               title,
					"navigationEndpoint": map[string]any{"watchEndpoint": map[string]any{"videoId": videoID}},
				}}},
			}},
			map[string]any{"musicResponsiveListItemFlexColumnRenderer": map[string]any{
				"text": map[string]any{"runs": details},
			}},
		},
	}
	if videoID != "" {
		row["playlistItemData"] = map[string]any{"videoId": videoID}
	}
	return map[string]any{"musicResponsiveListItemRenderer": row}
}

func artistRun(name, id string) map[string]any {
	return map[string]any{
		"text": name,
		"navigationEndpoint": map[string]any{"browseEndpoint": map[string]any{
			"browseId": id,
			"browseEndpointContextSupportedConfigs": map[string]any{
				"browseEndpointContextMusicConfig": map[string]any{"pageType": "MUSIC_PAGE_TYPE_ARTIST"},
			},
		}},
	}
}

func albumRun(name, id string) map[string]any {
	return map[string]any{
		"text": name,
		"navigationEndpoint": map[string]any{"browseEndpoint": map[string]any{
			"browseId": id,
			"browseEndpointContextSupportedConfigs": map[string]any{
				"browseEndpointContextMusicConfig": map[string]any{"pageType": "MUSIC_PAGE_TYPE_ALBUM"},
			},
		}},
	}
}

func textOnly(text string) map[string]any { return map[string]any{"text": text} }

func tabbedSearch(rows ...map[string]any) map[string]any {
	contents := make([]any, len(rows))
	for i, r := range rows {
		contents[i] = r
	}
	return map[string]any{"contents": map[string]any{"tabbedSearchResultsRenderer": map[string]any{
		"tabs": []any{map[string]any{"tabRenderer": map[string]any{"content": map[string]any{
			"sectionListRenderer": map[string]any{"contents": []any{
				map[string]any{"itemSectionRenderer": map[string]any{}},
				map[string]any{"musicShelfRenderer": map[string]any{"contents": contents}},
			}},
		}}}},
	}}}
}

func decodeFixture(t *testing.T, v any) *searchResponse {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return &resp
}

func TestParseSearchResponse(t *testing.T) {
	t.Run("song rows", func(t *testing.T) {
		fixture := tabbedSearch(
			songRow("v1", "Song", []map[string]any{
				artistRun("A", "UC1"), textOnly(" & "), artistRun("B", "UC2"),
				textOnly(" • "), albumRun("Alb", "MPREb_1"),
				textOnly(" • "), textOnly("3:21"),
			}),
			songRow("v2", "Loose", []map[string]any{
				textOnly("Various Artists"), textOnly(" • "), textOnly("2019"), textOnly(" • "), textOnly("1:02:03"),
			}),
		)

		items := parseSearchResponse(decodeFixture(t, fixture))
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}

		first := items[0]
		if first.VideoID == nil || *first.VideoID != "v1" {
			t.Errorf("expected videoId v1, got %v", first.VideoID)
		}
		if first.Title == nil || *first.Title != "Song" {
			t.Errorf("expected title Song, got %v", first.Title)
		}
		if len(first.Artists) != 2 || *first.Artists[0].Name != "A" || *first.Artists[1].Name != "B" {
			t.Errorf("expected artists A and B, got %+v", first.Artists)
		}
		if *first.Artists[1].ID != "UC2" {
			t.Errorf("expected artist id UC2, got %s", *first.Artists[1].ID)
		}
		if first.Album == nil || *first.Album.Name != "Alb" || *first.Album.ID != "MPREb_1" {
			t.Errorf("expected album Alb, got %+v", first.Album)
		}
		if first.Duration == nil || *first.Duration != "3:21" {
			t.Errorf("expected duration 3:21, got %v", first.Duration)
		}

		second := items[1]
		if len(second.Artists) != 1 || *second.Artists[0].Name != "Various Artists" || second.Artists[0].ID != nil {
			t.Errorf("expected unlinked artist, got %+v", second.Artists)
		}
		if second.Album != nil {
			t.Errorf("expected no album, got %+v", second.Album)
		}
		if second.Year == nil || *second.Year != "2019" {
			t.Errorf("expected year 2019, got %v", second.Year)
		}
		if second.Duration == nil || *second.Duration != "1:02:03" {
			t.Errorf("expected duration 1:02:03, got %v", second.Duration)
		}
	})

	t.Run("video id from overlay", func(t *testing.T) {
		row := map[string]any{"musicResponsiveListItemRenderer": map[string]any{
			"flexColumns": []any{map[string]any{"musicResponsiveListItemFlexColumnRenderer": map[string]any{
				"text": map[string]any{"runs": []any{textOnly("Overlay Song")}},
			}}},
			"overlay": map[string]any{"musicItemThumbnailOverlayRenderer": map[string]any{"content": map[string]any{
				"musicPlayButtonRenderer": map[string]any{"playNavigationEndpoint": map[string]any{
					"watchEndpoint": map[string]any{"videoId": "ov1"},
				}},
			}}},
		}}

		items := parseSearchResponse(decodeFixture(t, tabbedSearch(row)))
		if len(items) != 1 || items[0].VideoID == nil || *items[0].VideoID != "ov1" {
			t.Fatalf("expected overlay video id, got %+v", items)
		}
		if items[0].Artists != nil {
			t.Errorf("expected no artists without detail column, got %+v", items[0].Artists)
		}
	})

	t.Run("row without ids keeps fields empty", func(t *testing.T) {
		row := map[string]any{"musicResponsiveListItemRenderer": map[string]any{}}
		items := parseSearchResponse(decodeFixture(t, tabbedSearch(row)))
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].VideoID != nil || items[0].Title != nil {
			t.Errorf("expected empty item, got %+v", items[0])
		}
	})

	t.Run("empty response", func(t *testing.T) {
		items := parseSearchResponse(decodeFixture(t, map[string]any{}))
		if items == nil || len(items) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", items)
		}
	})

	t.Run("untabbed section list", func(t *testing.T) {
		fixture := map[string]any{"contents": map[string]any{"sectionListRenderer": map[string]any{
			"contents": []any{map[string]any{"musicShelfRenderer": map[string]any{"contents": []any{
				songRow("v9", "Plain", nil),
			}}}},
		}}}

		items := parseSearchResponse(decodeFixture(t, fixture))
		if len(items) != 1 || *items[0].VideoID != "v9" {
			t.Errorf("expected one item v9, got %+v", items)
		}
	})
}

func TestSearch(t *testing.T) {
	rows := make([]map[string]any, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, songRow("v"+string(rune('a'+i)), "Song", []map[string]any{artistRun("A", "UC1")}))
	}

	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected path /search, got %s", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		body = nil
		json.Unmarshal(data, &body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tabbedSearch(rows...))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	t.Run("songs filter and limit", func(t *testing.T) {
		items, err := client.Search(context.Background(), "query", SearchOptions{Filter: "songs", Limit: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 10 {
			t.Errorf("expected 10 items, got %d", len(items))
		}
		if body["query"] != "query" {
			t.Errorf("expected query in body, got %v", body["query"])
		}
		if body["params"] != filterParams["songs"] {
			t.Errorf("expected songs params, got %v", body["params"])
		}
	})

	t.Run("unfiltered sends no params", func(t *testing.T) {
		items, err := client.Search(context.Background(), "query", SearchOptions{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 12 {
			t.Errorf("expected all 12 items, got %d", len(items))
		}
		if _, ok := body["params"]; ok {
			t.Errorf("expected no params, got %v", body["params"])
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		if _, err := client.Search(context.Background(), "query", SearchOptions{Filter: "podcasts"}); err == nil {
			t.Error("expected error for unsupported filter")
		}
	})
}
