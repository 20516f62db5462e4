package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/hrvxo-music/internal/shared"
	tu "github.com/desertthunder/hrvxo-music/internal/testing"
	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

func artists(names ...string) []ytmusic.Artist {
	out := make([]ytmusic.Artist, len(names))
	for i, n := range names {
		out[i] = ytmusic.Artist{Name: tu.Str(n)}
	}
	return out
}

func TestNormalize(t *testing.T) {
	t.Run("Full Item", func(t *testing.T) {
		item := ytmusic.SearchItem{
			VideoID:  tu.Str("v1"),
			Title:    tu.Str("Song"),
			Artists:  artists("A", "B"),
			Album:    &ytmusic.Album{Name: tu.Str("Alb")},
			Duration: tu.Str("3:21"),
		}

		got, err := Normalize(item)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, _ := json.Marshal(got)
		want := `{"id":"v1","title":"Song","artist":"A, B","album":"Alb","duration":"3:21"}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("Sparse Item", func(t *testing.T) {
		got, err := Normalize(ytmusic.SearchItem{VideoID: tu.Str("v2")})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, _ := json.Marshal(got)
		want := `{"id":"v2","title":"","artist":""}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("Single Artist", func(t *testing.T) {
		got, _ := Normalize(ytmusic.SearchItem{VideoID: tu.Str("v3"), Artists: artists("Solo")})
		if got.Artist != "Solo" {
			t.Errorf("expected artist Solo, got %q", got.Artist)
		}
	})

	faults := []struct {
		name string
		item ytmusic.SearchItem
	}{
		{"Missing Video ID", ytmusic.SearchItem{Title: tu.Str("Song")}},
		{"Empty Video ID", ytmusic.SearchItem{VideoID: tu.Str("")}},
		{"Artist Without Name", ytmusic.SearchItem{VideoID: tu.Str("v"), Artists: []ytmusic.Artist{{ID: tu.Str("UC1")}}}},
		{"Album Without Name", ytmusic.SearchItem{VideoID: tu.Str("v"), Album: &ytmusic.Album{ID: tu.Str("MPRE")}}},
	}

	for _, tt := range faults {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.item); !errors.Is(err, shared.ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	t.Run("Keeps Order", func(t *testing.T) {
		items := []ytmusic.SearchItem{{VideoID: tu.Str("a")}, {VideoID: tu.Str("b")}, {VideoID: tu.Str("c")}}

		got, err := NormalizeAll(items)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 3 || got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
			t.Errorf("unexpected results %+v", got)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		got, err := NormalizeAll(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, _ := json.Marshal(got)
		if string(data) != "[]" {
			t.Errorf("expected [], got %s", data)
		}
	})

	t.Run("One Fault Discards Batch", func(t *testing.T) {
		items := []ytmusic.SearchItem{{VideoID: tu.Str("a")}, {Title: tu.Str("broken")}}

		got, err := NormalizeAll(items)
		if err == nil {
			t.Fatal("expected error")
		}
		if got != nil {
			t.Errorf("expected no partial results, got %+v", got)
		}
	})
}
