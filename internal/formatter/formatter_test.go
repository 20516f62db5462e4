package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/hrvxo-music/internal/models"
	"github.com/desertthunder/hrvxo-music/internal/services"
	"github.com/desertthunder/hrvxo-music/internal/shared"
	th "github.com/desertthunder/hrvxo-music/internal/testing"
)

func sampleResults() []services.SearchResult {
	return []services.SearchResult{
		{ID: "v1", Title: "Song One", Artist: "Artist One, Two", Album: th.Str("Album One"), Duration: th.Str("3:00")},
		{ID: "v2", Title: "Song Two", Artist: "Artist Two"},
	}
}

func sampleHistory() []*models.PlaylistRecord {
	r := models.NewPlaylistRecord("PL1", "Morning", "wake up", []string{"v1", "v2"})
	r.SetID("id-1")
	r.SetSequence(3)
	return []*models.PlaylistRecord{r}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSearchResults(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		data, err := SearchResultsToCSV(sampleResults())
		if err != nil {
			t.Fatalf("SearchResultsToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Artist,Album,Duration" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != `v1,Song One,"Artist One, Two",Album One,3:00` {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if lines[2] != "v2,Song Two,Artist Two,," {
			t.Errorf("unexpected second row: %s", lines[2])
		}
	})

	t.Run("Text", func(t *testing.T) {
		output := string(SearchResultsToText(sampleResults(), DefaultPalette))

		for _, want := range []string{"1. Artist One, Two - ", "Song One", "(Album One)", "[3:00]", "v1", "2. Artist Two - "} {
			if !strings.Contains(output, want) {
				t.Errorf("text output missing %q:\n%s", want, output)
			}
		}
		if strings.Contains(output, "()") {
			t.Errorf("expected absent album to be omitted:\n%s", output)
		}
	})

	t.Run("Text Empty", func(t *testing.T) {
		if output := string(SearchResultsToText(nil, DefaultPalette)); !strings.Contains(output, "No results") {
			t.Errorf("expected empty message, got %q", output)
		}
	})

	t.Run("Write JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSearchResults(&buf, FormatJSON, sampleResults(), DefaultPalette); err != nil {
			t.Fatalf("WriteSearchResults failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if decoded[0]["id"] != "v1" {
			t.Errorf("expected id v1, got %v", decoded[0]["id"])
		}
		if _, ok := decoded[1]["album"]; ok {
			t.Error("expected album omitted for second result")
		}
	})

	t.Run("Write Error", func(t *testing.T) {
		if err := WriteSearchResults(&th.FWriter{}, FormatCSV, sampleResults(), DefaultPalette); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestHistory(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		data, err := HistoryToCSV(sampleHistory())
		if err != nil {
			t.Fatalf("HistoryToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Sequence,PlaylistID,Title,Description,Tracks,CreatedAt\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "3,PL1,Morning,wake up,2,") {
			t.Errorf("CSV missing record, got: %s", output)
		}
	})

	t.Run("Text", func(t *testing.T) {
		output := string(HistoryToText(sampleHistory(), DefaultPalette))

		for _, want := range []string{"#3", "Morning", "(2 tracks)", "PL1", "wake up"} {
			if !strings.Contains(output, want) {
				t.Errorf("text output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("Text Empty", func(t *testing.T) {
		if output := string(HistoryToText(nil, DefaultPalette)); !strings.Contains(output, "No playlists recorded") {
			t.Errorf("expected empty message, got %q", output)
		}
	})

	t.Run("Write JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteHistory(&buf, FormatJSON, sampleHistory(), DefaultPalette); err != nil {
			t.Fatalf("WriteHistory failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if decoded[0]["playlistId"] != "PL1" || decoded[0]["sequence"] != float64(3) {
			t.Errorf("unexpected JSON record %v", decoded[0])
		}
		if ids, _ := decoded[0]["songIds"].([]any); len(ids) != 2 {
			t.Errorf("expected 2 song ids, got %v", decoded[0]["songIds"])
		}
	})

	t.Run("Write Text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteHistory(&buf, FormatText, sampleHistory(), DefaultPalette); err != nil {
			t.Fatalf("WriteHistory failed: %v", err)
		}
		if !strings.Contains(buf.String(), "Morning") {
			t.Errorf("expected title in output, got %q", buf.String())
		}
	})
}
