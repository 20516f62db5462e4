// package formatter renders search results and playlist history as styled text, JSON or CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/hrvxo-music/internal/models"
	"github.com/desertthunder/hrvxo-music/internal/services"
	"github.com/desertthunder/hrvxo-music/internal/shared"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name; "" means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format %q (want text, json or csv)", shared.ErrInvalidArgument, s)
	}
}

// ToJSON encodes v as indented JSON.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SearchResultsToCSV converts results to CSV with columns: ID, Title, Artist, Album, Duration
func SearchResultsToCSV(results []services.SearchResult) ([]byte, error) {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{r.ID, r.Title, r.Artist, deref(r.Album), deref(r.Duration)}
	}
	return writeCSV([]string{"ID", "Title", "Artist", "Album", "Duration"}, rows)
}

// SearchResultsToText renders results as a numbered list.
func SearchResultsToText(results []services.SearchResult, p *Palette) []byte {
	var buf bytes.Buffer

	if len(results) == 0 {
		buf.WriteString(p.Warn("No results") + "\n")
		return buf.Bytes()
	}

	for i, r := range results {
		line := fmt.Sprintf("%d. %s - %s", i+1, r.Artist, p.Title(r.Title))
		if r.Album != nil {
			line += fmt.Sprintf(" (%s)", *r.Album)
		}
		if r.Duration != nil {
			line += fmt.Sprintf(" [%s]", *r.Duration)
		}
		buf.WriteString(line + "\n")
		buf.WriteString("   " + p.Help(r.ID) + "\n")
	}
	return buf.Bytes()
}

// HistoryToCSV converts records to CSV with columns: Sequence, PlaylistID, Title, Description, Tracks, CreatedAt
func HistoryToCSV(records []*models.PlaylistRecord) ([]byte, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(r.Sequence()),
			r.PlaylistID(),
			r.Title(),
			r.Description(),
			strconv.Itoa(r.TrackCount()),
			r.CreatedAt().Format(time.RFC3339),
		}
	}
	return writeCSV([]string{"Sequence", "PlaylistID", "Title", "Description", "Tracks", "CreatedAt"}, rows)
}

// HistoryToText renders records newest first as they are given.
func HistoryToText(records []*models.PlaylistRecord, p *Palette) []byte {
	var buf bytes.Buffer

	if len(records) == 0 {
		buf.WriteString(p.Warn("No playlists recorded") + "\n")
		return buf.Bytes()
	}

	for _, r := range records {
		buf.WriteString(fmt.Sprintf("#%d %s (%d tracks)\n", r.Sequence(), p.Title(r.Title()), r.TrackCount()))
		buf.WriteString(fmt.Sprintf("   %s  %s\n", r.PlaylistID(), p.Help(r.CreatedAt().Local().Format("2006-01-02 15:04"))))
		if r.Description() != "" {
			buf.WriteString("   " + r.Description() + "\n")
		}
	}
	return buf.Bytes()
}

type historyJSON struct {
	ID          string    `json:"id"`
	Sequence    int       `json:"sequence"`
	PlaylistID  string    `json:"playlistId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SongIDs     []string  `json:"songIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WriteSearchResults writes results to w in format.
func WriteSearchResults(w io.Writer, format Format, results []services.SearchResult, p *Palette) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = ToJSON(results)
	case FormatCSV:
		data, err = SearchResultsToCSV(results)
	default:
		data = SearchResultsToText(results, p)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteHistory writes records to w in format.
func WriteHistory(w io.Writer, format Format, records []*models.PlaylistRecord, p *Palette) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		out := make([]historyJSON, len(records))
		for i, r := range records {
			out[i] = historyJSON{
				ID:          r.ID(),
				Sequence:    r.Sequence(),
				PlaylistID:  r.PlaylistID(),
				Title:       r.Title(),
				Description: r.Description(),
				SongIDs:     r.SongIDs(),
				CreatedAt:   r.CreatedAt(),
			}
		}
		data, err = ToJSON(out)
	case FormatCSV:
		data, err = HistoryToCSV(records)
	default:
		data = HistoryToText(records, p)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
