// Package importer loads a song library from CSV files so performers can
// seed StageKit from a spreadsheet export.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/stagekit/stagekit/internal/domain"
)

// Expected header: title,artist,album,genre,bpm,key,duration_seconds,difficulty
// Only title and artist are required; the rest degrade to unknown.
var expectedColumns = []string{"title", "artist", "album", "genre", "bpm", "key", "duration_seconds", "difficulty"}

type CSVImporter struct {
}

func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

func (c *CSVImporter) Name() string {
	return "csv"
}

// Import reads a song library CSV. Rows that fail validation are skipped
// with a warning rather than aborting the whole import.
func (c *CSVImporter) Import(ctx context.Context, filePath string) ([]*domain.Song, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	songs, err := c.parseSongs(reader)
	if err != nil {
		return nil, err
	}

	if len(songs) == 0 {
		return nil, fmt.Errorf("no songs found in CSV file")
	}

	return songs, nil
}

func (c *CSVImporter) parseSongs(reader *csv.Reader) ([]*domain.Song, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	slog.Debug("Header row", "header", header)

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("invalid CSV header: missing title column (expected columns: %s)",
			strings.Join(expectedColumns, ","))
	}
	if _, ok := columns["artist"]; !ok {
		return nil, fmt.Errorf("invalid CSV header: missing artist column")
	}

	var songs []*domain.Song
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		song := c.parseSong(columns, record)
		if err := song.Validate(); err != nil {
			slog.Warn("Skipping invalid CSV row", "line", line, "error", err)
			continue
		}
		songs = append(songs, song)
	}

	return songs, nil
}

func (c *CSVImporter) parseSong(columns map[string]int, record []string) *domain.Song {
	return &domain.Song{
		Title:            c.field(columns, record, "title"),
		Artist:           c.field(columns, record, "artist"),
		Album:            c.field(columns, record, "album"),
		Genre:            c.field(columns, record, "genre"),
		Bpm:              c.intField(columns, record, "bpm"),
		MusicalKey:       c.field(columns, record, "key"),
		DurationSeconds:  c.intField(columns, record, "duration_seconds"),
		DifficultyRating: c.intField(columns, record, "difficulty"),
	}
}

func (c *CSVImporter) field(columns map[string]int, record []string, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c *CSVImporter) intField(columns map[string]int, record []string, name string) int {
	raw := c.field(columns, record, name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Debug("Ignoring non-numeric CSV value", "column", name, "value", raw)
		return 0
	}
	return v
}
