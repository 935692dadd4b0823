package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadEpisodeCSV loads a cached episode list. The first row is treated as a
// header; the first column is the episode name, the second the episode id.
// A UTF-8 byte order mark, if present, is stripped before decoding.
func ReadEpisodeCSV(path string) ([]Episode, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open episode list: %w", err)
	}
	defer file.Close()
	return parseEpisodeCSV(file)
}

func parseEpisodeCSV(r io.Reader) ([]Episode, error) {
	bomAware := unicode.UTF8BOM.NewDecoder()
	reader := csv.NewReader(transform.NewReader(r, bomAware))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse episode list: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	episodes := make([]Episode, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		id := strings.TrimSpace(row[1])
		if name == "" || id == "" {
			continue
		}
		episodes = append(episodes, Episode{Name: name, ID: id})
	}
	return episodes, nil
}

// WriteEpisodeCSV persists an episode list in the cached CSV layout,
// prefixed with a UTF-8 byte order mark for spreadsheet compatibility.
func WriteEpisodeCSV(path string, episodes []Episode) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create episode list: %w", err)
	}
	defer file.Close()

	encoder := unicode.UTF8BOM.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(file, encoder))
	if err := writer.Write([]string{"name", "id"}); err != nil {
		return fmt.Errorf("write episode list header: %w", err)
	}
	for _, ep := range episodes {
		if err := writer.Write([]string{ep.Name, ep.ID}); err != nil {
			return fmt.Errorf("write episode row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush episode list: %w", err)
	}
	return nil
}
