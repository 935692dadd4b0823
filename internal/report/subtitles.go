package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"maku/internal/danmaku"
	"maku/internal/registry"
)

const separator = "=================================================="

// SubtitleFileName derives a safe file name for an episode dump. Slashes in
// episode names would otherwise create directories.
func SubtitleFileName(episodeName string) string {
	return strings.ReplaceAll(strings.TrimSpace(episodeName), "/", "_") + ".txt"
}

// WriteSubtitles renders one episode's retained comments: a header block
// with the episode name and id, then one line per comment as
// "[MM:SS] content" in the order given.
func WriteSubtitles(w io.Writer, episode registry.Episode, records []danmaku.Record) error {
	if _, err := fmt.Fprintf(w, "Episode: %s\nID: %s\n%s\n\n", episode.Name, episode.ID, separator); err != nil {
		return fmt.Errorf("write subtitle header: %w", err)
	}
	for _, record := range records {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", record.FormattedTime(), record.Content); err != nil {
			return fmt.Errorf("write subtitle line: %w", err)
		}
	}
	return nil
}

// WriteSubtitleFile writes an episode dump into dir and returns the path.
func WriteSubtitleFile(dir string, episode registry.Episode, records []danmaku.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create subtitle directory: %w", err)
	}
	path := filepath.Join(dir, SubtitleFileName(episode.Name))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create subtitle file: %w", err)
	}
	defer file.Close()

	if err := WriteSubtitles(file, episode, records); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCharacterLines renders one character's attributed lines: the
// character name and line count, then the timed lines themselves.
func WriteCharacterLines(w io.Writer, character string, records []danmaku.Record) error {
	if _, err := fmt.Fprintf(w, "%s (%d lines)\n%s\n\n", character, len(records), separator); err != nil {
		return fmt.Errorf("write character header: %w", err)
	}
	for _, record := range records {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", record.FormattedTime(), record.Content); err != nil {
			return fmt.Errorf("write character line: %w", err)
		}
	}
	return nil
}
