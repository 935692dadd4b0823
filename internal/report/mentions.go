package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"maku/internal/analysis"
	"maku/internal/registry"
)

// MentionReport renders an aggregated analysis result. Characters supplies
// the iteration order so repeated runs over the same input produce identical
// output. When Target is non-empty only that character's rows appear.
type MentionReport struct {
	Result          *analysis.Result
	MainCharacter   string
	Target          string
	Characters      *registry.CharacterSet
	IncludeEvidence bool
}

func (r *MentionReport) wantCharacter(name string) bool {
	return r.Target == "" || r.Target == name
}

// WriteText renders the report grouped by episode, with a series total
// section at the end. Skipped episodes are listed with their reason so a
// partial run is visible in the output.
func (r *MentionReport) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Mention report for %s\n%s\n\n", r.MainCharacter, separator); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, episode := range r.Result.Episodes {
		if episode.Skipped {
			if _, err := fmt.Fprintf(w, "%s: skipped (%s)\n\n", episode.Name, episode.SkipReason); err != nil {
				return fmt.Errorf("write skipped episode: %w", err)
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%d lines by %s)\n", episode.Name, episode.MainCharacterLines, r.MainCharacter); err != nil {
			return fmt.Errorf("write episode header: %w", err)
		}
		if err := r.writeEpisodeText(w, episode); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write episode footer: %w", err)
		}
	}
	return r.writeTotalsText(w)
}

func (r *MentionReport) writeEpisodeText(w io.Writer, episode analysis.EpisodeResult) error {
	for _, character := range r.Characters.Names() {
		if !r.wantCharacter(character) {
			continue
		}
		counts := episode.Mentions[character]
		total := 0
		for _, count := range counts {
			total += count
		}
		if total == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %d\n", character, total); err != nil {
			return fmt.Errorf("write character count: %w", err)
		}
		for _, nickname := range r.Characters.Nicknames(character) {
			count := counts[nickname]
			if count == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "    %s: %d\n", nickname, count); err != nil {
				return fmt.Errorf("write nickname count: %w", err)
			}
			if r.IncludeEvidence {
				if err := r.writeEvidence(w, episode, character, nickname); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *MentionReport) writeEvidence(w io.Writer, episode analysis.EpisodeResult, character, nickname string) error {
	for _, record := range episode.Detailed[character][nickname] {
		if _, err := fmt.Fprintf(w, "      > [%s] %s\n", record.FormattedTime(), record.Content); err != nil {
			return fmt.Errorf("write evidence line: %w", err)
		}
	}
	return nil
}

func (r *MentionReport) writeTotalsText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Series totals (%d episodes processed, %d skipped)\n%s\n", r.Result.ProcessedEpisodes(), r.Result.SkippedEpisodes(), separator); err != nil {
		return fmt.Errorf("write totals header: %w", err)
	}
	for _, character := range r.Characters.Names() {
		if !r.wantCharacter(character) {
			continue
		}
		total := r.Result.TotalMentions.TotalFor(character)
		if total == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %d\n", character, total); err != nil {
			return fmt.Errorf("write total count: %w", err)
		}
		for _, nickname := range r.Characters.Nicknames(character) {
			count := r.Result.TotalMentions.Count(character, nickname)
			if count == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "    %s: %d\n", nickname, count); err != nil {
				return fmt.Errorf("write total nickname: %w", err)
			}
		}
	}
	return nil
}

var csvHeader = []string{"episode", "character", "nickname", "count", "main_character_line_count"}

// WriteCSV renders per-episode nickname counts as UTF-8 CSV with a BOM so
// spreadsheet tools detect the encoding. Rows with a zero count are omitted.
func (r *MentionReport) WriteCSV(w io.Writer) error {
	encoder := unicode.UTF8BOM.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(w, encoder))
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, episode := range r.Result.Episodes {
		if episode.Skipped {
			continue
		}
		lines := strconv.Itoa(episode.MainCharacterLines)
		for _, character := range r.Characters.Names() {
			if !r.wantCharacter(character) {
				continue
			}
			counts := episode.Mentions[character]
			for _, nickname := range r.Characters.Nicknames(character) {
				count := counts[nickname]
				if count == 0 {
					continue
				}
				row := []string{episode.Name, character, nickname, strconv.Itoa(count), lines}
				if err := writer.Write(row); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
