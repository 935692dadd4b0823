package analysis

import (
	"sort"
	"strings"

	"maku/internal/registry"
)

// Tally counts mentions per character per nickname. Access through Add so
// nested maps materialize on first use.
type Tally map[string]map[string]int

// Add increments the count for a (character, nickname) pair.
func (t Tally) Add(character, nickname string, n int) {
	if n == 0 {
		return
	}
	nicknames, ok := t[character]
	if !ok {
		nicknames = make(map[string]int)
		t[character] = nicknames
	}
	nicknames[nickname] += n
}

// Merge folds other into t.
func (t Tally) Merge(other Tally) {
	for character, nicknames := range other {
		for nickname, count := range nicknames {
			t.Add(character, nickname, count)
		}
	}
}

// Count returns the tallied value for a (character, nickname) pair.
func (t Tally) Count(character, nickname string) int {
	return t[character][nickname]
}

// TotalFor sums every nickname count recorded for a character.
func (t Tally) TotalFor(character string) int {
	total := 0
	for _, count := range t[character] {
		total += count
	}
	return total
}

// Total sums every count in the tally.
func (t Tally) Total() int {
	total := 0
	for character := range t {
		total += t.TotalFor(character)
	}
	return total
}

type mentionHit struct {
	character string
	nickname  string
	start     int
	end       int
}

// CountMentions scans text for every nickname in the registry and tallies
// non-overlapping hits. All candidate occurrences are gathered first, in
// registry declaration order; the occurrence scan advances one byte past
// each match start so repeated nicknames inside a longer run are all seen.
// Candidates are then stably sorted by start offset and selected greedily:
// a hit survives only if it starts at or after the end of the last kept hit,
// so an earlier-starting match shadows later overlapping ones regardless of
// length.
//
// exactMatch is accepted for parity with the configuration surface; both
// modes perform the same literal substring scan.
func CountMentions(text string, characters *registry.CharacterSet, exactMatch bool) Tally {
	_ = exactMatch

	var hits []mentionHit
	for _, character := range characters.Names() {
		for _, nickname := range characters.Nicknames(character) {
			if nickname == "" {
				continue
			}
			offset := 0
			for {
				pos := strings.Index(text[offset:], nickname)
				if pos < 0 {
					break
				}
				start := offset + pos
				hits = append(hits, mentionHit{
					character: character,
					nickname:  nickname,
					start:     start,
					end:       start + len(nickname),
				})
				offset = start + 1
			}
		}
	}

	sortHitsByStart(hits)

	tally := make(Tally)
	lastEnd := -1
	for _, hit := range hits {
		if hit.start >= lastEnd {
			tally.Add(hit.character, hit.nickname, 1)
			lastEnd = hit.end
		}
	}
	return tally
}

// sortHitsByStart orders hits ascending by start offset. The sort is stable
// so ties keep registry declaration order, which is the documented
// tie-break.
func sortHitsByStart(hits []mentionHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].start < hits[j].start
	})
}
