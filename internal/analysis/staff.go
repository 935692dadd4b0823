package analysis

import (
	"regexp"

	"maku/internal/danmaku"
)

// DefaultStaffThreshold is the number of dialogue-form comments an author
// must exceed before being classified as staff.
const DefaultStaffThreshold = 5

// A dialogue-form comment opens with a run of non-Latin-1 characters (a
// CJK name) followed by a full-width colon. The shape alone decides staff
// status; the pattern is not a membership test against known names.
var dialogueLinePattern = regexp.MustCompile(`^[^\x00-\xff]+：`)

// IdentifyStaff classifies author identifiers as cast/staff by counting how
// many of their comments look like scripted dialogue lines. Authors with
// strictly more than threshold dialogue-form comments are staff.
//
// knownNames is accepted for interface symmetry with upstream callers but
// does not restrict matching.
func IdentifyStaff(records []danmaku.Record, knownNames []string, threshold int) map[string]struct{} {
	_ = knownNames

	counts := make(map[string]int)
	for _, record := range records {
		if dialogueLinePattern.MatchString(record.Content) {
			counts[record.AuthorID]++
		}
	}

	staff := make(map[string]struct{})
	for authorID, count := range counts {
		if count > threshold {
			staff[authorID] = struct{}{}
		}
	}
	return staff
}

// DialoguesByAuthors filters records to the given author set and returns
// them sorted by timestamp ascending, stream order preserved on ties.
func DialoguesByAuthors(records []danmaku.Record, authors map[string]struct{}) []danmaku.Record {
	dialogues := make([]danmaku.Record, 0, len(records))
	for _, record := range records {
		if _, ok := authors[record.AuthorID]; ok {
			dialogues = append(dialogues, record)
		}
	}
	danmaku.SortByTimestamp(dialogues)
	return dialogues
}
