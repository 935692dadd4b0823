package danmaku

import (
	"fmt"
	"sort"
)

// Record is a single timed comment attached to an episode timeline.
type Record struct {
	// Timestamp is the offset into the episode audio, in seconds.
	Timestamp float64
	// AuthorID is the platform-assigned sender identifier. It is only a
	// clustering key within one episode, not a stable character mapping.
	AuthorID string
	// Color is the raw color code from the source format. One rendered
	// color per identity is a heuristic, not a guarantee.
	Color string
	// Content is the raw comment text, a single line.
	Content string
}

// FormattedTime renders the record timestamp as zero-padded MM:SS.
func (r Record) FormattedTime() string {
	return FormatTimestamp(r.Timestamp)
}

// FormatTimestamp renders a non-negative offset in seconds as MM:SS with
// two-digit zero-padded fields. Negative input renders as 00:00.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		return "00:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// SortByTimestamp orders records by timestamp ascending. The sort is stable
// so records sharing a timestamp keep their stream order.
func SortByTimestamp(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})
}
