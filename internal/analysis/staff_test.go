package analysis

import (
	"fmt"
	"testing"

	"maku/internal/danmaku"
)

func dialogueComments(author string, n int) []danmaku.Record {
	records := make([]danmaku.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, danmaku.Record{
			AuthorID: author,
			Content:  fmt.Sprintf("甲：第%d句台词", i),
		})
	}
	return records
}

func TestIdentifyStaffThresholdBoundary(t *testing.T) {
	for _, threshold := range []int{1, 3, 5, 10} {
		t.Run(fmt.Sprintf("threshold_%d", threshold), func(t *testing.T) {
			var records []danmaku.Record
			records = append(records, dialogueComments("at_threshold", threshold)...)
			records = append(records, dialogueComments("above_threshold", threshold+1)...)

			staff := IdentifyStaff(records, nil, threshold)

			if _, ok := staff["at_threshold"]; ok {
				t.Errorf("author with exactly %d dialogue comments classified as staff", threshold)
			}
			if _, ok := staff["above_threshold"]; !ok {
				t.Errorf("author with %d dialogue comments not classified as staff", threshold+1)
			}
		})
	}
}

func TestIdentifyStaffIgnoresNonDialogueComments(t *testing.T) {
	records := []danmaku.Record{
		{AuthorID: "viewer", Content: "太好笑了哈哈哈"},
		{AuthorID: "viewer", Content: "前排"},
		{AuthorID: "viewer", Content: "甲好帅"},
		{AuthorID: "viewer", Content: "ascii: not dialogue"},
		{AuthorID: "viewer", Content: "半角:也不算"},
		{AuthorID: "viewer", Content: "2333：数字开头不算"},
	}
	staff := IdentifyStaff(records, nil, 0)
	if len(staff) != 0 {
		t.Errorf("IdentifyStaff() = %v, want empty", staff)
	}
}

func TestIdentifyStaffPatternIsStructural(t *testing.T) {
	// The name prefix does not have to appear in knownNames; the shape
	// alone decides.
	records := dialogueComments("poster", 6)
	staff := IdentifyStaff(records, []string{"完全无关的名字"}, 5)
	if _, ok := staff["poster"]; !ok {
		t.Error("dialogue-form author not identified despite unrelated known names")
	}
}

func TestIdentifyStaffEmptyInput(t *testing.T) {
	if staff := IdentifyStaff(nil, []string{"甲"}, 5); len(staff) != 0 {
		t.Errorf("IdentifyStaff(nil) = %v, want empty", staff)
	}
}

func TestDialoguesByAuthorsFiltersAndSorts(t *testing.T) {
	records := []danmaku.Record{
		{Timestamp: 30, AuthorID: "staff", Content: "乙：后面的台词"},
		{Timestamp: 5, AuthorID: "viewer", Content: "弹幕"},
		{Timestamp: 10, AuthorID: "staff", Content: "甲：前面的台词"},
	}
	got := DialoguesByAuthors(records, map[string]struct{}{"staff": {}})
	if len(got) != 2 {
		t.Fatalf("DialoguesByAuthors() = %d records, want 2", len(got))
	}
	if got[0].Timestamp != 10 || got[1].Timestamp != 30 {
		t.Errorf("records not sorted by timestamp: %v", got)
	}
}
