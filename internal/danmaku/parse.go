package danmaku

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// The comment stream is an XML document whose root element holds one <d>
// child per comment. Each <d> carries a comma-separated attribute string:
// field 0 is the timestamp in seconds, field 3 the color code, and field 6
// the sender identifier. Entries with fewer than seven fields or a
// non-numeric timestamp are dropped.

const minAttributeFields = 7

type streamDocument struct {
	Comments []streamComment `xml:"d"`
}

type streamComment struct {
	Attributes string `xml:"p,attr"`
	Text       string `xml:",chardata"`
}

// ParseStream decodes a raw comment stream into records. Individual
// malformed entries are skipped; a malformed document returns the records
// decoded so far together with the error so callers can log and continue
// with whatever survived.
func ParseStream(raw string) ([]Record, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var doc streamDocument
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode comment stream: %w", err)
	}

	records := make([]Record, 0, len(doc.Comments))
	for _, comment := range doc.Comments {
		record, ok := decodeComment(comment)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeComment(comment streamComment) (Record, bool) {
	fields := strings.Split(comment.Attributes, ",")
	if len(fields) < minAttributeFields {
		return Record{}, false
	}
	timestamp, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Record{}, false
	}
	return Record{
		Timestamp: timestamp,
		AuthorID:  fields[6],
		Color:     fields[3],
		Content:   strings.TrimSpace(comment.Text),
	}, true
}
