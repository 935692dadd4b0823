package testsupport

import (
	"fmt"
	"strings"
	"testing"
)

// Comment is one entry in a generated comment stream.
type Comment struct {
	Timestamp float64
	Color     string
	AuthorID  string
	Content   string
}

// BuildStream renders comments as the XML document the comment endpoint
// serves, with the full attribute layout parsers expect.
func BuildStream(t testing.TB, comments ...Comment) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><i>`)
	for _, c := range comments {
		color := c.Color
		if color == "" {
			color = "16777215"
		}
		author := c.AuthorID
		if author == "" {
			author = "0"
		}
		fmt.Fprintf(&sb, `<d p="%.2f,1,25,%s,0,0,%s,0">%s</d>`, c.Timestamp, color, author, c.Content)
	}
	sb.WriteString("</i>")
	return sb.String()
}
