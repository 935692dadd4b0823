package analysis

import (
	"strings"

	"maku/internal/danmaku"
)

// LinesFor returns the candidate lines attributed to the named character.
//
// Two-phase policy: first collect the colors of every candidate whose text
// starts with "<character>：". When at least one such exemplar exists, every
// candidate sharing one of those colors is returned, which recovers lines
// where the character spoke without repeating the name prefix. Only when no
// exemplar exists does the result degrade to the name-prefixed matches
// alone.
func LinesFor(candidates []danmaku.Record, character string) []danmaku.Record {
	prefix := character + "："

	colors := make(map[string]struct{})
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate.Content, prefix) {
			colors[candidate.Color] = struct{}{}
		}
	}

	if len(colors) > 0 {
		lines := make([]danmaku.Record, 0, len(candidates))
		for _, candidate := range candidates {
			if _, ok := colors[candidate.Color]; ok {
				lines = append(lines, candidate)
			}
		}
		return lines
	}

	var lines []danmaku.Record
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate.Content, prefix) {
			lines = append(lines, candidate)
		}
	}
	return lines
}
