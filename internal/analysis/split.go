package analysis

import "strings"

const fullWidthColon = "："

// sentence-terminal punctuation used to segment unbalanced speech parts
var sentenceTerminals = []rune{'。', '！', '？', '；'}

// ExtractSpeech pulls the named character's utterance out of a line that may
// encode simultaneous speech by several characters ("甲/乙：你好/再见").
// The second return value reports whether the line belongs to the character
// at all; false means the caller must skip the comment entirely.
//
// Lines opening with "<character>：" are already unambiguous and returned
// unchanged. The multi-speaker branch requires both a slash and a full-width
// colon; the role list before the colon must contain the character, and the
// speech after it is split the same way when the piece count matches the
// role count. Unbalanced lines fall back to the first sentence segment
// containing the character's name, then to the whole speech part. Lines
// carrying the marker elsewhere, or without the multi-speaker shape, pass
// through unchanged. There is no branch that can fail the episode.
func ExtractSpeech(content, character string) (string, bool) {
	marker := character + fullWidthColon
	if strings.HasPrefix(content, marker) {
		return content, true
	}

	if strings.Contains(content, "/") && strings.Contains(content, fullWidthColon) {
		parts := strings.SplitN(content, fullWidthColon, 2)
		rolePart, speechPart := parts[0], parts[1]

		roles := strings.Split(rolePart, "/")
		idx := -1
		for i, role := range roles {
			if strings.TrimSpace(role) == character {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Not a listed speaker, but a line quoting the character
			// ("乙/丙：问甲：你来吗") is still safely attributable.
			if strings.Contains(content, marker) {
				return content, true
			}
			return "", false
		}

		if strings.Contains(speechPart, "/") {
			pieces := strings.Split(speechPart, "/")
			if len(pieces) == len(roles) {
				return strings.TrimSpace(pieces[idx]), true
			}
		}

		for _, segment := range splitSentences(speechPart) {
			if strings.Contains(segment, character) {
				return strings.TrimSpace(segment), true
			}
		}

		return strings.TrimSpace(speechPart), true
	}

	return content, true
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		for _, terminal := range sentenceTerminals {
			if r == terminal {
				return true
			}
		}
		return false
	})
}
