package analysis

import "maku/internal/danmaku"

// DetailedMentions keeps the evidence comments backing each counted
// occurrence, per character per nickname, in discovery order.
type DetailedMentions map[string]map[string][]danmaku.Record

// Append records one evidence comment for a (character, nickname) pair.
func (d DetailedMentions) Append(character, nickname string, record danmaku.Record) {
	nicknames, ok := d[character]
	if !ok {
		nicknames = make(map[string][]danmaku.Record)
		d[character] = nicknames
	}
	nicknames[nickname] = append(nicknames[nickname], record)
}

// EpisodeResult captures one episode's contribution to a run.
type EpisodeResult struct {
	Name string
	ID   string
	// MainCharacterLines is the number of lines attributed to the main
	// character before multi-speaker extraction.
	MainCharacterLines int
	Mentions           Tally
	Detailed           DetailedMentions
	// Skipped marks episodes whose comment stream could not be retrieved
	// or yielded no identifiable staff. Skipped episodes carry zero
	// counts.
	Skipped    bool
	SkipReason string
}

// Result is the terminal state of an aggregation run.
type Result struct {
	// TotalMentions accumulates every episode tally; it always equals the
	// per-episode sum.
	TotalMentions Tally
	// Episodes holds one entry per input episode, in input order,
	// including skipped ones.
	Episodes []EpisodeResult
}

// NewResult returns an empty aggregation result.
func NewResult() *Result {
	return &Result{TotalMentions: make(Tally)}
}

// ProcessedEpisodes counts episodes that were not skipped.
func (r *Result) ProcessedEpisodes() int {
	n := 0
	for _, ep := range r.Episodes {
		if !ep.Skipped {
			n++
		}
	}
	return n
}

// SkippedEpisodes counts episodes that contributed nothing due to
// retrieval or classification failure.
func (r *Result) SkippedEpisodes() int {
	return len(r.Episodes) - r.ProcessedEpisodes()
}
