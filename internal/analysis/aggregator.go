package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"maku/internal/danmaku"
	"maku/internal/logging"
	"maku/internal/registry"
)

// Fetcher supplies raw comment streams. An error return marks the episode
// as unavailable; it never aborts the run.
type Fetcher interface {
	CommentStream(ctx context.Context, episodeID string) (string, error)
}

// Outcome classifies how an episode finished.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeSkipped   Outcome = "skipped"
)

// ProgressEvent notifies observers about one episode's outcome.
type ProgressEvent struct {
	Index   int
	Total   int
	Episode registry.Episode
	Outcome Outcome
	// Reason is set for skipped episodes.
	Reason string
	// MainCharacterLines is the attributed line count for processed
	// episodes.
	MainCharacterLines int
}

// ProgressFunc receives progress events. Calls happen on the goroutine
// running the aggregation; callers needing thread-safe hand-off wrap it
// themselves.
type ProgressFunc func(ProgressEvent)

// Options configures an aggregation run.
type Options struct {
	// MainCharacter is the speaker whose lines are mined for mentions.
	MainCharacter string
	// Characters maps mention targets to their nickname sets.
	Characters *registry.CharacterSet
	// StaffThreshold overrides DefaultStaffThreshold when positive.
	StaffThreshold int
	// ExactMatch selects the literal matching mode. Both modes currently
	// behave identically.
	ExactMatch bool
	// Pacer inserts the inter-episode politeness delay. Nil means no
	// pacing.
	Pacer Pacer
	// Progress receives per-episode notifications. Optional.
	Progress ProgressFunc
	// Logger receives diagnostic output. Nil means silent.
	Logger *slog.Logger
}

// Aggregator drives the dialogue reconstruction pipeline across episodes.
type Aggregator struct {
	fetcher Fetcher
	opts    Options
}

// NewAggregator validates options and builds an aggregator.
func NewAggregator(fetcher Fetcher, opts Options) (*Aggregator, error) {
	if fetcher == nil {
		return nil, errors.New("aggregator requires a fetcher")
	}
	opts.MainCharacter = strings.TrimSpace(opts.MainCharacter)
	if opts.MainCharacter == "" {
		return nil, errors.New("aggregator requires a main character")
	}
	if opts.Characters == nil {
		opts.Characters = registry.NewCharacterSet()
	}
	if opts.StaffThreshold <= 0 {
		opts.StaffThreshold = DefaultStaffThreshold
	}
	if opts.Pacer == nil {
		opts.Pacer = NopPacer{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Aggregator{fetcher: fetcher, opts: opts}, nil
}

// Run processes episodes strictly in input order. Each episode is fully
// resolved before the next begins; retrieval and classification failures
// skip the episode and the run continues. The only terminal error is
// context cancellation.
func (a *Aggregator) Run(ctx context.Context, episodes []registry.Episode) (*Result, error) {
	result := NewResult()
	knownNames := append(a.opts.Characters.Names(), a.opts.MainCharacter)

	for i, episode := range episodes {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		epResult := a.processEpisode(ctx, episode, knownNames)
		result.Episodes = append(result.Episodes, epResult)
		result.TotalMentions.Merge(epResult.Mentions)

		a.emitProgress(i, len(episodes), episode, epResult)

		if !epResult.Skipped && i < len(episodes)-1 {
			if err := a.opts.Pacer.Pause(ctx); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func (a *Aggregator) processEpisode(ctx context.Context, episode registry.Episode, knownNames []string) EpisodeResult {
	logger := a.opts.Logger
	epResult := EpisodeResult{
		Name:     episode.Name,
		ID:       episode.ID,
		Mentions: make(Tally),
		Detailed: make(DetailedMentions),
	}

	raw, err := a.fetcher.CommentStream(ctx, episode.ID)
	if err != nil {
		logger.Warn("comment stream unavailable, skipping episode",
			logging.String("episode", episode.Name),
			logging.String("episode_id", episode.ID),
			logging.Error(err))
		epResult.Skipped = true
		epResult.SkipReason = "comment stream unavailable"
		return epResult
	}

	records, parseErr := danmaku.ParseStream(raw)
	if parseErr != nil {
		logger.Warn("comment stream parse failed",
			logging.String("episode", episode.Name),
			logging.Error(parseErr))
	}

	staff := IdentifyStaff(records, knownNames, a.opts.StaffThreshold)
	if len(staff) == 0 {
		logger.Info("no staff identified, skipping episode",
			logging.String("episode", episode.Name),
			logging.Int("comments", len(records)))
		epResult.Skipped = true
		epResult.SkipReason = "no staff identified"
		return epResult
	}

	dialogues := DialoguesByAuthors(records, staff)
	mainLines := LinesFor(dialogues, a.opts.MainCharacter)
	epResult.MainCharacterLines = len(mainLines)

	for _, line := range mainLines {
		speech, ok := ExtractSpeech(line.Content, a.opts.MainCharacter)
		if !ok {
			continue
		}
		lineTally := CountMentions(speech, a.opts.Characters, a.opts.ExactMatch)
		for character, nicknames := range lineTally {
			for nickname, count := range nicknames {
				epResult.Mentions.Add(character, nickname, count)
				for n := 0; n < count; n++ {
					epResult.Detailed.Append(character, nickname, line)
				}
			}
		}
	}

	logger.Debug("episode processed",
		logging.String("episode", episode.Name),
		logging.Int("staff_authors", len(staff)),
		logging.Int("main_character_lines", len(mainLines)))
	return epResult
}

func (a *Aggregator) emitProgress(index, total int, episode registry.Episode, epResult EpisodeResult) {
	if a.opts.Progress == nil {
		return
	}
	event := ProgressEvent{
		Index:              index,
		Total:              total,
		Episode:            episode,
		Outcome:            OutcomeProcessed,
		MainCharacterLines: epResult.MainCharacterLines,
	}
	if epResult.Skipped {
		event.Outcome = OutcomeSkipped
		event.Reason = epResult.SkipReason
	}
	a.opts.Progress(event)
}
