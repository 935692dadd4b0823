package analysis

import (
	"context"
	"math/rand"
	"time"
)

// Pacer inserts a politeness delay between episode fetches. It is a
// rate-limiting measure toward the retrieval target, not a correctness
// requirement.
type Pacer interface {
	Pause(ctx context.Context) error
}

// NopPacer skips pacing entirely. Tests use it to run deterministically.
type NopPacer struct{}

// Pause implements Pacer.
func (NopPacer) Pause(context.Context) error { return nil }

type randomPacer struct {
	min time.Duration
	max time.Duration
}

// NewRandomPacer paces by sleeping a uniformly random interval in
// [min, max]. Swapped bounds are corrected; non-positive bounds degrade to
// no pacing.
func NewRandomPacer(min, max time.Duration) Pacer {
	if min < 0 {
		min = 0
	}
	if max < min {
		min, max = max, min
	}
	if max <= 0 {
		return NopPacer{}
	}
	return &randomPacer{min: min, max: max}
}

// Pause sleeps for the drawn interval or until the context is cancelled.
func (p *randomPacer) Pause(ctx context.Context) error {
	delay := p.min
	if span := p.max - p.min; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span) + 1))
	}
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
