package analysis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewRandomPacerDegradesToNop(t *testing.T) {
	if _, ok := NewRandomPacer(0, 0).(NopPacer); !ok {
		t.Error("zero bounds should degrade to NopPacer")
	}
	if _, ok := NewRandomPacer(-5*time.Second, -time.Second).(NopPacer); !ok {
		t.Error("negative bounds should degrade to NopPacer")
	}
}

func TestRandomPacerSwappedBounds(t *testing.T) {
	pacer := NewRandomPacer(10*time.Millisecond, time.Millisecond)
	start := time.Now()
	if err := pacer.Pause(context.Background()); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Pause() took %v, bounds not repaired", elapsed)
	}
}

func TestRandomPacerCancellation(t *testing.T) {
	pacer := NewRandomPacer(time.Minute, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- pacer.Pause(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Pause() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Pause() did not return after cancellation")
	}
}

func TestNopPacerReturnsImmediately(t *testing.T) {
	if err := (NopPacer{}).Pause(context.Background()); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
}
