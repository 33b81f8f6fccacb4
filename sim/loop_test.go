package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
)

func TestRunFramesStopsWhenInputRunsOut(t *testing.T) {
	m := newTestMatch(t)
	inputs := [][2]netconfig.InputMask{{lp, 0}, {}, {}, {}, {}}
	loop := NewLoop(m, SliceSource(inputs), 60)

	var frames []uint32
	loop.OnStep(func(frame uint32, _ [2]netconfig.InputMask, _ []messages.HitEvent) {
		frames = append(frames, frame)
	})

	hits := loop.RunFrames(100)
	if m.Frame() != 5 || len(frames) != 5 || frames[4] != 5 {
		t.Fatalf("expected 5 frames, match at %d, hooks saw %v", m.Frame(), frames)
	}
	if len(hits) != 1 || hits[0].Frame != 4 {
		t.Fatalf("expected the jab to land on frame 4, got %+v", hits)
	}
}

func TestRunReturnsWhenSourceIsExhausted(t *testing.T) {
	m := newTestMatch(t)
	loop := NewLoop(m, SliceSource(make([][2]netconfig.InputMask, 3)), 1000)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.Frame() != 3 {
		t.Fatalf("expected 3 frames, got %d", m.Frame())
	}
}

func TestRunStopsOnCancelAndStop(t *testing.T) {
	m := newTestMatch(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewLoop(m, IdleSource{}, 1000).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	loop := NewLoop(m, IdleSource{}, 1000)
	loop.Stop()
	loop.Stop()
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("expected clean stop, got %v", err)
	}
}
