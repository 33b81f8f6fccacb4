package sim

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
)

// InputSource supplies the inputs of a frame. ok is false once the source has
// nothing more to play.
type InputSource interface {
	Inputs(frame uint32) (inputs [2]netconfig.InputMask, ok bool)
}

// StepHook observes every simulated frame together with its inputs and hits.
type StepHook func(frame uint32, inputs [2]netconfig.InputMask, hits []messages.HitEvent)

// Loop drives a match at a fixed rate. Wall-clock time only decides when a
// step runs, never what it computes.
type Loop struct {
	match    *Match
	source   InputSource
	tickRate int
	hooks    []StepHook

	stopOnce sync.Once
	stopChan chan struct{}
}

func NewLoop(match *Match, source InputSource, tickRate int) *Loop {
	if tickRate < 1 {
		tickRate = 1
	}
	return &Loop{
		match:    match,
		source:   source,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// OnStep registers a hook called after each step.
func (l *Loop) OnStep(h StepHook) {
	l.hooks = append(l.hooks, h)
}

// Run steps the match once per tick until ctx is done, Stop is called or the
// input source is exhausted.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	log.Printf("Match loop started at %d ticks/second", l.tickRate)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Match loop stopped at frame %d", l.match.Frame())
			return ctx.Err()
		case <-l.stopChan:
			log.Printf("Match loop stopped at frame %d", l.match.Frame())
			return nil
		case <-ticker.C:
			if !l.tick() {
				log.Printf("Input exhausted after frame %d", l.match.Frame())
				return nil
			}
		}
	}
}

// RunFrames steps the match up to n times without waiting, returning the
// hits of every simulated step.
func (l *Loop) RunFrames(n int) []messages.HitEvent {
	var all []messages.HitEvent
	for i := 0; i < n; i++ {
		hits, ok := l.step()
		if !ok {
			break
		}
		all = append(all, hits...)
	}
	return all
}

func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

func (l *Loop) tick() bool {
	_, ok := l.step()
	return ok
}

func (l *Loop) step() ([]messages.HitEvent, bool) {
	frame := l.match.Frame() + 1
	inputs, ok := l.source.Inputs(frame)
	if !ok {
		return nil, false
	}
	hits := l.match.Step(inputs)
	for _, h := range l.hooks {
		h(frame, inputs, hits)
	}
	return hits, true
}
