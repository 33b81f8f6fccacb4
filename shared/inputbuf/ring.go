// Package inputbuf holds the per-fighter input history and the command
// matcher that recognises input sequences in it.
package inputbuf

import (
	"iter"

	"github.com/automoto/fightcore/shared/netconfig"
)

// DefaultCapacity is the number of frames a fighter remembers.
const DefaultCapacity = 10

// Ring is a fixed-capacity circular store of one input mask per simulated
// frame. Insertion order is the only notion of freshness it has.
type Ring struct {
	slots []netconfig.InputMask
	head  int // next slot to write
	count int
}

// NewRing creates a ring holding capacity frames. Capacities below one are
// raised to one.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{slots: make([]netconfig.InputMask, capacity)}
}

// Push records a frame, overwriting the oldest one when full.
func (r *Ring) Push(mask netconfig.InputMask) {
	r.slots[r.head] = mask
	r.head = (r.head + 1) % len(r.slots)
	if r.count < len(r.slots) {
		r.count++
	}
}

// Last returns the most recently pushed mask.
func (r *Ring) Last() (netconfig.InputMask, bool) {
	return r.At(0)
}

// At returns the mask pushed age frames ago (0 = newest).
func (r *Ring) At(age int) (netconfig.InputMask, bool) {
	if age < 0 || age >= r.count {
		return 0, false
	}
	n := len(r.slots)
	return r.slots[((r.head-1-age)%n+n)%n], true
}

// Iterate yields the stored frames from newest to oldest. It visits each
// stored slot exactly once and then stops.
func (r *Ring) Iterate() iter.Seq[netconfig.InputMask] {
	return func(yield func(netconfig.InputMask) bool) {
		for age := 0; age < r.count; age++ {
			m, _ := r.At(age)
			if !yield(m) {
				return
			}
		}
	}
}

func (r *Ring) Len() int { return r.count }

func (r *Ring) Cap() int { return len(r.slots) }

// Reset forgets every stored frame.
func (r *Ring) Reset() {
	clear(r.slots)
	r.head = 0
	r.count = 0
}

// Contents returns the stored frames from oldest to newest.
func (r *Ring) Contents() []netconfig.InputMask {
	out := make([]netconfig.InputMask, r.count)
	for age := 0; age < r.count; age++ {
		out[r.count-1-age], _ = r.At(age)
	}
	return out
}

// Restore replaces the ring contents with frames (oldest to newest), as
// produced by Contents. Frames beyond capacity drop from the old end.
func (r *Ring) Restore(frames []netconfig.InputMask) {
	r.Reset()
	for _, m := range frames {
		r.Push(m)
	}
}
