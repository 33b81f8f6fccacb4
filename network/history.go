package network

import (
	"fmt"

	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/sim"
)

const historySize = 64

// FrameRecord is the state a match was in right before Frame was simulated,
// together with the inputs Frame was simulated with.
type FrameRecord struct {
	Frame    uint32
	Snapshot []byte
	Inputs   [2]netconfig.InputMask
}

// History is a ring buffer of the most recent frames of a match, enough to
// roll back and resimulate when a late input turns out to differ from the
// one that was predicted.
type History struct {
	records [historySize]FrameRecord
	latest  uint32
}

// Store saves a record, overwriting whatever occupied its slot.
func (h *History) Store(rec FrameRecord) {
	idx := rec.Frame % historySize
	h.records[idx] = rec
	if rec.Frame > h.latest {
		h.latest = rec.Frame
	}
}

// Get retrieves a record by frame. Returns false if not found or if the slot
// has been overwritten.
func (h *History) Get(frame uint32) (FrameRecord, bool) {
	if frame == 0 {
		return FrameRecord{}, false
	}
	idx := frame % historySize
	record := h.records[idx]
	if record.Frame != frame {
		return FrameRecord{}, false
	}
	return record, true
}

// Latest returns the newest stored frame, 0 when empty.
func (h *History) Latest() uint32 {
	return h.latest
}

// Oldest returns the oldest frame that can still be rewound to.
func (h *History) Oldest() uint32 {
	if h.latest < historySize {
		if h.latest == 0 {
			return 0
		}
		return 1
	}
	return h.latest - historySize + 1
}

// Advance snapshots m, steps it with inputs and records the frame.
func (h *History) Advance(m *sim.Match, inputs [2]netconfig.InputMask) ([]messages.HitEvent, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot before frame %d: %w", m.Frame()+1, err)
	}
	frame := m.Frame() + 1
	hits := m.Step(inputs)
	h.Store(FrameRecord{Frame: frame, Snapshot: snap, Inputs: inputs})
	return hits, nil
}

// Rewind restores m to the state before frame and simulates again up to the
// latest recorded frame. Inputs listed in corrections replace the recorded
// ones, and the history is rewritten with the new outcome. The hits of the
// resimulated frames are returned.
func (h *History) Rewind(m *sim.Match, frame uint32, corrections map[uint32][2]netconfig.InputMask) ([]messages.HitEvent, error) {
	start, ok := h.Get(frame)
	if !ok {
		return nil, fmt.Errorf("frame %d is not in history (oldest %d, latest %d)", frame, h.Oldest(), h.latest)
	}

	latest := h.latest
	records := make([]FrameRecord, 0, latest-frame+1)
	for f := frame; f <= latest; f++ {
		rec, ok := h.Get(f)
		if !ok {
			return nil, fmt.Errorf("frame %d is missing from history", f)
		}
		if c, ok := corrections[f]; ok {
			rec.Inputs = c
		}
		records = append(records, rec)
	}

	if err := m.Restore(start.Snapshot); err != nil {
		return nil, fmt.Errorf("rewind to frame %d: %w", frame, err)
	}

	var hits []messages.HitEvent
	for _, rec := range records {
		stepHits, err := h.Advance(m, rec.Inputs)
		if err != nil {
			return hits, err
		}
		hits = append(hits, stepHits...)
	}
	return hits, nil
}
