// Package statedata describes a fighter's state table: the per-state box
// schedules, command transitions and behaviour tags. Tables are immutable once
// built and hold no entities, so one table can back any number of matches.
package statedata

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/automoto/fightcore/shared/inputbuf"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi/features/math"
)

// Shape is a capsule in fighter-local space.
type Shape struct {
	Radius     float64
	HalfHeight float64
	Offset     math.Vec2
	Rotation   float64
}

// Effect describes what a hit does to the recipient beyond damage. The core
// only carries it; hit reactions are applied by collaborators.
type Effect struct {
	Hitstun   uint16
	Knockback math.Vec2
	Launch    bool
}

type HitboxData struct {
	ID       uint32 // unique among the hitboxes of one state
	GlobalID uint32 // unique across the fighter
	Bone     string
	Shape    Shape

	StartFrame uint16
	EndFrame   uint16

	Damage    uint32
	Priority  int32
	OnHit     Effect
	OnAirHit  Effect
	Blockstun uint16

	RehitCooldown    uint16
	HasRehitCooldown bool
}

type HurtboxData struct {
	ID       uint32
	GlobalID uint32
	Bone     string
	Shape    Shape

	StartFrame uint16
	// EndFrame is only meaningful when HasEndFrame is set; otherwise the box
	// stays up until the state is left.
	EndFrame    uint16
	HasEndFrame bool
}

// Transition moves the fighter to Target when Command matches its input buffer.
type Transition struct {
	Command inputbuf.Command
	Target  netconfig.StateID
}

type State struct {
	ID   netconfig.StateID
	Name string

	// Duration is the number of frames after which the fighter falls back to
	// the neutral state, when HasDuration is set.
	Duration    uint16
	HasDuration bool
	Damage      uint32

	Transitions []Transition
	// Hitboxes and Hurtboxes are keyed by the frame that activates them.
	Hitboxes  map[uint16][]HitboxData
	Hurtboxes map[uint16][]HurtboxData
	Modifiers []Modifier
}

// HitboxesAt returns the hitboxes scheduled to start on frame, ordered by id.
func (s *State) HitboxesAt(frame uint16) []HitboxData {
	return s.Hitboxes[frame]
}

// HurtboxesAt returns the hurtboxes scheduled to start on frame, ordered by id.
func (s *State) HurtboxesAt(frame uint16) []HurtboxData {
	return s.Hurtboxes[frame]
}

// Table is the complete, validated set of states of one fighter.
type Table struct {
	Name      string
	MaxHealth uint32

	states    map[netconfig.StateID]*State
	ids       []netconfig.StateID
	hitboxes  map[uint32]*HitboxData
	hurtboxes map[uint32]*HurtboxData
}

// NewTable validates states and indexes them. Box global ids are assigned
// here, in declaration order, so callers may leave them zero. Every problem
// found is reported; the returned error joins *ConfigError values.
func NewTable(name string, maxHealth uint32, states []*State) (*Table, error) {
	t := &Table{
		Name:      name,
		MaxHealth: maxHealth,
		states:    make(map[netconfig.StateID]*State, len(states)),
		hitboxes:  make(map[uint32]*HitboxData),
		hurtboxes: make(map[uint32]*HurtboxData),
	}

	v := &validator{fighter: name}
	for _, s := range states {
		if s == nil {
			v.add(nil, "states", "nil state")
			continue
		}
		if _, dup := t.states[s.ID]; dup {
			v.add(&s.ID, "id", "duplicate state id")
			continue
		}
		t.states[s.ID] = s
		t.ids = append(t.ids, s.ID)
	}
	if _, ok := t.states[netconfig.NeutralState]; !ok {
		v.add(nil, "states", "neutral state 0 is missing")
	}

	var nextGlobal uint32 = 1
	for _, id := range t.ids {
		s := t.states[id]
		v.checkState(s, t.states)

		for _, frame := range sortedFrames(s.Hitboxes) {
			boxes := s.Hitboxes[frame]
			slices.SortStableFunc(boxes, func(a, b HitboxData) int { return cmp.Compare(a.ID, b.ID) })
			for i := range boxes {
				boxes[i].GlobalID = nextGlobal
				t.hitboxes[nextGlobal] = &boxes[i]
				nextGlobal++
			}
		}
		for _, frame := range sortedFrames(s.Hurtboxes) {
			boxes := s.Hurtboxes[frame]
			slices.SortStableFunc(boxes, func(a, b HurtboxData) int { return cmp.Compare(a.ID, b.ID) })
			for i := range boxes {
				boxes[i].GlobalID = nextGlobal
				t.hurtboxes[nextGlobal] = &boxes[i]
				nextGlobal++
			}
		}
	}
	slices.Sort(t.ids)

	if err := v.err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the state with the given id.
func (t *Table) Lookup(id netconfig.StateID) (*State, bool) {
	s, ok := t.states[id]
	return s, ok
}

// IDs returns every state id in ascending order.
func (t *Table) IDs() []netconfig.StateID {
	return slices.Clone(t.ids)
}

// Hitbox resolves a hitbox by its fighter-wide global id.
func (t *Table) Hitbox(globalID uint32) (*HitboxData, bool) {
	h, ok := t.hitboxes[globalID]
	return h, ok
}

// Hurtbox resolves a hurtbox by its fighter-wide global id.
func (t *Table) Hurtbox(globalID uint32) (*HurtboxData, bool) {
	h, ok := t.hurtboxes[globalID]
	return h, ok
}

func (t *Table) String() string {
	return fmt.Sprintf("%s (%d states)", t.Name, len(t.ids))
}

func sortedFrames[T any](m map[uint16][]T) []uint16 {
	frames := make([]uint16, 0, len(m))
	for f := range m {
		frames = append(frames, f)
	}
	slices.Sort(frames)
	return frames
}
