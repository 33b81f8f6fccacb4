// Package sim wires the combat systems into a two-fighter match that can be
// stepped, snapshotted and restored.
package sim

import (
	"errors"
	"fmt"
	"slices"

	"github.com/automoto/fightcore/components"
	cfg "github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/automoto/fightcore/systems"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

type options struct {
	inputBuffer   int
	spawnDistance float64
	spawnY        float64
	health        uint32
}

// Option customises a match at creation.
type Option func(*options)

// WithInputBuffer sets how many frames each fighter's input ring keeps.
func WithInputBuffer(frames int) Option {
	return func(o *options) { o.inputBuffer = frames }
}

// WithSpawnDistance sets the horizontal distance between the fighters at
// spawn. They stand symmetrically around x = 0.
func WithSpawnDistance(d float64) Option {
	return func(o *options) { o.spawnDistance = d }
}

// WithHealth overrides the health of both fighters.
func WithHealth(h uint32) Option {
	return func(o *options) { o.health = h }
}

// Match is one bout between two fighters. It is not safe for concurrent use;
// the loop that owns it serialises access.
type Match struct {
	ecs    *ecs.ECS
	tables [2]*statedata.Table
}

// NewMatch spawns p1 on the left facing right and p2 on the right facing
// left, both in the neutral state.
func NewMatch(p1, p2 *statedata.Table, opts ...Option) (*Match, error) {
	if p1 == nil || p2 == nil {
		return nil, errors.New("new match: both fighters need a state table")
	}

	o := options{
		inputBuffer:   cfg.Sim.InputBuffer,
		spawnDistance: cfg.Sim.SpawnDistance,
		spawnY:        cfg.Sim.SpawnY,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.inputBuffer < 1 {
		return nil, fmt.Errorf("new match: input buffer must hold at least 1 frame, got %d", o.inputBuffer)
	}

	m := &Match{
		ecs:    ecs.NewECS(donburi.NewWorld()),
		tables: [2]*statedata.Table{p1, p2},
	}
	factory.CreateStep(m.ecs)

	half := o.spawnDistance / 2
	spawns := [2]struct {
		x      float64
		facing netconfig.Facing
	}{
		{-half, netconfig.FacingRight},
		{half, netconfig.FacingLeft},
	}
	for i, p := range netconfig.Players {
		table := m.tables[i]
		factory.CreateFighter(m.ecs, factory.FighterSpawn{
			Player:      p,
			Table:       table,
			Position:    math.Vec2{X: spawns[i].x, Y: o.spawnY},
			Facing:      spawns[i].facing,
			Health:      startingHealth(table, o.health),
			InputBuffer: o.inputBuffer,
		})
	}

	m.ecs.AddSystem(systems.UpdateInput)
	m.ecs.AddSystem(systems.UpdateStates)
	m.ecs.AddSystem(systems.UpdateLifecycle)
	m.ecs.AddSystem(systems.UpdateCollisions)
	m.ecs.AddSystem(systems.UpdateHits)

	return m, nil
}

func startingHealth(t *statedata.Table, override uint32) uint32 {
	switch {
	case override > 0:
		return override
	case t.MaxHealth > 0:
		return t.MaxHealth
	default:
		return cfg.Sim.DefaultHealth
	}
}

// Frame returns the number of the last simulated frame (0 before the first
// step).
func (m *Match) Frame() uint32 {
	return systems.StepOf(m.ecs.World).Frame
}

// Step simulates one frame with the given inputs, indexed by player slot, and
// returns the hits that landed in it. Subscribers are notified before Step
// returns.
func (m *Match) Step(inputs [2]netconfig.InputMask) []messages.HitEvent {
	w := m.ecs.World
	step := systems.StepOf(w)
	step.Frame++
	for i, p := range netconfig.Players {
		systems.SubmitInput(w, p, inputs[i])
	}

	m.ecs.Update()

	step = systems.StepOf(w)
	hits := slices.Clone(step.Hits)
	step.Hits = nil
	components.HitEvent.ProcessEvents(w)
	return hits
}

// Subscribe registers fn to be called for every applied hit, in step order.
func (m *Match) Subscribe(fn func(messages.HitEvent)) {
	components.HitEvent.Subscribe(m.ecs.World, func(_ donburi.World, ev messages.HitEvent) {
		fn(ev)
	})
}

// Snapshot serialises the complete simulation state.
func (m *Match) Snapshot() ([]byte, error) {
	return systems.EncodeSnapshot(systems.CaptureWorld(m.ecs.World))
}

// Restore rewinds the match to a state produced by Snapshot. On error the
// match is unchanged.
func (m *Match) Restore(data []byte) error {
	snap, err := systems.DecodeSnapshot(data)
	if err != nil {
		return err
	}
	if err := systems.RestoreWorld(m.ecs, snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}

// ResetRound returns both fighters to their spawn with full health.
func (m *Match) ResetRound() {
	systems.ResetRound(m.ecs.World)
}

// Table returns the state table p fights with.
func (m *Match) Table(p netconfig.PlayerIndex) (*statedata.Table, bool) {
	if !p.Valid() {
		return nil, false
	}
	return m.tables[p.Slot()], true
}

// SetPosition moves p's fighter. Active boxes follow immediately.
func (m *Match) SetPosition(p netconfig.PlayerIndex, pos math.Vec2) error {
	e, ok := systems.FighterByPlayer(m.ecs.World, p)
	if !ok {
		return fmt.Errorf("no fighter for %s", p)
	}
	components.Fighter.Get(e).Position = pos
	systems.RefreshTransforms(m.ecs.World)
	return nil
}

// SetFacing turns p's fighter. Active boxes are mirrored immediately.
func (m *Match) SetFacing(p netconfig.PlayerIndex, f netconfig.Facing) error {
	e, ok := systems.FighterByPlayer(m.ecs.World, p)
	if !ok {
		return fmt.Errorf("no fighter for %s", p)
	}
	components.Fighter.Get(e).Facing = f
	systems.RefreshTransforms(m.ecs.World)
	return nil
}
