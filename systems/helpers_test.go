package systems

import (
	"testing"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// Global ids: neutral torso 1, walk torso 2, jab hitboxes 3 (id 1, frames
// 2-4) and 4 (id 2, frame 2 only), jab hurtboxes 5 (frame 0) and 6 (arm).
const testFighter = `
name: tester
health: 100
states:
  - id: 0
    name: neutral
    hurtboxes:
      - {id: 0, bone: torso, radius: 10, half_height: 20, offset: [0, 40]}
    transitions:
      - {to: 5, window: 1, inputs: [{with: [RIGHT]}]}
      - {to: 10, window: 1, inputs: [{with: [LP]}]}
      - {to: 7, window: 1, inputs: [{with: [DOWN]}]}
  - id: 5
    name: walk
    duration: 8
    hurtboxes:
      - {id: 0, bone: torso, radius: 10, half_height: 20, offset: [0, 40]}
  - id: 7
    name: short
    duration: 3
    transitions:
      - {to: 10, window: 1, inputs: [{with: [LP]}]}
  - id: 10
    name: jab
    duration: 12
    damage: 30
    hitboxes:
      - {id: 2, bone: fist, radius: 5, half_height: 8, offset: [30, 60], start: 2, end: 2}
      - {id: 1, bone: fist, radius: 5, half_height: 8, offset: [28, 60], start: 2, end: 4, damage: 20}
    hurtboxes:
      - {id: 0, bone: torso, radius: 10, half_height: 20, offset: [0, 40], start: 0}
      - {id: 1, bone: arm, radius: 4, half_height: 10, offset: [20, 60], start: 2, end: 5}
`

const (
	right = netconfig.Right
	lp    = netconfig.ButtonA
	down  = netconfig.Down
)

func loadTestTable(t *testing.T) *statedata.Table {
	t.Helper()
	table, err := statedata.Parse([]byte(testFighter))
	if err != nil {
		t.Fatalf("parse test fighter: %v", err)
	}
	return table
}

// newTestWorld spawns P1 at the origin facing right and P2 40 units away
// facing left, close enough for a jab to connect.
func newTestWorld(t *testing.T) *ecs.ECS {
	t.Helper()
	return newWorldWithTable(t, loadTestTable(t))
}

// newWorldWithTable is newTestWorld with both fighters using table.
func newWorldWithTable(t *testing.T, table *statedata.Table) *ecs.ECS {
	t.Helper()

	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateStep(e)
	factory.CreateFighter(e, factory.FighterSpawn{
		Player:      netconfig.Player1,
		Table:       table,
		Position:    math.Vec2{X: 0, Y: 0},
		Facing:      netconfig.FacingRight,
		Health:      table.MaxHealth,
		InputBuffer: 10,
	})
	factory.CreateFighter(e, factory.FighterSpawn{
		Player:      netconfig.Player2,
		Table:       table,
		Position:    math.Vec2{X: 40, Y: 0},
		Facing:      netconfig.FacingLeft,
		Health:      table.MaxHealth,
		InputBuffer: 10,
	})

	e.AddSystem(UpdateInput)
	e.AddSystem(UpdateStates)
	e.AddSystem(UpdateLifecycle)
	e.AddSystem(UpdateCollisions)
	e.AddSystem(UpdateHits)
	return e
}

func step(e *ecs.ECS, p1, p2 netconfig.InputMask) []messages.HitEvent {
	StepOf(e.World).Frame++
	SubmitInput(e.World, netconfig.Player1, p1)
	SubmitInput(e.World, netconfig.Player2, p2)
	e.Update()
	hits := StepOf(e.World).Hits
	components.HitEvent.ProcessEvents(e.World)
	return hits
}

func fighterState(t *testing.T, e *ecs.ECS, p netconfig.PlayerIndex) *components.StateData {
	t.Helper()
	entry, ok := FighterByPlayer(e.World, p)
	if !ok {
		t.Fatalf("no fighter for %s", p)
	}
	return components.State.Get(entry)
}

func fighterHealth(t *testing.T, e *ecs.ECS, p netconfig.PlayerIndex) uint32 {
	t.Helper()
	entry, ok := FighterByPlayer(e.World, p)
	if !ok {
		t.Fatalf("no fighter for %s", p)
	}
	return components.Health.Get(entry).Current
}

func activeIDs(e *ecs.ECS, owner netconfig.PlayerIndex, kind BoxKind) []uint32 {
	var out []uint32
	for _, b := range ActiveBoxes(e.World) {
		if b.Owner == owner && b.Kind == kind {
			out = append(out, b.GlobalID)
		}
	}
	return out
}

func expectPanicViolation(t *testing.T, fn func()) *InvariantViolation {
	t.Helper()
	var got *InvariantViolation
	func() {
		defer func() {
			v, ok := IsInvariantViolation(recover())
			if !ok {
				t.Fatalf("expected invariant violation panic")
			}
			got = v
		}()
		fn()
	}()
	return got
}
