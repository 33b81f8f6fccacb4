package systems

import (
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/gamemath"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateStates advances every fighter's state machine by one frame: the
// counter is incremented, then the first matching command transition wins,
// and otherwise an expired state falls back to neutral.
func UpdateStates(ecs *ecs.ECS) {
	for _, e := range Fighters(ecs.World) {
		updateFighterState(ecs, e)
	}
}

func updateFighterState(ecs *ecs.ECS, e *donburi.Entry) {
	fighter := components.Fighter.Get(e)
	state := components.State.Get(e)
	input := components.Input.Get(e)

	state.Frame = gamemath.SaturatingInc(state.Frame)

	current, ok := state.State()
	if !ok {
		violate(fighter.Player, "current state %d is not in table %s", state.Current, state.Table)
	}

	for _, tr := range current.Transitions {
		if !tr.Command.Match(input.Buffer) {
			continue
		}
		if _, ok := state.Table.Lookup(tr.Target); !ok {
			violate(fighter.Player, "transition from %d targets unknown state %d", current.ID, tr.Target)
		}
		EnterState(ecs.World, e, tr.Target)
		return
	}

	if current.HasDuration && state.Frame > current.Duration {
		EnterState(ecs.World, e, netconfig.NeutralState)
	}
}

// EnterState leaves the fighter's current state, tearing down every box it
// had active, and starts target on frame 1.
func EnterState(w donburi.World, e *donburi.Entry, target netconfig.StateID) {
	fighter := components.Fighter.Get(e)
	state := components.State.Get(e)

	DeactivateBoxes(w, fighter.Player)
	state.Current = target
	state.Frame = 1
}
