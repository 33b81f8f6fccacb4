package systems

import (
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SubmitInput hands p's controller state for the next step to its fighter.
// Reserved bits are dropped.
func SubmitInput(w donburi.World, p netconfig.PlayerIndex, mask netconfig.InputMask) {
	e, ok := FighterByPlayer(w, p)
	if !ok {
		violate(p, "input submitted for a player without fighter")
	}
	components.Input.Get(e).Submitted = mask.Sanitize()
}

// UpdateInput records every fighter's submitted mask in its buffer. A fighter
// that received no input this step records a neutral frame.
func UpdateInput(ecs *ecs.ECS) {
	for _, e := range Fighters(ecs.World) {
		in := components.Input.Get(e)
		in.Buffer.Push(in.Submitted)
		in.Submitted = 0
	}
}
