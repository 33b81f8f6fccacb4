package systems

import (
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ResetRound puts every fighter back to its spawn: neutral state before its
// first frame, full health, empty input history and no active boxes. The
// match frame keeps counting.
func ResetRound(w donburi.World) {
	for _, e := range Fighters(w) {
		f := components.Fighter.Get(e)
		DeactivateBoxes(w, f.Player)

		f.Position = f.SpawnPosition
		f.Facing = f.SpawnFacing

		st := components.State.Get(e)
		st.Current = netconfig.NeutralState
		st.Frame = 0

		hp := components.Health.Get(e)
		hp.Current = hp.Max

		in := components.Input.Get(e)
		in.Buffer.Reset()
		in.Submitted = 0
	}
	StepOf(w).Hits = nil
}
