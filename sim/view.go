package sim

import (
	"fmt"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/systems"
	"github.com/yohamta/donburi/features/math"
)

// FighterView is a read-only copy of a fighter's state.
type FighterView struct {
	Player    netconfig.PlayerIndex
	Fighter   string
	State     netconfig.StateID
	StateName string
	Frame     uint16
	Health    uint32
	MaxHealth uint32
	Facing    netconfig.Facing
	Position  math.Vec2
	LastInput netconfig.InputMask

	// Global ids of the active boxes, ascending.
	Hitboxes  []uint32
	Hurtboxes []uint32
}

func (v FighterView) String() string {
	return fmt.Sprintf("%s %s state=%d(%s) frame=%d hp=%d/%d facing=%s pos=(%.1f,%.1f) hit=%v hurt=%v",
		v.Player, v.Fighter, v.State, v.StateName, v.Frame, v.Health, v.MaxHealth, v.Facing,
		v.Position.X, v.Position.Y, v.Hitboxes, v.Hurtboxes)
}

// Fighter returns a view of p's fighter.
func (m *Match) Fighter(p netconfig.PlayerIndex) (FighterView, bool) {
	e, ok := systems.FighterByPlayer(m.ecs.World, p)
	if !ok {
		return FighterView{}, false
	}

	f := components.Fighter.Get(e)
	st := components.State.Get(e)
	hp := components.Health.Get(e)
	in := components.Input.Get(e)

	v := FighterView{
		Player:    f.Player,
		Fighter:   st.Table.Name,
		State:     st.Current,
		Frame:     st.Frame,
		Health:    hp.Current,
		MaxHealth: hp.Max,
		Facing:    f.Facing,
		Position:  f.Position,
	}
	if s, ok := st.State(); ok {
		v.StateName = s.Name
	}
	v.LastInput, _ = in.Buffer.Last()

	for _, b := range systems.ActiveBoxes(m.ecs.World) {
		if b.Owner != p {
			continue
		}
		if b.Kind == systems.KindHitbox {
			v.Hitboxes = append(v.Hitboxes, b.GlobalID)
		} else {
			v.Hurtboxes = append(v.Hurtboxes, b.GlobalID)
		}
	}
	return v, true
}
