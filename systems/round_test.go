package systems

import (
	"testing"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/netconfig"
)

func TestResetRound(t *testing.T) {
	e := newTestWorld(t)
	step(e, lp, right)
	step(e, 0, 0)

	entry, _ := FighterByPlayer(e.World, netconfig.Player2)
	components.Fighter.Get(entry).Position.X = 300
	components.Fighter.Get(entry).Facing = netconfig.FacingRight

	ResetRound(e.World)

	if boxes := ActiveBoxes(e.World); len(boxes) != 0 {
		t.Fatalf("expected no boxes, got %+v", boxes)
	}
	for _, p := range netconfig.Players {
		st := fighterState(t, e, p)
		if st.Current != netconfig.NeutralState || st.Frame != 0 {
			t.Fatalf("%s: expected neutral frame 0, got %d frame %d", p, st.Current, st.Frame)
		}
		if hp := fighterHealth(t, e, p); hp != 100 {
			t.Fatalf("%s: expected full health, got %d", p, hp)
		}
		entry, _ := FighterByPlayer(e.World, p)
		if n := components.Input.Get(entry).Buffer.Len(); n != 0 {
			t.Fatalf("%s: expected empty input buffer, got %d frames", p, n)
		}
	}

	f := components.Fighter.Get(entry)
	if f.Position.X != 40 || f.Facing != netconfig.FacingLeft {
		t.Fatalf("expected P2 back at spawn, got %+v", f)
	}
	if StepOf(e.World).Frame != 2 {
		t.Fatalf("match frame should keep counting, got %d", StepOf(e.World).Frame)
	}
}
