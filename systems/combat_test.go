package systems

import (
	"testing"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi"
)

func TestJabHitsOncePerActivation(t *testing.T) {
	e := newTestWorld(t)
	var delivered []messages.HitEvent
	components.HitEvent.Subscribe(e.World, func(w donburi.World, ev messages.HitEvent) {
		delivered = append(delivered, ev)
	})

	step(e, lp, 0)
	hits := step(e, 0, 0)
	if len(hits) != 1 {
		t.Fatalf("expected one hit on frame 2, got %+v", hits)
	}
	if hits[0].Hitbox.ID != 1 || hits[0].Damage() != 20 || hits[0].RemainingHealth != 80 {
		t.Fatalf("unexpected hit %+v", hits[0])
	}

	for i := 0; i < 3; i++ {
		if hits := step(e, 0, 0); len(hits) != 0 {
			t.Fatalf("hitbox connected again while active: %+v", hits)
		}
	}

	if fighterHealth(t, e, netconfig.Player2) != 80 {
		t.Fatalf("expected 80 health, got %d", fighterHealth(t, e, netconfig.Player2))
	}
	if len(delivered) != 1 || delivered[0].RemainingHealth != 80 || delivered[0].Frame != 2 {
		t.Fatalf("unexpected delivered events %+v", delivered)
	}
}

func TestLosingHitboxCanConnectNextStep(t *testing.T) {
	e := newTestWorld(t)
	entry, _ := FighterByPlayer(e.World, netconfig.Player1)
	fist, ok := components.State.Get(entry).Table.Hitbox(4)
	if !ok {
		t.Fatalf("no hitbox 4")
	}
	fist.EndFrame = 4 // keep id 2 overlapping after id 1 has connected

	step(e, lp, 0)
	hits := step(e, 0, 0)
	if len(hits) != 1 || hits[0].Hitbox.ID != 1 {
		t.Fatalf("expected id 1 to win frame 2, got %+v", hits)
	}

	hits = step(e, 0, 0)
	if len(hits) != 1 || hits[0].Hitbox.ID != 2 || hits[0].RemainingHealth != 50 {
		t.Fatalf("expected id 2 to connect on frame 3, got %+v", hits)
	}

	if hits := step(e, 0, 0); len(hits) != 0 {
		t.Fatalf("both hitboxes already hit P2, got %+v", hits)
	}
}

func TestRepeatSuppressionIsPerRecipient(t *testing.T) {
	e := newTestWorld(t)

	step(e, lp, lp)
	hits := step(e, 0, 0)

	if len(hits) != 2 {
		t.Fatalf("expected a hit in each direction, got %+v", hits)
	}
	if hits[0].Attacker != netconfig.Player1 || hits[1].Attacker != netconfig.Player2 {
		t.Fatalf("events should be ordered by attacker, got %+v", hits)
	}
	for _, p := range netconfig.Players {
		if hp := fighterHealth(t, e, p); hp != 80 {
			t.Fatalf("%s: expected 80 health, got %d", p, hp)
		}
	}
}

func TestHealthSaturatesAndNeverIncreases(t *testing.T) {
	e := newTestWorld(t)
	entry, _ := FighterByPlayer(e.World, netconfig.Player2)
	components.Health.Get(entry).Current = 5

	last := fighterHealth(t, e, netconfig.Player2)
	for i := 0; i < 60; i++ {
		input := netconfig.InputMask(0)
		if i%2 == 0 {
			input = lp
		}
		step(e, input, 0)
		hp := fighterHealth(t, e, netconfig.Player2)
		if hp > last {
			t.Fatalf("step %d: health increased from %d to %d", i, last, hp)
		}
		last = hp
	}
	if last != 0 {
		t.Fatalf("expected health to saturate at 0, got %d", last)
	}
}

func TestApplyHitsMissingRecipient(t *testing.T) {
	e := newTestWorld(t)
	step(e, lp, 0)
	step(e, 0, 0)

	hits := []messages.HitEvent{{Attacker: netconfig.Player1, Recipient: 3}}
	v := expectPanicViolation(t, func() { ApplyHits(e.World, hits) })
	if v.Player != 3 {
		t.Fatalf("expected violation naming player 3, got %v", v)
	}
}
