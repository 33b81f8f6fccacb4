package systems

import (
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/gamemath"
	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateHits applies the hits resolved this step. It runs only after
// UpdateCollisions has seen every box, so a hit landing now cannot change
// which other hits land in the same step.
func UpdateHits(ecs *ecs.ECS) {
	step := StepOf(ecs.World)
	ApplyHits(ecs.World, step.Hits)
}

// ApplyHits subtracts each hit's damage from its recipient, marks the
// recipient on the hitbox so it cannot connect again while active, fills in
// RemainingHealth and queues the event for subscribers.
func ApplyHits(w donburi.World, hits []messages.HitEvent) {
	for i := range hits {
		ev := &hits[i]

		recipient, ok := FighterByPlayer(w, ev.Recipient)
		if !ok {
			violate(ev.Recipient, "hit from %s targets a missing fighter", ev.Attacker)
		}
		if !recipient.HasComponent(components.Health) {
			violate(ev.Recipient, "hit target has no health")
		}

		hitbox, ok := findHitbox(w, ev.Attacker, ev.Hitbox.GlobalID)
		if !ok {
			violate(ev.Attacker, "hitbox %d is not active", ev.Hitbox.GlobalID)
		}
		hitbox.HitOwners = hitbox.HitOwners.Add(ev.Recipient)

		hp := components.Health.Get(recipient)
		hp.Current = gamemath.SaturatingSub(hp.Current, ev.Damage())
		ev.RemainingHealth = hp.Current

		components.HitEvent.Publish(w, *ev)
	}
}

func findHitbox(w donburi.World, owner netconfig.PlayerIndex, globalID uint32) (*components.HitboxData, bool) {
	for e := range tags.Hitbox.Iter(w) {
		h := components.Hitbox.Get(e)
		if h.Owner == owner && h.Def.GlobalID == globalID {
			return h, true
		}
	}
	return nil, false
}
