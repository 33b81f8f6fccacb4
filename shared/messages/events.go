package messages

import (
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
)

// HitEvent is emitted once per (attacker, recipient) pair and step when an
// attack connects. Box data is a snapshot of the definitions involved.
type HitEvent struct {
	Frame     uint32
	Attacker  netconfig.PlayerIndex
	Recipient netconfig.PlayerIndex
	Hitbox    statedata.HitboxData
	Hurtbox   statedata.HurtboxData

	// RemainingHealth is filled in once the hit has been applied.
	RemainingHealth uint32
}

// Damage is the health the hit removes before saturation.
func (e HitEvent) Damage() uint32 {
	return e.Hitbox.Damage
}
