package components

import (
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/yohamta/donburi"
)

type HitboxData struct {
	Owner netconfig.PlayerIndex // Fighter that spawned this hitbox
	Def   *statedata.HitboxData // Definition in the owner's table
	// Players already hit by this activation. Cleared only by deactivation.
	HitOwners netconfig.OwnerSet
}

var Hitbox = donburi.NewComponentType[HitboxData]()
