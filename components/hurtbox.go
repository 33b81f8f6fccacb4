package components

import (
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/yohamta/donburi"
)

type HurtboxData struct {
	Owner netconfig.PlayerIndex
	Def   *statedata.HurtboxData
}

var Hurtbox = donburi.NewComponentType[HurtboxData]()
