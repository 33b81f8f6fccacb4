package components

import (
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type FighterData struct {
	Player   netconfig.PlayerIndex
	Facing   netconfig.Facing
	Position math.Vec2

	// Where the fighter stands after a round reset.
	SpawnPosition math.Vec2
	SpawnFacing   netconfig.Facing
}

var Fighter = donburi.NewComponentType[FighterData]()
