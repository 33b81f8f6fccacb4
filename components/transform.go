package components

import (
	"github.com/automoto/fightcore/shared/gamemath"
	"github.com/yohamta/donburi"
)

// TransformData is the world-space capsule of an active box, refreshed from
// its owner every step.
type TransformData struct {
	Capsule gamemath.Capsule
}

var Transform = donburi.NewComponentType[TransformData]()
