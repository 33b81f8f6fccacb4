package components

import (
	"github.com/automoto/fightcore/shared/messages"
	"github.com/yohamta/donburi"
)

// StepData is the per-world bookkeeping of the simulation: the number of the
// frame being simulated and the hits resolved during it.
type StepData struct {
	Frame uint32
	Hits  []messages.HitEvent
}

var Step = donburi.NewComponentType[StepData]()
