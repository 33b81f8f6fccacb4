package components

import (
	"github.com/automoto/fightcore/shared/inputbuf"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi"
)

// InputData holds a fighter's recent input history. Submitted is the mask
// handed in for the step being simulated; it is pushed onto Buffer before
// the state machine runs.
type InputData struct {
	Buffer    *inputbuf.Ring
	Submitted netconfig.InputMask
}

var Input = donburi.NewComponentType[InputData]()
