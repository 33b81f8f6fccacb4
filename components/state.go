package components

import (
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/yohamta/donburi"
)

type StateData struct {
	Table   *statedata.Table
	Current netconfig.StateID
	// Frame counts steps spent in Current, starting at 1 on entry. It is 0
	// only before the first step after a spawn or round reset.
	Frame uint16
}

// State returns the definition of the current state.
func (s *StateData) State() (*statedata.State, bool) {
	if s.Table == nil {
		return nil, false
	}
	return s.Table.Lookup(s.Current)
}

var State = donburi.NewComponentType[StateData]()
