package systems

import (
	"cmp"
	"slices"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/tags"
	"github.com/yohamta/donburi"
)

// Fighters returns every fighter ordered by player index. Storage order in
// the world depends on its history, so every system goes through here.
func Fighters(w donburi.World) []*donburi.Entry {
	var out []*donburi.Entry
	tags.Fighter.Each(w, func(e *donburi.Entry) {
		out = append(out, e)
	})
	slices.SortFunc(out, func(a, b *donburi.Entry) int {
		return cmp.Compare(components.Fighter.Get(a).Player, components.Fighter.Get(b).Player)
	})
	return out
}

// FighterByPlayer finds the fighter owned by p.
func FighterByPlayer(w donburi.World, p netconfig.PlayerIndex) (*donburi.Entry, bool) {
	for e := range tags.Fighter.Iter(w) {
		if components.Fighter.Get(e).Player == p {
			return e, true
		}
	}
	return nil, false
}

// StepOf returns the world's step bookkeeping.
func StepOf(w donburi.World) *components.StepData {
	e, ok := components.Step.First(w)
	if !ok {
		violate(0, "world has no step entity")
	}
	return components.Step.Get(e)
}
