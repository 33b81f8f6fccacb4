package factory

import (
	"github.com/automoto/fightcore/archetypes"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/inputbuf"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// FighterSpawn describes where and how a fighter enters the match.
type FighterSpawn struct {
	Player      netconfig.PlayerIndex
	Table       *statedata.Table
	Position    math.Vec2
	Facing      netconfig.Facing
	Health      uint32
	InputBuffer int
}

func CreateFighter(ecs *ecs.ECS, spawn FighterSpawn) *donburi.Entry {
	fighter := archetypes.Fighter.Spawn(ecs)

	components.Fighter.SetValue(fighter, components.FighterData{
		Player:        spawn.Player,
		Facing:        spawn.Facing,
		Position:      spawn.Position,
		SpawnPosition: spawn.Position,
		SpawnFacing:   spawn.Facing,
	})
	components.State.SetValue(fighter, components.StateData{
		Table:   spawn.Table,
		Current: netconfig.NeutralState,
		Frame:   0,
	})
	components.Health.SetValue(fighter, components.HealthData{
		Current: spawn.Health,
		Max:     spawn.Health,
	})
	components.Input.SetValue(fighter, components.InputData{
		Buffer: inputbuf.NewRing(spawn.InputBuffer),
	})

	return fighter
}

func CreateStep(ecs *ecs.ECS) *donburi.Entry {
	step := archetypes.Step.Spawn(ecs)
	components.Step.SetValue(step, components.StepData{})
	return step
}
