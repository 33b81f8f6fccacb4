package archetypes

import (
	"github.com/automoto/fightcore/components"
	cfg "github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Fighter = newArchetype(
		tags.Fighter,
		components.Fighter,
		components.State,
		components.Health,
		components.Input,
	)
	Hitbox = newArchetype(
		tags.Hitbox,
		components.Hitbox,
		components.Transform,
	)
	Hurtbox = newArchetype(
		tags.Hurtbox,
		components.Hurtbox,
		components.Transform,
	)
	Step = newArchetype(
		components.Step,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
