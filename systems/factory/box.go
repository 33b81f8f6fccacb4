package factory

import (
	"github.com/automoto/fightcore/archetypes"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/gamemath"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateHitbox activates def for owner. hitOwners is normally empty; snapshot
// restore passes the set that was saved.
func CreateHitbox(ecs *ecs.ECS, owner *components.FighterData, def *statedata.HitboxData, hitOwners netconfig.OwnerSet) *donburi.Entry {
	hitbox := archetypes.Hitbox.Spawn(ecs)

	components.Hitbox.SetValue(hitbox, components.HitboxData{
		Owner:     owner.Player,
		Def:       def,
		HitOwners: hitOwners,
	})
	components.Transform.SetValue(hitbox, components.TransformData{
		Capsule: PlaceShape(owner, def.Shape),
	})

	return hitbox
}

func CreateHurtbox(ecs *ecs.ECS, owner *components.FighterData, def *statedata.HurtboxData) *donburi.Entry {
	hurtbox := archetypes.Hurtbox.Spawn(ecs)

	components.Hurtbox.SetValue(hurtbox, components.HurtboxData{
		Owner: owner.Player,
		Def:   def,
	})
	components.Transform.SetValue(hurtbox, components.TransformData{
		Capsule: PlaceShape(owner, def.Shape),
	})

	return hurtbox
}

// PlaceShape converts a fighter-local shape to world space.
func PlaceShape(owner *components.FighterData, s statedata.Shape) gamemath.Capsule {
	return gamemath.PlaceCapsule(owner.Position, s.Offset, s.Radius, s.HalfHeight, s.Rotation, owner.Facing.Sign())
}
