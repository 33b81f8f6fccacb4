package tags

import "github.com/yohamta/donburi"

var (
	Fighter = donburi.NewTag().SetName("Fighter")
	Hitbox  = donburi.NewTag().SetName("Hitbox")
	Hurtbox = donburi.NewTag().SetName("Hurtbox")
)

// Resolv tags for the collision broadphase
const (
	ResolvHitbox  = "hitbox"
	ResolvHurtbox = "hurtbox"
)
