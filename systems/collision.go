package systems

import (
	"cmp"
	"math"
	"slices"

	"github.com/automoto/fightcore/components"
	cfg "github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/shared/gamemath"
	"github.com/automoto/fightcore/shared/messages"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// broadphasePad grows every broadphase object so that capsules that only
// touch still share a cell.
const broadphasePad = 1.0

// UpdateCollisions resolves the step's hits and leaves them on the step
// entity for UpdateHits.
func UpdateCollisions(ecs *ecs.ECS) {
	step := StepOf(ecs.World)
	step.Hits = ResolveCollisions(ecs.World, step.Frame)
}

type hitCandidate struct {
	hitbox  *components.HitboxData
	hurtbox *components.HurtboxData
}

type activeHitbox struct {
	data    *components.HitboxData
	capsule gamemath.Capsule
}

type activeHurtbox struct {
	data    *components.HurtboxData
	capsule gamemath.Capsule
}

// ResolveCollisions finds, for every attacker and recipient pair, the one
// collision that counts this step. Lower hitbox ids win; equal ids fall back
// to the lower hurtbox id. The result is ordered by attacker, then recipient,
// and does not depend on the order boxes are stored in.
func ResolveCollisions(w donburi.World, frame uint32) []messages.HitEvent {
	hits, hurts := gatherBoxes(w)
	if len(hits) == 0 || len(hurts) == 0 {
		return nil
	}

	hitObjects := buildBroadphase(hits, hurts)

	best := make(map[[2]netconfig.PlayerIndex]hitCandidate)
	for i, hit := range hits {
		check := hitObjects[i].Check(0, 0, tags.ResolvHurtbox)
		if check == nil {
			continue
		}
		for _, obj := range check.ObjectsByTags(tags.ResolvHurtbox) {
			hurt := hurts[obj.Data.(int)]
			if hurt.data.Owner == hit.data.Owner {
				continue
			}
			if hit.data.HitOwners.Has(hurt.data.Owner) {
				continue
			}
			if !hit.capsule.Intersects(hurt.capsule) {
				continue
			}

			c := hitCandidate{hitbox: hit.data, hurtbox: hurt.data}
			key := [2]netconfig.PlayerIndex{hit.data.Owner, hurt.data.Owner}
			if prev, ok := best[key]; !ok || preferCandidate(c, prev) {
				best[key] = c
			}
		}
	}

	events := make([]messages.HitEvent, 0, len(best))
	for key, c := range best {
		events = append(events, messages.HitEvent{
			Frame:     frame,
			Attacker:  key[0],
			Recipient: key[1],
			Hitbox:    *c.hitbox.Def,
			Hurtbox:   *c.hurtbox.Def,
		})
	}
	slices.SortFunc(events, func(a, b messages.HitEvent) int {
		return cmp.Or(
			cmp.Compare(a.Attacker, b.Attacker),
			cmp.Compare(a.Recipient, b.Recipient),
		)
	})
	return events
}

// preferCandidate reports whether a should replace b as the collision of its
// pair. Priority is deliberately not consulted.
func preferCandidate(a, b hitCandidate) bool {
	return cmp.Or(
		cmp.Compare(a.hitbox.Def.ID, b.hitbox.Def.ID),
		cmp.Compare(a.hurtbox.Def.ID, b.hurtbox.Def.ID),
		cmp.Compare(a.hitbox.Def.GlobalID, b.hitbox.Def.GlobalID),
		cmp.Compare(a.hurtbox.Def.GlobalID, b.hurtbox.Def.GlobalID),
	) < 0
}

func gatherBoxes(w donburi.World) ([]activeHitbox, []activeHurtbox) {
	var hits []activeHitbox
	for e := range tags.Hitbox.Iter(w) {
		hits = append(hits, activeHitbox{
			data:    components.Hitbox.Get(e),
			capsule: components.Transform.Get(e).Capsule,
		})
	}
	var hurts []activeHurtbox
	for e := range tags.Hurtbox.Iter(w) {
		hurts = append(hurts, activeHurtbox{
			data:    components.Hurtbox.Get(e),
			capsule: components.Transform.Get(e).Capsule,
		})
	}

	slices.SortFunc(hits, func(a, b activeHitbox) int {
		return cmp.Or(cmp.Compare(a.data.Owner, b.data.Owner), cmp.Compare(a.data.Def.GlobalID, b.data.Def.GlobalID))
	})
	slices.SortFunc(hurts, func(a, b activeHurtbox) int {
		return cmp.Or(cmp.Compare(a.data.Owner, b.data.Owner), cmp.Compare(a.data.Def.GlobalID, b.data.Def.GlobalID))
	})
	return hits, hurts
}

// buildBroadphase places every box in a fresh resolv space that just covers
// them. Space coordinates are shifted so the union of all boxes starts at one
// cell from the origin. The returned objects line up with hits; hurtbox
// objects carry their index in hurts as Data. Nothing outlives the step.
func buildBroadphase(hits []activeHitbox, hurts []activeHurtbox) []*resolv.Object {
	bounds := hits[0].capsule.Bounds()
	for _, h := range hits[1:] {
		bounds = bounds.Union(h.capsule.Bounds())
	}
	for _, h := range hurts {
		bounds = bounds.Union(h.capsule.Bounds())
	}

	cell := cfg.Sim.CellSize
	if cell < 1 {
		cell = 1
	}
	margin := float64(cell)
	width := int(math.Ceil(bounds.W()+2*margin)) + cell
	height := int(math.Ceil(bounds.H()+2*margin)) + cell
	space := resolv.NewSpace(width, height, cell, cell)

	originX := bounds.MinX - margin
	originY := bounds.MinY - margin
	place := func(c gamemath.Capsule, tag string) *resolv.Object {
		b := c.Bounds()
		w := b.W() + 2*broadphasePad
		h := b.H() + 2*broadphasePad
		obj := resolv.NewObject(b.MinX-originX-broadphasePad, b.MinY-originY-broadphasePad, w, h, tag)
		obj.SetShape(resolv.NewRectangle(0, 0, w, h))
		return obj
	}

	for i, h := range hurts {
		obj := place(h.capsule, tags.ResolvHurtbox)
		obj.Data = i
		space.Add(obj)
	}
	hitObjects := make([]*resolv.Object, len(hits))
	for i, h := range hits {
		obj := place(h.capsule, tags.ResolvHitbox)
		obj.Data = i
		space.Add(obj)
		hitObjects[i] = obj
	}
	return hitObjects
}
