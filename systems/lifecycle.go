package systems

import (
	"cmp"
	"slices"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/shared/statedata"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/automoto/fightcore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateLifecycle activates the boxes scheduled for each fighter's current
// frame, retires the ones past their end frame and moves the rest along with
// their owner.
func UpdateLifecycle(ecs *ecs.ECS) {
	for _, e := range Fighters(ecs.World) {
		fighter := components.Fighter.Get(e)
		state := components.State.Get(e)

		current, ok := state.State()
		if !ok {
			violate(fighter.Player, "current state %d is not in table %s", state.Current, state.Table)
		}

		activateBoxes(ecs, fighter, current, state.Frame)
		expireBoxes(ecs.World, fighter.Player, state.Frame)
	}
	RefreshTransforms(ecs.World)
}

func activateBoxes(ecs *ecs.ECS, fighter *components.FighterData, s *statedata.State, frame uint16) {
	activeHits, activeHurts := activeGlobalIDs(ecs.World, fighter.Player)

	// Frame 0 is never simulated: frame-0 boxes come up together with the
	// frame-1 ones.
	var hits []statedata.HitboxData
	if frame == 1 {
		hits = append(hits, s.HitboxesAt(0)...)
	}
	hits = append(hits, s.HitboxesAt(frame)...)
	for i := range hits {
		if activeHits[hits[i].GlobalID] {
			continue
		}
		def, ok := tableHitbox(s, hits[i])
		if !ok {
			violate(fighter.Player, "hitbox %d of state %d is not indexed", hits[i].ID, s.ID)
		}
		factory.CreateHitbox(ecs, fighter, def, 0)
	}

	var hurts []statedata.HurtboxData
	if frame == 1 {
		hurts = append(hurts, s.HurtboxesAt(0)...)
	}
	hurts = append(hurts, s.HurtboxesAt(frame)...)
	for i := range hurts {
		if activeHurts[hurts[i].GlobalID] {
			continue
		}
		def, ok := tableHurtbox(s, hurts[i])
		if !ok {
			violate(fighter.Player, "hurtbox %d of state %d is not indexed", hurts[i].ID, s.ID)
		}
		factory.CreateHurtbox(ecs, fighter, def)
	}
}

// tableHitbox and tableHurtbox return the stored definition rather than the
// copy taken when frame-0 and frame-1 boxes were merged.
func tableHitbox(s *statedata.State, h statedata.HitboxData) (*statedata.HitboxData, bool) {
	boxes := s.Hitboxes[h.StartFrame]
	for i := range boxes {
		if boxes[i].GlobalID == h.GlobalID {
			return &boxes[i], true
		}
	}
	return nil, false
}

func tableHurtbox(s *statedata.State, h statedata.HurtboxData) (*statedata.HurtboxData, bool) {
	boxes := s.Hurtboxes[h.StartFrame]
	for i := range boxes {
		if boxes[i].GlobalID == h.GlobalID {
			return &boxes[i], true
		}
	}
	return nil, false
}

func activeGlobalIDs(w donburi.World, owner netconfig.PlayerIndex) (hits, hurts map[uint32]bool) {
	hits = make(map[uint32]bool)
	hurts = make(map[uint32]bool)
	for e := range tags.Hitbox.Iter(w) {
		if h := components.Hitbox.Get(e); h.Owner == owner {
			hits[h.Def.GlobalID] = true
		}
	}
	for e := range tags.Hurtbox.Iter(w) {
		if h := components.Hurtbox.Get(e); h.Owner == owner {
			hurts[h.Def.GlobalID] = true
		}
	}
	return hits, hurts
}

func expireBoxes(w donburi.World, owner netconfig.PlayerIndex, frame uint16) {
	var expired []donburi.Entity

	for e := range tags.Hitbox.Iter(w) {
		h := components.Hitbox.Get(e)
		if h.Owner == owner && hitboxExpired(h.Def, frame) {
			expired = append(expired, e.Entity())
		}
	}
	for e := range tags.Hurtbox.Iter(w) {
		h := components.Hurtbox.Get(e)
		if h.Owner == owner && h.Def.HasEndFrame && frame > h.Def.EndFrame {
			expired = append(expired, e.Entity())
		}
	}

	for _, entity := range expired {
		w.Remove(entity)
	}
}

// hitboxExpired reports whether def is past its window on frame. A hitbox
// spanning only frame 0 belongs to the whole state and lasts until exit.
func hitboxExpired(def *statedata.HitboxData, frame uint16) bool {
	if def.StartFrame == 0 && def.EndFrame == 0 {
		return false
	}
	return frame > def.EndFrame
}

// DeactivateBoxes removes every box owned by owner.
func DeactivateBoxes(w donburi.World, owner netconfig.PlayerIndex) {
	var owned []donburi.Entity
	for e := range tags.Hitbox.Iter(w) {
		if components.Hitbox.Get(e).Owner == owner {
			owned = append(owned, e.Entity())
		}
	}
	for e := range tags.Hurtbox.Iter(w) {
		if components.Hurtbox.Get(e).Owner == owner {
			owned = append(owned, e.Entity())
		}
	}
	for _, entity := range owned {
		w.Remove(entity)
	}
}

// RefreshTransforms re-places every active box on its owner.
func RefreshTransforms(w donburi.World) {
	owners := make(map[netconfig.PlayerIndex]*components.FighterData)
	for _, e := range Fighters(w) {
		f := components.Fighter.Get(e)
		owners[f.Player] = f
	}

	for e := range tags.Hitbox.Iter(w) {
		h := components.Hitbox.Get(e)
		owner, ok := owners[h.Owner]
		if !ok {
			violate(h.Owner, "hitbox %d has no owner fighter", h.Def.GlobalID)
		}
		components.Transform.Get(e).Capsule = factory.PlaceShape(owner, h.Def.Shape)
	}
	for e := range tags.Hurtbox.Iter(w) {
		h := components.Hurtbox.Get(e)
		owner, ok := owners[h.Owner]
		if !ok {
			violate(h.Owner, "hurtbox %d has no owner fighter", h.Def.GlobalID)
		}
		components.Transform.Get(e).Capsule = factory.PlaceShape(owner, h.Def.Shape)
	}
}

// ActiveBox identifies one active box for inspection and snapshots.
type ActiveBox struct {
	Owner     netconfig.PlayerIndex
	Kind      BoxKind
	GlobalID  uint32
	HitOwners netconfig.OwnerSet
}

type BoxKind uint8

const (
	KindHitbox BoxKind = iota + 1
	KindHurtbox
)

func (k BoxKind) String() string {
	switch k {
	case KindHitbox:
		return "hitbox"
	case KindHurtbox:
		return "hurtbox"
	default:
		return "unknown"
	}
}

// ActiveBoxes lists every active box ordered by owner, kind and global id.
func ActiveBoxes(w donburi.World) []ActiveBox {
	var out []ActiveBox
	for e := range tags.Hitbox.Iter(w) {
		h := components.Hitbox.Get(e)
		out = append(out, ActiveBox{Owner: h.Owner, Kind: KindHitbox, GlobalID: h.Def.GlobalID, HitOwners: h.HitOwners})
	}
	for e := range tags.Hurtbox.Iter(w) {
		h := components.Hurtbox.Get(e)
		out = append(out, ActiveBox{Owner: h.Owner, Kind: KindHurtbox, GlobalID: h.Def.GlobalID})
	}
	slices.SortFunc(out, func(a, b ActiveBox) int {
		return cmp.Or(
			cmp.Compare(a.Owner, b.Owner),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.GlobalID, b.GlobalID),
		)
	})
	return out
}
