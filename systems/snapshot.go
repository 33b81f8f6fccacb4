package systems

import (
	"fmt"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/automoto/fightcore/tags"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// FighterSnapshot is everything about a fighter that a step can change.
type FighterSnapshot struct {
	Player netconfig.PlayerIndex `codec:"p"`
	State  netconfig.StateID     `codec:"s"`
	Frame  uint16                `codec:"f"`
	Health uint32                `codec:"h"`
	Facing netconfig.Facing      `codec:"d"`
	X      float64               `codec:"x"`
	Y      float64               `codec:"y"`
	Inputs []netconfig.InputMask `codec:"i"`
}

type BoxSnapshot struct {
	Owner     netconfig.PlayerIndex `codec:"o"`
	Kind      BoxKind               `codec:"k"`
	GlobalID  uint32                `codec:"g"`
	HitOwners netconfig.OwnerSet    `codec:"h"`
}

// WorldSnapshot captures a world between two steps. Fighters are ordered by
// player and boxes by owner, kind and global id, so equal worlds encode to
// equal bytes.
type WorldSnapshot struct {
	Frame    uint32            `codec:"frame"`
	Fighters []FighterSnapshot `codec:"fighters"`
	Boxes    []BoxSnapshot     `codec:"boxes"`
}

var snapshotHandle = func() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.Canonical = true
	return h
}()

// CaptureWorld reads the current simulation state out of w.
func CaptureWorld(w donburi.World) WorldSnapshot {
	snap := WorldSnapshot{Frame: StepOf(w).Frame}
	for _, e := range Fighters(w) {
		f := components.Fighter.Get(e)
		st := components.State.Get(e)
		hp := components.Health.Get(e)
		in := components.Input.Get(e)
		snap.Fighters = append(snap.Fighters, FighterSnapshot{
			Player: f.Player,
			State:  st.Current,
			Frame:  st.Frame,
			Health: hp.Current,
			Facing: f.Facing,
			X:      f.Position.X,
			Y:      f.Position.Y,
			Inputs: in.Buffer.Contents(),
		})
	}
	for _, b := range ActiveBoxes(w) {
		snap.Boxes = append(snap.Boxes, BoxSnapshot{
			Owner:     b.Owner,
			Kind:      b.Kind,
			GlobalID:  b.GlobalID,
			HitOwners: b.HitOwners,
		})
	}
	return snap
}

// RestoreWorld puts w back into the state described by snap. The snapshot is
// checked against the fighters' tables first; on error w is left untouched.
func RestoreWorld(ecs *ecs.ECS, snap WorldSnapshot) error {
	w := ecs.World
	fighters := Fighters(w)
	if len(snap.Fighters) != len(fighters) {
		return fmt.Errorf("snapshot has %d fighters, world has %d", len(snap.Fighters), len(fighters))
	}

	byPlayer := make(map[netconfig.PlayerIndex]*donburi.Entry, len(fighters))
	for i, e := range fighters {
		f := components.Fighter.Get(e)
		fs := snap.Fighters[i]
		if fs.Player != f.Player {
			return fmt.Errorf("snapshot fighter %d is %s, world has %s", i, fs.Player, f.Player)
		}
		table := components.State.Get(e).Table
		if _, ok := table.Lookup(fs.State); !ok {
			return fmt.Errorf("%s: state %d is not in table %s", fs.Player, fs.State, table)
		}
		byPlayer[f.Player] = e
	}
	for _, b := range snap.Boxes {
		e, ok := byPlayer[b.Owner]
		if !ok {
			return fmt.Errorf("box %d owned by unknown player %s", b.GlobalID, b.Owner)
		}
		table := components.State.Get(e).Table
		switch b.Kind {
		case KindHitbox:
			if _, ok := table.Hitbox(b.GlobalID); !ok {
				return fmt.Errorf("%s: unknown hitbox %d", b.Owner, b.GlobalID)
			}
		case KindHurtbox:
			if _, ok := table.Hurtbox(b.GlobalID); !ok {
				return fmt.Errorf("%s: unknown hurtbox %d", b.Owner, b.GlobalID)
			}
		default:
			return fmt.Errorf("%s: box %d has unknown kind %d", b.Owner, b.GlobalID, b.Kind)
		}
	}

	StepOf(w).Frame = snap.Frame
	StepOf(w).Hits = nil
	for i, e := range fighters {
		fs := snap.Fighters[i]
		f := components.Fighter.Get(e)
		f.Facing = fs.Facing
		f.Position = math.Vec2{X: fs.X, Y: fs.Y}

		st := components.State.Get(e)
		st.Current = fs.State
		st.Frame = fs.Frame

		components.Health.Get(e).Current = fs.Health

		in := components.Input.Get(e)
		in.Buffer.Restore(fs.Inputs)
		in.Submitted = 0
	}

	removeAllBoxes(w)
	for _, b := range snap.Boxes {
		e := byPlayer[b.Owner]
		f := components.Fighter.Get(e)
		table := components.State.Get(e).Table
		if b.Kind == KindHitbox {
			def, _ := table.Hitbox(b.GlobalID)
			factory.CreateHitbox(ecs, f, def, b.HitOwners)
		} else {
			def, _ := table.Hurtbox(b.GlobalID)
			factory.CreateHurtbox(ecs, f, def)
		}
	}
	return nil
}

func removeAllBoxes(w donburi.World) {
	var boxes []donburi.Entity
	for e := range tags.Hitbox.Iter(w) {
		boxes = append(boxes, e.Entity())
	}
	for e := range tags.Hurtbox.Iter(w) {
		boxes = append(boxes, e.Entity())
	}
	for _, entity := range boxes {
		w.Remove(entity)
	}
}

// EncodeSnapshot serialises snap as canonical msgpack.
func EncodeSnapshot(snap WorldSnapshot) ([]byte, error) {
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, snapshotHandle).Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf, nil
}

func DecodeSnapshot(data []byte) (WorldSnapshot, error) {
	var snap WorldSnapshot
	if len(data) == 0 {
		return snap, fmt.Errorf("decode snapshot: empty data")
	}
	if err := codec.NewDecoderBytes(data, snapshotHandle).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
