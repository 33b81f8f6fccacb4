package statedata

import (
	"fmt"

	"github.com/automoto/fightcore/shared/inputbuf"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi/features/math"
)

// FighterSpec is the on-disk definition of a fighter.
type FighterSpec struct {
	Name   string      `yaml:"name"`
	Health uint32      `yaml:"health"`
	States []StateSpec `yaml:"states"`
}

type StateSpec struct {
	ID          *uint16          `yaml:"id"`
	Name        string           `yaml:"name"`
	Duration    *uint16          `yaml:"duration"`
	Damage      uint32           `yaml:"damage"`
	Hitboxes    []HitboxSpec     `yaml:"hitboxes"`
	Hurtboxes   []HurtboxSpec    `yaml:"hurtboxes"`
	Transitions []TransitionSpec `yaml:"transitions"`
	Modifiers   []ModifierSpec   `yaml:"modifiers"`
}

type HitboxSpec struct {
	ID            uint32     `yaml:"id"`
	Bone          string     `yaml:"bone"`
	Priority      int32      `yaml:"priority"`
	Radius        float64    `yaml:"radius"`
	HalfHeight    float64    `yaml:"half_height"`
	Offset        []float64  `yaml:"offset"`
	Rotation      float64    `yaml:"rotation"`
	Damage        *uint32    `yaml:"damage"`
	OnHit         EffectSpec `yaml:"on_hit"`
	OnAirHit      EffectSpec `yaml:"on_air_hit"`
	Blockstun     uint16     `yaml:"blockstun"`
	Start         uint16     `yaml:"start"`
	End           *uint16    `yaml:"end"`
	RehitCooldown *uint16    `yaml:"rehit_cooldown"`
}

type HurtboxSpec struct {
	ID         uint32    `yaml:"id"`
	Bone       string    `yaml:"bone"`
	Radius     float64   `yaml:"radius"`
	HalfHeight float64   `yaml:"half_height"`
	Offset     []float64 `yaml:"offset"`
	Rotation   float64   `yaml:"rotation"`
	Start      uint16    `yaml:"start"`
	End        *uint16   `yaml:"end"`
}

type EffectSpec struct {
	Hitstun   uint16    `yaml:"hitstun"`
	Knockback []float64 `yaml:"knockback"`
	Launch    bool      `yaml:"launch"`
}

type InputSpec struct {
	With    []string `yaml:"with"`
	Without []string `yaml:"without"`
}

type TransitionSpec struct {
	To     *uint16     `yaml:"to"`
	Window int         `yaml:"window"`
	Inputs []InputSpec `yaml:"inputs"`
}

type ModifierSpec struct {
	Kind string `yaml:"kind"`

	// movement
	Velocity []float64 `yaml:"velocity"`
	// input_transition
	To     *uint16     `yaml:"to"`
	Window int         `yaml:"window"`
	Inputs []InputSpec `yaml:"inputs"`
	// adjust_facing, create_object
	Frame uint16 `yaml:"frame"`
	// create_object
	Object string    `yaml:"object"`
	Offset []float64 `yaml:"offset"`
}

// Build converts a parsed definition into a validated Table.
func Build(spec FighterSpec) (*Table, error) {
	v := &validator{fighter: spec.Name}
	if spec.Name == "" {
		v.add(nil, "name", "missing")
	}

	states := make([]*State, 0, len(spec.States))
	for i, ss := range spec.States {
		if ss.ID == nil {
			v.addf(nil, fmt.Sprintf("states[%d].id", i), "missing")
			continue
		}
		states = append(states, buildState(v, ss))
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return NewTable(spec.Name, spec.Health, states)
}

func buildState(v *validator, ss StateSpec) *State {
	s := &State{
		ID:        netconfig.StateID(*ss.ID),
		Name:      ss.Name,
		Damage:    ss.Damage,
		Hitboxes:  make(map[uint16][]HitboxData),
		Hurtboxes: make(map[uint16][]HurtboxData),
	}
	id := &s.ID

	if ss.Duration != nil {
		s.Duration = *ss.Duration
		s.HasDuration = true
	}

	for _, hs := range ss.Hitboxes {
		field := fmt.Sprintf("hitbox %d", hs.ID)
		h := HitboxData{
			ID:         hs.ID,
			Bone:       hs.Bone,
			Shape:      buildShape(v, id, field, hs.Radius, hs.HalfHeight, hs.Offset, hs.Rotation),
			StartFrame: hs.Start,
			Damage:     ss.Damage,
			Priority:   hs.Priority,
			OnHit:      buildEffect(v, id, field+".on_hit", hs.OnHit),
			OnAirHit:   buildEffect(v, id, field+".on_air_hit", hs.OnAirHit),
			Blockstun:  hs.Blockstun,
		}
		if hs.Damage != nil {
			h.Damage = *hs.Damage
		}
		if hs.End == nil {
			v.add(id, field, "end frame is required for hitboxes")
		} else {
			h.EndFrame = *hs.End
		}
		if hs.RehitCooldown != nil {
			h.RehitCooldown = *hs.RehitCooldown
			h.HasRehitCooldown = true
		}
		s.Hitboxes[h.StartFrame] = append(s.Hitboxes[h.StartFrame], h)
	}

	for _, hs := range ss.Hurtboxes {
		field := fmt.Sprintf("hurtbox %d", hs.ID)
		h := HurtboxData{
			ID:         hs.ID,
			Bone:       hs.Bone,
			Shape:      buildShape(v, id, field, hs.Radius, hs.HalfHeight, hs.Offset, hs.Rotation),
			StartFrame: hs.Start,
		}
		if hs.End != nil {
			h.EndFrame = *hs.End
			h.HasEndFrame = true
		}
		s.Hurtboxes[h.StartFrame] = append(s.Hurtboxes[h.StartFrame], h)
	}

	for i, ts := range ss.Transitions {
		field := fmt.Sprintf("transitions[%d]", i)
		if ts.To == nil {
			v.add(id, field, "missing target")
			continue
		}
		s.Transitions = append(s.Transitions, Transition{
			Command: buildCommand(v, id, field, ts.Window, ts.Inputs),
			Target:  netconfig.StateID(*ts.To),
		})
	}

	for i, ms := range ss.Modifiers {
		if m, ok := buildModifier(v, id, fmt.Sprintf("modifiers[%d]", i), ms); ok {
			s.Modifiers = append(s.Modifiers, m)
		}
	}
	return s
}

func buildShape(v *validator, id *netconfig.StateID, field string, radius, halfHeight float64, offset []float64, rotation float64) Shape {
	return Shape{
		Radius:     radius,
		HalfHeight: halfHeight,
		Offset:     buildVec(v, id, field+".offset", offset),
		Rotation:   rotation,
	}
}

func buildVec(v *validator, id *netconfig.StateID, field string, xy []float64) math.Vec2 {
	switch len(xy) {
	case 0:
		return math.Vec2{}
	case 2:
		return math.Vec2{X: xy[0], Y: xy[1]}
	default:
		v.addf(id, field, "expected [x, y], got %d values", len(xy))
		return math.Vec2{}
	}
}

func buildEffect(v *validator, id *netconfig.StateID, field string, es EffectSpec) Effect {
	return Effect{
		Hitstun:   es.Hitstun,
		Knockback: buildVec(v, id, field+".knockback", es.Knockback),
		Launch:    es.Launch,
	}
}

func buildCommand(v *validator, id *netconfig.StateID, field string, window int, inputs []InputSpec) inputbuf.Command {
	cmd := inputbuf.Command{Window: window}
	for j, in := range inputs {
		with, err := netconfig.ParseInputMask(in.With)
		if err != nil {
			v.addf(id, fmt.Sprintf("%s.inputs[%d].with", field, j), "%v", err)
		}
		without, err := netconfig.ParseInputMask(in.Without)
		if err != nil {
			v.addf(id, fmt.Sprintf("%s.inputs[%d].without", field, j), "%v", err)
		}
		if with&without != 0 {
			v.addf(id, fmt.Sprintf("%s.inputs[%d]", field, j), "%v both required and forbidden", with&without)
		}
		cmd.Exprs = append(cmd.Exprs, inputbuf.Expr{With: with, Without: without})
	}
	return cmd
}

func buildModifier(v *validator, id *netconfig.StateID, field string, ms ModifierSpec) (Modifier, bool) {
	kind, ok := modifierKindNames[ms.Kind]
	if !ok {
		v.addf(id, field, "unknown modifier kind %q", ms.Kind)
		return Modifier{}, false
	}

	m := Modifier{Kind: kind}
	switch kind {
	case ModMovement:
		if len(ms.Velocity) == 0 {
			v.add(id, field, "movement needs a velocity")
			return Modifier{}, false
		}
		m.Movement = &MovementModifier{Velocity: buildVec(v, id, field+".velocity", ms.Velocity)}
	case ModInputTransition:
		if ms.To == nil {
			v.add(id, field, "input_transition needs a target")
			return Modifier{}, false
		}
		m.InputTransition = &InputTransitionModifier{
			Command: buildCommand(v, id, field, ms.Window, ms.Inputs),
			Target:  netconfig.StateID(*ms.To),
		}
	case ModAdjustFacing:
		m.AdjustFacing = &AdjustFacingModifier{Frame: ms.Frame}
	case ModCreateObject:
		if ms.Object == "" {
			v.add(id, field, "create_object needs an object name")
			return Modifier{}, false
		}
		m.CreateObject = &CreateObjectModifier{
			Object: ms.Object,
			Frame:  ms.Frame,
			Offset: buildVec(v, id, field+".offset", ms.Offset),
		}
	}
	return m, true
}
