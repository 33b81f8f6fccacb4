package statedata

import (
	"github.com/automoto/fightcore/shared/inputbuf"
	"github.com/automoto/fightcore/shared/netconfig"
	"github.com/yohamta/donburi/features/math"
)

// ModifierKind enumerates the behaviour tags a state can carry. The set is
// closed: collaborators switch over Kind and read the matching payload.
type ModifierKind uint8

const (
	ModMovement ModifierKind = iota + 1
	ModInputTransition
	ModAdjustFacing
	ModCreateObject
)

var modifierKindNames = map[string]ModifierKind{
	"movement":         ModMovement,
	"input_transition": ModInputTransition,
	"adjust_facing":    ModAdjustFacing,
	"create_object":    ModCreateObject,
}

func (k ModifierKind) String() string {
	switch k {
	case ModMovement:
		return "movement"
	case ModInputTransition:
		return "input_transition"
	case ModAdjustFacing:
		return "adjust_facing"
	case ModCreateObject:
		return "create_object"
	default:
		return "unknown"
	}
}

// Modifier is a tagged variant; exactly the payload named by Kind is set.
type Modifier struct {
	Kind            ModifierKind
	Movement        *MovementModifier
	InputTransition *InputTransitionModifier
	AdjustFacing    *AdjustFacingModifier
	CreateObject    *CreateObjectModifier
}

// MovementModifier moves the fighter by Velocity per frame, mirrored by facing.
type MovementModifier struct {
	Velocity math.Vec2
}

// InputTransitionModifier is a transition owned by a collaborator rather than
// by the core state machine (for example a release-triggered cancel).
type InputTransitionModifier struct {
	Command inputbuf.Command
	Target  netconfig.StateID
}

// AdjustFacingModifier turns the fighter towards the opponent on Frame.
type AdjustFacingModifier struct {
	Frame uint16
}

// CreateObjectModifier spawns a named object on Frame at Offset.
type CreateObjectModifier struct {
	Object string
	Frame  uint16
	Offset math.Vec2
}

// payloadMatches reports whether exactly the payload for Kind is present.
func (m Modifier) payloadMatches() bool {
	set := 0
	for _, p := range []bool{m.Movement != nil, m.InputTransition != nil, m.AdjustFacing != nil, m.CreateObject != nil} {
		if p {
			set++
		}
	}
	if set != 1 {
		return false
	}
	switch m.Kind {
	case ModMovement:
		return m.Movement != nil
	case ModInputTransition:
		return m.InputTransition != nil
	case ModAdjustFacing:
		return m.AdjustFacing != nil
	case ModCreateObject:
		return m.CreateObject != nil
	}
	return false
}
