package statedata

import (
	"errors"
	"fmt"

	"github.com/automoto/fightcore/shared/netconfig"
)

// ConfigError is a load-time problem with a fighter definition. A table that
// produced one is never simulated.
type ConfigError struct {
	Fighter string
	State   *netconfig.StateID
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.State != nil {
		return fmt.Sprintf("fighter %q state %d: %s: %s", e.Fighter, *e.State, e.Field, e.Reason)
	}
	return fmt.Sprintf("fighter %q: %s: %s", e.Fighter, e.Field, e.Reason)
}

type validator struct {
	fighter string
	errs    []error
}

func (v *validator) add(state *netconfig.StateID, field, reason string) {
	var id *netconfig.StateID
	if state != nil {
		s := *state
		id = &s
	}
	v.errs = append(v.errs, &ConfigError{Fighter: v.fighter, State: id, Field: field, Reason: reason})
}

func (v *validator) addf(state *netconfig.StateID, field, format string, args ...any) {
	v.add(state, field, fmt.Sprintf(format, args...))
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}

func (v *validator) checkState(s *State, states map[netconfig.StateID]*State) {
	id := &s.ID

	if s.HasDuration && s.Duration == 0 {
		v.add(id, "duration", "must be at least 1 frame")
	}

	for i, tr := range s.Transitions {
		field := fmt.Sprintf("transitions[%d]", i)
		if _, ok := states[tr.Target]; !ok {
			v.addf(id, field, "target state %d does not exist", tr.Target)
		}
		if len(tr.Command.Exprs) == 0 {
			v.add(id, field, "no inputs")
		}
		if tr.Command.Window < 1 {
			v.add(id, field, "window must be at least 1")
		}
	}

	hitIDs := make(map[uint32]bool)
	for _, frame := range sortedFrames(s.Hitboxes) {
		for _, h := range s.Hitboxes[frame] {
			field := fmt.Sprintf("hitbox %d", h.ID)
			if hitIDs[h.ID] {
				v.add(id, field, "duplicate hitbox id")
			}
			hitIDs[h.ID] = true
			if h.StartFrame != frame {
				v.addf(id, field, "scheduled on frame %d but starts on %d", frame, h.StartFrame)
			}
			if h.EndFrame < h.StartFrame {
				v.addf(id, field, "end frame %d before start frame %d", h.EndFrame, h.StartFrame)
			}
			v.checkShape(id, field, h.Shape)
		}
	}

	hurtIDs := make(map[uint32]bool)
	for _, frame := range sortedFrames(s.Hurtboxes) {
		for _, h := range s.Hurtboxes[frame] {
			field := fmt.Sprintf("hurtbox %d", h.ID)
			if hurtIDs[h.ID] {
				v.add(id, field, "duplicate hurtbox id")
			}
			hurtIDs[h.ID] = true
			if h.StartFrame != frame {
				v.addf(id, field, "scheduled on frame %d but starts on %d", frame, h.StartFrame)
			}
			if h.HasEndFrame && h.EndFrame < h.StartFrame {
				v.addf(id, field, "end frame %d before start frame %d", h.EndFrame, h.StartFrame)
			}
			v.checkShape(id, field, h.Shape)
		}
	}

	for i, m := range s.Modifiers {
		field := fmt.Sprintf("modifiers[%d]", i)
		if !m.payloadMatches() {
			v.addf(id, field, "payload does not match kind %s", m.Kind)
			continue
		}
		if m.Kind == ModInputTransition {
			if _, ok := states[m.InputTransition.Target]; !ok {
				v.addf(id, field, "target state %d does not exist", m.InputTransition.Target)
			}
		}
	}
}

func (v *validator) checkShape(id *netconfig.StateID, field string, s Shape) {
	if s.Radius <= 0 {
		v.add(id, field, "radius must be positive")
	}
	if s.HalfHeight < 0 {
		v.add(id, field, "half height must not be negative")
	}
}
