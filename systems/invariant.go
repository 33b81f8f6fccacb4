package systems

import (
	"fmt"

	"github.com/automoto/fightcore/shared/netconfig"
)

// InvariantViolation is raised with panic when the simulation reaches a state
// that a validated table and a well-formed world cannot produce. It signals a
// programming error in the caller, not bad input.
type InvariantViolation struct {
	Player netconfig.PlayerIndex
	Reason string
}

func (v *InvariantViolation) Error() string {
	if v.Player.Valid() {
		return fmt.Sprintf("invariant violation (%s): %s", v.Player, v.Reason)
	}
	return "invariant violation: " + v.Reason
}

// IsInvariantViolation reports whether a value recovered from a panic is an
// invariant violation.
func IsInvariantViolation(recovered any) (*InvariantViolation, bool) {
	v, ok := recovered.(*InvariantViolation)
	return v, ok
}

func violate(p netconfig.PlayerIndex, format string, args ...any) {
	panic(&InvariantViolation{Player: p, Reason: fmt.Sprintf(format, args...)})
}
