package messages

import "github.com/automoto/fightcore/shared/netconfig"

// PlayerInput is one player's controller state for one simulated frame.
type PlayerInput struct {
	Frame  uint32
	Player netconfig.PlayerIndex
	Mask   netconfig.InputMask
}

// FrameInputs holds both players' masks for one step, indexed by
// PlayerIndex.Slot().
type FrameInputs [2]netconfig.InputMask

// For returns the mask submitted by p.
func (f FrameInputs) For(p netconfig.PlayerIndex) netconfig.InputMask {
	return f[p.Slot()]
}

// With returns a copy of f with p's mask replaced.
func (f FrameInputs) With(p netconfig.PlayerIndex, mask netconfig.InputMask) FrameInputs {
	f[p.Slot()] = mask
	return f
}
