// Package netconfig defines lightweight types shared between the simulation
// core, the definition loader and the rollback layer. It must have zero
// dependencies on any rendering or transport library so snapshot blobs stay
// headless.
package netconfig

import (
	"fmt"
	"math/bits"
	"strings"
)

// StateID identifies an entry in a fighter's state table.
type StateID uint16

// NeutralState is the idle state every fighter falls back to when a timed
// state runs out.
const NeutralState StateID = 0

// InputMask is one frame of raw controller input.
type InputMask uint16

const (
	ButtonA InputMask = 1 << iota
	ButtonB
	ButtonC
	ButtonD
	ButtonE
	ButtonF
	Left
	Right
	Up
	Down
)

const (
	ButtonMask    = ButtonA | ButtonB | ButtonC | ButtonD | ButtonE | ButtonF
	DirectionMask = Left | Right | Up | Down
	// ReservedMask covers bits 10-15, which are always zero on the wire.
	ReservedMask = ^(ButtonMask | DirectionMask)
)

var inputNames = map[string]InputMask{
	"A":     ButtonA,
	"B":     ButtonB,
	"C":     ButtonC,
	"D":     ButtonD,
	"E":     ButtonE,
	"F":     ButtonF,
	"LP":    ButtonA,
	"MP":    ButtonB,
	"HP":    ButtonC,
	"LK":    ButtonD,
	"MK":    ButtonE,
	"HK":    ButtonF,
	"LEFT":  Left,
	"RIGHT": Right,
	"UP":    Up,
	"DOWN":  Down,
}

// orderedInputNames is used by String so formatting never depends on map order.
var orderedInputNames = []struct {
	name string
	bit  InputMask
}{
	{"A", ButtonA}, {"B", ButtonB}, {"C", ButtonC}, {"D", ButtonD}, {"E", ButtonE}, {"F", ButtonF},
	{"LEFT", Left}, {"RIGHT", Right}, {"UP", Up}, {"DOWN", Down},
}

// ParseInputMask combines named inputs ("RIGHT", "LP", "A", ...) into a mask.
// Names are case-insensitive.
func ParseInputMask(names []string) (InputMask, error) {
	var mask InputMask
	for _, n := range names {
		bit, ok := inputNames[strings.ToUpper(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown input %q", n)
		}
		mask |= bit
	}
	return mask, nil
}

// Sanitize clears the reserved bits.
func (m InputMask) Sanitize() InputMask {
	return m &^ ReservedMask
}

// Has reports whether every bit of other is set in m.
func (m InputMask) Has(other InputMask) bool {
	return m&other == other
}

func (m InputMask) String() string {
	if m == 0 {
		return "NONE"
	}
	parts := make([]string, 0, bits.OnesCount16(uint16(m)))
	for _, in := range orderedInputNames {
		if m&in.bit != 0 {
			parts = append(parts, in.name)
		}
	}
	if m&ReservedMask != 0 {
		parts = append(parts, fmt.Sprintf("0x%04x", uint16(m&ReservedMask)))
	}
	return strings.Join(parts, "+")
}

// PlayerIndex identifies the owning player of a fighter and its boxes.
type PlayerIndex uint8

const (
	Player1 PlayerIndex = 1
	Player2 PlayerIndex = 2
)

// Players lists every player index in simulation order.
var Players = [2]PlayerIndex{Player1, Player2}

func (p PlayerIndex) Valid() bool {
	return p == Player1 || p == Player2
}

// Slot converts the index to a zero-based array slot.
func (p PlayerIndex) Slot() int {
	return int(p) - 1
}

func (p PlayerIndex) String() string {
	return fmt.Sprintf("P%d", uint8(p))
}

// Facing is the horizontal direction a fighter looks at.
type Facing uint8

const (
	FacingRight Facing = iota
	FacingLeft
)

// Sign is the multiplier applied to horizontal offsets.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func (f Facing) Flip() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// OwnerSet is a small bit-set of player indices, used to remember which
// owners a hitbox has already connected with.
type OwnerSet uint8

func (s OwnerSet) Has(p PlayerIndex) bool {
	return s&(1<<p) != 0
}

func (s OwnerSet) Add(p PlayerIndex) OwnerSet {
	return s | 1<<p
}

func (s OwnerSet) Len() int {
	return bits.OnesCount8(uint8(s))
}
