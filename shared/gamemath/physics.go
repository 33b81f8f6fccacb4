package gamemath

// ClampFloat clamps v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaturatingSub subtracts amount from value, flooring at zero.
func SaturatingSub(value, amount uint32) uint32 {
	if amount >= value {
		return 0
	}
	return value - amount
}

// SaturatingInc increments a state-local frame counter. The counter never
// wraps and never reads zero after an increment.
func SaturatingInc(frame uint16) uint16 {
	if frame == ^uint16(0) {
		return frame
	}
	frame++
	if frame == 0 {
		return 1
	}
	return frame
}
