package inputbuf

import "github.com/automoto/fightcore/shared/netconfig"

// Expr matches one frame: every bit of With must be held and every bit of
// Without must be released.
type Expr struct {
	With    netconfig.InputMask
	Without netconfig.InputMask
}

func (e Expr) Matches(frame netconfig.InputMask) bool {
	return frame&e.With == e.With && frame&e.Without == 0
}

// Command is an ordered input sequence that has to appear within the last
// Window frames. Exprs are listed newest first: Exprs[0] is looked for from
// the most recent frame, each following expression in older frames.
type Command struct {
	Exprs  []Expr
	Window int
}

// Match walks the ring from newest to oldest and satisfies the expressions
// in order. Frames between two satisfied expressions are skipped, so the
// sequence is a subsequence match. Only the Window newest frames may be
// examined.
func (c Command) Match(r *Ring) bool {
	if len(c.Exprs) == 0 || r == nil {
		return false
	}

	age := 0
	for _, e := range c.Exprs {
		for {
			if age >= c.Window {
				return false
			}
			frame, ok := r.At(age)
			if !ok {
				return false
			}
			age++
			if e.Matches(frame) {
				break
			}
		}
	}
	return true
}
