package inputbuf

import (
	"testing"

	nc "github.com/automoto/fightcore/shared/netconfig"
)

// ringOf builds a ring whose newest-to-oldest contents equal frames.
func ringOf(frames ...nc.InputMask) *Ring {
	r := NewRing(DefaultCapacity)
	for i := len(frames) - 1; i >= 0; i-- {
		r.Push(frames[i])
	}
	return r
}

func TestCommandMatch(t *testing.T) {
	leftThenLP := []Expr{{With: nc.Left}, {With: nc.ButtonA}}

	cases := []struct {
		name   string
		frames []nc.InputMask // newest first
		cmd    Command
		want   bool
	}{
		{"in_order_within_window", []nc.InputMask{nc.Left, nc.Left, nc.ButtonA}, Command{leftThenLP, 5}, true},
		{"window_exceeded", []nc.InputMask{nc.ButtonA, nc.Left, nc.Left}, Command{leftThenLP, 1}, false},
		{"wrong_order", []nc.InputMask{nc.ButtonA, nc.Left}, Command{leftThenLP, 5}, false},
		{"gap_allowed", []nc.InputMask{nc.Left, 0, nc.Up, nc.ButtonA}, Command{leftThenLP, 5}, true},
		{"gap_beyond_window", []nc.InputMask{nc.Left, 0, nc.Up, nc.ButtonA}, Command{leftThenLP, 3}, false},
		{"buffer_exhausted", []nc.InputMask{nc.Left}, Command{leftThenLP, 5}, false},
		{"single_newest", []nc.InputMask{nc.Right}, Command{[]Expr{{With: nc.Right}}, 1}, true},
		{"with_superset_ok", []nc.InputMask{nc.Right | nc.ButtonB}, Command{[]Expr{{With: nc.Right}}, 1}, true},
		{"without_rejects", []nc.InputMask{nc.Right | nc.Down}, Command{[]Expr{{With: nc.Right, Without: nc.Down}}, 1}, false},
		{"without_only", []nc.InputMask{nc.ButtonA}, Command{[]Expr{{Without: nc.DirectionMask}}, 1}, true},
		{"same_frame_not_reused", []nc.InputMask{nc.Left | nc.ButtonA}, Command{leftThenLP, 5}, false},
		{"empty_command", []nc.InputMask{nc.Left}, Command{nil, 5}, false},
		{"empty_buffer", nil, Command{[]Expr{{}}, 5}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.cmd.Match(ringOf(c.frames...)); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestCommandMatchQuarterCircle(t *testing.T) {
	// Down, Down+Right, Right, then punch: newest first in the buffer.
	qcf := Command{
		Exprs: []Expr{
			{With: nc.ButtonA},
			{With: nc.Right, Without: nc.Down},
			{With: nc.Right | nc.Down},
			{With: nc.Down, Without: nc.Right},
		},
		Window: 8,
	}
	frames := []nc.InputMask{nc.ButtonA, nc.Right, nc.Right, nc.Right | nc.Down, nc.Down, nc.Down}
	if !qcf.Match(ringOf(frames...)) {
		t.Fatalf("expected quarter circle to match")
	}
	if qcf.Match(ringOf(nc.ButtonA, nc.Right, nc.Down)) {
		t.Fatalf("missing diagonal should not match")
	}
}
