package inputbuf

import (
	"slices"
	"testing"

	nc "github.com/automoto/fightcore/shared/netconfig"
)

func collect(r *Ring) []nc.InputMask {
	var out []nc.InputMask
	for m := range r.Iterate() {
		out = append(out, m)
	}
	return out
}

func TestRingKeepsLastNNewestFirst(t *testing.T) {
	const capacity = 4
	for extra := 0; extra <= 9; extra++ {
		r := NewRing(capacity)
		total := capacity + extra
		for v := 1; v <= total; v++ {
			r.Push(nc.InputMask(v))
		}

		got := collect(r)
		if len(got) != capacity {
			t.Fatalf("extra=%d: expected %d items, got %d", extra, capacity, len(got))
		}
		for i, m := range got {
			if want := nc.InputMask(total - i); m != want {
				t.Fatalf("extra=%d: item %d expected %d, got %d", extra, i, want, m)
			}
		}
	}
}

func TestRingPartialFill(t *testing.T) {
	r := NewRing(DefaultCapacity)
	if _, ok := r.Last(); ok {
		t.Fatalf("empty ring should have no last value")
	}
	if got := collect(r); len(got) != 0 {
		t.Fatalf("empty ring should iterate nothing, got %v", got)
	}

	r.Push(nc.Left)
	r.Push(nc.Right)
	if last, ok := r.Last(); !ok || last != nc.Right {
		t.Fatalf("expected last RIGHT, got %v ok=%v", last, ok)
	}
	if got, want := collect(r), []nc.InputMask{nc.Right, nc.Left}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRingIterateStopsEarly(t *testing.T) {
	r := NewRing(3)
	for i := 0; i < 10; i++ {
		r.Push(nc.ButtonA)
	}
	n := 0
	for range r.Iterate() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected early break after 2 items, got %d", n)
	}
}

func TestRingContentsRestore(t *testing.T) {
	r := NewRing(3)
	for _, m := range []nc.InputMask{nc.Up, nc.Down, nc.Left, nc.Right} {
		r.Push(m)
	}
	contents := r.Contents()
	if want := []nc.InputMask{nc.Down, nc.Left, nc.Right}; !slices.Equal(contents, want) {
		t.Fatalf("expected oldest-first %v, got %v", want, contents)
	}

	other := NewRing(3)
	other.Push(nc.ButtonF)
	other.Restore(contents)
	if !slices.Equal(collect(other), collect(r)) {
		t.Fatalf("restored ring differs: %v vs %v", collect(other), collect(r))
	}
}

func TestNewRingMinimumCapacity(t *testing.T) {
	r := NewRing(0)
	if r.Cap() != 1 {
		t.Fatalf("expected capacity 1, got %d", r.Cap())
	}
	r.Push(nc.Up)
	r.Push(nc.Down)
	if got := collect(r); !slices.Equal(got, []nc.InputMask{nc.Down}) {
		t.Fatalf("expected only newest, got %v", got)
	}
}
