package gamemath

import (
	"math"
	"testing"

	dmath "github.com/yohamta/donburi/features/math"
)

func TestCapsuleIntersects(t *testing.T) {
	upright := func(x, y, r, h float64) Capsule {
		return Capsule{Center: dmath.Vec2{X: x, Y: y}, Radius: r, HalfHeight: h}
	}

	cases := []struct {
		name string
		a, b Capsule
		want bool
	}{
		{"separate_horizontal", upright(0, 0, 1, 2), upright(3, 0, 1, 2), false},
		{"touching", upright(0, 0, 1, 2), upright(2, 0, 1, 2), true},
		{"overlapping", upright(0, 0, 1, 2), upright(1.5, 0, 1, 2), true},
		{"stacked_gap", upright(0, 0, 1, 2), upright(0, 7, 1, 2), false},
		{"stacked_end_caps", upright(0, 0, 1, 2), upright(0, 6, 1, 2), true},
		{"spheres", upright(0, 0, 1, 0), upright(1, 1, 1, 0), true},
		{
			"crossing_segments",
			Capsule{Center: dmath.Vec2{}, Radius: 0.1, HalfHeight: 5},
			Capsule{Center: dmath.Vec2{}, Radius: 0.1, HalfHeight: 5, Rotation: math.Pi / 2},
			true,
		},
		{
			"rotated_reaches",
			Capsule{Center: dmath.Vec2{}, Radius: 0.5, HalfHeight: 4, Rotation: math.Pi / 2},
			upright(4.9, 0, 0.5, 1),
			true,
		},
		{
			"rotated_misses",
			Capsule{Center: dmath.Vec2{}, Radius: 0.5, HalfHeight: 4, Rotation: math.Pi / 2},
			upright(5.1, 0, 0.5, 1),
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Fatalf("a∩b expected %v, got %v", c.want, got)
			}
			if got := c.b.Intersects(c.a); got != c.want {
				t.Fatalf("b∩a expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestPlaceCapsuleMirrorsOffset(t *testing.T) {
	origin := dmath.Vec2{X: 10, Y: 5}
	offset := dmath.Vec2{X: 3, Y: -1}

	right := PlaceCapsule(origin, offset, 1, 2, 0.25, 1)
	left := PlaceCapsule(origin, offset, 1, 2, 0.25, -1)

	if right.Center.X != 13 || left.Center.X != 7 {
		t.Fatalf("expected mirrored x 13/7, got %v/%v", right.Center.X, left.Center.X)
	}
	if right.Center.Y != 4 || left.Center.Y != 4 {
		t.Fatalf("vertical offset must not mirror, got %v/%v", right.Center.Y, left.Center.Y)
	}
	if right.Rotation != 0.25 || left.Rotation != -0.25 {
		t.Fatalf("rotation should mirror, got %v/%v", right.Rotation, left.Rotation)
	}
}

func TestCapsuleBounds(t *testing.T) {
	c := Capsule{Center: dmath.Vec2{X: 1, Y: 2}, Radius: 0.5, HalfHeight: 1}
	b := c.Bounds()
	if b.MinX != 0.5 || b.MaxX != 1.5 || b.MinY != 0.5 || b.MaxY != 3.5 {
		t.Fatalf("unexpected bounds %+v", b)
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	if got := SaturatingSub(10, 3); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := SaturatingSub(3, 10); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
	if got := SaturatingInc(0); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := SaturatingInc(math.MaxUint16); got != math.MaxUint16 {
		t.Fatalf("expected saturation, got %d", got)
	}
}
