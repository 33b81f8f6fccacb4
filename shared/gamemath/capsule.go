package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Capsule is a 2D capsule: a segment of length 2*HalfHeight centred on
// Center, swept by Radius. Rotation is in radians; zero keeps the segment
// vertical.
type Capsule struct {
	Center     dmath.Vec2
	Radius     float64
	HalfHeight float64
	Rotation   float64
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b AABB) W() float64 { return b.MaxX - b.MinX }
func (b AABB) H() float64 { return b.MaxY - b.MinY }

// Union grows b to contain o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// PlaceCapsule positions a locally defined capsule on its owner. The
// horizontal offset and the rotation are mirrored by facingSign (+1 or -1).
func PlaceCapsule(origin, offset dmath.Vec2, radius, halfHeight, rotation, facingSign float64) Capsule {
	return Capsule{
		Center: dmath.Vec2{
			X: origin.X + offset.X*facingSign,
			Y: origin.Y + offset.Y,
		},
		Radius:     radius,
		HalfHeight: halfHeight,
		Rotation:   rotation * facingSign,
	}
}

// Segment returns the end points of the capsule's core segment.
func (c Capsule) Segment() (dmath.Vec2, dmath.Vec2) {
	dx := math.Sin(c.Rotation) * c.HalfHeight
	dy := math.Cos(c.Rotation) * c.HalfHeight
	return dmath.Vec2{X: c.Center.X - dx, Y: c.Center.Y - dy},
		dmath.Vec2{X: c.Center.X + dx, Y: c.Center.Y + dy}
}

// Bounds returns the capsule's bounding box.
func (c Capsule) Bounds() AABB {
	a, b := c.Segment()
	return AABB{
		MinX: math.Min(a.X, b.X) - c.Radius,
		MinY: math.Min(a.Y, b.Y) - c.Radius,
		MaxX: math.Max(a.X, b.X) + c.Radius,
		MaxY: math.Max(a.Y, b.Y) + c.Radius,
	}
}

// Intersects reports whether two capsules overlap. Touching counts.
func (c Capsule) Intersects(o Capsule) bool {
	a0, a1 := c.Segment()
	b0, b1 := o.Segment()
	r := c.Radius + o.Radius
	return segmentDistanceSq(a0, a1, b0, b1) <= r*r
}

func sub(a, b dmath.Vec2) dmath.Vec2 { return dmath.Vec2{X: a.X - b.X, Y: a.Y - b.Y} }
func dot(a, b dmath.Vec2) float64    { return a.X*b.X + a.Y*b.Y }
func cross(a, b dmath.Vec2) float64  { return a.X*b.Y - a.Y*b.X }

// segmentDistanceSq is the squared distance between segments p0p1 and q0q1.
func segmentDistanceSq(p0, p1, q0, q1 dmath.Vec2) float64 {
	if segmentsCross(p0, p1, q0, q1) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistanceSq(p0, q0, q1), pointSegmentDistanceSq(p1, q0, q1)),
		math.Min(pointSegmentDistanceSq(q0, p0, p1), pointSegmentDistanceSq(q1, p0, p1)),
	)
}

func pointSegmentDistanceSq(p, a, b dmath.Vec2) float64 {
	ab := sub(b, a)
	ap := sub(p, a)
	lenSq := dot(ab, ab)
	t := 0.0
	if lenSq > 0 {
		t = ClampFloat(dot(ap, ab)/lenSq, 0, 1)
	}
	d := dmath.Vec2{X: ap.X - ab.X*t, Y: ap.Y - ab.Y*t}
	return dot(d, d)
}

// segmentsCross reports a proper crossing of the two segments. Collinear and
// touching configurations are covered by the end point distances.
func segmentsCross(p0, p1, q0, q1 dmath.Vec2) bool {
	r := sub(p1, p0)
	s := sub(q1, q0)
	d1 := cross(r, sub(q0, p0))
	d2 := cross(r, sub(q1, p0))
	d3 := cross(s, sub(p0, q0))
	d4 := cross(s, sub(p1, q0))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
