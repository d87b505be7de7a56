package toroidal

import "github.com/zeusync/torophy/pkg/vector"

// AABB is an axis-aligned bounding box. Top is the smaller y.
type AABB struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

func NewAABB(center, halfSize vector.Vec2) AABB {
	return AABB{
		Left:   center.X - halfSize.X,
		Right:  center.X + halfSize.X,
		Top:    center.Y - halfSize.Y,
		Bottom: center.Y + halfSize.Y,
	}
}

func AABBFromBounds(left, right, top, bottom float64) AABB {
	return AABB{Left: left, Right: right, Top: top, Bottom: bottom}
}

func (a AABB) Position() vector.Vec2 {
	return vector.XY((a.Right+a.Left)/2, (a.Bottom+a.Top)/2)
}

func (a AABB) HalfDimension() vector.Vec2 {
	return vector.XY((a.Right-a.Left)/2, (a.Bottom-a.Top)/2)
}

func (a AABB) Dimension() vector.Vec2 {
	return vector.XY(a.Right-a.Left, a.Bottom-a.Top)
}

// Overlaps tests two unwrapped boxes for intersection in the toroidal space
// described by bounds, comparing centers along the shortest separation.
func (a AABB) Overlaps(o AABB, bounds Bounds) bool {
	d := bounds.Distance(a.Position().Sub(o.Position()))
	ha, ho := a.HalfDimension(), o.HalfDimension()
	return abs(d.X) <= ha.X+ho.X && abs(d.Y) <= ha.Y+ho.Y
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
