package physics

import (
	"math"

	"github.com/zeusync/torophy/pkg/toroidal"
	"github.com/zeusync/torophy/pkg/vector"
)

// epsilon is float64 machine epsilon; centers closer than this are coincident.
const epsilon = 0x1p-52

// CollisionInfo describes a penetration: Normal points from the second body
// toward the first along the shortest toroidal separation.
type CollisionInfo struct {
	Normal  vector.Vec2
	Overlap float64
}

// CollisionResolver is the narrow phase for one toroidal space.
type CollisionResolver struct {
	bounds toroidal.Bounds
}

func NewCollisionResolver(bounds toroidal.Bounds) CollisionResolver {
	return CollisionResolver{bounds: bounds}
}

// Test checks two placed shapes for contact. Every kind pair is listed.
func (r CollisionResolver) Test(p1 vector.Vec2, s1 Shape, p2 vector.Vec2, s2 Shape) (CollisionInfo, bool) {
	switch s1.kind {
	case ShapeNone:
		return CollisionInfo{}, false
	case ShapeCircle:
		switch s2.kind {
		case ShapeNone:
			return CollisionInfo{}, false
		case ShapeCircle:
			return r.testCircleCircle(p1, s1.radius, p2, s2.radius)
		}
	}
	return CollisionInfo{}, false
}

// TestBodies is Test on the bodies' current positions and shapes.
func (r CollisionResolver) TestBodies(b1, b2 *Body) (CollisionInfo, bool) {
	return r.Test(b1.position, b1.shape, b2.position, b2.shape)
}

func (r CollisionResolver) testCircleCircle(p1 vector.Vec2, r1 float64, p2 vector.Vec2, r2 float64) (CollisionInfo, bool) {
	// positions may be unwrapped mid-step; canonicalize so the difference stays within one period
	distance := r.bounds.Distance(r.bounds.Position(p1).Sub(r.bounds.Position(p2)))
	collisionLength := r1 + r2
	squared := distance.SquareLength()
	if squared >= collisionLength*collisionLength {
		return CollisionInfo{}, false
	}

	length := math.Sqrt(squared)
	normal := vector.Zero()
	if length > epsilon {
		normal = distance.DivScalar(length)
	}
	return CollisionInfo{
		Normal:  normal,
		Overlap: collisionLength - length,
	}, true
}
