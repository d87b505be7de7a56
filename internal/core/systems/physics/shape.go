package physics

import (
	"fmt"
	"math"

	"github.com/zeusync/torophy/pkg/vector"
)

// ShapeKind enumerates every shape the resolver knows how to test.
// Adding a kind means extending the switches in Shape and CollisionResolver.Test.
type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeNone:
		return "none"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("shape(%d)", uint8(k))
	}
}

// Shape is a closed tagged union over ShapeKind.
// The zero value is NoShape.
type Shape struct {
	kind   ShapeKind
	radius float64
}

// NoShape marks a body that never takes part in collisions.
func NoShape() Shape { return Shape{kind: ShapeNone} }

func Circle(radius float64) Shape { return Shape{kind: ShapeCircle, radius: radius} }

func (s Shape) Kind() ShapeKind { return s.kind }

// Radius returns the circle radius, ok is false for non-circles.
func (s Shape) Radius() (radius float64, ok bool) {
	if s.kind != ShapeCircle {
		return 0, false
	}
	return s.radius, true
}

// HalfSize returns the half extents of the shape's bounding box.
func (s Shape) HalfSize() (vector.Vec2, bool) {
	switch s.kind {
	case ShapeCircle:
		return vector.XY(s.radius, s.radius), true
	case ShapeNone:
		return vector.Zero(), false
	default:
		return vector.Zero(), false
	}
}

func (s Shape) Collidable() bool {
	_, ok := s.HalfSize()
	return ok
}

func (s Shape) Validate() error {
	switch s.kind {
	case ShapeNone:
		return nil
	case ShapeCircle:
		if !(s.radius > 0) || math.IsInf(s.radius, 0) {
			return fmt.Errorf("%w: circle radius %v", ErrInvalidShape, s.radius)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidShape, s.kind)
	}
}

func (s Shape) String() string {
	if s.kind == ShapeCircle {
		return fmt.Sprintf("circle(%g)", s.radius)
	}
	return s.kind.String()
}
