package toroidal

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/torophy/pkg/vector"
)

var ErrInvalidBounds = errors.New("toroidal bounds must have positive width and height")

// MinDistance computes the shortest signed distance equivalent to distance
// in a periodic space of the given length. The result never exceeds length/2
// in magnitude; distances beyond a full period are clamped to the half length.
func MinDistance(distance float64, length uint32) float64 {
	l := float64(length)
	half := l / 2
	switch {
	case distance > half:
		if distance <= l {
			return distance - l
		}
		return half
	case distance < -half:
		if distance >= -l {
			return distance + l
		}
		return -half
	default:
		return distance
	}
}

// MinCoordinate maps any coordinate to its canonical representation in [0, length).
func MinCoordinate(coordinate float64, length uint32) float64 {
	l := float64(length)
	if coordinate >= 0 {
		return math.Mod(coordinate, l)
	}
	c := l - math.Mod(-coordinate, l)
	if c >= l {
		// exact multiples, or a remainder lost to rounding
		return 0
	}
	return c
}

// Bounds is the extent of a 2D toroidal space.
type Bounds struct {
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
}

func NewBounds(width, height uint32) (Bounds, error) {
	if width == 0 || height == 0 {
		return Bounds{}, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, width, height)
	}
	return Bounds{Width: width, Height: height}, nil
}

// Distance is MinDistance applied per axis.
func (b Bounds) Distance(distance vector.Vec2) vector.Vec2 {
	return vector.XY(
		MinDistance(distance.X, b.Width),
		MinDistance(distance.Y, b.Height),
	)
}

// Position is MinCoordinate applied per axis.
func (b Bounds) Position(position vector.Vec2) vector.Vec2 {
	return vector.XY(
		MinCoordinate(position.X, b.Width),
		MinCoordinate(position.Y, b.Height),
	)
}

// WrapAABB wraps every edge of box independently. The result may straddle
// the domain edge, in which case Left > Right or Top > Bottom.
func (b Bounds) WrapAABB(box AABB) AABB {
	return AABBFromBounds(
		MinCoordinate(box.Left, b.Width),
		MinCoordinate(box.Right, b.Width),
		MinCoordinate(box.Top, b.Height),
		MinCoordinate(box.Bottom, b.Height),
	)
}

func (b Bounds) Dimension() vector.Vec2 {
	return vector.XY(float64(b.Width), float64(b.Height))
}

// Contains reports whether p is already canonical.
func (b Bounds) Contains(p vector.Vec2) bool {
	return p.X >= 0 && p.X < float64(b.Width) && p.Y >= 0 && p.Y < float64(b.Height)
}
