package physics

import (
	"fmt"
	"math"

	"github.com/zeusync/torophy/pkg/toroidal"
	"github.com/zeusync/torophy/pkg/vector"
)

// Body is a simulated point mass with an optional collision shape.
// Mass is stored inverted so that an immovable body has inverse mass 0.
type Body struct {
	shape       Shape
	position    vector.Vec2
	inverseMass float64
	velocity    vector.Vec2
	force       vector.Vec2
	drag        [2]float64 // linear, quadratic
	restitution float64
}

func NewBody(position vector.Vec2) Body {
	return Body{
		shape:       NoShape(),
		position:    position,
		inverseMass: 1,
		restitution: 1,
	}
}

func (b *Body) SetPosition(position vector.Vec2) { b.position = position }

func (b *Body) Displace(displacement vector.Vec2) { b.position.AddAssign(displacement) }

func (b *Body) Position() vector.Vec2 { return b.position }

func (b *Body) SetShape(shape Shape) { b.shape = shape }

func (b *Body) Shape() Shape { return b.shape }

// SetMass rejects non-positive or non-finite masses and leaves the body unchanged.
func (b *Body) SetMass(mass float64) error {
	if !validMass(mass) {
		return fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	b.inverseMass = 1 / mass
	return nil
}

// AddMass adds mass to a movable body. Static bodies stay static.
func (b *Body) AddMass(mass float64) error {
	if b.inverseMass == 0 {
		return nil
	}
	total := 1/b.inverseMass + mass
	if !validMass(total) {
		return fmt.Errorf("%w: %v", ErrInvalidMass, total)
	}
	b.inverseMass = 1 / total
	return nil
}

// SetStatic gives the body infinite mass: forces and impulses no longer move it.
func (b *Body) SetStatic() { b.inverseMass = 0 }

func (b *Body) IsStatic() bool { return b.inverseMass == 0 }

// Mass is +Inf for static bodies.
func (b *Body) Mass() float64 {
	if b.inverseMass == 0 {
		return math.Inf(1)
	}
	return 1 / b.inverseMass
}

func (b *Body) InverseMass() float64 { return b.inverseMass }

func (b *Body) SetVelocity(velocity vector.Vec2) { b.velocity = velocity }

func (b *Body) AddVelocity(velocity vector.Vec2) { b.velocity.AddAssign(velocity) }

func (b *Body) Velocity() vector.Vec2 { return b.velocity }

func (b *Body) SetForce(force vector.Vec2) { b.force = force }

// AddForce accumulates force for the next Integrate call only.
func (b *Body) AddForce(force vector.Vec2) { b.force.AddAssign(force) }

func (b *Body) Force() vector.Vec2 { return b.force }

// SetDragForce sets the linear (k1) and quadratic (k2) drag coefficients.
func (b *Body) SetDragForce(k1, k2 float64) { b.drag = [2]float64{k1, k2} }

func (b *Body) DragForce() (k1, k2 float64) { return b.drag[0], b.drag[1] }

func (b *Body) SetRestitution(restitution float64) { b.restitution = restitution }

func (b *Body) Restitution() float64 { return b.restitution }

// AABB returns the unwrapped bounding box, false when the body has no shape.
func (b *Body) AABB() (toroidal.AABB, bool) {
	half, ok := b.shape.HalfSize()
	if !ok {
		return toroidal.AABB{}, false
	}
	return toroidal.NewAABB(b.position, half), true
}

// Integrate advances the body by dt using semi-implicit Euler and clears the
// force accumulator. The position is left unwrapped.
func (b *Body) Integrate(dt float64) {
	speed := b.velocity.Length()
	force := b.force.Sub(b.velocity.Scale(b.drag[0] + b.drag[1]*speed))
	b.velocity.AddAssign(force.Scale(b.inverseMass * dt))
	b.position.AddAssign(b.velocity.Scale(dt))
	b.force.Clear()
}

// Validate checks the preconditions the solver relies on.
func (b *Body) Validate() error {
	if err := b.shape.Validate(); err != nil {
		return err
	}
	if b.inverseMass < 0 || math.IsNaN(b.inverseMass) || math.IsInf(b.inverseMass, 0) {
		return fmt.Errorf("%w: inverse mass %v", ErrInvalidMass, b.inverseMass)
	}
	if math.IsNaN(b.restitution) || math.IsInf(b.restitution, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRestitution, b.restitution)
	}
	if !finite(b.drag[0]) || !finite(b.drag[1]) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidDrag, b.drag[0], b.drag[1])
	}
	if !b.position.IsFinite() || !b.velocity.IsFinite() || !b.force.IsFinite() {
		return fmt.Errorf("%w: non-finite kinematic state", ErrInvalidBody)
	}
	return nil
}

func validMass(m float64) bool {
	return m > 0 && !math.IsInf(m, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
