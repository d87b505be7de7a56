// Package forces holds systems that feed body force accumulators before the
// physics step consumes them.
package forces

import (
	"time"

	"github.com/zeusync/torophy/internal/core/systems"
	"github.com/zeusync/torophy/internal/core/systems/physics"
	"github.com/zeusync/torophy/pkg/vector"
)

var (
	_ systems.System = (*Gravity)(nil)
	_ systems.System = (*Constant)(nil)
)

// Gravity accelerates every movable body uniformly: each receives mass * Acceleration.
type Gravity struct {
	Acceleration vector.Vec2
	space        *physics.Space
}

func NewGravity(space *physics.Space, acceleration vector.Vec2) *Gravity {
	return &Gravity{Acceleration: acceleration, space: space}
}

func (g *Gravity) Name() string { return "forces/gravity" }

func (g *Gravity) Phase() systems.ExecutionPhase { return systems.PhasePreUpdate }

func (g *Gravity) Update(_ time.Duration) error {
	for _, b := range g.space.Bodies() {
		if b.IsStatic() {
			continue
		}
		b.AddForce(g.Acceleration.Scale(b.Mass()))
	}
	return nil
}

// Constant adds the same force to every body regardless of its mass.
type Constant struct {
	Force vector.Vec2
	space *physics.Space
}

func NewConstant(space *physics.Space, force vector.Vec2) *Constant {
	return &Constant{Force: force, space: space}
}

func (c *Constant) Name() string { return "forces/constant" }

func (c *Constant) Phase() systems.ExecutionPhase { return systems.PhasePreUpdate }

func (c *Constant) Update(_ time.Duration) error {
	c.space.ApplyForce(c.Force)
	return nil
}
