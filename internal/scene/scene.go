// Package scene populates a space from configuration.
package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/zeusync/torophy/internal/config"
	"github.com/zeusync/torophy/internal/core/observability/log"
	"github.com/zeusync/torophy/internal/core/systems/physics"
	"github.com/zeusync/torophy/pkg/vector"
)

// Build adds every configured body to space and returns how many were added.
// Generators draw from a PCG stream seeded by cfg.Seed, so a scene is
// reproducible bit for bit.
func Build(space *physics.Space, cfg config.SceneConfig, logger log.Log) (int, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	added := 0

	for i, bc := range cfg.Bodies {
		body, err := NewBody(bc)
		if err != nil {
			return added, fmt.Errorf("body %d: %w", i, err)
		}
		if _, err = space.Add(body); err != nil {
			return added, fmt.Errorf("body %d: %w", i, err)
		}
		added++
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d))
	for i, gc := range cfg.Generators {
		n, err := generate(space, gc, rng)
		added += n
		if err != nil {
			return added, fmt.Errorf("generator %d: %w", i, err)
		}
	}

	logger.Info("Scene built",
		log.Int("bodies", added),
		log.Int("explicit", len(cfg.Bodies)),
		log.Int("generators", len(cfg.Generators)),
		log.Uint64("seed", cfg.Seed))
	return added, nil
}

// NewBody converts a body description into a physics body.
func NewBody(bc config.BodyConfig) (physics.Body, error) {
	body := physics.NewBody(bc.Position)
	body.SetVelocity(bc.Velocity)
	if bc.Radius > 0 {
		body.SetShape(physics.Circle(bc.Radius))
	}
	if bc.Mass != 0 {
		if err := body.SetMass(bc.Mass); err != nil {
			return body, err
		}
	}
	if bc.Static {
		body.SetStatic()
	}
	if bc.Restitution != nil {
		body.SetRestitution(*bc.Restitution)
	}
	body.SetDragForce(bc.DragLinear, bc.DragQuadratic)
	return body, nil
}

func generate(space *physics.Space, gc config.GeneratorConfig, rng *rand.Rand) (int, error) {
	center := space.Bounds().Dimension().DivScalar(2)
	dimension := space.Bounds().Dimension()

	for i := range gc.Count {
		position := center
		if gc.Placement == config.PlacementUniform {
			position = vector.XY(rng.Float64(), rng.Float64()).Mul(dimension)
		}
		mass := uniform(rng, gc.MassMin, gc.MassMax)
		speed := uniform(rng, gc.SpeedMin, gc.SpeedMax)
		heading := uniform(rng, -math.Pi, math.Pi)

		bc := config.BodyConfig{
			Position:      position,
			Velocity:      vector.FromAngle(heading).Scale(speed),
			Mass:          mass,
			Restitution:   gc.Restitution,
			DragLinear:    gc.DragLinear,
			DragQuadratic: gc.DragQuadratic,
		}
		if gc.RadiusScale > 0 {
			bc.Radius = math.Sqrt(mass/math.Pi) * gc.RadiusScale
		}

		body, err := NewBody(bc)
		if err != nil {
			return i, err
		}
		if _, err = space.Add(body); err != nil {
			return i, err
		}
	}
	return gc.Count, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
