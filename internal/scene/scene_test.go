package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/torophy/internal/config"
	"github.com/zeusync/torophy/internal/core/systems/physics"
	"github.com/zeusync/torophy/pkg/vector"
)

func newSpace(t *testing.T) *physics.Space {
	t.Helper()
	s, err := physics.NewSpace(800, 600)
	require.NoError(t, err)
	return s
}

func TestNewBody(t *testing.T) {
	half := 0.5
	b, err := NewBody(config.BodyConfig{
		Position:      vector.XY(1, 2),
		Velocity:      vector.XY(3, 4),
		Radius:        5,
		Mass:          2,
		Restitution:   &half,
		DragLinear:    0.1,
		DragQuadratic: 0.2,
	})
	require.NoError(t, err)
	require.Equal(t, vector.XY(1, 2), b.Position())
	require.Equal(t, vector.XY(3, 4), b.Velocity())
	r, ok := b.Shape().Radius()
	require.True(t, ok)
	require.Equal(t, 5.0, r)
	require.Equal(t, 0.5, b.InverseMass())
	require.Equal(t, 0.5, b.Restitution())
	k1, k2 := b.DragForce()
	require.Equal(t, 0.1, k1)
	require.Equal(t, 0.2, k2)

	b, err = NewBody(config.BodyConfig{Static: true, Mass: 3})
	require.NoError(t, err)
	require.True(t, b.IsStatic())
	require.Equal(t, physics.ShapeNone, b.Shape().Kind())
	require.Equal(t, 1.0, b.Restitution())
}

func TestNewBody_InvalidMass(t *testing.T) {
	for _, mass := range []float64{-1, math.Inf(1), math.NaN()} {
		_, err := NewBody(config.BodyConfig{Mass: mass})
		require.ErrorIs(t, err, physics.ErrInvalidMass, "mass %v", mass)
	}

	_, err := NewBody(config.BodyConfig{Mass: -2, Static: true})
	require.ErrorIs(t, err, physics.ErrInvalidMass)
}

func TestBuild(t *testing.T) {
	cfg := config.Demo().Scene
	cfg.Generators = []config.GeneratorConfig{{
		Count:       50,
		MassMin:     1,
		MassMax:     10,
		SpeedMin:    80,
		SpeedMax:    80,
		RadiusScale: 10,
	}}

	s := newSpace(t)
	n, err := Build(s, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 53, n)
	require.Equal(t, 53, s.Len())

	// the third demo body starts on the corner and is wrapped to the origin
	require.Equal(t, vector.XY(0, 0), s.Body(2).Position())

	for i := 3; i < s.Len(); i++ {
		b := s.Body(i)
		require.Equal(t, vector.XY(400, 300), b.Position())
		require.InDelta(t, 80, b.Velocity().Length(), 1e-9)
		r, ok := b.Shape().Radius()
		require.True(t, ok)
		require.InDelta(t, math.Sqrt(b.Mass()/math.Pi)*10, r, 1e-9)
		require.GreaterOrEqual(t, b.Mass(), 1.0-1e-9)
		require.Less(t, b.Mass(), 10.0+1e-9)
	}
}

func TestBuild_Reproducible(t *testing.T) {
	cfg := config.SceneConfig{
		Seed: 99,
		Generators: []config.GeneratorConfig{{
			Count:     200,
			Placement: config.PlacementUniform,
			MassMin:   1,
			MassMax:   10,
			SpeedMin:  5,
			SpeedMax:  30,
		}},
	}

	a, b := newSpace(t), newSpace(t)
	_, err := Build(a, cfg, nil)
	require.NoError(t, err)
	_, err = Build(b, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, a.Checksum(), b.Checksum())

	cfg.Seed = 100
	c := newSpace(t)
	_, err = Build(c, cfg, nil)
	require.NoError(t, err)
	require.NotEqual(t, a.Checksum(), c.Checksum())

	for _, st := range a.States() {
		require.True(t, a.Bounds().Contains(st.Position))
	}
}

func TestBuild_InvalidBody(t *testing.T) {
	nan := math.NaN()
	cfg := config.SceneConfig{Bodies: []config.BodyConfig{
		{Position: vector.XY(1, 1)},
		{Position: vector.XY(1, 1), Restitution: &nan},
	}}
	s := newSpace(t)
	n, err := Build(s, cfg, nil)
	require.ErrorIs(t, err, physics.ErrInvalidBody)
	require.Equal(t, 1, n)
}
