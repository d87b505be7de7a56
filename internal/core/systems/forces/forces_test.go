package forces

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/torophy/internal/core/systems"
	"github.com/zeusync/torophy/internal/core/systems/physics"
	"github.com/zeusync/torophy/pkg/vector"
)

func newSpace(t *testing.T) (*physics.Space, int, int, int) {
	t.Helper()
	s, err := physics.NewSpace(100, 100)
	require.NoError(t, err)

	light := physics.NewBody(vector.XY(10, 10))
	heavy := physics.NewBody(vector.XY(20, 20))
	require.NoError(t, heavy.SetMass(4))
	wall := physics.NewBody(vector.XY(30, 30))
	wall.SetStatic()

	i, err := s.Add(light)
	require.NoError(t, err)
	j, err := s.Add(heavy)
	require.NoError(t, err)
	k, err := s.Add(wall)
	require.NoError(t, err)
	return s, i, j, k
}

func TestGravity(t *testing.T) {
	s, light, heavy, wall := newSpace(t)
	g := NewGravity(s, vector.XY(0, 9.8))
	require.Equal(t, systems.PhasePreUpdate, g.Phase())

	require.NoError(t, g.Update(time.Second))
	require.Equal(t, vector.XY(0, 9.8), s.Body(light).Force())
	require.Equal(t, vector.XY(0, 39.2), s.Body(heavy).Force())
	require.Equal(t, vector.Zero(), s.Body(wall).Force())

	s.Step(1)
	// same acceleration regardless of mass
	require.InDelta(t, 9.8, s.Body(light).Velocity().Y, 1e-12)
	require.InDelta(t, 9.8, s.Body(heavy).Velocity().Y, 1e-12)
	require.Equal(t, vector.Zero(), s.Body(wall).Velocity())
}

func TestConstant(t *testing.T) {
	s, light, heavy, _ := newSpace(t)
	c := NewConstant(s, vector.XY(0, 15))

	require.NoError(t, c.Update(time.Second))
	s.Step(1)
	require.InDelta(t, 15, s.Body(light).Velocity().Y, 1e-12)
	require.InDelta(t, 3.75, s.Body(heavy).Velocity().Y, 1e-12)
}
