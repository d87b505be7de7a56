package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/torophy/pkg/vector"
)

const particles = `
space:
  name: particles
  width: 400
  height: 300
  cell_size: 12
runner:
  tick_rate: 10ms
  publish_every: 2
  gravity: {x: 0, y: 15}
scene:
  seed: 7
  bodies:
    - position: {x: 10, y: 20}
      velocity: {x: 1, y: 0}
      radius: 5
      mass: 2
      restitution: 0.5
    - position: {x: 200, y: 150}
      radius: 50
      static: true
  generators:
    - count: 100
      placement: center
      mass_min: 1
      mass_max: 10
      speed_min: 5
      speed_max: 30
      radius_scale: 10
      drag_linear: 0.01
server:
  enabled: false
log:
  level: debug
`

func TestLoadYAML(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(particles))
	require.NoError(t, err)

	require.Equal(t, "particles", c.Space.Name)
	require.Equal(t, uint32(400), c.Space.Width)
	require.Equal(t, 12.0, c.Space.CellSize)
	require.Equal(t, 10*time.Millisecond, c.Runner.TickRate)
	require.Equal(t, 2, c.Runner.PublishEvery)
	require.Equal(t, vector.XY(0, 15), c.Runner.Gravity)

	require.Equal(t, uint64(7), c.Scene.Seed)
	require.Len(t, c.Scene.Bodies, 2)
	require.NotNil(t, c.Scene.Bodies[0].Restitution)
	require.Equal(t, 0.5, *c.Scene.Bodies[0].Restitution)
	require.Nil(t, c.Scene.Bodies[1].Restitution)
	require.True(t, c.Scene.Bodies[1].Static)
	require.Len(t, c.Scene.Generators, 1)
	require.Equal(t, PlacementCenter, c.Scene.Generators[0].Placement)

	require.False(t, c.Server.Enabled)
	// defaults survive for keys the file omits
	require.Equal(t, "127.0.0.1:8080", c.Server.ListenAddr)
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, "json", c.Log.Encoding)
}

func TestLoadYAML_Empty(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestLoadYAML_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "space: {widht: 10}",
		"zero width":        "space: {width: 0}",
		"bad cell size":     "space: {cell_size: -1}",
		"bad tick":          "runner: {tick_rate: 0s}",
		"bad generator":     "scene: {generators: [{count: 0}]}",
		"bad placement":     "scene: {generators: [{count: 1, placement: ring, mass_min: 1, mass_max: 1}]}",
		"bad mass range":    "scene: {generators: [{count: 1, mass_min: 5, mass_max: 1}]}",
		"negative radius":   "scene: {bodies: [{radius: -3}]}",
		"bad log level":     "log: {level: loud}",
		"server no address": "server: {enabled: true, listen_addr: ''}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(doc))
			require.Error(t, err)
		})
	}

	_, err := LoadYAML(strings.NewReader("space: {width: 0}"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "torophy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(particles), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "particles", c.Space.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Demo()
	data, err := c.Marshal()
	require.NoError(t, err)

	decoded, err := LoadYAML(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Equal(t, c.Scene.Bodies, decoded.Scene.Bodies)
	require.Equal(t, c.Runner.TickRate, decoded.Runner.TickRate)
}
