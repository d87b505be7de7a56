package injector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/torophy/internal/config"
	"github.com/zeusync/torophy/pkg/vector"
)

func testConfig() *config.Config {
	c := config.Demo()
	c.Log.Level = "silent"
	c.Server.ListenAddr = "127.0.0.1:0"
	c.Runner.TickRate = time.Millisecond
	return c
}

func TestInitializeApp(t *testing.T) {
	c := testConfig()
	c.Runner.Gravity = vector.XY(0, 9.8)

	app, cleanup, err := InitializeApp(c)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, 3, app.Space.Len())
	assert.NotNil(t, app.Server)
	assert.Equal(t, []string{"forces/gravity", "physics/" + c.Space.Name}, app.Runner.Systems())
}

func TestInitializeApp_Headless(t *testing.T) {
	c := testConfig()
	c.Server.Enabled = false

	app, cleanup, err := InitializeApp(c)
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, app.Server)
	require.NoError(t, app.Runner.StepN(10))
	assert.Equal(t, uint64(10), app.Space.Metrics().Steps)
	assert.Zero(t, app.Hub.Published())
}

func TestInitializeApp_InvalidLevel(t *testing.T) {
	c := testConfig()
	c.Log.Level = "loud"
	_, _, err := InitializeApp(c)
	require.Error(t, err)
}

func TestAppRun(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return app.Hub.Published() > 5 }, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
