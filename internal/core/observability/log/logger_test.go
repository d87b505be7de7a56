package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelSilent,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestLogger_LevelGate(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core), LevelInfo)

	require.False(t, l.Enabled(LevelDebug))
	require.True(t, l.Enabled(LevelWarn))

	l.Debug("dropped")
	l.Info("kept", String("k", "v"), Int("n", 3), Duration("d", time.Second))
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	require.Equal(t, "kept", entry.Message)
	require.Equal(t, "v", entry.ContextMap()["k"])
	require.EqualValues(t, 3, entry.ContextMap()["n"])

	l.SetLevel(LevelDebug)
	require.Equal(t, LevelDebug, l.GetLevel())
	l.Debug("now kept")
	require.Equal(t, 2, logs.Len())

	l.SetLevel(LevelSilent)
	l.Error("silenced", Error(errors.New("boom")))
	require.Equal(t, 2, logs.Len())
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core), LevelDebug).With(String("component", "space"))

	l.Warn("hello", Float64("dt", 0.5), Uint32("w", 800), Bool("ok", true))
	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	require.Equal(t, "space", ctx["component"])
	require.Equal(t, 0.5, ctx["dt"])
}

func TestLogger_ZapBackend(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	z := zap.New(core)
	l := NewFromZap(z, LevelInfo)
	require.Same(t, z, l.Zap())

	l.Zap().Info("direct")
	require.NoError(t, l.Sync())
	require.Equal(t, 1, logs.Len())
}

func TestNop(t *testing.T) {
	l := NewNop()
	require.False(t, l.Enabled(LevelError))
	l.Error("nothing")
	require.NotNil(t, Provide())
}
