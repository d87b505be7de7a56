package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Log = (*Logger)(nil)

var (
	processLogger *Logger
	processOnce   sync.Once
)

// LevelSilent maps to zap's InvalidLevel, which no entry ever reaches.
var zapLevels = map[Level]zapcore.Level{
	LevelDebug:  zapcore.DebugLevel,
	LevelInfo:   zapcore.InfoLevel,
	LevelWarn:   zapcore.WarnLevel,
	LevelError:  zapcore.ErrorLevel,
	LevelSilent: zapcore.InvalidLevel,
}

func (l Level) zap() zapcore.Level {
	if zl, ok := zapLevels[l]; ok {
		return zl
	}
	return zapcore.InfoLevel
}

func levelOf(zl zapcore.Level) Level {
	for l, z := range zapLevels {
		if z == zl {
			return l
		}
	}
	return LevelInfo
}

// Logger is the zap-backed Log. Loggers derived with With share one level.
type Logger struct {
	core  *zap.Logger
	level zap.AtomicLevel
}

// Options tunes the zap backend. The zero value gives JSON output on stderr.
type Options struct {
	Encoding    string // "json" or "console"
	Development bool
	OutputPaths []string
}

func (o Options) zapConfig(level zap.AtomicLevel) zap.Config {
	cfg := zap.NewProductionConfig()
	if o.Development {
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.Development = true
	}
	cfg.Level = level
	cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	cfg.DisableCaller = true
	if o.Encoding != "" {
		cfg.Encoding = o.Encoding
	}
	if len(o.OutputPaths) > 0 {
		cfg.OutputPaths = o.OutputPaths
	}
	return cfg
}

func New(level Level) *Logger {
	return NewWithOptions(level, Options{})
}

// NewWithOptions builds a logger and panics if zap rejects the options.
// The first logger built becomes the one returned by Provide.
func NewWithOptions(level Level, opts Options) *Logger {
	atomic := zap.NewAtomicLevelAt(level.zap())
	core, err := opts.zapConfig(atomic).Build()
	if err != nil {
		panic(err)
	}

	l := &Logger{core: core, level: atomic}
	processOnce.Do(func() { processLogger = l })
	return l
}

// NewFromZap wraps an existing zap logger; the level gate applies on top of the core's own.
func NewFromZap(core *zap.Logger, level Level) *Logger {
	return &Logger{core: core, level: zap.NewAtomicLevelAt(level.zap())}
}

// NewNop returns a logger that drops everything.
func NewNop() *Logger {
	return NewFromZap(zap.NewNop(), LevelSilent)
}

// Provide returns the first logger built by New, or a no-op logger.
func Provide() *Logger {
	if processLogger == nil {
		return NewNop()
	}
	return processLogger
}

// Zap exposes the backend for libraries that take a *zap.Logger directly.
func (l *Logger) Zap() *zap.Logger { return l.core }

func (l *Logger) Sync() error { return l.core.Sync() }

func (l *Logger) Log(level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}
	l.core.Log(level.zap(), msg, zapFields(fields)...)
}

func (l *Logger) Debug(msg string, fields ...Field) { l.Log(LevelDebug, msg, fields...) }

func (l *Logger) Info(msg string, fields ...Field) { l.Log(LevelInfo, msg, fields...) }

func (l *Logger) Warn(msg string, fields ...Field) { l.Log(LevelWarn, msg, fields...) }

func (l *Logger) Error(msg string, fields ...Field) { l.Log(LevelError, msg, fields...) }

func (l *Logger) With(fields ...Field) Log {
	return &Logger{core: l.core.With(zapFields(fields)...), level: l.level}
}

func (l *Logger) Enabled(level Level) bool {
	return level != LevelSilent && l.level.Enabled(level.zap())
}

func (l *Logger) SetLevel(level Level) { l.level.SetLevel(level.zap()) }

func (l *Logger) GetLevel() Level { return levelOf(l.level.Level()) }
