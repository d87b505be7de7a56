package log

import (
	"fmt"
	"strings"
)

type Log interface {
	Log(level Level, msg string, fields ...Field)

	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	With(fields ...Field) Log

	// Enabled lets hot loops skip building fields for suppressed levels.
	Enabled(level Level) bool
	SetLevel(level Level)
	GetLevel() Level
}

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent Level = 101
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"":        LevelInfo,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"silent":  LevelSilent,
	"none":    LevelSilent,
	"off":     LevelSilent,
}

// ParseLevel maps a config string to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
