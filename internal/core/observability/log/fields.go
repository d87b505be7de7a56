package log

import (
	"time"

	"go.uber.org/zap"
)

// Field is a typed key/value pair. It is encoded once, at construction.
type Field struct {
	zf zap.Field
}

func (f Field) Key() string { return f.zf.Key }

func Any(key string, val any) Field { return Field{zap.Any(key, val)} }

func Bool(key string, val bool) Field { return Field{zap.Bool(key, val)} }

func Duration(key string, val time.Duration) Field { return Field{zap.Duration(key, val)} }

func Float64(key string, val float64) Field { return Field{zap.Float64(key, val)} }

func Int(key string, val int) Field { return Field{zap.Int(key, val)} }

func Int64(key string, val int64) Field { return Field{zap.Int64(key, val)} }

func String(key string, val string) Field { return Field{zap.String(key, val)} }

func Uint32(key string, val uint32) Field { return Field{zap.Uint32(key, val)} }

func Uint64(key string, val uint64) Field { return Field{zap.Uint64(key, val)} }

// Error logs err under the "error" key.
func Error(err error) Field { return Field{zap.Error(err)} }

func zapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, len(fields))
	for i := range fields {
		out[i] = fields[i].zf
	}
	return out
}
