package log

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is an alias of zapcore.Field, so zap field constructors remain usable.
type Field = zapcore.Field

func String(key, val string) Field { return zap.String(key, val) }

func Strings(key string, vals []string) Field { return zap.Strings(key, vals) }

func Int(key string, val int) Field { return zap.Int(key, val) }

func Ints(key string, vals []int) Field { return zap.Ints(key, vals) }

func Int64(key string, val int64) Field { return zap.Int64(key, val) }

func Float64(key string, val float64) Field { return zap.Float64(key, val) }

func Bool(key string, val bool) Field { return zap.Bool(key, val) }

func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

func Time(key string, val time.Time) Field { return zap.Time(key, val) }

func Any(key string, val any) Field { return zap.Any(key, val) }

// Cause records the error that caused the log entry.
func Cause(err error) Field { return zap.Error(err) }
