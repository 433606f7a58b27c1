package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a zap logger with context-aware hooks.
type Logger struct {
	zap   *zap.Logger
	level zap.AtomicLevel
	hooks []Hook
}

// New builds a Logger from config. Unknown levels fall back to info.
func New(cfg Config) *Logger {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" || cfg.Debug {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	sink := zapcore.AddSync(os.Stderr)
	if cfg.File.Enabled {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSize,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAge,
			Compress:   cfg.File.Compress,
		})
		sink = zapcore.NewMultiWriteSyncer(sink, rotated)
	}

	core := zapcore.NewCore(encoder, sink, level)

	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
	if cfg.Name != "" {
		zl = zl.Named(cfg.Name)
	}

	return &Logger{
		zap:   zl,
		level: level,
		hooks: defaultHooks,
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) log(ctx context.Context, level zapcore.Level, message string, fields ...Field) {
	if !l.level.Enabled(level) {
		return
	}

	for _, hook := range l.hooks {
		fields = append(fields, hook.Apply(ctx, message)...)
	}

	switch level {
	case zapcore.DebugLevel:
		l.zap.Debug(message, fields...)
	case zapcore.InfoLevel:
		l.zap.Info(message, fields...)
	case zapcore.WarnLevel:
		l.zap.Warn(message, fields...)
	default:
		l.zap.Error(message, fields...)
	}
}

func (l *Logger) Debug(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, zapcore.DebugLevel, message, fields...)
}

func (l *Logger) Info(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, zapcore.InfoLevel, message, fields...)
}

func (l *Logger) Warn(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, zapcore.WarnLevel, message, fields...)
}

func (l *Logger) Error(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, zapcore.ErrorLevel, message, fields...)
}

// DebugEnabled reports whether debug entries would be written.
func (l *Logger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

var (
	globalMu     sync.RWMutex
	globalLogger = New(Config{Level: "info"})
)

// SetGlobalConfig rebuilds the process-wide logger from config.
func SetGlobalConfig(cfg Config) {
	globalMu.Lock()
	globalLogger = New(cfg)
	globalMu.Unlock()
}

// GetGlobalLogger returns the process-wide logger.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	return globalLogger
}

func Debug(ctx context.Context, message string, fields ...Field) {
	GetGlobalLogger().Debug(ctx, message, fields...)
}

func Info(ctx context.Context, message string, fields ...Field) {
	GetGlobalLogger().Info(ctx, message, fields...)
}

func Warn(ctx context.Context, message string, fields ...Field) {
	GetGlobalLogger().Warn(ctx, message, fields...)
}

func Error(ctx context.Context, message string, fields ...Field) {
	GetGlobalLogger().Error(ctx, message, fields...)
}

// DebugEnabled reports whether the global logger writes debug entries.
func DebugEnabled(ctx context.Context) bool {
	_ = ctx

	return GetGlobalLogger().DebugEnabled()
}
