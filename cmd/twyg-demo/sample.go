package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/handler"
	"github.com/philipp01105/twyg/logger"
	"github.com/philipp01105/twyg/zapbridge"
)

// emitter is the common surface of the three front ends. Implementations
// report the caller of Log, not themselves.
type emitter interface {
	Log(level core.Level, msg string, fields ...core.Field)
}

func newEmitter(via string, log *logger.Logger) (emitter, error) {
	switch via {
	case "native", "":
		return nativeEmitter{log.WithCallerSkip(1)}, nil
	case "slog":
		return slogEmitter{handler.NewSlogHandler(log.Handler(), log.LevelVar(), log.Target())}, nil
	case "zap":
		zc := zapbridge.NewCore(log.Handler(), log.LevelVar(), log.Target())
		return zapEmitter{zap.New(zc, zap.AddCaller(), zap.AddCallerSkip(1))}, nil
	default:
		return nil, fmt.Errorf("unknown front end %q", via)
	}
}

type nativeEmitter struct {
	log *logger.Logger
}

func (e nativeEmitter) Log(level core.Level, msg string, fields ...core.Field) {
	e.log.Log(level, msg, fields...)
}

type slogEmitter struct {
	h slog.Handler
}

func (e slogEmitter) Log(level core.Level, msg string, fields ...core.Field) {
	l := slogLevel(level)
	ctx := context.Background()
	if !e.h.Enabled(ctx, l) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) // skip Callers and this method
	r := slog.NewRecord(time.Now(), l, msg, pcs[0])
	for _, f := range fields {
		r.AddAttrs(slog.Any(f.Key, fieldValue(f)))
	}
	_ = e.h.Handle(ctx, r)
}

func slogLevel(level core.Level) slog.Level {
	switch level {
	case core.TraceLevel:
		return slog.LevelDebug - 4
	case core.DebugLevel:
		return slog.LevelDebug
	case core.InfoLevel:
		return slog.LevelInfo
	case core.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

type zapEmitter struct {
	log *zap.Logger
}

func (e zapEmitter) Log(level core.Level, msg string, fields ...core.Field) {
	zfs := make([]zap.Field, len(fields))
	for i, f := range fields {
		zfs[i] = zap.Any(f.Key, fieldValue(f))
	}
	// zap has no trace level; trace samples are logged at debug
	zl := zapcore.DebugLevel
	switch level {
	case core.InfoLevel:
		zl = zapcore.InfoLevel
	case core.WarnLevel:
		zl = zapcore.WarnLevel
	case core.ErrorLevel:
		zl = zapcore.ErrorLevel
	}
	e.log.Log(zl, msg, zfs...)
}

// fieldValue returns the typed Go value of f.
func fieldValue(f core.Field) interface{} {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return f.Str
	case core.IntType:
		return int(f.Int64)
	case core.Int64Type:
		return f.Int64
	case core.Uint64Type:
		return uint64(f.Int64)
	case core.Float64Type:
		return f.Float64
	case core.BoolType:
		return f.Int64 == 1
	case core.DurationType:
		return time.Duration(f.Int64)
	default:
		return f.StringValue()
	}
}

func logSample(e emitter, opts string) {
	e.Log(core.TraceLevel, "Testing trace log output using twyg ...")
	e.Log(core.DebugLevel, "Testing debug log output using twyg ...")
	e.Log(core.InfoLevel, "Testing info log output using twyg ...")
	e.Log(core.WarnLevel, "Testing warn log output using twyg ...")
	e.Log(core.ErrorLevel, "Testing error log output using twyg ...")
	e.Log(core.DebugLevel, "Here's some data: "+opts)
}

func structuredSample(e emitter) {
	e.Log(core.InfoLevel, "User logged in",
		logger.String("user", "alice"),
		logger.String("action", "login"))

	e.Log(core.WarnLevel, "Request failed",
		logger.String("method", "GET"),
		logger.Int("status", 404),
		logger.String("path", "/api/users"))

	e.Log(core.DebugLevel, "User details",
		logger.Int("user_id", 42),
		logger.String("email", "bob@example.com"),
		logger.Bool("admin", true))

	e.Log(core.InfoLevel, "Session started",
		logger.String("session_id", "abc123"),
		logger.String("ip_address", "192.168.1.100"))

	e.Log(core.ErrorLevel, "Service error",
		logger.Int("error_code", 500),
		logger.String("message", "database connection failed"),
		logger.Int("retry_count", 3))

	e.Log(core.TraceLevel, "Query executed",
		logger.Duration("duration", 234*time.Millisecond),
		logger.Bool("cache_hit", false),
		logger.String("query", "SELECT * FROM users"))

	e.Log(core.InfoLevel, "This is a regular log message without key-value pairs")
}
