package logger

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/handler"
)

// DefaultTarget is the target of loggers built without WithTarget.
const DefaultTarget = "main"

// Logger is the main logging interface (immutable). The level and the
// caller switch are shared variables so Reconfigure can change them for
// every logger derived from the same Builder.
type Logger struct {
	handler      handler.Handler
	fastHandler  handler.FastHandler
	level        *core.LevelVar
	caller       *atomic.Bool
	target       string
	fields       []core.Field
	callerSkip   int
	recycleEntry bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	fastHandler   handler.FastHandler
	level         *core.LevelVar
	target        string
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		target:     DefaultTarget,
		callerSkip: 3, // GetCaller, log, the level method
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	b.recycleEntry = handler.CanRecycle(h)
	// Cache FastHandler for pool-free hot path
	b.fastHandler, _ = h.(handler.FastHandler)
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = core.NewLevelVar(level)
	return b
}

// WithLevelVar shares lv as the level of the built logger, so later
// changes to lv apply to it.
func (b *Builder) WithLevelVar(lv *core.LevelVar) *Builder {
	b.level = lv
	return b
}

// WithTarget sets the target printed before the arrow.
func (b *Builder) WithTarget(target string) *Builder {
	b.target = target
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	level := b.level
	if level == nil {
		level = core.NewLevelVar(core.InfoLevel)
	}
	caller := &atomic.Bool{}
	caller.Store(b.includeCaller)

	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)

	return &Logger{
		handler:      b.handler,
		fastHandler:  b.fastHandler,
		level:        level,
		caller:       caller,
		target:       b.target,
		fields:       fields,
		callerSkip:   b.callerSkip,
		recycleEntry: b.recycleEntry,
	}
}

// Level returns the current minimum level.
func (l *Logger) Level() core.Level {
	return l.level.Level()
}

// Target returns the target of the logger.
func (l *Logger) Target() string {
	return l.target
}

// LevelVar returns the shared level variable of the logger.
func (l *Logger) LevelVar() *core.LevelVar {
	return l.level
}

// Handler returns the handler the logger writes to.
func (l *Logger) Handler() handler.Handler {
	return l.handler
}

// Enabled reports whether a message at level would be handled.
func (l *Logger) Enabled(level core.Level) bool {
	return l.handler != nil && level >= l.level.Level()
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	child := *l
	child.fields = newFields
	return &child
}

// WithTarget creates a new Logger that logs under target.
func (l *Logger) WithTarget(target string) *Logger {
	child := *l
	child.target = target
	return &child
}

// WithCallerSkip creates a new Logger that skips n more stack frames
// when reporting the caller, for wrappers around the logging methods.
func (l *Logger) WithCallerSkip(n int) *Logger {
	child := *l
	child.callerSkip += n
	return &child
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if !l.Enabled(level) {
		return
	}
	l.log(level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice.
// It must be called directly from the exported method so callerSkip
// points at the user's code.
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	var caller core.CallerInfo
	if l.caller.Load() {
		caller = core.GetCaller(l.callerSkip)
	}
	t := time.Now()

	// Fast path: use FastHandler when there are no call-site fields.
	// This avoids sync.Pool Get/Put overhead. Variadic fields are not
	// passed through the interface because that makes them escape.
	if l.fastHandler != nil && len(fields) == 0 {
		_ = l.fastHandler.HandleLog(t, level, l.target, msg, l.fields, nil, caller)
		return
	}

	entry := core.GetEntry()
	entry.Reset(t, level, l.target, msg, caller, l.fields, fields)

	err := l.handler.Handle(entry)
	if err != nil {
		return
	}

	// Return entry to pool if handler supports it
	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
