package logger

import (
	"fmt"
	"sync/atomic"

	"github.com/mattn/go-colorable"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/formatter"
	"github.com/philipp01105/twyg/handler"
	"github.com/philipp01105/twyg/opts"
)

var defaultLogger atomic.Pointer[Logger]

// Until Setup runs, the package functions write with opts.Default() to
// stdout.
func init() {
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    colorable.NewColorableStdout(),
		Formatter: formatter.NewTextFormatter(opts.Default()),
	})
	defaultLogger.Store(NewBuilder().WithHandler(h).WithLevel(core.InfoLevel).Build())
}

// Default returns the logger behind the package-level functions.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the logger behind the package-level functions. A nil
// l is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// The functions below call log themselves rather than the Logger methods
// so the frame depth, and with it the reported caller, matches.

// Trace logs at Trace level through Default.
func Trace(msg string, fields ...core.Field) {
	if l := Default(); l.Enabled(core.TraceLevel) {
		l.log(core.TraceLevel, msg, fields)
	}
}

// Debug logs at Debug level through Default.
func Debug(msg string, fields ...core.Field) {
	if l := Default(); l.Enabled(core.DebugLevel) {
		l.log(core.DebugLevel, msg, fields)
	}
}

// Info logs at Info level through Default.
func Info(msg string, fields ...core.Field) {
	if l := Default(); l.Enabled(core.InfoLevel) {
		l.log(core.InfoLevel, msg, fields)
	}
}

// Warn logs at Warn level through Default.
func Warn(msg string, fields ...core.Field) {
	if l := Default(); l.Enabled(core.WarnLevel) {
		l.log(core.WarnLevel, msg, fields)
	}
}

// Error logs at Error level through Default.
func Error(msg string, fields ...core.Field) {
	if l := Default(); l.Enabled(core.ErrorLevel) {
		l.log(core.ErrorLevel, msg, fields)
	}
}

// Tracef is Trace with a printf-style message.
func Tracef(format string, args ...any) {
	if l := Default(); l.Enabled(core.TraceLevel) {
		l.log(core.TraceLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Debugf is Debug with a printf-style message.
func Debugf(format string, args ...any) {
	if l := Default(); l.Enabled(core.DebugLevel) {
		l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Infof is Info with a printf-style message.
func Infof(format string, args ...any) {
	if l := Default(); l.Enabled(core.InfoLevel) {
		l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Warnf is Warn with a printf-style message.
func Warnf(format string, args ...any) {
	if l := Default(); l.Enabled(core.WarnLevel) {
		l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Errorf is Error with a printf-style message.
func Errorf(format string, args ...any) {
	if l := Default(); l.Enabled(core.ErrorLevel) {
		l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
	}
}

// With derives a logger from Default that adds fields to every entry.
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// WithTarget derives a logger from Default that logs under target.
func WithTarget(target string) *Logger {
	return Default().WithTarget(target)
}
