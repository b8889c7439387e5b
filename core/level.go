package core

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Level represents the severity level of a log entry
type Level int8

const (
	// TraceLevel for the most verbose tracing output
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
)

// Levels returns every level ordered from most to least verbose.
func Levels() []Level {
	return []Level{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel}
}

// String returns the canonical display name of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Name returns the lowercase configuration name of the level.
func (l Level) Name() string {
	return strings.ToLower(l.String())
}

// Enabled reports whether a record at level l passes a threshold of min.
func (l Level) Enabled(min Level) bool {
	return l >= min
}

// ParseLevel converts a case-insensitive level name to a Level.
// "warning" and "err" are accepted as aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error", "err":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("invalid log level %q, expected one of: trace, debug, info, warn, error", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if l < TraceLevel || l > ErrorLevel {
		return nil, fmt.Errorf("invalid log level %d", l)
	}
	return []byte(l.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// LevelVar is a Level that can be changed concurrently. The zero value
// is InfoLevel.
type LevelVar struct {
	v atomic.Int32
}

// NewLevelVar returns a LevelVar set to level.
func NewLevelVar(level Level) *LevelVar {
	lv := &LevelVar{}
	lv.Set(level)
	return lv
}

// Level returns the current level.
func (lv *LevelVar) Level() Level {
	return Level(lv.v.Load()) + InfoLevel
}

// Set atomically replaces the level.
func (lv *LevelVar) Set(level Level) {
	lv.v.Store(int32(level - InfoLevel))
}
