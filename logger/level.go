package logger

import "github.com/philipp01105/twyg/core"

// Level Re-export type and constants for convenience
type Level = core.Level

// LevelVar is a level that can be changed while loggers use it.
type LevelVar = core.LevelVar

const (
	TraceLevel = core.TraceLevel
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
)

// ParseLevel converts a case-insensitive level name to a Level.
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}

// NewLevelVar returns a LevelVar set to level.
func NewLevelVar(level Level) *LevelVar {
	return core.NewLevelVar(level)
}
