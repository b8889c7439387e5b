package handler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/twyg/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Handler, so records logged through log/slog go through the same
// rendering pipeline.
type SlogHandler struct {
	handler Handler
	level   *core.LevelVar
	target  string
	attrs   []core.Field
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given
// Handler. Records below level are discarded; a nil level means Info.
// target is used as the record target.
func NewSlogHandler(h Handler, level *core.LevelVar, target string) *SlogHandler {
	if level == nil {
		level = core.NewLevelVar(core.InfoLevel)
	}
	return &SlogHandler{
		handler: h,
		level:   level,
		target:  target,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return SlogLevel(level) >= s.level.Level()
}

// Handle converts the record to an entry and passes it to the wrapped
// handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Level = SlogLevel(record.Level)
	entry.Target = s.target
	entry.Message = record.Message
	entry.Caller = core.CallerFromPC(record.PC)

	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendSlogAttr(entry.Fields, s.group, a)
		return true
	})

	err := s.handler.Handle(entry)
	if CanRecycle(s.handler) {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendSlogAttr(newAttrs, s.group, a)
	}
	clone := *s
	clone.attrs = newAttrs
	return &clone
}

// WithGroup returns a new SlogHandler that prefixes later keys with name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	clone := *s
	clone.group = joinKey(s.group, name)
	return &clone
}

// SlogLevel converts a slog.Level to a core.Level. Levels below
// slog.LevelDebug map to Trace.
func SlogLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

// appendSlogAttr converts a slog.Attr to fields. Groups are flattened into
// dotted keys; empty attributes are skipped as slog requires.
func appendSlogAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}
	key := joinKey(group, a.Key)

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.String(key, a.Value.String()))
	case slog.KindInt64:
		return append(fields, core.Int64(key, a.Value.Int64()))
	case slog.KindUint64:
		return append(fields, core.Uint64(key, a.Value.Uint64()))
	case slog.KindFloat64:
		return append(fields, core.Float64(key, a.Value.Float64()))
	case slog.KindBool:
		return append(fields, core.Bool(key, a.Value.Bool()))
	case slog.KindTime:
		return append(fields, core.Time(key, a.Value.Time()))
	case slog.KindDuration:
		return append(fields, core.Duration(key, a.Value.Duration()))
	case slog.KindGroup:
		// an inline group (empty key) adds its attrs at the current level
		if a.Key == "" {
			key = group
		}
		for _, ga := range a.Value.Group() {
			fields = appendSlogAttr(fields, key, ga)
		}
		return fields
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(fields, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(fields, core.Any(key, a.Value.Any()))
	}
}
