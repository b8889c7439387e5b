package palette

import (
	"fmt"

	"github.com/philipp01105/twyg/core"
)

// Field names one independently colorable span of a rendered line.
type Field uint8

const (
	FieldTimestamp Field = iota
	FieldLevelTrace
	FieldLevelDebug
	FieldLevelInfo
	FieldLevelWarn
	FieldLevelError
	FieldMessage
	FieldArrow
	FieldCallerFile
	FieldCallerLine
	FieldTarget
	FieldAttrKey
	FieldAttrValue

	// NumFields is the number of colorable fields.
	NumFields = int(FieldAttrValue) + 1
)

var fieldNames = [NumFields]string{
	FieldTimestamp:  "timestamp",
	FieldLevelTrace: "level_trace",
	FieldLevelDebug: "level_debug",
	FieldLevelInfo:  "level_info",
	FieldLevelWarn:  "level_warn",
	FieldLevelError: "level_error",
	FieldMessage:    "message",
	FieldArrow:      "arrow",
	FieldCallerFile: "caller_file",
	FieldCallerLine: "caller_line",
	FieldTarget:     "target",
	FieldAttrKey:    "attr_key",
	FieldAttrValue:  "attr_value",
}

// Fields returns all colorable fields in declaration order.
func Fields() []Field {
	out := make([]Field, NumFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// String returns the configuration key of the field.
func (f Field) String() string {
	if int(f) < NumFields {
		return fieldNames[f]
	}
	return "unknown"
}

// ParseField looks up a field by its configuration key.
func ParseField(s string) (Field, error) {
	for i, name := range fieldNames {
		if name == s {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color field %q", s)
}

// LevelField returns the field that colors the given level's token.
// Levels outside the known range clamp to the nearest one.
func LevelField(l core.Level) Field {
	switch {
	case l <= core.TraceLevel:
		return FieldLevelTrace
	case l == core.DebugLevel:
		return FieldLevelDebug
	case l == core.InfoLevel:
		return FieldLevelInfo
	case l == core.WarnLevel:
		return FieldLevelWarn
	default:
		return FieldLevelError
	}
}

// Colors holds optional per-field color overrides. A nil entry defers to
// the built-in default for that field; a non-nil reset/reset entry forces
// the field to render unstyled.
type Colors struct {
	Timestamp  *Color `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	LevelTrace *Color `json:"level_trace,omitempty" yaml:"level_trace,omitempty"`
	LevelDebug *Color `json:"level_debug,omitempty" yaml:"level_debug,omitempty"`
	LevelInfo  *Color `json:"level_info,omitempty" yaml:"level_info,omitempty"`
	LevelWarn  *Color `json:"level_warn,omitempty" yaml:"level_warn,omitempty"`
	LevelError *Color `json:"level_error,omitempty" yaml:"level_error,omitempty"`
	Message    *Color `json:"message,omitempty" yaml:"message,omitempty"`
	Arrow      *Color `json:"arrow,omitempty" yaml:"arrow,omitempty"`
	CallerFile *Color `json:"caller_file,omitempty" yaml:"caller_file,omitempty"`
	CallerLine *Color `json:"caller_line,omitempty" yaml:"caller_line,omitempty"`
	Target     *Color `json:"target,omitempty" yaml:"target,omitempty"`
	AttrKey    *Color `json:"attr_key,omitempty" yaml:"attr_key,omitempty"`
	AttrValue  *Color `json:"attr_value,omitempty" yaml:"attr_value,omitempty"`
}

// defaults is the built-in color of every field.
var defaults = [NumFields]Color{
	FieldTimestamp:  Fg(Green),
	FieldLevelTrace: Fg(HiBlue),
	FieldLevelDebug: Fg(Cyan),
	FieldLevelInfo:  Fg(HiGreen),
	FieldLevelWarn:  Fg(HiYellow),
	FieldLevelError: Fg(Red),
	FieldMessage:    Fg(Green),
	FieldArrow:      Fg(Cyan),
	FieldCallerFile: Fg(HiYellow),
	FieldCallerLine: Fg(HiYellow),
	FieldTarget:     Fg(HiYellow),
	FieldAttrKey:    Fg(HiYellow),
	FieldAttrValue:  Fg(Cyan),
}

// Default returns the built-in color of f.
func Default(f Field) Color {
	if int(f) < NumFields {
		return defaults[f]
	}
	return Color{}
}

// slot returns the address of the override slot for f.
func (cs *Colors) slot(f Field) **Color {
	switch f {
	case FieldTimestamp:
		return &cs.Timestamp
	case FieldLevelTrace:
		return &cs.LevelTrace
	case FieldLevelDebug:
		return &cs.LevelDebug
	case FieldLevelInfo:
		return &cs.LevelInfo
	case FieldLevelWarn:
		return &cs.LevelWarn
	case FieldLevelError:
		return &cs.LevelError
	case FieldMessage:
		return &cs.Message
	case FieldArrow:
		return &cs.Arrow
	case FieldCallerFile:
		return &cs.CallerFile
	case FieldCallerLine:
		return &cs.CallerLine
	case FieldTarget:
		return &cs.Target
	case FieldAttrKey:
		return &cs.AttrKey
	case FieldAttrValue:
		return &cs.AttrValue
	default:
		return nil
	}
}

// Override returns the explicit override for f, if any.
func (cs Colors) Override(f Field) (Color, bool) {
	p := cs.slot(f)
	if p == nil || *p == nil {
		return Color{}, false
	}
	return **p, true
}

// With returns a copy of cs with f overridden by c.
func (cs Colors) With(f Field, c Color) Colors {
	out := cs.Clone()
	if p := out.slot(f); p != nil {
		*p = c.Ptr()
	}
	return out
}

// Without returns a copy of cs with the override for f removed.
func (cs Colors) Without(f Field) Colors {
	out := cs.Clone()
	if p := out.slot(f); p != nil {
		*p = nil
	}
	return out
}

// Clone returns a deep copy so later changes to the source pointers
// cannot leak into the copy.
func (cs Colors) Clone() Colors {
	var out Colors
	for _, f := range Fields() {
		if c, ok := cs.Override(f); ok {
			*out.slot(f) = c.Ptr()
		}
	}
	return out
}
