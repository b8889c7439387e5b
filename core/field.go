package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Uint64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Uint64Type:
		return strconv.FormatUint(uint64(f.Int64), 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case AnyType:
		// fmt recovers panicking String methods and renders %!v(PANIC=...)
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}

// FieldOf builds a typed Field from an arbitrary value, falling back to
// AnyType for values without a dedicated encoding.
func FieldOf(key string, v interface{}) Field {
	switch val := v.(type) {
	case string:
		return Field{Key: key, Type: StringType, Str: val}
	case int:
		return Field{Key: key, Type: IntType, Int64: int64(val)}
	case int8:
		return Field{Key: key, Type: Int64Type, Int64: int64(val)}
	case int16:
		return Field{Key: key, Type: Int64Type, Int64: int64(val)}
	case int32:
		return Field{Key: key, Type: Int64Type, Int64: int64(val)}
	case int64:
		return Field{Key: key, Type: Int64Type, Int64: val}
	case uint:
		return Field{Key: key, Type: Uint64Type, Int64: int64(val)}
	case uint8:
		return Field{Key: key, Type: Uint64Type, Int64: int64(val)}
	case uint16:
		return Field{Key: key, Type: Uint64Type, Int64: int64(val)}
	case uint32:
		return Field{Key: key, Type: Uint64Type, Int64: int64(val)}
	case uint64:
		return Field{Key: key, Type: Uint64Type, Int64: int64(val)}
	case float32:
		return Field{Key: key, Type: Float64Type, Float64: float64(val)}
	case float64:
		return Field{Key: key, Type: Float64Type, Float64: val}
	case bool:
		b := int64(0)
		if val {
			b = 1
		}
		return Field{Key: key, Type: BoolType, Int64: b}
	case time.Time:
		return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
	case time.Duration:
		return Field{Key: key, Type: DurationType, Int64: int64(val)}
	case error:
		return Field{Key: key, Type: ErrorType, Str: val.Error()}
	default:
		return Field{Key: key, Type: AnyType, Any: v}
	}
}

// String creates a string field
func String(key, val string) Field {
	return Field{Key: key, Type: StringType, Str: val}
}

// Int creates an int field
func Int(key string, val int) Field {
	return Field{Key: key, Type: IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) Field {
	return Field{Key: key, Type: Int64Type, Int64: val}
}

// Uint64 creates a uint64 field
func Uint64(key string, val uint64) Field {
	return Field{Key: key, Type: Uint64Type, Int64: int64(val)}
}

// Float64 creates a float64 field
func Float64(key string, val float64) Field {
	return Field{Key: key, Type: Float64Type, Float64: val}
}

// Bool creates a bool field
func Bool(key string, val bool) Field {
	var b int64
	if val {
		b = 1
	}
	return Field{Key: key, Type: BoolType, Int64: b}
}

// Time creates a time field
func Time(key string, val time.Time) Field {
	return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Type: DurationType, Int64: int64(val)}
}

// Err creates an error field under the key "error".
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Type: ErrorType}
	}
	return Field{Key: "error", Type: ErrorType, Str: err.Error()}
}

// Any creates a field with any value
func Any(key string, val interface{}) Field {
	return Field{Key: key, Type: AnyType, Any: val}
}
