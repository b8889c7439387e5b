package formatter

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/opts"
)

// JSONFormatter formats log entries as one JSON object per line. It uses
// the same level filter, timestamp pattern and caller switch as the text
// renderer; colors do not apply.
type JSONFormatter struct {
	opts atomic.Pointer[opts.Opts]
}

// NewJSONFormatter creates a new JSON formatter. A nil o uses
// opts.Default().
func NewJSONFormatter(o *opts.Opts) *JSONFormatter {
	if o == nil {
		o = defaultOpts()
	}
	f := &JSONFormatter{}
	f.opts.Store(o)
	return f
}

// Opts returns the configuration currently in use.
func (f *JSONFormatter) Opts() *opts.Opts {
	return f.opts.Load()
}

// Swap installs o and returns the previous configuration.
func (f *JSONFormatter) Swap(o *opts.Opts) *opts.Opts {
	if o == nil {
		return f.opts.Load()
	}
	return f.opts.Swap(o)
}

// Enabled reports whether an entry at level would be rendered.
func (f *JSONFormatter) Enabled(level core.Level) bool {
	return f.opts.Load().Enabled(level)
}

// Format returns the JSON line for entry, or nil when it is filtered out.
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if f.FormatEntry(entry, buf); buf.Len() == 0 {
		return nil, nil
	}
	return bytes.Clone(buf.Bytes()), nil
}

// FormatTo writes the JSON line for entry to w.
func (f *JSONFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if f.FormatEntry(entry, buf); buf.Len() == 0 {
		return nil
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatEntry appends the JSON line for entry to buf.
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	o := f.opts.Load()
	if entry == nil || !o.Enabled(entry.Level) {
		return
	}
	appendJSONLine(buf, o, entry)
}

// appendJSONLine encodes entry by hand; encoding/json would need a map or
// reflection per call.
func appendJSONLine(buf *bytes.Buffer, o *opts.Opts, entry *core.Entry) {
	t := entry.Time
	if t.IsZero() {
		t = time.Now()
	}
	var scratch [64]byte

	buf.WriteString(`{"time":`)
	writeJSONQuoted(buf, string(o.AppendTimestamp(scratch[:0], t)))
	writeJSONKey(buf, "level")
	writeJSONQuoted(buf, entry.Level.String())
	if entry.Target != "" {
		writeJSONKey(buf, "target")
		writeJSONQuoted(buf, entry.Target)
	}
	writeJSONKey(buf, "message")
	writeJSONQuoted(buf, entry.Message)

	if c := entry.Caller; o.ReportCaller() && c.Defined {
		file := c.ShortFile
		if file == "" {
			file = c.File
		}
		writeJSONKey(buf, "caller")
		buf.WriteString(`{"file":`)
		writeJSONQuoted(buf, file)
		buf.WriteString(`,"line":`)
		buf.Write(strconv.AppendInt(scratch[:0], int64(c.Line), 10))
		if c.Function != "" {
			writeJSONKey(buf, "function")
			writeJSONQuoted(buf, c.Function)
		}
		buf.WriteByte('}')
	}

	for _, field := range entry.Fields {
		writeJSONKey(buf, field.Key)
		writeJSONValue(buf, field)
	}
	buf.WriteString("}\n")
}

// writeJSONKey writes `,"key":`.
func writeJSONKey(buf *bytes.Buffer, key string) {
	buf.WriteString(`,`)
	writeJSONQuoted(buf, key)
	buf.WriteByte(':')
}

// writeJSONQuoted writes s as a quoted JSON string. Control characters
// become \u00XX escapes except for the three with short forms.
func writeJSONQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		buf.WriteString(s[last:i])
		last = i + 1
		switch c {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(lowerHex[c>>4])
			buf.WriteByte(lowerHex[c&0xf])
		}
	}
	buf.WriteString(s[last:])
	buf.WriteByte('"')
}

const lowerHex = "0123456789abcdef"

// writeJSONValue writes the value of field. Numbers stay numbers except
// NaN and the infinities, which JSON cannot represent and are quoted.
func writeJSONValue(buf *bytes.Buffer, field core.Field) {
	var scratch [64]byte
	switch field.Type {
	case core.IntType, core.Int64Type, core.DurationType:
		buf.Write(strconv.AppendInt(scratch[:0], field.Int64, 10))
	case core.Uint64Type:
		buf.Write(strconv.AppendUint(scratch[:0], uint64(field.Int64), 10))
	case core.Float64Type:
		if math.IsNaN(field.Float64) || math.IsInf(field.Float64, 0) {
			writeJSONQuoted(buf, strconv.FormatFloat(field.Float64, 'f', -1, 64))
			return
		}
		buf.Write(strconv.AppendFloat(scratch[:0], field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(scratch[:0], field.Int64 == 1))
	case core.TimeType:
		writeJSONQuoted(buf, string(time.Unix(0, field.Int64).AppendFormat(scratch[:0], time.RFC3339Nano)))
	case core.StringType, core.ErrorType:
		writeJSONQuoted(buf, field.Str)
	default:
		writeJSONQuoted(buf, fieldValue(field))
	}
}
