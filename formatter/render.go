package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/opts"
	"github.com/philipp01105/twyg/palette"
)

// placeholder stands in for caller data the record does not carry.
const placeholder = "??"

var defaultOpts = sync.OnceValue(opts.Default)

// Render formats entry with o and returns the line without a trailing
// newline. ok is false when the entry's level is below the configured
// minimum, in which case nothing is rendered. A nil o means opts.Default().
func Render(o *opts.Opts, entry *core.Entry) (line string, ok bool) {
	buf := getBuffer()
	defer putBuffer(buf)

	if !AppendLine(buf, o, entry) {
		return "", false
	}
	return buf.String(), true
}

// AppendLine appends the rendered entry to buf and reports whether the
// entry passed the level filter. Filtered entries leave buf untouched.
// The layout is
//
//	<timestamp> <level> [<file>:<line> ]<target> <arrow> <message>[<sep><k>={<v>}, ...]
//
// Only field text and the arrow are styled; spaces, the caller colon,
// separators and braces are always written plain, so the uncolored line
// equals the colored one with its escape sequences removed.
func AppendLine(buf *bytes.Buffer, o *opts.Opts, entry *core.Entry) bool {
	if o == nil {
		o = defaultOpts()
	}
	if entry == nil || !o.Enabled(entry.Level) {
		return false
	}
	styles := o.Styles()

	t := entry.Time
	if t.IsZero() {
		t = time.Now()
	}
	appendTimestamp(buf, o, styles.Style(palette.FieldTimestamp), t)
	buf.WriteByte(' ')

	styles.Append(buf, palette.LevelField(entry.Level), o.LevelText(entry.Level))
	buf.WriteByte(' ')

	if o.ReportCaller() && entry.Caller.Defined {
		appendCaller(buf, styles, entry.Caller)
		buf.WriteByte(' ')
	}

	styles.Append(buf, palette.FieldTarget, entry.Target)
	buf.WriteByte(' ')
	styles.Append(buf, palette.FieldArrow, o.ArrowChar())
	buf.WriteByte(' ')
	styles.Append(buf, palette.FieldMessage, entry.Message)

	for i := range entry.Fields {
		if i == 0 {
			buf.WriteString(o.MsgSeparator())
		} else {
			buf.WriteString(", ")
		}
		styles.Append(buf, palette.FieldAttrKey, entry.Fields[i].Key)
		buf.WriteString("={")
		styles.Append(buf, palette.FieldAttrValue, fieldValue(entry.Fields[i]))
		buf.WriteByte('}')
	}
	return true
}

func appendTimestamp(buf *bytes.Buffer, o *opts.Opts, style palette.Style, t time.Time) {
	if style.Plain() {
		buf.Write(o.AppendTimestamp(buf.AvailableBuffer(), t))
		return
	}
	var scratch [64]byte
	style.Append(buf, string(o.AppendTimestamp(scratch[:0], t)))
}

func appendCaller(buf *bytes.Buffer, styles *palette.Table, c core.CallerInfo) {
	file := c.ShortFile
	if file == "" {
		file = c.File
	}
	if file == "" {
		file = placeholder
	}
	styles.Append(buf, palette.FieldCallerFile, file)
	buf.WriteByte(':')

	line := placeholder
	if c.Line > 0 {
		line = strconv.Itoa(c.Line)
	}
	styles.Append(buf, palette.FieldCallerLine, line)
}

// fieldValue renders a field value. A panic while stringifying renders
// the same marker fmt uses for panicking String methods.
func fieldValue(f core.Field) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("%%!v(PANIC=%v)", r)
		}
	}()
	return f.StringValue()
}
