package formatter

import (
	"bytes"
	"io"
	"sync/atomic"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/opts"
)

// TextFormatter renders entries as human-readable, optionally colored
// lines terminated by "\n". The configuration lives behind an atomic
// pointer, so Swap can replace it while other goroutines keep formatting.
type TextFormatter struct {
	opts atomic.Pointer[opts.Opts]
}

// NewTextFormatter creates a text formatter. A nil o uses opts.Default().
func NewTextFormatter(o *opts.Opts) *TextFormatter {
	if o == nil {
		o = defaultOpts()
	}
	f := &TextFormatter{}
	f.opts.Store(o)
	return f
}

// Opts returns the configuration currently in use.
func (f *TextFormatter) Opts() *opts.Opts {
	return f.opts.Load()
}

// Swap installs o and returns the previous configuration. A nil o is
// ignored.
func (f *TextFormatter) Swap(o *opts.Opts) *opts.Opts {
	if o == nil {
		return f.opts.Load()
	}
	return f.opts.Swap(o)
}

// Enabled reports whether an entry at level would be rendered.
func (f *TextFormatter) Enabled(level core.Level) bool {
	return f.opts.Load().Enabled(level)
}

// Format formats an entry as text. Filtered entries yield nil.
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)
	if buf.Len() == 0 {
		return nil, nil
	}

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)
	if buf.Len() == 0 {
		return nil
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatEntry appends the newline-terminated line to buf (implements
// BufferFormatter). Filtered entries write nothing.
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	if AppendLine(buf, f.opts.Load(), entry) {
		buf.WriteByte('\n')
	}
}
