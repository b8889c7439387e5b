package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/twyg/core"
)

// Formatter turns an entry into one encoded line, newline included.
type Formatter interface {
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is implemented by formatters that can encode straight
// into an io.Writer, skipping the returned slice.
type WriterFormatter interface {
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is implemented by formatters that append into a buffer
// owned by the caller. Handlers that keep their own buffer prefer it.
type BufferFormatter interface {
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// LevelFilter is implemented by formatters that drop entries below a
// configured level. Handlers consult it before queueing.
type LevelFilter interface {
	Enabled(level core.Level) bool
}

const (
	initialBufferSize = 256
	maxPooledBuffer   = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		buf.Grow(initialBufferSize)
		return buf
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns buf to the pool unless an oversized line grew it.
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxPooledBuffer {
		bufferPool.Put(buf)
	}
}
