package handler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/formatter"
)

// lockedWriter wraps an io.Writer with a mutex, acquiring the lock only
// for Write calls. Formatters prepare data in their own pooled buffers
// and call Write once, so the lock is held only during the actual I/O.
type lockedWriter struct {
	mu *sync.Mutex // points to the sink's mu
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	n, err = lw.w.Write(p)
	lw.mu.Unlock()
	return
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// parallelBuf combines an entry and buffer for pool-friendly parallel formatting.
type parallelBuf struct {
	buf   bytes.Buffer
	entry core.Entry
}

// sink is the synchronous write path shared by the console and file
// handlers: it caches the optional formatter interfaces, serializes
// writes and counts processed entries.
type sink struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	bufferFormatter formatter.BufferFormatter
	filter          formatter.LevelFilter
	concurrentSafe  bool
	stats           *Stats
	mu              sync.Mutex // protects syncBuf, syncEntry and writer
	lw              lockedWriter
	syncBuf         bytes.Buffer
	syncEntry       core.Entry
	parBufPool      sync.Pool
}

func (s *sink) init(name string, w io.Writer, f formatter.Formatter, concurrentSafe bool) {
	s.writer = w
	s.formatter = f
	s.concurrentSafe = concurrentSafe
	s.stats = NewStats(name)
	s.lw = lockedWriter{mu: &s.mu, w: w}

	s.writerFormatter, _ = f.(formatter.WriterFormatter)
	s.bufferFormatter, _ = f.(formatter.BufferFormatter)
	s.filter, _ = f.(formatter.LevelFilter)

	if s.bufferFormatter != nil {
		s.syncBuf.Grow(256)
		s.syncEntry.Fields = make([]core.Field, 0, 16)
		s.parBufPool = sync.Pool{
			New: func() interface{} {
				pb := &parallelBuf{}
				pb.buf.Grow(256)
				pb.entry.Fields = make([]core.Field, 0, 16)
				return pb
			},
		}
	}
}

// enabled reports whether the formatter would render level at all.
func (s *sink) enabled(level core.Level) bool {
	return s.filter == nil || s.filter.Enabled(level)
}

// flushBuf writes buf to the underlying writer. The caller holds mu
// unless the writer is concurrency safe.
func (s *sink) flushBuf(buf *bytes.Buffer) error {
	if buf.Len() == 0 {
		return nil
	}
	_, err := s.writer.Write(buf.Bytes())
	if err == nil {
		s.stats.IncrementProcessed()
	}
	return err
}

// write formats and writes an entry. Under no contention the sink-owned
// buffer is used; contended callers format into a pooled buffer outside
// the lock and only serialize the write itself.
func (s *sink) write(entry *core.Entry) error {
	if s.bufferFormatter != nil {
		if s.mu.TryLock() {
			s.syncBuf.Reset()
			s.bufferFormatter.FormatEntry(entry, &s.syncBuf)
			err := s.flushBuf(&s.syncBuf)
			s.mu.Unlock()
			return err
		}

		pb := s.parBufPool.Get().(*parallelBuf)
		pb.buf.Reset()
		s.bufferFormatter.FormatEntry(entry, &pb.buf)
		err := s.writeParallel(&pb.buf)
		s.parBufPool.Put(pb)
		return err
	}

	if s.writerFormatter != nil {
		var w io.Writer = &s.lw
		if s.concurrentSafe {
			w = s.writer
		}
		err := s.writerFormatter.FormatTo(entry, w)
		if err == nil {
			s.stats.IncrementProcessed()
		}
		return err
	}

	data, err := s.formatter.Format(entry)
	if err != nil || len(data) == 0 {
		return err
	}
	_, err = s.lw.Write(data)
	if err == nil {
		s.stats.IncrementProcessed()
	}
	return err
}

func (s *sink) writeParallel(buf *bytes.Buffer) error {
	if s.concurrentSafe {
		return s.flushBuf(buf)
	}
	s.mu.Lock()
	err := s.flushBuf(buf)
	s.mu.Unlock()
	return err
}

// writeLog renders log data without a pooled Entry, reusing the sink's
// scratch entry or, under contention, a pooled one.
func (s *sink) writeLog(t time.Time, level core.Level, target, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	if s.bufferFormatter == nil {
		entry := core.GetEntry()
		entry.Reset(t, level, target, msg, caller, loggerFields, callFields)
		err := s.write(entry)
		core.PutEntry(entry)
		return err
	}

	if s.mu.TryLock() {
		s.syncEntry.Reset(t, level, target, msg, caller, loggerFields, callFields)
		s.syncBuf.Reset()
		s.bufferFormatter.FormatEntry(&s.syncEntry, &s.syncBuf)
		err := s.flushBuf(&s.syncBuf)
		s.mu.Unlock()
		return err
	}

	pb := s.parBufPool.Get().(*parallelBuf)
	pb.entry.Reset(t, level, target, msg, caller, loggerFields, callFields)
	pb.buf.Reset()
	s.bufferFormatter.FormatEntry(&pb.entry, &pb.buf)
	err := s.writeParallel(&pb.buf)

	// Clean for pool reuse
	pb.entry.Fields = pb.entry.Fields[:0]
	pb.entry.Caller = core.CallerInfo{}
	s.parBufPool.Put(pb)
	return err
}

// Stats returns a snapshot of the current statistics
func (s *sink) Stats() Snapshot {
	return s.stats.GetSnapshot()
}

// Metrics returns the live counters, e.g. for WritePrometheus.
func (s *sink) Metrics() *Stats {
	return s.stats
}
