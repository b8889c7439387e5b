package handler

import (
	"fmt"
	"time"

	"github.com/philipp01105/twyg/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// FastHandler is an optional interface that handlers can implement
// to process log data directly without requiring an Entry from the pool.
type FastHandler interface {
	HandleLog(t time.Time, level core.Level, target, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error
}

// Recycler is implemented by handlers that report whether the caller may
// return an entry to the pool once Handle returns.
type Recycler interface {
	CanRecycleEntry() bool
}

// StatsProvider is implemented by handlers that count their traffic.
type StatsProvider interface {
	Stats() Snapshot
}

// CanRecycle reports whether entries passed to h may be recycled after
// Handle returns. Handlers that do not say so are assumed to keep them.
func CanRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}

// FileError reports a failure to open or prepare a log file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("log file %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
