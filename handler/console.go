package handler

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/formatter"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter with default opts)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// ConsoleHandler writes formatted lines to a terminal stream or any
// io.Writer, either on the caller's goroutine or through a bounded queue.
type ConsoleHandler struct {
	sink
	async  *dispatcher
	closed atomic.Bool
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(nil)
	}

	h := &ConsoleHandler{}
	h.init("console", cfg.Writer, cfg.Formatter, cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer))
	if cfg.Async {
		h.async = newDispatcher(cfg.asyncConfig(), h.stats, h.write)
	}
	return h
}

// Handle writes the entry, or queues it in async mode. Entries the
// formatter would filter out are ignored.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if !h.enabled(entry.Level) {
		return nil
	}
	if h.async != nil {
		return h.async.enqueue(entry)
	}
	return h.write(entry)
}

// HandleLog processes log data directly without requiring a pooled Entry
// in sync mode; async mode builds one for the queue.
func (h *ConsoleHandler) HandleLog(t time.Time, level core.Level, target, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	if !h.enabled(level) {
		return nil
	}
	if h.async == nil {
		return h.writeLog(t, level, target, msg, loggerFields, callFields, caller)
	}
	entry := core.GetEntry()
	entry.Reset(t, level, target, msg, caller, loggerFields, callFields)
	return h.async.enqueue(entry)
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return h.async == nil
}

// Close drains the queue in async mode. The writer is left open; it
// belongs to the caller.
func (h *ConsoleHandler) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	if h.async != nil {
		h.async.close()
	}
	return nil
}

func (cfg ConsoleConfig) asyncConfig() AsyncConfig {
	return AsyncConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}
}
