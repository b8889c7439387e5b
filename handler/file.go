package handler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/formatter"
)

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
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
	// BufferBytes is the size of the write buffer (default: 4096)
	BufferBytes int
}

// FileHandler appends formatted lines to a file through a buffered
// writer. Lines are flushed on Flush and Close.
type FileHandler struct {
	sink
	filename  string
	file      *os.File
	bufWriter *bufio.Writer
	async     *dispatcher
	closed    bool
}

// NewFileHandler opens (creating if needed) the file and its directory.
// Failures are reported as *FileError.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, &FileError{Op: "open", Path: cfg.Filename, Err: fmt.Errorf("filename is required")}
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(nil)
	}
	if cfg.BufferBytes <= 0 {
		cfg.BufferBytes = 4096
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, &FileError{Op: "mkdir", Path: cfg.Filename, Err: err}
	}
	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, &FileError{Op: "open", Path: cfg.Filename, Err: err}
	}

	h := &FileHandler{
		filename:  cfg.Filename,
		file:      file,
		bufWriter: bufio.NewWriterSize(file, cfg.BufferBytes),
	}
	h.init("file", h.bufWriter, cfg.Formatter, false)
	if cfg.Async {
		h.async = newDispatcher(cfg.asyncConfig(), h.stats, h.write)
	}
	return h, nil
}

// Filename returns the path the handler writes to.
func (h *FileHandler) Filename() string {
	return h.filename
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	if !h.enabled(entry.Level) {
		return nil
	}
	if h.async != nil {
		return h.async.enqueue(entry)
	}
	return h.write(entry)
}

// HandleLog processes log data directly without requiring a pooled Entry.
func (h *FileHandler) HandleLog(t time.Time, level core.Level, target, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
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
func (h *FileHandler) CanRecycleEntry() bool {
	return h.async == nil
}

// Flush writes buffered lines to the file.
func (h *FileHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	return h.bufWriter.Flush()
}

// Close drains the queue, then flushes, syncs and closes the file.
func (h *FileHandler) Close() error {
	if h.async != nil {
		h.async.close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	if err := h.bufWriter.Flush(); err != nil {
		h.file.Close()
		return err
	}
	if err := h.file.Sync(); err != nil {
		h.file.Close()
		return err
	}
	return h.file.Close()
}

func (cfg FileConfig) asyncConfig() AsyncConfig {
	return AsyncConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}
}
