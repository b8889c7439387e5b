// Package handler delivers rendered log lines to their destination.
//
// Handlers run synchronously by default. With Async set, entries go to a
// bounded channel drained by a background goroutine, so slow I/O never
// sits on the caller's hot path.
//
// When the async queue is full, each handler applies a per-level
// OverflowPolicy: DropNewest (default for Trace through Warn), DropOldest,
// or Block with a configurable timeout (default for Error). Low-priority
// lines never stall the application and errors are never dropped
// silently.
//
// Built-in handlers:
//
//   - ConsoleHandler writes formatted entries to any io.Writer (default: stdout).
//   - FileHandler appends to a file through a buffered writer. Open
//     failures are reported as *FileError.
//   - MultiHandler fans out a single entry to multiple child handlers and
//     combines their errors with go.uber.org/multierr.
//   - SlogHandler adapts the Handler interface to log/slog.Handler.
//
// Handlers consult formatter.LevelFilter, so entries the formatter would
// not render are dropped before queueing. Dropped, blocked and processed
// counts are kept in a VictoriaMetrics metrics.Set per handler and can be
// exported with Stats.WritePrometheus.
package handler
