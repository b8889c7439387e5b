// Package formatter turns log entries into bytes.
//
// Render and AppendLine are the line renderer: a pure function of an
// *opts.Opts and a *core.Entry producing
//
//	<timestamp> <level> [<file>:<line> ]<target> <arrow> <message>[<sep><k>={<v>}, ...]
//
// Entries below the configured level render nothing. Each field span is
// styled on its own through the resolved palette table, so disabling
// color changes nothing but the escape sequences. Rendering never panics;
// a failing timestamp falls back to opts.FallbackLayout and a panicking
// attribute value renders fmt's %!v(PANIC=...) marker.
//
// TextFormatter and JSONFormatter adapt the renderer to handlers. Both
// implement Formatter, WriterFormatter and BufferFormatter, hold their
// configuration in an atomic pointer that Swap replaces without locking
// readers, and use a pooled bytes.Buffer internally.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
