package handler

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"

	"github.com/philipp01105/twyg/core"
)

// Stats tracks handler statistics. The counters live in a private
// metrics.Set, so each handler can be exported in Prometheus text format
// without touching the global registry.
type Stats struct {
	set       *metrics.Set
	dropped   [5]*metrics.Counter
	blocked   *metrics.Counter
	processed *metrics.Counter
}

// NewStats creates a Stats instance whose series carry the handler="name"
// label.
func NewStats(name string) *Stats {
	s := &Stats{set: metrics.NewSet()}
	for _, l := range core.Levels() {
		s.dropped[l] = s.set.NewCounter(fmt.Sprintf(`twyg_handler_dropped_total{handler=%q,level=%q}`, name, l.Name()))
	}
	s.blocked = s.set.NewCounter(fmt.Sprintf(`twyg_handler_blocked_total{handler=%q}`, name))
	s.processed = s.set.NewCounter(fmt.Sprintf(`twyg_handler_processed_total{handler=%q}`, name))
	return s
}

// counter returns the dropped counter for level, clamping unknown levels
// to Error.
func (s *Stats) counter(level core.Level) *metrics.Counter {
	if level < core.TraceLevel || level > core.ErrorLevel {
		level = core.ErrorLevel
	}
	return s.dropped[level]
}

// IncrementDropped increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	s.counter(level).Inc()
}

// IncrementBlocked increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Inc()
}

// IncrementProcessed increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Inc()
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	if level < core.TraceLevel || level > core.ErrorLevel {
		return 0
	}
	return s.dropped[level].Get()
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return s.blocked.Get()
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return s.processed.Get()
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for _, c := range s.dropped {
		total += c.Get()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for _, c := range s.dropped {
		c.Set(0)
	}
	s.blocked.Set(0)
	s.processed.Set(0)
}

// WritePrometheus writes the counters in Prometheus text exposition format.
func (s *Stats) WritePrometheus(w io.Writer) {
	s.set.WritePrometheus(w)
}

// Snapshot returns a snapshot of current stats
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Level]uint64, len(s.dropped))
	for _, l := range core.Levels() {
		dropped[l] = s.GetDropped(l)
	}
	return Snapshot{
		DroppedTotal:   dropped,
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
	}
}
