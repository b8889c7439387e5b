package handler

import (
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/twyg/core"
)

// MultiHandler sends log entries to multiple handlers. Errors from the
// children are combined, so one failing sink neither hides the others'
// errors nor stops them from receiving the entry.
type MultiHandler struct {
	handlers     []Handler
	fastHandlers []FastHandler // nil where the child doesn't implement it
	recycle      []bool        // child returns entries before Handle returns
	allFast      bool          // every child implements FastHandler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:     handlers,
		fastHandlers: make([]FastHandler, len(handlers)),
		recycle:      make([]bool, len(handlers)),
		allFast:      true,
	}
	for i, h := range handlers {
		if fh, ok := h.(FastHandler); ok {
			m.fastHandlers[i] = fh
		} else {
			m.allFast = false
		}
		m.recycle[i] = CanRecycle(h)
	}
	return m
}

// HandleLog processes log data directly without requiring a pooled Entry.
// When all children implement FastHandler, no Entry is built at all.
func (h *MultiHandler) HandleLog(t time.Time, level core.Level, target, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	var err error
	if h.allFast {
		for _, fh := range h.fastHandlers {
			err = multierr.Append(err, fh.HandleLog(t, level, target, msg, loggerFields, callFields, caller))
		}
		return err
	}

	for i, child := range h.handlers {
		if fh := h.fastHandlers[i]; fh != nil {
			err = multierr.Append(err, fh.HandleLog(t, level, target, msg, loggerFields, callFields, caller))
			continue
		}
		// Each slow child gets its own entry; async children keep theirs.
		entry := core.GetEntry()
		entry.Reset(t, level, target, msg, caller, loggerFields, callFields)
		err = multierr.Append(err, child.Handle(entry))
		if h.recycle[i] {
			core.PutEntry(entry)
		}
	}
	return err
}

// Handle processes a log entry by sending it to all handlers. Children
// that keep entries past Handle receive a private copy, so the caller
// keeps ownership of entry.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for i, child := range h.handlers {
		if h.recycle[i] {
			err = multierr.Append(err, child.Handle(entry))
			continue
		}
		cp := core.GetEntry()
		cp.Reset(entry.Time, entry.Level, entry.Target, entry.Message, entry.Caller, entry.Fields)
		err = multierr.Append(err, child.Handle(cp))
	}
	return err
}

// CanRecycleEntry returns true: Handle never lets a child keep the
// caller's entry.
func (h *MultiHandler) CanRecycleEntry() bool {
	return true
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Close())
	}
	return err
}
