package benchmark

import (
	"time"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/formatter"
	"github.com/philipp01105/twyg/handler"
	"github.com/philipp01105/twyg/opts"
)

// noopHandler renders every entry and drops the line, so benchmarks
// measure the logger and the renderer without any I/O.
type noopHandler struct {
	opts *opts.Opts
}

func newNoopHandler(o *opts.Opts) *noopHandler {
	return &noopHandler{opts: o}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	line, _ := formatter.Render(h.opts, e)
	_ = len(line)
	return nil
}

func (h *noopHandler) HandleLog(t time.Time, level core.Level, target, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	var e core.Entry
	e.Reset(t, level, target, msg, caller, loggerFields, callFields)
	return h.Handle(&e)
}

func (h *noopHandler) CanRecycleEntry() bool {
	return true
}

func (h *noopHandler) Close() error {
	return nil
}

var (
	_ handler.Handler     = (*noopHandler)(nil)
	_ handler.FastHandler = (*noopHandler)(nil)
)
