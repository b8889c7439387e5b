package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mattn/go-colorable"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/formatter"
	"github.com/philipp01105/twyg/handler"
	"github.com/philipp01105/twyg/opts"
)

var (
	// ErrAlreadyInitialized is returned by a second call to Setup.
	ErrAlreadyInitialized = errors.New("logger already initialized")

	// ErrNotInitialized is returned by Reconfigure before Setup.
	ErrNotInitialized = errors.New("logger not initialized")

	// ErrOutputChanged is returned by Reconfigure when the new options
	// name a different output than the installed sink.
	ErrOutputChanged = errors.New("output cannot be changed after setup")
)

// InitError reports why the process-wide logger could not be installed
// or reconfigured.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return "failed to initialize logger: " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// installation is the state created by Setup and mutated by Reconfigure.
type installation struct {
	text   *formatter.TextFormatter
	level  *core.LevelVar
	logger *Logger
	output opts.Output
}

var (
	setupMu   sync.Mutex
	installed *installation
)

// Setup installs a logger configured by o as the package default and as
// the log/slog default. It may succeed only once per process; later calls
// return an *InitError wrapping ErrAlreadyInitialized. A nil o means
// opts.Default(). Failing to open a file output returns *handler.FileError.
func Setup(o *opts.Opts) (*Logger, error) {
	if o == nil {
		o = opts.Default()
	}

	setupMu.Lock()
	defer setupMu.Unlock()

	if installed != nil {
		return nil, &InitError{Err: ErrAlreadyInitialized}
	}

	text := formatter.NewTextFormatter(o)
	h, err := newSink(o.Output(), text)
	if err != nil {
		return nil, err
	}

	level := core.NewLevelVar(o.Level())
	l := NewBuilder().
		WithHandler(h).
		WithLevelVar(level).
		WithCaller(o.ReportCaller()).
		Build()

	SetDefault(l)
	slog.SetDefault(slog.New(handler.NewSlogHandler(h, level, DefaultTarget)))

	installed = &installation{
		text:   text,
		level:  level,
		logger: l,
		output: o.Output(),
	}
	return l, nil
}

// Reconfigure replaces the formatting options and level of the logger
// installed by Setup. Loggers derived from it, including the slog
// default, see the change on their next call. The output cannot change.
func Reconfigure(o *opts.Opts) error {
	if o == nil {
		o = opts.Default()
	}

	setupMu.Lock()
	defer setupMu.Unlock()

	if installed == nil {
		return &InitError{Err: ErrNotInitialized}
	}
	if o.Output() != installed.output {
		return fmt.Errorf("%w: have %s, got %s", ErrOutputChanged, installed.output, o.Output())
	}

	installed.text.Swap(o)
	installed.level.Set(o.Level())
	installed.logger.caller.Store(o.ReportCaller())
	return nil
}

// newSink opens the handler for out.
func newSink(out opts.Output, f formatter.Formatter) (handler.Handler, error) {
	switch out.Kind {
	case opts.OutputStderr:
		return handler.NewConsoleHandler(handler.ConsoleConfig{
			Writer:    colorable.NewColorableStderr(),
			Formatter: f,
		}), nil
	case opts.OutputFile:
		h, err := handler.NewFileHandler(handler.FileConfig{
			Filename:  out.Path,
			Formatter: f,
		})
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return handler.NewConsoleHandler(handler.ConsoleConfig{
			Writer:    colorable.NewColorableStdout(),
			Formatter: f,
		}), nil
	}
}
