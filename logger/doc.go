// Package logger is the public API of twyg. Most users only need to
// import this package and opts.
//
// Setup installs the process-wide logger from an *opts.Opts. It picks the
// sink named by the options (stdout, stderr or a file), makes the logger
// the package default and routes log/slog through the same formatter:
//
//	o, err := opts.NewBuilder().
//	    Level(core.DebugLevel).
//	    ReportCaller(true).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	log, err := logger.Setup(o)
//
// Setup succeeds once per process. Reconfigure later swaps the formatting
// options and level in place; the output chosen at Setup stays fixed.
//
// A Logger is immutable after construction. Its level and caller switch
// are shared variables, so a reconfiguration reaches every logger derived
// with With or WithTarget. For custom wiring, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithTarget("db").
//	    Build()
//
// Level checks happen before any allocation, so filtered-out
// messages cost only an atomic load and a comparison.
package logger
