// Package opts holds the rendering configuration of twyg.
//
// An Opts is built once with the value-type Builder, whose setters never
// fail; Build is the only fallible step and rejects custom timestamp
// patterns that do not compile:
//
//	o, err := opts.NewBuilder().
//		Level(core.DebugLevel).
//		ReportCaller(true).
//		TimestampFormat(opts.Custom("%H:%M:%S")).
//		WithLevelPadding().
//		Build()
//	if errors.Is(err, opts.ErrInvalidTimeFormat) {
//		// ...
//	}
//
// The built value is immutable. To change the configuration at runtime,
// derive a new one with o.Builder() and swap it in atomically.
package opts
