package opts

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/palette"
)

const (
	DefaultPadAmount    = 5
	DefaultArrowChar    = "▶"
	DefaultMsgSeparator = ": "
)

// Opts is the validated, immutable rendering configuration. It is only
// produced by Builder.Build and is safe for concurrent use without locks.
// A configuration change is a new Opts value.
type Opts struct {
	coloured     bool
	output       Output
	level        core.Level
	reportCaller bool
	tsFormat     TSFormat
	padLevel     bool
	padAmount    int
	padSide      PadSide
	arrowChar    string
	msgSeparator string
	colors       palette.Colors

	// derived at build time
	styles    *palette.Table
	ts        *strftime.Strftime
	levelText [5]string
}

func (o *Opts) Coloured() bool { return o.coloured }
func (o *Opts) Output() Output { return o.output }
func (o *Opts) Level() core.Level { return o.level }
func (o *Opts) ReportCaller() bool { return o.reportCaller }
func (o *Opts) TimestampFormat() TSFormat { return o.tsFormat }
func (o *Opts) PadsLevel() bool { return o.padLevel }
func (o *Opts) PadAmount() int { return o.padAmount }
func (o *Opts) PadSide() PadSide { return o.padSide }
func (o *Opts) ArrowChar() string { return o.arrowChar }
func (o *Opts) MsgSeparator() string { return o.msgSeparator }
func (o *Opts) Enabled(level core.Level) bool { return level.Enabled(o.level) }
func (o *Opts) Colors() palette.Colors { return o.colors.Clone() }
func (o *Opts) Style(f palette.Field) palette.Style { return o.Styles().Style(f) }

var plainTable = palette.NewTable(false, palette.Colors{})

// Styles returns the resolved style of every field.
func (o *Opts) Styles() *palette.Table {
	if o.styles == nil {
		return plainTable
	}
	return o.styles
}

// LevelText returns the level token, padded when padding is enabled.
func (o *Opts) LevelText(level core.Level) string {
	if level >= core.TraceLevel && int(level) < len(o.levelText) && o.levelText[level] != "" {
		return o.levelText[level]
	}
	if o.padLevel {
		return Pad(level.String(), o.padAmount, o.padSide)
	}
	return level.String()
}

// AppendTimestamp appends t formatted with the configured pattern to dst.
// A missing compiled pattern or a panic while formatting falls back to
// FallbackLayout for the timestamp alone.
func (o *Opts) AppendTimestamp(dst []byte, t time.Time) (out []byte) {
	n := len(dst)
	defer func() {
		if r := recover(); r != nil {
			out = t.AppendFormat(dst[:n], FallbackLayout)
		}
	}()
	if o.ts == nil {
		return t.AppendFormat(dst, FallbackLayout)
	}
	return o.ts.FormatBuffer(dst, t)
}

// FormatTimestamp is AppendTimestamp returning a string.
func (o *Opts) FormatTimestamp(t time.Time) string {
	return string(o.AppendTimestamp(make([]byte, 0, 32), t))
}

// Builder returns a builder seeded with o.
func (o *Opts) Builder() Builder {
	b := Builder{o: *o}
	b.o.colors = o.colors.Clone()
	return b
}

func (o *Opts) String() string {
	return fmt.Sprintf("coloured=%t output=%s level=%s report_caller=%t timestamp_format=%s pad_level=%t pad_amount=%d pad_side=%s arrow_char=%q msg_separator=%q",
		o.coloured, o.output, o.level.Name(), o.reportCaller, o.tsFormat, o.padLevel, o.padAmount, o.padSide, o.arrowChar, o.msgSeparator)
}

// Builder assembles an Opts. It is a value type: every setter returns an
// updated copy and never fails. Build performs the only validation.
type Builder struct {
	o          Opts
	autoColour bool
}

// NewBuilder returns a builder holding the defaults.
func NewBuilder() Builder {
	return Builder{o: Opts{
		coloured:     true,
		output:       Stdout,
		level:        core.InfoLevel,
		tsFormat:     Standard,
		padAmount:    DefaultPadAmount,
		padSide:      PadRight,
		arrowChar:    DefaultArrowChar,
		msgSeparator: DefaultMsgSeparator,
	}}
}

// Coloured enables or disables all styling. It cancels AutoColour.
func (b Builder) Coloured(v bool) Builder {
	b.o.coloured = v
	b.autoColour = false
	return b
}

// AutoColour makes Build enable styling only when the output supports it.
func (b Builder) AutoColour() Builder {
	b.autoColour = true
	return b
}

func (b Builder) Output(out Output) Builder {
	b.o.output = out
	return b
}

func (b Builder) Level(level core.Level) Builder {
	b.o.level = level
	return b
}

func (b Builder) ReportCaller(v bool) Builder {
	b.o.reportCaller = v
	return b
}

func (b Builder) TimestampFormat(f TSFormat) Builder {
	b.o.tsFormat = f
	return b
}

func (b Builder) PadLevel(v bool) Builder {
	b.o.padLevel = v
	return b
}

// PadAmount sets the padded level width. Negative widths are clamped to 0.
func (b Builder) PadAmount(n int) Builder {
	b.o.padAmount = max(n, 0)
	return b
}

func (b Builder) PadSide(s PadSide) Builder {
	b.o.padSide = s
	return b
}

func (b Builder) ArrowChar(s string) Builder {
	b.o.arrowChar = s
	return b
}

func (b Builder) MsgSeparator(s string) Builder {
	b.o.msgSeparator = s
	return b
}

// Colors replaces the whole override table.
func (b Builder) Colors(cs palette.Colors) Builder {
	b.o.colors = cs.Clone()
	return b
}

// Color overrides a single field.
func (b Builder) Color(f palette.Field, c palette.Color) Builder {
	b.o.colors = b.o.colors.With(f, c)
	return b
}

// WithLevelPadding pads level tokens to the default width on the right.
func (b Builder) WithLevelPadding() Builder {
	return b.PadLevel(true).PadAmount(DefaultPadAmount).PadSide(PadRight)
}

// NoCaller turns caller reporting off.
func (b Builder) NoCaller() Builder {
	return b.ReportCaller(false)
}

// Build validates the configuration and resolves its derived state.
func (b Builder) Build() (*Opts, error) {
	ts, err := b.o.tsFormat.compile()
	if err != nil {
		return nil, err
	}

	o := b.o
	o.colors = b.o.colors.Clone()
	if b.autoColour {
		o.coloured = o.output.SupportsColor()
	}
	o.ts = ts
	o.styles = palette.NewTable(o.coloured, o.colors)
	for _, l := range core.Levels() {
		if o.padLevel {
			o.levelText[l] = Pad(l.String(), o.padAmount, o.padSide)
		} else {
			o.levelText[l] = l.String()
		}
	}
	return &o, nil
}

// Default returns the default configuration.
func Default() *Opts {
	o, err := NewBuilder().Build()
	if err != nil {
		// presets always compile
		panic(err)
	}
	return o
}
