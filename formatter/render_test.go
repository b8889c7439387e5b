package formatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/opts"
	"github.com/philipp01105/twyg/palette"
)

var at = time.Date(2024, time.March, 5, 14, 30, 52, 0, time.UTC)

func plain() opts.Builder {
	return opts.NewBuilder().Coloured(false).Level(core.TraceLevel)
}

func sampleEntries() []*core.Entry {
	caller := core.CallerInfo{File: "/src/app/main.go", ShortFile: "main.go", Line: 42, Defined: true}
	return []*core.Entry{
		{Time: at, Level: core.TraceLevel, Target: "app", Message: "trace"},
		{Time: at, Level: core.DebugLevel, Target: "app::db", Message: "query", Caller: caller},
		{Time: at, Level: core.InfoLevel, Target: "svc", Message: "request handled",
			Fields: []core.Field{core.String("user", "alice"), core.Int("id", 42)}},
		{Time: at, Level: core.WarnLevel, Target: "svc", Message: "slow", Caller: caller,
			Fields: []core.Field{core.Duration("took", 1500 * time.Millisecond)}},
		{Time: at, Level: core.ErrorLevel, Target: "svc", Message: "boom",
			Fields: []core.Field{core.Err(errors.New("disk full")), core.Bool("retry", false)}},
		{Time: at, Level: core.InfoLevel, Message: ""},
	}
}

func TestRender_Layout(t *testing.T) {
	caller := core.CallerInfo{File: "/src/app/main.go", ShortFile: "main.go", Line: 42, Defined: true}

	tests := []struct {
		name   string
		b      opts.Builder
		entry  core.Entry
		expect string
	}{
		{
			name:   "default layout",
			b:      plain(),
			entry:  core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "hello"},
			expect: "2024-03-05 14:30:52 INFO svc ▶ hello",
		},
		{
			name:   "caller",
			b:      plain().ReportCaller(true),
			entry:  core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "hello", Caller: caller},
			expect: "2024-03-05 14:30:52 INFO main.go:42 svc ▶ hello",
		},
		{
			name:   "caller off ignores caller data",
			b:      plain(),
			entry:  core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "hello", Caller: caller},
			expect: "2024-03-05 14:30:52 INFO svc ▶ hello",
		},
		{
			name:   "caller on without caller data",
			b:      plain().ReportCaller(true),
			entry:  core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "hello"},
			expect: "2024-03-05 14:30:52 INFO svc ▶ hello",
		},
		{
			name: "caller placeholders",
			b:    plain().ReportCaller(true),
			entry: core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "hello",
				Caller: core.CallerInfo{Defined: true}},
			expect: "2024-03-05 14:30:52 INFO ??:?? svc ▶ hello",
		},
		{
			name: "caller full path without short name",
			b:    plain().ReportCaller(true),
			entry: core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "hello",
				Caller: core.CallerInfo{File: "/src/x.go", Line: 7, Defined: true}},
			expect: "2024-03-05 14:30:52 INFO /src/x.go:7 svc ▶ hello",
		},
		{
			name: "attributes with custom separator",
			b:    plain().MsgSeparator(" | "),
			entry: core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "login",
				Fields: []core.Field{core.String("user", "alice"), core.String("id", "42")}},
			expect: "2024-03-05 14:30:52 INFO svc ▶ login | user={alice}, id={42}",
		},
		{
			name: "duplicate keys render independently",
			b:    plain(),
			entry: core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "m",
				Fields: []core.Field{core.Int("n", 1), core.Int("n", 2)}},
			expect: "2024-03-05 14:30:52 INFO svc ▶ m: n={1}, n={2}",
		},
		{
			name:   "padded right",
			b:      plain().PadLevel(true).PadAmount(7),
			entry:  core.Entry{Time: at, Level: core.WarnLevel, Target: "svc", Message: "m"},
			expect: "2024-03-05 14:30:52 WARN    svc ▶ m",
		},
		{
			name:   "padded left",
			b:      plain().PadLevel(true).PadAmount(7).PadSide(opts.PadLeft),
			entry:  core.Entry{Time: at, Level: core.WarnLevel, Target: "svc", Message: "m"},
			expect: "2024-03-05 14:30:52    WARN svc ▶ m",
		},
		{
			name:   "custom arrow and timestamp",
			b:      plain().ArrowChar("->").TimestampFormat(opts.Custom("%H:%M:%S")),
			entry:  core.Entry{Time: at, Level: core.ErrorLevel, Target: "svc", Message: "m"},
			expect: "14:30:52 ERROR svc -> m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := Render(mustOpts(t, tt.b), &tt.entry)
			if !ok {
				t.Fatal("Render() filtered the entry")
			}
			if line != tt.expect {
				t.Errorf("Render() = %q, want %q", line, tt.expect)
			}
		})
	}
}

func TestRender_Filter(t *testing.T) {
	o := mustOpts(t, opts.NewBuilder().Level(core.WarnLevel))

	for _, e := range sampleEntries() {
		line, ok := Render(o, e)
		want := e.Level >= core.WarnLevel
		if ok != want {
			t.Errorf("Render(%s) ok = %v, want %v", e.Level, ok, want)
		}
		if !ok && line != "" {
			t.Errorf("Render(%s) returned %q for a filtered entry", e.Level, line)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("keep")
	if AppendLine(&buf, o, &core.Entry{Level: core.DebugLevel, Message: "x"}) {
		t.Error("AppendLine() accepted a Debug entry below Warn")
	}
	if buf.String() != "keep" {
		t.Errorf("filtered entry touched the buffer: %q", buf.String())
	}
}

func TestRender_NoEscapesWhenUncoloured(t *testing.T) {
	o := mustOpts(t, plain().ReportCaller(true).WithLevelPadding().
		Colors(palette.Colors{}.With(palette.FieldMessage, palette.New(palette.Red, palette.White))))

	for _, e := range sampleEntries() {
		line, ok := Render(o, e)
		if !ok {
			t.Fatalf("Render(%q) filtered the entry", e.Message)
		}
		if strings.Contains(line, "\x1b[") {
			t.Errorf("uncoloured line has escapes: %q", line)
		}
	}
}

func TestRender_StrippedColouredEqualsPlain(t *testing.T) {
	overrides := palette.Colors{}.
		With(palette.FieldLevelError, palette.New(palette.HiWhite, palette.Red)).
		With(palette.FieldTarget, palette.Color{}).
		With(palette.FieldAttrValue, palette.Fg(palette.HiMagenta))

	builders := []opts.Builder{
		opts.NewBuilder(),
		opts.NewBuilder().ReportCaller(true),
		opts.NewBuilder().WithLevelPadding().PadSide(opts.PadLeft),
		opts.NewBuilder().Colors(overrides).MsgSeparator(" | ").ArrowChar("»"),
		opts.NewBuilder().TimestampFormat(opts.RFC3339).ReportCaller(true).Colors(overrides),
	}

	for _, b := range builders {
		b = b.Level(core.TraceLevel)
		coloured := mustOpts(t, b.Coloured(true))
		uncoloured := mustOpts(t, b.Coloured(false))

		for _, e := range sampleEntries() {
			c, okC := Render(coloured, e)
			p, okP := Render(uncoloured, e)
			if !okC || !okP {
				t.Fatalf("Render(%q) filtered the entry", e.Message)
			}
			if !strings.Contains(c, "\x1b[") {
				t.Errorf("coloured line has no escapes: %q", c)
			}
			if got := ansi.Strip(c); got != p {
				t.Errorf("config %s: stripped %q, plain %q", coloured, got, p)
			}
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	o := mustOpts(t, opts.NewBuilder().Level(core.TraceLevel).ReportCaller(true))
	for _, e := range sampleEntries() {
		first, _ := Render(o, e)
		if second, _ := Render(o, e); first != second {
			t.Errorf("Render() not repeatable: %q then %q", first, second)
		}
	}
}

func TestRender_ErrorOverrideOnlyStylesLevel(t *testing.T) {
	o := mustOpts(t, opts.NewBuilder().
		Color(palette.FieldLevelError, palette.New(palette.HiWhite, palette.Red)))

	line, _ := Render(o, &core.Entry{Time: at, Level: core.ErrorLevel, Target: "svc", Message: "boom"})

	errStyle := palette.New(palette.HiWhite, palette.Red)
	if !strings.Contains(line, errStyle.Paint("ERROR")) {
		t.Errorf("level token not styled by the override: %q", line)
	}
	if !strings.Contains(line, palette.Fg(palette.Green).Paint("boom")) || strings.Contains(line, errStyle.Paint("boom")) {
		t.Errorf("message must keep the message color: %q", line)
	}
	if got := ansi.Strip(line); got != "2024-03-05 14:30:52 ERROR svc ▶ boom" {
		t.Errorf("stripped line = %q", got)
	}
}

func TestRender_ExplicitResetStaysPlain(t *testing.T) {
	o := mustOpts(t, opts.NewBuilder().Color(palette.FieldMessage, palette.Color{}))

	line, _ := Render(o, &core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "plain text"})

	if !strings.HasSuffix(line, " plain text") {
		t.Errorf("message should be unstyled: %q", line)
	}
	if !strings.Contains(line, palette.Fg(palette.HiGreen).Paint("INFO")) {
		t.Errorf("other fields should keep their colors: %q", line)
	}
}

func TestRender_SeparatorsAreNotStyled(t *testing.T) {
	o := mustOpts(t, opts.NewBuilder().ReportCaller(true))
	e := &core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "m",
		Caller: core.CallerInfo{ShortFile: "a.go", Line: 3, Defined: true},
		Fields: []core.Field{core.String("k", "v")}}

	line, _ := Render(o, e)

	hiYellow := palette.Fg(palette.HiYellow)
	cyan := palette.Fg(palette.Cyan)
	for _, want := range []string{
		hiYellow.Paint("a.go") + ":" + hiYellow.Paint("3"),
		": " + hiYellow.Paint("k") + "={" + cyan.Paint("v") + "}",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q lacks %q", line, want)
		}
	}
}

type panicky struct{}

func (panicky) String() string { panic("bad stringer") }

func TestRender_PanickingValue(t *testing.T) {
	o := mustOpts(t, plain())
	e := &core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "m",
		Fields: []core.Field{core.Any("p", panicky{}), core.Int("after", 1)}}

	line, _ := Render(o, e)
	if !strings.Contains(line, "p={%!v(PANIC=String method: bad stringer)}") {
		t.Errorf("panicking value not replaced: %q", line)
	}
	if !strings.HasSuffix(line, ", after={1}") {
		t.Errorf("rendering stopped at the panicking value: %q", line)
	}
}

func TestRender_ZeroTimeUsesNow(t *testing.T) {
	o := mustOpts(t, plain().TimestampFormat(opts.Custom("%Y")))
	line, _ := Render(o, &core.Entry{Level: core.InfoLevel, Target: "svc", Message: "m"})
	if !strings.HasPrefix(line, time.Now().Format("2006")+" ") {
		t.Errorf("zero time should render as now, got %q", line)
	}
}

func TestRender_NilOpts(t *testing.T) {
	line, ok := Render(nil, &core.Entry{Time: at, Level: core.InfoLevel, Target: "svc", Message: "m"})
	if got := ansi.Strip(line); !ok || got != "2024-03-05 14:30:52 INFO svc ▶ m" {
		t.Errorf("Render(nil opts) = %q, %v", got, ok)
	}
	if _, ok := Render(nil, nil); ok {
		t.Error("Render(nil, nil) should report false")
	}
}
