package logger

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/philipp01105/twyg/formatter"
	"github.com/philipp01105/twyg/handler"
	"github.com/philipp01105/twyg/opts"
)

// newTestLogger returns a builder writing uncolored lines to buf. The
// formatter passes every level so only the logger's level gates output.
func newTestLogger(t testing.TB, buf *bytes.Buffer, b opts.Builder) *Builder {
	t.Helper()
	o, err := b.Coloured(false).Level(TraceLevel).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    buf,
		Formatter: formatter.NewTextFormatter(o),
	})
	return NewBuilder().WithHandler(h)
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, opts.NewBuilder()).
		WithLevel(InfoLevel).
		Build()

	// Debug should not be logged (below Info level)
	logger.Trace("trace message")
	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Errorf("Trace/Debug message was logged when level is Info: %q", buf.String())
	}

	logger.Info("info message")
	if !strings.Contains(buf.String(), " INFO main ▶ info message\n") {
		t.Errorf("Expected info line in output, got: %s", buf.String())
	}

	buf.Reset()
	logger.Warn("warn message")
	if !strings.Contains(buf.String(), " WARN main ▶ warn message\n") {
		t.Errorf("Expected warn line in output, got: %s", buf.String())
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), " ERROR main ▶ error message\n") {
		t.Errorf("Expected error line in output, got: %s", buf.String())
	}
}

func TestLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, opts.NewBuilder()).
		WithLevel(TraceLevel).
		Build()

	logger.Trace("deep detail")
	if !strings.Contains(buf.String(), " TRACE main ▶ deep detail\n") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	logger.Tracef("step %d", 3)
	if !strings.Contains(buf.String(), "▶ step 3\n") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLogger_LevelVar(t *testing.T) {
	var buf bytes.Buffer
	lv := NewLevelVar(WarnLevel)
	logger := newTestLogger(t, &buf, opts.NewBuilder()).
		WithLevelVar(lv).
		Build()
	child := logger.With(String("k", "v"))

	child.Info("hidden")
	if buf.Len() > 0 {
		t.Fatalf("Info logged at Warn level: %q", buf.String())
	}

	lv.Set(DebugLevel)
	if logger.Level() != DebugLevel {
		t.Errorf("Level() = %v, want DEBUG", logger.Level())
	}
	child.Debug("visible")
	if !strings.Contains(buf.String(), "visible: k={v}") {
		t.Errorf("child logger did not follow the LevelVar: %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, opts.NewBuilder()).
		WithLevel(InfoLevel).
		WithFields(String("app", "test")).
		Build()

	// Create child logger with additional fields
	childLogger := logger.With(String("request_id", "123"))

	childLogger.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "test message: app={test}, request_id={123}\n") {
		t.Errorf("Expected logger fields before child fields, got: %s", output)
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, opts.NewBuilder()).
		WithLevel(InfoLevel).
		Build()

	logger.Info("test",
		String("str", "value"),
		Int("int", 42),
		Bool("bool", true),
		Float64("float", 3.14),
	)

	output := buf.String()
	for _, want := range []string{"str={value}", "int={42}", "bool={true}", "float={3.14}"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestLogger_FormattedLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, opts.NewBuilder()).
		WithLevel(InfoLevel).
		Build()

	logger.Infof("User %s logged in with ID %d", "alice", 123)

	output := buf.String()
	if !strings.Contains(output, "User alice logged in with ID 123") {
		t.Errorf("Expected formatted message in output, got: %s", output)
	}
}

func TestLogger_ImmutableWith(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(t, &buf, opts.NewBuilder()).
		WithLevel(InfoLevel).
		WithFields(String("parent", "value")).
		Build()

	child := parent.With(String("child", "value"))

	// Parent should only have parent field
	parent.Info("parent message")
	parentOutput := buf.String()
	if !strings.Contains(parentOutput, "parent={value}") {
		t.Error("Parent logger should have parent field")
	}
	if strings.Contains(parentOutput, "child={value}") {
		t.Error("Parent logger should not have child field")
	}

	buf.Reset()

	// Child should have both fields
	child.Info("child message")
	childOutput := buf.String()
	if !strings.Contains(childOutput, "parent={value}") {
		t.Error("Child logger should have parent field")
	}
	if !strings.Contains(childOutput, "child={value}") {
		t.Error("Child logger should have child field")
	}
}

func TestLogger_Target(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, opts.NewBuilder()).Build()

	if logger.Target() != DefaultTarget {
		t.Errorf("Target() = %q, want %q", logger.Target(), DefaultTarget)
	}

	logger.Info("from main")
	db := logger.WithTarget("db")
	db.Info("from db")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], " INFO main ▶ from main") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], " INFO db ▶ from db") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if logger.Target() != DefaultTarget {
		t.Error("WithTarget must not change the parent")
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, opts.NewBuilder().ReportCaller(true)).
		WithCaller(true).
		Build()

	_, _, line, _ := runtime.Caller(0)
	logger.Info("with caller")
	logger.Info("with caller and field", String("k", "v"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	for i, l := range lines {
		want := fmt.Sprintf(" INFO logger_test.go:%d main ▶ ", line+1+i)
		if !strings.Contains(l, want) {
			t.Errorf("line %d = %q, want it to contain %q", i, l, want)
		}
	}
}

func TestLogger_NoHandler(t *testing.T) {
	logger := NewBuilder().Build()

	if logger.Enabled(ErrorLevel) {
		t.Error("a logger without handler must not be enabled")
	}
	logger.Error("dropped")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"trace", "DEBUG", "Info", "warning", "err"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q) error = %v", s, err)
		}
	}
	if _, err := ParseLevel("fatal"); err == nil {
		t.Error("ParseLevel(\"fatal\") should fail")
	}
}

func BenchmarkLogger_LevelCheck(b *testing.B) {
	logger := newTestLogger(b, &bytes.Buffer{}, opts.NewBuilder()).
		WithLevel(InfoLevel).
		Build()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Should exit early due to level check
		logger.Debug("debug message", String("key", "value"))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := newTestLogger(b, &buf, opts.NewBuilder()).
		WithLevel(InfoLevel).
		Build()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		logger.Info("test message", String("key", "value"))
	}
}
