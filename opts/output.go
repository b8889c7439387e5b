package opts

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// OutputKind selects the sink family.
type OutputKind uint8

const (
	OutputStdout OutputKind = iota
	OutputStderr
	OutputFile
)

// Output is the destination of rendered lines: standard output, standard
// error or a file path.
type Output struct {
	Kind OutputKind
	Path string
}

var (
	// Stdout writes to the process standard output.
	Stdout = Output{Kind: OutputStdout}
	// Stderr writes to the process standard error.
	Stderr = Output{Kind: OutputStderr}
)

// File returns an output that appends to path.
func File(path string) Output {
	return Output{Kind: OutputFile, Path: path}
}

// IsFile reports whether the output is a file.
func (o Output) IsFile() bool {
	return o.Kind == OutputFile
}

// String returns "stdout", "stderr" or "file:<path>".
func (o Output) String() string {
	switch o.Kind {
	case OutputStdout:
		return "stdout"
	case OutputStderr:
		return "stderr"
	case OutputFile:
		return "file:" + o.Path
	default:
		return "unknown"
	}
}

// ParseOutput accepts "stdout", "stderr", "file:<path>" or a bare path.
func ParseOutput(s string) (Output, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "stdout", "":
		return Stdout, nil
	case "stderr":
		return Stderr, nil
	}
	if path, ok := strings.CutPrefix(trimmed, "file:"); ok {
		if path == "" {
			return Output{}, fmt.Errorf("invalid output %q: empty file path", s)
		}
		return File(path), nil
	}
	return File(trimmed), nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Output) MarshalText() ([]byte, error) {
	if o.Kind > OutputFile {
		return nil, fmt.Errorf("invalid output kind %d", o.Kind)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Output) UnmarshalText(text []byte) error {
	parsed, err := ParseOutput(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// SupportsColor reports whether the destination is a terminal that should
// receive escape sequences. Files never do; a set NO_COLOR variable
// disables color everywhere.
func (o Output) SupportsColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	var f *os.File
	switch o.Kind {
	case OutputStdout:
		f = os.Stdout
	case OutputStderr:
		f = os.Stderr
	default:
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
