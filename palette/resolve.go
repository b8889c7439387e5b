package palette

import (
	"bytes"

	"github.com/fatih/color"
)

// Source records which precedence step produced a Style.
type Source uint8

const (
	// SourceDisabled means coloring is globally off.
	SourceDisabled Source = iota
	// SourceOverride means the Colors table held an explicit entry.
	SourceOverride
	// SourceDefault means the built-in default was used.
	SourceDefault
)

// String returns the name of the source.
func (s Source) String() string {
	switch s {
	case SourceDisabled:
		return "disabled"
	case SourceOverride:
		return "override"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Style is the resolved coloring of one field. An unstyled Style writes
// text verbatim; Source keeps "globally disabled" and "explicit reset"
// apart even though both write the same bytes.
type Style struct {
	Color  Color
	Source Source
	sgr    *color.Color
}

// Plain reports whether the style writes text without escape sequences.
func (s Style) Plain() bool {
	return s.sgr == nil
}

// Wrap returns text wrapped in the style's escape sequences.
func (s Style) Wrap(text string) string {
	if s.sgr == nil {
		return text
	}
	return s.sgr.Sprint(text)
}

// Append writes the styled text to buf.
func (s Style) Append(buf *bytes.Buffer, text string) {
	if s.sgr == nil {
		buf.WriteString(text)
		return
	}
	buf.WriteString(s.sgr.Sprint(text))
}

// Resolve determines the style of f: with coloured false the field is
// unstyled unconditionally; otherwise an explicit override wins, including
// a reset/reset one; otherwise the built-in default applies.
func Resolve(coloured bool, cs Colors, f Field) Style {
	if !coloured {
		return Style{Source: SourceDisabled}
	}
	if c, ok := cs.Override(f); ok {
		return Style{Color: c, Source: SourceOverride, sgr: c.sgr()}
	}
	c := Default(f)
	return Style{Color: c, Source: SourceDefault, sgr: c.sgr()}
}

// Table holds the resolved style of every field. It is immutable once
// built and safe for concurrent use.
type Table [NumFields]Style

// NewTable resolves every field once.
func NewTable(coloured bool, cs Colors) *Table {
	var t Table
	for _, f := range Fields() {
		t[f] = Resolve(coloured, cs, f)
	}
	return &t
}

// Style returns the resolved style of f.
func (t *Table) Style(f Field) Style {
	if int(f) < NumFields {
		return t[f]
	}
	return Style{Source: SourceDisabled}
}

// Append writes text for field f to buf.
func (t *Table) Append(buf *bytes.Buffer, f Field, text string) {
	t.Style(f).Append(buf, text)
}
