package palette

import (
	"fmt"

	"github.com/fatih/color"
)

// Color pairs a foreground and a background attribute. The zero value is
// reset/reset, which paints nothing.
type Color struct {
	Fg Attribute `json:"fg" yaml:"fg"`
	Bg Attribute `json:"bg" yaml:"bg"`
}

// Fg returns a foreground-only color.
func Fg(a Attribute) Color {
	return Color{Fg: a}
}

// New returns a color with both foreground and background set.
func New(fg, bg Attribute) Color {
	return Color{Fg: fg, Bg: bg}
}

// IsReset reports whether the color paints nothing.
func (c Color) IsReset() bool {
	return c.Fg == Reset && c.Bg == Reset
}

// String returns "fg/bg".
func (c Color) String() string {
	return fmt.Sprintf("%s/%s", c.Fg, c.Bg)
}

// Ptr returns a pointer to a copy of c, for use as a Colors override.
func (c Color) Ptr() *Color {
	return &c
}

// sgr builds the fatih/color value for c with coloring forced on, so the
// output does not depend on whether the process writes to a terminal.
// It returns nil for reset/reset.
func (c Color) sgr() *color.Color {
	var attrs []color.Attribute
	if a, ok := c.Fg.fg(); ok {
		attrs = append(attrs, a)
	}
	if a, ok := c.Bg.bg(); ok {
		attrs = append(attrs, a)
	}
	if len(attrs) == 0 {
		return nil
	}
	sgr := color.New(attrs...)
	sgr.EnableColor()
	return sgr
}

// Paint wraps text in the escape sequences for c. Reset colors return
// text unchanged.
func (c Color) Paint(text string) string {
	sgr := c.sgr()
	if sgr == nil {
		return text
	}
	return sgr.Sprint(text)
}
