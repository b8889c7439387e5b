package palette

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Attribute is one of the 17 terminal colors a field can be painted with.
// Reset means "no color" for the side (foreground or background) it is
// used on.
type Attribute uint8

const (
	Reset Attribute = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	HiBlack
	HiRed
	HiGreen
	HiYellow
	HiBlue
	HiMagenta
	HiCyan
	HiWhite
)

var attributeNames = [...]string{
	Reset:     "reset",
	Black:     "black",
	Red:       "red",
	Green:     "green",
	Yellow:    "yellow",
	Blue:      "blue",
	Magenta:   "magenta",
	Cyan:      "cyan",
	White:     "white",
	HiBlack:   "hi_black",
	HiRed:     "hi_red",
	HiGreen:   "hi_green",
	HiYellow:  "hi_yellow",
	HiBlue:    "hi_blue",
	HiMagenta: "hi_magenta",
	HiCyan:    "hi_cyan",
	HiWhite:   "hi_white",
}

// Attributes returns all attributes in declaration order.
func Attributes() []Attribute {
	out := make([]Attribute, 0, len(attributeNames))
	for a := range attributeNames {
		out = append(out, Attribute(a))
	}
	return out
}

// String returns the configuration name of the attribute.
func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return "unknown"
}

// ParseAttribute parses an attribute name. Matching ignores case and the
// separators "_", "-" and " ", so "HiYellow", "hi-yellow" and "hi_yellow"
// are equivalent. "none", "default" and the empty string mean Reset; "grey"
// and "gray" are aliases for HiBlack.
func ParseAttribute(s string) (Attribute, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	switch key {
	case "", "none", "default":
		return Reset, nil
	case "grey", "gray":
		return HiBlack, nil
	}
	for i, name := range attributeNames {
		if strings.ReplaceAll(name, "_", "") == key {
			return Attribute(i), nil
		}
	}
	return Reset, fmt.Errorf("invalid color %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Attribute) MarshalText() ([]byte, error) {
	if int(a) >= len(attributeNames) {
		return nil, fmt.Errorf("invalid color %d", a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Attribute) UnmarshalText(text []byte) error {
	parsed, err := ParseAttribute(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// fg returns the SGR foreground attribute. ok is false for Reset.
func (a Attribute) fg() (color.Attribute, bool) {
	switch {
	case a == Reset || int(a) >= len(attributeNames):
		return 0, false
	case a <= White:
		return color.FgBlack + color.Attribute(a-Black), true
	default:
		return color.FgHiBlack + color.Attribute(a-HiBlack), true
	}
}

// bg returns the SGR background attribute. ok is false for Reset.
func (a Attribute) bg() (color.Attribute, bool) {
	switch {
	case a == Reset || int(a) >= len(attributeNames):
		return 0, false
	case a <= White:
		return color.BgBlack + color.Attribute(a-Black), true
	default:
		return color.BgHiBlack + color.Attribute(a-HiBlack), true
	}
}
