package opts

import (
	"fmt"
	"strings"
)

// PadSide controls where the level token is padded.
type PadSide uint8

const (
	// PadRight pads on the right, leaving the level left-aligned.
	PadRight PadSide = iota
	// PadLeft pads on the left, leaving the level right-aligned.
	PadLeft
)

func (s PadSide) String() string {
	switch s {
	case PadRight:
		return "right"
	case PadLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParsePadSide parses "left" or "right", ignoring case.
func ParsePadSide(s string) (PadSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "":
		return PadRight, nil
	case "left":
		return PadLeft, nil
	default:
		return PadRight, fmt.Errorf("invalid pad side %q, expected left or right", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s PadSide) MarshalText() ([]byte, error) {
	if s > PadLeft {
		return nil, fmt.Errorf("invalid pad side %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *PadSide) UnmarshalText(text []byte) error {
	parsed, err := ParsePadSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Pad pads name with spaces to width. Names already at least width long
// are returned unchanged; nothing is ever truncated.
func Pad(name string, width int, side PadSide) string {
	n := len(name)
	if n >= width {
		return name
	}
	fill := strings.Repeat(" ", width-n)
	if side == PadLeft {
		return fill + name
	}
	return name + fill
}
