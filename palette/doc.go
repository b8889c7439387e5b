// Package palette is the color model of twyg.
//
// An Attribute is one of 17 terminal colors (8 standard, 8 high-intensity
// and Reset). A Color pairs a foreground and a background Attribute.
// Colors maps each of the 13 renderable fields (timestamp, the five level
// tokens, message, arrow, caller file and line, target, attribute key and
// value) to an optional override.
//
// Resolution follows three steps: coloring globally disabled yields an
// unstyled Style; otherwise an explicit override wins, and an explicit
// reset/reset override still yields unstyled text while the rest of the
// line stays colored; otherwise the built-in default applies. Table
// resolves all fields once so rendering is a lookup.
//
// Escape sequences are produced by github.com/fatih/color with coloring
// forced on per style. Whether the destination can show colors is decided
// by the caller through the coloured flag, never by this package.
package palette
