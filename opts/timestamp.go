package opts

import (
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// FallbackLayout is the Go layout used when a compiled pattern is missing
// or formatting fails at render time.
const FallbackLayout = "2006-01-02 15:04:05"

// TSKind enumerates the timestamp presets.
type TSKind uint8

const (
	TSStandard TSKind = iota
	TSRFC3339
	TSSimple
	TSTimeOnly
	TSCustom
)

var presetPatterns = [...]string{
	TSStandard: "%Y-%m-%d %H:%M:%S",
	TSRFC3339:  "%Y-%m-%dT%H:%M:%S%z",
	TSSimple:   "%Y%m%d.%H%M%S",
	TSTimeOnly: "%H:%M:%S",
}

var presetNames = [...]string{
	TSStandard: "standard",
	TSRFC3339:  "rfc3339",
	TSSimple:   "simple",
	TSTimeOnly: "timeonly",
	TSCustom:   "custom",
}

// TSFormat is a timestamp preset or a custom strftime pattern in the
// chrono dialect (see translatePattern).
// The zero value is Standard.
type TSFormat struct {
	kind   TSKind
	custom string
}

var (
	Standard = TSFormat{kind: TSStandard}
	RFC3339  = TSFormat{kind: TSRFC3339}
	Simple   = TSFormat{kind: TSSimple}
	TimeOnly = TSFormat{kind: TSTimeOnly}
)

// Custom returns a format that uses pattern verbatim. The pattern is only
// validated when the configuration is built.
func Custom(pattern string) TSFormat {
	return TSFormat{kind: TSCustom, custom: pattern}
}

// Kind returns the preset kind.
func (f TSFormat) Kind() TSKind {
	return f.kind
}

// Pattern returns the strftime pattern the format resolves to.
func (f TSFormat) Pattern() string {
	if f.kind == TSCustom {
		return f.custom
	}
	if int(f.kind) < len(presetPatterns) {
		return presetPatterns[f.kind]
	}
	return presetPatterns[TSStandard]
}

// String returns the preset name, or "custom:<pattern>".
func (f TSFormat) String() string {
	if f.kind == TSCustom {
		return "custom:" + f.custom
	}
	if int(f.kind) < len(presetNames) {
		return presetNames[f.kind]
	}
	return "unknown"
}

// ParseTSFormat accepts a preset name (case-insensitive), "custom:<pattern>"
// or any other string, which is taken as a custom pattern.
func ParseTSFormat(s string) TSFormat {
	if p, ok := strings.CutPrefix(s, "custom:"); ok {
		return Custom(p)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard
	case "rfc3339":
		return RFC3339
	case "simple":
		return Simple
	case "timeonly", "time_only", "time-only":
		return TimeOnly
	}
	return Custom(s)
}

// MarshalText implements encoding.TextMarshaler.
func (f TSFormat) MarshalText() ([]byte, error) {
	if f.kind > TSCustom {
		return nil, fmt.Errorf("invalid timestamp format kind %d", f.kind)
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Every string is
// accepted; custom patterns are checked at build time.
func (f *TSFormat) UnmarshalText(text []byte) error {
	*f = ParseTSFormat(string(text))
	return nil
}

// compile translates the pattern, builds the strftime formatter and
// probes it against the current instant.
func (f TSFormat) compile() (sf *strftime.Strftime, err error) {
	pattern := f.Pattern()
	translated, err := translatePattern(pattern)
	if err != nil {
		return nil, &TimeFormatError{Pattern: pattern, Err: err}
	}
	sf, err = strftime.New(translated, strftime.WithSpecificationSet(chronoSpecs))
	if err != nil {
		return nil, &TimeFormatError{Pattern: pattern, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			sf = nil
			err = &TimeFormatError{Pattern: pattern, Err: fmt.Errorf("probe panicked: %v", r)}
		}
	}()
	sf.FormatString(time.Now())
	return sf, nil
}
