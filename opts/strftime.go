package opts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Patterns are written in the chrono dialect of strftime: the C verbs
// plus %f, %.f, %.3f/%.6f/%.9f, %3f/%6f/%9f, %s, %P, %G, %g, %:z, %+ and
// the %-X form that drops padding. translatePattern rewrites the extras
// into single-byte verbs of chronoSpecs, which lestrrat-go/strftime then
// compiles.

// Verbs that chrono and lestrrat-go/strftime share, or that chronoSpecs
// registers under the chrono letter itself.
const plainVerbs = "AaBbCcDdeFGgHhIjklMmnPpRrSTtUuVvWwXxYyZzfs+%"

// Internal verbs. They are never accepted from a pattern directly.
const (
	verbMillis       = 'L'
	verbMicros       = 'i'
	verbFraction     = 'N'
	verbColonOffset  = 'K'
	verbDayNoPad     = 'E'
	verbMonthNoPad   = 'O'
	verbHourNoPad    = 'J'
	verbHour12NoPad  = 'Q'
	verbMinuteNoPad  = 'q'
	verbSecondNoPad  = 'o'
	verbYearDayNoPad = '1'
)

var unpadded = map[byte]byte{
	'd': verbDayNoPad,
	'e': verbDayNoPad,
	'm': verbMonthNoPad,
	'H': verbHourNoPad,
	'k': verbHourNoPad,
	'I': verbHour12NoPad,
	'l': verbHour12NoPad,
	'M': verbMinuteNoPad,
	'S': verbSecondNoPad,
	'j': verbYearDayNoPad,
}

var errUnsupportedVerb = errors.New("unsupported specifier")

// translatePattern rewrites a chrono pattern into one chronoSpecs can
// compile. Unknown specifiers fail here rather than in the library.
func translatePattern(p string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(p))
	for {
		i := strings.IndexByte(p, '%')
		if i < 0 {
			sb.WriteString(p)
			return sb.String(), nil
		}
		sb.WriteString(p[:i])
		p = p[i+1:]

		verb, n, err := translateVerb(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(verb)
		p = p[n:]
	}
}

// translateVerb handles the text following a '%' and reports how many
// bytes it consumed.
func translateVerb(p string) (string, int, error) {
	if p == "" {
		return "", 0, fmt.Errorf("%w: stray %% at the end of the pattern", errUnsupportedVerb)
	}
	switch {
	case strings.HasPrefix(p, ".f"):
		return "%" + string(verbFraction), 2, nil
	case strings.HasPrefix(p, ".3f"):
		return ".%" + string(verbMillis), 3, nil
	case strings.HasPrefix(p, ".6f"):
		return ".%" + string(verbMicros), 3, nil
	case strings.HasPrefix(p, ".9f"):
		return ".%f", 3, nil
	case strings.HasPrefix(p, "3f"):
		return "%" + string(verbMillis), 2, nil
	case strings.HasPrefix(p, "6f"):
		return "%" + string(verbMicros), 2, nil
	case strings.HasPrefix(p, "9f"):
		return "%f", 2, nil
	case strings.HasPrefix(p, ":z"):
		return "%" + string(verbColonOffset), 2, nil
	case p[0] == '-':
		if len(p) > 1 {
			if v, ok := unpadded[p[1]]; ok {
				return "%" + string(v), 2, nil
			}
		}
		return "", 0, fmt.Errorf("%w %q", errUnsupportedVerb, "%"+p[:min(2, len(p))])
	case strings.IndexByte(plainVerbs, p[0]) >= 0:
		return "%" + p[:1], 1, nil
	}
	return "", 0, fmt.Errorf("%w %q", errUnsupportedVerb, "%"+p[:1])
}

var chronoSpecs = newSpecSet()

// specSet is a read-only strftime.SpecificationSet. The library's own
// mutable set takes a read lock on every lookup and never releases it.
type specSet map[byte]strftime.Appender

func (s specSet) Lookup(b byte) (strftime.Appender, error) {
	if a, ok := s[b]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w %q", errUnsupportedVerb, "%"+string(b))
}

func (s specSet) Delete(byte) error {
	return errors.New("specification set is read-only")
}

func (s specSet) Set(byte, strftime.Appender) error {
	return errors.New("specification set is read-only")
}

const libraryVerbs = "AaBbCcDdeFHhIjklMmnpRrSTtUuVvWwXxYyZz%"

func newSpecSet() specSet {
	s := make(specSet, len(libraryVerbs)+20)
	base := strftime.NewSpecificationSet()
	for i := 0; i < len(libraryVerbs); i++ {
		a, err := base.Lookup(libraryVerbs[i])
		if err != nil {
			panic(err)
		}
		s[libraryVerbs[i]] = a
	}

	s['f'] = strftime.AppendFunc(appendNanos)
	s['s'] = strftime.UnixSeconds()
	s['P'] = strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		if t.Hour() < 12 {
			return append(b, "am"...)
		}
		return append(b, "pm"...)
	})
	s['G'] = strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		year, _ := t.ISOWeek()
		return appendPadded(b, year, 4)
	})
	s['g'] = strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		year, _ := t.ISOWeek()
		return appendPadded(b, year%100, 2)
	})
	s['+'] = strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		b = t.AppendFormat(b, "2006-01-02T15:04:05")
		b = appendFraction(b, t)
		return t.AppendFormat(b, "-07:00")
	})

	s[verbMillis] = strftime.Milliseconds()
	s[verbMicros] = strftime.Microseconds()
	s[verbFraction] = strftime.AppendFunc(appendFraction)
	s[verbColonOffset] = strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		return t.AppendFormat(b, "-07:00")
	})
	s[verbDayNoPad] = unpaddedVerb(time.Time.Day)
	s[verbMonthNoPad] = unpaddedVerb(func(t time.Time) int { return int(t.Month()) })
	s[verbHourNoPad] = unpaddedVerb(time.Time.Hour)
	s[verbHour12NoPad] = unpaddedVerb(func(t time.Time) int {
		if h := t.Hour() % 12; h != 0 {
			return h
		}
		return 12
	})
	s[verbMinuteNoPad] = unpaddedVerb(time.Time.Minute)
	s[verbSecondNoPad] = unpaddedVerb(time.Time.Second)
	s[verbYearDayNoPad] = unpaddedVerb(time.Time.YearDay)
	return s
}

// unpaddedVerb writes a calendar value without padding. Plain append
// funcs are never merged into a neighbouring Go layout by the library,
// unlike strftime.StdlibFormat, where "_" or "1" before a one-digit layout
// would change its meaning.
func unpaddedVerb(value func(time.Time) int) strftime.Appender {
	return strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		return strconv.AppendInt(b, int64(value(t)), 10)
	})
}

// appendNanos writes the nanoseconds of t as nine digits.
func appendNanos(b []byte, t time.Time) []byte {
	return appendPadded(b, t.Nanosecond(), 9)
}

// appendFraction writes a dot and 3, 6 or 9 digits, whichever is the
// shortest exact form, and nothing at all on a whole second.
func appendFraction(b []byte, t time.Time) []byte {
	ns := t.Nanosecond()
	switch {
	case ns == 0:
		return b
	case ns%int(time.Millisecond) == 0:
		return appendPadded(append(b, '.'), ns/int(time.Millisecond), 3)
	case ns%int(time.Microsecond) == 0:
		return appendPadded(append(b, '.'), ns/int(time.Microsecond), 6)
	}
	return appendPadded(append(b, '.'), ns, 9)
}

func appendPadded(b []byte, v, width int) []byte {
	var digits [20]byte
	d := strconv.AppendInt(digits[:0], int64(v), 10)
	for i := len(d); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, d...)
}
