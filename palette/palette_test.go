package palette

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/twyg/core"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		in   string
		want Attribute
	}{
		{"reset", Reset},
		{"", Reset},
		{"none", Reset},
		{"red", Red},
		{"RED", Red},
		{"HiYellow", HiYellow},
		{"hi_yellow", HiYellow},
		{"hi-yellow", HiYellow},
		{"hi white", HiWhite},
		{"grey", HiBlack},
		{"bright_cyan", Reset},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttribute(tt.in)
			if tt.in == "bright_cyan" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttribute_TextRoundTrip(t *testing.T) {
	attrs := Attributes()
	require.Len(t, attrs, 17)

	for _, a := range attrs {
		text, err := a.MarshalText()
		require.NoError(t, err)

		var back Attribute
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, a, back, "round trip of %s", text)
	}

	_, err := Attribute(99).MarshalText()
	assert.Error(t, err)
}

func TestColor_Paint(t *testing.T) {
	assert.Equal(t, "plain", Color{}.Paint("plain"))

	red := Fg(Red).Paint("err")
	assert.True(t, strings.HasPrefix(red, "\x1b[31m"), "got %q", red)
	assert.Equal(t, "err", ansi.Strip(red))

	hi := Fg(HiCyan).Paint("x")
	assert.True(t, strings.HasPrefix(hi, "\x1b[96m"), "got %q", hi)

	both := New(HiWhite, Red).Paint("boom")
	assert.True(t, strings.HasPrefix(both, "\x1b[97;41m"), "got %q", both)
	assert.Equal(t, "boom", ansi.Strip(both))

	bgOnly := New(Reset, HiYellow).Paint("bg")
	assert.True(t, strings.HasPrefix(bgOnly, "\x1b[103m"), "got %q", bgOnly)
}

func TestDefaultTable(t *testing.T) {
	want := map[Field]Color{
		FieldTimestamp:  Fg(Green),
		FieldLevelTrace: Fg(HiBlue),
		FieldLevelDebug: Fg(Cyan),
		FieldLevelInfo:  Fg(HiGreen),
		FieldLevelWarn:  Fg(HiYellow),
		FieldLevelError: Fg(Red),
		FieldMessage:    Fg(Green),
		FieldArrow:      Fg(Cyan),
		FieldCallerFile: Fg(HiYellow),
		FieldCallerLine: Fg(HiYellow),
		FieldTarget:     Fg(HiYellow),
		FieldAttrKey:    Fg(HiYellow),
		FieldAttrValue:  Fg(Cyan),
	}
	require.Len(t, want, NumFields)

	for f, c := range want {
		assert.Equal(t, c, Default(f), f.String())
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseField("level_fatal")
	assert.Error(t, err)
}

func TestLevelField(t *testing.T) {
	assert.Equal(t, FieldLevelTrace, LevelField(core.TraceLevel))
	assert.Equal(t, FieldLevelDebug, LevelField(core.DebugLevel))
	assert.Equal(t, FieldLevelInfo, LevelField(core.InfoLevel))
	assert.Equal(t, FieldLevelWarn, LevelField(core.WarnLevel))
	assert.Equal(t, FieldLevelError, LevelField(core.ErrorLevel))
	assert.Equal(t, FieldLevelError, LevelField(core.Level(20)))
}

func TestColors_WithClone(t *testing.T) {
	base := Colors{}
	withErr := base.With(FieldLevelError, New(HiWhite, Red))

	_, ok := base.Override(FieldLevelError)
	assert.False(t, ok, "With must not mutate the receiver")

	c, ok := withErr.Override(FieldLevelError)
	require.True(t, ok)
	assert.Equal(t, New(HiWhite, Red), c)

	clone := withErr.Clone()
	withErr.LevelError.Fg = Blue
	c, _ = clone.Override(FieldLevelError)
	assert.Equal(t, HiWhite, c.Fg, "Clone must deep copy overrides")

	assert.Nil(t, clone.Without(FieldLevelError).LevelError)
}

func TestResolve_Precedence(t *testing.T) {
	cs := Colors{}.
		With(FieldMessage, Color{}).
		With(FieldLevelError, New(HiWhite, Red))

	t.Run("disabled wins over everything", func(t *testing.T) {
		for _, f := range Fields() {
			s := Resolve(false, cs, f)
			assert.Equal(t, SourceDisabled, s.Source)
			assert.True(t, s.Plain())
		}
	})

	t.Run("explicit reset stays an override", func(t *testing.T) {
		s := Resolve(true, cs, FieldMessage)
		assert.Equal(t, SourceOverride, s.Source)
		assert.True(t, s.Plain())
		assert.Equal(t, "msg", s.Wrap("msg"))
	})

	t.Run("explicit color", func(t *testing.T) {
		s := Resolve(true, cs, FieldLevelError)
		assert.Equal(t, SourceOverride, s.Source)
		assert.Equal(t, New(HiWhite, Red), s.Color)
		assert.False(t, s.Plain())
	})

	t.Run("absent defers to default", func(t *testing.T) {
		s := Resolve(true, cs, FieldArrow)
		assert.Equal(t, SourceDefault, s.Source)
		assert.Equal(t, Fg(Cyan), s.Color)
	})

	t.Run("disabled and reset render the same bytes", func(t *testing.T) {
		disabled := Resolve(false, cs, FieldMessage)
		reset := Resolve(true, cs, FieldMessage)
		assert.Equal(t, disabled.Wrap("same"), reset.Wrap("same"))
		assert.NotEqual(t, disabled.Source, reset.Source)
	})
}

func TestTable_Append(t *testing.T) {
	table := NewTable(true, Colors{}.With(FieldTarget, Color{}))

	var buf bytes.Buffer
	table.Append(&buf, FieldTarget, "svc")
	buf.WriteByte(' ')
	table.Append(&buf, FieldArrow, "▶")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "svc "), "target must stay plain: %q", out)
	assert.Contains(t, out, "\x1b[36m▶")
	assert.Equal(t, "svc ▶", ansi.Strip(out))

	plain := NewTable(false, Colors{})
	buf.Reset()
	plain.Append(&buf, FieldArrow, "▶")
	assert.Equal(t, "▶", buf.String())
	assert.Equal(t, SourceDisabled, plain.Style(Field(200)).Source)
}
