package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/formatter"
	"github.com/philipp01105/twyg/opts"
	"github.com/philipp01105/twyg/palette"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	o, err := cfg.Opts()
	require.NoError(t, err)
	assert.Equal(t, opts.Default().String(), o.String())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "twyg.yaml", `
coloured: "true"
output: stderr
level: debug
report_caller: true
timestamp_format: timeonly
pad_level: true
pad_amount: 7
pad_side: left
arrow_char: "->"
colors:
  level_error:
    fg: hi_white
    bg: red
  message:
    fg: reset
`)

	cfg, err := Load(LoadOptions{Files: []string{path}, SkipEnv: true})
	require.NoError(t, err)

	o, err := cfg.Opts()
	require.NoError(t, err)
	assert.True(t, o.Coloured())
	assert.Equal(t, opts.Stderr, o.Output())
	assert.Equal(t, core.DebugLevel, o.Level())
	assert.True(t, o.ReportCaller())
	assert.Equal(t, opts.TimeOnly, o.TimestampFormat())
	assert.True(t, o.PadsLevel())
	assert.Equal(t, 7, o.PadAmount())
	assert.Equal(t, opts.PadLeft, o.PadSide())
	assert.Equal(t, "->", o.ArrowChar())
	assert.Equal(t, opts.DefaultMsgSeparator, o.MsgSeparator())

	c, ok := o.Colors().Override(palette.FieldLevelError)
	require.True(t, ok)
	assert.Equal(t, palette.New(palette.HiWhite, palette.Red), c)

	c, ok = o.Colors().Override(palette.FieldMessage)
	require.True(t, ok, "an explicit reset is still an override")
	assert.True(t, c.IsReset())
	assert.Equal(t, palette.SourceOverride, o.Style(palette.FieldMessage).Source)

	_, ok = o.Colors().Override(palette.FieldArrow)
	assert.False(t, ok)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "twyg.json", `{
  "coloured": "false",
  "level": "warn",
  "msg_separator": " | ",
  "timestamp_format": "custom:%H%M",
  "colors": {"target": {"fg": "cyan"}}
}`)

	cfg, err := Load(LoadOptions{Files: []string{path}, SkipEnv: true})
	require.NoError(t, err)

	o, err := cfg.Opts()
	require.NoError(t, err)
	assert.False(t, o.Coloured())
	assert.Equal(t, core.WarnLevel, o.Level())
	assert.Equal(t, " | ", o.MsgSeparator())
	assert.Equal(t, opts.Custom("%H%M"), o.TimestampFormat())
	assert.Equal(t, palette.SourceDisabled, o.Style(palette.FieldTarget).Source)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "twyg.yml", "level: debug\npad_amount: 9\n")
	t.Setenv("TWYG_LEVEL", "error")
	t.Setenv("TWYG_COLORS_LEVEL_ERROR_FG", "hi_red")

	cfg, err := Load(LoadOptions{Files: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, 9, cfg.PadAmount)
	assert.Equal(t, "hi_red", cfg.Colors.LevelError.Fg)

	o, err := cfg.Opts()
	require.NoError(t, err)
	c, ok := o.Colors().Override(palette.FieldLevelError)
	require.True(t, ok)
	assert.Equal(t, palette.Fg(palette.HiRed), c)
}

func TestLoad_EnvPrefix(t *testing.T) {
	t.Setenv("APP_ARROW_CHAR", ">>")
	t.Setenv("APP_REPORT_CALLER", "true")

	cfg, err := Load(LoadOptions{EnvPrefix: "APP"})
	require.NoError(t, err)
	assert.Equal(t, ">>", cfg.ArrowChar)
	assert.True(t, cfg.ReportCaller)
}

func TestLoad_MissingFileSkipped(t *testing.T) {
	cfg, err := Load(LoadOptions{
		Files:   []string{filepath.Join(t.TempDir(), "absent.yaml")},
		SkipEnv: true,
	})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level", func(c *Config) { c.Level = "loud" }},
		{"coloured", func(c *Config) { c.Coloured = "maybe" }},
		{"output", func(c *Config) { c.Output = "file:" }},
		{"pad side", func(c *Config) { c.PadSide = "middle" }},
		{"pad amount", func(c *Config) { c.PadAmount = -1 }},
		{"color fg", func(c *Config) { c.Colors.Target.Fg = "bright_cyan" }},
		{"color bg", func(c *Config) { c.Colors.AttrKey = ColorConfig{Fg: "red", Bg: "purple"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			_, err := cfg.Opts()
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestConfig_PartialLiteral(t *testing.T) {
	o, err := Config{Level: "debug", Coloured: "false"}.Opts()
	require.NoError(t, err)

	assert.Equal(t, core.DebugLevel, o.Level())
	assert.False(t, o.Coloured())
	assert.Equal(t, opts.DefaultArrowChar, o.ArrowChar())
	assert.Equal(t, opts.DefaultMsgSeparator, o.MsgSeparator())
	assert.Equal(t, opts.PadRight, o.PadSide())
	assert.Equal(t, opts.Standard, o.TimestampFormat())
	assert.Equal(t, 0, o.PadAmount(), "numbers are taken as given")

	line, ok := formatter.Render(o, &core.Entry{
		Time:    time.Date(2024, 3, 5, 14, 30, 52, 0, time.UTC),
		Level:   core.InfoLevel,
		Target:  "app",
		Message: "hi",
		Fields:  []core.Field{core.String("k", "v")},
	})
	require.True(t, ok)
	assert.Equal(t, "2024-03-05 14:30:52 INFO app ▶ hi: k={v}", line)
}

func TestConfig_InvalidTimeFormat(t *testing.T) {
	cfg := Default()
	cfg.TimestampFormat = "custom:not a valid pattern %Q"

	_, err := cfg.Opts()
	assert.ErrorIs(t, err, opts.ErrInvalidTimeFormat)
	assert.NotErrorIs(t, err, ErrInvalidValue)
}

func TestConfig_AutoColour(t *testing.T) {
	cfg := Default()
	cfg.Coloured = "auto"
	cfg.Output = "file:" + filepath.Join(t.TempDir(), "app.log")

	o, err := cfg.Opts()
	require.NoError(t, err)
	assert.False(t, o.Coloured(), "files never support color")
}

func TestFromOpts_YAMLRoundTrip(t *testing.T) {
	o, err := opts.NewBuilder().
		Coloured(false).
		Output(opts.File("/var/log/app.log")).
		Level(core.TraceLevel).
		TimestampFormat(opts.RFC3339).
		WithLevelPadding().
		PadSide(opts.PadLeft).
		MsgSeparator(" | ").
		Color(palette.FieldLevelError, palette.New(palette.HiWhite, palette.Red)).
		Color(palette.FieldTarget, palette.Color{}).
		Build()
	require.NoError(t, err)

	want := FromOpts(o)
	data, err := want.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "level_error:")
	assert.NotContains(t, string(data), "level_info:")

	path := writeFile(t, "dump.yaml", string(data))
	got, err := Load(LoadOptions{Files: []string{path}, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	back, err := got.Opts()
	require.NoError(t, err)
	assert.Equal(t, o.String(), back.String())
}
