// Package config loads twyg options from defaults, YAML or JSON files and
// environment variables.
//
// Sources are applied in that order by github.com/cristalhq/aconfig, so an
// environment variable overrides a file value which overrides the
// default. Environment names are the upper-case keys joined with "_"
// behind the prefix, e.g. TWYG_LEVEL or TWYG_COLORS_LEVEL_ERROR_FG.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cristalhq/aconfig"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/opts"
	"github.com/philipp01105/twyg/palette"
)

// DefaultEnvPrefix is the environment prefix used when LoadOptions leaves
// it empty.
const DefaultEnvPrefix = "TWYG"

// ErrInvalidValue is wrapped by every error reporting a value that does
// not name a known option.
var ErrInvalidValue = errors.New("invalid config value")

// Config is the serializable form of opts.Opts. Enumerations are kept as
// strings so every source can set them; Opts validates them.
//
// Empty strings select the default of their option, so a partially filled
// literal renders like the defaults apart from what it sets. Numbers and
// booleans are taken as they are: decode into Default() rather than a zero
// Config to keep pad_amount at 5.
type Config struct {
	Coloured        string       `json:"coloured" yaml:"coloured" env:"COLOURED" default:"true" usage:"true, false or auto"`
	Output          string       `json:"output" yaml:"output" env:"OUTPUT" default:"stdout" usage:"stdout, stderr, file:<path> or a path"`
	Level           string       `json:"level" yaml:"level" env:"LEVEL" default:"info"`
	ReportCaller    bool         `json:"report_caller" yaml:"report_caller" env:"REPORT_CALLER" default:"false"`
	TimestampFormat string       `json:"timestamp_format" yaml:"timestamp_format" env:"TIMESTAMP_FORMAT" default:"standard"`
	PadLevel        bool         `json:"pad_level" yaml:"pad_level" env:"PAD_LEVEL" default:"false"`
	PadAmount       int          `json:"pad_amount" yaml:"pad_amount" env:"PAD_AMOUNT" default:"5"`
	PadSide         string       `json:"pad_side" yaml:"pad_side" env:"PAD_SIDE" default:"right"`
	ArrowChar       string       `json:"arrow_char" yaml:"arrow_char" env:"ARROW_CHAR" default:"▶"`
	MsgSeparator    string       `json:"msg_separator" yaml:"msg_separator" env:"MSG_SEPARATOR" default:": "`
	Colors          ColorsConfig `json:"colors" yaml:"colors" env:"COLORS"`
}

// ColorConfig is one color override. Leaving both attributes empty means
// no override; "reset" is an explicit override that renders unstyled.
type ColorConfig struct {
	Fg string `json:"fg" yaml:"fg" env:"FG"`
	Bg string `json:"bg" yaml:"bg" env:"BG"`
}

// IsSet reports whether the entry overrides the default color.
func (c ColorConfig) IsSet() bool {
	return c.Fg != "" || c.Bg != ""
}

// ColorsConfig holds one optional override per colorable field.
type ColorsConfig struct {
	Timestamp  ColorConfig `json:"timestamp" yaml:"timestamp" env:"TIMESTAMP"`
	LevelTrace ColorConfig `json:"level_trace" yaml:"level_trace" env:"LEVEL_TRACE"`
	LevelDebug ColorConfig `json:"level_debug" yaml:"level_debug" env:"LEVEL_DEBUG"`
	LevelInfo  ColorConfig `json:"level_info" yaml:"level_info" env:"LEVEL_INFO"`
	LevelWarn  ColorConfig `json:"level_warn" yaml:"level_warn" env:"LEVEL_WARN"`
	LevelError ColorConfig `json:"level_error" yaml:"level_error" env:"LEVEL_ERROR"`
	Message    ColorConfig `json:"message" yaml:"message" env:"MESSAGE"`
	Arrow      ColorConfig `json:"arrow" yaml:"arrow" env:"ARROW"`
	CallerFile ColorConfig `json:"caller_file" yaml:"caller_file" env:"CALLER_FILE"`
	CallerLine ColorConfig `json:"caller_line" yaml:"caller_line" env:"CALLER_LINE"`
	Target     ColorConfig `json:"target" yaml:"target" env:"TARGET"`
	AttrKey    ColorConfig `json:"attr_key" yaml:"attr_key" env:"ATTR_KEY"`
	AttrValue  ColorConfig `json:"attr_value" yaml:"attr_value" env:"ATTR_VALUE"`
}

// entry returns the slot for f.
func (cs *ColorsConfig) entry(f palette.Field) *ColorConfig {
	switch f {
	case palette.FieldTimestamp:
		return &cs.Timestamp
	case palette.FieldLevelTrace:
		return &cs.LevelTrace
	case palette.FieldLevelDebug:
		return &cs.LevelDebug
	case palette.FieldLevelInfo:
		return &cs.LevelInfo
	case palette.FieldLevelWarn:
		return &cs.LevelWarn
	case palette.FieldLevelError:
		return &cs.LevelError
	case palette.FieldMessage:
		return &cs.Message
	case palette.FieldArrow:
		return &cs.Arrow
	case palette.FieldCallerFile:
		return &cs.CallerFile
	case palette.FieldCallerLine:
		return &cs.CallerLine
	case palette.FieldTarget:
		return &cs.Target
	case palette.FieldAttrKey:
		return &cs.AttrKey
	case palette.FieldAttrValue:
		return &cs.AttrValue
	default:
		return nil
	}
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// EnvPrefix prefixes every environment variable (default: "TWYG").
	EnvPrefix string
	// Files are read in order; later files override earlier ones.
	// Extensions .yaml, .yml and .json are supported. Missing files are
	// skipped.
	Files []string
	// SkipEnv disables environment variables.
	SkipEnv bool
}

// Load reads the configuration from defaults, files and environment.
func Load(lo LoadOptions) (Config, error) {
	prefix := lo.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:        true,
		SkipEnv:          lo.SkipEnv,
		EnvPrefix:        prefix,
		AllowUnknownEnvs: true,
		MergeFiles:       true,
		Files:            lo.Files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": newYAMLDecoder(),
			".yml":  newYAMLDecoder(),
		},
	})
	if err := loader.Load(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration matching opts.Default.
func Default() Config {
	return FromOpts(opts.Default())
}

// Opts validates the configuration and builds the options. Unknown
// names and negative pad amounts fail with ErrInvalidValue; an invalid
// custom timestamp pattern fails with opts.ErrInvalidTimeFormat.
func (c Config) Opts() (*opts.Opts, error) {
	b := opts.NewBuilder()

	switch v := strings.ToLower(strings.TrimSpace(c.Coloured)); v {
	case "auto":
		b = b.AutoColour()
	case "":
		b = b.Coloured(true)
	default:
		on, err := strconv.ParseBool(v)
		if err != nil {
			return nil, invalid("coloured", c.Coloured, err)
		}
		b = b.Coloured(on)
	}

	out, err := opts.ParseOutput(c.Output)
	if err != nil {
		return nil, invalid("output", c.Output, err)
	}
	b = b.Output(out)

	level := core.InfoLevel
	if c.Level != "" {
		level, err = core.ParseLevel(c.Level)
		if err != nil {
			return nil, invalid("level", c.Level, err)
		}
	}
	b = b.Level(level)

	if c.PadAmount < 0 {
		return nil, invalid("pad_amount", strconv.Itoa(c.PadAmount), errors.New("must not be negative"))
	}
	side, err := opts.ParsePadSide(c.PadSide)
	if err != nil {
		return nil, invalid("pad_side", c.PadSide, err)
	}

	b = b.ReportCaller(c.ReportCaller).
		TimestampFormat(opts.ParseTSFormat(c.TimestampFormat)).
		PadLevel(c.PadLevel).
		PadAmount(c.PadAmount).
		PadSide(side).
		ArrowChar(orDefault(c.ArrowChar, opts.DefaultArrowChar)).
		MsgSeparator(orDefault(c.MsgSeparator, opts.DefaultMsgSeparator))

	for _, f := range palette.Fields() {
		e := c.Colors.entry(f)
		if !e.IsSet() {
			continue
		}
		fg, err := palette.ParseAttribute(e.Fg)
		if err != nil {
			return nil, invalid("colors."+f.String()+".fg", e.Fg, err)
		}
		bg, err := palette.ParseAttribute(e.Bg)
		if err != nil {
			return nil, invalid("colors."+f.String()+".bg", e.Bg, err)
		}
		b = b.Color(f, palette.New(fg, bg))
	}

	return b.Build()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// FromOpts returns the configuration that builds o.
func FromOpts(o *opts.Opts) Config {
	c := Config{
		Coloured:        strconv.FormatBool(o.Coloured()),
		Output:          o.Output().String(),
		Level:           o.Level().Name(),
		ReportCaller:    o.ReportCaller(),
		TimestampFormat: o.TimestampFormat().String(),
		PadLevel:        o.PadsLevel(),
		PadAmount:       o.PadAmount(),
		PadSide:         o.PadSide().String(),
		ArrowChar:       o.ArrowChar(),
		MsgSeparator:    o.MsgSeparator(),
	}
	colors := o.Colors()
	for _, f := range palette.Fields() {
		if col, ok := colors.Override(f); ok {
			*c.Colors.entry(f) = ColorConfig{Fg: col.Fg.String(), Bg: col.Bg.String()}
		}
	}
	return c
}

func invalid(key, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, key, value, err)
}
