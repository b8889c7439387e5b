package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/philipp01105/twyg/config"
	"github.com/philipp01105/twyg/logger"
)

// CLI holds the command-line flags. Empty override flags leave the
// loaded configuration untouched.
type CLI struct {
	Config    []string `help:"Configuration file(s): .yaml, .yml or .json. Later files win." short:"c" type:"path" sep:","`
	EnvPrefix string   `help:"Prefix of configuration environment variables." default:"TWYG" name:"env-prefix"`

	Level     string `help:"Minimum level: trace, debug, info, warn or error." short:"l"`
	Colour    string `help:"Coloring: true, false or auto." name:"colour"`
	Caller    string `help:"Report the caller file and line: true or false." placeholder:"BOOL"`
	Timestamp string `help:"Timestamp preset (standard, rfc3339, simple, timeonly) or custom:<strftime>." short:"t"`
	Pad       int    `help:"Pad the level token to this width (negative: leave as configured)." default:"-1"`
	PadSide   string `help:"Side to pad the level token on: left or right." name:"pad-side"`
	Arrow     string `help:"Separator between target and message."`
	Separator string `help:"Separator between message and attributes."`
	Output    string `help:"stdout, stderr, file:<path> or a path." short:"o"`

	Via  string `help:"Logging front end that emits the samples." enum:"native,slog,zap" default:"native"`
	Dump bool   `help:"Print the effective configuration as YAML and exit."`
}

// apply copies the flags that were set onto cfg.
func (c *CLI) apply(cfg *config.Config) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Level, c.Level)
	set(&cfg.Coloured, c.Colour)
	set(&cfg.TimestampFormat, c.Timestamp)
	set(&cfg.PadSide, c.PadSide)
	set(&cfg.ArrowChar, c.Arrow)
	set(&cfg.MsgSeparator, c.Separator)
	set(&cfg.Output, c.Output)

	if c.Caller != "" {
		on, err := strconv.ParseBool(c.Caller)
		if err != nil {
			return fmt.Errorf("--caller: %w", err)
		}
		cfg.ReportCaller = on
	}
	if c.Pad >= 0 {
		cfg.PadLevel = true
		cfg.PadAmount = c.Pad
	}
	return nil
}

func run(args []string, stdout io.Writer, exit func(int)) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("twyg-demo"),
		kong.Description("Print sample log lines with a twyg configuration."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, os.Stderr),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{
		EnvPrefix: cli.EnvPrefix,
		Files:     cli.Config,
	})
	if err != nil {
		return err
	}
	if err := cli.apply(&cfg); err != nil {
		return err
	}

	if cli.Dump {
		data, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	o, err := cfg.Opts()
	if err != nil {
		return err
	}
	log, err := logger.Setup(o)
	if err != nil {
		return err
	}
	defer log.Close()

	e, err := newEmitter(cli.Via, log)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	logSample(e, o.String())
	fmt.Fprintln(stdout, "\n=== Structured Logging Examples ===")
	fmt.Fprintln(stdout)
	structuredSample(e)
	fmt.Fprintln(stdout)
	return nil
}
