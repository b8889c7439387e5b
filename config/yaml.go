package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/philipp01105/twyg/palette"
)

// yamlDecoder reads YAML files for aconfig.
type yamlDecoder struct {
	fsys fs.FS
}

func newYAMLDecoder() *yamlDecoder {
	return &yamlDecoder{}
}

func (d *yamlDecoder) Format() string {
	return "yaml"
}

func (d *yamlDecoder) Init(fsys fs.FS) {
	d.fsys = fsys
}

func (d *yamlDecoder) DecodeFile(filename string) (map[string]interface{}, error) {
	var (
		data []byte
		err  error
	)
	if d.fsys != nil {
		data, err = fs.ReadFile(d.fsys, filename)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return raw, nil
}

// document fixes the key order of YAML output and leaves out colors
// without override.
type document struct {
	Coloured        string        `yaml:"coloured"`
	Output          string        `yaml:"output"`
	Level           string        `yaml:"level"`
	ReportCaller    bool          `yaml:"report_caller"`
	TimestampFormat string        `yaml:"timestamp_format"`
	PadLevel        bool          `yaml:"pad_level"`
	PadAmount       int           `yaml:"pad_amount"`
	PadSide         string        `yaml:"pad_side"`
	ArrowChar       string        `yaml:"arrow_char"`
	MsgSeparator    string        `yaml:"msg_separator"`
	Colors          yaml.MapSlice `yaml:"colors,omitempty"`
}

// YAML encodes the configuration in the file format Load accepts.
func (c Config) YAML() ([]byte, error) {
	doc := document{
		Coloured:        c.Coloured,
		Output:          c.Output,
		Level:           c.Level,
		ReportCaller:    c.ReportCaller,
		TimestampFormat: c.TimestampFormat,
		PadLevel:        c.PadLevel,
		PadAmount:       c.PadAmount,
		PadSide:         c.PadSide,
		ArrowChar:       c.ArrowChar,
		MsgSeparator:    c.MsgSeparator,
	}
	for _, f := range palette.Fields() {
		if e := c.Colors.entry(f); e.IsSet() {
			doc.Colors = append(doc.Colors, yaml.MapItem{Key: f.String(), Value: *e})
		}
	}
	return yaml.Marshal(doc)
}
