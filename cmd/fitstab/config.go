package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/arloliu/fitskit/fitsfile"
	"github.com/arloliu/fitskit/format"
)

// Config is the content of fitstab.yml.
type Config struct {
	OutputDir   string       `koanf:"output_dir" yaml:"output_dir"`
	Compression string       `koanf:"compression" yaml:"compression"`
	FITS        bool         `koanf:"fits" yaml:"fits"`
	BufferSize  int          `koanf:"buffer_size" yaml:"buffer_size"`
	LogLevel    string       `koanf:"log_level" yaml:"log_level"`
	Tables      []TableSetup `koanf:"tables" yaml:"tables"`
}

// TableSetup describes one generated table.
type TableSetup struct {
	Name    string        `koanf:"name" yaml:"name"`
	Rows    int           `koanf:"rows" yaml:"rows"`
	Columns []ColumnSetup `koanf:"columns" yaml:"columns"`
}

// ColumnSetup describes one column. Kind is an element kind name such as Int32, or a
// FITS TFORM letter such as J.
type ColumnSetup struct {
	Name    string `koanf:"name" yaml:"name"`
	Kind    string `koanf:"kind" yaml:"kind"`
	RowSize int    `koanf:"row_size" yaml:"row_size"`
}

func defaultConfig() Config {
	return Config{
		OutputDir:   ".",
		Compression: "None",
		FITS:        true,
		BufferSize:  32 * 1024,
		LogLevel:    "info",
		Tables: []TableSetup{
			{
				Name: "events",
				Rows: 1000,
				Columns: []ColumnSetup{
					{Name: "ID", Kind: "Int64", RowSize: 1},
					{Name: "FLUX", Kind: "Float32", RowSize: 4},
					{Name: "FLAG", Kind: "Bool", RowSize: 1},
					{Name: "LABEL", Kind: "Char", RowSize: 8},
				},
			},
		},
	}
}

// compression resolves the configured compression name.
func (c Config) compression() (format.CompressionType, error) {
	ct, ok := format.ParseCompression(c.Compression)
	if !ok {
		return 0, fmt.Errorf("unknown compression %q", c.Compression)
	}

	return ct, nil
}

func (c Config) level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

func (c Config) table(name string) (TableSetup, bool) {
	for _, ts := range c.Tables {
		if ts.Name == name {
			return ts, true
		}
	}

	return TableSetup{}, false
}

// kind resolves the column kind from a kind name or a TFORM code.
func (cs ColumnSetup) kind() (format.Kind, error) {
	if k := format.ParseKind(cs.Kind); k.Valid() {
		return k, nil
	}

	k, _, err := fitsfile.ParseTForm(strings.ToUpper(cs.Kind))
	if err != nil {
		return format.KindInvalid, fmt.Errorf("column %s: unknown kind %q", cs.Name, cs.Kind)
	}

	return k, nil
}
