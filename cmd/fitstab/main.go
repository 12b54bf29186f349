// Command fitstab generates FITS binary tables from a YAML description, writes their
// data units and FITS files, and prints them back.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	yml "gopkg.in/yaml.v2"
)

var (
	// Version is the version number, injected via ldflags at build time.
	Version = "0.1.0"

	// ConfigFileName is the configuration file read from the working directory.
	ConfigFileName = "fitstab.yml"
)

const usage = `fitstab builds FITS binary tables described in fitstab.yml and writes them as raw
big-endian data units (optionally compressed) and as FITS files.

Usage:
	fitstab <command> [arguments]

Commands:
	run                 generate every configured table
	dump <table> [n]    print the first n rows (all by default) of a generated table
	mkconf              write the current configuration to fitstab.yml
	conf                print the current configuration
	version             print the version
	help                describe the configuration file`

const helpText = `fitstab.yml holds the output settings and a list of tables:

	output_dir: out          # where <table>.bin and <table>.fits are written
	compression: Zstd        # None, Zstd, S2 or LZ4, applied to the .bin files
	fits: true               # also export each table as a FITS BINTABLE
	buffer_size: 32768       # codec burst size in bytes
	log_level: info          # debug, info, warn or error
	tables:
	  - name: events
	    rows: 1000
	    columns:
	      - {name: ID, kind: Int64, row_size: 1}
	      - {name: FLUX, kind: E, row_size: 4}

Column kinds are Uint8, Int8, Bool, Char, Int16, Int32, Int64, Float32 and Float64,
or the FITS TFORM letters B, L, A, I, J, K, E and D. Int8 columns have no FITS form;
tables holding one are written as data units only.

Values are generated from each element's position, so repeated runs produce identical
files.`

func loadConfig(k *koanf.Koanf, path string) (Config, error) {
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, err
	}
	// a missing file leaves the defaults in place
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !strings.Contains(err.Error(), "no such") {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.level()}))
}

func writeConfig(w io.Writer, cfg Config) error {
	return yml.NewEncoder(w).Encode(cfg)
}

func mkconf(cfg Config) error {
	f, err := os.Create(ConfigFileName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeConfig(f, cfg); err != nil {
		return err
	}

	return f.Close()
}

func dump(cfg Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("dump: missing table name")
	}
	ts, ok := cfg.table(args[0])
	if !ok {
		return fmt.Errorf("dump: no table %q in %s", args[0], ConfigFileName)
	}

	maxRows := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("dump: row count: %w", err)
		}
		maxRows = n
	}

	return dumpTable(os.Stdout, cfg, ts, maxRows)
}

func main() {
	args := os.Args
	if len(args) == 1 {
		fmt.Println(usage)
		return
	}

	cfg, err := loadConfig(koanf.New("."), ConfigFileName)
	if err != nil {
		slog.Error("configuration", "error", err)
		os.Exit(1)
	}
	logger := newLogger(os.Stderr, cfg)

	switch strings.ToLower(args[1]) {
	case "help":
		fmt.Println(helpText)
	case "mkconf":
		err = mkconf(cfg)
	case "conf":
		err = writeConfig(os.Stdout, cfg)
	case "version":
		fmt.Printf("fitstab version %v\n", Version)
	case "dump":
		err = dump(cfg, args[2:])
	case "run":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = runAll(ctx, cfg, logger)
		stop()
	default:
		err = fmt.Errorf("unknown command %q", args[1])
	}

	if err != nil {
		logger.Error("fitstab failed", "command", args[1], "error", err)
		os.Exit(1)
	}
}
