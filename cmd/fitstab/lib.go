package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/fitskit"
	"github.com/arloliu/fitskit/ascii"
	"github.com/arloliu/fitskit/fitsfile"
	"github.com/arloliu/fitskit/format"
	"github.com/arloliu/fitskit/internal/collision"
	"github.com/arloliu/fitskit/stream"
	"github.com/arloliu/fitskit/table"
)

// fieldWidth is the width of one printed value in dump output.
const fieldWidth = 14

// buildTable creates the table described by ts. With fill set, every element gets a
// value derived from its position; otherwise the table is zeroed, ready for Read.
func buildTable(ts TableSetup, fill bool) (*table.ColumnTable, []string, error) {
	columns := make([]any, len(ts.Columns))
	rowSizes := make([]int, len(ts.Columns))
	names := make([]string, len(ts.Columns))
	tracker := collision.NewTracker()

	for i, cs := range ts.Columns {
		k, err := cs.kind()
		if err != nil {
			return nil, nil, err
		}
		if err := tracker.Track(cs.Name); err != nil {
			return nil, nil, fmt.Errorf("table %s: %w", ts.Name, err)
		}
		col := format.MakeSlice(k, ts.Rows*cs.RowSize)
		if fill {
			fillColumn(col)
		}
		columns[i] = col
		rowSizes[i] = cs.RowSize
		names[i] = cs.Name
	}

	tbl, err := table.New(columns, rowSizes)
	if err != nil {
		return nil, nil, fmt.Errorf("table %s: %w", ts.Name, err)
	}

	return tbl, names, nil
}

func fillColumn(col any) {
	switch c := col.(type) {
	case []uint8:
		for i := range c {
			c[i] = uint8(i)
		}
	case []int8:
		for i := range c {
			c[i] = int8(i)
		}
	case []bool:
		for i := range c {
			c[i] = i%2 == 0
		}
	case []format.Char:
		for i := range c {
			c[i] = format.Char('A' + i%26)
		}
	case []int16:
		for i := range c {
			c[i] = int16(i)
		}
	case []int32:
		for i := range c {
			c[i] = int32(i) * 10
		}
	case []int64:
		for i := range c {
			c[i] = int64(i) * 1000
		}
	case []float32:
		for i := range c {
			c[i] = float32(i) / 8
		}
	case []float64:
		for i := range c {
			c[i] = float64(i) / 3
		}
	}
}

func binPath(cfg Config, name string) string {
	return filepath.Join(cfg.OutputDir, name+".bin")
}

func fitsPath(cfg Config, name string) string {
	return filepath.Join(cfg.OutputDir, name+".fits")
}

// runAll generates every configured table, one goroutine per table.
func runAll(ctx context.Context, cfg Config, logger *slog.Logger) error {
	ct, err := cfg.compression()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, ts := range cfg.Tables {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return runTable(cfg, ts, ct, logger.With("table", ts.Name))
		})
	}

	return g.Wait()
}

func runTable(cfg Config, ts TableSetup, ct format.CompressionType, logger *slog.Logger) error {
	tbl, names, err := buildTable(ts, true)
	if err != nil {
		return err
	}

	n, sum, err := writeBin(binPath(cfg, ts.Name), tbl, ct, cfg.BufferSize)
	if err != nil {
		return fmt.Errorf("table %s: %w", ts.Name, err)
	}

	digest, err := tbl.Digest()
	if err != nil {
		return err
	}
	logger.Info("wrote data unit",
		"rows", tbl.NRows(), "row_bytes", tbl.RowByteSize(), "bytes", n,
		"compression", ct.String(), "digest", fmt.Sprintf("%016x", digest),
		"crc32", fmt.Sprintf("%08x", sum))

	if !cfg.FITS {
		return nil
	}

	for col := range tbl.NCols() {
		if _, err := fitsfile.TForm(tbl.Kind(col), tbl.RowSize(col)); err != nil {
			logger.Warn("skipped FITS export", "column", names[col], "error", err)
			return nil
		}
	}

	f, err := os.Create(fitsPath(cfg, ts.Name))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := fitsfile.WriteTable(f, tbl, ts.Name, names); err != nil {
		return fmt.Errorf("table %s: %w", ts.Name, err)
	}
	logger.Debug("wrote FITS file", "path", fitsPath(cfg, ts.Name))

	return f.Close()
}

// writeBin writes the data unit of tbl to path and returns the number of table bytes
// encoded and the CRC-32 of the file as stored.
func writeBin(path string, tbl *table.ColumnTable, ct format.CompressionType, bufferSize int) (int64, uint32, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cw := newCRCWriter(f)
	w, err := fitskit.NewCompressedWriter(cw, ct, stream.WithBufferSize(bufferSize))
	if err != nil {
		return 0, 0, err
	}

	n, err := tbl.Write(w)
	if err != nil {
		w.Close()
		return n, 0, err
	}
	if err := w.Close(); err != nil {
		return n, 0, err
	}

	return n, cw.Sum32(), f.Close()
}

// dumpTable reads the data unit of table ts back and prints it row by row.
func dumpTable(out io.Writer, cfg Config, ts TableSetup, maxRows int) error {
	ct, err := cfg.compression()
	if err != nil {
		return err
	}
	tbl, names, err := buildTable(ts, false)
	if err != nil {
		return err
	}

	f, err := os.Open(binPath(cfg, ts.Name))
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := fitskit.NewCompressedReader(f, ct, stream.WithBufferSize(cfg.BufferSize))
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err := tbl.Read(r); err != nil {
		return fmt.Errorf("table %s: %w", ts.Name, err)
	}

	return printTable(out, tbl, names, maxRows)
}

// printTable writes a header line of column names and one line per row, each value in
// a right-justified field of fieldWidth bytes.
func printTable(out io.Writer, tbl *table.ColumnTable, names []string, maxRows int) error {
	f, err := ascii.NewFormatter(ascii.WithAlign(true), ascii.WithTruncationThrow(false))
	if err != nil {
		return err
	}

	width := 0
	for col := range tbl.NCols() {
		width += columnWidth(tbl, col)
	}
	line := make([]byte, width+1)

	fill := func() {
		for i := range line {
			line[i] = ' '
		}
		line[width] = '\n'
	}

	fill()
	off := 0
	for col, name := range names {
		if _, err := f.FormatString(name, line, off, fieldWidth); err != nil {
			return err
		}
		off += columnWidth(tbl, col)
	}
	if _, err := out.Write(line); err != nil {
		return err
	}

	rows := tbl.NRows()
	if maxRows > 0 {
		rows = min(rows, maxRows)
	}
	for row := range rows {
		fill()
		off := 0
		for col := range tbl.NCols() {
			v, err := tbl.Element(row, col)
			if err != nil {
				return err
			}
			if err := formatElement(f, v, line, off, columnWidth(tbl, col)); err != nil {
				return err
			}
			off += columnWidth(tbl, col)
		}
		if _, err := out.Write(line); err != nil {
			return err
		}
	}

	return nil
}

// columnWidth is the printed width of a column: one field per element, or a single
// field wide enough for the text of a Char column.
func columnWidth(tbl *table.ColumnTable, col int) int {
	if tbl.Kind(col) == format.KindChar {
		return max(tbl.RowSize(col)+1, fieldWidth)
	}

	return fieldWidth * max(tbl.RowSize(col), 1)
}

func formatElement(f *ascii.Formatter, v any, line []byte, off, width int) error {
	at := func(i int) int {
		return off + i*fieldWidth
	}

	switch c := v.(type) {
	case []format.Char:
		_, err := f.FormatString(format.CharString(c), line, off, width)
		return err
	case []bool:
		for i, b := range c {
			if _, err := f.FormatBool(b, line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	case []uint8:
		for i, x := range c {
			if _, err := f.FormatInt32(int32(x), line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	case []int8:
		for i, x := range c {
			if _, err := f.FormatInt32(int32(x), line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	case []int16:
		for i, x := range c {
			if _, err := f.FormatInt32(int32(x), line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	case []int32:
		for i, x := range c {
			if _, err := f.FormatInt32(x, line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	case []int64:
		for i, x := range c {
			if _, err := f.FormatInt64(x, line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	case []float32:
		for i, x := range c {
			if _, err := f.FormatFloat32(x, line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	case []float64:
		for i, x := range c {
			if _, err := f.FormatFloat64(x, line, at(i), fieldWidth); err != nil {
				return err
			}
		}
	}

	return nil
}
