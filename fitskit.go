// Package fitskit is the low-level binary I/O layer for FITS tables: a big-endian typed
// codec over byte streams, a column-major table storage engine, and a fixed-width ASCII
// field formatter and parser for header cards.
//
// # Core Features
//
//   - Buffered big-endian codec for the nine FITS element kinds (stream package)
//   - Column-major table storage with row-major wire encoding (table package)
//   - Allocation-free fixed-width ASCII number formatting and parsing (ascii package)
//   - Optional transport compression (None, Zstd, S2, LZ4)
//   - FITS BINTABLE export and import (fitsfile package)
//
// # Basic Usage
//
// Building a table and writing its data unit:
//
//	import "github.com/arloliu/fitskit"
//
//	tbl, _ := fitskit.NewTable(
//	    []any{[]int32{1, 2, 3}, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}},
//	    []int{1, 2},
//	)
//
//	w, _ := fitskit.NewWriter(file)
//	_, err := tbl.Write(w)
//	err = w.Close()
//
// Reading it back into a table of the same shape:
//
//	r, _ := fitskit.NewReader(file)
//	_, err := tbl.Read(r)
//
// Snapshots of a whole data unit through a block codec:
//
//	packed, _ := fitskit.Encode(tbl, format.CompressionZstd)
//	err := fitskit.Decode(packed, tbl, format.CompressionZstd)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the sub-packages. For
// fine-grained control, use them directly.
package fitskit

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/fitskit/ascii"
	"github.com/arloliu/fitskit/compress"
	"github.com/arloliu/fitskit/format"
	"github.com/arloliu/fitskit/internal/pool"
	"github.com/arloliu/fitskit/stream"
	"github.com/arloliu/fitskit/table"
)

// NewTable creates a column table from typed column slices and their row sizes.
//
// Parameters:
//   - columns: one typed slice per column, holding the values of all rows
//   - rowSizes: elements per row for each column
//
// Returns:
//   - *table.ColumnTable: the table
//   - error: errs.ErrInconsistentTable if the columns do not describe whole rows
//
// Example:
//
//	tbl, err := fitskit.NewTable([]any{[]int16{1, 2, 3, 4}}, []int{2})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(tbl.NRows()) // 2
func NewTable(columns []any, rowSizes []int) (*table.ColumnTable, error) {
	return table.New(columns, rowSizes)
}

// NewReader creates a buffered big-endian decoder over r.
func NewReader(r io.Reader, opts ...stream.Option) (*stream.BufferedStream, error) {
	return stream.NewReader(r, opts...)
}

// NewWriter creates a buffered big-endian encoder over w.
//
// The encoder buffers writes; call Flush or Close before using the output.
func NewWriter(w io.Writer, opts ...stream.Option) (*stream.BufferedStream, error) {
	return stream.NewWriter(w, opts...)
}

// NewCompressedWriter creates an encoder that compresses its output with a streaming
// transport of the given type. Closing the encoder finishes the compressed stream; w
// itself is not closed.
//
// Parameters:
//   - w: destination of the compressed bytes
//   - compression: transport compression type
//   - opts: encoder options; WithCloseUnderlying is overridden
//
// Returns:
//   - *stream.BufferedStream: the encoder
//   - error: errs.ErrUnsupportedCompression for an unknown type
func NewCompressedWriter(w io.Writer, compression format.CompressionType, opts ...stream.Option) (*stream.BufferedStream, error) {
	zw, err := compress.NewWriter(w, compression)
	if err != nil {
		return nil, err
	}

	s, err := stream.NewWriter(zw, append(opts[:len(opts):len(opts)], stream.WithCloseUnderlying(true))...)
	if err != nil {
		zw.Close()
		return nil, err
	}

	return s, nil
}

// NewCompressedReader creates a decoder for the output of NewCompressedWriter.
func NewCompressedReader(r io.Reader, compression format.CompressionType, opts ...stream.Option) (*stream.BufferedStream, error) {
	zr, err := compress.NewReader(r, compression)
	if err != nil {
		return nil, err
	}

	s, err := stream.NewReader(zr, append(opts[:len(opts):len(opts)], stream.WithCloseUnderlying(true))...)
	if err != nil {
		zr.Close()
		return nil, err
	}

	return s, nil
}

// NewFormatter creates a fixed-width ASCII field formatter.
func NewFormatter(opts ...ascii.FormatterOption) (*ascii.Formatter, error) {
	return ascii.NewFormatter(opts...)
}

// NewParser creates a fixed-width ASCII field parser over buf.
func NewParser(buf []byte, opts ...ascii.ParserOption) (*ascii.Parser, error) {
	return ascii.NewParser(buf, opts...)
}

// Encode returns the data unit of t, compressed with a block codec.
//
// Parameters:
//   - t: table to encode
//   - compression: block compression applied to the row-major image
//
// Returns:
//   - []byte: encoded bytes, owned by the caller
//   - error: errs.ErrUnsupportedCompression, or an encoding error
func Encode(t *table.ColumnTable, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetTableBuffer()
	defer pool.PutTableBuffer(buf)
	buf.Grow(int(t.Size()))

	s, err := stream.NewWriter(buf, stream.WithCloseUnderlying(false))
	if err != nil {
		return nil, err
	}
	if _, err := t.Write(s); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.Close(); err != nil {
		return nil, err
	}

	packed, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress data unit: %w", err)
	}

	// the pass-through codec returns the pooled buffer itself
	if compression == format.CompressionNone {
		packed = bytes.Clone(packed)
	}

	return packed, nil
}

// Decode fills t from data produced by Encode with the same compression. t must already
// have the shape of the encoded table.
//
// Returns errs.ErrCorruptData if data cannot be decompressed, or errs.ErrShortRead if it
// holds fewer rows than t.
func Decode(data []byte, t *table.ColumnTable, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	raw, err := codec.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress data unit: %w", err)
	}

	s, err := stream.NewReader(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = t.Read(s)

	return err
}
