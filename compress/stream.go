package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// nopWriteCloser turns an io.Writer into an io.WriteCloser whose Close does nothing.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// NewWriter wraps w in a streaming compressor.
//
// Unlike the block codecs, the streaming formats can be produced incrementally, so a
// stream.BufferedStream can write a table of any size through them. Close finishes the
// compressed stream and must be called before the output is complete; it does not
// close w.
//
// Parameters:
//   - w: destination of the compressed bytes
//   - compressionType: None, Zstd, S2 or LZ4 (framed formats)
//
// Returns:
//   - io.WriteCloser: the compressing writer
//   - error: errs.ErrUnsupportedCompression for an unknown type
func NewWriter(w io.Writer, compressionType format.CompressionType) (io.WriteCloser, error) {
	switch compressionType {
	case format.CompressionNone:
		return nopWriteCloser{w}, nil
	case format.CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}

		return enc, nil
	case format.CompressionS2:
		return s2.NewWriter(w), nil
	case format.CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

// NewReader wraps r in a streaming decompressor for the formats produced by NewWriter.
// Close releases decoder resources; it does not close r.
func NewReader(r io.Reader, compressionType format.CompressionType) (io.ReadCloser, error) {
	switch compressionType {
	case format.CompressionNone:
		return io.NopCloser(r), nil
	case format.CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}

		return dec.IOReadCloser(), nil
	case format.CompressionS2:
		return io.NopCloser(s2.NewReader(r)), nil
	case format.CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}
