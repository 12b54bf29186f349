package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/fitskit/errs"
)

// lz4MaxBlock bounds the output buffer grown while decoding one block.
const lz4MaxBlock = 128 * 1024 * 1024

// lz4CompressorPool reuses the hash tables of lz4.Compressor.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 blocks. Decompression is the fastest of the
// built-in codecs, which suits data units that are read far more often than written.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes a data unit as one LZ4 block using a pooled lz4.Compressor.
//
// Parameters:
//   - data: the raw data unit
//
// Returns:
//   - []byte: the block, nil if data is empty
//   - error: an encoder failure
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress %d bytes: %w", len(data), err)
	}

	return dst[:n], nil
}

// Decompress decodes one LZ4 block.
//
// A block does not record its decoded size, so the output buffer starts at four times
// the input and doubles on lz4.ErrInvalidSourceShortBuffer, up to 128 MiB.
//
// Parameters:
//   - data: the block
//
// Returns:
//   - []byte: the data unit, nil if data is empty
//   - error: errs.ErrCorruptData wrapping the decoder error, including a block that
//     decodes to more than 128 MiB
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := len(data) * 4; ; size *= 2 {
		size = min(size, lz4MaxBlock)
		buf := make([]byte, size)

		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || size == lz4MaxBlock {
			return nil, fmt.Errorf("%w: lz4 block of %d bytes: %w", errs.ErrCorruptData, len(data), err)
		}
	}
}
