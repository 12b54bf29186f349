package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/fitskit/errs"
)

// S2Compressor compresses with S2, a Snappy extension tuned for speed.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 block compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block. The block header carries the decoded length, which is
// checked against the size limit before any allocation.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if _, err := s2.DecodedLen(data); err != nil {
		return nil, fmt.Errorf("%w: s2 block header: %w", errs.ErrCorruptData, err)
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: s2 block of %d bytes: %w", errs.ErrCorruptData, len(data), err)
	}

	return out, nil
}
