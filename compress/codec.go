package compress

import (
	"fmt"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
)

// Compressor compresses a whole encoded data unit in one call.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The returned slice is owned by the caller; data is not modified. Empty input may
	// produce a nil result.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// Example:
//
//	codec, _ := compress.GetCodec(format.CompressionS2)
//	raw, err := codec.Decompress(payload)
//	if err != nil {
//	    return fmt.Errorf("decompress data unit: %w", err)
//	}
//
// Implementations in this package are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes of data.
	//
	// Corrupted input or input produced by another algorithm yields an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new Codec for the given compression type.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: what the codec is for, used in the error message
//
// Returns:
//   - Codec: codec instance for the type
//   - error: errs.ErrUnsupportedCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s for %s", errs.ErrUnsupportedCompression, compressionType, target)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}
