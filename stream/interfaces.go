package stream

import "github.com/arloliu/fitskit/format"

// ArrayReader decodes primitive values from a big-endian byte stream.
//
// Scalar reads return io.EOF or io.ErrUnexpectedEOF when the stream is exhausted.
// Bulk reads fill dst and return the number of whole elements transferred; they never
// return an error. A short or zero count means the stream ended or failed, and Err
// reports which.
type ArrayReader interface {
	ReadUint8() (uint8, error)
	ReadInt8() (int8, error)
	ReadBool() (bool, error)
	ReadChar() (format.Char, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)

	ReadUint8s(dst []uint8) int
	ReadInt8s(dst []int8) int
	ReadBools(dst []bool) int
	ReadChars(dst []format.Char) int
	ReadInt16s(dst []int16) int
	ReadInt32s(dst []int32) int
	ReadInt64s(dst []int64) int
	ReadFloat32s(dst []float32) int
	ReadFloat64s(dst []float64) int

	// ReadArray fills a possibly nested slice and returns the number of bytes read.
	ReadArray(v any) (int64, error)

	// Err returns the last I/O error swallowed by a bulk read, or nil.
	Err() error
}

// ArrayWriter encodes primitive values into a big-endian byte stream.
// Write errors are always returned to the caller.
type ArrayWriter interface {
	WriteUint8(v uint8) error
	WriteInt8(v int8) error
	WriteBool(v bool) error
	WriteChar(v format.Char) error
	WriteInt16(v int16) error
	WriteInt32(v int32) error
	WriteInt64(v int64) error
	WriteFloat32(v float32) error
	WriteFloat64(v float64) error

	WriteUint8s(src []uint8) error
	WriteInt8s(src []int8) error
	WriteBools(src []bool) error
	WriteChars(src []format.Char) error
	WriteInt16s(src []int16) error
	WriteInt32s(src []int32) error
	WriteInt64s(src []int64) error
	WriteFloat32s(src []float32) error
	WriteFloat64s(src []float64) error

	// WriteString writes the bytes of s unchanged.
	WriteString(s string) error

	// WriteArray writes a possibly nested slice, leaves in order.
	WriteArray(v any) error

	// Flush pushes buffered bytes to the underlying stream.
	Flush() error
}

// ArrayDataIO is a bidirectional typed stream with positioning.
type ArrayDataIO interface {
	ArrayReader
	ArrayWriter

	// Seek sets the position of the next read or write, see io.Seeker.
	Seek(offset int64, whence int) (int64, error)
}
