package stream

import (
	"math"

	"github.com/arloliu/fitskit/format"
)

// ReadUint8 reads one unsigned byte.
//
// Returns io.EOF at the end of the stream, or errs.ErrStreamClosed after Close.
func (s *BufferedStream) ReadUint8() (uint8, error) {
	b, err := s.readScalar(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadInt8 reads one signed byte.
func (s *BufferedStream) ReadInt8() (int8, error) {
	v, err := s.ReadUint8()
	return int8(v), err
}

// ReadBool reads one logical byte. 'T' and the byte value 1 are true; anything else
// is false.
func (s *BufferedStream) ReadBool() (bool, error) {
	v, err := s.ReadUint8()
	return decodeBool(v), err
}

// ReadChar reads one byte and widens it to a Char.
func (s *BufferedStream) ReadChar() (format.Char, error) {
	v, err := s.ReadUint8()
	return format.Char(v), err
}

// ReadInt16 reads a big-endian two's-complement 16-bit integer.
//
// Returns io.ErrUnexpectedEOF if the stream ends inside the value.
func (s *BufferedStream) ReadInt16() (int16, error) {
	b, err := s.readScalar(2)
	if err != nil {
		return 0, err
	}

	return int16(s.engine.Uint16(b)), nil
}

// ReadInt32 reads a big-endian 32-bit integer. See ReadInt16.
func (s *BufferedStream) ReadInt32() (int32, error) {
	b, err := s.readScalar(4)
	if err != nil {
		return 0, err
	}

	return int32(s.engine.Uint32(b)), nil
}

// ReadInt64 reads a big-endian 64-bit integer. See ReadInt16.
func (s *BufferedStream) ReadInt64() (int64, error) {
	b, err := s.readScalar(8)
	if err != nil {
		return 0, err
	}

	return int64(s.engine.Uint64(b)), nil
}

// ReadFloat32 reads a big-endian IEEE-754 single, keeping NaN payloads.
func (s *BufferedStream) ReadFloat32() (float32, error) {
	b, err := s.readScalar(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(s.engine.Uint32(b)), nil
}

// ReadFloat64 reads a big-endian IEEE-754 double, keeping NaN payloads.
func (s *BufferedStream) ReadFloat64() (float64, error) {
	b, err := s.readScalar(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(s.engine.Uint64(b)), nil
}

// readScalar returns io.EOF when no byte of the value was available and
// io.ErrUnexpectedEOF when only part of it was.
func (s *BufferedStream) readScalar(width int) ([]byte, error) {
	b, err := s.fill(width)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// ReadUint8s fills dst from the stream.
//
// Returns the number of whole elements read. A count below len(dst) means the stream
// ended or failed; Err reports why.
func (s *BufferedStream) ReadUint8s(dst []uint8) int {
	return s.readBulk(len(dst), 1, func(raw []byte, at, n int) {
		copy(dst[at:at+n], raw)
	})
}

// ReadInt8s returns the number of elements actually read, like every other bulk read.
func (s *BufferedStream) ReadInt8s(dst []int8) int {
	return s.readBulk(len(dst), 1, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = int8(raw[i])
		}
	})
}

// ReadBools fills dst with logical values decoded as in ReadBool.
func (s *BufferedStream) ReadBools(dst []bool) int {
	return s.readBulk(len(dst), 1, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = decodeBool(raw[i])
		}
	})
}

// ReadChars fills dst with one-byte characters.
func (s *BufferedStream) ReadChars(dst []format.Char) int {
	return s.readBulk(len(dst), 1, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = format.Char(raw[i])
		}
	})
}

// ReadInt16s fills dst with big-endian 16-bit integers. See ReadUint8s.
func (s *BufferedStream) ReadInt16s(dst []int16) int {
	return s.readBulk(len(dst), 2, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = int16(s.engine.Uint16(raw[i*2:]))
		}
	})
}

// ReadInt32s fills dst with big-endian 32-bit integers.
func (s *BufferedStream) ReadInt32s(dst []int32) int {
	return s.readBulk(len(dst), 4, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = int32(s.engine.Uint32(raw[i*4:]))
		}
	})
}

// ReadInt64s fills dst with big-endian 64-bit integers.
func (s *BufferedStream) ReadInt64s(dst []int64) int {
	return s.readBulk(len(dst), 8, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = int64(s.engine.Uint64(raw[i*8:]))
		}
	})
}

// ReadFloat32s fills dst with big-endian IEEE-754 singles.
func (s *BufferedStream) ReadFloat32s(dst []float32) int {
	return s.readBulk(len(dst), 4, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = math.Float32frombits(s.engine.Uint32(raw[i*4:]))
		}
	})
}

// ReadFloat64s fills dst with big-endian IEEE-754 doubles.
func (s *BufferedStream) ReadFloat64s(dst []float64) int {
	return s.readBulk(len(dst), 8, func(raw []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[at+i] = math.Float64frombits(s.engine.Uint64(raw[i*8:]))
		}
	})
}

func decodeBool(b byte) bool {
	return b == boolTrue || b == 1
}
