package stream

import (
	"math"

	"github.com/arloliu/fitskit/format"
)

const (
	boolTrue  = 'T'
	boolFalse = 'F'
)

// WriteUint8 writes one unsigned byte.
//
// Returns errs.ErrStreamClosed after Close, or the transport error of a flush.
func (s *BufferedStream) WriteUint8(v uint8) error {
	b, err := s.reserve(1)
	if err != nil {
		return err
	}
	b[0] = v

	return s.commit(1)
}

// WriteInt8 writes one signed byte.
func (s *BufferedStream) WriteInt8(v int8) error {
	return s.WriteUint8(uint8(v))
}

// WriteBool writes a logical value as the ASCII byte 'T' or 'F'.
func (s *BufferedStream) WriteBool(v bool) error {
	return s.WriteUint8(encodeBool(v))
}

// WriteChar writes the low byte of v.
func (s *BufferedStream) WriteChar(v format.Char) error {
	return s.WriteUint8(byte(v))
}

// WriteInt16 writes v most significant byte first.
func (s *BufferedStream) WriteInt16(v int16) error {
	b, err := s.reserve(2)
	if err != nil {
		return err
	}
	s.engine.PutUint16(b, uint16(v))

	return s.commit(2)
}

// WriteInt32 writes v most significant byte first.
func (s *BufferedStream) WriteInt32(v int32) error {
	b, err := s.reserve(4)
	if err != nil {
		return err
	}
	s.engine.PutUint32(b, uint32(v))

	return s.commit(4)
}

// WriteInt64 writes v most significant byte first.
func (s *BufferedStream) WriteInt64(v int64) error {
	b, err := s.reserve(8)
	if err != nil {
		return err
	}
	s.engine.PutUint64(b, uint64(v))

	return s.commit(8)
}

// WriteFloat32 writes the IEEE-754 bit pattern of v, NaN payloads included.
func (s *BufferedStream) WriteFloat32(v float32) error {
	b, err := s.reserve(4)
	if err != nil {
		return err
	}
	s.engine.PutUint32(b, math.Float32bits(v))

	return s.commit(4)
}

// WriteFloat64 writes the IEEE-754 bit pattern of v, NaN payloads included.
func (s *BufferedStream) WriteFloat64(v float64) error {
	b, err := s.reserve(8)
	if err != nil {
		return err
	}
	s.engine.PutUint64(b, math.Float64bits(v))

	return s.commit(8)
}

// WriteUint8s writes src in bursts no larger than the buffer size. The transport sees
// one Write each time the pending bytes reach the buffer size.
func (s *BufferedStream) WriteUint8s(src []uint8) error {
	return s.writeBulk(len(src), 1, func(dst []byte, at, n int) {
		copy(dst, src[at:at+n])
	})
}

// WriteInt8s writes src as raw bytes. See WriteUint8s.
func (s *BufferedStream) WriteInt8s(src []int8) error {
	return s.writeBulk(len(src), 1, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[i] = byte(src[at+i])
		}
	})
}

// WriteBools writes each value as 'T' or 'F'.
func (s *BufferedStream) WriteBools(src []bool) error {
	return s.writeBulk(len(src), 1, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[i] = encodeBool(src[at+i])
		}
	})
}

// WriteChars writes the low byte of each character.
func (s *BufferedStream) WriteChars(src []format.Char) error {
	return s.writeBulk(len(src), 1, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			dst[i] = byte(src[at+i])
		}
	})
}

// WriteInt16s writes src big-endian.
func (s *BufferedStream) WriteInt16s(src []int16) error {
	return s.writeBulk(len(src), 2, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			s.engine.PutUint16(dst[i*2:], uint16(src[at+i]))
		}
	})
}

// WriteInt32s writes src big-endian.
func (s *BufferedStream) WriteInt32s(src []int32) error {
	return s.writeBulk(len(src), 4, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			s.engine.PutUint32(dst[i*4:], uint32(src[at+i]))
		}
	})
}

// WriteInt64s writes src big-endian.
func (s *BufferedStream) WriteInt64s(src []int64) error {
	return s.writeBulk(len(src), 8, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			s.engine.PutUint64(dst[i*8:], uint64(src[at+i]))
		}
	})
}

// WriteFloat32s writes the IEEE-754 bit patterns of src.
func (s *BufferedStream) WriteFloat32s(src []float32) error {
	return s.writeBulk(len(src), 4, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			s.engine.PutUint32(dst[i*4:], math.Float32bits(src[at+i]))
		}
	})
}

// WriteFloat64s writes the IEEE-754 bit patterns of src.
func (s *BufferedStream) WriteFloat64s(src []float64) error {
	return s.writeBulk(len(src), 8, func(dst []byte, at, n int) {
		for i := 0; i < n; i++ {
			s.engine.PutUint64(dst[i*8:], math.Float64bits(src[at+i]))
		}
	})
}

// WriteString writes the bytes of str without a length prefix or terminator.
func (s *BufferedStream) WriteString(str string) error {
	return s.writeBulk(len(str), 1, func(dst []byte, at, n int) {
		copy(dst, str[at:at+n])
	})
}

// writeBulk encodes count elements of the given width in bursts no larger than the
// flush threshold.
func (s *BufferedStream) writeBulk(count, width int, encode func(dst []byte, at int, n int)) error {
	perBurst := max(s.cfg.bufferSize/width, 1)

	for done := 0; done < count; {
		n := min(count-done, perBurst)
		b, err := s.reserve(n * width)
		if err != nil {
			return err
		}
		encode(b, done, n)
		if err := s.commit(n * width); err != nil {
			return err
		}
		done += n
	}

	return nil
}

func encodeBool(v bool) byte {
	if v {
		return boolTrue
	}

	return boolFalse
}
