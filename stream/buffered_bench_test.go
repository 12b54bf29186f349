package stream

import (
	"bytes"
	"io"
	"testing"
)

func BenchmarkBufferedStream_WriteFloat64s(b *testing.B) {
	src := make([]float64, 4096)
	for i := range src {
		src[i] = float64(i) * 0.5
	}

	s, err := NewWriter(io.Discard)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(src) * 8))
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if err := s.WriteFloat64s(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBufferedStream_ReadInt32s(b *testing.B) {
	data := make([]byte, 4096*4)
	dst := make([]int32, 4096)

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		s, err := NewReader(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		if n := s.ReadInt32s(dst); n != len(dst) {
			b.Fatalf("read %d values", n)
		}
	}
}
