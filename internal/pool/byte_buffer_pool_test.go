package pool

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)
	_, _ = bb.Write([]byte("some data"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(4)
	_ = bb.WriteByte('A')

	region := bb.Extend(3)
	require.Len(t, region, 3)
	copy(region, "BCD")

	region = bb.Extend(5)
	copy(region, "EFGHI")

	assert.Equal(t, []byte("ABCDEFGHI"), bb.Bytes())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.Grow(20)
		assert.Equal(t, StreamBufferDefaultSize, bb.Cap())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * StreamBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("never less than required", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(3 * StreamBufferDefaultSize)
		assert.GreaterOrEqual(t, bb.Cap(), 3*StreamBufferDefaultSize)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(2)
		_, _ = bb.Write([]byte("xy"))
		bb.Grow(1000)
		assert.Equal(t, []byte("xy"), bb.Bytes())
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("burst"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "burst", out.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("x"))

	_, err := bb.WriteTo(failingWriter{})
	require.EqualError(t, err, "disk full")
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestGetStreamBuffer(t *testing.T) {
	bb := GetStreamBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 0)
	PutStreamBuffer(bb)
}

func TestPutStreamBuffer_Nil(t *testing.T) {
	require.NotPanics(t, func() { PutStreamBuffer(nil) })
}

func TestGetTableBuffer(t *testing.T) {
	bb := GetTableBuffer()
	require.NotNil(t, bb)
	_, _ = bb.Write(make([]byte, 100))
	PutTableBuffer(bb)

	bb = GetTableBuffer()
	assert.Equal(t, 0, bb.Len(), "buffers come back reset")
	PutTableBuffer(bb)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	big := p.Get()
	big.Grow(1024)
	require.Greater(t, big.Cap(), 64)
	p.Put(big)

	// The oversized buffer was dropped, a fresh one has the default capacity.
	fresh := p.Get()
	assert.LessOrEqual(t, fresh.Cap(), 64)
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	p := NewByteBufferPool(32, 0)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range 100 {
				bb := p.Get()
				_ = bb.WriteByte(byte(id))
				assert.Equal(t, 1, bb.Len())
				p.Put(bb)
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkByteBuffer_Extend(b *testing.B) {
	bb := NewByteBuffer(StreamBufferDefaultSize)
	b.ReportAllocs()
	for b.Loop() {
		bb.Reset()
		for range 64 {
			r := bb.Extend(8)
			r[0] = 1
		}
	}
}
