package table

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
	"github.com/arloliu/fitskit/stream"
	"github.com/stretchr/testify/require"
)

// flushCounter counts the flushes a table requests from its writer.
type flushCounter struct {
	*stream.BufferedStream
	flushes int
}

func (f *flushCounter) Flush() error {
	f.flushes++
	return f.BufferedStream.Flush()
}

func allKinds(t *testing.T) *ColumnTable {
	t.Helper()

	tbl, err := New(
		[]any{
			[]uint8{1, 2, 3, 4},
			[]int8{-1, -2},
			[]bool{true, false},
			format.Chars("hellothere"),
			[]int16{-300, 300},
			[]int32{1 << 20, -1 << 20},
			[]int64{1 << 40, -1 << 40},
			[]float32{1.25, -2.5},
			[]float64{3.125, -6.25, 12.5, -25},
		},
		[]int{2, 1, 1, 5, 1, 1, 1, 1, 2},
	)
	require.NoError(t, err)

	return tbl
}

func shapeOf(t *testing.T, src *ColumnTable) *ColumnTable {
	t.Helper()

	columns := make([]any, src.NCols())
	for i, k := range src.Kinds() {
		columns[i] = format.MakeSlice(k, src.RowSize(i)*src.NRows())
	}

	tbl, err := New(columns, src.RowSizes())
	require.NoError(t, err)

	return tbl
}

func TestColumnTable_Write_WireImage(t *testing.T) {
	tbl, err := New([]any{[]int32{1, 2}, []int16{3, 4, 5, 6}}, []int{1, 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	s, err := stream.NewWriter(&buf)
	require.NoError(t, err)

	n, err := tbl.Write(s)
	require.NoError(t, err)
	require.NoError(t, s.Flush())
	require.Equal(t, int64(16), n)
	require.Equal(t, []byte{
		0, 0, 0, 1, 0, 3, 0, 4,
		0, 0, 0, 2, 0, 5, 0, 6,
	}, buf.Bytes())
}

func TestColumnTable_RoundTrip(t *testing.T) {
	src := allKinds(t)

	var buf bytes.Buffer
	w, err := stream.NewWriter(&buf)
	require.NoError(t, err)

	n, err := src.Write(w)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, src.Size(), n)
	require.Equal(t, int(src.Size()), buf.Len())

	dst := shapeOf(t, src)
	r, err := stream.NewReader(&buf)
	require.NoError(t, err)

	n, err = dst.Read(r)
	require.NoError(t, err)
	require.Equal(t, src.Size(), n)
	require.Equal(t, src.Columns(), dst.Columns())
}

func TestColumnTable_Read_Short(t *testing.T) {
	tbl, err := New([]any{make([]int32, 3)}, []int{1})
	require.NoError(t, err)

	r, err := stream.NewReader(bytes.NewReader([]byte{0, 0, 0, 7, 0, 0}))
	require.NoError(t, err)

	n, err := tbl.Read(r)
	require.ErrorIs(t, err, errs.ErrShortRead)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Equal(t, int64(4), n)

	v, err := tbl.Element(0, 0)
	require.NoError(t, err)
	require.Equal(t, []int32{7}, v)
}

func TestColumnTable_Read_IOError(t *testing.T) {
	boom := errors.New("boom")
	tbl, err := New([]any{make([]float64, 2)}, []int{1})
	require.NoError(t, err)

	r, err := stream.NewReader(io.MultiReader(bytes.NewReader(make([]byte, 8)), &errReader{err: boom}))
	require.NoError(t, err)

	_, err = tbl.Read(r)
	require.ErrorIs(t, err, errs.ErrShortRead)
	require.ErrorIs(t, err, boom)
}

type errReader struct {
	err error
}

func (r *errReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestColumnTable_Write_FlushesPerChunk(t *testing.T) {
	tbl, err := New([]any{make([]int64, 20000)}, []int{1})
	require.NoError(t, err)
	require.Equal(t, ChunkBytes/8+1, tbl.ChunkSize())

	s, err := stream.NewWriter(io.Discard)
	require.NoError(t, err)
	w := &flushCounter{BufferedStream: s}

	n, err := tbl.Write(w)
	require.NoError(t, err)
	require.Equal(t, int64(20000*8), n)
	require.Equal(t, 20000/tbl.ChunkSize(), w.flushes)
}

func TestColumnTable_Write_ClosedStream(t *testing.T) {
	tbl := newSample(t)

	s, err := stream.NewWriter(io.Discard)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = tbl.Write(s)
	require.ErrorIs(t, err, errs.ErrStreamClosed)
}

func TestColumnTable_Digest(t *testing.T) {
	a := allKinds(t)
	b := a.Copy()

	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	require.Equal(t, da, db)

	require.NoError(t, b.SetElement(1, 8, []float64{0, 0}))
	db, err = b.Digest()
	require.NoError(t, err)
	require.NotEqual(t, da, db)
}
