package table

import "github.com/arloliu/fitskit/format"

// banks caches the columns of a table grouped by element kind, so the row loops can
// select a typed slice with one switch per column instead of a type assertion.
//
// index[col] is the position of column col within the bank of its kind.
type banks struct {
	index []int
	u8    [][]uint8
	i8    [][]int8
	bools [][]bool
	chars [][]format.Char
	i16   [][]int16
	i32   [][]int32
	i64   [][]int64
	f32   [][]float32
	f64   [][]float64
}

func (b *banks) reset() {
	b.index = b.index[:0]
	b.u8 = b.u8[:0]
	b.i8 = b.i8[:0]
	b.bools = b.bools[:0]
	b.chars = b.chars[:0]
	b.i16 = b.i16[:0]
	b.i32 = b.i32[:0]
	b.i64 = b.i64[:0]
	b.f32 = b.f32[:0]
	b.f64 = b.f64[:0]
}

func (b *banks) rebuild(columns []any) {
	b.reset()

	for _, col := range columns {
		switch c := col.(type) {
		case []uint8:
			b.index = append(b.index, len(b.u8))
			b.u8 = append(b.u8, c)
		case []int8:
			b.index = append(b.index, len(b.i8))
			b.i8 = append(b.i8, c)
		case []bool:
			b.index = append(b.index, len(b.bools))
			b.bools = append(b.bools, c)
		case []format.Char:
			b.index = append(b.index, len(b.chars))
			b.chars = append(b.chars, c)
		case []int16:
			b.index = append(b.index, len(b.i16))
			b.i16 = append(b.i16, c)
		case []int32:
			b.index = append(b.index, len(b.i32))
			b.i32 = append(b.i32, c)
		case []int64:
			b.index = append(b.index, len(b.i64))
			b.i64 = append(b.i64, c)
		case []float32:
			b.index = append(b.index, len(b.f32))
			b.f32 = append(b.f32, c)
		case []float64:
			b.index = append(b.index, len(b.f64))
			b.f64 = append(b.f64, c)
		}
	}
}

// pointers returns the typed banks, rebuilding them if the column set changed.
func (t *ColumnTable) pointers() *banks {
	if t.dirty {
		t.cache.rebuild(t.columns)
		t.dirty = false
	}

	return &t.cache
}
