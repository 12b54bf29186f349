package table

import (
	"testing"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
	"github.com/stretchr/testify/require"
)

func newSample(t *testing.T) *ColumnTable {
	t.Helper()

	tbl, err := New(
		[]any{
			[]int32{1, 2, 3},
			[]float64{1.5, 2.5, 3.5, 4.5, 5.5, 6.5},
			format.Chars("abcdefghi"),
		},
		[]int{1, 2, 3},
	)
	require.NoError(t, err)

	return tbl
}

func TestNew_Shape(t *testing.T) {
	tbl := newSample(t)

	require.Equal(t, 3, tbl.NRows())
	require.Equal(t, 3, tbl.NCols())
	require.Equal(t, 4+16+3, tbl.RowByteSize())
	require.Equal(t, int64(3*23), tbl.Size())
	require.Equal(t, []format.Kind{format.KindInt32, format.KindFloat64, format.KindChar}, tbl.Kinds())
	require.Equal(t, []int{1, 2, 3}, tbl.RowSizes())
	require.Equal(t, 2, tbl.RowSize(1))
	require.Equal(t, 0, tbl.RowSize(7))
	require.Equal(t, format.KindFloat64, tbl.Kind(1))
	require.Equal(t, format.KindInvalid, tbl.Kind(-1))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		columns  []any
		rowSizes []int
	}{
		{"count mismatch", []any{[]int32{1}}, []int{1, 1}},
		{"unsupported type", []any{[]string{"a"}}, []int{1}},
		{"not a slice", []any{42}, []int{1}},
		{"length not a multiple", []any{[]int16{1, 2, 3}}, []int{2}},
		{"row counts disagree", []any{[]int32{1, 2}, []int64{1, 2, 3}}, []int{1, 1}},
		{"zero row size with data", []any{[]uint8{1}}, []int{0}},
		{"negative row size", []any{[]uint8{1}}, []int{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.columns, tt.rowSizes)
			require.ErrorIs(t, err, errs.ErrInconsistentTable)
		})
	}
}

func TestNew_Empty(t *testing.T) {
	tbl, err := New(nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, tbl.NRows())
	require.Equal(t, 0, tbl.NCols())
	require.Equal(t, 0, tbl.RowByteSize())
	require.Equal(t, 1, tbl.ChunkSize())
}

func TestNew_ZeroRowSizeColumn(t *testing.T) {
	tbl, err := New([]any{[]int32{1, 2}, []float32{}}, []int{1, 0})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NRows())
	require.Equal(t, 4, tbl.RowByteSize())
}

func TestColumnTable_ChunkSize(t *testing.T) {
	tests := []struct {
		name     string
		columns  []any
		rowSizes []int
		chunk    int
	}{
		{"fewer rows than a chunk", []any{make([]int64, 10)}, []int{1}, 10},
		{"many small rows", []any{make([]int64, 10000)}, []int{1}, ChunkBytes/8 + 1},
		{"row wider than a chunk", []any{make([]float64, 2*10000)}, []int{10000}, 1},
		{"zero-width rows", []any{[]int32{}}, []int{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(tt.columns, tt.rowSizes)
			require.NoError(t, err)
			require.Equal(t, tt.chunk, tbl.ChunkSize())
		})
	}
}

func TestColumnTable_Element(t *testing.T) {
	tbl := newSample(t)

	v, err := tbl.Element(1, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{3.5, 4.5}, v)

	v, err = tbl.Element(2, 2)
	require.NoError(t, err)
	require.Equal(t, "ghi", format.CharString(v.([]format.Char)))

	_, err = tbl.Element(3, 0)
	require.ErrorIs(t, err, errs.ErrTable)
	_, err = tbl.Element(0, 3)
	require.ErrorIs(t, err, errs.ErrTable)
}

func TestColumnTable_Element_ReturnsCopy(t *testing.T) {
	tbl := newSample(t)

	v, err := tbl.Element(0, 0)
	require.NoError(t, err)
	v.([]int32)[0] = 99

	col, err := tbl.Column(0)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, col)
}

func TestColumnTable_SetElement(t *testing.T) {
	tbl := newSample(t)

	require.NoError(t, tbl.SetElement(2, 1, []float64{-1, -2}))
	col, err := tbl.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2.5, 3.5, 4.5, -1, -2}, col)

	tests := []struct {
		name     string
		row, col int
		v        any
	}{
		{"wrong kind", 0, 1, []float32{1, 2}},
		{"wrong length", 0, 1, []float64{1}},
		{"row out of range", 3, 1, []float64{1, 2}},
		{"column out of range", 0, 5, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tbl.SetElement(tt.row, tt.col, tt.v), errs.ErrTable)
		})
	}
}

func TestColumnTable_Row(t *testing.T) {
	tbl := newSample(t)

	row, err := tbl.Row(1)
	require.NoError(t, err)
	require.Equal(t, []int32{2}, row[0])
	require.Equal(t, []float64{3.5, 4.5}, row[1])
	require.Equal(t, format.Chars("def"), row[2])

	_, err = tbl.Row(-1)
	require.ErrorIs(t, err, errs.ErrTable)
}

func TestColumnTable_SetRow(t *testing.T) {
	tbl := newSample(t)

	require.NoError(t, tbl.SetRow(0, []any{[]int32{10}, []float64{0, 0}, format.Chars("xyz")}))
	row, err := tbl.Row(0)
	require.NoError(t, err)
	require.Equal(t, []int32{10}, row[0])
	require.Equal(t, []float64{0, 0}, row[1])
	require.Equal(t, format.Chars("xyz"), row[2])

	// A bad value in the last column leaves the row untouched.
	err = tbl.SetRow(0, []any{[]int32{20}, []float64{1, 1}, format.Chars("x")})
	require.ErrorIs(t, err, errs.ErrTable)
	row, err = tbl.Row(0)
	require.NoError(t, err)
	require.Equal(t, []int32{10}, row[0])

	require.ErrorIs(t, tbl.SetRow(0, []any{[]int32{1}}), errs.ErrTable)
	require.ErrorIs(t, tbl.SetRow(5, nil), errs.ErrTable)
}

func TestColumnTable_SetColumn(t *testing.T) {
	t.Run("same shape", func(t *testing.T) {
		tbl := newSample(t)
		require.NoError(t, tbl.SetColumn(0, []int32{7, 8, 9}))

		v, err := tbl.Element(2, 0)
		require.NoError(t, err)
		require.Equal(t, []int32{9}, v)
	})

	t.Run("new kind revalidates", func(t *testing.T) {
		tbl := newSample(t)
		require.NoError(t, tbl.SetColumn(0, []int64{7, 8, 9}))
		require.Equal(t, format.KindInt64, tbl.Kind(0))
		require.Equal(t, 8+16+3, tbl.RowByteSize())
	})

	t.Run("wrong length rejected", func(t *testing.T) {
		tbl := newSample(t)
		err := tbl.SetColumn(0, []int32{1, 2})
		require.ErrorIs(t, err, errs.ErrInconsistentTable)

		col, err := tbl.Column(0)
		require.NoError(t, err)
		require.Equal(t, []int32{1, 2, 3}, col)
	})

	t.Run("unsupported type", func(t *testing.T) {
		tbl := newSample(t)
		require.ErrorIs(t, tbl.SetColumn(0, []string{"a"}), errs.ErrTable)
	})
}

func TestColumnTable_AddColumn(t *testing.T) {
	tbl := newSample(t)

	require.NoError(t, tbl.AddColumn([]bool{true, false, true}, 1))
	require.Equal(t, 4, tbl.NCols())
	require.Equal(t, 4+16+3+1, tbl.RowByteSize())

	require.ErrorIs(t, tbl.AddColumn([]bool{true}, 1), errs.ErrTable)
	require.ErrorIs(t, tbl.AddColumn([]string{"a", "b", "c"}, 1), errs.ErrTable)
	require.ErrorIs(t, tbl.AddColumn([]int16{1}, 0), errs.ErrTable)
}

func TestColumnTable_AddColumn_EmptyTable(t *testing.T) {
	tbl, err := New(nil, nil)
	require.NoError(t, err)

	require.NoError(t, tbl.AddColumn([]int16{1, 2, 3, 4}, 2))
	require.Equal(t, 2, tbl.NRows())

	require.NoError(t, tbl.AddColumn([]uint8{5, 6}, 1))
	require.Equal(t, 2, tbl.NRows())
}

func TestColumnTable_AddRow_DeleteRows(t *testing.T) {
	tbl := newSample(t)
	orig := tbl.Copy()

	require.NoError(t, tbl.AddRow([]any{[]int32{4}, []float64{7.5, 8.5}, format.Chars("jkl")}))
	require.Equal(t, 4, tbl.NRows())

	row, err := tbl.Row(3)
	require.NoError(t, err)
	require.Equal(t, []float64{7.5, 8.5}, row[1])

	require.NoError(t, tbl.DeleteRows(3, 1))
	require.Equal(t, orig.Columns(), tbl.Columns())
	require.Equal(t, 3, tbl.NRows())
}

func TestColumnTable_AddRow_Errors(t *testing.T) {
	tbl := newSample(t)

	require.ErrorIs(t, tbl.AddRow([]any{[]int32{4}}), errs.ErrTable)
	require.ErrorIs(t, tbl.AddRow([]any{[]int32{4}, []float64{1}, format.Chars("abc")}), errs.ErrTable)
	require.Equal(t, 3, tbl.NRows())
}

func TestColumnTable_AddRow_EmptyTable(t *testing.T) {
	tbl, err := New(nil, nil)
	require.NoError(t, err)

	require.NoError(t, tbl.AddRow([]any{[]int32{1}, []float32{1, 2, 3}}))
	require.Equal(t, 1, tbl.NRows())
	require.Equal(t, []int{1, 3}, tbl.RowSizes())

	require.NoError(t, tbl.AddRow([]any{[]int32{2}, []float32{4, 5, 6}}))
	require.Equal(t, 2, tbl.NRows())

	col, err := tbl.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3, 4, 5, 6}, col)
}

func TestColumnTable_AddRow_EmptyTableInvalid(t *testing.T) {
	tbl, err := New(nil, nil)
	require.NoError(t, err)

	err = tbl.AddRow([]any{[]int32{1}, "nope"})
	require.ErrorIs(t, err, errs.ErrTable)
	require.Equal(t, 0, tbl.NCols())
	require.Equal(t, 0, tbl.NRows())
}

func TestColumnTable_AddRow_EmptyTableNoElements(t *testing.T) {
	tests := []struct {
		name   string
		values []any
	}{
		{"no values", nil},
		{"empty slices", []any{[]int32{}, []float64{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(nil, nil)
			require.NoError(t, err)

			require.ErrorIs(t, tbl.AddRow(tt.values), errs.ErrTable)
			require.Equal(t, 0, tbl.NCols())
			require.Equal(t, 0, tbl.NRows())
		})
	}
}

func TestColumnTable_DeleteRows(t *testing.T) {
	tbl := newSample(t)

	require.NoError(t, tbl.DeleteRows(0, 2))
	require.Equal(t, 1, tbl.NRows())

	col, err := tbl.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{5.5, 6.5}, col)

	require.NoError(t, tbl.DeleteRows(0, 0))
	require.ErrorIs(t, tbl.DeleteRows(0, 2), errs.ErrTable)
	require.ErrorIs(t, tbl.DeleteRows(-1, 1), errs.ErrTable)
}

func TestColumnTable_DeleteColumns(t *testing.T) {
	tbl := newSample(t)

	require.NoError(t, tbl.DeleteColumns(1, 1))
	require.Equal(t, 2, tbl.NCols())
	require.Equal(t, []format.Kind{format.KindInt32, format.KindChar}, tbl.Kinds())
	require.Equal(t, 4+3, tbl.RowByteSize())
	require.Equal(t, 3, tbl.NRows())

	require.ErrorIs(t, tbl.DeleteColumns(1, 5), errs.ErrTable)

	require.NoError(t, tbl.DeleteColumns(0, 2))
	require.Equal(t, 0, tbl.NCols())
	require.Equal(t, 0, tbl.NRows())
	require.Equal(t, 0, tbl.RowByteSize())
}

func TestColumnTable_Copy_Independent(t *testing.T) {
	tbl := newSample(t)
	cp := tbl.Copy()

	require.NoError(t, cp.SetElement(0, 0, []int32{100}))
	require.NoError(t, cp.AddRow([]any{[]int32{4}, []float64{0, 0}, format.Chars("   ")}))

	v, err := tbl.Element(0, 0)
	require.NoError(t, err)
	require.Equal(t, []int32{1}, v)
	require.Equal(t, 3, tbl.NRows())
	require.Equal(t, 4, cp.NRows())
}
