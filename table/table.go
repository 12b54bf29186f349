package table

import (
	"fmt"
	"slices"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
)

const (
	// ChunkBytes is the size of one I/O burst. Write flushes its output after as many
	// rows as fit in it.
	ChunkBytes = 64 * 1024
)

// ColumnTable stores a table column by column.
//
// Every column is a one-dimensional typed slice holding the values of all rows, row
// after row: the elements [row*rowSize, (row+1)*rowSize) belong to row. A row size
// above one makes a vector-valued column. All columns hold the same number of rows.
//
// On the wire the table is row-major: each row is the concatenation of its columns'
// elements in column order. Read and Write transpose between the two layouts.
//
// The table owns the slices it is given and replaces them wholesale when rows or
// columns are added or deleted. A ColumnTable is not safe for concurrent use.
type ColumnTable struct {
	columns     []any
	kinds       []format.Kind
	rowSizes    []int
	nrow        int
	rowByteSize int
	chunkSize   int

	cache banks
	dirty bool
}

// New creates a table from typed column slices and their row sizes.
//
// Parameters:
//   - columns: one typed slice per column ([]uint8, []int8, []bool, []format.Char,
//     []int16, []int32, []int64, []float32 or []float64); the table takes ownership
//   - rowSizes: elements per row for each column
//
// Returns:
//   - *ColumnTable: the table
//   - error: errs.ErrInconsistentTable if the counts differ, a column has an unsupported
//     type, a length is not a multiple of its row size, or the row counts disagree
func New(columns []any, rowSizes []int) (*ColumnTable, error) {
	if len(columns) != len(rowSizes) {
		return nil, fmt.Errorf("%w: %d columns but %d row sizes", errs.ErrInconsistentTable, len(columns), len(rowSizes))
	}

	kinds, nrow, err := checkConsistency(columns, rowSizes)
	if err != nil {
		return nil, err
	}

	t := &ColumnTable{
		columns:  slices.Clone(columns),
		kinds:    kinds,
		rowSizes: slices.Clone(rowSizes),
		nrow:     nrow,
	}
	t.setup()

	return t, nil
}

// checkConsistency validates a column set and returns the column kinds and row count.
func checkConsistency(columns []any, rowSizes []int) ([]format.Kind, int, error) {
	kinds := make([]format.Kind, len(columns))
	nrow := -1

	for i, col := range columns {
		k := format.KindOf(col)
		if !k.Valid() {
			return nil, 0, fmt.Errorf("%w: column %d: unsupported type %T", errs.ErrInconsistentTable, i, col)
		}
		kinds[i] = k

		n, rs := format.SliceLen(col), rowSizes[i]
		switch {
		case rs < 0:
			return nil, 0, fmt.Errorf("%w: column %d: negative row size %d", errs.ErrInconsistentTable, i, rs)
		case rs == 0:
			if n != 0 {
				return nil, 0, fmt.Errorf("%w: column %d: %d elements with row size 0", errs.ErrInconsistentTable, i, n)
			}

			continue
		case n%rs != 0:
			return nil, 0, fmt.Errorf("%w: column %d: %d elements is not a multiple of row size %d",
				errs.ErrInconsistentTable, i, n, rs)
		}

		if rows := n / rs; nrow < 0 {
			nrow = rows
		} else if rows != nrow {
			return nil, 0, fmt.Errorf("%w: column %d has %d rows, expected %d", errs.ErrInconsistentTable, i, rows, nrow)
		}
	}

	return kinds, max(nrow, 0), nil
}

// setup derives the row byte size and chunk size and invalidates the typed cache.
func (t *ColumnTable) setup() {
	t.rowByteSize = 0
	for i, k := range t.kinds {
		t.rowByteSize += t.rowSizes[i] * k.Size()
	}

	switch {
	case t.rowByteSize == 0:
		t.chunkSize = 1
	case t.rowByteSize > ChunkBytes:
		t.chunkSize = 1
	default:
		t.chunkSize = max(min(t.nrow, ChunkBytes/t.rowByteSize+1), 1)
	}

	t.dirty = true
}

// NRows returns the number of rows.
func (t *ColumnTable) NRows() int {
	return t.nrow
}

// NCols returns the number of columns.
func (t *ColumnTable) NCols() int {
	return len(t.columns)
}

// RowByteSize returns the number of bytes one row occupies on the wire.
func (t *ColumnTable) RowByteSize() int {
	return t.rowByteSize
}

// Size returns the number of bytes the whole table occupies on the wire.
func (t *ColumnTable) Size() int64 {
	return int64(t.rowByteSize) * int64(t.nrow)
}

// ChunkSize returns the number of rows written between two flushes.
func (t *ColumnTable) ChunkSize() int {
	return t.chunkSize
}

// RowSize returns the number of elements per row of column col, or 0 if col is out of range.
func (t *ColumnTable) RowSize(col int) int {
	if col < 0 || col >= len(t.rowSizes) {
		return 0
	}

	return t.rowSizes[col]
}

// Kind returns the element kind of column col, or format.KindInvalid if col is out of range.
func (t *ColumnTable) Kind(col int) format.Kind {
	if col < 0 || col >= len(t.kinds) {
		return format.KindInvalid
	}

	return t.kinds[col]
}

// Kinds returns the element kinds of all columns.
func (t *ColumnTable) Kinds() []format.Kind {
	return slices.Clone(t.kinds)
}

// RowSizes returns the row sizes of all columns.
func (t *ColumnTable) RowSizes() []int {
	return slices.Clone(t.rowSizes)
}

// Columns returns the column slices. The slices are shared with the table.
func (t *ColumnTable) Columns() []any {
	return slices.Clone(t.columns)
}

// Column returns the slice backing column col. The slice is shared with the table.
func (t *ColumnTable) Column(col int) (any, error) {
	if err := t.checkColumn(col); err != nil {
		return nil, err
	}

	return t.columns[col], nil
}

// SetColumn replaces column col.
//
// A replacement of the same kind and length only swaps the slice. Otherwise the whole
// table is validated again with the new column and left unchanged on failure.
func (t *ColumnTable) SetColumn(col int, v any) error {
	if err := t.checkColumn(col); err != nil {
		return err
	}

	k := format.KindOf(v)
	if !k.Valid() {
		return fmt.Errorf("%w: column %d: unsupported type %T", errs.ErrTable, col, v)
	}

	if k == t.kinds[col] && format.SliceLen(v) == format.SliceLen(t.columns[col]) {
		t.columns[col] = v
		t.dirty = true

		return nil
	}

	columns := slices.Clone(t.columns)
	columns[col] = v
	kinds, nrow, err := checkConsistency(columns, t.rowSizes)
	if err != nil {
		return err
	}

	t.columns, t.kinds, t.nrow = columns, kinds, nrow
	t.setup()

	return nil
}

// Element returns a copy of the values of column col in row row.
func (t *ColumnTable) Element(row, col int) (any, error) {
	if err := t.checkCell(row, col); err != nil {
		return nil, err
	}

	rs := t.rowSizes[col]

	return cloneRange(t.columns[col], row*rs, (row+1)*rs), nil
}

// SetElement overwrites the values of column col in row row.
//
// Returns errs.ErrTable if the position is out of range or v does not have the kind and
// row size of the column.
func (t *ColumnTable) SetElement(row, col int, v any) error {
	if err := t.checkCell(row, col); err != nil {
		return err
	}
	if err := t.checkValue(col, v); err != nil {
		return err
	}

	copyAt(t.columns[col], row*t.rowSizes[col], v)

	return nil
}

// Row returns a copy of every column's values in row row, one typed slice per column.
func (t *ColumnTable) Row(row int) ([]any, error) {
	if row < 0 || row >= t.nrow {
		return nil, fmt.Errorf("%w: row %d out of range [0, %d)", errs.ErrTable, row, t.nrow)
	}

	values := make([]any, len(t.columns))
	for col, c := range t.columns {
		rs := t.rowSizes[col]
		values[col] = cloneRange(c, row*rs, (row+1)*rs)
	}

	return values, nil
}

// SetRow overwrites row row. values must hold one slice per column with the column's
// kind and row size; nothing is written if any of them does not.
func (t *ColumnTable) SetRow(row int, values []any) error {
	if row < 0 || row >= t.nrow {
		return fmt.Errorf("%w: row %d out of range [0, %d)", errs.ErrTable, row, t.nrow)
	}
	if err := t.checkValues(values); err != nil {
		return err
	}

	for col, v := range values {
		copyAt(t.columns[col], row*t.rowSizes[col], v)
	}

	return nil
}

// AddColumn appends a column.
//
// Parameters:
//   - v: typed slice holding rowSize elements for every row of the table; for an empty
//     table it defines the row count
//   - rowSize: elements per row
//
// Returns:
//   - error: errs.ErrTable if v has an unsupported type or the wrong number of rows
func (t *ColumnTable) AddColumn(v any, rowSize int) error {
	k := format.KindOf(v)
	if !k.Valid() {
		return fmt.Errorf("%w: unsupported column type %T", errs.ErrTable, v)
	}
	if rowSize < 0 {
		return fmt.Errorf("%w: negative row size %d", errs.ErrTable, rowSize)
	}

	n := format.SliceLen(v)
	nrow := t.nrow
	switch {
	case rowSize == 0:
		if n != 0 {
			return fmt.Errorf("%w: %d elements with row size 0", errs.ErrTable, n)
		}
	case len(t.columns) == 0:
		if n%rowSize != 0 {
			return fmt.Errorf("%w: %d elements is not a multiple of row size %d", errs.ErrTable, n, rowSize)
		}
		nrow = n / rowSize
	case n != t.nrow*rowSize:
		return fmt.Errorf("%w: column has %d elements, expected %d rows of %d", errs.ErrTable, n, t.nrow, rowSize)
	}

	t.columns = append(t.columns, v)
	t.kinds = append(t.kinds, k)
	t.rowSizes = append(t.rowSizes, rowSize)
	t.nrow = nrow
	t.setup()

	return nil
}

// AddRow appends a row.
//
// On a table without columns every value becomes a new column whose row size is the
// value's length; at least one value must be non-empty, or the row could not be counted.
// Otherwise values must hold one slice per column with the column's kind and row size.
func (t *ColumnTable) AddRow(values []any) error {
	if len(t.columns) == 0 {
		columns := make([]any, len(values))
		rowSizes := make([]int, len(values))
		width := 0
		for i, v := range values {
			columns[i] = clone(v)
			rowSizes[i] = format.SliceLen(v)
			width += max(rowSizes[i], 0)
		}
		if width == 0 {
			return fmt.Errorf("%w: first row of %d values holds no elements", errs.ErrTable, len(values))
		}

		kinds, nrow, err := checkConsistency(columns, rowSizes)
		if err != nil {
			return fmt.Errorf("%w: %w", errs.ErrTable, err)
		}

		t.columns, t.kinds, t.rowSizes, t.nrow = columns, kinds, rowSizes, nrow
		t.setup()

		return nil
	}

	if err := t.checkValues(values); err != nil {
		return err
	}

	columns := make([]any, len(t.columns))
	for col, c := range t.columns {
		columns[col] = splice(c, t.nrow*t.rowSizes[col], 0, values[col])
	}

	t.columns = columns
	t.nrow++
	t.setup()

	return nil
}

// DeleteRows removes count rows starting at row start.
//
// Returns errs.ErrTable if the range does not lie within the table.
func (t *ColumnTable) DeleteRows(start, count int) error {
	if start < 0 || count < 0 || start+count > t.nrow {
		return fmt.Errorf("%w: cannot delete rows [%d, %d) of %d", errs.ErrTable, start, start+count, t.nrow)
	}
	if count == 0 {
		return nil
	}

	for col, c := range t.columns {
		rs := t.rowSizes[col]
		t.columns[col] = splice(c, start*rs, count*rs, nil)
	}
	t.nrow -= count
	t.setup()

	return nil
}

// DeleteColumns removes count columns starting at column start.
// Deleting every column resets the row count to 0.
func (t *ColumnTable) DeleteColumns(start, count int) error {
	if start < 0 || count < 0 || start+count > len(t.columns) {
		return fmt.Errorf("%w: cannot delete columns [%d, %d) of %d", errs.ErrTable, start, start+count, len(t.columns))
	}
	if count == 0 {
		return nil
	}

	t.columns = slices.Delete(slices.Clone(t.columns), start, start+count)
	t.kinds = slices.Delete(t.kinds, start, start+count)
	t.rowSizes = slices.Delete(t.rowSizes, start, start+count)
	if len(t.columns) == 0 {
		t.nrow = 0
	}
	t.setup()

	return nil
}

// Copy returns a deep copy of the table.
func (t *ColumnTable) Copy() *ColumnTable {
	columns := make([]any, len(t.columns))
	for i, c := range t.columns {
		columns[i] = clone(c)
	}

	cp := &ColumnTable{
		columns:  columns,
		kinds:    slices.Clone(t.kinds),
		rowSizes: slices.Clone(t.rowSizes),
		nrow:     t.nrow,
	}
	cp.setup()

	return cp
}

func (t *ColumnTable) checkColumn(col int) error {
	if col < 0 || col >= len(t.columns) {
		return fmt.Errorf("%w: column %d out of range [0, %d)", errs.ErrTable, col, len(t.columns))
	}

	return nil
}

func (t *ColumnTable) checkCell(row, col int) error {
	if row < 0 || row >= t.nrow {
		return fmt.Errorf("%w: row %d out of range [0, %d)", errs.ErrTable, row, t.nrow)
	}

	return t.checkColumn(col)
}

// checkValue verifies that v can be stored as one row of column col.
func (t *ColumnTable) checkValue(col int, v any) error {
	if k := format.KindOf(v); k != t.kinds[col] {
		return fmt.Errorf("%w: column %d holds %s, got %T", errs.ErrTable, col, t.kinds[col], v)
	}
	if n := format.SliceLen(v); n != t.rowSizes[col] {
		return fmt.Errorf("%w: column %d has row size %d, got %d elements", errs.ErrTable, col, t.rowSizes[col], n)
	}

	return nil
}

func (t *ColumnTable) checkValues(values []any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: %d values for %d columns", errs.ErrTable, len(values), len(t.columns))
	}
	for col, v := range values {
		if err := t.checkValue(col, v); err != nil {
			return err
		}
	}

	return nil
}
