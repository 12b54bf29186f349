// Package table implements ColumnTable, the in-memory form of a FITS binary table.
//
// Columns are stored as flat typed slices, while Read and Write move the table to and
// from the row-major byte layout of a FITS data unit through the stream package:
//
//	tbl, err := table.New(
//		[]any{[]int32{1, 2, 3}, []float64{1, 2, 3, 4, 5, 6}},
//		[]int{1, 2},
//	)
//	s, _ := stream.NewWriter(w)
//	n, err := tbl.Write(s) // n == 3 * (4 + 16)
//	err = s.Close()
//
// Reading requires a table of the right shape, usually built from the column
// descriptions of the HDU header with format.MakeSlice:
//
//	tbl, _ := table.New([]any{make([]int32, 3), make([]float64, 6)}, []int{1, 2})
//	_, err := tbl.Read(in)
package table
