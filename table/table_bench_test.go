package table

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/fitskit/stream"
)

func benchTable(b *testing.B, rows int) *ColumnTable {
	b.Helper()

	ids := make([]int32, rows)
	flux := make([]float64, rows*4)
	flags := make([]bool, rows)
	for i := range ids {
		ids[i] = int32(i)
		flags[i] = i%2 == 0
	}
	for i := range flux {
		flux[i] = float64(i) * 0.25
	}

	tbl, err := New([]any{ids, flux, flags}, []int{1, 4, 1})
	if err != nil {
		b.Fatal(err)
	}

	return tbl
}

func BenchmarkColumnTable_Write(b *testing.B) {
	tbl := benchTable(b, 10000)
	s, err := stream.NewWriter(io.Discard)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(tbl.Size())
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := tbl.Write(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkColumnTable_Read(b *testing.B) {
	src := benchTable(b, 10000)

	var buf bytes.Buffer
	w, err := stream.NewWriter(&buf)
	if err != nil {
		b.Fatal(err)
	}
	if _, err := src.Write(w); err != nil {
		b.Fatal(err)
	}
	if err := w.Close(); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	dst := src.Copy()

	b.SetBytes(src.Size())
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		r, err := stream.NewReader(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		if _, err := dst.Read(r); err != nil {
			b.Fatal(err)
		}
		r.Close()
	}
}

func BenchmarkColumnTable_AddRow(b *testing.B) {
	row := []any{[]int32{1}, []float64{1, 2, 3, 4}, []bool{true}}

	b.ReportAllocs()

	for b.Loop() {
		tbl := benchTable(b, 100)
		for range 100 {
			if err := tbl.AddRow(row); err != nil {
				b.Fatal(err)
			}
		}
	}
}
