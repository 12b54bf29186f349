package fitskit_test

import (
	"bytes"
	"fmt"

	"github.com/arloliu/fitskit"
	"github.com/arloliu/fitskit/format"
)

func ExampleNewTable() {
	tbl, err := fitskit.NewTable(
		[]any{[]int32{10, 20, 30}, []float64{1, 2, 3, 4, 5, 6}},
		[]int{1, 2},
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(tbl.NRows(), tbl.NCols(), tbl.RowByteSize())
	// Output: 3 2 20
}

func ExampleEncode() {
	tbl, err := fitskit.NewTable([]any{[]int16{1, 2}}, []int{1})
	if err != nil {
		panic(err)
	}

	data, err := fitskit.Encode(tbl, format.CompressionNone)
	if err != nil {
		panic(err)
	}

	fmt.Printf("% x\n", data)
	// Output: 00 01 00 02
}

func ExampleNewWriter() {
	var buf bytes.Buffer
	w, err := fitskit.NewWriter(&buf)
	if err != nil {
		panic(err)
	}

	_ = w.WriteInt32(2880)
	_ = w.WriteBool(true)
	_ = w.WriteString("END")
	if err := w.Close(); err != nil {
		panic(err)
	}

	fmt.Printf("%q\n", buf.Bytes())
	// Output: "\x00\x00\v@TEND"
}

func ExampleNewFormatter() {
	f, err := fitskit.NewFormatter()
	if err != nil {
		panic(err)
	}

	field := make([]byte, 10)
	n, err := f.FormatFloat64(1.5, field, 0, 10)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(field[:n]))
	// Output: 1.5
}
