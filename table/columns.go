package table

import (
	"slices"

	"github.com/arloliu/fitskit/format"
)

// The helpers below dispatch once on the column type and then work on the typed slice.
// They assume the caller validated kinds and bounds.

func spliceT[T any](s []T, at, del int, ins []T) []T {
	out := make([]T, 0, len(s)-del+len(ins))
	out = append(out, s[:at]...)
	out = append(out, ins...)

	return append(out, s[at+del:]...)
}

// splice returns a new column holding col[:at], ins and col[at+del:].
// ins may be nil to delete elements.
func splice(col any, at, del int, ins any) any {
	switch c := col.(type) {
	case []uint8:
		in, _ := ins.([]uint8)
		return spliceT(c, at, del, in)
	case []int8:
		in, _ := ins.([]int8)
		return spliceT(c, at, del, in)
	case []bool:
		in, _ := ins.([]bool)
		return spliceT(c, at, del, in)
	case []format.Char:
		in, _ := ins.([]format.Char)
		return spliceT(c, at, del, in)
	case []int16:
		in, _ := ins.([]int16)
		return spliceT(c, at, del, in)
	case []int32:
		in, _ := ins.([]int32)
		return spliceT(c, at, del, in)
	case []int64:
		in, _ := ins.([]int64)
		return spliceT(c, at, del, in)
	case []float32:
		in, _ := ins.([]float32)
		return spliceT(c, at, del, in)
	case []float64:
		in, _ := ins.([]float64)
		return spliceT(c, at, del, in)
	default:
		return nil
	}
}

// cloneRange returns a copy of col[lo:hi].
func cloneRange(col any, lo, hi int) any {
	switch c := col.(type) {
	case []uint8:
		return slices.Clone(c[lo:hi])
	case []int8:
		return slices.Clone(c[lo:hi])
	case []bool:
		return slices.Clone(c[lo:hi])
	case []format.Char:
		return slices.Clone(c[lo:hi])
	case []int16:
		return slices.Clone(c[lo:hi])
	case []int32:
		return slices.Clone(c[lo:hi])
	case []int64:
		return slices.Clone(c[lo:hi])
	case []float32:
		return slices.Clone(c[lo:hi])
	case []float64:
		return slices.Clone(c[lo:hi])
	default:
		return nil
	}
}

// clone returns a copy of a whole column. A nil column stays nil.
func clone(col any) any {
	return cloneRange(col, 0, format.SliceLen(col))
}

// copyAt copies src into dst starting at element at. Both must have the same type.
func copyAt(dst any, at int, src any) {
	switch d := dst.(type) {
	case []uint8:
		copy(d[at:], src.([]uint8))
	case []int8:
		copy(d[at:], src.([]int8))
	case []bool:
		copy(d[at:], src.([]bool))
	case []format.Char:
		copy(d[at:], src.([]format.Char))
	case []int16:
		copy(d[at:], src.([]int16))
	case []int32:
		copy(d[at:], src.([]int32))
	case []int64:
		copy(d[at:], src.([]int64))
	case []float32:
		copy(d[at:], src.([]float32))
	case []float64:
		copy(d[at:], src.([]float64))
	}
}
