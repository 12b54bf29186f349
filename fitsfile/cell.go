package fitsfile

import (
	"reflect"
	"strings"

	"github.com/arloliu/fitskit/format"
)

// cell is the fitsio-side value of one column in one row: a scalar for a row size of 1,
// a [rowSize]T array otherwise, and a string for Char columns.
type cell struct {
	kind    format.Kind
	rowSize int
	ptr     reflect.Value
}

func newCell(k format.Kind, rowSize int) cell {
	var typ reflect.Type
	switch {
	case k == format.KindChar:
		typ = reflect.TypeFor[string]()
	case rowSize == 1:
		typ = elemTypes[k]
	default:
		typ = reflect.ArrayOf(rowSize, elemTypes[k])
	}

	return cell{kind: k, rowSize: rowSize, ptr: reflect.New(typ)}
}

// load copies one table element (a typed slice of rowSize values) into the cell.
func (c cell) load(v any) {
	dst := c.ptr.Elem()
	switch {
	case c.kind == format.KindChar:
		dst.SetString(format.CharString(v.([]format.Char)))
	case c.rowSize == 1:
		dst.Set(reflect.ValueOf(v).Index(0))
	default:
		reflect.Copy(dst, reflect.ValueOf(v))
	}
}

// store returns the cell content as a typed slice of rowSize values. Strings shorter
// than the column are padded with blanks.
func (c cell) store() any {
	src := c.ptr.Elem()
	switch {
	case c.kind == format.KindChar:
		s := src.String()
		if len(s) < c.rowSize {
			s += strings.Repeat(" ", c.rowSize-len(s))
		}

		return format.Chars(s[:c.rowSize])
	case c.rowSize == 1:
		out := reflect.MakeSlice(reflect.SliceOf(src.Type()), 1, 1)
		out.Index(0).Set(src)

		return out.Interface()
	default:
		out := reflect.MakeSlice(reflect.SliceOf(src.Type().Elem()), c.rowSize, c.rowSize)
		reflect.Copy(out, src)

		return out.Interface()
	}
}
