// Package arrays inspects nested slices handed to the generic codec entry points.
package arrays

import (
	"fmt"
	"reflect"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
)

var charType = reflect.TypeOf(format.Char(0))

// LeafKind maps a reflect element type to the codec kind that can carry it.
// Named types are accepted when their underlying kind is supported; uint16 is only
// accepted as format.Char.
func LeafKind(t reflect.Type) format.Kind {
	if t == charType {
		return format.KindChar
	}

	switch t.Kind() { //nolint: exhaustive
	case reflect.Uint8:
		return format.KindUint8
	case reflect.Int8:
		return format.KindInt8
	case reflect.Bool:
		return format.KindBool
	case reflect.Int16:
		return format.KindInt16
	case reflect.Int32:
		return format.KindInt32
	case reflect.Int64:
		return format.KindInt64
	case reflect.Float32:
		return format.KindFloat32
	case reflect.Float64:
		return format.KindFloat64
	default:
		return format.KindInvalid
	}
}

// IsContainer reports whether values of kind k may hold further nesting levels.
func IsContainer(k reflect.Kind) bool {
	switch k { //nolint: exhaustive
	case reflect.Slice, reflect.Array, reflect.Interface, reflect.Pointer:
		return true
	default:
		return false
	}
}

// IsRectangular reports whether t is a Go array whose elements are arrays, the one
// shape the codec refuses.
func IsRectangular(t reflect.Type) bool {
	return t.Kind() == reflect.Array && t.Elem().Kind() == reflect.Array
}

// Dimensions returns the extent of every nesting level of v, outermost first.
//
// Jagged levels report the length of their first non-nil element. Leading nil
// elements are skipped; when every element of a level is nil the walk stops there
// and deeper levels are not reported.
func Dimensions(v any) []int {
	var dims []int

	rv := reflect.ValueOf(v)
	for rv.IsValid() {
		switch rv.Kind() { //nolint: exhaustive
		case reflect.Interface, reflect.Pointer:
			if rv.IsNil() {
				return dims
			}
			rv = rv.Elem()

		case reflect.Slice, reflect.Array:
			dims = append(dims, rv.Len())
			if !IsContainer(rv.Type().Elem().Kind()) {
				return dims
			}

			next := reflect.Value{}
			for i := 0; i < rv.Len(); i++ {
				e := rv.Index(i)
				if isNil(e) {
					continue
				}
				next = e

				break
			}
			rv = next

		default:
			return dims
		}
	}

	return dims
}

// Sizer is implemented by container values that know their own wire size.
type Sizer interface {
	ByteSize() int64
}

// ByteSize returns the number of wire bytes needed to write every leaf of v.
// Strings count one byte per byte of text.
func ByteSize(v any) (int64, error) {
	if k := format.KindOf(v); k.Valid() {
		return int64(format.SliceLen(v) * k.Size()), nil
	}

	switch a := v.(type) {
	case nil:
		return 0, nil
	case Sizer:
		return a.ByteSize(), nil
	case string:
		return int64(len(a)), nil
	case []string:
		var total int64
		for _, s := range a {
			total += int64(len(s))
		}

		return total, nil
	}

	return byteSize(reflect.ValueOf(v))
}

func byteSize(rv reflect.Value) (int64, error) {
	switch rv.Kind() { //nolint: exhaustive
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return 0, nil
		}

		return ByteSize(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		t := rv.Type()
		if IsRectangular(t) {
			return 0, fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrRectangularArray, t)
		}
		if k := LeafKind(t.Elem()); k.Valid() {
			return int64(rv.Len() * k.Size()), nil
		}
		if !IsContainer(t.Elem().Kind()) && t.Elem().Kind() != reflect.String {
			return 0, fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrUnsupportedKind, t)
		}

		var total int64
		for i := 0; i < rv.Len(); i++ {
			n, err := ByteSize(rv.Index(i).Interface())
			if err != nil {
				return 0, err
			}
			total += n
		}

		return total, nil

	case reflect.String:
		return int64(rv.Len()), nil

	default:
		return 0, fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrUnsupportedKind, rv.Type())
	}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() { //nolint: exhaustive
	case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
		return v.IsNil()
	default:
		return false
	}
}
