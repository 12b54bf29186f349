package stream

import (
	"fmt"
	"reflect"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
	"github.com/arloliu/fitskit/internal/arrays"
)

// Element is the set of Go types the codec carries as leaf values.
type Element interface {
	uint8 | int8 | bool | format.Char | int16 | int32 | int64 | float32 | float64
}

// Nested is a jagged multi-dimensional array of T.
//
// A node is either a leaf holding a flat run of values, or a list of child nodes.
// When Leaf is non-nil Nodes is ignored. Leaves are transferred in depth-first order.
//
// Example:
//
//	cube := stream.Nested[int16]{Nodes: []stream.Nested[int16]{
//		{Leaf: []int16{1, 2, 3}},
//		{Leaf: []int16{4}},
//	}}
//	err := s.WriteArray(cube)
type Nested[T Element] struct {
	Leaf  []T
	Nodes []Nested[T]
}

// Len returns the total number of leaf values under n.
func (n Nested[T]) Len() int {
	if n.Leaf != nil {
		return len(n.Leaf)
	}

	total := 0
	for _, c := range n.Nodes {
		total += c.Len()
	}

	return total
}

// ByteSize returns the number of wire bytes the leaves of n occupy.
func (n Nested[T]) ByteSize() int64 {
	var zero [1]T

	return int64(n.Len() * format.KindOf(zero[:]).Size())
}

type nestedNode interface {
	writeTo(s *BufferedStream) error
	readFrom(s *BufferedStream) (int64, error)
}

func (n Nested[T]) writeTo(s *BufferedStream) error {
	if n.Leaf != nil {
		return s.writeTyped(any(n.Leaf))
	}
	for _, c := range n.Nodes {
		if err := c.writeTo(s); err != nil {
			return err
		}
	}

	return nil
}

func (n Nested[T]) readFrom(s *BufferedStream) (int64, error) {
	if n.Leaf != nil {
		return s.readTyped(any(n.Leaf))
	}

	var total int64
	for _, c := range n.Nodes {
		got, err := c.readFrom(s)
		total += got
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// WriteArray writes every leaf value of v in depth-first order.
//
// Parameters:
//   - v: a typed slice, a slice of slices at any depth, a []any, a pointer to a
//     one-dimensional Go array, a Nested[T], a string or a []string
//
// Returns:
//   - error: errs.ErrRectangularArray for multi-dimensional Go arrays,
//     errs.ErrUnsupportedKind for any other leaf type, or a write error
func (s *BufferedStream) WriteArray(v any) error {
	size, err := arrays.ByteSize(v)
	if err != nil {
		return err
	}
	if s.pending != nil && !s.closed {
		s.pending.Grow(int(min(size, int64(s.cfg.bufferSize))))
	}

	return s.writeValue(v)
}

func (s *BufferedStream) writeValue(v any) error {
	switch a := v.(type) {
	case nil:
		return nil
	case string:
		return s.WriteString(a)
	case []string:
		for _, str := range a {
			if err := s.WriteString(str); err != nil {
				return err
			}
		}

		return nil
	case nestedNode:
		return a.writeTo(s)
	}

	if format.KindOf(v).Valid() {
		return s.writeTyped(v)
	}

	return s.writeReflect(reflect.ValueOf(v))
}

func (s *BufferedStream) writeReflect(rv reflect.Value) error {
	switch rv.Kind() { //nolint: exhaustive
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}

		return s.writeValue(rv.Elem().Interface())

	case reflect.String:
		return s.WriteString(rv.String())

	case reflect.Slice, reflect.Array:
		t := rv.Type()
		if arrays.IsRectangular(t) {
			return fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrRectangularArray, t)
		}

		if k := arrays.LeafKind(t.Elem()); k.Valid() {
			return s.writeTyped(canonicalCopy(rv, k))
		}

		if !arrays.IsContainer(t.Elem().Kind()) && t.Elem().Kind() != reflect.String {
			return fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrUnsupportedKind, t)
		}

		for i := 0; i < rv.Len(); i++ {
			if err := s.writeValue(rv.Index(i).Interface()); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrUnsupportedKind, rv.Type())
	}
}

func (s *BufferedStream) writeTyped(v any) error {
	switch a := v.(type) {
	case []uint8:
		return s.WriteUint8s(a)
	case []int8:
		return s.WriteInt8s(a)
	case []bool:
		return s.WriteBools(a)
	case []format.Char:
		return s.WriteChars(a)
	case []int16:
		return s.WriteInt16s(a)
	case []int32:
		return s.WriteInt32s(a)
	case []int64:
		return s.WriteInt64s(a)
	case []float32:
		return s.WriteFloat32s(a)
	case []float64:
		return s.WriteFloat64s(a)
	default:
		return fmt.Errorf("%w: %w: %T", errs.ErrFormat, errs.ErrUnsupportedKind, v)
	}
}

// ReadArray fills every leaf value of v in depth-first order and returns the number of
// bytes read.
//
// Parameters:
//   - v: a typed slice, a slice of slices at any depth, a []any, a pointer to a
//     one-dimensional Go array or a Nested[T]; leaves must be pre-allocated
//
// Returns:
//   - int64: bytes consumed from the stream
//   - error: errs.ErrShortRead if the stream ended or failed before v was filled,
//     errs.ErrRectangularArray or errs.ErrUnsupportedKind for unsupported shapes
func (s *BufferedStream) ReadArray(v any) (int64, error) {
	switch a := v.(type) {
	case nil:
		return 0, nil
	case nestedNode:
		return a.readFrom(s)
	}

	if format.KindOf(v).Valid() {
		return s.readTyped(v)
	}

	return s.readReflect(reflect.ValueOf(v))
}

func (s *BufferedStream) readReflect(rv reflect.Value) (int64, error) {
	switch rv.Kind() { //nolint: exhaustive
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return 0, nil
		}
		if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Array {
			return s.readReflect(rv.Elem())
		}

		return s.ReadArray(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		t := rv.Type()
		if arrays.IsRectangular(t) {
			return 0, fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrRectangularArray, t)
		}

		if k := arrays.LeafKind(t.Elem()); k.Valid() {
			return s.readLeaf(rv, k)
		}

		if !arrays.IsContainer(t.Elem().Kind()) {
			return 0, fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrUnsupportedKind, t)
		}

		var total int64
		for i := 0; i < rv.Len(); i++ {
			n, err := s.readReflect(rv.Index(i))
			total += n
			if err != nil {
				return total, err
			}
		}

		return total, nil

	default:
		return 0, fmt.Errorf("%w: %w: %s", errs.ErrFormat, errs.ErrUnsupportedKind, rv.Type())
	}
}

// readLeaf fills a one-dimensional slice or addressable array whose element type is
// supported but not necessarily one of the canonical Go types.
func (s *BufferedStream) readLeaf(rv reflect.Value, k format.Kind) (int64, error) {
	if rv.Kind() == reflect.Array {
		if !rv.CanAddr() {
			return 0, fmt.Errorf("%w: cannot fill unaddressable %s", errs.ErrFormat, rv.Type())
		}
		rv = rv.Slice(0, rv.Len())
	}

	canon := reflect.TypeOf(format.MakeSlice(k, 0))
	if rv.Type().Elem() == canon.Elem() {
		return s.readTyped(rv.Convert(canon).Interface())
	}

	tmp := format.MakeSlice(k, rv.Len())
	n, err := s.readTyped(tmp)
	src := reflect.ValueOf(tmp)
	for i := 0; i < rv.Len(); i++ {
		rv.Index(i).Set(src.Index(i).Convert(rv.Type().Elem()))
	}

	return n, err
}

func (s *BufferedStream) readTyped(v any) (int64, error) {
	var got, want int

	switch a := v.(type) {
	case []uint8:
		got, want = s.ReadUint8s(a), len(a)
	case []int8:
		got, want = s.ReadInt8s(a), len(a)
	case []bool:
		got, want = s.ReadBools(a), len(a)
	case []format.Char:
		got, want = s.ReadChars(a), len(a)
	case []int16:
		got, want = s.ReadInt16s(a), len(a)
	case []int32:
		got, want = s.ReadInt32s(a), len(a)
	case []int64:
		got, want = s.ReadInt64s(a), len(a)
	case []float32:
		got, want = s.ReadFloat32s(a), len(a)
	case []float64:
		got, want = s.ReadFloat64s(a), len(a)
	default:
		return 0, fmt.Errorf("%w: %w: %T", errs.ErrFormat, errs.ErrUnsupportedKind, v)
	}

	n := int64(got * format.KindOf(v).Size())
	if got < want {
		if s.err != nil {
			return n, fmt.Errorf("%w: %d of %d elements: %w", errs.ErrShortRead, got, want, s.err)
		}

		return n, fmt.Errorf("%w: %d of %d elements", errs.ErrShortRead, got, want)
	}

	return n, nil
}

// canonicalCopy returns the leaves of rv as the canonical typed slice of kind k,
// sharing memory when the element types already match.
func canonicalCopy(rv reflect.Value, k format.Kind) any {
	canon := reflect.TypeOf(format.MakeSlice(k, 0))
	if rv.Kind() == reflect.Slice && rv.Type().Elem() == canon.Elem() {
		return rv.Convert(canon).Interface()
	}

	out := reflect.ValueOf(format.MakeSlice(k, rv.Len()))
	for i := 0; i < rv.Len(); i++ {
		out.Index(i).Set(rv.Index(i).Convert(canon.Elem()))
	}

	return out.Interface()
}

// Dimensions returns the extent of every nesting level of v, outermost first.
// See arrays.Dimensions for the handling of jagged and nil levels.
func Dimensions(v any) []int {
	return arrays.Dimensions(v)
}
