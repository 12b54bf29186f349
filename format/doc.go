// Package format defines the closed set of element kinds handled by fitskit and
// their fixed wire widths.
//
// The size table is built once at package initialization and never changes; there is
// no runtime registration of new kinds. Every other package dispatches on Kind
// instead of inspecting values element by element.
//
//	k := format.KindOf([]int32{1, 2, 3}) // format.KindInt32
//	w := k.Size()                        // 4
package format
