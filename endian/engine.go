// Package endian provides the byte order engine used by the fitskit codec.
//
// FITS stores every multi-byte value most significant byte first, whatever the host
// architecture. The codec therefore never relies on host order: it encodes through
// the big-endian engine, whose Put/Uint methods are explicit shift sequences.
//
//	engine := endian.GetBigEndianEngine()
//	engine.PutUint32(buf, 0x01020304) // buf = 01 02 03 04
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned engine is
// immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.BigEndian satisfies it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine, the FITS wire order.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
