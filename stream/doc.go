// Package stream provides the typed big-endian codec used for FITS data units.
//
// A BufferedStream wraps an io.Reader, io.Writer or both and transfers the nine element
// kinds of the format package, one value at a time or as whole slices:
//
//	w, _ := stream.NewWriter(file)
//	_ = w.WriteInt32(0x01020304) // 01 02 03 04 on the wire
//	_ = w.WriteFloat64s(samples)
//	_ = w.Flush()
//
// # Wire Format
//
// Every multi-byte value is written most significant byte first through the big-endian
// engine of the endian package, regardless of the host. Floating-point values keep their
// IEEE-754 bit pattern. Logical values are the ASCII bytes 'T' and 'F'; on input the byte
// value 1 is also accepted as true. A Char occupies one byte, its low 8 bits.
//
// # Buffering
//
// Writes are staged in a pooled buffer and handed to the underlying writer in a single
// Write call when the pending bytes reach the buffer size, on Flush, on Seek and on Close.
// Reads go through a read-ahead buffer of the same size; bulk reads move one burst of raw
// bytes at a time and decode it into the destination slice.
//
// # Errors
//
// Scalar reads and all writes return their error. Bulk reads return the number of whole
// elements transferred instead: reaching the end of the stream yields a short count and
// records io.ErrUnexpectedEOF, any other I/O failure yields 0 and records the cause. Err
// reports the recorded error.
//
// # Nested Arrays
//
// ReadArray and WriteArray walk a possibly jagged shape and transfer its leaves in
// depth-first order. Slices of slices, []any and the Nested type are accepted; Go arrays
// of arrays are rejected with errs.ErrRectangularArray.
package stream
