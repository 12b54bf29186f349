// Package compress provides the compression layer used to store and ship encoded FITS
// data units.
//
// # Overview
//
// Two forms are offered for each algorithm:
//
//   - Block codecs (Codec) compress a complete byte slice in one call. The root package
//     uses them for table snapshots.
//   - Streaming transports (NewWriter, NewReader) wrap an io.Writer or io.Reader and sit
//     underneath a stream.BufferedStream, so a table can be written through them row by
//     row without holding the whole data unit in memory.
//
// Supported algorithms:
//   - None: pass-through
//   - Zstd: best ratio, moderate speed
//   - S2: balanced
//   - LZ4: fastest decompression
//
// # Block Codecs
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	packed, _ := codec.Compress(raw)
//	raw, err := codec.Decompress(packed)
//
// Codecs returned by GetCodec are shared and safe for concurrent use. Block formats are
// not interchangeable with the streaming formats of the same algorithm.
//
// # Streaming
//
//	zw, _ := compress.NewWriter(file, format.CompressionS2)
//	s, _ := stream.NewWriter(zw)
//	_, err := tbl.Write(s)
//	err = s.Close() // flushes and closes zw, finishing the S2 stream
//
// # Build Tags
//
// Zstd defaults to the pure-Go klauspost/compress implementation. Building with
// -tags gozstd and cgo enabled uses the libzstd binding from valyala/gozstd for block
// compression instead.
package compress
