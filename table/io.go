package table

import (
	"fmt"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
	"github.com/arloliu/fitskit/internal/hash"
	"github.com/arloliu/fitskit/stream"
)

// Write encodes the table row by row.
//
// The output is flushed after every ChunkSize rows. Rows of the last partial chunk may
// remain buffered in out; call out.Flush when the data unit is complete.
//
// Parameters:
//   - out: destination codec
//
// Returns:
//   - int64: bytes written, RowByteSize()*NRows()
//   - error: the first write or flush error
func (t *ColumnTable) Write(out stream.ArrayWriter) (int64, error) {
	b := t.pointers()

	for row := 0; row < t.nrow; row++ {
		for col, k := range t.kinds {
			rs := t.rowSizes[col]
			lo, hi := row*rs, (row+1)*rs
			idx := b.index[col]

			var err error
			switch k {
			case format.KindUint8:
				err = out.WriteUint8s(b.u8[idx][lo:hi])
			case format.KindInt8:
				err = out.WriteInt8s(b.i8[idx][lo:hi])
			case format.KindBool:
				err = out.WriteBools(b.bools[idx][lo:hi])
			case format.KindChar:
				err = out.WriteChars(b.chars[idx][lo:hi])
			case format.KindInt16:
				err = out.WriteInt16s(b.i16[idx][lo:hi])
			case format.KindInt32:
				err = out.WriteInt32s(b.i32[idx][lo:hi])
			case format.KindInt64:
				err = out.WriteInt64s(b.i64[idx][lo:hi])
			case format.KindFloat32:
				err = out.WriteFloat32s(b.f32[idx][lo:hi])
			case format.KindFloat64:
				err = out.WriteFloat64s(b.f64[idx][lo:hi])
			}
			if err != nil {
				return int64(row) * int64(t.rowByteSize), fmt.Errorf("write row %d column %d: %w", row, col, err)
			}
		}

		if (row+1)%t.chunkSize == 0 {
			if err := out.Flush(); err != nil {
				return int64(row+1) * int64(t.rowByteSize), err
			}
		}
	}

	return t.Size(), nil
}

// Read fills the table row by row from in, keeping its shape.
//
// Parameters:
//   - in: source codec
//
// Returns:
//   - int64: bytes read, RowByteSize()*NRows() on success
//   - error: errs.ErrShortRead, wrapping the reader's recorded error, if the input
//     ended or failed before the table was filled
func (t *ColumnTable) Read(in stream.ArrayReader) (int64, error) {
	b := t.pointers()

	var total int64
	for row := 0; row < t.nrow; row++ {
		for col, k := range t.kinds {
			rs := t.rowSizes[col]
			lo, hi := row*rs, (row+1)*rs
			idx := b.index[col]

			var got int
			switch k {
			case format.KindUint8:
				got = in.ReadUint8s(b.u8[idx][lo:hi])
			case format.KindInt8:
				got = in.ReadInt8s(b.i8[idx][lo:hi])
			case format.KindBool:
				got = in.ReadBools(b.bools[idx][lo:hi])
			case format.KindChar:
				got = in.ReadChars(b.chars[idx][lo:hi])
			case format.KindInt16:
				got = in.ReadInt16s(b.i16[idx][lo:hi])
			case format.KindInt32:
				got = in.ReadInt32s(b.i32[idx][lo:hi])
			case format.KindInt64:
				got = in.ReadInt64s(b.i64[idx][lo:hi])
			case format.KindFloat32:
				got = in.ReadFloat32s(b.f32[idx][lo:hi])
			case format.KindFloat64:
				got = in.ReadFloat64s(b.f64[idx][lo:hi])
			}
			total += int64(got * k.Size())

			if got < rs {
				if cause := in.Err(); cause != nil {
					return total, fmt.Errorf("%w: row %d column %d: %w", errs.ErrShortRead, row, col, cause)
				}

				return total, fmt.Errorf("%w: row %d column %d", errs.ErrShortRead, row, col)
			}
		}
	}

	return total, nil
}

// Digest returns the xxHash64 of the table's wire image. Two tables with the same
// kinds, row sizes and values have the same digest.
func (t *ColumnTable) Digest() (uint64, error) {
	d := hash.New()

	s, err := stream.NewWriter(d, stream.WithCloseUnderlying(false))
	if err != nil {
		return 0, err
	}
	defer s.Close()

	if _, err := t.Write(s); err != nil {
		return 0, err
	}
	if err := s.Flush(); err != nil {
		return 0, err
	}

	return d.Sum64(), nil
}
