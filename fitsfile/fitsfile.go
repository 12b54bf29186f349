package fitsfile

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/arloliu/fitskit/ascii"
	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/format"
	"github.com/arloliu/fitskit/internal/collision"
	"github.com/arloliu/fitskit/table"
	"github.com/astrogo/fitsio"
)

// tformCodes maps element kinds to binary table TFORM letters. Int8 has no FITS form.
var tformCodes = map[format.Kind]byte{
	format.KindBool:    'L',
	format.KindUint8:   'B',
	format.KindInt16:   'I',
	format.KindInt32:   'J',
	format.KindInt64:   'K',
	format.KindFloat32: 'E',
	format.KindFloat64: 'D',
	format.KindChar:    'A',
}

var elemTypes = map[format.Kind]reflect.Type{
	format.KindBool:    reflect.TypeFor[bool](),
	format.KindUint8:   reflect.TypeFor[uint8](),
	format.KindInt16:   reflect.TypeFor[int16](),
	format.KindInt32:   reflect.TypeFor[int32](),
	format.KindInt64:   reflect.TypeFor[int64](),
	format.KindFloat32: reflect.TypeFor[float32](),
	format.KindFloat64: reflect.TypeFor[float64](),
}

// TForm returns the binary table TFORM value for a column of kind k and row size rowSize.
//
// Returns errs.ErrUnsupportedKind for Int8 and errs.ErrFormat for an empty row.
func TForm(k format.Kind, rowSize int) (string, error) {
	code, ok := tformCodes[k]
	if !ok {
		return "", fmt.Errorf("%w: %w: %s has no FITS column form", errs.ErrFormat, errs.ErrUnsupportedKind, k)
	}
	if rowSize < 1 {
		return "", fmt.Errorf("%w: row size %d", errs.ErrFormat, rowSize)
	}
	if rowSize == 1 {
		return string(code), nil
	}

	return strconv.Itoa(rowSize) + string(code), nil
}

// ParseTForm splits a TFORM value into its repeat count and element kind.
func ParseTForm(tform string) (format.Kind, int, error) {
	tform = strings.TrimSpace(tform)

	digits := 0
	for digits < len(tform) && tform[digits] >= '0' && tform[digits] <= '9' {
		digits++
	}
	if digits == len(tform) {
		return format.KindInvalid, 0, fmt.Errorf("%w: TFORM %q has no type code", errs.ErrFormat, tform)
	}

	repeat := 1
	if digits > 0 {
		p, err := ascii.NewParser([]byte(tform))
		if err != nil {
			return format.KindInvalid, 0, err
		}
		v, err := p.Int32(digits)
		if err != nil {
			return format.KindInvalid, 0, fmt.Errorf("TFORM %q: %w", tform, err)
		}
		repeat = int(v)
	}

	for k, code := range tformCodes {
		if tform[digits] == code {
			return k, repeat, nil
		}
	}

	return format.KindInvalid, 0, fmt.Errorf("%w: %w: TFORM %q", errs.ErrFormat, errs.ErrUnsupportedKind, tform)
}

// WriteTable writes t to w as a FITS file: an empty primary HDU followed by one BINTABLE
// extension.
//
// Parameters:
//   - w: destination
//   - t: table to export; every column needs a row size of at least 1 and a kind other
//     than Int8
//   - name: EXTNAME of the table HDU
//   - names: TTYPE of every column; missing entries default to COL<n>
//
// Returns:
//   - error: errs.ErrUnsupportedKind for Int8 columns, errs.ErrDuplicateColumn if two
//     names are equal ignoring case, or the first fitsio error
func WriteTable(w io.Writer, t *table.ColumnTable, name string, names []string) (err error) {
	cols := make([]fitsio.Column, t.NCols())
	tracker := collision.NewTracker()
	for i := range cols {
		form, err := TForm(t.Kind(i), t.RowSize(i))
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		name := columnName(names, i)
		if err := tracker.Track(name); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		cols[i] = fitsio.Column{Name: name, Format: form}
	}

	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	primary := fitsio.NewImage(8, nil)
	defer primary.Close()
	if err := f.Write(primary); err != nil {
		return fmt.Errorf("write primary HDU: %w", err)
	}

	tbl, err := fitsio.NewTable(name, cols, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer tbl.Close()

	cells := make([]cell, t.NCols())
	args := make([]any, t.NCols())
	for i := range cells {
		cells[i] = newCell(t.Kind(i), t.RowSize(i))
		args[i] = cells[i].ptr.Interface()
	}

	for row := range t.NRows() {
		for col := range cells {
			v, err := t.Element(row, col)
			if err != nil {
				return err
			}
			cells[col].load(v)
		}
		if err := tbl.Write(args...); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	if err := f.Write(tbl); err != nil {
		return fmt.Errorf("write table HDU: %w", err)
	}

	return nil
}

// ReadTable reads the binary table in HDU hdu of the FITS file in r.
//
// Returns:
//   - *table.ColumnTable: the table, one column per FITS column
//   - []string: the column names
//   - error: errs.ErrFormat if the HDU is not a binary table or uses unsupported forms
func ReadTable(r io.Reader, hdu int) (*table.ColumnTable, []string, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if hdu < 0 || hdu >= len(f.HDUs()) {
		return nil, nil, fmt.Errorf("%w: HDU %d out of range [0, %d)", errs.ErrFormat, hdu, len(f.HDUs()))
	}
	tbl, ok := f.HDU(hdu).(*fitsio.Table)
	if !ok || tbl.Type() != fitsio.BINARY_TBL {
		return nil, nil, fmt.Errorf("%w: HDU %d is not a binary table", errs.ErrFormat, hdu)
	}

	nrow := int(tbl.NumRows())
	fcols := tbl.Cols()
	names := make([]string, len(fcols))
	columns := make([]any, len(fcols))
	rowSizes := make([]int, len(fcols))
	cells := make([]cell, len(fcols))
	args := make([]any, len(fcols))

	for i, c := range fcols {
		k, repeat, err := ParseTForm(c.Format)
		if err != nil {
			return nil, nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		names[i] = c.Name
		columns[i] = format.MakeSlice(k, nrow*repeat)
		rowSizes[i] = repeat
		cells[i] = newCell(k, repeat)
		args[i] = cells[i].ptr.Interface()
	}

	out, err := table.New(columns, rowSizes)
	if err != nil {
		return nil, nil, err
	}

	rows, err := tbl.Read(0, int64(nrow))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for row := 0; rows.Next(); row++ {
		if err := rows.Scan(args...); err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", row, err)
		}
		for col := range cells {
			if err := out.SetElement(row, col, cells[col].store()); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return out, names, nil
}

func columnName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}

	return fmt.Sprintf("COL%d", i+1)
}
