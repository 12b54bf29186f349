package ascii

import (
	"fmt"

	"github.com/arloliu/fitskit/internal/options"
)

const (
	// DefaultTruncationFill is the byte written across a field whose value does not fit.
	DefaultTruncationFill = '*'

	// DefaultSimpleMin is the smallest magnitude written in plain decimal notation.
	DefaultSimpleMin = 1e-3

	// DefaultSimpleMax is the largest magnitude written in plain decimal notation.
	DefaultSimpleMax = 1e6
)

// FormatterOption configures a Formatter.
type FormatterOption = options.Option[*Formatter]

// ParserOption configures a Parser.
type ParserOption = options.Option[*Parser]

// WithTruncateOnOverflow controls whether a value wider than its field is replaced by
// the fill character (true, the default) or allowed to overflow the field as long as
// the buffer has room.
func WithTruncateOnOverflow(enabled bool) FormatterOption {
	return options.NoError(func(f *Formatter) {
		f.truncateOnOverflow = enabled
	})
}

// WithTruncationThrow controls whether a truncated field is reported with
// errs.ErrTruncation. Enabled by default.
func WithTruncationThrow(enabled bool) FormatterOption {
	return options.NoError(func(f *Formatter) {
		f.truncationThrow = enabled
	})
}

// WithTruncationFill sets the byte used to fill a truncated field.
func WithTruncationFill(fill byte) FormatterOption {
	return options.NoError(func(f *Formatter) {
		f.truncationFill = fill
	})
}

// WithAlign controls right-justification: when enabled, values shorter than their field
// are preceded by spaces so they end on the last byte of the field.
func WithAlign(enabled bool) FormatterOption {
	return options.NoError(func(f *Formatter) {
		f.align = enabled
	})
}

// WithSimpleRange sets the magnitudes written in plain decimal notation; values outside
// [lo, hi] use E notation.
//
// Returns an error option if lo is negative or greater than hi.
func WithSimpleRange(lo, hi float64) FormatterOption {
	return options.New(func(f *Formatter) error {
		if lo < 0 || lo > hi {
			return fmt.Errorf("invalid simple range [%g, %g]", lo, hi)
		}
		f.simpleMin, f.simpleMax = lo, hi

		return nil
	})
}

// WithFillFields makes the parser require that the bytes following a value, up to the
// end of its field, are all whitespace.
func WithFillFields(enabled bool) ParserOption {
	return options.NoError(func(p *Parser) {
		p.fillFields = enabled
	})
}
