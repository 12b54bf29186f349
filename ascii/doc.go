// Package ascii formats and parses the fixed-width ASCII fields of FITS header cards
// and ASCII tables.
//
// Both types work on a caller-owned byte buffer with offset and width arguments, and
// neither allocates while converting numbers.
//
//	f, _ := ascii.NewFormatter(ascii.WithAlign(true))
//	card := make([]byte, 80)
//	next, err := f.FormatInt32(1024, card, 10, 20) // right-justified in bytes 10..29
//
//	p, _ := ascii.NewParser(card)
//	p.SetOffset(10)
//	naxis, err := p.Int32(20)
//
// # Truncation
//
// A number that does not fit in its field is never written partially: the whole field is
// filled with the truncation fill byte ('*' by default) and errs.ErrTruncation is
// returned, unless truncation errors are disabled. With WithTruncateOnOverflow(false) a
// wide value is allowed to run past its field while the buffer has room.
//
// # Real Numbers
//
// Reals are converted without strconv: the magnitude is scaled by a power of ten so
// that its integer part carries 17 (float64) or 9 (float32) significant digits, that
// integer is rebuilt from the IEEE-754 fields and printed, and the decimal point or an
// E exponent is placed afterwards. Values inside the simple range [1e-3, 1e6] are
// written in plain notation; the last printed digit is rounded.
//
// The parser accepts the Fortran exponent markers d and D as well as e and E, and the
// words NaN, Infinity and Inf in any case.
package ascii
