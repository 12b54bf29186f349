package ascii

import (
	"fmt"
	"math"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/internal/options"
)

const (
	// Below this decimal exponent the scaling is split to limit underflow to denormals.
	denormCutoff = -300

	// Digits are accumulated into the mantissa while it stays below this bound.
	mantissaLimit uint64 = 1e18
)

// Parser reads values from fixed-width ASCII fields of a byte buffer.
//
// The parser keeps a cursor into the buffer. Each call parses one field of the given
// width starting at the cursor and advances the cursor past the bytes it consumed;
// NumberLength reports that count. Leading whitespace is skipped. Unless fill fields are
// enabled, parsing stops at the first byte that cannot continue the value and the rest
// of the field is left unread.
//
// On error the cursor is restored to where the call started and NumberLength is 0.
// A Parser is not safe for concurrent use.
type Parser struct {
	buf          []byte
	off          int
	numberLength int
	foundSign    bool
	fillFields   bool
}

// NewParser creates a parser positioned at the start of buf.
//
// Parameters:
//   - buf: the bytes to parse; the parser does not copy them
//   - opts: WithFillFields
//
// Returns:
//   - *Parser: the parser
//   - error: an invalid option
func NewParser(buf []byte, opts ...ParserOption) (*Parser, error) {
	p := &Parser{buf: buf}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// Buffer returns the buffer being parsed.
func (p *Parser) Buffer() []byte {
	return p.buf
}

// SetBuffer replaces the buffer and moves the cursor to its start.
func (p *Parser) SetBuffer(buf []byte) {
	p.buf = buf
	p.off = 0
	p.numberLength = 0
}

// Offset returns the cursor position.
func (p *Parser) Offset() int {
	return p.off
}

// SetOffset moves the cursor.
func (p *Parser) SetOffset(off int) {
	p.off = off
}

// NumberLength returns the number of bytes consumed by the last successful call.
func (p *Parser) NumberLength() int {
	return p.numberLength
}

// FillFields reports whether values must be followed by blanks up to the field end.
func (p *Parser) FillFields() bool {
	return p.fillFields
}

// SetFillFields changes the trailing-blank check, see WithFillFields.
func (p *Parser) SetFillFields(enabled bool) {
	p.fillFields = enabled
}

// Skip advances the cursor by n bytes.
func (p *Parser) Skip(n int) {
	p.off += n
}

// String returns the next n bytes unchanged, fewer if the buffer ends first.
func (p *Parser) String(n int) string {
	n = p.clamp(n)
	s := string(p.buf[p.off : p.off+n])
	p.off += n
	p.numberLength = n

	return s
}

// Float64 parses a real value from a field of n bytes.
//
// Accepted forms are an optional sign followed by NaN, Infinity or Inf in any case, or
// by digits with an optional fraction and an optional exponent introduced by e, E, d or
// D. A field of blanks parses as 0.
//
// Parameters:
//   - n: field width in bytes
//
// Returns:
//   - float64: the parsed value
//   - error: errs.ErrFormat if no digits were found, or if fill fields are enabled and
//     non-blank bytes follow the value
func (p *Parser) Float64(n int) (float64, error) {
	start := p.off
	n = p.clamp(n)

	n -= p.skipWhite(n)
	if n == 0 {
		p.numberLength = p.off - start
		return 0, nil
	}

	sign := p.checkSign()
	if p.foundSign {
		n--
	}

	var number float64
	switch {
	case p.matchFold(n, "nan"):
		number = math.NaN()
		p.off += 3
		n -= 3
	case p.matchFold(n, "infinity"):
		number = math.Inf(1)
		p.off += 8
		n -= 8
	case p.matchFold(n, "inf"):
		number = math.Inf(1)
		p.off += 3
		n -= 3
	default:
		var mant uint64
		var scale int
		digits := p.significantDigits(n, &mant, &scale, false)
		n -= digits
		found := digits > 0

		if n > 0 && p.buf[p.off] == '.' {
			p.off++
			n--
			fdigits := p.significantDigits(n, &mant, &scale, true)
			n -= fdigits
			found = found || fdigits > 0
		}

		if !found {
			return 0, p.fail(start, "invalid real field")
		}

		if n > 0 && isExponentMarker(p.buf[p.off]) {
			p.off++
			n--
			if n > 0 {
				esign := p.checkSign()
				if p.foundSign {
					n--
				}
				emant, edigits := p.bareInteger(n)
				n -= edigits
				scale += int(emant) * int(esign)
			}
		}

		number = scaleDecimal(mant, scale)
	}

	if err := p.checkTrailing(start, n); err != nil {
		return 0, err
	}
	p.numberLength = p.off - start

	return sign * number, nil
}

// Float32 parses a real value and converts it to single precision. See Float64.
func (p *Parser) Float32(n int) (float32, error) {
	v, err := p.Float64(n)
	return float32(v), err
}

// Int32 parses a decimal integer from a field of n bytes. A field of blanks parses as 0.
//
// Returns errs.ErrFormat if no digits were found, if the value overflows int32, or if
// fill fields are enabled and non-blank bytes follow the value.
func (p *Parser) Int32(n int) (int32, error) {
	v, err := p.integer(n, math.MinInt32)
	return int32(v), err
}

// Int64 parses a decimal integer from a field of n bytes. See Int32.
func (p *Parser) Int64(n int) (int64, error) {
	return p.integer(n, math.MinInt64)
}

// Bool parses a logical value: the first non-blank byte must be T, t, F or f.
func (p *Parser) Bool(n int) (bool, error) {
	start := p.off
	n = p.clamp(n)

	n -= p.skipWhite(n)
	if n == 0 {
		return false, p.fail(start, "blank boolean field")
	}

	var v bool
	switch p.buf[p.off] {
	case 'T', 't':
		v = true
	case 'F', 'f':
		v = false
	default:
		return false, p.fail(start, "invalid boolean value")
	}
	p.off++
	n--

	if err := p.checkTrailing(start, n); err != nil {
		return false, err
	}
	p.numberLength = p.off - start

	return v, nil
}

// integer accumulates digits as a negative number so that lo itself can be parsed.
func (p *Parser) integer(n int, lo int64) (int64, error) {
	start := p.off
	n = p.clamp(n)

	n -= p.skipWhite(n)
	if n == 0 {
		p.numberLength = p.off - start
		return 0, nil
	}

	sign := p.checkSign()
	if p.foundSign {
		n--
	}

	var acc int64
	digits := 0
	for n > 0 && isDigit(p.buf[p.off]) {
		d := int64(p.buf[p.off] - '0')
		if acc < (lo+d)/10 {
			return 0, p.fail(start, "integer overflow")
		}
		acc = acc*10 - d
		p.off++
		n--
		digits++
	}

	if digits == 0 {
		return 0, p.fail(start, "invalid integer")
	}

	if sign > 0 {
		if acc == lo {
			return 0, p.fail(start, "integer overflow")
		}
		acc = -acc
	}

	if err := p.checkTrailing(start, n); err != nil {
		return 0, err
	}
	p.numberLength = p.off - start

	return acc, nil
}

// significantDigits reads a run of digits into mant while it can hold them exactly and
// returns the number of digits consumed. Fraction digits kept in mant lower scale by one;
// integer digits past the limit raise it by one and fraction digits past it are dropped.
func (p *Parser) significantDigits(n int, mant *uint64, scale *int, fraction bool) int {
	digits := 0
	for n > 0 && isDigit(p.buf[p.off]) {
		switch {
		case *mant < mantissaLimit:
			*mant = *mant*10 + uint64(p.buf[p.off]-'0')
			if fraction {
				*scale--
			}
		case !fraction:
			*scale++
		}
		p.off++
		n--
		digits++
	}

	return digits
}

// scaleDecimal returns mant*10^exp.
func scaleDecimal(mant uint64, exp int) float64 {
	v := float64(mant)
	switch {
	case mant == 0:
		return 0
	case exp >= 0:
		return v * math.Pow10(exp)
	case exp > denormCutoff:
		return v / math.Pow10(-exp)
	default:
		return math.Pow10(denormCutoff) * (v * math.Pow10(exp-denormCutoff))
	}
}

// bareInteger reads unsigned digits into a float and returns the digit count.
func (p *Parser) bareInteger(n int) (float64, int) {
	var number float64
	digits := 0
	for n > 0 && isDigit(p.buf[p.off]) {
		number = number*10 + float64(p.buf[p.off]-'0')
		p.off++
		n--
		digits++
	}

	return number, digits
}

// checkSign consumes an optional sign and returns its value.
func (p *Parser) checkSign() float64 {
	p.foundSign = false
	if p.off >= len(p.buf) {
		return 1
	}

	switch p.buf[p.off] {
	case '+':
		p.foundSign = true
		p.off++

		return 1
	case '-':
		p.foundSign = true
		p.off++

		return -1
	default:
		return 1
	}
}

// skipWhite advances over at most n whitespace bytes and returns how many it skipped.
func (p *Parser) skipWhite(n int) int {
	i := 0
	for i < n && isWhite(p.buf[p.off]) {
		p.off++
		i++
	}

	return i
}

// checkTrailing enforces blank padding of the remaining n bytes when fill fields are on.
func (p *Parser) checkTrailing(start, n int) error {
	if !p.fillFields || n <= 0 {
		return nil
	}

	for i := 0; i < n; i++ {
		if !isWhite(p.buf[p.off+i]) {
			return p.fail(start, "non-blanks following value")
		}
	}
	p.off += n

	return nil
}

// matchFold reports whether the next bytes spell word, ignoring ASCII case.
// word must be lower case.
func (p *Parser) matchFold(n int, word string) bool {
	if n < len(word) {
		return false
	}
	for i := 0; i < len(word); i++ {
		if p.buf[p.off+i]|0x20 != word[i] {
			return false
		}
	}

	return true
}

// clamp limits a field width to the bytes left in the buffer.
func (p *Parser) clamp(n int) int {
	return max(min(n, len(p.buf)-p.off), 0)
}

func (p *Parser) fail(start int, msg string) error {
	p.off = start
	p.numberLength = 0

	return fmt.Errorf("%w: %s at offset %d", errs.ErrFormat, msg, start)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWhite(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isExponentMarker(b byte) bool {
	return b == 'e' || b == 'E' || b == 'd' || b == 'D'
}
