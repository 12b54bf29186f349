package ascii

import (
	"fmt"
	"math"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/internal/options"
)

const (
	minInt32Text = "-2147483648"
	minInt64Text = "-9223372036854775808"

	// Real values are scaled so that the integer mantissa carries about this many digits.
	float64ShiftBase = 17
	float32ShiftBase = 8

	// Scaling by more than this power of ten is split in two multiplications.
	shiftLimit = 300

	float64MantissaBits = 52
	float64ExponentBias = 1023

	// Subnormal values are scaled into the normal range by 10^subnormalShift first.
	smallestNormal  = 0x1p-1022
	subnormalShift  = 16
	subnormalFactor = 1e16
)

// Formatter writes numbers, logical values and strings into fixed-width ASCII fields of
// a caller-owned buffer without allocating.
//
// Every Format method takes the buffer, the offset of the field and its width, and
// returns the offset following the bytes written. When a value does not fit, the field
// is filled with the truncation fill byte and, if truncation errors are enabled, the
// returned error wraps errs.ErrTruncation.
//
// A Formatter keeps scratch state and is not safe for concurrent use.
type Formatter struct {
	truncateOnOverflow bool
	truncationThrow    bool
	truncationFill     byte
	align              bool
	simpleMin          float64
	simpleMax          float64

	digits    [24]byte
	expDigits [8]byte
}

// NewFormatter creates a formatter.
//
// Defaults: truncate on overflow, report truncation, fill with '*', no alignment,
// plain decimal notation for magnitudes in [1e-3, 1e6].
//
// Parameters:
//   - opts: WithTruncateOnOverflow, WithTruncationThrow, WithTruncationFill, WithAlign,
//     WithSimpleRange
//
// Returns:
//   - *Formatter: the configured formatter
//   - error: an invalid option
func NewFormatter(opts ...FormatterOption) (*Formatter, error) {
	f := &Formatter{
		truncateOnOverflow: true,
		truncationThrow:    true,
		truncationFill:     DefaultTruncationFill,
		simpleMin:          DefaultSimpleMin,
		simpleMax:          DefaultSimpleMax,
	}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// SetTruncateOnOverflow changes the overflow policy, see WithTruncateOnOverflow.
func (f *Formatter) SetTruncateOnOverflow(enabled bool) {
	f.truncateOnOverflow = enabled
}

// SetTruncationThrow changes whether truncation is reported as an error.
func (f *Formatter) SetTruncationThrow(enabled bool) {
	f.truncationThrow = enabled
}

// SetTruncationFill changes the byte written across truncated fields.
func (f *Formatter) SetTruncationFill(fill byte) {
	f.truncationFill = fill
}

// SetAlign changes right-justification of short values.
func (f *Formatter) SetAlign(enabled bool) {
	f.align = enabled
}

// SetSimpleRange sets the magnitudes written in plain decimal notation.
func (f *Formatter) SetSimpleRange(lo, hi float64) error {
	return options.Apply(f, WithSimpleRange(lo, hi))
}

// TruncateOnOverflow reports whether values wider than their field are replaced by the
// fill byte.
func (f *Formatter) TruncateOnOverflow() bool {
	return f.truncateOnOverflow
}

// TruncationThrow reports whether truncated fields return errs.ErrTruncation.
func (f *Formatter) TruncationThrow() bool {
	return f.truncationThrow
}

// TruncationFill returns the byte written across truncated fields.
func (f *Formatter) TruncationFill() byte {
	return f.truncationFill
}

// Align reports whether short values are right-justified.
func (f *Formatter) Align() bool {
	return f.align
}

// FormatBool writes 'T' or 'F'. With alignment the byte is the last of the field.
func (f *Formatter) FormatBool(v bool, buf []byte, off, n int) (int, error) {
	n = fieldWidth(buf, off, n)
	if n < 1 {
		return f.truncate(buf, off, n)
	}
	if f.align && n > 1 {
		off = alignFill(buf, off, n-1)
	}

	if v {
		buf[off] = 'T'
	} else {
		buf[off] = 'F'
	}

	return off + 1, nil
}

// FormatString copies s into the field.
//
// A string longer than the field is cut to the field width when truncation on overflow
// is enabled, or when the buffer has no room for it; the cut is reported with
// errs.ErrTruncation if truncation errors are enabled.
func (f *Formatter) FormatString(s string, buf []byte, off, n int) (int, error) {
	slen := len(s)
	room := len(buf) - off

	truncated := false
	if (f.truncateOnOverflow && slen > n) || slen > room {
		slen = max(min(n, room), 0)
		truncated = true
	}

	if f.align && slen < n {
		off = alignFill(buf, off, min(n, room)-slen)
	}
	off += copy(buf[off:], s[:slen])

	if truncated && f.truncationThrow {
		return off, fmt.Errorf("%w: %d byte string in %d byte field", errs.ErrTruncation, len(s), n)
	}

	return off, nil
}

// FormatInt32 writes v in decimal.
//
// Parameters:
//   - v: the value
//   - buf: destination buffer
//   - off: offset of the field in buf
//   - n: field width in bytes
//
// Returns:
//   - int: offset following the written bytes
//   - error: errs.ErrTruncation if v needs more than n bytes and truncation errors are on
func (f *Formatter) FormatInt32(v int32, buf []byte, off, n int) (int, error) {
	if v == math.MinInt32 {
		return f.formatMinInt(minInt32Text, buf, off, n)
	}
	if v < 0 {
		return f.formatInt(true, uint64(-v), buf, off, n)
	}

	return f.formatInt(false, uint64(v), buf, off, n)
}

// FormatInt64 writes v in decimal. See FormatInt32.
func (f *Formatter) FormatInt64(v int64, buf []byte, off, n int) (int, error) {
	if v == math.MinInt64 {
		return f.formatMinInt(minInt64Text, buf, off, n)
	}
	if v < 0 {
		return f.formatInt(true, uint64(-v), buf, off, n)
	}

	return f.formatInt(false, uint64(v), buf, off, n)
}

// formatMinInt handles the one value whose magnitude has no positive counterpart.
func (f *Formatter) formatMinInt(text string, buf []byte, off, n int) (int, error) {
	if n >= len(text) || (!f.truncateOnOverflow && len(buf)-off >= len(text)) {
		return f.FormatString(text, buf, off, n)
	}

	return f.truncate(buf, off, n)
}

func (f *Formatter) formatInt(neg bool, mag uint64, buf []byte, off, n int) (int, error) {
	ndig := 1
	for dmax := uint64(10); ndig < 20 && mag >= dmax; dmax *= 10 {
		ndig++
	}
	if neg {
		ndig++
	}

	if (f.truncateOnOverflow && ndig > n) || ndig > len(buf)-off {
		return f.truncate(buf, off, n)
	}
	n = fieldWidth(buf, off, n)
	if f.align && ndig < n {
		off = alignFill(buf, off, n-ndig)
	}

	end := off + ndig
	i := end
	for {
		i--
		buf[i] = byte('0' + mag%10)
		mag /= 10
		if mag == 0 {
			break
		}
	}
	if neg {
		buf[i-1] = '-'
	}

	return end, nil
}

// FormatFloat64 writes v with up to 17 significant digits.
//
// Zero, NaN and the infinities are written as "0.0", "NaN", "Infinity" and "-Infinity".
// Magnitudes inside the simple range are written in plain decimal notation with as many
// fraction digits as fit in the field, rounded on the last digit; others are written
// as a mantissa followed by 'E' and the decimal exponent.
//
// Returns:
//   - int: offset following the written bytes
//   - error: errs.ErrTruncation if not even the integer part fits and truncation errors are on
func (f *Formatter) FormatFloat64(v float64, buf []byte, off, n int) (int, error) {
	return f.formatReal(v, float64ShiftBase, buf, off, n)
}

// FormatFloat32 writes v with up to 9 significant digits. See FormatFloat64.
func (f *Formatter) FormatFloat32(v float32, buf []byte, off, n int) (int, error) {
	return f.formatReal(float64(v), float32ShiftBase, buf, off, n)
}

func (f *Formatter) formatReal(v float64, shiftBase int, buf []byte, off, n int) (int, error) {
	switch {
	case v == 0:
		return f.FormatString("0.0", buf, off, n)
	case math.IsNaN(v):
		return f.FormatString("NaN", buf, off, n)
	case math.IsInf(v, 1):
		return f.FormatString("Infinity", buf, off, n)
	case math.IsInf(v, -1):
		return f.FormatString("-Infinity", buf, off, n)
	}

	pos := math.Abs(v)
	norm, bias := pos, 0
	if pos < smallestNormal {
		norm, bias = pos*subnormalFactor, subnormalShift
	}
	power := int(math.Log10(norm)) - bias
	shift := shiftBase - power

	lmant := formatUint(f.digits[:], scaledMantissa(norm, shift-bias))
	for lmant > 1 && f.digits[lmant-1] == '0' {
		lmant--
		shift--
	}

	return f.combineReal(v, f.digits[:lmant], shift, buf, off, n)
}

// scaledMantissa returns the integer part of pos*10^shift, rebuilt from the IEEE-754
// exponent and fraction fields of the scaled value.
func scaledMantissa(pos float64, shift int) uint64 {
	var scaled float64
	if shift > shiftLimit {
		scaled = pos * math.Pow10(shiftLimit) * math.Pow10(shift-shiftLimit)
	} else {
		scaled = pos * math.Pow10(shift)
	}

	bits := math.Float64bits(scaled)
	exp := int((bits>>float64MantissaBits)&0x7FF) - float64ExponentBias
	mant := bits & (1<<float64MantissaBits - 1)
	if exp > -float64ExponentBias {
		mant |= 1 << float64MantissaBits
	} else {
		exp++
	}

	switch {
	case exp > float64MantissaBits:
		mant <<= uint(exp - float64MantissaBits)
	case exp < float64MantissaBits:
		mant >>= uint(float64MantissaBits - exp)
	}

	return mant
}

// combineReal lays out the significant digits mant, which represent |v|*10^shift,
// as a decimal or E-notation field.
func (f *Formatter) combineReal(v float64, mant []byte, shift int, buf []byte, off, n int) (int, error) {
	pos := math.Abs(v)
	lmant := len(mant)
	simple := pos >= f.simpleMin && pos <= f.simpleMax
	exp := lmant - shift - 1

	var lexp, minSize, maxSize int
	switch {
	case !simple:
		lexp = formatExponent(f.expDigits[:], exp)
		minSize = lexp + 2
		maxSize = lexp + lmant + 2

	case exp >= 0:
		minSize = exp + 1
		// 99.9 rounds to 100 and needs one more byte.
		i := 0
		for i < lmant && i <= exp && mant[i] == '9' {
			i++
		}
		if i > exp && i < lmant && mant[i] >= '5' {
			minSize++
		}
		maxSize = lmant + 1
		if maxSize <= minSize {
			maxSize = minSize + 1
		}

	default:
		minSize = 2
		maxSize = 1 - exp + lmant
	}

	neg := v < 0
	if neg {
		minSize++
		maxSize++
	}

	if (f.truncateOnOverflow && minSize > n) || minSize > len(buf)-off {
		return f.truncate(buf, off, n)
	}
	n = fieldWidth(buf, off, n)
	if f.align && maxSize < n {
		off = alignFill(buf, off, n-maxSize)
		n = maxSize
	}

	start := off
	if neg {
		buf[off] = '-'
		off++
		n--
	}

	if simple {
		end, _ := mantissa(mant, exp, true, buf, off, n)
		return end, nil
	}

	end, carried := mantissa(mant, 0, false, buf, off, n-lexp-1)
	if carried {
		exp++
		lexp = formatExponent(f.expDigits[:], exp)
	}
	if end+1+lexp > len(buf) {
		return f.truncate(buf, start, n)
	}

	buf[end] = 'E'
	end++
	copy(buf[end:], f.expDigits[:lexp])

	return end + lexp, nil
}

// mantissa writes the digits with the decimal point placed after digit exp, as many
// fraction digits as n allows, and rounds on the first digit left out.
//
// It reports whether rounding carried into a new leading digit; in E notation the
// caller must then increment the exponent.
func mantissa(mant []byte, exp int, simple bool, buf []byte, off, n int) (int, bool) {
	off0 := off
	pos := 0
	lmant := len(mant)

	if exp < 0 {
		buf[off] = '0'
		off++
		n--
		if n > 0 {
			buf[off] = '.'
			off++
			n--
		}
		for cexp := exp; cexp < -1 && n > 0; cexp++ {
			buf[off] = '0'
			off++
			n--
		}
	} else {
		for exp >= 0 && pos < lmant {
			buf[off] = mant[pos]
			off++
			pos++
			n--
			exp--
		}
		for ; exp >= 0; exp-- {
			buf[off] = '0'
			off++
			n--
		}
		if n > 0 {
			buf[off] = '.'
			off++
			n--
		}
	}

	for n > 0 && pos < lmant {
		buf[off] = mant[pos]
		off++
		pos++
		n--
	}

	if pos >= lmant || mant[pos] < '5' {
		return off, false
	}

	i := off - 1
	for ; i >= off0; i-- {
		c := buf[i]
		if c == '.' || c == '-' {
			continue
		}
		if c == '9' {
			buf[i] = '0'
			continue
		}
		buf[i]++

		break
	}
	if i >= off0 {
		return off, false
	}

	// Every digit was a nine.
	buf[off0] = '1'
	if !simple {
		return off, true
	}

	for j := off0 + 1; j < off; j++ {
		if buf[j] == '.' {
			buf[j] = '0'
			if j+1 < off {
				buf[j+1] = '.'
			}

			return off, true
		}
	}
	if off < len(buf) {
		buf[off] = '0'
		off++
	}

	return off, true
}

// truncate fills the field with the fill byte.
func (f *Formatter) truncate(buf []byte, off, n int) (int, error) {
	end := off + fieldWidth(buf, off, n)
	for i := off; i < end; i++ {
		buf[i] = f.truncationFill
	}

	if f.truncationThrow {
		return end, fmt.Errorf("%w: value does not fit in %d bytes", errs.ErrTruncation, n)
	}

	return end, nil
}

// fieldWidth limits a field width to the bytes left in buf.
func fieldWidth(buf []byte, off, n int) int {
	return max(min(n, len(buf)-off), 0)
}

// alignFill writes n spaces at off and returns the offset after them.
func alignFill(buf []byte, off, n int) int {
	for i := 0; i < n; i++ {
		buf[off+i] = ' '
	}

	return off + max(n, 0)
}

// formatUint writes the decimal digits of v at the start of dst and returns their count.
func formatUint(dst []byte, v uint64) int {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}

	return copy(dst, tmp[i:])
}

// formatExponent writes the signed decimal form of v at the start of dst.
func formatExponent(dst []byte, v int) int {
	if v < 0 {
		dst[0] = '-'
		return 1 + formatUint(dst[1:], uint64(-v))
	}

	return formatUint(dst, uint64(v))
}
