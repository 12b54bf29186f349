package ascii

import (
	"math"
	"strings"
	"testing"

	"github.com/arloliu/fitskit/errs"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, s string, opts ...ParserOption) *Parser {
	t.Helper()

	p, err := NewParser([]byte(s), opts...)
	require.NoError(t, err)

	return p
}

func TestParser_Int32_LeadingBlanks(t *testing.T) {
	p := newParser(t, "  42")

	v, err := p.Int32(4)
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
	require.Equal(t, 4, p.Offset())
	require.Equal(t, 4, p.NumberLength())
}

func TestParser_Int32_TrailingGarbage(t *testing.T) {
	t.Run("ignored", func(t *testing.T) {
		p := newParser(t, "4x")

		v, err := p.Int32(2)
		require.NoError(t, err)
		require.Equal(t, int32(4), v)
		require.Equal(t, 1, p.Offset())
		require.Equal(t, 1, p.NumberLength())
	})

	t.Run("fill fields", func(t *testing.T) {
		p := newParser(t, "4x", WithFillFields(true))

		_, err := p.Int32(2)
		require.ErrorIs(t, err, errs.ErrFormat)
		require.Equal(t, 0, p.Offset())
		require.Equal(t, 0, p.NumberLength())
	})

	t.Run("fill fields blanks", func(t *testing.T) {
		p := newParser(t, "17 \t ", WithFillFields(true))

		v, err := p.Int32(5)
		require.NoError(t, err)
		require.Equal(t, int32(17), v)
		require.Equal(t, 5, p.Offset())
	})
}

func TestParser_Int32(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int32
		wantErr bool
	}{
		{name: "signed", in: "-123", want: -123},
		{name: "plus", in: "+9", want: 9},
		{name: "blank", in: "    ", want: 0},
		{name: "max", in: "2147483647", want: math.MaxInt32},
		{name: "min", in: "-2147483648", want: math.MinInt32},
		{name: "overflow", in: "2147483648", wantErr: true},
		{name: "negative overflow", in: "-2147483649", wantErr: true},
		{name: "no digits", in: "abc", wantErr: true},
		{name: "sign only", in: "- ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.in)

			v, err := p.Int32(len(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrFormat)
				require.Equal(t, 0, p.Offset())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestParser_Int64(t *testing.T) {
	p := newParser(t, "-9223372036854775808 9223372036854775807")

	v, err := p.Int64(20)
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), v)

	v, err = p.Int64(20)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), v)

	p.SetBuffer([]byte("9223372036854775808"))
	require.Equal(t, 0, p.Offset())
	_, err = p.Int64(19)
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestParser_Float64(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"integer", "42", 42},
		{"fraction", "3.25", 3.25},
		{"leading point", ".5", 0.5},
		{"trailing point", "7.", 7},
		{"negative", "-0.125", -0.125},
		{"exponent", "1.5E10", 1.5e10},
		{"lower exponent", "2e3", 2000},
		{"fortran exponent", "2.5D-3", 0.0025},
		{"signed exponent", "4e+2", 400},
		{"blank", "     ", 0},
		{"leading blanks", "   8.5", 8.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.in)

			v, err := p.Float64(len(tt.in))
			require.NoError(t, err)
			require.InDelta(t, tt.want, v, 1e-12)
		})
	}
}

func TestParser_Float64_SpecialValues(t *testing.T) {
	p := newParser(t, "NaN")
	v, err := p.Float64(3)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	p = newParser(t, "-infinity")
	v, err = p.Float64(9)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, -1))
	require.Equal(t, 9, p.NumberLength())

	p = newParser(t, "INF  ")
	v, err = p.Float64(5)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))
	require.Equal(t, 3, p.NumberLength())
}

func TestParser_Float64_Denormal(t *testing.T) {
	p := newParser(t, "1E-310")

	v, err := p.Float64(6)
	require.NoError(t, err)
	require.Greater(t, v, 0.0)
	require.InEpsilon(t, 1e-310, v, 1e-6)
}

func TestParser_Float64_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []ParserOption
	}{
		{name: "point only", in: "."},
		{name: "letters", in: "abc"},
		{name: "sign only", in: "-"},
		{name: "trailing garbage", in: "1.5x", opts: []ParserOption{WithFillFields(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.in, tt.opts...)

			_, err := p.Float64(len(tt.in))
			require.ErrorIs(t, err, errs.ErrFormat)
			require.Equal(t, 0, p.Offset())
			require.Equal(t, 0, p.NumberLength())
		})
	}
}

func TestParser_Bool(t *testing.T) {
	p := newParser(t, "T f  F")

	v, err := p.Bool(1)
	require.NoError(t, err)
	require.True(t, v)

	v, err = p.Bool(2)
	require.NoError(t, err)
	require.False(t, v)

	v, err = p.Bool(3)
	require.NoError(t, err)
	require.False(t, v)
	require.Equal(t, 6, p.Offset())

	p.SetBuffer([]byte("  x"))
	_, err = p.Bool(3)
	require.ErrorIs(t, err, errs.ErrFormat)
	require.Equal(t, 0, p.Offset())

	p.SetBuffer([]byte("   "))
	_, err = p.Bool(3)
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestParser_FixedFieldRecord(t *testing.T) {
	// Three fields of widths 5, 8 and 2.
	p := newParser(t, "  123 -1.5E2  T")

	i, err := p.Int32(5)
	require.NoError(t, err)
	require.Equal(t, int32(123), i)

	p.SetOffset(5)
	f, err := p.Float64(8)
	require.NoError(t, err)
	require.InDelta(t, -150.0, f, 1e-12)

	p.SetOffset(13)
	b, err := p.Bool(2)
	require.NoError(t, err)
	require.True(t, b)
}

func TestParser_StringAndSkip(t *testing.T) {
	p := newParser(t, "XTENSION= 'BINTABLE'")

	require.Equal(t, "XTENSION", p.String(8))
	p.Skip(3)
	require.Equal(t, "BINTABLE", p.String(8))
	require.Equal(t, 8, p.NumberLength())

	// Reads past the end are cut short.
	require.Equal(t, "'", p.String(10))
}

func TestParser_Float64_LongDigitRuns(t *testing.T) {
	ones := strings.Repeat("1", 400)
	zeros := strings.Repeat("0", 400)

	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"long fraction", "0." + ones, 1.0 / 9},
		{"long integer", "1" + zeros + "E-400", 1},
		{"leading zeros", "0." + zeros + "25E400", 0.25},
		{"long mixed", "12." + ones, 12 + 1.0/9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.in)

			v, err := p.Float64(len(tt.in))
			require.NoError(t, err)
			require.False(t, math.IsNaN(v))
			require.InEpsilon(t, tt.want, v, 1e-14)
			require.Equal(t, len(tt.in), p.NumberLength())
		})
	}
}
