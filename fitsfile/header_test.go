package fitsfile

import (
	"bytes"
	"testing"

	"github.com/arloliu/fitskit/ascii"
	"github.com/arloliu/fitskit/errs"
	"github.com/stretchr/testify/require"
)

type card struct {
	key   string
	value int64
}

// buildHeader lays out fixed-format integer cards followed by END, padded to a block.
func buildHeader(t *testing.T, cards []card) []byte {
	t.Helper()

	n := (len(cards) + 1) * CardSize
	buf := bytes.Repeat([]byte{' '}, (n+BlockSize-1)/BlockSize*BlockSize)

	f, err := ascii.NewFormatter(ascii.WithAlign(true))
	require.NoError(t, err)
	kf, err := ascii.NewFormatter()
	require.NoError(t, err)

	for i, c := range cards {
		off := i * CardSize
		_, err := kf.FormatString(c.key, buf, off, keywordWidth)
		require.NoError(t, err)
		copy(buf[off+keywordWidth:], "= ")
		_, err = f.FormatInt64(c.value, buf, off+valueOffset, valueWidth)
		require.NoError(t, err)
	}
	copy(buf[len(cards)*CardSize:], "END")

	return buf
}

func TestDataOffset(t *testing.T) {
	tests := []struct {
		name  string
		cards int
		want  int
	}{
		{"single card", 0, BlockSize},
		{"one block", 35, BlockSize},
		{"two blocks", 36, 2 * BlockSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := make([]card, tt.cards)
			for i := range cards {
				cards[i] = card{key: "NAXIS", value: int64(i)}
			}

			off, err := DataOffset(buildHeader(t, cards))
			require.NoError(t, err)
			require.Equal(t, tt.want, off)
		})
	}
}

func TestDataOffset_NoEnd(t *testing.T) {
	_, err := DataOffset(bytes.Repeat([]byte{' '}, BlockSize))
	require.ErrorIs(t, err, errs.ErrInvalidHeader)

	_, err = DataOffset(nil)
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestIntKeyword(t *testing.T) {
	header := buildHeader(t, []card{
		{"BITPIX", 8},
		{"NAXIS", 2},
		{"NAXIS1", 23},
		{"NAXIS2", -1000},
	})

	tests := []struct {
		key   string
		want  int64
		found bool
	}{
		{"BITPIX", 8, true},
		{"NAXIS", 2, true},
		{"NAXIS1", 23, true},
		{"NAXIS2", -1000, true},
		{"TFIELDS", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, found, err := IntKeyword(header, tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.found, found)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestIntKeyword_NotInteger(t *testing.T) {
	header := buildHeader(t, []card{{"NAXIS", 0}})
	copy(header[valueOffset:valueOffset+valueWidth], "            'ABC'   ")

	_, found, err := IntKeyword(header, "NAXIS")
	require.True(t, found)
	require.ErrorIs(t, err, errs.ErrFormat)
}
