package fitsfile

import (
	"fmt"
	"strings"

	"github.com/arloliu/fitskit/ascii"
	"github.com/arloliu/fitskit/errs"
)

const (
	// BlockSize is the FITS logical record length. Headers and data units are padded to
	// a multiple of it.
	BlockSize = 2880
	// CardSize is the length of one header card.
	CardSize = 80

	keywordWidth = 8
	valueOffset  = 10
	valueWidth   = 20
)

// DataOffset returns the length of the header at the start of header, padding included,
// which is the offset of the first byte of the HDU's data unit.
//
// Parameters:
//   - header: bytes starting at the first card of an HDU
//
// Returns:
//   - int: header length, a multiple of BlockSize
//   - error: errs.ErrInvalidHeader if no END card is found within the buffer
func DataOffset(header []byte) (int, error) {
	p, err := ascii.NewParser(header)
	if err != nil {
		return 0, err
	}

	for card := 0; card+CardSize <= len(header); card += CardSize {
		p.SetOffset(card)
		if strings.TrimRight(p.String(keywordWidth), " ") == "END" {
			end := card + CardSize

			return (end + BlockSize - 1) / BlockSize * BlockSize, nil
		}
	}

	return 0, fmt.Errorf("%w: no END card in %d bytes", errs.ErrInvalidHeader, len(header))
}

// IntKeyword returns the integer value of keyword key in header.
//
// The value is read from the fixed-format field, columns 11 to 30 of the card.
//
// Returns:
//   - int64: the value
//   - bool: false if the keyword does not occur before the END card
//   - error: errs.ErrFormat if the value field does not hold an integer
func IntKeyword(header []byte, key string) (int64, bool, error) {
	p, err := ascii.NewParser(header)
	if err != nil {
		return 0, false, err
	}

	for card := 0; card+CardSize <= len(header); card += CardSize {
		p.SetOffset(card)
		name := strings.TrimRight(p.String(keywordWidth), " ")
		if name == "END" {
			break
		}
		if name != key {
			continue
		}

		p.SetOffset(card + valueOffset)
		v, err := p.Int64(valueWidth)
		if err != nil {
			return 0, true, fmt.Errorf("keyword %s: %w", key, err)
		}

		return v, true, nil
	}

	return 0, false, nil
}
