package main

import (
	"io"

	"github.com/snksoft/crc"
)

var crcTable = crc.NewTable(crc.CRC32)

// crcWriter passes writes through to w and keeps the CRC-32 of the bytes written.
type crcWriter struct {
	w   io.Writer
	crc uint64
}

func newCRCWriter(w io.Writer) *crcWriter {
	return &crcWriter{w: w, crc: crcTable.InitCrc()}
}

func (c *crcWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.crc = crcTable.UpdateCrc(c.crc, p[:n])

	return n, err
}

// Sum32 returns the checksum of everything written so far.
func (c *crcWriter) Sum32() uint32 {
	return crcTable.CRC32(c.crc)
}
