package stream

import (
	"fmt"

	"github.com/arloliu/fitskit/internal/options"
)

const (
	// DefaultBufferSize is the number of pending bytes that triggers a flush, and the
	// read-ahead size of readers.
	DefaultBufferSize = 32 * 1024

	minBufferSize = 16
)

type config struct {
	bufferSize      int
	closeUnderlying bool
}

func defaultConfig() *config {
	return &config{
		bufferSize:      DefaultBufferSize,
		closeUnderlying: true,
	}
}

// Option configures a BufferedStream.
type Option = options.Option[*config]

// WithBufferSize sets the flush threshold and read-ahead size in bytes.
//
// Returns an error option if size is smaller than 16 bytes.
func WithBufferSize(size int) Option {
	return options.New(func(c *config) error {
		if size < minBufferSize {
			return fmt.Errorf("buffer size %d is smaller than %d bytes", size, minBufferSize)
		}
		c.bufferSize = size

		return nil
	})
}

// WithCloseUnderlying controls whether Close also closes the underlying stream when it
// implements io.Closer. Enabled by default.
func WithCloseUnderlying(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.closeUnderlying = enabled
	})
}
