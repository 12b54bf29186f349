package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/fitskit/endian"
	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/internal/options"
	"github.com/arloliu/fitskit/internal/pool"
)

var errNotReadable = errors.New("stream opened without a reader")
var errNotWritable = errors.New("stream opened without a writer")

// BufferedStream is the buffered big-endian implementation of ArrayDataIO.
//
// Writes are encoded into a pooled burst buffer and handed to the underlying writer
// in one call once the buffered bytes reach the configured size, or on Flush. Reads go
// through a read-ahead buffer; a bulk read pulls the raw bytes of the whole burst and
// then decodes them into the destination slice.
//
// A BufferedStream is not safe for concurrent use.
type BufferedStream struct {
	under   any
	r       *bufio.Reader
	w       io.Writer
	engine  endian.EndianEngine
	pending *pool.ByteBuffer
	scratch []byte
	cfg     *config
	pos     int64
	err     error
	closed  bool
}

var _ ArrayDataIO = (*BufferedStream)(nil)

// NewReader creates a stream that decodes values from r.
//
// Parameters:
//   - r: underlying byte stream; used for Seek when it implements io.Seeker
//   - opts: WithBufferSize, WithCloseUnderlying
//
// Returns:
//   - *BufferedStream: the read-side stream
//   - error: an invalid option
func NewReader(r io.Reader, opts ...Option) (*BufferedStream, error) {
	return newStream(r, r, nil, opts)
}

// NewWriter creates a stream that encodes values into w.
//
// Parameters:
//   - w: underlying byte stream; used for Seek when it implements io.Seeker
//   - opts: WithBufferSize, WithCloseUnderlying
//
// Returns:
//   - *BufferedStream: the write-side stream
//   - error: an invalid option
func NewWriter(w io.Writer, opts ...Option) (*BufferedStream, error) {
	return newStream(w, nil, w, opts)
}

// New creates a stream that both reads from and writes to rw.
// Pending writes are flushed before every read and every seek.
func New(rw io.ReadWriter, opts ...Option) (*BufferedStream, error) {
	return newStream(rw, rw, rw, opts)
}

func newStream(under any, r io.Reader, w io.Writer, opts []Option) (*BufferedStream, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	s := &BufferedStream{
		under:  under,
		w:      w,
		engine: endian.GetBigEndianEngine(),
		cfg:    cfg,
	}
	if r != nil {
		s.r = bufio.NewReaderSize(r, cfg.bufferSize)
	}
	if w != nil {
		s.pending = pool.GetStreamBuffer()
	}

	return s, nil
}

// Err returns the last I/O error swallowed by a bulk read.
func (s *BufferedStream) Err() error {
	return s.err
}

// Position returns the number of bytes read or written since the stream was created,
// or the absolute offset after a Seek on a seekable transport.
func (s *BufferedStream) Position() int64 {
	return s.pos
}

// Buffered returns the number of encoded bytes not yet handed to the underlying writer.
func (s *BufferedStream) Buffered() int {
	if s.pending == nil {
		return 0
	}

	return s.pending.Len()
}

// Flush writes all pending bytes to the underlying writer in a single call.
func (s *BufferedStream) Flush() error {
	if s.closed {
		return errs.ErrStreamClosed
	}
	if s.pending == nil || s.pending.Len() == 0 {
		return nil
	}

	want := s.pending.Len()
	n, err := s.pending.WriteTo(s.w)
	s.pending.Reset()
	if err != nil {
		return fmt.Errorf("flush %d bytes: %w", want, err)
	}
	if int(n) < want {
		return fmt.Errorf("flush %d bytes: %w", want, io.ErrShortWrite)
	}

	return nil
}

// Close flushes pending writes, releases the burst buffer and closes the underlying
// stream if it is an io.Closer and WithCloseUnderlying is enabled.
func (s *BufferedStream) Close() error {
	if s.closed {
		return nil
	}

	err := s.Flush()
	s.closed = true
	if s.pending != nil {
		pool.PutStreamBuffer(s.pending)
		s.pending = nil
	}

	if c, ok := s.under.(io.Closer); ok && s.cfg.closeUnderlying {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

// Seek positions the next read or write.
//
// Pending writes are flushed first. If the underlying stream implements io.Seeker the
// call is delegated, discarding any read-ahead. Otherwise a reader can only move
// forward, which is done by reading and discarding bytes; backward motion, SeekEnd and
// seeking a writer fail with errs.ErrNotSeekable.
func (s *BufferedStream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return s.pos, errs.ErrStreamClosed
	}
	if err := s.Flush(); err != nil {
		return s.pos, err
	}

	if seeker, ok := s.under.(io.Seeker); ok {
		if whence == io.SeekCurrent && s.r != nil {
			offset -= int64(s.r.Buffered())
		}

		pos, err := seeker.Seek(offset, whence)
		if err != nil {
			return s.pos, err
		}
		if s.r != nil {
			s.r.Reset(s.under.(io.Reader))
		}
		s.pos = pos

		return pos, nil
	}

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = s.pos + offset
	default:
		return s.pos, fmt.Errorf("%w: whence %d", errs.ErrNotSeekable, whence)
	}

	if target < s.pos || s.r == nil {
		return s.pos, fmt.Errorf("%w: cannot move from %d to %d", errs.ErrNotSeekable, s.pos, target)
	}

	n, err := s.r.Discard(int(target - s.pos))
	s.pos += int64(n)
	if err != nil {
		return s.pos, err
	}

	return s.pos, nil
}

// Skip moves a reader forward by n bytes and returns the number of bytes skipped.
func (s *BufferedStream) Skip(n int64) (int64, error) {
	start := s.pos
	_, err := s.Seek(n, io.SeekCurrent)

	return s.pos - start, err
}

// fill reads exactly n raw bytes into the scratch buffer.
// On a short read it returns the bytes received together with the error.
func (s *BufferedStream) fill(n int) ([]byte, error) {
	if s.closed {
		return nil, errs.ErrStreamClosed
	}
	if s.r == nil {
		return nil, errNotReadable
	}
	if s.pending != nil && s.pending.Len() > 0 {
		if err := s.Flush(); err != nil {
			return nil, err
		}
	}

	if cap(s.scratch) < n {
		s.scratch = make([]byte, n)
	}
	buf := s.scratch[:n]

	m, err := io.ReadFull(s.r, buf)
	s.pos += int64(m)
	if err != nil {
		return buf[:m], err
	}

	return buf, nil
}

// readBulk transfers count elements of the given width, one burst at a time, calling
// decode for every burst with the raw bytes and the index of its first element.
//
// End of stream stops the transfer and returns the number of whole elements decoded.
// Any other I/O error is recorded and reported as zero elements.
func (s *BufferedStream) readBulk(count, width int, decode func(raw []byte, at int, n int)) int {
	if count == 0 {
		return 0
	}

	perBurst := s.cfg.bufferSize / width
	if perBurst < 1 {
		perBurst = 1
	}

	done := 0
	for done < count {
		n := min(count-done, perBurst)
		raw, err := s.fill(n * width)
		got := len(raw) / width
		if got > 0 {
			decode(raw, done, got)
		}
		done += got

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				if done < count {
					s.err = io.ErrUnexpectedEOF
				}

				return done
			}
			s.err = err

			return 0
		}
	}

	return done
}

// reserve exposes n bytes at the end of the burst buffer for in-place encoding.
func (s *BufferedStream) reserve(n int) ([]byte, error) {
	if s.closed {
		return nil, errs.ErrStreamClosed
	}
	if s.w == nil {
		return nil, errNotWritable
	}

	return s.pending.Extend(n), nil
}

// commit accounts for n encoded bytes and flushes once the buffer is full.
func (s *BufferedStream) commit(n int) error {
	s.pos += int64(n)
	if s.pending.Len() >= s.cfg.bufferSize {
		return s.Flush()
	}

	return nil
}
