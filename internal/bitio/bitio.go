// Package bitio provides single-bit I/O over byte streams.
//
// Bits are packed most significant bit first.  The final byte written by a
// Writer is padded with zero bits; the Reader returns those padding bits like
// any other, so framing belongs to the caller.
package bitio

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Writer writes individual bits to an io.Writer.  Write errors are sticky and
// are reported by Flush, Close or Err.
type Writer struct {
	w     *bufio.Writer
	err   error
	curr  byte
	nbits uint8
	count int64
}

// NewWriter returns a Writer that appends bits to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteBit writes a single bit.  Only the low bit of bit is used.
func (w *Writer) WriteBit(bit byte) error {
	if w.err != nil {
		return w.err
	}
	w.curr = (w.curr << 1) | (bit & 1)
	w.nbits++
	w.count++
	if w.nbits == 8 {
		w.emit()
	}
	return w.err
}

// BitsWritten returns the number of bits accepted so far, padding excluded.
func (w *Writer) BitsWritten() int64 {
	return w.count
}

// Flush pads any partial byte with zero bits and flushes it, along with all
// buffered bytes, to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.nbits > 0 {
		w.curr <<= 8 - w.nbits
		w.emit()
	}
	if w.err == nil {
		if err := w.w.Flush(); err != nil {
			w.err = errors.Wrap(err, "failed to flush bits")
		}
	}
	return w.err
}

// Close is Flush.  It does not close the underlying writer.
func (w *Writer) Close() error {
	return w.Flush()
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) emit() {
	if err := w.w.WriteByte(w.curr); err != nil {
		w.err = errors.Wrap(err, "failed to write bits")
	}
	w.curr = 0
	w.nbits = 0
}

var _ io.Closer = (*Writer)(nil)

// Reader reads individual bits from an io.ByteReader.
type Reader struct {
	r     io.ByteReader
	err   error
	curr  byte
	nbits uint8
}

// NewReader returns a Reader that consumes bytes from r only as bits are
// needed.
func NewReader(r io.ByteReader) *Reader {
	return &Reader{r: r}
}

// ReadBit reads a single bit.  At the end of the stream it returns io.EOF;
// other read errors are wrapped.
func (r *Reader) ReadBit() (byte, error) {
	if r.nbits == 0 {
		if r.err != nil {
			return 0, r.err
		}
		b, err := r.r.ReadByte()
		if err == io.EOF {
			r.err = io.EOF
			return 0, r.err
		}
		if err != nil {
			r.err = errors.Wrap(err, "failed to read bits")
			return 0, r.err
		}
		r.curr = b
		r.nbits = 8
	}

	bit := (r.curr >> 7) & 1
	r.curr <<= 1
	r.nbits--
	return bit, nil
}

// EOF returns true iff a read has hit the end of the stream.
func (r *Reader) EOF() bool {
	return r.nbits == 0 && r.err == io.EOF
}
