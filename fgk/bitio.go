package fgk

import (
	"io"

	"github.com/icza/bitio"
)

// BitWriter packs individual bits and fixed-width fields MSB-first into
// bytes, per spec.md §4.1. It is a thin accounting layer over
// github.com/icza/bitio.Writer, the library the teacher already reaches
// for whenever it needs bit-level packing (stream.go, huffman/huffman.go,
// all of lzss/): bitio already does the MSB-first packing and internal
// buffering correctly, so this type adds only what the spec additionally
// asks for -- PutBit/PutNBits spelled the way spec.md names them, and a
// running count of bytes emitted.
type BitWriter struct {
	counter *countingWriter
	w       *bitio.Writer
}

// NewBitWriter returns a BitWriter that packs bits onto w.
func NewBitWriter(w io.Writer) *BitWriter {
	c := &countingWriter{w: w}
	return &BitWriter{counter: c, w: bitio.NewWriter(c)}
}

// PutBit appends one bit (the low bit of b) to the output stream.
func (bw *BitWriter) PutBit(b uint8) error {
	return bw.w.WriteBool(b != 0)
}

// PutNBits appends the low n bits of value, most significant first, for n
// in 1..32.
func (bw *BitWriter) PutNBits(value uint32, n uint8) error {
	return bw.w.WriteBits(uint64(value), n)
}

// PutByte writes a full byte directly, bypassing the bit accumulator. It is
// only valid when the writer is currently byte-aligned (spec.md §4.5 step 3
// permits this for the first, raw symbol byte, which always precedes any
// coded bits).
func (bw *BitWriter) PutByte(b byte) error {
	return bw.w.WriteByte(b)
}

// Flush pads the current partial output byte with zero bits (if any) and
// emits it.
func (bw *BitWriter) Flush() error {
	return bw.w.Close()
}

// BytesWritten returns the number of bytes emitted by this writer so far.
func (bw *BitWriter) BytesWritten() int64 {
	return bw.counter.n
}

// BitReader consumes individual bits and fixed-width fields MSB-first from
// a byte stream, mirroring BitWriter's packing convention exactly.
type BitReader struct {
	counter *countingReader
	r       *bitio.Reader
}

// NewBitReader returns a BitReader that reads bits from r.
func NewBitReader(r io.Reader) *BitReader {
	c := &countingReader{r: r}
	return &BitReader{counter: c, r: bitio.NewReader(c)}
}

// GetBit returns the next bit, or ErrTruncated if the underlying stream is
// exhausted.
func (br *BitReader) GetBit() (uint8, error) {
	b, err := br.r.ReadBool()
	if err != nil {
		return 0, truncatedIfEOF(err)
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// GetNBits assembles an n-bit field MSB-first, for n in 1..32.
func (br *BitReader) GetNBits(n uint8) (uint32, error) {
	v, err := br.r.ReadBits(n)
	if err != nil {
		return 0, truncatedIfEOF(err)
	}
	return uint32(v), nil
}

// BytesRead returns the number of bytes consumed from the source so far.
func (br *BitReader) BytesRead() int64 {
	return br.counter.n
}

func truncatedIfEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

// countingWriter tracks the number of bytes written to an underlying
// io.Writer; bitio.Writer only ever forwards whole bytes downstream, so
// counting its writes is exactly counting bytes emitted.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// countingReader tracks the number of bytes pulled from an underlying
// io.Reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
