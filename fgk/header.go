package fgk

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the on-disk size of the fixed file stamp: a 4-byte
// algorithm tag plus an 8-byte little-endian signed byte count (spec.md
// §6).
const HeaderSize = 12

var magic = [4]byte{'F', 'G', 'K', 0}

// Header is the file stamp written at the start of every stream: the
// algorithm tag and the uncompressed byte count. It is written twice, per
// spec.md §4.5 -- once as a placeholder before encoding starts, once with
// the true FileSize after the payload is flushed -- following the same
// WriteTo/ReadFrom shape the teacher uses for its own stream header in
// lzss/header.go.
type Header struct {
	FileSize int64
}

// WriteTo writes the 12-byte header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var buf [HeaderSize]byte
	copy(buf[:4], magic[:])
	binary.LittleEndian.PutUint64(buf[4:], uint64(h.FileSize))
	n, err := w.Write(buf[:])
	return int64(n), err
}

// ReadFrom reads and validates the 12-byte header from r, returning
// ErrBadMagic if the algorithm tag isn't "FGK\0".
func (h *Header) ReadFrom(r io.Reader) (int64, error) {
	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] || buf[3] != magic[3] {
		return int64(n), fmt.Errorf("%w: got %q", ErrBadMagic, buf[:4])
	}
	h.FileSize = int64(binary.LittleEndian.Uint64(buf[4:]))
	return int64(n), nil
}
