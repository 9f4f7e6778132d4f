package fgk

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitWriterReaderRoundTrip(t *testing.T) {
	var bb bytes.Buffer
	w := NewBitWriter(&bb)

	bits := []uint8{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}
	for _, b := range bits {
		require.NoError(t, w.PutBit(b))
	}
	require.NoError(t, w.PutNBits(0xAB, 8))
	require.NoError(t, w.Flush())

	r := NewBitReader(&bb)
	for i, want := range bits {
		got, err := r.GetBit()
		require.NoError(t, err, "bit %d", i)
		require.Equal(t, want, got, "bit %d", i)
	}
	v, err := r.GetNBits(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0xAB), v)
}

func TestBitReaderTruncatedReturnsErrTruncated(t *testing.T) {
	var bb bytes.Buffer
	w := NewBitWriter(&bb)
	require.NoError(t, w.PutBit(1))
	require.NoError(t, w.Flush())

	r := NewBitReader(&bb)
	_, err := r.GetBit()
	require.NoError(t, err)
	_, err = r.GetNBits(8)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestByteCounters(t *testing.T) {
	var bb bytes.Buffer
	w := NewBitWriter(&bb)
	require.NoError(t, w.PutNBits(0, 16))
	require.NoError(t, w.Flush())
	require.Equal(t, int64(2), w.BytesWritten())

	r := NewBitReader(bytes.NewReader(bb.Bytes()))
	_, err := r.GetNBits(16)
	require.NoError(t, err)
	require.Equal(t, int64(2), r.BytesRead())
}

func TestBufferBoundaryIndependence(t *testing.T) {
	// The bit sequence must not depend on how many bytes the underlying
	// reader hands back per Read call (spec.md §4.1's buffering contract).
	var bb bytes.Buffer
	w := NewBitWriter(&bb)
	for i := 0; i < 1000; i++ {
		require.NoError(t, w.PutBit(uint8(i%2)))
	}
	require.NoError(t, w.Flush())

	r := NewBitReader(&oneByteAtATimeReader{data: bb.Bytes()})
	for i := 0; i < 1000; i++ {
		b, err := r.GetBit()
		require.NoError(t, err)
		require.Equal(t, uint8(i%2), b)
	}
}

// oneByteAtATimeReader returns at most one byte per Read call, to flush out
// any hidden assumption about the underlying buffer's chunking.
type oneByteAtATimeReader struct {
	data []byte
	pos  int
}

func (r *oneByteAtATimeReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}
