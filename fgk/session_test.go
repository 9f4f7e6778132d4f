package fgk

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// seekBuffer is an io.WriteSeeker backed by a growable byte slice, behaving
// the way an *os.File would for Encode's header-rewrite step.
type seekBuffer struct {
	buf []byte
	pos int64
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	n := copy(s.buf[s.pos:end], p)
	s.pos = end
	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		s.pos = offset
	case 1:
		s.pos += offset
	case 2:
		s.pos = int64(len(s.buf)) + offset
	}
	return s.pos, nil
}

func newSession() *Session {
	return NewSession(zerolog.Nop())
}

func TestEncodeEmptyInputWritesBareHeader(t *testing.T) {
	s := newSession()
	var out seekBuffer
	stats, err := s.Encode(bytes.NewReader(nil), &out)
	require.NoError(t, err)
	require.Equal(t, int64(HeaderSize), stats.BytesOut)
	require.Len(t, out.buf, HeaderSize)

	var hdr Header
	_, err = hdr.ReadFrom(bytes.NewReader(out.buf))
	require.NoError(t, err)
	require.Equal(t, int64(0), hdr.FileSize)
}

func TestEncodeSingleByteHeaderRecordsFileSizeOne(t *testing.T) {
	s := newSession()
	var out seekBuffer
	_, err := s.Encode(bytes.NewReader([]byte{0x41}), &out)
	require.NoError(t, err)

	var hdr Header
	_, err = hdr.ReadFrom(bytes.NewReader(out.buf))
	require.NoError(t, err)
	require.Equal(t, int64(1), hdr.FileSize)
	require.Equal(t, byte(0x41), out.buf[HeaderSize])
}

func TestEncodeTwoDistinctBytesEmitsEscapeThenRaw(t *testing.T) {
	// spec.md §8 scenario 3: 0x41 0x42 -- the first byte is raw. After
	// Update(0x41), the tree's root has the zero node as its bit-0 child and
	// the leaf for 0x41 as its bit-1 child, so the second byte (unseen)
	// codes as the single bit 0 (the path to the zero node) followed by the
	// raw escaped byte.
	s := newSession()
	var out seekBuffer
	_, err := s.Encode(bytes.NewReader([]byte{0x41, 0x42}), &out)
	require.NoError(t, err)

	payload := out.buf[HeaderSize:]
	require.Equal(t, byte(0x41), payload[0])

	r := NewBitReader(bytes.NewReader(payload[1:]))
	escapeBit, err := r.GetBit()
	require.NoError(t, err)
	require.Equal(t, uint8(0), escapeBit)

	v, err := r.GetNBits(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0x42), v)
}

func TestEncodeRepeatedByteProducesSevenBitPayload(t *testing.T) {
	// spec.md §8 scenario 4: 0x41 repeated 8 times. The first 0x41 is raw;
	// each of the next 7 finds its own leaf (the tree's only non-zero leaf)
	// and is coded as a single bit, for 7 bits total after the first byte.
	s := newSession()
	var out seekBuffer
	_, err := s.Encode(bytes.NewReader(bytes.Repeat([]byte{0x41}, 8)), &out)
	require.NoError(t, err)

	payload := out.buf[HeaderSize:]
	require.Equal(t, byte(0x41), payload[0])
	require.Len(t, payload, 2) // 1 raw byte + 7 bits rounded up to 1 byte

	var hdr Header
	_, err = hdr.ReadFrom(bytes.NewReader(out.buf))
	require.NoError(t, err)
	require.Equal(t, int64(8), hdr.FileSize)
}

func TestRoundTripArbitraryInput(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0x00},
		[]byte("abracadabra"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0xFF}, 50),
	}
	for i := 0; i < 256; i++ {
		inputs = append(inputs, []byte{byte(i), byte(i), byte(255 - i)})
	}

	for _, in := range inputs {
		enc := newSession()
		var compressed seekBuffer
		_, err := enc.Encode(bytes.NewReader(in), &compressed)
		require.NoError(t, err)

		dec := newSession()
		var out bytes.Buffer
		_, err = dec.Decode(bytes.NewReader(compressed.buf), &out)
		require.NoError(t, err)
		require.Equal(t, in, out.Bytes())
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	in := []byte("mississippi river")
	s1, s2 := newSession(), newSession()
	var out1, out2 seekBuffer
	_, err := s1.Encode(bytes.NewReader(in), &out1)
	require.NoError(t, err)
	_, err = s2.Encode(bytes.NewReader(in), &out2)
	require.NoError(t, err)
	require.Equal(t, out1.buf, out2.buf)
}

func TestHeaderFileSizeMatchesInputLength(t *testing.T) {
	in := []byte("header truth check")
	s := newSession()
	var out seekBuffer
	_, err := s.Encode(bytes.NewReader(in), &out)
	require.NoError(t, err)

	var hdr Header
	_, err = hdr.ReadFrom(bytes.NewReader(out.buf))
	require.NoError(t, err)
	require.Equal(t, int64(len(in)), hdr.FileSize)
}

func TestFirstSymbolIsAlwaysWrittenRaw(t *testing.T) {
	in := []byte{0x7F, 0x7F, 0x7F}
	s := newSession()
	var out seekBuffer
	_, err := s.Encode(bytes.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, byte(0x7F), out.buf[HeaderSize])
}

func TestDecodeTruncatedHeaderReturnsErrTruncated(t *testing.T) {
	s := newSession()
	var out bytes.Buffer
	_, err := s.Decode(bytes.NewReader([]byte{'F', 'G', 'K'}), &out)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeBadMagicReturnsErrBadMagic(t *testing.T) {
	s := newSession()
	var out bytes.Buffer
	bad := make([]byte, HeaderSize)
	copy(bad, "XYZ\x00")
	_, err := s.Decode(bytes.NewReader(bad), &out)
	require.ErrorIs(t, err, ErrBadMagic)
}
