package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// magic tags a static-codec stream so fgkverify and the CLI can tell it
// apart from an adaptive fgk stream at a glance (SPEC_FULL.md §D3): this
// codec is a two-pass, whole-file canonical coder, offered only as a
// benchmark comparison against the adaptive coder in package fgk, never as
// a silent substitute for it.
var magic = [4]byte{'F', 'G', 'K', 'H'}

// Compress builds a canonical Huffman code over all of data's bytes, then
// encodes data against that code. The code-length table is stored ahead of
// the payload so Decompress can rebuild the same code before decoding.
func Compress(data []byte) ([]byte, error) {
	freq := make([]int, 256)
	for _, b := range data {
		freq[b]++
	}
	code := NewCodeFromSymbolFrequencies(freq)

	var out bytes.Buffer
	out.Write(magic[:])
	if err := binary.Write(&out, binary.LittleEndian, uint64(len(data))); err != nil {
		return nil, fmt.Errorf("huffman: write header: %w", err)
	}
	if _, err := code.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("huffman: write code table: %w", err)
	}

	bw := bitio.NewWriter(&out)
	enc := NewEncoder(code, bw)
	symbols := make([]int, len(data))
	for i, b := range data {
		symbols[i] = int(b)
	}
	if _, err := enc.Write(symbols); err != nil {
		return nil, fmt.Errorf("huffman: encode payload: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("huffman: flush payload: %w", err)
	}

	return out.Bytes(), nil
}

// Decompress reverses Compress: it reads the stored code-length table,
// rebuilds the canonical code, and decodes exactly the stored byte count.
func Decompress(data []byte) ([]byte, error) {
	r := bytes.NewReader(data)

	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return nil, fmt.Errorf("huffman: read header: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("huffman: unrecognized magic %q", got[:])
	}
	var fileSize uint64
	if err := binary.Read(r, binary.LittleEndian, &fileSize); err != nil {
		return nil, fmt.Errorf("huffman: read header: %w", err)
	}

	var code Code
	if _, err := code.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("huffman: read code table: %w", err)
	}

	if fileSize == 0 {
		return nil, nil
	}

	br := bitio.NewReader(r)
	dec := NewDecoder(&code, br)
	symbols := make([]int, fileSize)
	if _, err := dec.Read(symbols); err != nil {
		return nil, fmt.Errorf("huffman: decode payload: %w", err)
	}

	out := make([]byte, fileSize)
	for i, s := range symbols {
		out[i] = byte(s)
	}
	return out, nil
}
