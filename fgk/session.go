package fgk

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Stats summarizes one Encode or Decode run: the domain-visible result a
// caller reports, the way the teacher's main.go computes and prints a
// compression ratio from its own before/after byte counts.
type Stats struct {
	BytesIn  int64
	BytesOut int64
	Symbols  int64
}

// Session owns one encode-or-decode run: its own Tree and its own bit I/O.
// Sessions share no mutable state; running several concurrently, each on
// its own Session, is safe (spec.md §5).
type Session struct {
	log zerolog.Logger
}

// NewSession returns a Session that logs through log. A zero
// zerolog.Logger is a valid, silent logger, so passing zerolog.Nop() is
// fine when the caller doesn't want any output.
func NewSession(log zerolog.Logger) *Session {
	return &Session{log: log}
}

// Encode reads all of r, compresses it with the FGK adaptive coder, and
// writes the self-describing stream to w: a placeholder header, the
// payload, then the header rewritten with the true uncompressed length
// (spec.md §4.5). w must support seeking so the header can be rewound and
// rewritten after the payload is known.
func (s *Session) Encode(r io.Reader, w io.WriteSeeker) (Stats, error) {
	var hdr Header
	if _, err := hdr.WriteTo(w); err != nil {
		return Stats{}, fmt.Errorf("fgk: write placeholder header: %w", err)
	}

	br := bufio.NewReader(r)
	first, err := br.ReadByte()
	if errors.Is(err, io.EOF) {
		if err := rewriteHeader(w, &hdr, 0); err != nil {
			return Stats{}, err
		}
		s.log.Info().Msg("encoded empty input")
		return Stats{BytesOut: HeaderSize}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("fgk: read input: %w", err)
	}

	tree := NewTree()
	if _, err := w.Write([]byte{first}); err != nil {
		return Stats{}, fmt.Errorf("fgk: write first symbol: %w", err)
	}
	tree.Update(first)

	bw := NewBitWriter(w)
	count := int64(1)
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Stats{}, fmt.Errorf("fgk: read input: %w", err)
		}

		if leaf, ok := tree.LeafFor(b); ok {
			if err := tree.Emit(bw, leaf); err != nil {
				return Stats{}, fmt.Errorf("fgk: emit code: %w", err)
			}
		} else {
			if err := tree.Emit(bw, tree.ZeroNode()); err != nil {
				return Stats{}, fmt.Errorf("fgk: emit escape code: %w", err)
			}
			if err := bw.PutNBits(uint32(b), 8); err != nil {
				return Stats{}, fmt.Errorf("fgk: emit raw byte: %w", err)
			}
		}
		tree.Update(b)
		count++
	}
	if err := bw.Flush(); err != nil {
		return Stats{}, fmt.Errorf("fgk: flush output: %w", err)
	}

	if err := rewriteHeader(w, &hdr, count); err != nil {
		return Stats{}, err
	}

	bytesOut := HeaderSize + 1 + bw.BytesWritten()
	s.log.Info().
		Int64("bytes_in", count).
		Int64("bytes_out", bytesOut).
		Msg("encode complete")
	return Stats{BytesIn: count, BytesOut: bytesOut, Symbols: count}, nil
}

func rewriteHeader(w io.WriteSeeker, hdr *Header, fileSize int64) error {
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("fgk: rewind output: %w", err)
	}
	hdr.FileSize = fileSize
	if _, err := hdr.WriteTo(w); err != nil {
		return fmt.Errorf("fgk: rewrite header: %w", err)
	}
	return nil
}

// Decode reads a self-describing FGK stream from r and writes the
// reconstructed bytes to w (spec.md §4.5).
func (s *Session) Decode(r io.Reader, w io.Writer) (Stats, error) {
	var hdr Header
	if _, err := hdr.ReadFrom(r); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Stats{}, fmt.Errorf("fgk: read header: %w", ErrTruncated)
		}
		return Stats{}, fmt.Errorf("fgk: read header: %w", err)
	}
	if hdr.FileSize == 0 {
		s.log.Info().Msg("decoded empty input")
		return Stats{BytesIn: HeaderSize}, nil
	}
	if hdr.FileSize < 0 {
		return Stats{}, fmt.Errorf("fgk: negative file_size %d in header", hdr.FileSize)
	}

	br := bufio.NewReader(r)
	first, err := br.ReadByte()
	if err != nil {
		return Stats{}, fmt.Errorf("fgk: read first symbol: %w", ErrTruncated)
	}
	if _, err := w.Write([]byte{first}); err != nil {
		return Stats{}, fmt.Errorf("fgk: write output: %w", err)
	}

	tree := NewTree()
	tree.Update(first)

	bitR := NewBitReader(br)
	remaining := hdr.FileSize - 1
	for remaining > 0 {
		sym, err := tree.Decode(bitR)
		if err != nil {
			return Stats{}, fmt.Errorf("fgk: decode symbol: %w", err)
		}
		if sym == zeroNodeSymbol {
			v, err := bitR.GetNBits(8)
			if err != nil {
				return Stats{}, fmt.Errorf("fgk: read escaped byte: %w", err)
			}
			sym = int(v)
		}
		if _, err := w.Write([]byte{byte(sym)}); err != nil {
			return Stats{}, fmt.Errorf("fgk: write output: %w", err)
		}
		tree.Update(byte(sym))
		remaining--
	}

	s.log.Info().
		Int64("bytes_out", hdr.FileSize).
		Msg("decode complete")
	return Stats{BytesIn: HeaderSize + 1 + bitR.BytesRead(), BytesOut: hdr.FileSize, Symbols: hdr.FileSize}, nil
}
