package main

// seekableBuffer is a growable in-memory io.WriteSeeker: fgk.Session.Encode
// needs to seek back to offset 0 to rewrite its header once the payload
// length is known (spec.md §4.5 step 6), and the CLI has no file handle to
// give it until the whole output is ready to write in one shot.
type seekableBuffer struct {
	bytes []byte
	pos   int64
}

func (b *seekableBuffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.bytes)) {
		grown := make([]byte, end)
		copy(grown, b.bytes)
		b.bytes = grown
	}
	n := copy(b.bytes[b.pos:end], p)
	b.pos = end
	return n, nil
}

func (b *seekableBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		b.pos = offset
	case 1:
		b.pos += offset
	case 2:
		b.pos = int64(len(b.bytes)) + offset
	}
	return b.pos, nil
}
