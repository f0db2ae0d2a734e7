package packet

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Writer builds a packed message body. Raw bytes are written as one
// character each, with code point equal to the byte value, so the body
// survives a text-only channel.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 96)}
}

// Reset empties the buffer, keeping its capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteString writes s verbatim.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteByteChar writes b as the character U+00XX.
func (w *Writer) WriteByteChar(b byte) {
	w.buf = utf8.AppendRune(w.buf, rune(b))
}

// WriteF32 writes the 4 little-endian IEEE-754 bytes of v as 4 characters.
func (w *Writer) WriteF32(v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	for _, c := range b {
		w.WriteByteChar(c)
	}
}

// String returns a copy of the body.
func (w *Writer) String() string {
	return string(w.buf)
}

// Len returns the encoded length in bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}
