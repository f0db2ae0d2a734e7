package packet

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

// Reader reads fields written by Writer. Any malformed field sets a sticky
// error flag; callers check OK once after reading everything.
type Reader struct {
	data string
	off  int
	bad  bool
}

func NewReader(data string) *Reader {
	return &Reader{data: data}
}

// Reset points the reader at new data.
func (r *Reader) Reset(data string) {
	r.data = data
	r.off = 0
	r.bad = false
}

// ReadUntil returns the text up to sep and advances past sep.
func (r *Reader) ReadUntil(sep byte) string {
	if r.bad {
		return ""
	}
	i := strings.IndexByte(r.data[r.off:], sep)
	if i < 0 {
		r.bad = true
		return ""
	}
	s := r.data[r.off : r.off+i]
	r.off += i + 1
	return s
}

// ReadByteChar reads one character and returns its code point as a byte.
// Code points above U+00FF are malformed.
func (r *Reader) ReadByteChar() byte {
	if r.bad || r.off >= len(r.data) {
		r.bad = true
		return 0
	}
	c, size := utf8.DecodeRuneInString(r.data[r.off:])
	if c > 0xFF {
		r.bad = true
		return 0
	}
	r.off += size
	return byte(c)
}

// ReadF32 reads 4 byte characters as a little-endian float32.
func (r *Reader) ReadF32() float32 {
	var b [4]byte
	for i := range b {
		b[i] = r.ReadByteChar()
	}
	if r.bad {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b[:]))
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// OK reports whether every read so far succeeded.
func (r *Reader) OK() bool {
	return !r.bad
}
