// Package packet implements the wire format of the arena protocol.
//
// A message is a 2-character zero-padded decimal kind tag followed by the
// body. Most kinds carry a JSON body; AvatarTransform uses a fixed-width
// packed body.
package packet

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/voxarena/server/internal/action"
)

// HeaderLen is the length of the kind tag.
const HeaderLen = 2

var errNilAction = errors.New("nil action")

// Codec encodes and decodes wire messages. It reuses scratch buffers, so a
// Codec must be owned by one goroutine.
type Codec struct {
	packers map[action.Kind]packer
	w       *Writer
	r       *Reader
}

func NewCodec() *Codec {
	return &Codec{
		packers: defaultPackers(),
		w:       NewWriter(),
		r:       NewReader(""),
	}
}

// Encode serializes a into one wire message.
func (c *Codec) Encode(a action.Action) (string, error) {
	if a == nil {
		return "", errNilAction
	}
	k := a.Kind()
	if !k.Valid() {
		return "", fmt.Errorf("encode: invalid kind %d", uint8(k))
	}

	c.w.Reset()
	c.w.WriteByteChar('0' + byte(k)/10)
	c.w.WriteByteChar('0' + byte(k)%10)

	if p, ok := c.packers[k]; ok {
		if err := p.pack(c.w, a); err != nil {
			return "", fmt.Errorf("encode %s: %w", k, err)
		}
		return c.w.String(), nil
	}

	body, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", k, err)
	}
	c.w.WriteString(string(body))
	return c.w.String(), nil
}

// Decode parses one wire message. Malformed, truncated or unknown messages
// yield (nil, false).
func (c *Codec) Decode(msg string) (action.Action, bool) {
	k, ok := ParseKind(msg)
	if !ok {
		return nil, false
	}
	body := msg[HeaderLen:]

	if p, ok := c.packers[k]; ok {
		c.r.Reset(body)
		return p.unpack(c.r)
	}

	// Generic bodies are always JSON objects; null would decode to a zero action.
	if len(body) == 0 || body[0] != '{' {
		return nil, false
	}
	a := action.New(k)
	if a == nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(body), a); err != nil {
		return nil, false
	}
	return a, true
}

// ParseKind reads the kind tag of msg without decoding the body.
func ParseKind(msg string) (action.Kind, bool) {
	if len(msg) < HeaderLen {
		return action.KindInvalid, false
	}
	hi, lo := msg[0], msg[1]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return action.KindInvalid, false
	}
	k := action.Kind((hi-'0')*10 + (lo - '0'))
	if !k.Valid() {
		return action.KindInvalid, false
	}
	return k, true
}
