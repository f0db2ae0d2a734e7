package packet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/voxarena/server/internal/action"
)

// Separator ends the entity id in a packed transform body.
const Separator = '|'

var errSeparatorInID = errors.New("entity id contains the transform separator")

// packer encodes one action kind into a compact body instead of JSON.
type packer interface {
	pack(w *Writer, a action.Action) error
	unpack(r *Reader) (action.Action, bool)
}

// transformPacker packs AvatarTransform as id + '|' + 8 float32 values:
// position xyz, velocity xyz, rotation xy.
type transformPacker struct{}

func (transformPacker) pack(w *Writer, a action.Action) error {
	t, ok := a.(*action.AvatarTransform)
	if !ok {
		return fmt.Errorf("transform packer: unexpected %T", a)
	}
	if strings.IndexByte(t.ID, Separator) >= 0 {
		return fmt.Errorf("pack transform %q: %w", t.ID, errSeparatorInID)
	}
	w.WriteString(t.ID)
	w.WriteByteChar(Separator)
	w.WriteF32(t.Position.X)
	w.WriteF32(t.Position.Y)
	w.WriteF32(t.Position.Z)
	w.WriteF32(t.Velocity.X)
	w.WriteF32(t.Velocity.Y)
	w.WriteF32(t.Velocity.Z)
	w.WriteF32(t.Rotation.X)
	w.WriteF32(t.Rotation.Y)
	return nil
}

func (transformPacker) unpack(r *Reader) (action.Action, bool) {
	t := &action.AvatarTransform{}
	t.ID = r.ReadUntil(Separator)
	t.Position.X = r.ReadF32()
	t.Position.Y = r.ReadF32()
	t.Position.Z = r.ReadF32()
	t.Velocity.X = r.ReadF32()
	t.Velocity.Y = r.ReadF32()
	t.Velocity.Z = r.ReadF32()
	t.Rotation.X = r.ReadF32()
	t.Rotation.Y = r.ReadF32()
	// Exactly 32 byte characters, nothing trailing.
	if !r.OK() || r.Remaining() != 0 {
		return nil, false
	}
	return t, true
}

// defaultPackers lists the kinds that bypass the JSON body.
func defaultPackers() map[action.Kind]packer {
	return map[action.Kind]packer{
		action.KindAvatarTransform: transformPacker{},
	}
}
