// Package system holds the gameplay systems shared by the client and server
// worlds. Systems run in registration order through core/system.Runner.
package system

import (
	"math"

	"github.com/google/uuid"
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
)

// Emitter applies a locally produced action and forwards it to the other
// peers. The client Replicator is the production implementation.
type Emitter interface {
	Emit(a action.Action)
}

// IDFunc generates entity ids for spawned projectiles and sounds.
type IDFunc func() string

// NewUUID is the default IDFunc.
func NewUUID() string { return uuid.NewString() }

// aimDirection returns the unit view vector for pitch (X) and yaw (Y).
// Yaw 0 looks down -Z.
func aimDirection(rot component.Vec2) component.Vec3 {
	sp, cp := math.Sincos(float64(rot.X))
	sy, cy := math.Sincos(float64(rot.Y))
	return component.Vec3{
		X: float32(-sy * cp),
		Y: float32(sp),
		Z: float32(-cy * cp),
	}
}
