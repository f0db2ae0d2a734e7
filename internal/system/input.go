package system

import (
	"math"

	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
)

const maxPitch = math.Pi/2 - 0.01

// InputSystem turns the local Input component into velocity and rotation.
// Dead avatars stand still.
type InputSystem struct {
	avatars *ecs.Family
}

func NewInputSystem(w *ecs.World) *InputSystem {
	return &InputSystem{
		avatars: ecs.NewFamily(w.Store(), ecs.Require(ecs.Input, ecs.Velocity, ecs.Rotation, ecs.Avatar)),
	}
}

func (s *InputSystem) Update(_ *ecs.World, _ float64) {
	s.avatars.Each(func(e *ecs.Entity) {
		if e.Avatar.Dead {
			*e.Velocity = component.Vec3{}
			return
		}
		in := e.Input
		pitch := float32(math.Max(-maxPitch, math.Min(maxPitch, float64(in.Pitch))))
		*e.Rotation = component.Vec2{X: pitch, Y: in.Yaw}

		sy, cy := math.Sincos(float64(in.Yaw))
		forward := component.Vec3{X: float32(-sy), Z: float32(-cy)}
		right := component.Vec3{X: float32(cy), Z: float32(-sy)}

		move := right.Scale(in.MoveX).Add(forward.Scale(in.MoveZ))
		if move.Length() > 1 {
			move = move.Normalize()
		}
		*e.Velocity = move.Scale(component.AvatarMoveSpeed)
	})
}
