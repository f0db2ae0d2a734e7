package system

import (
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/data"
)

// MovementSystem integrates velocity into position. Avatars are kept out of
// solid cells one axis at a time so they slide along walls; projectiles move
// freely and are disposed of by ProjectileSystem.
type MovementSystem struct {
	movers *ecs.Family
	level  *data.Level // nil = no collision
}

func NewMovementSystem(w *ecs.World, level *data.Level) *MovementSystem {
	return &MovementSystem{
		movers: ecs.NewFamily(w.Store(), ecs.Require(ecs.Position, ecs.Velocity)),
		level:  level,
	}
}

func (s *MovementSystem) Update(_ *ecs.World, dt float64) {
	step := float32(dt)
	s.movers.Each(func(e *ecs.Entity) {
		if e.Avatar != nil && e.Avatar.Dead {
			return
		}
		delta := e.Velocity.Scale(step)
		if e.Avatar == nil || s.level == nil {
			*e.Position = e.Position.Add(delta)
			return
		}
		s.slide(e.Position, delta)
	})
}

func (s *MovementSystem) slide(pos *component.Vec3, delta component.Vec3) {
	probe := func(p component.Vec3) bool {
		// Test at knee height so a floor-level position is not inside the floor cell.
		p.Y += component.AvatarHeight / 4
		return s.level.Blocked(p)
	}
	next := *pos
	next.X += delta.X
	if probe(next) {
		next.X = pos.X
	}
	next.Z += delta.Z
	if probe(next) {
		next.Z = pos.Z
	}
	next.Y += delta.Y
	if probe(next) {
		next.Y = pos.Y
	}
	*pos = next
}
