package system

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
)

// PickupSystem lets the local avatar collect pickups it walks over. Health
// pickups are left alone while the avatar is at full health.
type PickupSystem struct {
	collectors *ecs.Family
	pickups    *ecs.Family
	emit       Emitter
}

func NewPickupSystem(w *ecs.World, emit Emitter) *PickupSystem {
	return &PickupSystem{
		collectors: ecs.NewFamily(w.Store(), ecs.Require(ecs.Input, ecs.Position, ecs.Avatar, ecs.Health)),
		pickups:    ecs.NewFamily(w.Store(), ecs.Require(ecs.Pickup, ecs.Position)),
		emit:       emit,
	}
}

func (s *PickupSystem) Update(_ *ecs.World, _ float64) {
	s.collectors.Each(func(a *ecs.Entity) {
		if a.Avatar.Dead {
			return
		}
		s.pickups.Each(func(p *ecs.Entity) {
			if !InPickupRange(*a.Position, *p.Position) {
				return
			}
			if p.Pickup.Kind == component.PickupHealth && a.Health.Value >= component.MaxHealth {
				return
			}
			// Emit applies locally, so the pickup is gone before the next check.
			s.emit.Emit(&action.ConsumePickup{PickupID: p.ID, TargetID: a.ID})
		})
	})
}

// InPickupRange reports whether an avatar standing at feet overlaps a pickup.
func InPickupRange(feet, pickup component.Vec3) bool {
	dx, dz := pickup.X-feet.X, pickup.Z-feet.Z
	if dx*dx+dz*dz > component.PickupRadius*component.PickupRadius {
		return false
	}
	dy := pickup.Y - feet.Y
	return dy >= -component.PickupRadius && dy <= component.AvatarHeight
}
