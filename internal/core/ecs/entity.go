package ecs

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
)

// Entity is an id plus a sparse set of components. A component is present
// when its pointer is non-nil; the entity's shape is the set of present ones.
type Entity struct {
	ID string

	Position *component.Vec3
	Velocity *component.Vec3
	Rotation *component.Vec2

	Health     *component.Health
	Shooter    *component.Shooter
	Pickup     *component.Pickup
	Owner      *component.Owner
	Avatar     *component.Avatar
	Projectile *component.Projectile
	Sound      *component.Sound

	// Local-only components.
	Input        *component.Input
	CameraShake  *component.CameraShake
	HitIndicator *component.HitIndicator
	Outbox       *action.Outbox
}

// Mask returns the bitmask of the components currently present.
func (e *Entity) Mask() ComponentMask {
	var m ComponentMask
	if e.Position != nil {
		m |= Position
	}
	if e.Velocity != nil {
		m |= Velocity
	}
	if e.Rotation != nil {
		m |= Rotation
	}
	if e.Health != nil {
		m |= Health
	}
	if e.Shooter != nil {
		m |= Shooter
	}
	if e.Pickup != nil {
		m |= Pickup
	}
	if e.Owner != nil {
		m |= Owner
	}
	if e.Avatar != nil {
		m |= Avatar
	}
	if e.Projectile != nil {
		m |= Projectile
	}
	if e.Sound != nil {
		m |= Sound
	}
	if e.Input != nil {
		m |= Input
	}
	if e.CameraShake != nil {
		m |= CameraShake
	}
	if e.HitIndicator != nil {
		m |= HitIndicator
	}
	if e.Outbox != nil {
		m |= Outbox
	}
	return m
}

// Has reports whether every component in m is present.
func (e *Entity) Has(m ComponentMask) bool {
	return e.Mask()&m == m
}
