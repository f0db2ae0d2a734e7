package system

import "github.com/voxarena/server/internal/core/ecs"

// System is the interface every ECS system implements. dt is in seconds.
type System interface {
	Update(w *ecs.World, dt float64)
}

// Throttled is implemented by systems that should not run every tick.
// UpdateInterval is in seconds; zero or negative means every tick.
type Throttled interface {
	UpdateInterval() float64
}
