package system

import "github.com/voxarena/server/internal/core/ecs"

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Register it last.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (s *CleanupSystem) Update(w *ecs.World, _ float64) {
	w.FlushDestroyQueue()
}
