package system

import (
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
)

// soundSweepInterval throttles SoundSystem; sounds only need coarse expiry.
const soundSweepInterval = 0.25

// SoundSystem disposes of sound entities after SoundLifetime.
type SoundSystem struct {
	sounds *ecs.Family
}

func NewSoundSystem(w *ecs.World) *SoundSystem {
	return &SoundSystem{sounds: ecs.NewFamily(w.Store(), ecs.Require(ecs.Sound))}
}

func (s *SoundSystem) UpdateInterval() float64 { return soundSweepInterval }

func (s *SoundSystem) Update(w *ecs.World, _ float64) {
	now := w.Elapsed()
	for id, e := range s.sounds.Members() {
		if now-e.Sound.StartedAt >= component.SoundLifetime {
			w.MarkForDestruction(id)
		}
	}
}
