package system

import (
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
)

// EffectsSystem clears the camera shake and hit indicator once their
// deadlines pass.
type EffectsSystem struct {
	shakes     *ecs.Family
	indicators *ecs.Family
}

func NewEffectsSystem(w *ecs.World) *EffectsSystem {
	return &EffectsSystem{
		shakes:     ecs.NewFamily(w.Store(), ecs.Require(ecs.CameraShake)),
		indicators: ecs.NewFamily(w.Store(), ecs.Require(ecs.HitIndicator)),
	}
}

func (s *EffectsSystem) Update(w *ecs.World, _ float64) {
	now := w.Elapsed()
	for _, e := range s.shakes.Members() {
		if e.CameraShake.Active && now >= e.CameraShake.Until {
			e.CameraShake.Active = false
		}
	}
	for _, e := range s.indicators.Members() {
		if e.HitIndicator.Active && now-e.HitIndicator.Time >= component.HitIndicatorDuration {
			e.HitIndicator.Active = false
		}
	}
}
