package handler

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"go.uber.org/zap"
)

// PlaySound spawns a transient sound entity for the audio collaborator.
// SoundSystem disposes of it after SoundLifetime.
func (h *applier) PlaySound(a *action.PlaySound) {
	if a.ID == "" || a.Name == "" {
		h.deps.Log.Debug("drop sound without id or name", zap.String("id", a.ID), zap.String("name", a.Name))
		return
	}
	pos := a.Position
	h.w.Store().Add(&ecs.Entity{
		ID:       a.ID,
		Position: &pos,
		Sound: &component.Sound{
			Name:      a.Name,
			SourceID:  a.SourceID,
			StartedAt: h.w.Elapsed(),
		},
	})
}
