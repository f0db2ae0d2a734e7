package handler

import (
	"github.com/voxarena/server/internal/action"
	"go.uber.org/zap"
)

// AvatarTransform overwrites the transform components the target has.
// Missing entity or missing components are skipped, never an error.
func (h *applier) AvatarTransform(a *action.AvatarTransform) {
	e := h.w.Get(a.ID)
	if e == nil {
		h.deps.Log.Debug("transform for unknown entity", zap.String("id", a.ID))
		return
	}
	if e.Position != nil {
		*e.Position = a.Position
	}
	if e.Velocity != nil {
		*e.Velocity = a.Velocity
	}
	if e.Rotation != nil {
		*e.Rotation = a.Rotation
	}
}
