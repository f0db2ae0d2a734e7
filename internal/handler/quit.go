package handler

import (
	"github.com/voxarena/server/internal/action"
	"go.uber.org/zap"
)

// RemoveEntity deletes an entity. Removing an absent id is a no-op, so a
// duplicated remove is harmless.
func (h *applier) RemoveEntity(a *action.RemoveEntity) {
	if h.w.Get(a.ID) == nil {
		h.deps.Log.Debug("移除不存在的實體", zap.String("id", a.ID))
		return
	}
	h.w.Store().Remove(a.ID)
}
