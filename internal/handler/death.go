package handler

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"go.uber.org/zap"
)

// AvatarDeath marks the victim dead and updates both scores.
// A second notification for an already dead victim changes nothing.
func (h *applier) AvatarDeath(a *action.AvatarDeath) {
	victim := h.w.Get(a.VictimID)
	if victim == nil || victim.Avatar == nil || victim.Avatar.Dead {
		h.deps.Log.Debug("ignore death notice", zap.String("victim", a.VictimID))
		return
	}
	victim.Avatar.Dead = true
	victim.Avatar.Deaths++
	if victim.Health != nil {
		victim.Health.Value = 0
	}
	if victim.Velocity != nil {
		*victim.Velocity = component.Vec3{}
	}
	if a.KillerID == a.VictimID {
		return
	}
	if killer := h.w.Get(a.KillerID); killer != nil && killer.Avatar != nil {
		killer.Avatar.Kills++
	}
}

// RespawnAvatar revives an avatar at a new position with full health and the
// spawn loadout.
func (h *applier) RespawnAvatar(a *action.RespawnAvatar) {
	e := h.w.Get(a.AvatarID)
	if e == nil || e.Avatar == nil {
		h.deps.Log.Debug("重生目標不存在", zap.String("avatar", a.AvatarID))
		return
	}
	e.Avatar.Dead = false
	if e.Health != nil {
		e.Health.Value = component.MaxHealth
	}
	if e.Position != nil {
		*e.Position = a.Position
	}
	if e.Velocity != nil {
		*e.Velocity = component.Vec3{}
	}
	if e.Shooter != nil {
		e.Shooter = NewLoadout(h.deps.Weapons)
	}
	if e.CameraShake != nil {
		*e.CameraShake = component.CameraShake{}
	}
	if e.HitIndicator != nil {
		*e.HitIndicator = component.HitIndicator{}
	}
}
