package handler

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"go.uber.org/zap"
)

// AvatarHit applies projectile damage to the target.
//
// No-op when either entity is missing, the shooter has no Shooter or Position,
// the target has no Health, or the target is already at 0. Damage comes from
// the shooter's current weapon through the DamageRule; health never drops
// below 0.
func (h *applier) AvatarHit(a *action.AvatarHit) {
	shooter := h.w.Get(a.ShooterID)
	target := h.w.Get(a.TargetID)
	if shooter == nil || target == nil {
		h.deps.Log.Debug("命中目標不存在",
			zap.String("shooter", a.ShooterID), zap.String("target", a.TargetID))
		return
	}
	if shooter.Shooter == nil || shooter.Position == nil || target.Health == nil {
		return
	}
	if target.Health.Value <= 0 {
		h.deps.Log.Debug("目標已倒下，忽略命中", zap.String("target", a.TargetID))
		return
	}
	spec := h.deps.Weapons.Get(shooter.Shooter.Weapon)
	if spec == nil {
		h.deps.Log.Warn("未知武器", zap.String("weapon", string(shooter.Shooter.Weapon)))
		return
	}

	dmg := max(h.deps.Damage.HitDamage(spec, a.Headshot), 0)
	target.Health.Value = clampInt(target.Health.Value-dmg, 0, component.MaxHealth)
	h.deps.Log.Debug("avatar hit",
		zap.String("shooter", a.ShooterID),
		zap.String("target", a.TargetID),
		zap.Int("damage", dmg),
		zap.Bool("headshot", a.Headshot),
		zap.Int("health", target.Health.Value),
	)

	now := h.w.Elapsed()
	if target.CameraShake != nil {
		target.CameraShake.Active = true
		target.CameraShake.Until = now + component.CameraShakeDuration
	}
	if target.HitIndicator != nil {
		target.HitIndicator.Active = true
		target.HitIndicator.Origin = *shooter.Position
		target.HitIndicator.Time = now
	}
}

// EmitProjectile spawns a projectile. The supplied velocity only gives the
// direction; speed is always ProjectileSpeed.
func (h *applier) EmitProjectile(a *action.EmitProjectile) {
	if a.ID == "" {
		h.deps.Log.Debug("drop projectile without id", zap.String("shooter", a.ShooterID))
		return
	}
	pos := a.Position
	vel := a.Velocity.Normalize().Scale(component.ProjectileSpeed)
	e := &ecs.Entity{
		ID:       a.ID,
		Position: &pos,
		Velocity: &vel,
		Projectile: &component.Projectile{
			ShooterID: a.ShooterID,
			Weapon:    a.Weapon,
			SpawnedAt: h.w.Elapsed(),
		},
	}
	if shooter := h.w.Get(a.ShooterID); shooter != nil && shooter.Owner != nil {
		e.Owner = &component.Owner{PlayerID: shooter.Owner.PlayerID}
	}
	h.w.Store().Add(e)
}
