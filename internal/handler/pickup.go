package handler

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"go.uber.org/zap"
)

func (h *applier) SpawnPickup(a *action.SpawnPickup) {
	if a.ID == "" {
		return
	}
	switch a.Pickup.Kind {
	case component.PickupAmmo, component.PickupHealth:
	default:
		h.deps.Log.Debug("未知補給種類", zap.String("pickup", a.ID), zap.String("kind", string(a.Pickup.Kind)))
		return
	}
	pos := a.Position
	p := a.Pickup
	h.w.Store().Add(&ecs.Entity{
		ID:       a.ID,
		Position: &pos,
		Pickup:   &p,
	})
}

// ConsumePickup removes the pickup and credits the target. Both additions
// saturate: health at MaxHealth, reserved ammo at the weapon's maximum.
// Consuming a pickup that no longer exists does nothing, which makes a
// duplicated consume harmless.
func (h *applier) ConsumePickup(a *action.ConsumePickup) {
	p := h.w.Get(a.PickupID)
	if p == nil || p.Pickup == nil {
		h.deps.Log.Debug("補給已被拾取", zap.String("pickup", a.PickupID), zap.String("target", a.TargetID))
		return
	}
	payload := *p.Pickup
	h.w.Store().Remove(p.ID)

	target := h.w.Get(a.TargetID)
	if target == nil {
		return
	}
	amount := max(payload.Amount, 0)

	switch payload.Kind {
	case component.PickupHealth:
		if target.Health == nil {
			return
		}
		target.Health.Value = clampInt(target.Health.Value+amount, 0, component.MaxHealth)

	case component.PickupAmmo:
		if target.Shooter == nil {
			return
		}
		weapon := payload.Weapon
		if weapon == "" {
			weapon = target.Shooter.Weapon
		}
		spec := h.deps.Weapons.Get(weapon)
		if spec == nil {
			h.deps.Log.Warn("彈藥補給指定未知武器", zap.String("pickup", a.PickupID), zap.String("weapon", string(weapon)))
			return
		}
		if target.Shooter.Ammo == nil {
			target.Shooter.Ammo = make(map[component.WeaponType]*component.AmmoState)
		}
		ammo := target.Shooter.Ammo[weapon]
		if ammo == nil {
			ammo = &component.AmmoState{}
			target.Shooter.Ammo[weapon] = ammo
		}
		ammo.Reserved = clampInt(ammo.Reserved+amount, 0, spec.MaxReservedAmmo)
	}
}
