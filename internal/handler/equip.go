package handler

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"go.uber.org/zap"
)

// SwapWeapon switches the held weapon. The avatar cannot fire until
// SwapUntil passes; a reload in progress is cancelled.
func (h *applier) SwapWeapon(a *action.SwapWeapon) {
	e := h.w.Get(a.AvatarID)
	if e == nil || e.Shooter == nil {
		return
	}
	spec := h.deps.Weapons.Get(a.Weapon)
	if spec == nil {
		h.deps.Log.Debug("未知武器，忽略切換", zap.String("avatar", a.AvatarID), zap.String("weapon", string(a.Weapon)))
		return
	}
	if e.Shooter.Weapon == a.Weapon {
		return
	}
	e.Shooter.Weapon = a.Weapon
	e.Shooter.SwapUntil = h.w.Elapsed() + spec.SwapTime
	e.Shooter.ReloadUntil = 0
	if e.Shooter.Ammo == nil {
		e.Shooter.Ammo = make(map[component.WeaponType]*component.AmmoState)
	}
	if e.Shooter.Ammo[a.Weapon] == nil {
		e.Shooter.Ammo[a.Weapon] = &component.AmmoState{}
	}
}
