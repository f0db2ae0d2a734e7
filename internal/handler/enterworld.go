package handler

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/data"
	"go.uber.org/zap"
)

// NewLoadout returns the spawn weapon state: every weapon with a full
// magazine and twice a magazine in reserve, capped at the weapon's maximum.
func NewLoadout(weapons *data.WeaponTable) *component.Shooter {
	s := &component.Shooter{
		Weapon: weapons.Default(),
		Ammo:   make(map[component.WeaponType]*component.AmmoState, weapons.Count()),
	}
	for _, name := range weapons.Names() {
		spec := weapons.Get(name)
		s.Ammo[name] = &component.AmmoState{
			Loaded:   spec.MagazineSize,
			Reserved: min(2*spec.MagazineSize, spec.MaxReservedAmmo),
		}
	}
	return s
}

func (h *applier) newAvatar(a *action.AvatarSpawn) *ecs.Entity {
	pos := a.Position
	return &ecs.Entity{
		ID:       a.AvatarID,
		Position: &pos,
		Velocity: &component.Vec3{},
		Rotation: &component.Vec2{},
		Health:   &component.Health{Value: component.MaxHealth},
		Shooter:  NewLoadout(h.deps.Weapons),
		Owner:    &component.Owner{PlayerID: a.PlayerID},
		Avatar:   &component.Avatar{PlayerID: a.PlayerID},
	}
}

// SpawnLocalAvatar creates the avatar controlled by this peer, with the
// input and presentation components only the controlling peer needs.
func (h *applier) SpawnLocalAvatar(a *action.SpawnLocalAvatar) {
	if a.AvatarID == "" {
		h.deps.Log.Warn("本地角色缺少編號", zap.String("player", a.PlayerID))
		return
	}
	e := h.newAvatar(&a.AvatarSpawn)
	e.Input = &component.Input{}
	e.CameraShake = &component.CameraShake{}
	e.HitIndicator = &component.HitIndicator{}
	e.Outbox = &action.Outbox{}
	h.w.Store().Add(e)
	h.deps.Log.Info("本地角色進入世界", zap.String("avatar", a.AvatarID), zap.String("player", a.PlayerID))
}

// SpawnEnemyAvatar creates an avatar driven by remote transform updates.
func (h *applier) SpawnEnemyAvatar(a *action.SpawnEnemyAvatar) {
	if a.AvatarID == "" {
		h.deps.Log.Warn("敵方角色缺少編號", zap.String("player", a.PlayerID))
		return
	}
	e := h.newAvatar(&a.AvatarSpawn)
	if a.Health > 0 {
		e.Health.Value = min(a.Health, component.MaxHealth)
	}
	h.w.Store().Add(e)
}
