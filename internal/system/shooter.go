package system

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/data"
	"go.uber.org/zap"
)

// ShooterSystem drives the weapon of the local avatar: swap requests,
// reload and fire rate deadlines, and magazine bookkeeping. Shots are emitted
// as EmitProjectile and PlaySound actions.
type ShooterSystem struct {
	shooters *ecs.Family
	weapons  *data.WeaponTable
	emit     Emitter
	newID    IDFunc
	log      *zap.Logger
}

func NewShooterSystem(w *ecs.World, weapons *data.WeaponTable, emit Emitter, newID IDFunc, log *zap.Logger) *ShooterSystem {
	if newID == nil {
		newID = NewUUID
	}
	return &ShooterSystem{
		shooters: ecs.NewFamily(w.Store(),
			ecs.Require(ecs.Input, ecs.Shooter, ecs.Position, ecs.Rotation, ecs.Avatar)),
		weapons: weapons,
		emit:    emit,
		newID:   newID,
		log:     log,
	}
}

func (s *ShooterSystem) Update(w *ecs.World, _ float64) {
	now := w.Elapsed()
	s.shooters.Each(func(e *ecs.Entity) {
		if e.Avatar.Dead {
			return
		}
		s.update(e, now)
	})
}

func (s *ShooterSystem) update(e *ecs.Entity, now float64) {
	in, sh := e.Input, e.Shooter

	if in.SwapTo != "" {
		if in.SwapTo != sh.Weapon && s.weapons.Get(in.SwapTo) != nil {
			s.log.Debug("切換武器", zap.String("avatar", e.ID), zap.String("weapon", string(in.SwapTo)))
			s.emit.Emit(&action.SwapWeapon{AvatarID: e.ID, Weapon: in.SwapTo})
		}
		in.SwapTo = ""
	}

	spec := s.weapons.Get(sh.Weapon)
	ammo := sh.CurrentAmmo()
	if spec == nil || ammo == nil {
		return
	}

	if sh.ReloadUntil > 0 {
		if now < sh.ReloadUntil {
			return
		}
		take := min(spec.MagazineSize-ammo.Loaded, ammo.Reserved)
		ammo.Loaded += take
		ammo.Reserved -= take
		sh.ReloadUntil = 0
		s.log.Debug("換彈完成",
			zap.String("avatar", e.ID),
			zap.Int("loaded", ammo.Loaded),
			zap.Int("reserved", ammo.Reserved),
		)
	}
	if now < sh.SwapUntil {
		return
	}

	if in.Reload {
		in.Reload = false
		if ammo.Loaded < spec.MagazineSize && ammo.Reserved > 0 {
			sh.ReloadUntil = now + spec.ReloadTime
			s.log.Debug("開始換彈", zap.String("avatar", e.ID), zap.Float64("until", sh.ReloadUntil))
			return
		}
	}

	if !in.Fire || now < sh.NextShotAt {
		return
	}
	if ammo.Loaded <= 0 {
		s.log.Debug("彈匣已空",
			zap.String("avatar", e.ID),
			zap.String("weapon", string(sh.Weapon)),
			zap.Int("reserved", ammo.Reserved),
		)
		if ammo.Reserved > 0 {
			sh.ReloadUntil = now + spec.ReloadTime
		}
		return
	}

	ammo.Loaded--
	sh.NextShotAt = now + spec.FireInterval

	dir := aimDirection(*e.Rotation)
	eye := e.Position.Add(component.Vec3{Y: component.EyeHeight})
	muzzle := eye.Add(dir.Scale(component.AvatarRadius + 0.1))

	s.emit.Emit(&action.EmitProjectile{
		ID:        s.newID(),
		ShooterID: e.ID,
		Weapon:    sh.Weapon,
		Position:  muzzle,
		Velocity:  dir,
	})
	if spec.FireSound != "" {
		s.emit.Emit(&action.PlaySound{
			ID:       s.newID(),
			Name:     spec.FireSound,
			SourceID: e.ID,
			Position: *e.Position,
		})
	}
}
