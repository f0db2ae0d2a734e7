package system

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/data"
	"go.uber.org/zap"
)

// ProjectileSystem disposes of projectiles that expire or leave open space
// and detects hits for projectiles fired by the local avatar. Hit detection is
// owner-side: only the peer whose avatar fired (the one carrying Input) tests
// the projectile against avatars and emits AvatarHit.
//
// Runs after MovementSystem; the swept segment is the distance covered this tick.
type ProjectileSystem struct {
	projectiles *ecs.Family
	avatars     *ecs.Family
	level       *data.Level // nil = lifetime only
	emit        Emitter     // nil = no hit detection (server)
	log         *zap.Logger
}

func NewProjectileSystem(w *ecs.World, level *data.Level, emit Emitter, log *zap.Logger) *ProjectileSystem {
	return &ProjectileSystem{
		projectiles: ecs.NewFamily(w.Store(), ecs.Require(ecs.Projectile, ecs.Position, ecs.Velocity)),
		avatars:     ecs.NewFamily(w.Store(), ecs.Require(ecs.Avatar, ecs.Position, ecs.Health)),
		level:       level,
		emit:        emit,
		log:         log,
	}
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) {
	now := w.Elapsed()
	s.projectiles.Each(func(p *ecs.Entity) {
		if s.emit != nil && s.ownedLocally(w, p) {
			if s.detectHit(p, dt) {
				return
			}
		}
		if now-p.Projectile.SpawnedAt >= component.ProjectileLifetime {
			w.MarkForDestruction(p.ID)
			return
		}
		if s.level != nil && s.level.Blocked(*p.Position) {
			s.log.Debug("projectile blocked", zap.String("id", p.ID), zap.Any("cell", s.level.CellAt(*p.Position)))
			w.MarkForDestruction(p.ID)
		}
	})
}

func (s *ProjectileSystem) ownedLocally(w *ecs.World, p *ecs.Entity) bool {
	shooter := w.Get(p.Projectile.ShooterID)
	return shooter != nil && shooter.Input != nil
}

// detectHit sweeps the projectile over the last step and reports the first
// avatar it crossed. The hit and the projectile removal are emitted together.
func (s *ProjectileSystem) detectHit(p *ecs.Entity, dt float64) bool {
	end := *p.Position
	start := end.Sub(p.Velocity.Scale(float32(dt)))

	var (
		target   *ecs.Entity
		bestT    float32 = 2
		headshot bool
	)
	s.avatars.Each(func(a *ecs.Entity) {
		if a.ID == p.Projectile.ShooterID || a.Avatar.Dead || a.Health.Value <= 0 {
			return
		}
		t, h, ok := sweepCapsule(start, end, *a.Position)
		if ok && t < bestT {
			target, bestT, headshot = a, t, h >= component.HeadHeight
		}
	})
	if target == nil {
		return false
	}
	s.log.Debug("命中判定",
		zap.String("projectile", p.ID),
		zap.String("target", target.ID),
		zap.Bool("headshot", headshot),
	)
	s.emit.Emit(&action.AvatarHit{
		ShooterID: p.Projectile.ShooterID,
		TargetID:  target.ID,
		Headshot:  headshot,
	})
	s.emit.Emit(&action.RemoveEntity{ID: p.ID})
	return true
}

// sweepCapsule tests segment start→end against an upright avatar capsule
// standing at feet. It returns the segment parameter of closest horizontal
// approach and the height above the feet at that point.
func sweepCapsule(start, end, feet component.Vec3) (t, height float32, hit bool) {
	d := end.Sub(start)
	dd := d.X*d.X + d.Z*d.Z
	if dd > 0 {
		t = ((feet.X-start.X)*d.X + (feet.Z-start.Z)*d.Z) / dd
		t = max(0, min(1, t))
	}
	c := start.Add(d.Scale(t))
	dx, dz := c.X-feet.X, c.Z-feet.Z
	if dx*dx+dz*dz > component.AvatarRadius*component.AvatarRadius {
		return 0, 0, false
	}
	height = c.Y - feet.Y
	if height < 0 || height > component.AvatarHeight {
		return 0, 0, false
	}
	return t, height, true
}
