package client

import (
	"math"
	"math/rand/v2"

	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
)

// Bot fills the local avatar's input: it wanders, turns to face the nearest
// living enemy in range and fires at it.
type Bot struct {
	rng       *rand.Rand
	Range     float32 // engagement distance
	turnEvery float64
	nextTurn  float64
	wander    float32
}

func NewBot(seed uint64) *Bot {
	return &Bot{
		rng:       rand.New(rand.NewPCG(seed, seed+1)),
		Range:     20,
		turnEvery: 2,
	}
}

// YawTowards returns the yaw that looks along d in the XZ plane. Yaw 0 looks
// down -Z.
func YawTowards(d component.Vec3) float32 {
	return float32(math.Atan2(float64(-d.X), float64(-d.Z)))
}

// Drive is a frame callback for Replicator.Run.
func (b *Bot) Drive(r *Replicator) {
	local := r.Local()
	if local == nil || local.Avatar.Dead {
		return
	}
	in := local.Input
	now := r.State().Elapsed()

	if target := b.nearestEnemy(r, local); target != nil {
		in.Yaw = YawTowards(target.Position.Sub(*local.Position))
		in.MoveZ = 0
		in.MoveX = 0
		in.Fire = true
		return
	}
	in.Fire = false

	if now >= b.nextTurn {
		b.nextTurn = now + b.turnEvery
		b.wander = float32(b.rng.Float64()*2*math.Pi - math.Pi)
		if ammo := local.Shooter.CurrentAmmo(); ammo != nil && ammo.Loaded == 0 && ammo.Reserved == 0 {
			in.SwapTo = b.pickLoadedWeapon(local.Shooter)
		}
	}
	in.Yaw = b.wander
	in.MoveZ = 1
}

func (b *Bot) nearestEnemy(r *Replicator, local *ecs.Entity) *ecs.Entity {
	var best *ecs.Entity
	bestDist := b.Range
	for id, e := range r.State().Avatars().Members() {
		if id == local.ID || e.Avatar.Dead {
			continue
		}
		if d := e.Position.Sub(*local.Position).Length(); d <= bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func (b *Bot) pickLoadedWeapon(s *component.Shooter) component.WeaponType {
	for w, ammo := range s.Ammo {
		if w != s.Weapon && ammo.Loaded+ammo.Reserved > 0 {
			return w
		}
	}
	return ""
}
