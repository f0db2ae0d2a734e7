package server

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/core/event"
	"go.uber.org/zap"
)

// spawnSystem checks the spawn and respawn deadlines of every player.
type spawnSystem struct {
	hub *Hub
}

func (s *spawnSystem) Update(w *ecs.World, _ float64) {
	now := w.Elapsed()
	h := s.hub
	// Spawning appends nothing to order, so iterating it directly is safe.
	for _, p := range h.order {
		switch {
		case !p.spawned && now >= p.spawnAt:
			h.spawn(p)
		case p.respawnAt > 0 && now >= p.respawnAt:
			h.respawn(p)
		}
	}
}

// spawn creates the player's avatar, announces it, and replays the current
// world to the newcomer.
func (h *Hub) spawn(p *player) {
	payload := action.AvatarSpawn{
		PlayerID: p.id,
		AvatarID: h.newEntityID(),
		Position: h.level.SampleSpawn(h.rng),
	}
	if !h.apply(&action.SpawnEnemyAvatar{AvatarSpawn: payload}) {
		return
	}
	p.avatarID = payload.AvatarID
	p.spawned = true

	h.sendTo(p, &action.SpawnLocalAvatar{AvatarSpawn: payload})
	h.broadcast(&action.SpawnEnemyAvatar{AvatarSpawn: payload}, p)
	h.replay(p)

	event.Emit(h.bus, event.PlayerJoined{PlayerID: p.id, AvatarID: p.avatarID})
	h.log.Info("avatar spawned",
		zap.String("player", p.id),
		zap.String("avatar", p.avatarID),
		zap.Float32("x", payload.Position.X),
		zap.Float32("z", payload.Position.Z),
	)
}

// replay sends the newcomer every other avatar in its current state and
// every live pickup.
func (h *Hub) replay(p *player) {
	defaultWeapon := h.state.Weapons().Default()
	for id, e := range h.state.Avatars().Members() {
		if id == p.avatarID {
			continue
		}
		enemy := &action.SpawnEnemyAvatar{AvatarSpawn: action.AvatarSpawn{
			PlayerID: e.Avatar.PlayerID,
			AvatarID: id,
			Position: *e.Position,
		}}
		if e.Health != nil {
			enemy.Health = e.Health.Value
		}
		h.sendTo(p, enemy)
		if e.Velocity != nil && e.Rotation != nil {
			h.sendTo(p, &action.AvatarTransform{
				ID:       id,
				Position: *e.Position,
				Velocity: *e.Velocity,
				Rotation: *e.Rotation,
			})
		}
		if e.Shooter != nil && e.Shooter.Weapon != defaultWeapon {
			h.sendTo(p, &action.SwapWeapon{AvatarID: id, Weapon: e.Shooter.Weapon})
		}
		if e.Avatar.Dead {
			h.sendTo(p, &action.AvatarDeath{VictimID: id, KillerID: id})
		}
	}
	for id, e := range h.state.Pickups().Members() {
		h.sendTo(p, &action.SpawnPickup{ID: id, Position: *e.Position, Pickup: *e.Pickup})
	}
}

func (h *Hub) respawn(p *player) {
	p.respawnAt = 0
	a := &action.RespawnAvatar{
		AvatarID: p.avatarID,
		Position: h.level.SampleSpawn(h.rng),
	}
	if h.apply(a) {
		h.broadcast(a, nil)
	}
}

// pickupSpawner refills empty level pickup spots every interval.
type pickupSpawner struct {
	hub      *Hub
	interval float64
}

func (s *pickupSpawner) UpdateInterval() float64 { return s.interval }

func (s *pickupSpawner) Update(_ *ecs.World, _ float64) {
	s.hub.spawnPickups()
}

func (h *Hub) spawnPickups() {
	for i, spot := range h.level.PickupSpots() {
		if id := h.spotPickups[i]; id != "" && h.state.Get(id) != nil {
			continue
		}
		a := &action.SpawnPickup{
			ID:       h.newEntityID(),
			Position: h.level.CellPosition(spot.Cell),
			Pickup:   spot.Pickup,
		}
		if !h.apply(a) {
			continue
		}
		h.spotPickups[i] = a.ID
		h.broadcast(a, nil)
	}
}
