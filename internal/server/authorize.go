package server

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/event"
)

// pickupSlack widens the pickup range check to absorb one server tick of
// dead reckoning between a transform and the consume that follows it.
const pickupSlack float32 = 1.5

// authorize validates a client action and overwrites every field the server
// derives itself. Server-generated kinds are never accepted from a client.
func (h *Hub) authorize(p *player, a action.Action) bool {
	avatar := h.state.Get(p.avatarID)
	if avatar == nil || avatar.Avatar == nil {
		return false
	}
	alive := !avatar.Avatar.Dead

	switch a := a.(type) {
	case *action.AvatarTransform:
		return alive && a.ID == p.avatarID

	case *action.EmitProjectile:
		if !alive || a.ID == "" || h.state.Get(a.ID) != nil {
			return false
		}
		a.ShooterID = p.avatarID
		if avatar.Shooter != nil {
			a.Weapon = avatar.Shooter.Weapon
		}
		return true

	case *action.PlaySound:
		if a.ID == "" || h.state.Get(a.ID) != nil {
			return false
		}
		a.SourceID = p.avatarID
		return true

	case *action.SwapWeapon:
		a.AvatarID = p.avatarID
		return alive && h.state.Weapons().Get(a.Weapon) != nil

	case *action.ConsumePickup:
		a.TargetID = p.avatarID
		pk := h.state.Get(a.PickupID)
		if !alive || pk == nil || pk.Pickup == nil || pk.Position == nil {
			return false
		}
		d := pk.Position.Sub(*avatar.Position)
		d.Y = 0
		return d.Length() <= component.PickupRadius+pickupSlack

	case *action.RemoveEntity:
		e := h.state.Get(a.ID)
		return e != nil && a.ID != p.avatarID && e.Owner != nil && e.Owner.PlayerID == p.id

	default:
		return false
	}
}

// resync undoes a rejected action the sender already applied to its own
// replica. Only a consumed pickup that still exists needs it: the sender
// removed it locally and would otherwise never see it again.
func (h *Hub) resync(p *player, a action.Action) {
	c, ok := a.(*action.ConsumePickup)
	if !ok {
		return
	}
	pk := h.state.Get(c.PickupID)
	if pk == nil || pk.Pickup == nil || pk.Position == nil {
		return
	}
	h.sendTo(p, &action.SpawnPickup{ID: pk.ID, Position: *pk.Position, Pickup: *pk.Pickup})
}

// handleHit applies a client-reported hit with the shooter forced to the
// sender's avatar. Damage is derived by the dispatcher from the canonical
// weapon. A hit that takes the target to 0 health is followed by AvatarDeath
// to everyone and schedules the victim's respawn.
func (h *Hub) handleHit(p *player, hit *action.AvatarHit) {
	hit.ShooterID = p.avatarID
	shooter := h.state.Get(p.avatarID)
	if shooter == nil || shooter.Avatar == nil || shooter.Avatar.Dead ||
		shooter.Health == nil || shooter.Health.Value <= 0 {
		return
	}
	if hit.TargetID == hit.ShooterID {
		return
	}
	target := h.state.Get(hit.TargetID)
	if target == nil || target.Avatar == nil || target.Health == nil || target.Health.Value <= 0 {
		return
	}

	if !h.apply(hit) {
		return
	}
	h.broadcast(hit, p)

	if target.Health.Value > 0 {
		return
	}
	death := &action.AvatarDeath{VictimID: target.ID, KillerID: shooter.ID}
	if !h.apply(death) {
		return
	}
	h.broadcast(death, nil)

	if victim := h.playerByAvatar(target.ID); victim != nil {
		victim.respawnAt = h.state.Elapsed() + h.opts.RespawnDelay.Seconds()
	}
	event.Emit(h.bus, event.AvatarKilled{
		KillerPlayerID: shooter.Avatar.PlayerID,
		VictimPlayerID: target.Avatar.PlayerID,
		Headshot:       hit.Headshot,
	})
}
