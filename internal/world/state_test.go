package world

import (
	"testing"

	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/handler"
)

type tickCounter struct{ seen []float64 }

func (c *tickCounter) Update(w *ecs.World, _ float64) { c.seen = append(c.seen, w.Elapsed()) }

func TestTickAdvancesBeforeSystems(t *testing.T) {
	s := NewState(handler.NewDispatcher(handler.Deps{}))
	c := &tickCounter{}
	s.Register(c)
	s.Tick(0.5)
	s.Tick(0.25)
	if len(c.seen) != 2 || c.seen[0] != 0.5 || c.seen[1] != 0.75 {
		t.Errorf("elapsed seen by system = %v", c.seen)
	}
}

func TestOwnershipQueries(t *testing.T) {
	s := NewState(handler.NewDispatcher(handler.Deps{}))
	s.Apply(&action.SpawnEnemyAvatar{AvatarSpawn: action.AvatarSpawn{PlayerID: "p1", AvatarID: "a1"}})
	s.Apply(&action.SpawnEnemyAvatar{AvatarSpawn: action.AvatarSpawn{PlayerID: "p2", AvatarID: "a2"}})
	s.Apply(&action.EmitProjectile{ID: "b1", ShooterID: "a1", Velocity: component.Vec3{Z: 1}})
	s.Apply(&action.SpawnPickup{ID: "k1", Pickup: component.Pickup{Kind: component.PickupHealth, Amount: 10}})

	if s.AvatarOf("p2") == nil || s.AvatarOf("p2").ID != "a2" {
		t.Error("AvatarOf(p2) did not return a2")
	}
	if s.AvatarOf("nobody") != nil {
		t.Error("AvatarOf(nobody) returned an avatar")
	}
	owned := s.OwnedBy("p1")
	if len(owned) != 2 {
		t.Errorf("OwnedBy(p1) = %v, want avatar and projectile", owned)
	}
	if s.Pickups().Len() != 1 || s.Avatars().Len() != 2 {
		t.Errorf("pickups=%d avatars=%d", s.Pickups().Len(), s.Avatars().Len())
	}
}
