package handler

import (
	"testing"

	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/data"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestWorld(t *testing.T) (*ecs.World, *Dispatcher) {
	t.Helper()
	return ecs.NewWorld(), NewDispatcher(Deps{})
}

func spawn(t *testing.T, w *ecs.World, d *Dispatcher, local bool, player, avatar string) *ecs.Entity {
	t.Helper()
	payload := action.AvatarSpawn{PlayerID: player, AvatarID: avatar}
	var a action.Action = &action.SpawnEnemyAvatar{AvatarSpawn: payload}
	if local {
		a = &action.SpawnLocalAvatar{AvatarSpawn: payload}
	}
	if err := d.Dispatch(w, a); err != nil {
		t.Fatalf("spawn %s: %v", avatar, err)
	}
	e := w.Get(avatar)
	if e == nil {
		t.Fatalf("avatar %s not spawned", avatar)
	}
	return e
}

func TestSpawnLoadout(t *testing.T) {
	w, d := newTestWorld(t)
	e := spawn(t, w, d, true, "p1", "a1")

	if e.Health.Value != component.MaxHealth {
		t.Errorf("health = %d", e.Health.Value)
	}
	if e.Input == nil || e.Outbox == nil || e.CameraShake == nil {
		t.Error("local avatar is missing its local-only components")
	}
	if e.Shooter.Weapon != "rifle" {
		t.Errorf("spawn weapon = %s, want rifle", e.Shooter.Weapon)
	}
	rifle := e.Shooter.Ammo["rifle"]
	if rifle.Loaded != 30 || rifle.Reserved != 60 {
		t.Errorf("rifle ammo = %+v", *rifle)
	}
	sniper := e.Shooter.Ammo["sniper"]
	if sniper.Loaded != 5 || sniper.Reserved != 10 {
		t.Errorf("sniper ammo = %+v", *sniper)
	}

	enemy := spawn(t, w, d, false, "p2", "a2")
	if enemy.Input != nil || enemy.Outbox != nil {
		t.Error("enemy avatar must not carry local-only components")
	}
}

func TestReplayedEnemyKeepsHealth(t *testing.T) {
	w, d := newTestWorld(t)
	d.Dispatch(w, &action.SpawnEnemyAvatar{AvatarSpawn: action.AvatarSpawn{PlayerID: "p1", AvatarID: "a1"}, Health: 40})
	if got := w.Get("a1").Health.Value; got != 40 {
		t.Errorf("replayed health = %d, want 40", got)
	}
	d.Dispatch(w, &action.SpawnEnemyAvatar{AvatarSpawn: action.AvatarSpawn{PlayerID: "p2", AvatarID: "a2"}, Health: 500})
	if got := w.Get("a2").Health.Value; got != component.MaxHealth {
		t.Errorf("health above the maximum = %d, want %d", got, component.MaxHealth)
	}
}

func TestHitDamageAndHeadshot(t *testing.T) {
	w, d := newTestWorld(t)
	spawn(t, w, d, false, "p1", "shooter")
	target := spawn(t, w, d, true, "p2", "target")

	d.Dispatch(w, &action.AvatarHit{ShooterID: "shooter", TargetID: "target"})
	if target.Health.Value != 80 {
		t.Fatalf("after body shot health = %d, want 80", target.Health.Value)
	}
	if !target.CameraShake.Active || !target.HitIndicator.Active {
		t.Error("hit did not trigger camera shake and hit indicator")
	}

	d.Dispatch(w, &action.AvatarHit{ShooterID: "shooter", TargetID: "target", Headshot: true})
	if target.Health.Value != 20 {
		t.Fatalf("after headshot health = %d, want 20", target.Health.Value)
	}

	d.Dispatch(w, &action.AvatarHit{ShooterID: "shooter", TargetID: "target", Headshot: true})
	if target.Health.Value != 0 {
		t.Fatalf("health = %d, want clamp at 0", target.Health.Value)
	}

	d.Dispatch(w, &action.AvatarHit{ShooterID: "shooter", TargetID: "target"})
	if target.Health.Value != 0 {
		t.Errorf("hit on a dead target changed health to %d", target.Health.Value)
	}
}

func TestHitWithMissingEntitiesIsNoop(t *testing.T) {
	w, d := newTestWorld(t)
	target := spawn(t, w, d, false, "p2", "target")

	if err := d.Dispatch(w, &action.AvatarHit{ShooterID: "ghost", TargetID: "target"}); err != nil {
		t.Fatal(err)
	}
	if err := d.Dispatch(w, &action.AvatarHit{ShooterID: "target", TargetID: "ghost"}); err != nil {
		t.Fatal(err)
	}
	if target.Health.Value != component.MaxHealth {
		t.Errorf("health changed to %d", target.Health.Value)
	}
}

func TestAmmoPickupSaturates(t *testing.T) {
	w, d := newTestWorld(t)
	e := spawn(t, w, d, true, "p1", "a1")

	for i, id := range []string{"k1", "k2", "k3"} {
		d.Dispatch(w, &action.SpawnPickup{
			ID:     id,
			Pickup: component.Pickup{Kind: component.PickupAmmo, Amount: 50},
		})
		d.Dispatch(w, &action.ConsumePickup{PickupID: id, TargetID: "a1"})
		if w.Get(id) != nil {
			t.Fatalf("pickup %d still present after consume", i)
		}
	}
	if got := e.Shooter.Ammo["rifle"].Reserved; got != 120 {
		t.Errorf("reserved = %d, want saturation at 120", got)
	}
}

func TestAmmoPickupForUnheldWeapon(t *testing.T) {
	w, d := newTestWorld(t)
	e := spawn(t, w, d, true, "p1", "a1")
	delete(e.Shooter.Ammo, "pistol")

	d.Dispatch(w, &action.SpawnPickup{
		ID:     "k",
		Pickup: component.Pickup{Kind: component.PickupAmmo, Amount: 100, Weapon: "pistol"},
	})
	d.Dispatch(w, &action.ConsumePickup{PickupID: "k", TargetID: "a1"})

	ammo := e.Shooter.Ammo["pistol"]
	if ammo == nil || ammo.Reserved != 48 {
		t.Errorf("pistol ammo = %+v, want reserved 48", ammo)
	}
}

func TestHealthPickupCapsAndConsumesOnce(t *testing.T) {
	w, d := newTestWorld(t)
	e := spawn(t, w, d, true, "p1", "a1")
	e.Health.Value = 90

	d.Dispatch(w, &action.SpawnPickup{
		ID:     "h",
		Pickup: component.Pickup{Kind: component.PickupHealth, Amount: 50},
	})
	consume := &action.ConsumePickup{PickupID: "h", TargetID: "a1"}
	d.Dispatch(w, consume)
	if e.Health.Value != component.MaxHealth {
		t.Fatalf("health = %d, want %d", e.Health.Value, component.MaxHealth)
	}

	e.Health.Value = 10
	d.Dispatch(w, consume)
	if e.Health.Value != 10 {
		t.Errorf("duplicate consume changed health to %d", e.Health.Value)
	}
}

func TestSpawnPickupRejectsUnknownKind(t *testing.T) {
	w, d := newTestWorld(t)
	d.Dispatch(w, &action.SpawnPickup{ID: "x", Pickup: component.Pickup{Kind: "armor", Amount: 1}})
	if w.Get("x") != nil {
		t.Error("pickup with unknown kind was spawned")
	}
}

func TestIgnoredActionsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w, d := ecs.NewWorld(), NewDispatcher(Deps{Log: zap.New(core)})
	spawn(t, w, d, false, "p1", "a1")

	d.Dispatch(w, &action.SpawnPickup{ID: "x", Pickup: component.Pickup{Kind: "armor"}})
	d.Dispatch(w, &action.ConsumePickup{PickupID: "gone", TargetID: "a1"})
	d.Dispatch(w, &action.AvatarHit{ShooterID: "a1", TargetID: "ghost"})
	d.Dispatch(w, &action.SwapWeapon{AvatarID: "a1", Weapon: "railgun"})
	d.Dispatch(w, &action.RemoveEntity{ID: "ghost"})

	for _, msg := range []string{"未知補給種類", "補給已被拾取", "命中目標不存在", "未知武器，忽略切換", "移除不存在的實體"} {
		if n := logs.FilterMessage(msg).Len(); n != 1 {
			t.Errorf("%q logged %d times, want 1", msg, n)
		}
	}
	if entries := logs.FilterMessage("未知補給種類").All(); len(entries) == 1 && entries[0].ContextMap()["kind"] != "armor" {
		t.Errorf("kind field = %v", entries[0].ContextMap()["kind"])
	}
}

func TestTransformSkipsMissingComponents(t *testing.T) {
	w, d := newTestWorld(t)
	w.Store().Add(&ecs.Entity{ID: "p", Position: &component.Vec3{}})

	d.Dispatch(w, &action.AvatarTransform{
		ID:       "p",
		Position: component.Vec3{X: 1, Y: 2, Z: 3},
		Velocity: component.Vec3{X: 9},
		Rotation: component.Vec2{X: 0.5},
	})
	e := w.Get("p")
	if *e.Position != (component.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("position = %+v", *e.Position)
	}
	if e.Velocity != nil || e.Rotation != nil {
		t.Error("transform created components the entity did not have")
	}

	if err := d.Dispatch(w, &action.AvatarTransform{ID: "ghost"}); err != nil {
		t.Errorf("transform for unknown id: %v", err)
	}
}

func TestEmitProjectileNormalizesVelocity(t *testing.T) {
	w, d := newTestWorld(t)
	spawn(t, w, d, true, "p1", "a1")

	d.Dispatch(w, &action.EmitProjectile{
		ID:        "b1",
		ShooterID: "a1",
		Weapon:    "rifle",
		Velocity:  component.Vec3{Z: -2},
	})
	b := w.Get("b1")
	if b == nil || b.Projectile == nil {
		t.Fatal("projectile not spawned")
	}
	if *b.Velocity != (component.Vec3{Z: -component.ProjectileSpeed}) {
		t.Errorf("velocity = %+v", *b.Velocity)
	}
	if b.Owner == nil || b.Owner.PlayerID != "p1" {
		t.Error("projectile did not inherit the shooter's owner")
	}
}

func TestDeathAndRespawn(t *testing.T) {
	w, d := newTestWorld(t)
	killer := spawn(t, w, d, false, "p1", "k")
	victim := spawn(t, w, d, true, "p2", "v")
	victim.Shooter.Ammo["rifle"].Loaded = 0

	death := &action.AvatarDeath{VictimID: "v", KillerID: "k"}
	d.Dispatch(w, death)
	d.Dispatch(w, death)
	if !victim.Avatar.Dead || victim.Avatar.Deaths != 1 || killer.Avatar.Kills != 1 {
		t.Fatalf("victim=%+v killer=%+v", *victim.Avatar, *killer.Avatar)
	}

	pos := component.Vec3{X: 4, Z: 4}
	d.Dispatch(w, &action.RespawnAvatar{AvatarID: "v", Position: pos})
	if victim.Avatar.Dead || victim.Health.Value != component.MaxHealth {
		t.Errorf("respawned avatar: dead=%v health=%d", victim.Avatar.Dead, victim.Health.Value)
	}
	if *victim.Position != pos {
		t.Errorf("position = %+v", *victim.Position)
	}
	if victim.Shooter.Ammo["rifle"].Loaded != 30 {
		t.Error("respawn did not restore the loadout")
	}
}

func TestSelfKillDoesNotScore(t *testing.T) {
	w, d := newTestWorld(t)
	e := spawn(t, w, d, true, "p1", "a1")
	d.Dispatch(w, &action.AvatarDeath{VictimID: "a1", KillerID: "a1"})
	if e.Avatar.Kills != 0 || e.Avatar.Deaths != 1 {
		t.Errorf("avatar = %+v", *e.Avatar)
	}
}

func TestSwapWeapon(t *testing.T) {
	w, d := newTestWorld(t)
	e := spawn(t, w, d, true, "p1", "a1")
	e.Shooter.ReloadUntil = 5
	w.Advance(1)

	d.Dispatch(w, &action.SwapWeapon{AvatarID: "a1", Weapon: "sniper"})
	if e.Shooter.Weapon != "sniper" {
		t.Fatalf("weapon = %s", e.Shooter.Weapon)
	}
	if e.Shooter.SwapUntil != 1.8 || e.Shooter.ReloadUntil != 0 {
		t.Errorf("swapUntil=%v reloadUntil=%v", e.Shooter.SwapUntil, e.Shooter.ReloadUntil)
	}

	d.Dispatch(w, &action.SwapWeapon{AvatarID: "a1", Weapon: "railgun"})
	if e.Shooter.Weapon != "sniper" {
		t.Error("swap to an unknown weapon was applied")
	}
}

func TestRemoveEntity(t *testing.T) {
	w, d := newTestWorld(t)
	spawn(t, w, d, false, "p1", "a1")
	d.Dispatch(w, &action.RemoveEntity{ID: "a1"})
	d.Dispatch(w, &action.RemoveEntity{ID: "a1"})
	if w.Get("a1") != nil {
		t.Error("entity not removed")
	}
}

type panicRule struct{}

func (panicRule) HitDamage(*data.WeaponSpec, bool) int { panic("boom") }

func TestDispatchRecoversPanic(t *testing.T) {
	w := ecs.NewWorld()
	d := NewDispatcher(Deps{Damage: panicRule{}})
	spawn(t, w, d, false, "p1", "s")
	spawn(t, w, d, false, "p2", "t")

	err := d.Dispatch(w, &action.AvatarHit{ShooterID: "s", TargetID: "t"})
	if err == nil {
		t.Fatal("expected an error from a panicking handler")
	}
	if err := d.Dispatch(w, &action.RemoveEntity{ID: "t"}); err != nil {
		t.Errorf("dispatcher unusable after panic: %v", err)
	}
}
