// Package action defines the closed set of replicated world mutations.
//
// Every action is a pointer to one of the payload structs below. Applying an
// action goes through Handler: adding a kind without adding its Handler method
// breaks the build of every dispatcher.
package action

import "github.com/voxarena/server/internal/component"

// Action is one atomic, replicated world mutation.
type Action interface {
	Kind() Kind
	Accept(h Handler)
}

// Handler receives an action through double dispatch.
type Handler interface {
	SpawnLocalAvatar(a *SpawnLocalAvatar)
	SpawnEnemyAvatar(a *SpawnEnemyAvatar)
	RemoveEntity(a *RemoveEntity)
	AvatarTransform(a *AvatarTransform)
	AvatarHit(a *AvatarHit)
	AvatarDeath(a *AvatarDeath)
	EmitProjectile(a *EmitProjectile)
	SpawnPickup(a *SpawnPickup)
	ConsumePickup(a *ConsumePickup)
	PlaySound(a *PlaySound)
	SwapWeapon(a *SwapWeapon)
	RespawnAvatar(a *RespawnAvatar)
}

// AvatarSpawn is the payload shared by both spawn variants.
type AvatarSpawn struct {
	PlayerID string         `json:"playerId"`
	AvatarID string         `json:"avatarId"`
	Position component.Vec3 `json:"position"`
}

// SpawnLocalAvatar creates the avatar the receiving peer controls.
type SpawnLocalAvatar struct {
	AvatarSpawn
}

// SpawnEnemyAvatar creates an avatar controlled by another peer.
type SpawnEnemyAvatar struct {
	AvatarSpawn
	// Health is the avatar's current health when replayed to a newcomer;
	// zero means full.
	Health int `json:"health,omitempty"`
}

type RemoveEntity struct {
	ID string `json:"id"`
}

// AvatarTransform is the high-frequency movement sync. It always travels
// through the fixed-width packer, never as JSON.
type AvatarTransform struct {
	ID       string         `json:"id"`
	Position component.Vec3 `json:"position"`
	Velocity component.Vec3 `json:"velocity"`
	Rotation component.Vec2 `json:"rotation"`
}

// AvatarHit reports a projectile hit. Damage is never part of the payload:
// every peer derives it from the shooter's weapon and the headshot flag.
type AvatarHit struct {
	ShooterID string `json:"shooterId"`
	TargetID  string `json:"targetId"`
	Headshot  bool   `json:"headshot"`
}

// AvatarDeath is the kill notification. Server generated only.
type AvatarDeath struct {
	VictimID string `json:"victimId"`
	KillerID string `json:"killerId"`
}

type EmitProjectile struct {
	ID        string               `json:"id"`
	ShooterID string               `json:"shooterId"`
	Weapon    component.WeaponType `json:"weapon"`
	Position  component.Vec3       `json:"position"`
	Velocity  component.Vec3       `json:"velocity"`
}

type SpawnPickup struct {
	ID       string           `json:"id"`
	Position component.Vec3   `json:"position"`
	Pickup   component.Pickup `json:"pickup"`
}

type ConsumePickup struct {
	PickupID string `json:"pickupId"`
	TargetID string `json:"targetId"`
}

type PlaySound struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	SourceID string         `json:"sourceId"`
	Position component.Vec3 `json:"position"`
}

type SwapWeapon struct {
	AvatarID string               `json:"avatarId"`
	Weapon   component.WeaponType `json:"weapon"`
}

type RespawnAvatar struct {
	AvatarID string         `json:"avatarId"`
	Position component.Vec3 `json:"position"`
}

// Outbox is the event-outbox component: actions produced locally that still
// have to be sent upstream.
type Outbox struct {
	Pending []Action
}

func (*SpawnLocalAvatar) Kind() Kind { return KindSpawnLocalAvatar }
func (*SpawnEnemyAvatar) Kind() Kind { return KindSpawnEnemyAvatar }
func (*RemoveEntity) Kind() Kind     { return KindRemoveEntity }
func (*AvatarTransform) Kind() Kind  { return KindAvatarTransform }
func (*AvatarHit) Kind() Kind        { return KindAvatarHit }
func (*AvatarDeath) Kind() Kind      { return KindAvatarDeath }
func (*EmitProjectile) Kind() Kind   { return KindEmitProjectile }
func (*SpawnPickup) Kind() Kind      { return KindSpawnPickup }
func (*ConsumePickup) Kind() Kind    { return KindConsumePickup }
func (*PlaySound) Kind() Kind        { return KindPlaySound }
func (*SwapWeapon) Kind() Kind       { return KindSwapWeapon }
func (*RespawnAvatar) Kind() Kind    { return KindRespawnAvatar }

func (a *SpawnLocalAvatar) Accept(h Handler) { h.SpawnLocalAvatar(a) }
func (a *SpawnEnemyAvatar) Accept(h Handler) { h.SpawnEnemyAvatar(a) }
func (a *RemoveEntity) Accept(h Handler)     { h.RemoveEntity(a) }
func (a *AvatarTransform) Accept(h Handler)  { h.AvatarTransform(a) }
func (a *AvatarHit) Accept(h Handler)        { h.AvatarHit(a) }
func (a *AvatarDeath) Accept(h Handler)      { h.AvatarDeath(a) }
func (a *EmitProjectile) Accept(h Handler)   { h.EmitProjectile(a) }
func (a *SpawnPickup) Accept(h Handler)      { h.SpawnPickup(a) }
func (a *ConsumePickup) Accept(h Handler)    { h.ConsumePickup(a) }
func (a *PlaySound) Accept(h Handler)        { h.PlaySound(a) }
func (a *SwapWeapon) Accept(h Handler)       { h.SwapWeapon(a) }
func (a *RespawnAvatar) Accept(h Handler)    { h.RespawnAvatar(a) }
