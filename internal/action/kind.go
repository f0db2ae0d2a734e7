package action

import "fmt"

// Kind is the wire tag of an action. Values are stable: they are written as a
// two-digit decimal header, so they must stay below 100.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSpawnLocalAvatar
	KindSpawnEnemyAvatar
	KindRemoveEntity
	KindAvatarTransform
	KindAvatarHit
	KindAvatarDeath
	KindEmitProjectile
	KindSpawnPickup
	KindConsumePickup
	KindPlaySound
	KindSwapWeapon
	KindRespawnAvatar

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindSpawnLocalAvatar:
		return "SpawnLocalAvatar"
	case KindSpawnEnemyAvatar:
		return "SpawnEnemyAvatar"
	case KindRemoveEntity:
		return "RemoveEntity"
	case KindAvatarTransform:
		return "AvatarTransform"
	case KindAvatarHit:
		return "AvatarHit"
	case KindAvatarDeath:
		return "AvatarDeath"
	case KindEmitProjectile:
		return "EmitProjectile"
	case KindSpawnPickup:
		return "SpawnPickup"
	case KindConsumePickup:
		return "ConsumePickup"
	case KindPlaySound:
		return "PlaySound"
	case KindSwapWeapon:
		return "SwapWeapon"
	case KindRespawnAvatar:
		return "RespawnAvatar"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Valid reports whether k names a known action.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// New returns an empty action of kind k, ready to be decoded into.
// Returns nil for unknown kinds.
func New(k Kind) Action {
	switch k {
	case KindSpawnLocalAvatar:
		return &SpawnLocalAvatar{}
	case KindSpawnEnemyAvatar:
		return &SpawnEnemyAvatar{}
	case KindRemoveEntity:
		return &RemoveEntity{}
	case KindAvatarTransform:
		return &AvatarTransform{}
	case KindAvatarHit:
		return &AvatarHit{}
	case KindAvatarDeath:
		return &AvatarDeath{}
	case KindEmitProjectile:
		return &EmitProjectile{}
	case KindSpawnPickup:
		return &SpawnPickup{}
	case KindConsumePickup:
		return &ConsumePickup{}
	case KindPlaySound:
		return &PlaySound{}
	case KindSwapWeapon:
		return &SwapWeapon{}
	case KindRespawnAvatar:
		return &RespawnAvatar{}
	default:
		return nil
	}
}
