package component

// WeaponType names an entry of the weapon spec table ("pistol", "rifle", ...).
type WeaponType string

// PickupKind selects what a pickup restores.
type PickupKind string

const (
	PickupAmmo   PickupKind = "ammo"
	PickupHealth PickupKind = "health"
)

// Pickup is the payload of a collectible. Weapon is only meaningful for ammo.
type Pickup struct {
	Kind   PickupKind `json:"kind"`
	Amount int        `json:"amount"`
	Weapon WeaponType `json:"weapon,omitempty"`
}
