package component

// Gameplay constants shared by handlers and systems on every peer.
const (
	MaxHealth          = 100
	HeadshotMultiplier = 3

	ProjectileSpeed    float32 = 60 // units per second
	ProjectileLifetime         = 3.0

	AvatarMoveSpeed float32 = 6
	AvatarRadius    float32 = 0.4
	AvatarHeight    float32 = 1.8
	HeadHeight      float32 = 1.5 // hits above this height are headshots
	EyeHeight       float32 = 1.6
	PickupRadius    float32 = 1.0

	CameraShakeDuration  = 0.25
	HitIndicatorDuration = 1.5
	SoundLifetime        = 2.0
)
