package component

// Health is clamped to [0, MaxHealth] after every mutation.
type Health struct {
	Value int
}

// AmmoState is the per-weapon ammo pair. Both fields are clamped:
// Loaded to [0, magazine size], Reserved to [0, max reserved].
type AmmoState struct {
	Loaded   int
	Reserved int
}

// Shooter is the weapon state of an avatar. Swap, reload and fire rate are
// deadline fields compared against world elapsed time; zero means idle.
type Shooter struct {
	Weapon      WeaponType
	Ammo        map[WeaponType]*AmmoState
	SwapUntil   float64
	ReloadUntil float64
	NextShotAt  float64
}

// CurrentAmmo returns the ammo state of the held weapon, or nil.
func (s *Shooter) CurrentAmmo() *AmmoState {
	if s.Ammo == nil {
		return nil
	}
	return s.Ammo[s.Weapon]
}

// Projectile is a bullet in flight.
type Projectile struct {
	ShooterID string
	Weapon    WeaponType
	SpawnedAt float64
}

// Sound is a transient emitter read by the audio collaborator.
type Sound struct {
	Name      string
	SourceID  string
	StartedAt float64
}
