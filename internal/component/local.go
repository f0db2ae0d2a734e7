package component

// The components below only exist on the avatar controlled by this process.

// Input is written by the input collaborator (keyboard, bot) and read by the
// input and shooter systems.
type Input struct {
	MoveX  float32 // strafe axis, -1..1
	MoveZ  float32 // forward axis, -1..1
	Pitch  float32
	Yaw    float32
	Fire   bool
	Reload bool
	SwapTo WeaponType // empty = no request
}

// CameraShake is raised by a hit and cleared once Until passes.
type CameraShake struct {
	Active bool
	Until  float64
}

// HitIndicator points the HUD at the last shooter.
type HitIndicator struct {
	Active bool
	Origin Vec3
	Time   float64
}
