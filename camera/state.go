package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// State is the camera pose. Position is the translation applied by the view
// matrix, so the eye sits at -Position in world space.
type State struct {
	Position mgl32.Vec3
	Yaw      float32 // unbounded
	Pitch    float32 // kept inside [PitchMin, PitchMax]
	Roll     float32 // never driven by input
}

// EyePosition returns the world-space eye location.
func (s State) EyePosition() mgl32.Vec3 {
	return s.Position.Mul(-1)
}

// InputSnapshot is the input consumed by a single Step.
type InputSnapshot struct {
	KeysDown   map[int]bool
	MouseDelta mgl32.Vec2
}

func (in InputSnapshot) down(key int) bool {
	return key != Unbound && in.KeysDown[key]
}

// Basis holds the per-frame movement vectors, already scaled by the move speed.
type Basis struct {
	Walk   mgl32.Vec3
	Strafe mgl32.Vec3
	Up     mgl32.Vec3
}

// MovementBasis derives the walk, strafe and up vectors for a yaw angle.
func MovementBasis(axis AxisConvention, yaw, speed float32) Basis {
	sin := float32(math.Sin(float64(yaw)))
	cos := float32(math.Cos(float64(yaw)))

	var b Basis
	switch axis {
	case StandardYUp:
		b.Walk = mgl32.Vec3{-sin, 0, cos}
		b.Strafe = mgl32.Vec3{cos, 0, sin}
		b.Up = mgl32.Vec3{0, 1, 0}
	default:
		b.Walk = mgl32.Vec3{-cos, sin, 0}
		b.Strafe = mgl32.Vec3{-sin, -cos, 0}
		b.Up = mgl32.Vec3{0, 0, 1}
	}
	b.Walk = b.Walk.Mul(speed)
	b.Strafe = b.Strafe.Mul(speed)
	b.Up = b.Up.Mul(speed)
	return b
}

// Step advances the pose by one frame. It has no side effects; resetting the
// consumed mouse delta is the input source's job.
func Step(s State, in InputSnapshot, cfg Config, dt float32) State {
	// 1. Orientation
	dy := in.MouseDelta[1]
	if cfg.InvertY {
		dy = -dy
	}
	s.Yaw += cfg.MouseSensitivity * in.MouseDelta[0]
	s.Pitch = clampPitch(s.Pitch-cfg.MouseSensitivity*dy, cfg)

	// 2. Movement basis
	speed := cfg.MoveSpeed
	if cfg.FrameRateIndependent {
		speed *= dt
	}
	b := MovementBasis(cfg.Axis, s.Yaw, speed)

	// 3. Translation
	var planar, vertical mgl32.Vec3
	keys := cfg.Bindings
	if in.down(keys.Forward) {
		planar = planar.Add(b.Walk)
	}
	if in.down(keys.Back) {
		planar = planar.Sub(b.Walk)
	}
	if in.down(keys.Left) {
		planar = planar.Add(b.Strafe)
	}
	if in.down(keys.Right) {
		planar = planar.Sub(b.Strafe)
	}
	if in.down(keys.Jump) {
		vertical = vertical.Sub(b.Up)
	}
	if in.down(keys.Crouch) {
		vertical = vertical.Add(b.Up)
	}

	if cfg.NormalizeDiagonal {
		if l := planar.Len(); l > 1e-6 {
			planar = planar.Mul(speed / l)
		}
	}

	s.Position = s.Position.Add(planar).Add(vertical)
	return s
}

func clampPitch(p float32, cfg Config) float32 {
	if p < cfg.PitchMin {
		return cfg.PitchMin
	}
	if p > cfg.PitchMax {
		return cfg.PitchMax
	}
	if p != p { // NaN from a NaN mouse delta
		return mgl32.Clamp(0, cfg.PitchMin, cfg.PitchMax)
	}
	return p
}
