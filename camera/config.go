package camera

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid camera config")

// AxisConvention selects how the authoring "up" axis maps onto the renderer's.
type AxisConvention int

const (
	// QuakeZUp treats +Z as up and applies a fixed correction so the
	// renderer's Y-up view space sees the level upright.
	QuakeZUp AxisConvention = iota
	// StandardYUp is the plain Y-up convention with no correction.
	StandardYUp
)

func (a AxisConvention) String() string {
	switch a {
	case QuakeZUp:
		return "quake_z_up"
	case StandardYUp:
		return "standard_y_up"
	}
	return fmt.Sprintf("AxisConvention(%d)", int(a))
}

// ParseAxisConvention accepts the names produced by AxisConvention.String.
func ParseAxisConvention(name string) (AxisConvention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "quake_z_up", "z_up":
		return QuakeZUp, nil
	case "standard_y_up", "y_up":
		return StandardYUp, nil
	}
	return 0, fmt.Errorf("%w: unknown axis convention %q", ErrInvalidConfig, name)
}

// Unbound marks an action with no key assigned.
const Unbound = -1

// Bindings maps the six movement actions to key identifiers.
type Bindings struct {
	Forward int
	Back    int
	Left    int
	Right   int
	Jump    int
	Crouch  int
}

// Config is immutable once handed to a Controller.
type Config struct {
	MouseSensitivity float32 // radians per unit of mouse motion
	MoveSpeed        float32 // world units per frame (or per second, see FrameRateIndependent)
	FieldOfView      float32 // vertical, radians
	NearClip         float32
	FarClip          float32
	PitchMin         float32
	PitchMax         float32

	Axis AxisConvention

	// NormalizeDiagonal rescales the combined horizontal movement to MoveSpeed.
	// Off by default: forward+strafe is faster than either alone.
	NormalizeDiagonal bool
	// InvertY flips the sign of the vertical mouse contribution to pitch.
	InvertY bool
	// FrameRateIndependent scales each step by dt. Off by default, in which case
	// every frame moves exactly MoveSpeed.
	FrameRateIndependent bool

	Bindings Bindings
}

// DefaultConfig returns the tuning used by the walk demo. All actions start
// Unbound; callers fill in their own key ids.
func DefaultConfig() Config {
	return Config{
		MouseSensitivity: 0.01,
		MoveSpeed:        4,
		FieldOfView:      mgl32.DegToRad(45),
		NearClip:         1,
		FarClip:          4096,
		PitchMin:         -math.Pi / 6,
		PitchMax:         math.Pi / 6,
		Axis:             QuakeZUp,
		Bindings: Bindings{
			Forward: Unbound,
			Back:    Unbound,
			Left:    Unbound,
			Right:   Unbound,
			Jump:    Unbound,
			Crouch:  Unbound,
		},
	}
}

// Validate reports the first contract violation found in c.
func (c Config) Validate() error {
	switch {
	case isBad(c.PitchMin) || isBad(c.PitchMax):
		return fmt.Errorf("%w: pitch range must be finite", ErrInvalidConfig)
	case c.PitchMin > c.PitchMax:
		return fmt.Errorf("%w: pitch_min %g > pitch_max %g", ErrInvalidConfig, c.PitchMin, c.PitchMax)
	case isBad(c.FieldOfView) || c.FieldOfView <= 0 || c.FieldOfView >= math.Pi:
		return fmt.Errorf("%w: field_of_view %g must be in (0, pi)", ErrInvalidConfig, c.FieldOfView)
	case isBad(c.NearClip) || c.NearClip <= 0:
		return fmt.Errorf("%w: near_clip %g must be positive", ErrInvalidConfig, c.NearClip)
	case isBad(c.FarClip) || c.FarClip <= c.NearClip:
		return fmt.Errorf("%w: far_clip %g must exceed near_clip %g", ErrInvalidConfig, c.FarClip, c.NearClip)
	case isBad(c.MoveSpeed) || c.MoveSpeed < 0:
		return fmt.Errorf("%w: move_speed %g must be non-negative", ErrInvalidConfig, c.MoveSpeed)
	case isBad(c.MouseSensitivity) || c.MouseSensitivity < 0:
		return fmt.Errorf("%w: mouse_sensitivity %g must be non-negative", ErrInvalidConfig, c.MouseSensitivity)
	case c.Axis != QuakeZUp && c.Axis != StandardYUp:
		return fmt.Errorf("%w: unknown axis convention %d", ErrInvalidConfig, int(c.Axis))
	}
	return nil
}

func isBad(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
