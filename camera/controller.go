package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything a renderer needs after one update.
type Frame struct {
	State          State
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
}

// Controller owns a camera pose and its configuration for the length of a
// session. It is driven from the frame loop only and is not safe for
// concurrent use.
type Controller struct {
	cfg   Config
	state State
}

// NewController validates cfg and clamps the initial pitch into range.
func NewController(cfg Config, initial State) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	initial.Pitch = clampPitch(initial.Pitch, cfg)
	return &Controller{cfg: cfg, state: initial}, nil
}

func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) State() State { return c.state }

// SetState replaces the pose, e.g. when the player spawns. Pitch is clamped.
func (c *Controller) SetState(s State) {
	s.Pitch = clampPitch(s.Pitch, c.cfg)
	c.state = s
}

// SetRoll tilts the view about the forward axis.
func (c *Controller) SetRoll(roll float32) {
	c.state.Roll = roll
}

// Update consumes one frame of input and returns the new pose and matrices.
func (c *Controller) Update(in InputSnapshot, dt, aspect float32) Frame {
	c.state = Step(c.state, in, c.cfg, dt)
	return c.Frame(aspect)
}

// Frame returns the matrices for the current pose without advancing it.
func (c *Controller) Frame(aspect float32) Frame {
	view := ViewMatrix(c.state, c.cfg.Axis)
	proj := ProjectionMatrix(c.cfg, aspect)
	return Frame{
		State:          c.state,
		View:           view,
		Projection:     proj,
		ViewProjection: proj.Mul4(view),
	}
}
