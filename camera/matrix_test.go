package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestViewMatrix_ZeroPoseIsAxisCorrection(t *testing.T) {
	view := ViewMatrix(State{}, QuakeZUp)

	assert.Equal(t, AxisCorrection(QuakeZUp), view)
	assert.Equal(t, mgl32.Ident4(), ViewMatrix(State{}, StandardYUp))
	assert.Equal(t, mgl32.Ident4(), AxisCorrection(StandardYUp))
}

func TestAxisCorrection_MapsZUpToViewSpace(t *testing.T) {
	c := AxisCorrection(QuakeZUp)

	// world +X is straight ahead (-Z in view space)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, c.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3(), 1e-6)
	// world +Z is up
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, c.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3(), 1e-6)
	// world -Y is to the right
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, c.Mul4x1(mgl32.Vec4{0, -1, 0, 0}).Vec3(), 1e-6)
}

func TestViewMatrix_RollRotatesAboutForwardAxis(t *testing.T) {
	upright := ViewMatrix(State{}, QuakeZUp)
	tilted := ViewMatrix(State{Roll: math.Pi / 2}, QuakeZUp)

	assert.False(t, upright.ApproxEqualThreshold(tilted, 1e-3))

	// a quarter roll swings world up onto the view's right axis
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, tilted.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3(), 1e-6)
	// and leaves the forward axis where it was
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, tilted.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3(), 1e-6)

	yup := ViewMatrix(State{Roll: math.Pi / 2}, StandardYUp)
	assertVec3InDelta(t, mgl32.Vec3{-1, 0, 0}, yup.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3(), 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, yup.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3(), 1e-6)
}

func TestViewMatrix_TranslatesByPosition(t *testing.T) {
	s := State{Position: mgl32.Vec3{-4, 0, 0}}

	view := ViewMatrix(s, QuakeZUp)

	// the eye sits at -Position, so it maps to the view-space origin
	eye := s.EyePosition()
	assertVec3InDelta(t, mgl32.Vec3{}, view.Mul4x1(eye.Vec4(1)).Vec3(), 1e-6)
}

func TestLookDirection_YawZero(t *testing.T) {
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, LookDirection(State{}, QuakeZUp), 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, LookDirection(State{}, StandardYUp), 1e-6)
}

func TestProjectionMatrix(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, mgl32.Perspective(cfg.FieldOfView, 1.5, cfg.NearClip, cfg.FarClip), ProjectionMatrix(cfg, 1.5))
	assert.Equal(t, ProjectionMatrix(cfg, 1), ProjectionMatrix(cfg, 0))
	assert.Equal(t, ProjectionMatrix(cfg, 1), ProjectionMatrix(cfg, -2))

	// near plane maps to -1, far plane to +1
	p := ProjectionMatrix(cfg, 1)
	near := p.Mul4x1(mgl32.Vec4{0, 0, -cfg.NearClip, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -cfg.FarClip, 1})
	assert.InDelta(t, -1, near[2]/near[3], 1e-4)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestParseAxisConvention(t *testing.T) {
	a, err := ParseAxisConvention("standard_y_up")
	assert.NoError(t, err)
	assert.Equal(t, StandardYUp, a)

	a, err = ParseAxisConvention("")
	assert.NoError(t, err)
	assert.Equal(t, QuakeZUp, a)
	assert.Equal(t, "quake_z_up", a.String())

	_, err = ParseAxisConvention("x_up")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
