package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// quakeCorrection turns a Z-up world into the Y-up, -Z-forward view space:
// rotate -90 degrees about X, then +90 degrees about Z.
var quakeCorrection = mgl32.HomogRotate3DX(-math.Pi / 2).Mul4(mgl32.HomogRotate3DZ(math.Pi / 2))

// AxisCorrection returns the fixed matrix applied before the pose rotations.
func AxisCorrection(axis AxisConvention) mgl32.Mat4 {
	if axis == StandardYUp {
		return mgl32.Ident4()
	}
	return quakeCorrection
}

// ViewMatrix builds the world-to-camera transform for s.
//
//	QuakeZUp:    C * Rx(roll) * Ry(pitch) * Rz(yaw) * T(position)
//	StandardYUp: Rz(roll) * Rx(-pitch) * Ry(yaw) * T(position)
//
// Positive pitch looks up and positive yaw turns right in both conventions.
func ViewMatrix(s State, axis AxisConvention) mgl32.Mat4 {
	t := mgl32.Translate3D(s.Position[0], s.Position[1], s.Position[2])

	if axis == StandardYUp {
		return mgl32.HomogRotate3DZ(s.Roll).
			Mul4(mgl32.HomogRotate3DX(-s.Pitch)).
			Mul4(mgl32.HomogRotate3DY(s.Yaw)).
			Mul4(t)
	}

	return quakeCorrection.
		Mul4(mgl32.HomogRotate3DX(s.Roll)).
		Mul4(mgl32.HomogRotate3DY(s.Pitch)).
		Mul4(mgl32.HomogRotate3DZ(s.Yaw)).
		Mul4(t)
}

// ProjectionMatrix builds an OpenGL-style perspective projection (clip z in [-1, 1]).
func ProjectionMatrix(cfg Config, aspect float32) mgl32.Mat4 {
	if aspect <= 0 || aspect != aspect {
		aspect = 1
	}
	return mgl32.Perspective(cfg.FieldOfView, aspect, cfg.NearClip, cfg.FarClip)
}

// LookDirection returns the world-space direction the eye faces.
func LookDirection(s State, axis AxisConvention) mgl32.Vec3 {
	inv := ViewMatrix(State{Yaw: s.Yaw, Pitch: s.Pitch, Roll: s.Roll}, axis).Inv()
	return inv.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}
