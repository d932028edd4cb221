package levelwalk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/levelwalk/camera"
)

// ViewMatrices is what the camera publishes for the renderer each frame.
type ViewMatrices struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
	Eye            mgl32.Vec3
	Yaw, Pitch     float32
}

// CameraModule drives a camera.Controller from Input. Requires TimeModule,
// WindowModule and InputModule. With SpawnOnLoad the pose jumps to the
// player start of each level the AssetServer finishes loading.
type CameraModule struct {
	Controller  *camera.Controller
	SpawnOnLoad bool
}

type cameraState struct {
	controller *camera.Controller
}

func (mod CameraModule) Install(app *App, cmd *Commands) {
	if mod.Controller == nil {
		panic("CameraModule: Controller is nil")
	}
	cs := &cameraState{controller: mod.Controller}

	vm := &ViewMatrices{}
	vm.publish(mod.Controller.Frame(1))
	cmd.AddResources(cs, vm)

	if mod.SpawnOnLoad {
		app.UseSystem(
			System(cameraSpawnSystem).
				InStage(Update),
		)
	}
	app.UseSystem(
		System(cameraSystem).
			InStage(Update),
	)
}

func (vm *ViewMatrices) publish(f camera.Frame) {
	vm.View = f.View
	vm.Projection = f.Projection
	vm.ViewProjection = f.ViewProjection
	vm.Eye = f.State.EyePosition()
	vm.Yaw = f.State.Yaw
	vm.Pitch = f.State.Pitch
}

// SnapshotFrom converts the frame's Input into what the controller consumes.
// Mouse motion only steers the camera while the pointer is captured.
func SnapshotFrom(input *Input) camera.InputSnapshot {
	snap := camera.InputSnapshot{KeysDown: input.KeysDown()}
	if input.MouseCaptured {
		snap.MouseDelta = mgl32.Vec2{float32(input.MouseDeltaX), float32(input.MouseDeltaY)}
	}
	return snap
}

func cameraSystem(cs *cameraState, input *Input, t *Time, ws *WindowState, vm *ViewMatrices) {
	frame := cs.controller.Update(SnapshotFrom(input), t.DtSeconds(), ws.Aspect())
	vm.publish(frame)
}

func cameraSpawnSystem(cs *cameraState, assets *AssetServer, cmd *Commands) {
	spawn, ok := assets.TakeSpawn(cs.controller.Config().Axis)
	if !ok {
		return
	}
	cs.controller.SetState(spawn)
	eye := spawn.EyePosition()
	cmd.Logger().Infof("Spawned at (%.1f %.1f %.1f) yaw %.2f", eye.X(), eye.Y(), eye.Z(), spawn.Yaw)
}
