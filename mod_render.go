package levelwalk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/levelwalk/gfx"
)

// Uniform names shared by every level program.
const (
	UniformProjection = "uPMatrix"
	UniformModelView  = "uMVMatrix"
)

// RenderModule draws the level through a gfx.Context. It needs WindowModule
// and CameraModule, plus AssetModule when Level is set.
type RenderModule struct {
	Graphics       gfx.Context
	VertexSource   string
	FragmentSource string

	// Level is loaded through the AssetServer at install time.
	Level string
	// Demo draws the fixed triangle and square in front of the viewer.
	Demo bool
}

// RenderStats counts what reached the graphics context.
type RenderStats struct {
	Frames      uint64
	Draws       uint64
	LevelDrawn  bool
	FrameErrors uint64
}

type demoGeometry struct {
	triangle gfx.BufferHandle
	square   gfx.BufferHandle
}

type levelDraw struct {
	vertices gfx.BufferHandle
	indices  gfx.BufferHandle
	count    int
}

// levelRenderer is every handle the render path needs, resolved once.
type levelRenderer struct {
	graphics gfx.Context
	disabled bool

	program  gfx.ProgramHandle
	pMatrix  gfx.UniformLocation
	mvMatrix gfx.UniformLocation

	demo *demoGeometry

	level       AssetId
	hasLevel    bool
	uploaded    *levelDraw
	uploadFails bool
}

// Demo geometry, position then normal, as the first drafts drew it.
var (
	demoTriangle = []float32{
		0, 1, 0, 0, 0, 1,
		-1, -1, 0, 0, 0, 1,
		1, -1, 0, 0, 0, 1,
	}
	demoSquare = []float32{
		1, 1, 0, 0, 0, 1,
		-1, 1, 0, 0, 0, 1,
		1, -1, 0, 0, 0, 1,
		-1, -1, 0, 0, 0, 1,
	}
)

// The demo ignores the camera and uses its own projection.
const (
	demoFov  = 45
	demoNear = 0.1
	demoFar  = 100
)

func (mod RenderModule) Install(app *App, cmd *Commands) {
	if mod.Graphics == nil {
		panic("RenderModule: Graphics is nil")
	}
	r := &levelRenderer{graphics: mod.Graphics}
	r.setup(mod, cmd.Logger())

	if mod.Level != "" {
		assets, ok := Resource[AssetServer](app)
		if !ok {
			panic("RenderModule: Level needs AssetModule installed first")
		}
		r.level = assets.LoadLevel(mod.Level)
		r.hasLevel = true
		app.UseSystem(
			System(levelUploadSystem).
				InStage(PreRender),
		)
	}

	cmd.AddResources(r, &RenderStats{})
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

// setup compiles the program and uploads the demo geometry. A compile
// failure turns the draw path off for the rest of the session.
func (r *levelRenderer) setup(mod RenderModule, logger Logger) {
	program, err := r.graphics.CompileProgram(mod.VertexSource, mod.FragmentSource)
	if err != nil {
		logger.Errorf("Level program disabled: %v", err)
		r.disabled = true
		return
	}
	r.program = program

	if r.pMatrix, err = r.graphics.UniformLocation(program, UniformProjection); err != nil {
		logger.Errorf("Level program disabled: %v", err)
		r.disabled = true
		return
	}
	if r.mvMatrix, err = r.graphics.UniformLocation(program, UniformModelView); err != nil {
		logger.Errorf("Level program disabled: %v", err)
		r.disabled = true
		return
	}

	if !mod.Demo {
		return
	}
	tri, err := r.graphics.UploadVertexBuffer(demoTriangle)
	if err != nil {
		logger.Warnf("Demo geometry skipped: %v", err)
		return
	}
	sq, err := r.graphics.UploadVertexBuffer(demoSquare)
	if err != nil {
		logger.Warnf("Demo geometry skipped: %v", err)
		return
	}
	r.demo = &demoGeometry{triangle: tri, square: sq}
}

func levelUploadSystem(r *levelRenderer, assets *AssetServer, cmd *Commands) {
	if r.disabled || r.uploaded != nil || r.uploadFails {
		return
	}
	level, ok := assets.Level(r.level)
	if !ok || level.State != AssetLoaded {
		return
	}

	vb, err := r.graphics.UploadVertexBuffer(level.Mesh.Vertices)
	if err != nil {
		cmd.Logger().Errorf("Level %q upload: %v", level.Name, err)
		r.uploadFails = true
		return
	}
	ib, err := r.graphics.UploadIndexBuffer(level.Mesh.Indices)
	if err != nil {
		cmd.Logger().Errorf("Level %q upload: %v", level.Name, err)
		r.uploadFails = true
		return
	}
	r.uploaded = &levelDraw{vertices: vb, indices: ib, count: len(level.Mesh.Indices)}
	cmd.Logger().Debugf("Level %q uploaded", level.Name)
}

func renderSystem(r *levelRenderer, ws *WindowState, vm *ViewMatrices, stats *RenderStats, cmd *Commands) {
	if err := r.graphics.BeginFrame(ws.Width, ws.Height); err != nil {
		stats.FrameErrors++
		cmd.Logger().Warnf("Frame skipped: %v", err)
		return
	}
	stats.Frames++

	if !r.disabled {
		if r.demo != nil {
			r.drawDemo(ws.Aspect(), stats)
		}
		if r.uploaded != nil {
			r.graphics.SetUniformMatrix4(r.program, r.pMatrix, vm.Projection)
			r.graphics.SetUniformMatrix4(r.program, r.mvMatrix, vm.View)
			r.graphics.Draw(gfx.DrawCall{
				Program:  r.program,
				Kind:     gfx.TriangleList,
				Vertices: r.uploaded.vertices,
				Indices:  r.uploaded.indices,
				Count:    r.uploaded.count,
			})
			stats.Draws++
			stats.LevelDrawn = true
		}
	}

	if err := r.graphics.EndFrame(); err != nil {
		stats.FrameErrors++
		cmd.Logger().Warnf("Frame: %v", err)
	}
}

func (r *levelRenderer) drawDemo(aspect float32, stats *RenderStats) {
	proj := mgl32.Perspective(mgl32.DegToRad(demoFov), aspect, demoNear, demoFar)
	r.graphics.SetUniformMatrix4(r.program, r.pMatrix, proj)

	mv := mgl32.Translate3D(-1.5, 0, -7)
	r.graphics.SetUniformMatrix4(r.program, r.mvMatrix, mv)
	r.graphics.Draw(gfx.DrawCall{
		Program:  r.program,
		Kind:     gfx.TriangleList,
		Vertices: r.demo.triangle,
		Count:    len(demoTriangle) / gfx.VertexStride,
	})

	mv = mv.Mul4(mgl32.Translate3D(3, 0, 0))
	r.graphics.SetUniformMatrix4(r.program, r.mvMatrix, mv)
	r.graphics.Draw(gfx.DrawCall{
		Program:  r.program,
		Kind:     gfx.TriangleStrip,
		Vertices: r.demo.square,
		Count:    len(demoSquare) / gfx.VertexStride,
	})
	stats.Draws += 2
}
