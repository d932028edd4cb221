package levelwalk

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/levelwalk/gfx"
)

// fakeWindow is a scripted Window and InputSource.
type fakeWindow struct {
	width, height int
	closing       bool
	keys          map[int]bool
	dx, dy        float64
	polls         int
	mousePolls    int
	captured      []bool
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{width: 800, height: 600, keys: map[int]bool{}}
}

func (w *fakeWindow) PollEvents() { w.polls++ }
func (w *fakeWindow) ShouldClose() bool { return w.closing }
func (w *fakeWindow) FramebufferSize() (int, int) { return w.width, w.height }
func (w *fakeWindow) SetMouseCaptured(c bool) { w.captured = append(w.captured, c) }

func (w *fakeWindow) press(keys ...int) {
	for _, k := range keys {
		w.keys[k] = true
	}
}

func (w *fakeWindow) release(keys ...int) {
	for _, k := range keys {
		delete(w.keys, k)
	}
}

func (w *fakeWindow) moveMouse(dx, dy float64) {
	w.dx += dx
	w.dy += dy
}

func (w *fakeWindow) KeysDown() map[int]bool {
	down := make(map[int]bool, len(w.keys))
	for k, v := range w.keys {
		down[k] = v
	}
	return down
}

func (w *fakeWindow) PollAndResetMouseDelta() (float64, float64) {
	w.mousePolls++
	dx, dy := w.dx, w.dy
	w.dx, w.dy = 0, 0
	return dx, dy
}

// stepClock advances by a fixed step on every call.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

type fakeUniform struct {
	program gfx.ProgramHandle
	loc     gfx.UniformLocation
	m       mgl32.Mat4
}

type fakeDraw struct {
	call     gfx.DrawCall
	uniforms map[gfx.UniformLocation]mgl32.Mat4
}

// fakeGraphics records calls instead of drawing.
type fakeGraphics struct {
	compileErr error
	uploadErr  error

	compiles  int
	next      uint32
	vertices  map[gfx.BufferHandle][]float32
	indices   map[gfx.BufferHandle][]uint16
	current   map[gfx.UniformLocation]mgl32.Mat4
	draws     []fakeDraw
	frames    int
	inFrame   bool
	frameSize [2]int
}

func newFakeGraphics() *fakeGraphics {
	return &fakeGraphics{
		vertices: map[gfx.BufferHandle][]float32{},
		indices:  map[gfx.BufferHandle][]uint16{},
		current:  map[gfx.UniformLocation]mgl32.Mat4{},
	}
}

func (g *fakeGraphics) CompileProgram(vs, fs string) (gfx.ProgramHandle, error) {
	g.compiles++
	if g.compileErr != nil {
		return 0, g.compileErr
	}
	g.next++
	return gfx.ProgramHandle(g.next), nil
}

func (g *fakeGraphics) UniformLocation(p gfx.ProgramHandle, name string) (gfx.UniformLocation, error) {
	switch name {
	case UniformProjection:
		return 0, nil
	case UniformModelView:
		return 1, nil
	}
	return -1, &CompileError{Stage: "link", Log: "no uniform " + name}
}

func (g *fakeGraphics) UploadVertexBuffer(data []float32) (gfx.BufferHandle, error) {
	if g.uploadErr != nil {
		return gfx.NoBuffer, g.uploadErr
	}
	g.next++
	h := gfx.BufferHandle(g.next)
	g.vertices[h] = data
	return h, nil
}

func (g *fakeGraphics) UploadIndexBuffer(data []uint16) (gfx.BufferHandle, error) {
	if g.uploadErr != nil {
		return gfx.NoBuffer, g.uploadErr
	}
	g.next++
	h := gfx.BufferHandle(g.next)
	g.indices[h] = data
	return h, nil
}

func (g *fakeGraphics) BeginFrame(width, height int) error {
	g.inFrame = true
	g.frameSize = [2]int{width, height}
	return nil
}

func (g *fakeGraphics) SetUniformMatrix4(p gfx.ProgramHandle, loc gfx.UniformLocation, m mgl32.Mat4) {
	g.current[loc] = m
}

func (g *fakeGraphics) Draw(call gfx.DrawCall) {
	snapshot := make(map[gfx.UniformLocation]mgl32.Mat4, len(g.current))
	for k, v := range g.current {
		snapshot[k] = v
	}
	g.draws = append(g.draws, fakeDraw{call: call, uniforms: snapshot})
}

func (g *fakeGraphics) EndFrame() error {
	g.inFrame = false
	g.frames++
	return nil
}
