// Package platform opens the GLFW window and feeds it to the engine as a
// Window and an InputSource.
package platform

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	lw "github.com/gekko3d/levelwalk"
)

type ContextMode int

const (
	// NoContext leaves the window bare for a WebGPU surface.
	NoContext ContextMode = iota
	// OpenGLContext creates a 4.1 core context and makes it current.
	OpenGLContext
)

type Options struct {
	Width  int
	Height int
	Title  string
	Mode   ContextMode
}

// Window implements levelwalk.Window and levelwalk.InputSource. GLFW must be
// driven from the main OS thread.
type Window struct {
	win      *glfw.Window
	mode     ContextMode
	mouse    lw.MouseAccumulator
	captured bool
}

var (
	_ lw.Window      = (*Window)(nil)
	_ lw.InputSource = (*Window)(nil)
)

func Open(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	switch opts.Mode {
	case OpenGLContext:
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU owns the surface
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	if opts.Mode == OpenGLContext {
		win.MakeContextCurrent()
		glfw.SwapInterval(1)
	}

	w := &Window{win: win, mode: opts.Mode}
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.mouse.MoveTo(x, y)
	})
	if glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	return w, nil
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) KeysDown() map[int]bool {
	down := make(map[int]bool)
	for key, glfwKey := range keyToGlfw {
		if w.win.GetKey(glfwKey) == glfw.Press {
			down[key] = true
		}
	}
	return down
}

func (w *Window) PollAndResetMouseDelta() (dx, dy float64) {
	return w.mouse.Poll()
}

// SetMouseCaptured hides and locks the cursor, like pointer lock in a
// browser. The warp that follows is not counted as motion.
func (w *Window) SetMouseCaptured(captured bool) {
	if captured {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	w.captured = captured
	w.mouse.Forget()
}

// SurfaceDescriptor is what wgpugfx.New needs for a NoContext window.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) Captured() bool {
	return w.captured
}
