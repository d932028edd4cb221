// Package glgfx draws through an OpenGL 4.1 core context. Programs are GLSL
// pairs with the position at attribute 0 and the normal at attribute 1.
package glgfx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/levelwalk/gfx"
)

// Graphics implements gfx.Context. Handles are GL object names. Every method
// must run on the thread that owns the context.
type Graphics struct {
	swap func()
	vaos map[gfx.BufferHandle]uint32

	programs []uint32
	buffers  []uint32
	inFrame  bool
}

// New loads the GL entry points for the current context. swap presents the
// back buffer, usually the window's SwapBuffers.
func New(swap func()) (*Graphics, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1)

	return &Graphics{
		swap: swap,
		vaos: make(map[gfx.BufferHandle]uint32),
	}, nil
}

// Version is the driver's GL_VERSION string.
func (g *Graphics) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func compileShader(source string, kind uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &gfx.CompileError{Stage: stage, Log: strings.TrimRight(log, "\x00")}
	}
	return shader, nil
}

func (g *Graphics) CompileProgram(vertexSource, fragmentSource string) (gfx.ProgramHandle, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.BindAttribLocation(program, 0, gl.Str("aVertexPosition\x00"))
	gl.BindAttribLocation(program, 1, gl.Str("aVertexNormal\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &gfx.CompileError{Stage: "link", Log: strings.TrimRight(log, "\x00")}
	}

	g.programs = append(g.programs, program)
	return gfx.ProgramHandle(program), nil
}

func (g *Graphics) UniformLocation(p gfx.ProgramHandle, name string) (gfx.UniformLocation, error) {
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return -1, fmt.Errorf("glgfx: no active uniform %q", name)
	}
	return gfx.UniformLocation(loc), nil
}

// UploadVertexBuffer also builds the vertex array that describes it.
func (g *Graphics) UploadVertexBuffer(data []float32) (gfx.BufferHandle, error) {
	if len(data) == 0 || len(data)%gfx.VertexStride != 0 {
		return gfx.NoBuffer, fmt.Errorf("glgfx: vertex data length %d", len(data))
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	const stride = gfx.VertexStride * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.BindVertexArray(0)

	g.buffers = append(g.buffers, vbo)
	g.vaos[gfx.BufferHandle(vbo)] = vao
	return gfx.BufferHandle(vbo), nil
}

func (g *Graphics) UploadIndexBuffer(data []uint16) (gfx.BufferHandle, error) {
	if len(data) == 0 {
		return gfx.NoBuffer, errors.New("glgfx: empty index data")
	}
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	// element bindings belong to a VAO, so fill it through ARRAY_BUFFER
	gl.BindBuffer(gl.ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	g.buffers = append(g.buffers, ebo)
	return gfx.BufferHandle(ebo), nil
}

func (g *Graphics) BeginFrame(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	g.inFrame = true
	return nil
}

func (g *Graphics) SetUniformMatrix4(p gfx.ProgramHandle, loc gfx.UniformLocation, m mgl32.Mat4) {
	gl.UseProgram(uint32(p))
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (g *Graphics) Draw(call gfx.DrawCall) {
	vao, ok := g.vaos[call.Vertices]
	if !g.inFrame || !ok || call.Count <= 0 {
		return
	}
	mode := uint32(gl.TRIANGLES)
	if call.Kind == gfx.TriangleStrip {
		mode = gl.TRIANGLE_STRIP
	}

	gl.UseProgram(uint32(call.Program))
	gl.BindVertexArray(vao)
	if call.Indices == gfx.NoBuffer {
		gl.DrawArrays(mode, 0, int32(call.Count))
	} else {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(call.Indices))
		gl.DrawElements(mode, int32(call.Count), gl.UNSIGNED_SHORT, nil)
	}
	gl.BindVertexArray(0)
}

func (g *Graphics) EndFrame() error {
	if !g.inFrame {
		return nil
	}
	g.inFrame = false
	if g.swap != nil {
		g.swap()
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glgfx: GL error 0x%x", code)
	}
	return nil
}

// Release deletes every GL object created through g.
func (g *Graphics) Release() {
	for _, vao := range g.vaos {
		gl.DeleteVertexArrays(1, &vao)
	}
	if len(g.buffers) > 0 {
		gl.DeleteBuffers(int32(len(g.buffers)), &g.buffers[0])
	}
	for _, p := range g.programs {
		gl.DeleteProgram(p)
	}
	g.vaos, g.buffers, g.programs = nil, nil, nil
}
