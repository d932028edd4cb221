// Package gfx is the small graphics surface the renderer draws through:
// compile a program, upload buffers, set matrices, draw.
package gfx

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type ProgramHandle uint32

type BufferHandle uint32

type UniformLocation int32

// NoBuffer marks an absent index buffer, meaning the draw is non-indexed.
const NoBuffer BufferHandle = 0

type PrimitiveKind int

const (
	TriangleList PrimitiveKind = iota
	TriangleStrip
)

func (k PrimitiveKind) String() string {
	if k == TriangleStrip {
		return "triangle-strip"
	}
	return "triangle-list"
}

// VertexStride is the float count of one vertex: position then normal.
const VertexStride = 6

// DrawCall draws Count vertices from Vertices, or Count indices from Indices
// when Indices is set.
type DrawCall struct {
	Program  ProgramHandle
	Kind     PrimitiveKind
	Vertices BufferHandle
	Indices  BufferHandle
	Count    int
}

// CompileError carries the driver's log for a shader or program that failed
// to build. The draw path that needed it is abandoned.
type CompileError struct {
	Stage string // "vertex", "fragment", "link" or "pipeline"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Stage, strings.TrimSpace(e.Log))
}

// Context is implemented per backend. Valid handles are never zero.
// CompileProgram reports shader failures as *CompileError.
type Context interface {
	CompileProgram(vertexSource, fragmentSource string) (ProgramHandle, error)
	UniformLocation(p ProgramHandle, name string) (UniformLocation, error)
	UploadVertexBuffer(data []float32) (BufferHandle, error)
	UploadIndexBuffer(data []uint16) (BufferHandle, error)
	BeginFrame(width, height int) error
	SetUniformMatrix4(p ProgramHandle, loc UniformLocation, m mgl32.Mat4)
	Draw(call DrawCall)
	EndFrame() error
}
