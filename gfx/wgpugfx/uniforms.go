package wgpugfx

import (
	"fmt"
	"regexp"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/levelwalk/gfx"
)

var (
	uniformStruct = regexp.MustCompile(`(?s)struct\s+Uniforms\s*\{(.*?)\}`)
	uniformField  = regexp.MustCompile(`(\w+)\s*:\s*mat4x4\s*<\s*f32\s*>`)
)

// uniformSlots lists the mat4 fields of the Uniforms struct in declaration
// order; a field's index is its uniform location.
func uniformSlots(source string) ([]string, error) {
	body := uniformStruct.FindStringSubmatch(source)
	if body == nil {
		return nil, fmt.Errorf("no Uniforms struct")
	}
	var slots []string
	for _, m := range uniformField.FindAllStringSubmatch(body[1], -1) {
		slots = append(slots, m[1])
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("Uniforms struct has no mat4x4<f32> fields")
	}
	if len(slots) > maxUniformSlots {
		return nil, fmt.Errorf("Uniforms struct has %d matrices, at most %d fit a draw", len(slots), maxUniformSlots)
	}
	return slots, nil
}

func slotOf(slots []string, name string) (gfx.UniformLocation, error) {
	for i, s := range slots {
		if s == name {
			return gfx.UniformLocation(i), nil
		}
	}
	return -1, fmt.Errorf("wgpugfx: no uniform %q", name)
}

// packUniforms lays the matrices out back to back, column-major as WGSL
// expects.
func packUniforms(values []mgl32.Mat4) []byte {
	floats := make([]float32, 0, len(values)*16)
	for _, m := range values {
		floats = append(floats, m[:]...)
	}
	return wgpu.ToBytes(floats)
}

// padIndices keeps uint16 index data a multiple of four bytes, which buffer
// writes require. The pad is never drawn.
func padIndices(data []uint16) []uint16 {
	if len(data)%2 == 0 {
		return data
	}
	padded := make([]uint16, len(data)+1)
	copy(padded, data)
	return padded
}
