package levelwalk

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/levelwalk/camera"
)

func TestNewLevelMesh(t *testing.T) {
	verts := make([]float32, 4*VertexStride)
	mesh, err := NewLevelMesh(verts, []int{0, 1, 2, 0, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, mesh.Indices)
}

func TestNewLevelMesh_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []int
	}{
		{"partial vertex", make([]float32, VertexStride+2), []int{0, 0, 0}},
		{"partial triangle", make([]float32, 3*VertexStride), []int{0, 1}},
		{"index past end", make([]float32, 3*VertexStride), []int{0, 1, 3}},
		{"negative index", make([]float32, 3*VertexStride), []int{0, -1, 2}},
		{"too many vertices", make([]float32, (math.MaxUint16+2)*VertexStride), []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLevelMesh(tt.vertices, tt.indices)
			assert.ErrorIs(t, err, ErrInvalidLevel)
		})
	}
}

func TestParseOrigin(t *testing.T) {
	v, err := ParseOrigin(" -480 352.5 88 ")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{-480, 352.5, 88}, v)

	_, err = ParseOrigin("1 2")
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = ParseOrigin("1 two 3")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestPlayerStart(t *testing.T) {
	ents := []Entity{
		{"classname": "worldspawn"},
		{"classname": "info_player_start", "origin": "0 0 0"},
		{"classname": "info_player_start", "origin": "9 9 9"},
	}
	start, ok := PlayerStart(ents)
	require.True(t, ok)
	assert.Equal(t, "0 0 0", start["origin"])

	_, ok = PlayerStart(ents[:1])
	assert.False(t, ok)
}

func TestSpawnState_QuakeFacesTheEntityAngle(t *testing.T) {
	start := Entity{"classname": "info_player_start", "origin": "32 16 24", "angle": "90"}
	s, err := SpawnState(start, camera.QuakeZUp)
	require.NoError(t, err)

	assertVec3Near(t, mgl32.Vec3{32, 16, 24 + ViewHeight}, s.EyePosition())
	assertVec3Near(t, mgl32.Vec3{0, 1, 0}, camera.LookDirection(s, camera.QuakeZUp))
}

func TestSpawnState_YUp(t *testing.T) {
	start := Entity{"classname": "info_player_start", "origin": "5 0 -5"}
	s, err := SpawnState(start, camera.StandardYUp)
	require.NoError(t, err)

	assertVec3Near(t, mgl32.Vec3{5, ViewHeight, -5}, s.EyePosition())
	assertVec3Near(t, mgl32.Vec3{1, 0, 0}, camera.LookDirection(s, camera.StandardYUp))
}

func TestSpawnState_BadAngle(t *testing.T) {
	_, err := SpawnState(Entity{"origin": "0 0 0", "angle": "north"}, camera.QuakeZUp)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}
