package levelwalk

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/levelwalk/camera"
)

// VertexStride is the number of floats per level vertex: position then the
// face normal.
const VertexStride = 6

// ViewHeight lifts the eye above a player start origin.
const ViewHeight = 22

var ErrInvalidLevel = errors.New("invalid level data")

// LevelMesh is triangle-list geometry ready for upload.
type LevelMesh struct {
	Vertices []float32
	Indices  []uint16
}

func (m *LevelMesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// Entity is one map entity; every value is a string, as in the .map source.
type Entity map[string]string

func (e Entity) Classname() string { return e["classname"] }

type levelVerticesFile struct {
	Vertices []float32 `json:"vertices"`
}

type levelIndicesFile struct {
	Indices []int `json:"indices"`
}

type levelEntitiesFile struct {
	Entities []Entity `json:"entities"`
}

// NewLevelMesh checks the decoded arrays and narrows indices to uint16.
func NewLevelMesh(vertices []float32, indices []int) (*LevelMesh, error) {
	if len(vertices)%VertexStride != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a multiple of %d", ErrInvalidLevel, len(vertices), VertexStride)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidLevel, len(indices))
	}
	count := len(vertices) / VertexStride
	if count > math.MaxUint16+1 {
		return nil, fmt.Errorf("%w: %d vertices do not fit 16-bit indices", ErrInvalidLevel, count)
	}

	narrowed := make([]uint16, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= count {
			return nil, fmt.Errorf("%w: index %d at %d out of range [0,%d)", ErrInvalidLevel, idx, i, count)
		}
		narrowed[i] = uint16(idx)
	}
	return &LevelMesh{Vertices: vertices, Indices: narrowed}, nil
}

// PlayerStart returns the first info_player_start entity.
func PlayerStart(entities []Entity) (Entity, bool) {
	for _, e := range entities {
		if e.Classname() == "info_player_start" {
			return e, true
		}
	}
	return nil, false
}

// ParseOrigin reads an "x y z" origin.
func ParseOrigin(s string) (mgl32.Vec3, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: origin %q", ErrInvalidLevel, s)
	}
	var v mgl32.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("%w: origin %q: %v", ErrInvalidLevel, s, err)
		}
		v[i] = float32(x)
	}
	return v, nil
}

// SpawnState places the camera at a player start. The level is Z-up with
// angles in degrees counter-clockwise from +X. Under StandardYUp the origin
// is taken as given and the view height goes on Y.
func SpawnState(start Entity, axis camera.AxisConvention) (camera.State, error) {
	origin, err := ParseOrigin(start["origin"])
	if err != nil {
		return camera.State{}, err
	}

	var angle float32
	if raw, ok := start["angle"]; ok && raw != "" {
		deg, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
		if err != nil {
			return camera.State{}, fmt.Errorf("%w: angle %q: %v", ErrInvalidLevel, raw, err)
		}
		angle = mgl32.DegToRad(float32(deg))
	}

	var eye mgl32.Vec3
	var yaw float32
	switch axis {
	case camera.StandardYUp:
		eye = origin.Add(mgl32.Vec3{0, ViewHeight, 0})
		yaw = angle + math.Pi/2
	default:
		eye = origin.Add(mgl32.Vec3{0, 0, ViewHeight})
		yaw = -angle
	}
	return camera.State{Position: eye.Mul(-1), Yaw: yaw}, nil
}
