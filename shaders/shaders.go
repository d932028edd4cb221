package shaders

import (
	_ "embed"
)

//go:embed level.vert.glsl
var LevelVertexGLSL string

//go:embed level.frag.glsl
var LevelFragmentGLSL string

// LevelWGSL holds both entry points, vs_main and fs_main.
//
//go:embed level.wgsl
var LevelWGSL string
