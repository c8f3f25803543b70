// Package shaders carries the default GLSL program. The sources expect
// MAX_POINT_LIGHTS and MAX_SPOT_LIGHTS to be defined by the loader.
package shaders

import _ "embed"

//go:embed shader.vert
var Vertex string

//go:embed shader.frag
var Fragment string
