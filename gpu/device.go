// Package gpu describes the graphics operations the renderer needs, so that
// scene and renderer code never call OpenGL directly.
package gpu

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrBufferCreation is returned (wrapped) when the device cannot allocate a
// vertex array, vertex buffer or index buffer.
var ErrBufferCreation = errors.New("gpu buffer creation failed")

// ErrTextureCreation is returned (wrapped) when the device cannot allocate a texture.
var ErrTextureCreation = errors.New("gpu texture creation failed")

// Stage identifies a shader pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// VertexLayout describes how a mesh's interleaved float data is packed:
// position (3), then UV (2) if HasUV, then normal (3) if HasNormal.
type VertexLayout struct {
	HasUV     bool
	HasNormal bool
}

// Floats returns the number of float32 values per vertex.
func (l VertexLayout) Floats() int {
	n := 3
	if l.HasUV {
		n += 2
	}
	if l.HasNormal {
		n += 3
	}
	return n
}

// Stride returns the byte size of one vertex.
func (l VertexLayout) Stride() int32 {
	return int32(l.Floats() * 4)
}

// UVOffset returns the float offset of the UV pair, or -1 when absent.
func (l VertexLayout) UVOffset() int {
	if !l.HasUV {
		return -1
	}
	return 3
}

// NormalOffset returns the float offset of the normal, or -1 when absent.
func (l VertexLayout) NormalOffset() int {
	if !l.HasNormal {
		return -1
	}
	if l.HasUV {
		return 5
	}
	return 3
}

// Attribute locations shared with the GLSL sources.
const (
	AttribPosition uint32 = 0
	AttribUV       uint32 = 1
	AttribNormal   uint32 = 2
)

// Buffers holds the object names of an uploaded mesh.
type Buffers struct {
	VAO        uint32
	VBO        uint32
	IBO        uint32
	IndexCount int32
}

// Device is the subset of the graphics API used by the renderer. All methods
// must be called from the goroutine that owns the GL context.
type Device interface {
	CompileShader(stage Stage, source string) (uint32, error)
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)
	UseProgram(id uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, v mgl32.Vec3)
	UniformMatrix4(loc int32, m mgl32.Mat4)

	CreateBuffers(layout VertexLayout, vertices []float32, indices []uint32) (Buffers, error)
	DrawIndexed(b Buffers)
	DeleteBuffers(b Buffers)

	CreateTexture(width, height int, rgba []byte) (uint32, error)
	BindTexture(unit uint32, id uint32)
	DeleteTexture(id uint32)

	SetViewport(width, height int)
	Clear(r, g, b, a float32)
}
