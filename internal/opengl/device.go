package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"glscene/gpu"
	"glscene/internal/logger"
)

// Device is the OpenGL 4.1 core implementation of gpu.Device.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// NewDevice loads the GL function pointers and sets the fixed pipeline state.
// Must be called after the GLFW window context is made current.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return &Device{}, nil
}

// ── Shaders ──────────────────────────────────────────────────────────────────

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, error) {
	var kind uint32
	switch stage {
	case gpu.StageVertex:
		kind = gl.VERTEX_SHADER
	case gpu.StageFragment:
		kind = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("unsupported shader stage %d", stage)
	}

	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, fmt.Errorf("glCreateShader returned 0")
	}
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	prog := gl.CreateProgram()
	if prog == 0 {
		return 0, fmt.Errorf("glCreateProgram returned 0")
	}
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00"))
	}

	gl.ValidateProgram(prog)
	gl.GetProgramiv(prog, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		// Validation depends on current state (e.g. bound samplers); report only.
		logger.Log.Debug("program validation reported problems", zap.Uint32("program", prog))
	}

	for _, s := range shaders {
		gl.DetachShader(prog, s)
	}
	return prog, nil
}

func (d *Device) DeleteShader(id uint32)  { gl.DeleteShader(id) }
func (d *Device) DeleteProgram(id uint32) { gl.DeleteProgram(id) }
func (d *Device) UseProgram(id uint32)    { gl.UseProgram(id) }

// ── Uniforms ─────────────────────────────────────────────────────────────────

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(loc int32, v int32)   { gl.Uniform1i(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

func (d *Device) Uniform3f(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

// UniformMatrix4 uploads m; mgl32 matrices are column-major like GLSL.
func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// ── Buffers ──────────────────────────────────────────────────────────────────

func (d *Device) CreateBuffers(layout gpu.VertexLayout, vertices []float32, indices []uint32) (gpu.Buffers, error) {
	var b gpu.Buffers
	if len(vertices) == 0 || len(indices) == 0 {
		return b, fmt.Errorf("%w: empty vertex or index data", gpu.ErrBufferCreation)
	}

	gl.GenVertexArrays(1, &b.VAO)
	gl.GenBuffers(1, &b.IBO)
	gl.GenBuffers(1, &b.VBO)
	if b.VAO == 0 || b.IBO == 0 || b.VBO == 0 {
		d.DeleteBuffers(b)
		return gpu.Buffers{}, fmt.Errorf("%w: glGen* returned 0", gpu.ErrBufferCreation)
	}
	gl.BindVertexArray(b.VAO)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := layout.Stride()

	// location 0: position (vec3)
	gl.VertexAttribPointerWithOffset(gpu.AttribPosition, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(gpu.AttribPosition)

	// location 1: UV (vec2)
	if off := layout.UVOffset(); off >= 0 {
		gl.VertexAttribPointerWithOffset(gpu.AttribUV, 2, gl.FLOAT, false, stride, uintptr(off*4))
		gl.EnableVertexAttribArray(gpu.AttribUV)
	}

	// location 2: normal (vec3)
	if off := layout.NormalOffset(); off >= 0 {
		gl.VertexAttribPointerWithOffset(gpu.AttribNormal, 3, gl.FLOAT, false, stride, uintptr(off*4))
		gl.EnableVertexAttribArray(gpu.AttribNormal)
	}

	// The element buffer binding is VAO state and stays attached.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		d.DeleteBuffers(b)
		return gpu.Buffers{}, fmt.Errorf("%w: gl error 0x%x", gpu.ErrBufferCreation, e)
	}

	b.IndexCount = int32(len(indices))
	return b, nil
}

func (d *Device) DrawIndexed(b gpu.Buffers) {
	gl.BindVertexArray(b.VAO)
	gl.DrawElements(gl.TRIANGLES, b.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (d *Device) DeleteBuffers(b gpu.Buffers) {
	if b.IBO != 0 {
		gl.DeleteBuffers(1, &b.IBO)
	}
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
}

// ── Frame state ──────────────────────────────────────────────────────────────

func (d *Device) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
