package opengl

import (
	"errors"
	"os"
	"runtime"
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"glscene/gpu"
)

func init() {
	runtime.LockOSThread()
}

var testDevice *Device

// TestMain creates a hidden 4.1 core context when a display is available.
// Without one every test in the package is skipped.
func TestMain(m *testing.M) {
	if err := glfw.Init(); err == nil {
		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		if w, err := glfw.CreateWindow(64, 64, "glscene-test", nil, nil); err == nil {
			w.MakeContextCurrent()
			testDevice, _ = NewDevice()
		}
	}
	code := m.Run()
	glfw.Terminate()
	os.Exit(code)
}

func requireDevice(t *testing.T) *Device {
	t.Helper()
	if testDevice == nil {
		t.Skip("no OpenGL 4.1 context available")
	}
	return testDevice
}

func elementBinding(vao uint32) uint32 {
	gl.BindVertexArray(vao)
	var bound int32
	gl.GetIntegerv(gl.ELEMENT_ARRAY_BUFFER_BINDING, &bound)
	gl.BindVertexArray(0)
	return uint32(bound)
}

func TestIndexBufferStaysAttachedToVAO(t *testing.T) {
	d := requireDevice(t)
	layout := gpu.VertexLayout{HasNormal: true}
	vertices := []float32{
		0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 1,
		0, 1, 0, 0, 0, 1,
	}

	b, err := d.CreateBuffers(layout, vertices, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("CreateBuffers: %v", err)
	}
	defer d.DeleteBuffers(b)

	if got := elementBinding(b.VAO); got != b.IBO {
		t.Errorf("after create: expected IBO %d bound in VAO, got %d", b.IBO, got)
	}

	d.DrawIndexed(b)
	if got := elementBinding(b.VAO); got != b.IBO {
		t.Errorf("after draw: expected IBO %d bound in VAO, got %d", b.IBO, got)
	}
}

func TestCreateBuffersRejectsEmpty(t *testing.T) {
	// Validation runs before any GL call.
	d := &Device{}
	_, err := d.CreateBuffers(gpu.VertexLayout{}, nil, nil)
	if !errors.Is(err, gpu.ErrBufferCreation) {
		t.Errorf("CreateBuffers: expected ErrBufferCreation, got %v", err)
	}
}
