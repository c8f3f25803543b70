// Package platform owns the GLFW window and the OpenGL context.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"glscene/core"
	"glscene/internal/logger"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1366,
		Height:    768,
		Title:     "glscene",
		Resizable: false,
		VSync:     true,
	}
}

// Window is a GLFW window with a current OpenGL 4.1 core context. Its key
// and cursor callbacks feed an Input owned by the window.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	input *core.Input
}

func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
		input:  core.NewInput(),
	}

	handle.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.Key(core.KeyEscape) && action == glfw.Press {
			w.SetShouldClose(true)
		}
		switch action {
		case glfw.Press:
			window.input.SetKey(int(key), true)
		case glfw.Release:
			window.input.SetKey(int(key), false)
		}
	})
	handle.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		window.input.HandleCursor(x, y)
	})
	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})
	handle.SetFocusCallback(func(w *glfw.Window, focused bool) {
		// The cursor jumps while unfocused; skip the first sample after return.
		if focused {
			window.input.ResetCursor()
		}
	})

	handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	fbw, fbh := handle.GetFramebufferSize()
	logger.Log.Info("window created",
		zap.String("title", config.Title),
		zap.Int("width", config.Width),
		zap.Int("height", config.Height),
		zap.Int("framebuffer_width", fbw),
		zap.Int("framebuffer_height", fbh))

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) Input() *core.Input {
	return w.input
}

// FramebufferSize returns the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) FramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

// Now returns seconds since GLFW was initialized.
func Now() float64 {
	return glfw.GetTime()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
