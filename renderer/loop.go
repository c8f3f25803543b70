package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"glscene/core"
	"glscene/gpu"
	"glscene/internal/logger"
	"glscene/scene"
)

// Window is what the loop needs from the platform layer.
type Window interface {
	ShouldClose() bool
	PollEvents()
	SwapBuffers()
	Input() *core.Input
}

// TitleSetter is implemented by windows that can show the frame rate in
// their title bar.
type TitleSetter interface {
	SetTitle(title string)
}

// titleInterval is how often, in seconds, Run refreshes the window title.
const titleInterval = 1.0

// Loop renders a Scene once per frame in a fixed order until the window
// asks to close.
type Loop struct {
	Window Window
	Device gpu.Device
	Shader *Shader
	Scene  *scene.Scene

	// Now returns seconds since an arbitrary origin.
	Now func() float64

	// Title prefixes the frame rate when the window implements TitleSetter.
	Title string

	last    float64
	started bool
	frames  uint64
	failed  map[string]bool

	titleAt     float64
	titleFrames uint64
}

func NewLoop(win Window, dev gpu.Device, shader *Shader, sc *scene.Scene, now func() float64) *Loop {
	return &Loop{
		Window: win,
		Device: dev,
		Shader: shader,
		Scene:  sc,
		Now:    now,
		failed: map[string]bool{},
	}
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 { return l.frames }

func (l *Loop) deltaTime() float32 {
	now := l.Now()
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}
	dt := now - l.last
	l.last = now
	if dt < 0 {
		dt = 0
	}
	return float32(dt)
}

// Frame runs one iteration:
//
//  1. delta time
//  2. poll events
//  3. camera input and scene animation
//  4. clear
//  5. shader, projection, view and eye position
//  6. lights
//  7. objects
//  8. unbind and swap
func (l *Loop) Frame() error {
	dt := l.deltaTime()

	l.Window.PollEvents()

	sc := l.Scene
	in := l.Window.Input()
	if sc.Camera != nil {
		sc.Camera.ApplyMovementInput(in, dt)
		dx, dy := in.CursorDelta()
		sc.Camera.ApplyLookInput(dx, dy)
	}
	sc.Update(dt)

	c := sc.ClearColor
	l.Device.Clear(c.R, c.G, c.B, c.A)

	if err := l.Shader.Use(); err != nil {
		return fmt.Errorf("frame %d: %w", l.frames, err)
	}
	l.Shader.SetProjection(sc.Projection)
	if sc.Camera != nil {
		l.Shader.SetView(sc.Camera.ViewMatrix())
		l.Shader.SetEyePosition(sc.Camera.Position)
	}

	l.Shader.SetDirectionalLight(sc.Directional)
	l.Shader.SetPointLights(sc.PointLights, len(sc.PointLights))
	l.Shader.SetSpotLights(sc.SpotLights, len(sc.SpotLights))

	for _, obj := range sc.Objects {
		l.Shader.SetModel(obj.ModelMatrix())
		if err := obj.Draw(l.Shader); err != nil {
			l.reportDrawError(obj.Name, err)
		}
	}

	l.Shader.Unuse()
	l.Window.SwapBuffers()
	l.frames++
	return nil
}

// reportDrawError logs a failing object once instead of every frame.
func (l *Loop) reportDrawError(name string, err error) {
	if l.failed == nil {
		l.failed = map[string]bool{}
	}
	if l.failed[name] {
		return
	}
	l.failed[name] = true
	level := logger.Log.Warn
	if errors.Is(err, scene.ErrMeshNotCreated) {
		level = logger.Log.Debug
	}
	level("object not drawn", zap.String("object", name), zap.Error(err))
}

// Run renders frames until the window should close.
func (l *Loop) Run() error {
	start := l.Now()
	logger.Log.Info("render loop started", zap.Int("objects", len(l.Scene.Objects)))

	for !l.Window.ShouldClose() {
		if err := l.Frame(); err != nil {
			return err
		}
		l.updateTitle()
	}

	elapsed := l.Now() - start
	fields := []zap.Field{zap.Uint64("frames", l.frames), zap.Float64("seconds", elapsed)}
	if elapsed > 0 {
		fields = append(fields, zap.Float64("fps", float64(l.frames)/elapsed))
	}
	logger.Log.Info("render loop stopped", fields...)
	return nil
}

// updateTitle shows the frame rate averaged over the last titleInterval.
func (l *Loop) updateTitle() {
	ts, ok := l.Window.(TitleSetter)
	if !ok {
		return
	}
	if l.frames == 1 {
		l.titleAt = l.last
		l.titleFrames = 0
		return
	}
	l.titleFrames++
	elapsed := l.last - l.titleAt
	if elapsed < titleInterval {
		return
	}
	fps := float64(l.titleFrames) / elapsed
	if l.Title == "" {
		ts.SetTitle(fmt.Sprintf("%.0f fps", fps))
	} else {
		ts.SetTitle(fmt.Sprintf("%s | %.0f fps", l.Title, fps))
	}
	l.titleAt = l.last
	l.titleFrames = 0
}
