package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

const eps = 1e-4

// vecNear compares with an absolute tolerance; mgl32's ApproxEqual helpers
// fall back to eps² when one side is exactly zero.
func vecNear(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < eps
}

func matNear(a, b mgl32.Mat4) bool {
	return matWithin(a, b, eps)
}

func matWithin(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func newTestCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, -90, 0, 5, 0.5)
}

func TestCameraInitialBasis(t *testing.T) {
	c := newTestCamera()

	if !vecNear(c.Front(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Front: expected (0,0,-1), got %v", c.Front())
	}
	if !vecNear(c.Right(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Right: expected (1,0,0), got %v", c.Right())
	}
	if !vecNear(c.Up(), mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up: expected (0,1,0), got %v", c.Up())
	}
}

func TestCameraMoveForward(t *testing.T) {
	c := newTestCamera()
	keys := core.NewInput()
	keys.SetKey(core.KeyW, true)

	c.ApplyMovementInput(keys, 1)

	if !vecNear(c.Position, mgl32.Vec3{0, 0, -5}) {
		t.Errorf("Position: expected (0,0,-5), got %v", c.Position)
	}
}

func TestCameraSimultaneousKeys(t *testing.T) {
	c := newTestCamera()
	keys := core.NewInput()
	keys.SetKey(core.KeyW, true)
	keys.SetKey(core.KeyD, true)

	c.ApplyMovementInput(keys, 0.5)

	want := mgl32.Vec3{2.5, 0, -2.5}
	if !vecNear(c.Position, want) {
		t.Errorf("Position: expected %v, got %v", want, c.Position)
	}

	// Opposite keys cancel.
	c.Position = mgl32.Vec3{}
	keys.SetKey(core.KeyD, false)
	keys.SetKey(core.KeyS, true)
	c.ApplyMovementInput(keys, 1)
	if !vecNear(c.Position, mgl32.Vec3{}) {
		t.Errorf("W+S: expected no movement, got %v", c.Position)
	}
}

func TestCameraNoKeysNoMovement(t *testing.T) {
	c := newTestCamera()
	c.ApplyMovementInput(core.NewInput(), 10)
	if c.Position != (mgl32.Vec3{}) {
		t.Errorf("Position: expected origin, got %v", c.Position)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	c := newTestCamera()

	c.ApplyLookInput(0, 1000)
	if c.Pitch >= PitchLimit || c.Pitch < PitchLimit-0.01 {
		t.Errorf("Pitch: expected just below %v, got %v", PitchLimit, c.Pitch)
	}
	if c.Front().Y() >= 1 {
		t.Errorf("Front: expected not parallel to world up, got %v", c.Front())
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100000; i++ {
		dx := (rng.Float32() - 0.5) * 400
		dy := (rng.Float32() - 0.5) * 400
		c.ApplyLookInput(dx, dy)
		if c.Pitch >= PitchLimit || c.Pitch <= -PitchLimit {
			t.Fatalf("step %d: pitch %v escaped (-%v, %v)", i, c.Pitch, PitchLimit, PitchLimit)
		}
		if d := c.Front().Dot(c.Up()); d > eps || d < -eps {
			t.Fatalf("step %d: Front.Up expected 0, got %v", i, d)
		}
	}
}

func TestCameraIgnoresNonFiniteLook(t *testing.T) {
	c := newTestCamera()
	c.ApplyLookInput(10, 4)
	yaw, pitch, front := c.Yaw, c.Pitch, c.Front()

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	c.ApplyLookInput(nan, 0)
	c.ApplyLookInput(0, nan)
	c.ApplyLookInput(inf, -inf)

	if c.Yaw != yaw || c.Pitch != pitch || c.Front() != front {
		t.Errorf("non-finite delta: expected no change, got yaw %v pitch %v front %v", c.Yaw, c.Pitch, c.Front())
	}
}

func TestCameraLookInput(t *testing.T) {
	c := newTestCamera()

	c.ApplyLookInput(180, 0)
	if c.Yaw != 0 {
		t.Errorf("Yaw: expected 0, got %v", c.Yaw)
	}
	if !vecNear(c.Front(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Front: expected (1,0,0), got %v", c.Front())
	}

	before := *c
	c.ApplyLookInput(0, 0)
	if c.Yaw != before.Yaw || c.Pitch != before.Pitch || c.Front() != before.Front() {
		t.Errorf("zero delta: expected no change")
	}
}

func TestCameraViewMatrix(t *testing.T) {
	c := newTestCamera()
	c.Position = mgl32.Vec3{3, 2, 1}
	c.ApplyLookInput(37, 21)

	view := c.ViewMatrix()

	eye := view.Mul4x1(c.Position.Vec4(1)).Vec3()
	if !vecNear(eye, mgl32.Vec3{}) {
		t.Errorf("view*position: expected origin, got %v", eye)
	}

	ahead := view.Mul4x1(c.Position.Add(c.Front()).Vec4(1)).Vec3()
	if !vecNear(ahead, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("view*(position+front): expected (0,0,-1), got %v", ahead)
	}

	if view != c.ViewMatrix() {
		t.Errorf("ViewMatrix: expected repeated calls to agree")
	}
}

func TestCameraViewMatrixInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ident := mgl32.Ident4()

	for i := 0; i < 2000; i++ {
		pos := mgl32.Vec3{
			(rng.Float32() - 0.5) * 100,
			(rng.Float32() - 0.5) * 100,
			(rng.Float32() - 0.5) * 100,
		}
		yaw := (rng.Float32() - 0.5) * 720
		pitch := (rng.Float32()*2 - 1) * (PitchLimit - 0.01)
		c := NewCamera(pos, mgl32.Vec3{0, 1, 0}, yaw, pitch, 5, 0.5)

		view := c.ViewMatrix()
		if got := view.Mul4(view.Inv()); !matWithin(got, ident, 1e-3) {
			t.Fatalf("pos %v yaw %v pitch %v: expected V*V^-1 = I, got %v", pos, yaw, pitch, got)
		}
	}
}
