package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

// PitchLimit bounds the camera pitch in degrees; pitch always stays strictly
// inside (-PitchLimit, PitchLimit) so front never becomes parallel to world up.
const PitchLimit = 89.0

var maxPitch = math.Nextafter32(PitchLimit, 0)

// Movement key bindings.
var (
	KeyForward = core.KeyW
	KeyBack    = core.KeyS
	KeyLeft    = core.KeyA
	KeyRight   = core.KeyD
)

// Camera is a first-person camera driven by yaw/pitch angles in degrees.
type Camera struct {
	Position mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	MoveSpeed float32
	TurnSpeed float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

// NewCamera builds a camera and derives its basis from yaw and pitch.
// yaw = -90 looks down -Z.
func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch, moveSpeed, turnSpeed float32) *Camera {
	c := &Camera{
		Position:  position,
		WorldUp:   worldUp,
		Yaw:       yaw,
		Pitch:     clampPitch(pitch),
		MoveSpeed: moveSpeed,
		TurnSpeed: turnSpeed,
	}
	c.update()
	return c
}

func (c *Camera) Front() mgl32.Vec3 { return c.front }
func (c *Camera) Right() mgl32.Vec3 { return c.right }
func (c *Camera) Up() mgl32.Vec3    { return c.up }

// ApplyMovementInput moves the camera along front/right for every held
// movement key. Opposite keys cancel out.
func (c *Camera) ApplyMovementInput(keys core.KeyState, deltaTime float32) {
	velocity := c.MoveSpeed * deltaTime

	if keys.IsKeyDown(KeyForward) {
		c.Position = c.Position.Add(c.front.Mul(velocity))
	}
	if keys.IsKeyDown(KeyBack) {
		c.Position = c.Position.Sub(c.front.Mul(velocity))
	}
	if keys.IsKeyDown(KeyLeft) {
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	}
	if keys.IsKeyDown(KeyRight) {
		c.Position = c.Position.Add(c.right.Mul(velocity))
	}
}

// ApplyLookInput turns the camera by a cursor delta. Non-finite deltas are
// dropped.
func (c *Camera) ApplyLookInput(xDelta, yDelta float32) {
	if xDelta == 0 && yDelta == 0 {
		return
	}
	if !finite(xDelta) || !finite(yDelta) {
		return
	}
	c.Yaw += xDelta * c.TurnSpeed
	c.Pitch = clampPitch(c.Pitch + yDelta*c.TurnSpeed)
	c.update()
}

// ViewMatrix returns the look-at transform for the current state.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

func (c *Camera) update() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func clampPitch(p float32) float32 {
	if p > maxPitch {
		return maxPitch
	}
	if p < -maxPitch {
		return -maxPitch
	}
	return p
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
