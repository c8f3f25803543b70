package core

import "github.com/go-gl/mathgl/mgl32"

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// RGB drops the alpha channel.
func (c Color) RGB() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetRotationDegrees replaces the rotation with angle degrees about axis.
func (t *Transform) SetRotationDegrees(angle float32, axis mgl32.Vec3) {
	if axis.Len() == 0 {
		t.Rotation = mgl32.QuatIdent()
		return
	}
	t.Rotation = mgl32.QuatRotate(mgl32.DegToRad(angle), axis.Normalize())
}

// Matrix composes translate * rotate * scale: scale is applied to the vertex
// first and translation last.
func (t Transform) Matrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotation := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translation.Mul4(rotation).Mul4(scale)
}
