package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b []float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > 1e-5 || d < -1e-5 {
			return false
		}
	}
	return true
}

func TestTransformIdentity(t *testing.T) {
	m := NewTransform().Matrix()
	if ident := mgl32.Ident4(); !near(m[:], ident[:]) {
		t.Errorf("Matrix: expected identity, got %v", m)
	}
}

func TestTransformOrder(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	tr.SetRotationDegrees(90, mgl32.Vec3{0, 1, 0})

	// (1,0,0) scaled to (2,0,0), rotated 90° about Y to (0,0,-2), then translated.
	got := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	expected := mgl32.Vec3{10, 0, -2}
	if !near(got[:], expected[:]) {
		t.Errorf("Matrix: expected %v, got %v", expected, got)
	}
}

func TestTransformZeroAxis(t *testing.T) {
	tr := NewTransform()
	tr.SetRotationDegrees(45, mgl32.Vec3{})
	if tr.Rotation != mgl32.QuatIdent() {
		t.Errorf("SetRotationDegrees: expected identity for zero axis, got %v", tr.Rotation)
	}
}
