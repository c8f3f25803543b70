package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

func approx(a, b float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func TestAnimationOffsetPingPong(t *testing.T) {
	a := &Animation{OffsetAxis: mgl32.Vec3{1, 0, 0}, OffsetMax: 0.7, OffsetSpeed: 1}

	a.Advance(0.5)
	if !approx(a.Offset(), 0.5) {
		t.Errorf("Offset: expected 0.5, got %v", a.Offset())
	}
	a.Advance(0.5)
	if !approx(a.Offset(), 0.7) {
		t.Errorf("Offset: expected clamp at 0.7, got %v", a.Offset())
	}
	a.Advance(0.5)
	if !approx(a.Offset(), 0.2) {
		t.Errorf("Offset: expected 0.2 after reversing, got %v", a.Offset())
	}

	tr := a.Apply(core.NewTransform())
	if !vecNear(tr.Position, mgl32.Vec3{0.2, 0, 0}) {
		t.Errorf("Apply: expected position (0.2,0,0), got %v", tr.Position)
	}
}

func TestAnimationSpinWraps(t *testing.T) {
	a := &Animation{SpinAxis: mgl32.Vec3{0, 1, 0}, SpinSpeed: 100}

	a.Advance(4)
	if !approx(a.Angle(), 40) {
		t.Errorf("Angle: expected 40, got %v", a.Angle())
	}

	a.SpinSpeed = -100
	a.Advance(1)
	if !approx(a.Angle(), 300) {
		t.Errorf("Angle: expected 300, got %v", a.Angle())
	}
}

func TestAnimationPulseBounds(t *testing.T) {
	a := &Animation{PulseMin: 0.1, PulseMax: 0.8, PulseSpeed: 1}

	if !approx(a.Size(), 0.45) {
		t.Errorf("Size: expected midpoint 0.45, got %v", a.Size())
	}
	a.Advance(1)
	if !approx(a.Size(), 0.8) {
		t.Errorf("Size: expected clamp at 0.8, got %v", a.Size())
	}
	a.Advance(0.3)
	if !approx(a.Size(), 0.5) {
		t.Errorf("Size: expected 0.5, got %v", a.Size())
	}

	tr := a.Apply(core.NewTransform())
	if !vecNear(tr.Scale, mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("Apply: expected scale 0.5, got %v", tr.Scale)
	}
}

func TestAnimationDisabledChannelsLeaveTransform(t *testing.T) {
	a := &Animation{}
	a.Advance(10)

	base := core.NewTransform()
	base.Position = mgl32.Vec3{1, 2, 3}
	if got := a.Apply(base); got != base {
		t.Errorf("Apply: expected unchanged transform, got %v", got)
	}
}
