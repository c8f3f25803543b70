package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

// Animation drives an object's transform over time. Each channel is enabled
// by a non-zero speed; rates are per second so animation is frame-rate
// independent.
type Animation struct {
	// Offset ping-pongs the object along OffsetAxis between -OffsetMax and
	// +OffsetMax.
	OffsetAxis  mgl32.Vec3
	OffsetMax   float32
	OffsetSpeed float32

	// Spin rotates about SpinAxis, in degrees per second. The angle wraps at 360.
	SpinAxis  mgl32.Vec3
	SpinSpeed float32

	// Pulse scales uniformly between PulseMin and PulseMax.
	PulseMin   float32
	PulseMax   float32
	PulseSpeed float32

	offset    float32
	offsetDir float32
	angle     float32
	size      float32
	sizeDir   float32
}

// Offset returns the current displacement along OffsetAxis.
func (a *Animation) Offset() float32 { return a.offset }

// Angle returns the current spin angle in degrees, in [0, 360).
func (a *Animation) Angle() float32 { return a.angle }

// Size returns the current pulse scale factor.
func (a *Animation) Size() float32 {
	if a.size == 0 {
		return (a.PulseMin + a.PulseMax) / 2
	}
	return a.size
}

// Advance steps every enabled channel by dt seconds.
func (a *Animation) Advance(dt float32) {
	if a.OffsetSpeed != 0 && a.OffsetMax > 0 {
		if a.offsetDir == 0 {
			a.offsetDir = 1
		}
		a.offset += a.offsetDir * a.OffsetSpeed * dt
		if a.offset >= a.OffsetMax {
			a.offset = a.OffsetMax
			a.offsetDir = -1
		} else if a.offset <= -a.OffsetMax {
			a.offset = -a.OffsetMax
			a.offsetDir = 1
		}
	}

	if a.SpinSpeed != 0 {
		a.angle += a.SpinSpeed * dt
		for a.angle >= 360 {
			a.angle -= 360
		}
		for a.angle < 0 {
			a.angle += 360
		}
	}

	if a.PulseSpeed != 0 && a.PulseMax > a.PulseMin {
		a.size = a.Size()
		if a.sizeDir == 0 {
			a.sizeDir = 1
		}
		a.size += a.sizeDir * a.PulseSpeed * dt
		if a.size >= a.PulseMax {
			a.size = a.PulseMax
			a.sizeDir = -1
		} else if a.size <= a.PulseMin {
			a.size = a.PulseMin
			a.sizeDir = 1
		}
	}
}

// Apply layers the animation state on top of base.
func (a *Animation) Apply(base core.Transform) core.Transform {
	t := base
	if a.OffsetSpeed != 0 && a.OffsetAxis.Len() > 0 {
		t.Position = t.Position.Add(a.OffsetAxis.Normalize().Mul(a.offset))
	}
	if a.SpinSpeed != 0 && a.SpinAxis.Len() > 0 {
		spin := mgl32.QuatRotate(mgl32.DegToRad(a.angle), a.SpinAxis.Normalize())
		t.Rotation = t.Rotation.Mul(spin)
	}
	if a.PulseSpeed != 0 && a.PulseMax > a.PulseMin {
		t.Scale = t.Scale.Mul(a.Size())
	}
	return t
}
