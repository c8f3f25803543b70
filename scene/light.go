package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

// Light capacities. The same values are compiled into the fragment shader as
// MAX_POINT_LIGHTS / MAX_SPOT_LIGHTS, so they size both the Go-side uniform
// tables and the GLSL arrays.
const (
	MaxPointLights = 3
	MaxSpotLights  = 3
)

var (
	ErrNegativeIntensity   = errors.New("light intensity must be >= 0")
	ErrNegativeAttenuation = errors.New("attenuation coefficients must be >= 0")
	ErrNoAttenuation       = errors.New("at least one attenuation coefficient must be > 0")
)

// Light holds the parameters every light type shares.
type Light struct {
	Color            core.Color
	AmbientIntensity float32
	DiffuseIntensity float32
}

func (l Light) validate() error {
	if l.AmbientIntensity < 0 || l.DiffuseIntensity < 0 {
		return ErrNegativeIntensity
	}
	return nil
}

type DirectionalLight struct {
	Light
	Direction mgl32.Vec3
}

func NewDirectionalLight(color core.Color, ambient, diffuse float32, direction mgl32.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Light:     Light{Color: color, AmbientIntensity: ambient, DiffuseIntensity: diffuse},
		Direction: direction,
	}
}

// NormalizedDirection returns the unit direction; a zero vector stays zero.
func (d *DirectionalLight) NormalizedDirection() mgl32.Vec3 {
	if d.Direction.Len() == 0 {
		return d.Direction
	}
	return d.Direction.Normalize()
}

func (d *DirectionalLight) Validate() error {
	return d.validate()
}

// PointLight falls off with distance d as 1 / (Exponent*d² + Linear*d + Constant).
type PointLight struct {
	Light
	Position mgl32.Vec3
	Constant float32
	Linear   float32
	Exponent float32
}

func NewPointLight(color core.Color, ambient, diffuse float32, position mgl32.Vec3, constant, linear, exponent float32) PointLight {
	return PointLight{
		Light:    Light{Color: color, AmbientIntensity: ambient, DiffuseIntensity: diffuse},
		Position: position,
		Constant: constant,
		Linear:   linear,
		Exponent: exponent,
	}
}

func (p PointLight) Validate() error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.Constant < 0 || p.Linear < 0 || p.Exponent < 0 {
		return ErrNegativeAttenuation
	}
	if p.Constant == 0 && p.Linear == 0 && p.Exponent == 0 {
		return ErrNoAttenuation
	}
	return nil
}

// SpotLight is a point light restricted to a cone around Direction.
// Edge is the cone's half angle in degrees.
type SpotLight struct {
	PointLight
	Direction mgl32.Vec3
	Edge      float32
}

func NewSpotLight(point PointLight, direction mgl32.Vec3, edge float32) SpotLight {
	return SpotLight{PointLight: point, Direction: direction, Edge: edge}
}

// CosEdge returns cos(Edge), the value the fragment shader compares against.
func (s SpotLight) CosEdge() float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(s.Edge))))
}

// NormalizedDirection returns the unit direction; a zero vector stays zero.
func (s SpotLight) NormalizedDirection() mgl32.Vec3 {
	if s.Direction.Len() == 0 {
		return s.Direction
	}
	return s.Direction.Normalize()
}

// SetFlash places the light at pos pointing along dir, used to attach a
// torch to the camera.
func (s *SpotLight) SetFlash(pos, dir mgl32.Vec3) {
	s.Position = pos
	s.Direction = dir
}

func (s SpotLight) Validate() error {
	if err := s.PointLight.Validate(); err != nil {
		return err
	}
	if s.Edge <= 0 || s.Edge >= 180 {
		return fmt.Errorf("spot light edge %v must be in (0, 180) degrees", s.Edge)
	}
	return nil
}
