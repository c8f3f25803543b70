// Package config describes a scene in YAML: window, camera, projection,
// shader sources, objects and lights. Built-in presets cover the demo scenes.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"glscene/core"
	"glscene/scene"
)

// Vec3 is a YAML-friendly three component vector: [x, y, z].
type Vec3 [3]float32

func (v Vec3) Vec() mgl32.Vec3 { return mgl32.Vec3(v) }

// Color returns v as an opaque RGB colour.
func (v Vec3) Color() core.Color { return core.Color{R: v[0], G: v[1], B: v[2], A: 1} }

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Shader     ShaderConfig     `yaml:"shader"`
	ClearColor Vec3             `yaml:"clear_color"`
	Lights     LightsConfig     `yaml:"lights"`
	Objects    []ObjectConfig   `yaml:"objects"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	Position  Vec3    `yaml:"position"`
	WorldUp   Vec3    `yaml:"world_up"`
	Yaw       float32 `yaml:"yaw"`
	Pitch     float32 `yaml:"pitch"`
	MoveSpeed float32 `yaml:"move_speed"`
	TurnSpeed float32 `yaml:"turn_speed"`
}

type ProjectionConfig struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// ShaderConfig points at GLSL files on disk. Empty paths select the embedded
// program.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

type LightsConfig struct {
	Directional *DirectionalConfig `yaml:"directional"`
	Point       []PointConfig      `yaml:"point"`
	Spot        []SpotConfig       `yaml:"spot"`
	// Flashlight attaches the first spot light to the camera.
	Flashlight bool `yaml:"flashlight"`
}

type DirectionalConfig struct {
	Color     Vec3    `yaml:"color"`
	Ambient   float32 `yaml:"ambient"`
	Diffuse   float32 `yaml:"diffuse"`
	Direction Vec3    `yaml:"direction"`
}

func (d DirectionalConfig) Light() *scene.DirectionalLight {
	return scene.NewDirectionalLight(d.Color.Color(), d.Ambient, d.Diffuse, d.Direction.Vec())
}

type PointConfig struct {
	Color    Vec3    `yaml:"color"`
	Ambient  float32 `yaml:"ambient"`
	Diffuse  float32 `yaml:"diffuse"`
	Position Vec3    `yaml:"position"`
	Constant float32 `yaml:"constant"`
	Linear   float32 `yaml:"linear"`
	Exponent float32 `yaml:"exponent"`
}

func (p PointConfig) Light() scene.PointLight {
	return scene.NewPointLight(p.Color.Color(), p.Ambient, p.Diffuse, p.Position.Vec(), p.Constant, p.Linear, p.Exponent)
}

type SpotConfig struct {
	PointConfig `yaml:",inline"`
	Direction   Vec3    `yaml:"direction"`
	Edge        float32 `yaml:"edge"`
}

func (s SpotConfig) Light() scene.SpotLight {
	return scene.NewSpotLight(s.PointConfig.Light(), s.Direction.Vec(), s.Edge)
}

// ObjectConfig places one mesh primitive or one model file in the scene.
type ObjectConfig struct {
	Name string `yaml:"name"`
	// Mesh is a built-in primitive: pyramid, lit_pyramid, floor, cube or sphere.
	Mesh string `yaml:"mesh"`
	// Model is an .obj, .gltf or .glb path.
	Model   string `yaml:"model"`
	Texture string `yaml:"texture"`

	Position Vec3           `yaml:"position"`
	Rotation RotationConfig `yaml:"rotation"`
	Scale    *Vec3          `yaml:"scale"`

	Material  *MaterialConfig  `yaml:"material"`
	Animation *AnimationConfig `yaml:"animation"`
}

type RotationConfig struct {
	Angle float32 `yaml:"angle"`
	Axis  Vec3    `yaml:"axis"`
}

type MaterialConfig struct {
	SpecularIntensity float32 `yaml:"specular_intensity"`
	Shininess         float32 `yaml:"shininess"`
}

func (m MaterialConfig) Material() scene.Material {
	return scene.NewMaterial(m.SpecularIntensity, m.Shininess)
}

type AnimationConfig struct {
	OffsetAxis  Vec3    `yaml:"offset_axis"`
	OffsetMax   float32 `yaml:"offset_max"`
	OffsetSpeed float32 `yaml:"offset_speed"`
	SpinAxis    Vec3    `yaml:"spin_axis"`
	SpinSpeed   float32 `yaml:"spin_speed"`
	PulseMin    float32 `yaml:"pulse_min"`
	PulseMax    float32 `yaml:"pulse_max"`
	PulseSpeed  float32 `yaml:"pulse_speed"`
}

func (a AnimationConfig) Animation() *scene.Animation {
	return &scene.Animation{
		OffsetAxis:  a.OffsetAxis.Vec(),
		OffsetMax:   a.OffsetMax,
		OffsetSpeed: a.OffsetSpeed,
		SpinAxis:    a.SpinAxis.Vec(),
		SpinSpeed:   a.SpinSpeed,
		PulseMin:    a.PulseMin,
		PulseMax:    a.PulseMax,
		PulseSpeed:  a.PulseSpeed,
	}
}

// Primitives lists the built-in mesh names accepted by ObjectConfig.Mesh.
var Primitives = map[string]func() scene.MeshData{
	"pyramid":     scene.Pyramid,
	"lit_pyramid": scene.LitPyramid,
	"floor":       func() scene.MeshData { return scene.Floor(10) },
	"cube":        func() scene.MeshData { return scene.Cube(1) },
	"sphere":      func() scene.MeshData { return scene.Sphere(1, 32, 16) },
}

// Load reads a YAML file. Fields the file omits keep the Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Projection.FOV <= 0 || c.Projection.FOV >= 180 {
		errs = append(errs, fmt.Errorf("projection fov %v must be in (0, 180)", c.Projection.FOV))
	}
	if c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near {
		errs = append(errs, fmt.Errorf("projection planes near=%v far=%v must satisfy 0 < near < far",
			c.Projection.Near, c.Projection.Far))
	}
	if c.Camera.WorldUp.Vec().Len() == 0 {
		errs = append(errs, errors.New("camera world_up must be non-zero"))
	}
	if (c.Shader.Vertex == "") != (c.Shader.Fragment == "") {
		errs = append(errs, errors.New("shader vertex and fragment must both be set or both be empty"))
	}

	if d := c.Lights.Directional; d != nil {
		if err := d.Light().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("directional light: %w", err))
		}
	}
	for i, p := range c.Lights.Point {
		if err := p.Light().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("point light %d: %w", i, err))
		}
	}
	for i, s := range c.Lights.Spot {
		if err := s.Light().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("spot light %d: %w", i, err))
		}
	}
	if c.Lights.Flashlight && len(c.Lights.Spot) == 0 {
		errs = append(errs, errors.New("flashlight needs at least one spot light"))
	}

	for i, o := range c.Objects {
		name := o.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		switch {
		case o.Mesh == "" && o.Model == "":
			errs = append(errs, fmt.Errorf("object %s: one of mesh or model is required", name))
		case o.Mesh != "" && o.Model != "":
			errs = append(errs, fmt.Errorf("object %s: mesh and model are exclusive", name))
		case o.Mesh != "":
			if _, ok := Primitives[o.Mesh]; !ok {
				errs = append(errs, fmt.Errorf("object %s: unknown mesh %q", name, o.Mesh))
			}
		case o.Material != nil || o.Texture != "":
			errs = append(errs, fmt.Errorf("object %s: a model takes material and texture from its own parts", name))
		}
		if o.Material != nil {
			if err := o.Material.Material().Validate(); err != nil {
				errs = append(errs, fmt.Errorf("object %s: %w", name, err))
			}
		}
		if a := o.Animation; a != nil && a.PulseSpeed != 0 && (a.PulseMin <= 0 || a.PulseMax <= a.PulseMin) {
			errs = append(errs, fmt.Errorf("object %s: pulse range [%v, %v] is invalid", name, a.PulseMin, a.PulseMax))
		}
	}

	return errors.Join(errs...)
}
