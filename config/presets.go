package config

import (
	"fmt"
	"sort"
)

// Default returns the window, camera and projection shared by every preset,
// with no objects and no lights.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "glscene", Width: 1366, Height: 768},
		Camera: CameraConfig{
			Position:  Vec3{0, 0, 0},
			WorldUp:   Vec3{0, 1, 0},
			Yaw:       -90,
			Pitch:     0,
			MoveSpeed: 5,
			TurnSpeed: 0.5,
		},
		Projection: ProjectionConfig{FOV: 45, Near: 0.1, Far: 100},
	}
}

var presets = map[string]func() *Config{
	"pyramids": pyramids,
	"lit":      lit,
	"models":   models,
}

// Preset returns a copy of a built-in scene.
func Preset(name string) (*Config, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene preset %q (have %v)", name, PresetNames())
	}
	return build(), nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// pyramids is two textured pyramids drifting and spinning under flat
// ambient light.
func pyramids() *Config {
	cfg := Default()
	cfg.Window.Title = "glscene - pyramids"
	cfg.Lights.Directional = &DirectionalConfig{
		Color:     Vec3{1, 1, 1},
		Ambient:   1,
		Diffuse:   0,
		Direction: Vec3{0, -1, 0},
	}
	flat := &MaterialConfig{SpecularIntensity: 0, Shininess: 1}
	cfg.Objects = []ObjectConfig{
		{
			Name:     "brick",
			Mesh:     "pyramid",
			Texture:  "textures/brick.png",
			Position: Vec3{0, 0, -2.5},
			Scale:    &Vec3{0.4, 0.4, 1},
			Material: flat,
			Animation: &AnimationConfig{
				OffsetAxis: Vec3{-1, -1, 0}, OffsetMax: 0.7, OffsetSpeed: 0.3,
				SpinAxis: Vec3{0, 1, 0}, SpinSpeed: -30,
			},
		},
		{
			Name:     "dirt",
			Mesh:     "pyramid",
			Texture:  "textures/dirt.png",
			Position: Vec3{0, 1, -10},
			Scale:    &Vec3{0.4, 0.4, 1},
			Material: flat,
			Animation: &AnimationConfig{
				OffsetAxis: Vec3{1, 1, 0}, OffsetMax: 0.7, OffsetSpeed: 0.3,
				SpinAxis: Vec3{0, 1, 0}, SpinSpeed: -30,
				PulseMin: 0.1, PulseMax: 0.8, PulseSpeed: 0.06,
			},
		},
	}
	return cfg
}

// lit shows every light type: a dim sun, two coloured point lights and a
// camera flashlight over a floor with shiny and dull pyramids.
func lit() *Config {
	cfg := Default()
	cfg.Window.Title = "glscene - lights"
	cfg.Camera.Position = Vec3{0, 1, 4}
	cfg.Lights = LightsConfig{
		Directional: &DirectionalConfig{
			Color:     Vec3{1, 1, 1},
			Ambient:   0.2,
			Diffuse:   0.4,
			Direction: Vec3{2, -1, -2},
		},
		Point: []PointConfig{
			{Color: Vec3{0, 0, 1}, Ambient: 0, Diffuse: 1, Position: Vec3{4, 0, 0}, Constant: 0.3, Linear: 0.2, Exponent: 0.1},
			{Color: Vec3{0, 1, 0}, Ambient: 0, Diffuse: 1, Position: Vec3{-4, 2, 0}, Constant: 0.3, Linear: 0.1, Exponent: 0.1},
		},
		Spot: []SpotConfig{
			{
				PointConfig: PointConfig{Color: Vec3{1, 1, 1}, Ambient: 0, Diffuse: 2, Constant: 1, Linear: 0, Exponent: 0},
				Direction:   Vec3{0, -1, 0},
				Edge:        20,
			},
			{
				PointConfig: PointConfig{Color: Vec3{1, 1, 1}, Ambient: 0, Diffuse: 1, Position: Vec3{0, -1.5, 0}, Constant: 1, Linear: 0, Exponent: 0},
				Direction:   Vec3{-100, -1, 0},
				Edge:        20,
			},
		},
		Flashlight: true,
	}
	shiny := &MaterialConfig{SpecularIntensity: 4, Shininess: 256}
	dull := &MaterialConfig{SpecularIntensity: 0.3, Shininess: 4}
	cfg.Objects = []ObjectConfig{
		{Name: "shiny", Mesh: "lit_pyramid", Texture: "textures/brick.png", Position: Vec3{0, 0, -2.5}, Material: shiny},
		{Name: "dull", Mesh: "lit_pyramid", Texture: "textures/dirt.png", Position: Vec3{0, 4, -2.5}, Material: dull},
		{Name: "floor", Mesh: "floor", Texture: "@checker", Position: Vec3{0, -2, 0}, Material: dull},
		{
			Name: "orb", Mesh: "sphere", Position: Vec3{3, 0.5, -4}, Scale: &Vec3{0.5, 0.5, 0.5}, Material: shiny,
			Animation: &AnimationConfig{OffsetAxis: Vec3{0, 1, 0}, OffsetMax: 0.5, OffsetSpeed: 0.5},
		},
	}
	return cfg
}

// models loads model files next to a lit floor.
func models() *Config {
	cfg := lit()
	cfg.Window.Title = "glscene - models"
	cfg.Objects = []ObjectConfig{
		{Name: "floor", Mesh: "floor", Texture: "@checker", Position: Vec3{0, -2, 0}, Material: &MaterialConfig{SpecularIntensity: 0.3, Shininess: 4}},
		{
			Name: "x-wing", Model: "models/x-wing.obj", Position: Vec3{-7, 0, 10}, Scale: &Vec3{0.006, 0.006, 0.006},
			Rotation: RotationConfig{Angle: -90, Axis: Vec3{1, 0, 0}},
		},
		{
			Name: "helmet", Model: "models/DamagedHelmet.glb", Position: Vec3{2, 0, -3},
			Animation: &AnimationConfig{SpinAxis: Vec3{0, 1, 0}, SpinSpeed: 20},
		},
	}
	return cfg
}
