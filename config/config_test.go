package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glscene/scene"
)

func TestPresetsValidate(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, err := Preset(name)
		if err != nil {
			t.Fatalf("Preset(%q): %v", name, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Preset(%q).Validate: %v", name, err)
		}
		if len(cfg.Objects) == 0 {
			t.Errorf("Preset(%q): expected objects", name)
		}
	}

	if _, err := Preset("nope"); err == nil {
		t.Errorf("Preset: expected error for unknown name")
	}
}

func TestPresetsAreCopies(t *testing.T) {
	a, _ := Preset("lit")
	a.Objects[0].Name = "changed"
	b, _ := Preset("lit")
	if b.Objects[0].Name == "changed" {
		t.Errorf("Preset: expected independent copies")
	}
}

func TestParseOverridesDefault(t *testing.T) {
	src := `
window:
  width: 640
  height: 480
camera:
  position: [1, 2, 3]
lights:
  point:
    - color: [1, 0, 0]
      diffuse: 1
      position: [0, 1, 0]
      constant: 1
  spot:
    - color: [1, 1, 1]
      diffuse: 2
      constant: 1
      direction: [0, -1, 0]
      edge: 15
objects:
  - name: box
    mesh: cube
    position: [0, 0, -3]
    material:
      specular_intensity: 1
      shininess: 32
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("Window: expected 640x480, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "glscene" {
		t.Errorf("Title: expected default kept, got %q", cfg.Window.Title)
	}
	if cfg.Camera.Position != (Vec3{1, 2, 3}) || cfg.Camera.Yaw != -90 {
		t.Errorf("Camera: expected position override with default yaw, got %+v", cfg.Camera)
	}
	if cfg.Projection.FOV != 45 {
		t.Errorf("Projection: expected default fov 45, got %v", cfg.Projection.FOV)
	}

	spot := cfg.Lights.Spot[0].Light()
	if spot.Edge != 15 || spot.Constant != 1 || spot.DiffuseIntensity != 2 {
		t.Errorf("spot: expected inline point fields decoded, got %+v", spot)
	}
	if got := cfg.Objects[0].Material.Material(); got != scene.NewMaterial(1, 32) {
		t.Errorf("material: expected (1, 32), got %+v", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"fov", func(c *Config) { c.Projection.FOV = 180 }, "fov"},
		{"planes", func(c *Config) { c.Projection.Far = 0.05 }, "near"},
		{"shader pair", func(c *Config) { c.Shader.Vertex = "a.vert" }, "both"},
		{"unknown mesh", func(c *Config) { c.Objects[0].Mesh = "teapot" }, "unknown mesh"},
		{"mesh and model", func(c *Config) { c.Objects[0].Model = "a.obj" }, "exclusive"},
		{"nothing to draw", func(c *Config) { c.Objects[0].Mesh = "" }, "required"},
		{"model material", func(c *Config) {
			c.Objects[0].Mesh, c.Objects[0].Model, c.Objects[0].Texture = "", "a.obj", ""
		}, "own parts"},
		{"model texture", func(c *Config) {
			c.Objects[0].Mesh, c.Objects[0].Model, c.Objects[0].Material = "", "a.obj", nil
		}, "own parts"},
		{"material", func(c *Config) { c.Objects[0].Material.Shininess = -1 }, "material"},
		{"flashlight", func(c *Config) { c.Lights.Spot = nil }, "flashlight"},
		{"pulse", func(c *Config) {
			c.Objects[0].Animation = &AnimationConfig{PulseMin: 0.5, PulseMax: 0.2, PulseSpeed: 1}
		}, "pulse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := Preset("lit")
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate: expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateAttenuation(t *testing.T) {
	cfg, _ := Preset("lit")
	cfg.Lights.Point[1].Constant = 0
	cfg.Lights.Point[1].Linear = 0
	cfg.Lights.Point[1].Exponent = 0

	if err := cfg.Validate(); !errors.Is(err, scene.ErrNoAttenuation) {
		t.Errorf("Validate: expected ErrNoAttenuation, got %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	cfg, _ := Preset("pyramids")
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Objects) != 2 || loaded.Objects[1].Animation.PulseMax != 0.8 {
		t.Errorf("Load: expected pyramids preset back, got %+v", loaded.Objects)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load: expected error for missing file")
	}
	if _, err := Parse([]byte("window: [")); err == nil {
		t.Errorf("Parse: expected error for malformed YAML")
	}
}
