// Package app turns a config.Config into GPU-ready scene objects.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"glscene/config"
	"glscene/gpu"
	"glscene/internal/logger"
	"glscene/renderer"
	"glscene/scene"
	"glscene/shaders"
)

// NewShader builds the configured program, falling back to the embedded
// sources when no paths are set.
func NewShader(cfg *config.Config, dev gpu.Device) (*renderer.Shader, error) {
	if cfg.Shader.Vertex == "" {
		s := renderer.NewShader(dev, "embedded")
		if err := s.Compile(shaders.Vertex, shaders.Fragment); err != nil {
			return nil, err
		}
		return s, nil
	}

	s := renderer.NewShader(dev, cfg.Shader.Vertex)
	if err := s.CompileFiles(cfg.Shader.Vertex, cfg.Shader.Fragment); err != nil {
		return nil, err
	}
	return s, nil
}

type builder struct {
	dev      gpu.Device
	textures *scene.TextureCache
}

// BuildScene uploads every object and converts the lights. The projection
// aspect comes from the framebuffer size. Objects whose assets fail to load
// are logged and skipped.
func BuildScene(cfg *config.Config, dev gpu.Device, fbWidth, fbHeight int) (*scene.Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := cfg.Camera
	cam := scene.NewCamera(c.Position.Vec(), c.WorldUp.Vec(), c.Yaw, c.Pitch, c.MoveSpeed, c.TurnSpeed)
	p := cfg.Projection
	sc := scene.NewScene(cam, scene.Perspective(p.FOV, fbWidth, fbHeight, p.Near, p.Far))
	sc.ClearColor = cfg.ClearColor.Color()

	if d := cfg.Lights.Directional; d != nil {
		sc.Directional = d.Light()
	}
	for _, pl := range cfg.Lights.Point {
		sc.AddPointLight(pl.Light())
	}
	for _, sl := range cfg.Lights.Spot {
		sc.AddSpotLight(sl.Light())
	}
	sc.Flashlight = cfg.Lights.Flashlight

	if n := len(sc.PointLights); n > scene.MaxPointLights {
		logger.Log.Warn("too many point lights, extra ones are ignored",
			zap.Int("configured", n), zap.Int("max", scene.MaxPointLights))
	}
	if n := len(sc.SpotLights); n > scene.MaxSpotLights {
		logger.Log.Warn("too many spot lights, extra ones are ignored",
			zap.Int("configured", n), zap.Int("max", scene.MaxSpotLights))
	}

	b := &builder{dev: dev, textures: scene.NewTextureCache(dev)}
	sc.Textures = b.textures
	for i, oc := range cfg.Objects {
		obj, err := b.object(i, oc)
		if err != nil {
			logger.Log.Error("object skipped", zap.String("object", oc.Name), zap.Error(err))
			continue
		}
		sc.Add(obj)
	}

	logger.Log.Info("scene built",
		zap.Int("objects", len(sc.Objects)),
		zap.Int("point_lights", len(sc.PointLights)),
		zap.Int("spot_lights", len(sc.SpotLights)),
		zap.Int("textures", b.textures.Len()))
	return sc, nil
}

func (b *builder) object(i int, oc config.ObjectConfig) (*scene.Object, error) {
	name := oc.Name
	if name == "" {
		name = fmt.Sprintf("object%d", i)
	}

	obj := scene.NewObject(name, nil)
	obj.Transform.Position = oc.Position.Vec()
	obj.Transform.SetRotationDegrees(oc.Rotation.Angle, oc.Rotation.Axis.Vec())
	if oc.Scale != nil {
		obj.Transform.Scale = oc.Scale.Vec()
	}
	if oc.Material != nil {
		obj.Material = oc.Material.Material()
	}
	if oc.Animation != nil {
		obj.Animation = oc.Animation.Animation()
	}

	if oc.Model != "" {
		data, err := scene.LoadModel(oc.Model)
		if err != nil {
			return nil, err
		}
		model, err := scene.UploadModel(b.dev, data)
		if err != nil {
			return nil, err
		}
		obj.Model = model
		return obj, nil
	}

	mesh, err := scene.CreateMesh(b.dev, config.Primitives[oc.Mesh]())
	if err != nil {
		return nil, err
	}
	obj.Mesh = mesh

	if oc.Texture != "" {
		obj.Texture = b.textures.GetOrDefault(oc.Texture)
	}
	return obj, nil
}
