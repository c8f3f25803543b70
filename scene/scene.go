package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

// FlashOffset lowers the camera-attached spot light below the eye.
var FlashOffset = mgl32.Vec3{0, -0.3, 0}

// Scene owns everything the render loop draws in one frame: the camera, the
// projection, the lights and the objects.
type Scene struct {
	Camera     *Camera
	Projection mgl32.Mat4
	ClearColor core.Color

	Directional *DirectionalLight
	PointLights []PointLight
	SpotLights  []SpotLight

	// Flashlight attaches SpotLights[0] to the camera every Update.
	Flashlight bool

	Objects []*Object

	// Textures, when set, is released with the scene.
	Textures *TextureCache
}

func NewScene(camera *Camera, projection mgl32.Mat4) *Scene {
	return &Scene{
		Camera:     camera,
		Projection: projection,
		ClearColor: core.ColorBlack,
	}
}

// Perspective builds the projection from a vertical field of view in degrees
// and the framebuffer size.
func Perspective(fovDegrees float32, width, height int, near, far float32) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}

func (s *Scene) Add(obj *Object) {
	s.Objects = append(s.Objects, obj)
}

// Find returns the first object with the given name.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func (s *Scene) AddPointLight(l PointLight) {
	s.PointLights = append(s.PointLights, l)
}

func (s *Scene) AddSpotLight(l SpotLight) {
	s.SpotLights = append(s.SpotLights, l)
}

// Update advances animations and moves the flashlight to the camera.
func (s *Scene) Update(dt float32) {
	for _, o := range s.Objects {
		o.Update(dt)
	}
	if s.Flashlight && s.Camera != nil && len(s.SpotLights) > 0 {
		s.SpotLights[0].SetFlash(s.Camera.Position.Add(FlashOffset), s.Camera.Front())
	}
}

// Validate checks every light and material in the scene.
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}
	if s.Directional != nil {
		if err := s.Directional.Validate(); err != nil {
			return fmt.Errorf("directional light: %w", err)
		}
	}
	for i, l := range s.PointLights {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("point light %d: %w", i, err)
		}
	}
	for i, l := range s.SpotLights {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("spot light %d: %w", i, err)
		}
	}
	for _, o := range s.Objects {
		if err := o.Material.Validate(); err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
	}
	return nil
}

// Destroy releases every object's GPU resources and the texture cache.
func (s *Scene) Destroy() {
	for _, o := range s.Objects {
		o.Destroy()
	}
	s.Objects = nil
	if s.Textures != nil {
		s.Textures.DestroyAll()
	}
}
