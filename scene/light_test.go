package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

func TestPointLightValidate(t *testing.T) {
	tests := []struct {
		name    string
		light   PointLight
		wantErr error
	}{
		{"valid", NewPointLight(core.ColorWhite, 0.1, 0.5, mgl32.Vec3{}, 0.3, 0.2, 0.1), nil},
		{"constant only", NewPointLight(core.ColorWhite, 0.1, 0.5, mgl32.Vec3{}, 1, 0, 0), nil},
		{"negative linear", NewPointLight(core.ColorWhite, 0.1, 0.5, mgl32.Vec3{}, 1, -0.1, 0), ErrNegativeAttenuation},
		{"all zero", NewPointLight(core.ColorWhite, 0.1, 0.5, mgl32.Vec3{}, 0, 0, 0), ErrNoAttenuation},
		{"negative diffuse", NewPointLight(core.ColorWhite, 0.1, -1, mgl32.Vec3{}, 1, 0, 0), ErrNegativeIntensity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.light.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate: expected nil, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate: expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDirectionalLight(t *testing.T) {
	d := NewDirectionalLight(core.ColorWhite, 0.3, 0.6, mgl32.Vec3{0, 0, -4})
	if got := d.NormalizedDirection(); !vecNear(got, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("NormalizedDirection: expected (0,0,-1), got %v", got)
	}

	d.Direction = mgl32.Vec3{}
	if got := d.NormalizedDirection(); got != (mgl32.Vec3{}) {
		t.Errorf("NormalizedDirection: expected zero vector to stay zero, got %v", got)
	}

	d.AmbientIntensity = -0.1
	if !errors.Is(d.Validate(), ErrNegativeIntensity) {
		t.Errorf("Validate: expected ErrNegativeIntensity")
	}
}

func TestSpotLight(t *testing.T) {
	base := NewPointLight(core.ColorWhite, 0, 1, mgl32.Vec3{}, 1, 0, 0)
	s := NewSpotLight(base, mgl32.Vec3{0, -2, 0}, 60)

	if got := s.CosEdge(); got < 0.5-eps || got > 0.5+eps {
		t.Errorf("CosEdge: expected 0.5, got %v", got)
	}
	if got := s.NormalizedDirection(); !vecNear(got, mgl32.Vec3{0, -1, 0}) {
		t.Errorf("NormalizedDirection: expected (0,-1,0), got %v", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: expected nil, got %v", err)
	}

	s.SetFlash(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -1})
	if s.Position != (mgl32.Vec3{1, 2, 3}) || s.Direction != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("SetFlash: expected position and direction replaced, got %v %v", s.Position, s.Direction)
	}

	for _, edge := range []float32{0, 180, -5} {
		s.Edge = edge
		if s.Validate() == nil {
			t.Errorf("Validate: expected error for edge %v", edge)
		}
	}

	s.Edge = 20
	s.Constant = 0
	if !errors.Is(s.Validate(), ErrNoAttenuation) {
		t.Errorf("Validate: expected embedded point light check")
	}
}

type recordingBinder struct {
	materials []Material
	textures  []*Texture
}

func (b *recordingBinder) BindMaterial(specularIntensity, shininess float32) {
	b.materials = append(b.materials, Material{SpecularIntensity: specularIntensity, Shininess: shininess})
}

func (b *recordingBinder) BindTexture(t *Texture) {
	b.textures = append(b.textures, t)
}

func TestMaterial(t *testing.T) {
	b := &recordingBinder{}
	NewMaterial(4, 256).Use(b)
	if len(b.materials) != 1 || b.materials[0] != (Material{4, 256}) {
		t.Errorf("Use: expected (4, 256) bound, got %v", b.materials)
	}

	if err := (Material{}).Validate(); err != nil {
		t.Errorf("Validate: expected zero material to be valid, got %v", err)
	}
	if !errors.Is(NewMaterial(-1, 2).Validate(), ErrNegativeMaterial) {
		t.Errorf("Validate: expected ErrNegativeMaterial for negative intensity")
	}
	if !errors.Is(NewMaterial(1, -2).Validate(), ErrNegativeMaterial) {
		t.Errorf("Validate: expected ErrNegativeMaterial for negative shininess")
	}
}
