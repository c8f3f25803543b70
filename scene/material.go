package scene

import "errors"

var ErrNegativeMaterial = errors.New("material coefficients must be >= 0")

// MaterialBinder receives material coefficients; the shader implements it.
type MaterialBinder interface {
	BindMaterial(specularIntensity, shininess float32)
}

// Material describes Phong specular response. Zero value is a matte surface.
type Material struct {
	SpecularIntensity float32
	Shininess         float32
}

func NewMaterial(specularIntensity, shininess float32) Material {
	return Material{SpecularIntensity: specularIntensity, Shininess: shininess}
}

// DefaultMaterial returns a dull material used when none is assigned.
func DefaultMaterial() Material {
	return Material{SpecularIntensity: 0.3, Shininess: 4}
}

// Use uploads the coefficients to the active shader.
func (m Material) Use(b MaterialBinder) {
	b.BindMaterial(m.SpecularIntensity, m.Shininess)
}

func (m Material) Validate() error {
	if m.SpecularIntensity < 0 || m.Shininess < 0 {
		return ErrNegativeMaterial
	}
	return nil
}
