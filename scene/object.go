package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/core"
)

// Object is one drawable instance: either a single Mesh with its own
// material and texture, or a Model whose parts carry their own surfaces.
type Object struct {
	Name      string
	Transform core.Transform
	Mesh      *Mesh
	Model     *Model
	Material  Material
	Texture   *Texture
	Animation *Animation
}

func NewObject(name string, mesh *Mesh) *Object {
	return &Object{
		Name:      name,
		Transform: core.NewTransform(),
		Mesh:      mesh,
		Material:  DefaultMaterial(),
	}
}

// Update advances the object's animation.
func (o *Object) Update(dt float32) {
	if o.Animation != nil {
		o.Animation.Advance(dt)
	}
}

// WorldTransform returns the transform including animation.
func (o *Object) WorldTransform() core.Transform {
	if o.Animation == nil {
		return o.Transform
	}
	return o.Animation.Apply(o.Transform)
}

// ModelMatrix returns T*R*S of the world transform.
func (o *Object) ModelMatrix() mgl32.Mat4 {
	return o.WorldTransform().Matrix()
}

// Draw binds the object's surface on b and issues its draw calls. The model
// matrix must already be uploaded.
func (o *Object) Draw(b SurfaceBinder) error {
	if o.Model != nil {
		return o.Model.Render(b)
	}
	if o.Mesh == nil {
		return fmt.Errorf("object %q has nothing to draw", o.Name)
	}
	o.Material.Use(b)
	b.BindTexture(o.Texture)
	if err := o.Mesh.Render(); err != nil {
		return fmt.Errorf("object %q: %w", o.Name, err)
	}
	return nil
}

// Destroy releases the object's GPU resources. Shared resources tolerate
// repeated destruction.
func (o *Object) Destroy() {
	if o.Model != nil {
		o.Model.Destroy()
	}
	if o.Mesh != nil {
		o.Mesh.Destroy()
	}
	if o.Texture != nil {
		o.Texture.Destroy()
	}
}
