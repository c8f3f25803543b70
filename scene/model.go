package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"glscene/gpu"
)

// SurfaceBinder binds per-draw surface state on the active shader.
type SurfaceBinder interface {
	MaterialBinder
	// BindTexture binds t for sampling, or disables texturing when t is nil.
	BindTexture(t *Texture)
}

// PartData is one mesh of a model with its surface description.
type PartData struct {
	Mesh     MeshData
	Material Material
	Texture  *Texture
}

// ModelData is a CPU-side multi-mesh model as produced by the loaders.
type ModelData struct {
	Name  string
	Parts []PartData
}

// LoadModel picks the loader by file extension (.obj, .gltf, .glb).
func LoadModel(path string) (*ModelData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}

type modelPart struct {
	mesh     *Mesh
	material Material
	texture  *Texture
}

// Model is an uploaded ModelData.
type Model struct {
	Name  string
	parts []modelPart
}

// UploadModel creates every mesh and texture. Parts whose mesh fails to
// upload are skipped; the error is returned only when nothing uploaded.
func UploadModel(dev gpu.Device, data *ModelData) (*Model, error) {
	m := &Model{Name: data.Name}
	var firstErr error
	for _, p := range data.Parts {
		mesh, err := CreateMesh(dev, p.Mesh)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if p.Texture != nil {
			if err := p.Texture.Upload(dev); err != nil {
				p.Texture = nil
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		m.parts = append(m.parts, modelPart{mesh: mesh, material: p.Material, texture: p.Texture})
	}
	if len(m.parts) == 0 {
		if firstErr == nil {
			firstErr = fmt.Errorf("model %q has no parts", data.Name)
		}
		return nil, firstErr
	}
	return m, nil
}

func (m *Model) PartCount() int { return len(m.parts) }

// Render draws each part with its own material and texture.
func (m *Model) Render(b SurfaceBinder) error {
	for _, p := range m.parts {
		p.material.Use(b)
		b.BindTexture(p.texture)
		if err := p.mesh.Render(); err != nil {
			return fmt.Errorf("model %q part %q: %w", m.Name, p.mesh.Name, err)
		}
	}
	return nil
}

// Destroy frees all meshes and textures. Textures shared between parts are
// released once.
func (m *Model) Destroy() {
	for _, p := range m.parts {
		p.mesh.Destroy()
		if p.texture != nil {
			p.texture.Destroy()
		}
	}
	m.parts = nil
}
