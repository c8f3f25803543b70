package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/gpu"
)

// ErrMeshNotCreated is returned by Render on a mesh without GPU buffers.
var ErrMeshNotCreated = errors.New("mesh has not been created")

// MeshData is CPU-side interleaved vertex data ready for upload.
type MeshData struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	Layout   gpu.VertexLayout
}

// VertexCount returns the number of whole vertices in Vertices.
func (d MeshData) VertexCount() int {
	return len(d.Vertices) / d.Layout.Floats()
}

// Validate checks the vertex slice holds whole vertices and every index
// addresses one of them.
func (d MeshData) Validate() error {
	if len(d.Vertices) == 0 || len(d.Indices) == 0 {
		return fmt.Errorf("mesh %q: no vertices or indices", d.Name)
	}
	if len(d.Vertices)%d.Layout.Floats() != 0 {
		return fmt.Errorf("mesh %q: %d floats is not a multiple of the %d-float vertex",
			d.Name, len(d.Vertices), d.Layout.Floats())
	}
	n := uint32(d.VertexCount())
	for i, idx := range d.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: index %d at %d out of range (%d vertices)", d.Name, idx, i, n)
		}
	}
	return nil
}

// Mesh owns one vertex array with its vertex and index buffers.
type Mesh struct {
	Name   string
	Layout gpu.VertexLayout

	dev     gpu.Device
	buffers gpu.Buffers
	created bool
}

func NewMesh(dev gpu.Device, name string) *Mesh {
	return &Mesh{Name: name, dev: dev}
}

// CreateMesh builds and uploads a mesh in one step.
func CreateMesh(dev gpu.Device, data MeshData) (*Mesh, error) {
	m := NewMesh(dev, data.Name)
	if err := m.Create(data.Vertices, data.Indices, data.Layout); err != nil {
		return nil, err
	}
	return m, nil
}

// Create uploads the vertex and index data. On failure the mesh stays
// unusable and Render keeps returning ErrMeshNotCreated.
func (m *Mesh) Create(vertices []float32, indices []uint32, layout gpu.VertexLayout) error {
	if m.created {
		return fmt.Errorf("mesh %q already created", m.Name)
	}
	data := MeshData{Name: m.Name, Vertices: vertices, Indices: indices, Layout: layout}
	if err := data.Validate(); err != nil {
		return err
	}

	b, err := m.dev.CreateBuffers(layout, vertices, indices)
	if err != nil {
		return fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	m.buffers = b
	m.Layout = layout
	m.created = true
	return nil
}

func (m *Mesh) Created() bool     { return m.created }
func (m *Mesh) IndexCount() int32 { return m.buffers.IndexCount }

// Render issues an indexed draw of the whole mesh.
func (m *Mesh) Render() error {
	if !m.created {
		return ErrMeshNotCreated
	}
	m.dev.DrawIndexed(m.buffers)
	return nil
}

// Destroy releases the GPU buffers. Calling it again is a no-op.
func (m *Mesh) Destroy() {
	if !m.created {
		return
	}
	m.dev.DeleteBuffers(m.buffers)
	m.buffers = gpu.Buffers{}
	m.created = false
}

// CalcAverageNormals writes a smooth per-vertex normal computed by summing
// the normals of every triangle that uses the vertex. The layout must carry
// normals; vertices not referenced by any triangle keep their normal.
func CalcAverageNormals(vertices []float32, indices []uint32, layout gpu.VertexLayout) {
	off := layout.NormalOffset()
	if off < 0 {
		return
	}
	stride := layout.Floats()
	vertexCount := len(vertices) / stride

	pos := func(i uint32) mgl32.Vec3 {
		b := int(i) * stride
		return mgl32.Vec3{vertices[b], vertices[b+1], vertices[b+2]}
	}

	sums := make([]mgl32.Vec3, vertexCount)
	used := make([]bool, vertexCount)
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= vertexCount || int(i1) >= vertexCount || int(i2) >= vertexCount {
			continue
		}
		n := pos(i1).Sub(pos(i0)).Cross(pos(i2).Sub(pos(i0)))
		if n.Len() == 0 {
			continue
		}
		n = n.Normalize()
		for _, idx := range [3]uint32{i0, i1, i2} {
			sums[idx] = sums[idx].Add(n)
			used[idx] = true
		}
	}

	for v := 0; v < vertexCount; v++ {
		if !used[v] || sums[v].Len() == 0 {
			continue
		}
		n := sums[v].Normalize()
		b := v*stride + off
		vertices[b], vertices[b+1], vertices[b+2] = n[0], n[1], n[2]
	}
}
