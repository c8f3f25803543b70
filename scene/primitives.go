package scene

import (
	"math"

	"glscene/gpu"
)

var (
	layoutUV       = gpu.VertexLayout{HasUV: true}
	layoutUVNormal = gpu.VertexLayout{HasUV: true, HasNormal: true}
)

// Pyramid returns a four-vertex tetrahedron with UVs and no normals.
func Pyramid() MeshData {
	return MeshData{
		Name: "Pyramid",
		Vertices: []float32{
			//	x      y     z		u     v
			-1.0, -1.0, 0.0, 0.0, 0.0,
			0.0, -1.0, 1.0, 0.5, 0.0,
			1.0, -1.0, 0.0, 1.0, 0.0,
			0.0, 1.0, 0.0, 0.5, 1.0,
		},
		Indices: []uint32{
			0, 3, 1,
			1, 3, 2,
			2, 3, 0,
			0, 1, 2,
		},
		Layout: layoutUV,
	}
}

// LitPyramid is Pyramid with smoothed normals for the lighting shader.
func LitPyramid() MeshData {
	base := Pyramid()
	n := base.VertexCount()
	vertices := make([]float32, 0, n*layoutUVNormal.Floats())
	for i := 0; i < n; i++ {
		v := base.Vertices[i*5 : i*5+5]
		vertices = append(vertices, v[0], v[1], v[2], v[3], v[4], 0, 0, 0)
	}
	CalcAverageNormals(vertices, base.Indices, layoutUVNormal)
	return MeshData{Name: "LitPyramid", Vertices: vertices, Indices: base.Indices, Layout: layoutUVNormal}
}

// Floor returns a horizontal square of the given half-size at y = 0,
// facing up, with UVs repeating every unit.
func Floor(halfSize float32) MeshData {
	s := halfSize
	return MeshData{
		Name: "Floor",
		Vertices: []float32{
			-s, 0, -s, 0, 0, 0, 1, 0,
			s, 0, -s, 2 * s, 0, 0, 1, 0,
			-s, 0, s, 0, 2 * s, 0, 1, 0,
			s, 0, s, 2 * s, 2 * s, 0, 1, 0,
		},
		Indices: []uint32{
			0, 2, 1,
			1, 2, 3,
		},
		Layout: layoutUVNormal,
	}
}

// Cube returns an axis-aligned cube with per-face normals and UVs.
func Cube(size float32) MeshData {
	s := size / 2
	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{s, -s, -s}, {-s, -s, -s}, {-s, s, -s}, {s, s, -s}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-s, s, s}, {s, s, s}, {s, s, -s}, {-s, s, -s}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-s, -s, -s}, {s, -s, -s}, {s, -s, s}, {-s, -s, s}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{s, -s, s}, {s, -s, -s}, {s, s, -s}, {s, s, s}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-s, -s, -s}, {-s, -s, s}, {-s, s, s}, {-s, s, -s}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	data := MeshData{Name: "Cube", Layout: layoutUVNormal}
	for i, f := range faces {
		for c := 0; c < 4; c++ {
			p := f.corners[c]
			data.Vertices = append(data.Vertices,
				p[0], p[1], p[2], uvs[c][0], uvs[c][1], f.normal[0], f.normal[1], f.normal[2])
		}
		b := uint32(i * 4)
		data.Indices = append(data.Indices, b, b+1, b+2, b+2, b+3, b)
	}
	return data
}

// Sphere generates a UV sphere with outward normals.
func Sphere(radius float32, segments, rings int) MeshData {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	data := MeshData{Name: "Sphere", Layout: layoutUVNormal}
	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi, cosPhi := float32(math.Sin(phi)), float32(math.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * math.Pi / float64(segments)
			sinTheta, cosTheta := float32(math.Sin(theta)), float32(math.Cos(theta))

			nx, ny, nz := sinPhi*cosTheta, cosPhi, sinPhi*sinTheta
			u := float32(seg) / float32(segments)
			v := float32(ring) / float32(rings)
			data.Vertices = append(data.Vertices, nx*radius, ny*radius, nz*radius, u, v, nx, ny, nz)
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			data.Indices = append(data.Indices, current, next, current+1)
			data.Indices = append(data.Indices, current+1, next, next+1)
		}
	}
	return data
}
