package scene

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"glscene/internal/logger"
)

// LoadGLTF opens a .glb or .gltf file and flattens its default scene into
// model parts: every mesh primitive reachable from the scene roots becomes a
// part with node transforms baked into its vertices. Metallic-roughness is
// approximated to the Phong material.
func LoadGLTF(path string) (*ModelData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	// ── 1. Textures ──────────────────────────────────────────────────────────
	texCache := make([]*Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var tex *Texture
		switch {
		case img.BufferView != nil:
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				logger.Log.Warn("gltf image buffer view", zap.Int("image", *gt.Source), zap.Error(err))
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", *gt.Source)
			}
			tex, err = decodeTextureBytes(name, raw)
			if err != nil {
				logger.Log.Warn("gltf image decode", zap.Int("image", *gt.Source), zap.Error(err))
				continue
			}
		case img.URI != "" && !img.IsEmbeddedResource():
			tex, err = LoadTexture(filepath.Join(dir, img.URI))
			if err != nil {
				logger.Log.Warn("gltf image load", zap.String("uri", img.URI), zap.Error(err))
				continue
			}
		}
		texCache[i] = tex
	}

	// ── 2. Materials ─────────────────────────────────────────────────────────
	type gltfSurface struct {
		material Material
		texture  *Texture
	}
	surfaces := make([]gltfSurface, len(doc.Materials))
	for i, gm := range doc.Materials {
		s := gltfSurface{material: DefaultMaterial()}
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorTexture != nil {
				idx := pbr.BaseColorTexture.Index
				if idx < len(texCache) {
					s.texture = texCache[idx]
				}
			}
			// Smooth surfaces get a tight highlight, metals a strong one.
			roughness := float32(pbr.RoughnessFactorOrDefault())
			metallic := float32(pbr.MetallicFactorOrDefault())
			s.material.Shininess = (1-roughness)*(1-roughness)*128 + 1
			s.material.SpecularIntensity = 0.1 + metallic*0.9
		}
		surfaces[i] = s
	}

	// ── 3. Nodes ─────────────────────────────────────────────────────────────
	model := &ModelData{Name: filepath.Base(path)}

	var visit func(idx int, parent mgl32.Mat4, depth int)
	visit = func(idx int, parent mgl32.Mat4, depth int) {
		if idx < 0 || idx >= len(doc.Nodes) || depth > 64 {
			return
		}
		gn := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(gn))

		if gn.Mesh != nil && *gn.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*gn.Mesh]
			for pi, prim := range gm.Primitives {
				data, err := loadGLTFPrimitive(doc, gm.Name, pi, prim, world)
				if err != nil {
					logger.Log.Warn("gltf primitive skipped",
						zap.String("mesh", gm.Name), zap.Int("primitive", pi), zap.Error(err))
					continue
				}
				part := PartData{Mesh: data, Material: DefaultMaterial()}
				if prim.Material != nil && *prim.Material < len(surfaces) {
					part.Material = surfaces[*prim.Material].material
					part.Texture = surfaces[*prim.Material].texture
				}
				model.Parts = append(model.Parts, part)
			}
		}
		for _, child := range gn.Children {
			visit(child, world, depth+1)
		}
	}

	for _, root := range sceneRoots(doc) {
		visit(root, mgl32.Ident4(), 0)
	}
	if len(model.Parts) == 0 {
		return nil, fmt.Errorf("gltf %q: no renderable primitives", path)
	}
	return model, nil
}

// sceneRoots returns the default scene's nodes, or every parentless node when
// the document has no default scene.
func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeMatrix returns the node's local transform. An explicit matrix wins
// over TRS.
func nodeMatrix(gn *gltf.Node) mgl32.Mat4 {
	if m := gn.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()

	translation := mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2]))
	rotation := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize().Mat4()
	scale := mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2]))
	return translation.Mul4(rotation).Mul4(scale)
}

// loadGLTFPrimitive converts one primitive into interleaved mesh data,
// transforming positions and normals by world.
func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive, world mgl32.Mat4) (MeshData, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}
	if prim.Mode != gltf.PrimitiveTriangles {
		return MeshData{}, fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return MeshData{}, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return MeshData{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			logger.Log.Warn("gltf normals unreadable, averaging from faces", zap.String("mesh", name), zap.Error(err))
			normals = nil
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			logger.Log.Warn("gltf texture coordinates unreadable, dropping them", zap.String("mesh", name), zap.Error(err))
			uvs = nil
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return MeshData{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	data := MeshData{Name: name, Indices: indices, Layout: layoutUVNormal}
	data.Layout.HasUV = len(uvs) > 0
	normalMat := world.Mat3().Inv().Transpose()

	for i, p := range positions {
		wp := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()
		data.Vertices = append(data.Vertices, wp[0], wp[1], wp[2])
		if data.Layout.HasUV {
			var uv [2]float32
			if i < len(uvs) {
				uv = uvs[i]
			}
			// glTF UV origin is top-left.
			data.Vertices = append(data.Vertices, uv[0], 1-uv[1])
		}
		n := mgl32.Vec3{0, 1, 0}
		if i < len(normals) {
			n = normalMat.Mul3x1(mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]})
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}
		data.Vertices = append(data.Vertices, n[0], n[1], n[2])
	}

	if len(normals) == 0 {
		CalcAverageNormals(data.Vertices, data.Indices, data.Layout)
	}
	return data, nil
}
