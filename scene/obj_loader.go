package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"glscene/internal/logger"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int // 0-based position / UV / normal indices (-1 = absent)
}

type objObject struct {
	name    string
	matName string
	faces   []objFace
}

// LoadOBJ parses a Wavefront .obj file into one part per object/group.
// A companion .mtl file is loaded if referenced via "mtllib".
func LoadOBJ(path string) (*ModelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	model, err := parseOBJ(filepath.Base(path), f, func(name string) (map[string]objMaterial, error) {
		mf, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defer mf.Close()
		return parseMTL(mf, dir)
	})
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return model, nil
}

func parseOBJ(name string, r io.Reader, loadMTL func(string) (map[string]objMaterial, error)) (*ModelData, error) {
	var positions, normals []mgl32.Vec3
	var uvs []mgl32.Vec2
	materials := map[string]objMaterial{}

	var objects []objObject
	cur := &objObject{name: "default"}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			positions = append(positions, parseVec3(fields[1:4]))

		case "vn":
			if len(fields) < 4 {
				continue
			}
			normals = append(normals, parseVec3(fields[1:4]))

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, mgl32.Vec2{float32(u), float32(v)})

		case "o", "g":
			if len(cur.faces) > 0 {
				objects = append(objects, *cur)
			}
			objName := "default"
			if len(fields) > 1 {
				objName = fields[1]
			}
			cur = &objObject{name: objName, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				// A material switch inside a group starts a new part.
				if len(cur.faces) > 0 && cur.matName != fields[1] {
					objects = append(objects, *cur)
					cur = &objObject{name: cur.name}
				}
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 && loadMTL != nil {
				loaded, err := loadMTL(fields[1])
				if err != nil {
					logger.Log.Warn("mtl load failed", zap.String("mtl", fields[1]), zap.Error(err))
					continue
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			fverts := make([][3]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fverts = append(fverts, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(fverts); i++ {
				f0, f1, f2 := fverts[0], fverts[i], fverts[i+1]
				cur.faces = append(cur.faces, objFace{
					vIdx:  [3]int{f0[0], f1[0], f2[0]},
					vtIdx: [3]int{f0[1], f1[1], f2[1]},
					vnIdx: [3]int{f0[2], f1[2], f2[2]},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if len(cur.faces) > 0 {
		objects = append(objects, *cur)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no geometry found")
	}

	model := &ModelData{Name: name}
	for _, obj := range objects {
		part := PartData{
			Mesh:     buildMeshFromOBJ(obj.name, obj.faces, positions, normals, uvs),
			Material: DefaultMaterial(),
		}
		if mat, ok := materials[obj.matName]; ok {
			part.Material = mat.material
			part.Texture = mat.texture
		}
		model.Parts = append(model.Parts, part)
	}
	return model, nil
}

func parseVec3(fields []string) mgl32.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// Returns 0-based indices (-1 if absent). OBJ is 1-based; negative indices
// count back from the end of each pool.
func parseFaceVertex(tok string, nPos, nUV, nNorm int) [3]int {
	parseIdx := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		if err != nil || i == 0 {
			return -1
		}
		if i > 0 {
			return i - 1
		}
		return n + i
	}
	res := [3]int{-1, -1, -1}
	parts := strings.Split(tok, "/")
	pools := [3]int{nPos, nUV, nNorm}
	for i := 0; i < len(parts) && i < 3; i++ {
		res[i] = parseIdx(parts[i], pools[i])
	}
	return res
}

// buildMeshFromOBJ converts parsed face data into a deduplicated mesh with
// UVs and normals. Normals are averaged from the faces when the file has none.
func buildMeshFromOBJ(name string, faces []objFace, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) MeshData {
	hasUV := len(uvs) > 0
	hasNormals := len(normals) > 0
	data := MeshData{Name: name, Layout: layoutUVNormal}
	data.Layout.HasUV = hasUV

	type key struct{ v, vt, vn int }
	vertMap := map[key]uint32{}
	var count uint32

	for _, face := range faces {
		for c := 0; c < 3; c++ {
			k := key{face.vIdx[c], face.vtIdx[c], face.vnIdx[c]}
			if idx, ok := vertMap[k]; ok {
				data.Indices = append(data.Indices, idx)
				continue
			}

			var p mgl32.Vec3
			if k.v >= 0 && k.v < len(positions) {
				p = positions[k.v]
			}
			data.Vertices = append(data.Vertices, p[0], p[1], p[2])
			if hasUV {
				var uv mgl32.Vec2
				if k.vt >= 0 && k.vt < len(uvs) {
					uv = uvs[k.vt]
				}
				data.Vertices = append(data.Vertices, uv[0], uv[1])
			}
			n := mgl32.Vec3{0, 1, 0}
			if k.vn >= 0 && k.vn < len(normals) {
				n = normals[k.vn]
			}
			data.Vertices = append(data.Vertices, n[0], n[1], n[2])

			vertMap[k] = count
			data.Indices = append(data.Indices, count)
			count++
		}
	}

	if !hasNormals {
		CalcAverageNormals(data.Vertices, data.Indices, data.Layout)
	}
	return data
}

// ── MTL loader ───────────────────────────────────────────────────────────────

type objMaterial struct {
	material Material
	texture  *Texture
}

func parseMTL(r io.Reader, dir string) (map[string]objMaterial, error) {
	mats := map[string]objMaterial{}
	var curName string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				curName = fields[1]
				mats[curName] = objMaterial{material: DefaultMaterial()}
			}
		case "Ks":
			if m, ok := mats[curName]; ok && len(fields) >= 4 {
				ks := parseVec3(fields[1:4])
				m.material.SpecularIntensity = max((ks[0]+ks[1]+ks[2])/3, 0)
				mats[curName] = m
			}
		case "Ns":
			if m, ok := mats[curName]; ok && len(fields) >= 2 {
				ns, _ := strconv.ParseFloat(fields[1], 32)
				m.material.Shininess = max(float32(ns), 0)
				mats[curName] = m
			}
		case "map_Kd":
			if m, ok := mats[curName]; ok && len(fields) >= 2 {
				texPath := filepath.Join(dir, filepath.FromSlash(fields[len(fields)-1]))
				tex, err := LoadTexture(texPath)
				if err != nil {
					logger.Log.Warn("mtl texture skipped", zap.String("material", curName), zap.Error(err))
					continue
				}
				m.texture = tex
				mats[curName] = m
			}
		}
	}
	return mats, scanner.Err()
}
