package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"glscene/internal/logger"
	"glscene/scene"
)

type lightLocs struct {
	colour           int32
	ambientIntensity int32
	diffuseIntensity int32
}

type pointLocs struct {
	base     lightLocs
	position int32
	constant int32
	linear   int32
	exponent int32
}

type spotLocs struct {
	point     pointLocs
	direction int32
	edge      int32
}

// uniformTable holds every location the program exposes. Arrays are sized by
// the same capacities that are injected into the GLSL source.
type uniformTable struct {
	model       int32
	view        int32
	projection  int32
	eyePosition int32
	useTexture  int32
	sampler     int32

	specularIntensity int32
	shininess         int32

	directional struct {
		base      lightLocs
		direction int32
	}

	pointCount int32
	points     [scene.MaxPointLights]pointLocs

	spotCount int32
	spots     [scene.MaxSpotLights]spotLocs
}

func (s *Shader) lookup(name string) int32 {
	loc := s.dev.UniformLocation(s.program, name)
	s.locations[name] = loc
	if loc < 0 {
		logger.Log.Debug("uniform inactive", zap.String("shader", s.Name), zap.String("uniform", name))
	}
	return loc
}

func (s *Shader) lookupLight(prefix string) lightLocs {
	return lightLocs{
		colour:           s.lookup(prefix + ".colour"),
		ambientIntensity: s.lookup(prefix + ".ambientIntensity"),
		diffuseIntensity: s.lookup(prefix + ".diffuseIntensity"),
	}
}

func (s *Shader) lookupPoint(prefix string) pointLocs {
	return pointLocs{
		base:     s.lookupLight(prefix + ".base"),
		position: s.lookup(prefix + ".position"),
		constant: s.lookup(prefix + ".constant"),
		linear:   s.lookup(prefix + ".linear"),
		exponent: s.lookup(prefix + ".exponent"),
	}
}

func (s *Shader) resolveUniforms() {
	u := &s.u
	u.model = s.lookup("model")
	u.view = s.lookup("view")
	u.projection = s.lookup("projection")
	u.eyePosition = s.lookup("eyePosition")
	u.useTexture = s.lookup("useTexture")
	u.sampler = s.lookup("theTexture")

	u.specularIntensity = s.lookup("material.specularIntensity")
	u.shininess = s.lookup("material.shininess")

	u.directional.base = s.lookupLight("directionalLight.base")
	u.directional.direction = s.lookup("directionalLight.direction")

	u.pointCount = s.lookup("pointLightCount")
	for i := range u.points {
		u.points[i] = s.lookupPoint(fmt.Sprintf("pointLights[%d]", i))
	}

	u.spotCount = s.lookup("spotLightCount")
	for i := range u.spots {
		prefix := fmt.Sprintf("spotLights[%d]", i)
		u.spots[i] = spotLocs{
			point:     s.lookupPoint(prefix + ".base"),
			direction: s.lookup(prefix + ".direction"),
			edge:      s.lookup(prefix + ".edge"),
		}
	}
}

// Uploads to inactive locations (-1) or on an unlinked program are skipped.

func (s *Shader) uniform1i(loc, v int32) {
	if loc < 0 || s.state != StateLinked {
		return
	}
	s.dev.Uniform1i(loc, v)
}

func (s *Shader) uniform1f(loc int32, v float32) {
	if loc < 0 || s.state != StateLinked {
		return
	}
	s.dev.Uniform1f(loc, v)
}

func (s *Shader) uniform3f(loc int32, v mgl32.Vec3) {
	if loc < 0 || s.state != StateLinked {
		return
	}
	s.dev.Uniform3f(loc, v)
}

func (s *Shader) uniformMatrix4(loc int32, m mgl32.Mat4) {
	if loc < 0 || s.state != StateLinked {
		return
	}
	s.dev.UniformMatrix4(loc, m)
}

func (s *Shader) SetModel(m mgl32.Mat4)       { s.uniformMatrix4(s.u.model, m) }
func (s *Shader) SetView(m mgl32.Mat4)        { s.uniformMatrix4(s.u.view, m) }
func (s *Shader) SetProjection(m mgl32.Mat4)  { s.uniformMatrix4(s.u.projection, m) }
func (s *Shader) SetEyePosition(p mgl32.Vec3) { s.uniform3f(s.u.eyePosition, p) }

func (s *Shader) SetUseTexture(on bool) {
	var v int32
	if on {
		v = 1
	}
	s.uniform1i(s.u.useTexture, v)
}

// BindMaterial implements scene.MaterialBinder.
func (s *Shader) BindMaterial(specularIntensity, shininess float32) {
	s.uniform1f(s.u.specularIntensity, specularIntensity)
	s.uniform1f(s.u.shininess, shininess)
}

// BindTexture implements scene.SurfaceBinder. A nil or not-uploaded texture
// switches the fragment shader to vertex colours.
func (s *Shader) BindTexture(t *scene.Texture) {
	if t == nil || !t.Uploaded() {
		s.SetUseTexture(false)
		return
	}
	t.Use()
	s.SetUseTexture(true)
}

func (s *Shader) setLight(locs lightLocs, l scene.Light) {
	s.uniform3f(locs.colour, l.Color.RGB())
	s.uniform1f(locs.ambientIntensity, l.AmbientIntensity)
	s.uniform1f(locs.diffuseIntensity, l.DiffuseIntensity)
}

func (s *Shader) setPoint(locs pointLocs, p scene.PointLight) {
	s.setLight(locs.base, p.Light)
	s.uniform3f(locs.position, p.Position)
	s.uniform1f(locs.constant, p.Constant)
	s.uniform1f(locs.linear, p.Linear)
	s.uniform1f(locs.exponent, p.Exponent)
}

// SetDirectionalLight uploads d with its direction normalized. A nil light
// uploads zero intensities so it contributes nothing.
func (s *Shader) SetDirectionalLight(d *scene.DirectionalLight) {
	if d == nil {
		s.setLight(s.u.directional.base, scene.Light{})
		s.uniform3f(s.u.directional.direction, mgl32.Vec3{0, -1, 0})
		return
	}
	s.setLight(s.u.directional.base, d.Light)
	s.uniform3f(s.u.directional.direction, d.NormalizedDirection())
}

// clampCount limits a requested light count to [0, min(capacity, available)].
func (s *Shader) clampCount(kind string, count, available, capacity int) int {
	n := count
	if n > available {
		n = available
	}
	if n > capacity {
		n = capacity
	}
	if n < 0 {
		n = 0
	}
	if n != count {
		logger.Log.Debug("light count clamped",
			zap.String("shader", s.Name),
			zap.String("kind", kind),
			zap.Int("requested", count),
			zap.Int("applied", n))
	}
	return n
}

// SetPointLights uploads the first count lights and the active count. It
// returns the number actually applied; lights past the capacity are not
// uploaded.
func (s *Shader) SetPointLights(lights []scene.PointLight, count int) int {
	n := s.clampCount("point", count, len(lights), scene.MaxPointLights)
	s.uniform1i(s.u.pointCount, int32(n))
	for i := 0; i < n; i++ {
		s.setPoint(s.u.points[i], lights[i])
	}
	return n
}

// SetSpotLights is SetPointLights for spot lights. Directions are normalized
// and the edge is uploaded as its cosine.
func (s *Shader) SetSpotLights(lights []scene.SpotLight, count int) int {
	n := s.clampCount("spot", count, len(lights), scene.MaxSpotLights)
	s.uniform1i(s.u.spotCount, int32(n))
	for i := 0; i < n; i++ {
		l := lights[i]
		s.setPoint(s.u.spots[i].point, l.PointLight)
		s.uniform3f(s.u.spots[i].direction, l.NormalizedDirection())
		s.uniform1f(s.u.spots[i].edge, l.CosEdge())
	}
	return n
}
