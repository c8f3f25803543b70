package renderer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"glscene/gpu"
	"glscene/internal/logger"
	"glscene/scene"
)

// ErrShaderNotLinked is returned by Use on a shader that failed to build or
// was never compiled.
var ErrShaderNotLinked = errors.New("shader program is not linked")

// StageLink names the link step in a CompileError.
const StageLink = "link"

// CompileError carries the driver's diagnostic for a failed compile or link.
type CompileError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// State is the lifecycle of a Shader.
type State int

const (
	StateUnbuilt State = iota
	StateCompiling
	StateLinked
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateUnbuilt:
		return "unbuilt"
	case StateCompiling:
		return "compiling"
	case StateLinked:
		return "linked"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Shader is a linked vertex+fragment program with its uniform locations
// resolved once after link.
type Shader struct {
	Name string

	dev     gpu.Device
	program uint32
	state   State

	locations map[string]int32
	u         uniformTable
}

func NewShader(dev gpu.Device, name string) *Shader {
	return &Shader{Name: name, dev: dev, locations: map[string]int32{}}
}

// CompileFiles reads both stages from disk and compiles them.
func (s *Shader) CompileFiles(vertexPath, fragmentPath string) error {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return fmt.Errorf("read fragment shader: %w", err)
	}
	return s.Compile(string(vs), string(fs))
}

// Compile builds the program. The light capacity defines are injected into
// both stages after the #version line. A linked shader cannot be rebuilt.
func (s *Shader) Compile(vertexSrc, fragmentSrc string) error {
	if s.state == StateLinked {
		return fmt.Errorf("shader %q is already linked", s.Name)
	}
	s.state = StateCompiling

	vs, err := s.compileStage(gpu.StageVertex, vertexSrc)
	if err != nil {
		return err
	}
	fs, err := s.compileStage(gpu.StageFragment, fragmentSrc)
	if err != nil {
		s.dev.DeleteShader(vs)
		return err
	}

	prog, err := s.dev.LinkProgram(vs, fs)
	s.dev.DeleteShader(vs)
	s.dev.DeleteShader(fs)
	if err != nil {
		return s.fail(&CompileError{Stage: StageLink, Log: err.Error()})
	}

	s.program = prog
	s.state = StateLinked
	s.resolveUniforms()
	logger.Log.Debug("shader linked", zap.String("shader", s.Name), zap.Uint32("program", prog))
	return nil
}

func (s *Shader) compileStage(stage gpu.Stage, src string) (uint32, error) {
	id, err := s.dev.CompileShader(stage, injectDefines(src))
	if err != nil {
		return 0, s.fail(&CompileError{Stage: stage.String(), Log: err.Error()})
	}
	return id, nil
}

func (s *Shader) fail(err *CompileError) error {
	s.state = StateInvalid
	logger.Log.Error("shader build failed",
		zap.String("shader", s.Name),
		zap.String("stage", err.Stage),
		zap.String("log", strings.TrimSpace(err.Log)))
	return err
}

// injectDefines places the light capacity macros right after #version,
// which must stay the first directive.
func injectDefines(src string) string {
	defines := fmt.Sprintf("#define MAX_POINT_LIGHTS %d\n#define MAX_SPOT_LIGHTS %d\n",
		scene.MaxPointLights, scene.MaxSpotLights)

	trimmed := strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(trimmed, "#version") {
		return defines + src
	}
	offset := len(src) - len(trimmed)
	end := strings.IndexByte(trimmed, '\n')
	if end < 0 {
		return src + "\n" + defines
	}
	cut := offset + end + 1
	return src[:cut] + defines + src[cut:]
}

func (s *Shader) State() State    { return s.state }
func (s *Shader) Program() uint32 { return s.program }
func (s *Shader) Linked() bool    { return s.state == StateLinked }

// Location returns the cached location of name. ok is false when the
// uniform is unknown or was optimized out by the driver.
func (s *Shader) Location(name string) (loc int32, ok bool) {
	loc, found := s.locations[name]
	if !found || loc < 0 {
		return -1, false
	}
	return loc, true
}

// Use makes the program current and points the sampler at the texture unit.
func (s *Shader) Use() error {
	if s.state != StateLinked {
		return ErrShaderNotLinked
	}
	s.dev.UseProgram(s.program)
	s.uniform1i(s.u.sampler, scene.TextureUnit)
	return nil
}

// Unuse unbinds any program.
func (s *Shader) Unuse() {
	s.dev.UseProgram(0)
}

// Destroy deletes the program. The shader returns to the unbuilt state and
// may be compiled again.
func (s *Shader) Destroy() {
	if s.program != 0 {
		s.dev.DeleteProgram(s.program)
	}
	s.program = 0
	s.state = StateUnbuilt
	s.locations = map[string]int32{}
	s.u = uniformTable{}
}
