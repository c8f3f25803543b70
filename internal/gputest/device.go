// Package gputest provides a recording gpu.Device for tests that must run
// without a GL context.
package gputest

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glscene/gpu"
)

// Device records every call and keeps the last value written to each uniform
// location. Failure switches let tests drive the error paths.
type Device struct {
	// FailStage makes CompileShader fail for that stage with CompileLog.
	FailStage  *gpu.Stage
	CompileLog string
	// FailLink makes LinkProgram fail with LinkLog.
	FailLink bool
	LinkLog  string
	// FailBuffers makes CreateBuffers fail.
	FailBuffers bool
	// Inactive lists uniform names the "compiler" optimized out (location -1).
	Inactive map[string]bool

	Calls []string

	Ints     map[int32]int32
	Floats   map[int32]float32
	Vec3s    map[int32]mgl32.Vec3
	Mat4s    map[int32]mgl32.Mat4
	Writes   int
	Sources  map[gpu.Stage]string
	Bound    map[uint32]uint32
	Programs map[uint32]bool
	Live     map[uint32]gpu.Buffers
	Textures map[uint32]bool
	Draws    []gpu.Buffers
	Current  uint32

	next      uint32
	locations map[string]int32
	names     map[int32]string
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty recording device.
func New() *Device {
	return &Device{
		Inactive:  map[string]bool{},
		Ints:      map[int32]int32{},
		Floats:    map[int32]float32{},
		Vec3s:     map[int32]mgl32.Vec3{},
		Mat4s:     map[int32]mgl32.Mat4{},
		Sources:   map[gpu.Stage]string{},
		Bound:     map[uint32]uint32{},
		Programs:  map[uint32]bool{},
		Live:      map[uint32]gpu.Buffers{},
		Textures:  map[uint32]bool{},
		locations: map[string]int32{},
		names:     map[int32]string{},
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

// Reset forgets recorded calls and writes but keeps GPU objects alive.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
	d.Writes = 0
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, error) {
	d.record("CompileShader %s", stage)
	d.Sources[stage] = source
	if d.FailStage != nil && *d.FailStage == stage {
		return 0, errors.New(d.CompileLog)
	}
	return d.id(), nil
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	d.record("LinkProgram")
	if d.FailLink {
		return 0, errors.New(d.LinkLog)
	}
	p := d.id()
	d.Programs[p] = true
	return p, nil
}

func (d *Device) DeleteShader(id uint32) { d.record("DeleteShader") }

func (d *Device) DeleteProgram(id uint32) {
	d.record("DeleteProgram")
	delete(d.Programs, id)
}

func (d *Device) UseProgram(id uint32) {
	d.record("UseProgram %d", id)
	d.Current = id
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	if d.Inactive[name] {
		return -1
	}
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	loc := int32(len(d.locations))
	d.locations[name] = loc
	d.names[loc] = name
	return loc
}

// Name returns the uniform name behind a location handed out by UniformLocation.
func (d *Device) Name(loc int32) string { return d.names[loc] }

// Written reports whether any value was uploaded to the named uniform.
func (d *Device) Written(name string) bool {
	loc, ok := d.locations[name]
	if !ok {
		return false
	}
	_, i := d.Ints[loc]
	_, f := d.Floats[loc]
	_, v := d.Vec3s[loc]
	_, m := d.Mat4s[loc]
	return i || f || v || m
}

func (d *Device) Uniform1i(loc int32, v int32) {
	d.record("Uniform1i %s", d.names[loc])
	d.Writes++
	d.Ints[loc] = v
}

func (d *Device) Uniform1f(loc int32, v float32) {
	d.record("Uniform1f %s", d.names[loc])
	d.Writes++
	d.Floats[loc] = v
}

func (d *Device) Uniform3f(loc int32, v mgl32.Vec3) {
	d.record("Uniform3f %s", d.names[loc])
	d.Writes++
	d.Vec3s[loc] = v
}

func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) {
	d.record("UniformMatrix4 %s", d.names[loc])
	d.Writes++
	d.Mat4s[loc] = m
}

func (d *Device) CreateBuffers(layout gpu.VertexLayout, vertices []float32, indices []uint32) (gpu.Buffers, error) {
	d.record("CreateBuffers")
	if d.FailBuffers {
		return gpu.Buffers{}, fmt.Errorf("%w: forced failure", gpu.ErrBufferCreation)
	}
	b := gpu.Buffers{VAO: d.id(), VBO: d.id(), IBO: d.id(), IndexCount: int32(len(indices))}
	d.Live[b.VAO] = b
	return b, nil
}

func (d *Device) DrawIndexed(b gpu.Buffers) {
	d.record("DrawIndexed %d", b.IndexCount)
	d.Draws = append(d.Draws, b)
}

func (d *Device) DeleteBuffers(b gpu.Buffers) {
	d.record("DeleteBuffers")
	delete(d.Live, b.VAO)
}

func (d *Device) CreateTexture(width, height int, rgba []byte) (uint32, error) {
	d.record("CreateTexture %dx%d", width, height)
	if width <= 0 || height <= 0 || len(rgba) < width*height*4 {
		return 0, fmt.Errorf("%w: bad size", gpu.ErrTextureCreation)
	}
	id := d.id()
	d.Textures[id] = true
	return id, nil
}

func (d *Device) BindTexture(unit uint32, id uint32) {
	d.record("BindTexture %d", unit)
	d.Bound[unit] = id
}

func (d *Device) DeleteTexture(id uint32) {
	d.record("DeleteTexture")
	delete(d.Textures, id)
}

func (d *Device) SetViewport(width, height int) { d.record("SetViewport %dx%d", width, height) }

func (d *Device) Clear(r, g, b, a float32) { d.record("Clear") }
