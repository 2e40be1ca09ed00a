package renderer

import (
	"strings"

	"github.com/richinsley/learnopengl/shader"
)

// stubDriver builds programs without a GL context. A stage fails to compile
// when its source contains "#error"; a program links when every attached
// stage compiled.
type stubDriver struct {
	next     uint32
	compiled map[uint32]bool
	sources  map[uint32]string
	attached map[uint32][]uint32
	linked   map[uint32]bool
	current  uint32

	deletedPrograms []uint32
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		compiled: make(map[uint32]bool),
		sources:  make(map[uint32]string),
		attached: make(map[uint32][]uint32),
		linked:   make(map[uint32]bool),
	}
}

func (d *stubDriver) id() uint32 {
	d.next++
	return d.next
}

func (d *stubDriver) CreateShader(stage shader.Stage) uint32 { return d.id() }
func (d *stubDriver) ShaderSource(s uint32, src shader.Source) {
	d.sources[s] = src.String()
}
func (d *stubDriver) CompileShader(s uint32) {
	d.compiled[s] = !strings.Contains(d.sources[s], "#error")
}
func (d *stubDriver) CompileStatus(s uint32) bool { return d.compiled[s] }
func (d *stubDriver) ShaderInfoLog(s uint32, maxLength int) string {
	return "0:1: error: #error directive"
}
func (d *stubDriver) DeleteShader(s uint32) {}

func (d *stubDriver) CreateProgram() uint32 { return d.id() }
func (d *stubDriver) AttachShader(p, s uint32) {
	d.attached[p] = append(d.attached[p], s)
}
func (d *stubDriver) LinkProgram(p uint32) {
	ok := len(d.attached[p]) == 2
	for _, s := range d.attached[p] {
		ok = ok && d.compiled[s]
	}
	d.linked[p] = ok
}
func (d *stubDriver) LinkStatus(p uint32) bool { return d.linked[p] }
func (d *stubDriver) ProgramInfoLog(p uint32, maxLength int) string {
	return "error: linking with uncompiled shader"
}
func (d *stubDriver) DeleteProgram(p uint32) {
	d.deletedPrograms = append(d.deletedPrograms, p)
}
func (d *stubDriver) UseProgram(p uint32) { d.current = p }

func (d *stubDriver) GetUniformLocation(p uint32, name string) int32 { return -1 }
func (d *stubDriver) Uniform1i(location int32, v int32)               {}
func (d *stubDriver) Uniform1f(location int32, v float32)             {}
func (d *stubDriver) Uniform3f(location int32, x, y, z float32)       {}
func (d *stubDriver) UniformMatrix4fv(location int32, m *[16]float32) {}
