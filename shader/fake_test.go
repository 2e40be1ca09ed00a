package shader

import (
	"regexp"
	"strings"
)

// fakeDriver is an in-memory stand-in for the GL. A stage compiles when it
// declares main and its braces balance; a program links when one compiled
// vertex and one compiled fragment shader are attached.
type fakeDriver struct {
	next     uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	current  uint32

	deletedShaders  []uint32
	deletedPrograms []uint32

	// infoLogPadding is appended to compile logs to exercise truncation.
	infoLogPadding int
}

type fakeShader struct {
	stage    Stage
	source   string
	compiled bool
	log      string
}

type fakeProgram struct {
	attached  []uint32
	linked    bool
	log       string
	locations map[string]int32
	values    map[int32]any
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
	}
}

func (f *fakeDriver) id() uint32 {
	f.next++
	return f.next
}

func (f *fakeDriver) objects() int { return len(f.shaders) + len(f.programs) }

func (f *fakeDriver) CreateShader(stage Stage) uint32 {
	id := f.id()
	f.shaders[id] = &fakeShader{stage: stage}
	return id
}

func (f *fakeDriver) ShaderSource(shader uint32, src Source) {
	cs := src.CString()
	if !strings.HasSuffix(cs, "\x00") {
		panic("shader source is not NUL-terminated")
	}
	f.shaders[shader].source = strings.TrimSuffix(cs, "\x00")
}

func (f *fakeDriver) CompileShader(shader uint32) {
	s := f.shaders[shader]
	s.compiled = strings.Contains(s.source, "void main") &&
		strings.Count(s.source, "{") == strings.Count(s.source, "}")
	if !s.compiled {
		s.log = "0:1(1): error: syntax error, unexpected end of file" + strings.Repeat(".", f.infoLogPadding)
	}
}

func (f *fakeDriver) CompileStatus(shader uint32) bool { return f.shaders[shader].compiled }

func (f *fakeDriver) ShaderInfoLog(shader uint32, maxLength int) string {
	return truncate(f.shaders[shader].log, maxLength)
}

func (f *fakeDriver) DeleteShader(shader uint32) {
	f.deletedShaders = append(f.deletedShaders, shader)
}

func (f *fakeDriver) CreateProgram() uint32 {
	id := f.id()
	f.programs[id] = &fakeProgram{
		locations: make(map[string]int32),
		values:    make(map[int32]any),
	}
	return id
}

func (f *fakeDriver) AttachShader(program, shader uint32) {
	p := f.programs[program]
	p.attached = append(p.attached, shader)
}

func (f *fakeDriver) LinkProgram(program uint32) {
	p := f.programs[program]
	var vertex, fragment int
	for _, id := range p.attached {
		s := f.shaders[id]
		if !s.compiled {
			p.log = "error: linking with uncompiled/unspecialized shader"
			return
		}
		if s.stage == VertexStage {
			vertex++
		} else {
			fragment++
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			if _, ok := p.locations[m[1]]; !ok {
				p.locations[m[1]] = int32(len(p.locations))
			}
		}
	}
	p.linked = vertex == 1 && fragment == 1
	if !p.linked {
		p.log = "error: program needs one vertex and one fragment shader"
	}
}

func (f *fakeDriver) LinkStatus(program uint32) bool { return f.programs[program].linked }

func (f *fakeDriver) ProgramInfoLog(program uint32, maxLength int) string {
	return truncate(f.programs[program].log, maxLength)
}

func (f *fakeDriver) DeleteProgram(program uint32) {
	f.deletedPrograms = append(f.deletedPrograms, program)
	delete(f.programs, program)
	if f.current == program {
		f.current = 0
	}
}

func (f *fakeDriver) UseProgram(program uint32) {
	if _, ok := f.programs[program]; ok {
		f.current = program
	}
}

func (f *fakeDriver) GetUniformLocation(program uint32, name string) int32 {
	p, ok := f.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeDriver) set(location int32, v any) {
	p, ok := f.programs[f.current]
	if location == -1 || !ok {
		return
	}
	p.values[location] = v
}

func (f *fakeDriver) Uniform1i(location int32, v int32)   { f.set(location, v) }
func (f *fakeDriver) Uniform1f(location int32, v float32) { f.set(location, v) }
func (f *fakeDriver) Uniform3f(location int32, x, y, z float32) {
	f.set(location, [3]float32{x, y, z})
}
func (f *fakeDriver) UniformMatrix4fv(location int32, m *[16]float32) { f.set(location, *m) }

// value returns the uniform called name on program, by its source name.
func (f *fakeDriver) value(program uint32, name string) (any, bool) {
	p := f.programs[program]
	loc, ok := p.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
