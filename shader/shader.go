package shader

import (
	"errors"
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// Preprocessor rewrites a stage's source before it is compiled. It may return
// a mapping from uniform names used by callers to the names in the rewritten
// source.
type Preprocessor func(stage Stage, src Source) (Source, map[string]string, error)

// Loader builds shader programs through a Driver.
type Loader struct {
	Driver     Driver
	Preprocess Preprocessor
}

func NewLoader(d Driver) *Loader {
	return &Loader{Driver: d}
}

// Load reads, compiles and links the shader pair at the given paths.
func Load(d Driver, vertexPath, fragmentPath string) (*Program, error) {
	return NewLoader(d).Load(vertexPath, fragmentPath)
}

// Load reads both files and builds a program from them. If a file cannot be
// read no GL object is created and the returned program is nil.
func (l *Loader) Load(vertexPath, fragmentPath string) (*Program, error) {
	sources, err := ReadSources(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	return l.Build(sources)
}

// FromSource builds a program from in-memory GLSL.
func (l *Loader) FromSource(vertex, fragment string) (*Program, error) {
	return l.Build(Sources{
		Vertex:   NewSource("", []byte(vertex)),
		Fragment: NewSource("", []byte(fragment)),
	})
}

// Build compiles both stages and links them. Compile and link failures are
// logged and returned as *BuildError values, but the program is returned as
// well so callers may keep rendering with it; Program.Linked tells them apart.
func (l *Loader) Build(sources Sources) (*Program, error) {
	d := l.Driver
	names := make(map[string]string)

	vertex, vertexErr := l.compile(VertexStage, sources.Vertex, names)
	fragment, fragmentErr := l.compile(FragmentStage, sources.Fragment, names)

	id := d.CreateProgram()
	d.AttachShader(id, vertex)
	d.AttachShader(id, fragment)
	d.LinkProgram(id)

	var linkErr error
	linked := d.LinkStatus(id)
	if !linked {
		be := &BuildError{
			Stage:   "PROGRAM",
			Failure: LinkingFailed,
			Log:     d.ProgramInfoLog(id, MaxInfoLog),
		}
		log.Print(be)
		linkErr = be
	}

	d.DeleteShader(vertex)
	d.DeleteShader(fragment)

	p := &Program{
		driver:       d,
		id:           id,
		linked:       linked,
		names:        names,
		VertexPath:   sources.Vertex.Path,
		FragmentPath: sources.Fragment.Path,
	}
	return p, errors.Join(vertexErr, fragmentErr, linkErr)
}

func (l *Loader) compile(stage Stage, src Source, names map[string]string) (uint32, error) {
	var preErr error
	if l.Preprocess != nil {
		out, mapped, err := l.Preprocess(stage, src)
		if err != nil {
			preErr = &BuildError{Stage: stage.label(), Failure: CompilationFailed, Path: src.Path, Err: err}
			log.Print(preErr)
		} else {
			src = out
			for k, v := range mapped {
				names[k] = v
			}
		}
	}

	d := l.Driver
	shader := d.CreateShader(stage)
	d.ShaderSource(shader, src)
	d.CompileShader(shader)
	if !d.CompileStatus(shader) {
		be := &BuildError{
			Stage:   stage.label(),
			Failure: CompilationFailed,
			Path:    src.Path,
			Log:     d.ShaderInfoLog(shader, MaxInfoLog),
		}
		log.Print(be)
		if preErr != nil {
			return shader, errors.Join(preErr, be)
		}
		return shader, be
	}
	return shader, preErr
}

// Program is a linked (or failed-to-link) shader program handle.
type Program struct {
	driver Driver
	id     uint32
	linked bool
	names  map[string]string

	VertexPath   string
	FragmentPath string
}

func (p *Program) ID() uint32 { return p.id }

// Linked reports whether the driver accepted the program at link time.
func (p *Program) Linked() bool { return p.linked }

// Use makes p the active program for subsequent draws and uniform updates.
func (p *Program) Use() { p.driver.UseProgram(p.id) }

func (p *Program) location(name string) int32 {
	if mapped, ok := p.names[name]; ok {
		name = mapped
	}
	return p.driver.GetUniformLocation(p.id, name)
}

// The setters below write to the active program. Unknown names are ignored.

func (p *Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	p.driver.Uniform1i(p.location(name), v)
}

func (p *Program) SetInt(name string, value int) {
	p.driver.Uniform1i(p.location(name), int32(value))
}

func (p *Program) SetFloat(name string, value float32) {
	p.driver.Uniform1f(p.location(name), value)
}

func (p *Program) SetVec3(name string, value mgl32.Vec3) {
	p.driver.Uniform3f(p.location(name), value[0], value[1], value[2])
}

func (p *Program) SetMat4(name string, value mgl32.Mat4) {
	p.driver.UniformMatrix4fv(p.location(name), (*[16]float32)(&value))
}

// Delete releases the GL program. p must not be used afterwards.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.driver.DeleteProgram(p.id)
	p.id = 0
	p.linked = false
}
