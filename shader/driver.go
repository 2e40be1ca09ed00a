package shader

// MaxInfoLog bounds the compile/link diagnostics fetched from the driver.
const MaxInfoLog = 512

// Stage is a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// label is the upper-case stage name used in diagnostics.
func (s Stage) label() string {
	switch s {
	case VertexStage:
		return "VERTEX"
	case FragmentStage:
		return "FRAGMENT"
	}
	return "UNKNOWN"
}

// Driver is the subset of the graphics API needed to build and drive a shader
// program. All calls must happen on the thread owning the GL context.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, src Source)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32, maxLength int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ProgramInfoLog(program uint32, maxLength int) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// GetUniformLocation returns -1 for names the program does not use.
	GetUniformLocation(program uint32, name string) int32
	// Uniform setters act on the program in use. Location -1 is ignored.
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m *[16]float32)
}
