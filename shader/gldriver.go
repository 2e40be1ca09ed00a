package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLDriver implements Driver on the current OpenGL context. gl.Init must have
// been called on the owning thread.
type GLDriver struct{}

func glStage(s Stage) uint32 {
	if s == FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (GLDriver) CreateShader(stage Stage) uint32 {
	return gl.CreateShader(glStage(stage))
}

func (GLDriver) ShaderSource(shader uint32, src Source) {
	csources, free := gl.Strs(src.CString())
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (GLDriver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (GLDriver) CompileStatus(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ShaderInfoLog(shader uint32, maxLength int) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, maxLength, func(size int32, written *int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, size, written, buf)
	})
}

func (GLDriver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (GLDriver) CreateProgram() uint32 { return gl.CreateProgram() }

func (GLDriver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (GLDriver) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (GLDriver) LinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ProgramInfoLog(program uint32, maxLength int) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, maxLength, func(size int32, written *int32, buf *uint8) {
		gl.GetProgramInfoLog(program, size, written, buf)
	})
}

func (GLDriver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (GLDriver) UseProgram(program uint32) { gl.UseProgram(program) }

func (GLDriver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GLDriver) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (GLDriver) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (GLDriver) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (GLDriver) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func readInfoLog(logLength int32, maxLength int, get func(size int32, written *int32, buf *uint8)) string {
	if logLength > int32(maxLength) {
		logLength = int32(maxLength)
	}
	if logLength <= 0 {
		return ""
	}
	buf := make([]byte, logLength)
	var written int32
	get(logLength, &written, &buf[0])
	if written < 0 || written > logLength {
		written = logLength
	}
	return string(buf[:written])
}
