package mesh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh owns a vertex array object with its vertex buffer and, when indexed,
// its element buffer.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

// vertexCount validates vertices against layout and returns how many
// vertices (or indices, when present) will be drawn.
func vertexCount(vertices []float32, indices []uint32, layout Layout) (int32, error) {
	if len(layout) == 0 {
		return 0, fmt.Errorf("empty vertex layout")
	}
	for _, a := range layout {
		if a.Size < 1 || a.Size > 4 {
			return 0, fmt.Errorf("attribute %d: size %d out of range 1..4", a.Location, a.Size)
		}
	}
	per := layout.Components()
	if len(vertices) == 0 || len(vertices)%per != 0 {
		return 0, fmt.Errorf("%d floats is not a whole number of %d-float vertices", len(vertices), per)
	}
	n := len(vertices) / per
	if len(indices) == 0 {
		return int32(n), nil
	}
	for i, idx := range indices {
		if int(idx) >= n {
			return 0, fmt.Errorf("index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return int32(len(indices)), nil
}

// New uploads vertices (and optional indices) with STATIC_DRAW and records
// the attribute layout in a new VAO.
func New(vertices []float32, indices []uint32, layout Layout) (*Mesh, error) {
	count, err := vertexCount(vertices, indices, layout)
	if err != nil {
		return nil, err
	}
	m := &Mesh{count: count, indexed: len(indices) > 0}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)

	// The VAO must be bound first so it captures the buffer state.
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	if m.indexed {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	stride := layout.Stride()
	for i, a := range layout {
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, stride, gl.PtrOffset(layout.Offset(i)))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	// The element buffer binding is VAO state; unbind the VAO before it.
	gl.BindVertexArray(0)
	if m.indexed {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}
	return m, nil
}

// Draw issues the draw call for the whole mesh as triangles.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Count is the number of vertices or indices Draw submits.
func (m *Mesh) Count() int32 { return m.count }

func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.indexed {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
