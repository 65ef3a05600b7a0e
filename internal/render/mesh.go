package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"stairwalk/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Mesh is an uploaded indexed triangle list.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// NewMesh uploads m into a VAO with a static VBO and EBO.
func NewMesh(m *scene.Mesh) (*Mesh, error) {
	verts := m.Interleave()
	if len(verts) == 0 || len(m.Indices) == 0 {
		return &Mesh{}, nil
	}

	out := &Mesh{count: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &out.vao)
	gl.GenBuffers(1, &out.vbo)
	gl.GenBuffers(1, &out.ebo)
	gl.BindVertexArray(out.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, out.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, out.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(scene.FloatsPerVertex * 4)
	// aPos
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aNormal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	// aUV
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, glOffset(6*4))
	// aColor
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, glOffset(8*4))

	gl.BindVertexArray(0)
	if err := checkGL("upload mesh"); err != nil {
		out.Delete()
		return nil, err
	}
	return out, nil
}

// Draw issues the draw call; the caller sets program and uniforms.
func (m *Mesh) Draw() {
	if m == nil || m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, glOffset(0))
}

// Delete frees the GL objects. It is safe to call more than once.
func (m *Mesh) Delete() {
	if m == nil {
		return
	}
	for _, id := range []*uint32{&m.vbo, &m.ebo} {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
			*id = 0
		}
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.count = 0
}
