package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute locations shared with the shaders.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTangent  = 2
	AttribTexCoord = 3
)

// Mesh is mesh data living on the GPU.
type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	Bounds        Bounds
}

// Upload creates GPU buffers for d. Must run on the GL thread.
func Upload(d *Data) *Mesh {
	m := &Mesh{indexCount: int32(len(d.Indices)), Bounds: d.Bounds()}
	if len(d.Vertices) == 0 || len(d.Indices) == 0 {
		return m
	}
	vertexSize := int(unsafe.Sizeof(Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.Vertices)*vertexSize, unsafe.Pointer(&d.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(AttribPosition, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointerWithOffset(AttribNormal, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(AttribNormal)
	gl.VertexAttribPointerWithOffset(AttribTangent, 3, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(AttribTangent)
	gl.VertexAttribPointerWithOffset(AttribTexCoord, 2, gl.FLOAT, false, int32(vertexSize), 9*4)
	gl.EnableVertexAttribArray(AttribTexCoord)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*4, unsafe.Pointer(&d.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() int32 {
	return m.indexCount
}

// Draw issues the draw call. The caller binds the program.
func (m *Mesh) Draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU buffers.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}
