package render

import (
	"MinecraftGolang/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const floatSize = 4

type chunkBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

func (b *chunkBuffers) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}

// ChunkRenderer keeps one vertex array per chunk and draws them with the
// block program. It implements world.Renderer.
type ChunkRenderer struct {
	program *Program
	buffers map[world.ChunkPos]*chunkBuffers
}

func NewChunkRenderer(program *Program) *ChunkRenderer {
	return &ChunkRenderer{program: program, buffers: make(map[world.ChunkPos]*chunkBuffers)}
}

// Begin sets the camera for the chunks drawn this frame.
func (r *ChunkRenderer) Begin(view, projection mgl32.Mat4) {
	r.program.Use()
	r.program.SetMat4("view", view)
	r.program.SetMat4("projection", projection)
}

// Upload replaces the buffers of pos with m. An empty mesh frees them.
func (r *ChunkRenderer) Upload(pos world.ChunkPos, m *world.Mesh) error {
	b, ok := r.buffers[pos]
	if m.Empty() {
		if ok {
			b.delete()
			delete(r.buffers, pos)
		}
		return nil
	}
	if !ok {
		b = &chunkBuffers{}
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		gl.GenBuffers(1, &b.ebo)
		r.buffers[pos] = b
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*floatSize, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(world.VertexStride * floatSize)
	// position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	// uv
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*floatSize)
	// texture layer
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 5*floatSize)
	// shade
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 6*floatSize)

	gl.BindVertexArray(0)
	b.count = int32(len(m.Indices))
	return nil
}

// DrawChunk draws the last mesh uploaded for pos, placed at the chunk origin.
func (r *ChunkRenderer) DrawChunk(pos world.ChunkPos) {
	b, ok := r.buffers[pos]
	if !ok {
		return
	}
	o := pos.Origin()
	r.program.SetMat4("model", mgl32.Translate3D(float32(o.X), float32(o.Y), float32(o.Z)))
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, nil)
}

// Delete frees every chunk buffer.
func (r *ChunkRenderer) Delete() {
	for pos, b := range r.buffers {
		b.delete()
		delete(r.buffers, pos)
	}
}
