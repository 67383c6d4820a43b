package world

import "MinecraftGolang/blocks"

// VertexStride is the number of floats per vertex: x, y, z, u, v, layer, shade.
const VertexStride = 7

// Quad records one visible face, kept alongside the vertex data so callers
// can reason about the mesh without decoding it.
type Quad struct {
	Local   LocalPos
	Face    blocks.Face
	Texture uint16
}

// Mesh holds interleaved vertices relative to the chunk origin and the
// triangle indices drawing them.
type Mesh struct {
	Quads    []Quad
	Vertices []float32
	Indices  []uint32
}

func (m *Mesh) Empty() bool { return m == nil || len(m.Indices) == 0 }

// QuadCount counts faces, optionally only those of one direction.
func (m *Mesh) QuadCount(filter func(Quad) bool) int {
	if filter == nil {
		return len(m.Quads)
	}
	n := 0
	for _, q := range m.Quads {
		if filter(q) {
			n++
		}
	}
	return n
}

// corners of each face, counter-clockwise seen from outside the block,
// starting bottom-left.
var faceCorners = [6][4][3]float32{
	blocks.East:  {{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}},
	blocks.West:  {{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}},
	blocks.Up:    {{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}},
	blocks.Down:  {{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}},
	blocks.South: {{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}},
	blocks.North: {{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}},
}

var cornerUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// faceShade fakes directional light so faces stay distinguishable without lighting.
var faceShade = [6]float32{
	blocks.East:  0.8,
	blocks.West:  0.8,
	blocks.Up:    1.0,
	blocks.Down:  0.4,
	blocks.South: 0.6,
	blocks.North: 0.6,
}

var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

type meshBuilder struct {
	m *Mesh
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{m: &Mesh{}}
}

func (b *meshBuilder) quad(l LocalPos, f blocks.Face, texture uint16) {
	base := uint32(len(b.m.Vertices) / VertexStride)
	for i, corner := range faceCorners[f] {
		b.m.Vertices = append(b.m.Vertices,
			float32(l.X)+corner[0], float32(l.Y)+corner[1], float32(l.Z)+corner[2],
			cornerUVs[i][0], cornerUVs[i][1],
			float32(texture), faceShade[f],
		)
	}
	for _, idx := range quadIndices {
		b.m.Indices = append(b.m.Indices, base+idx)
	}
	b.m.Quads = append(b.m.Quads, Quad{Local: l, Face: f, Texture: texture})
}

func (b *meshBuilder) finish() *Mesh {
	return b.m
}
