package world

import (
	"fmt"

	"MinecraftGolang/blocks"
)

// NeighborLookup resolves a block outside the chunk being meshed.
type NeighborLookup func(p BlockPos) blocks.ID

// Chunk is a full-height column of Width x Height x Length blocks.
type Chunk struct {
	pos   ChunkPos
	data  [Volume]blocks.ID
	dirty bool
	mesh  *Mesh
}

// NewChunk returns an all-air chunk that still needs meshing.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{pos: pos, dirty: true, mesh: &Mesh{}}
}

func (c *Chunk) Pos() ChunkPos { return c.pos }

func mustIndex(l LocalPos) int {
	if !l.valid() {
		panic(fmt.Sprintf("world: local position %v outside chunk", l))
	}
	return l.index()
}

// Block panics when l lies outside the chunk.
func (c *Chunk) Block(l LocalPos) blocks.ID {
	return c.data[mustIndex(l)]
}

// SetBlock overwrites one cell and marks the chunk dirty. Neighbouring
// chunks are the world's concern.
func (c *Chunk) SetBlock(l LocalPos, id blocks.ID) {
	c.data[mustIndex(l)] = id
	c.dirty = true
}

func (c *Chunk) Dirty() bool { return c.dirty }

func (c *Chunk) MarkDirty() { c.dirty = true }

// Mesh is the last completed build. It is never nil.
func (c *Chunk) Mesh() *Mesh { return c.mesh }

// Blocks copies out the dense block array.
func (c *Chunk) Blocks() []blocks.ID {
	out := make([]blocks.ID, Volume)
	copy(out, c.data[:])
	return out
}

// Fill replaces every block. data must hold exactly Volume entries.
func (c *Chunk) Fill(data []blocks.ID) error {
	if len(data) != Volume {
		return fmt.Errorf("%w: %d blocks, want %d", ErrBadChunkData, len(data), Volume)
	}
	copy(c.data[:], data)
	c.dirty = true
	return nil
}

// Column fills local column (x, z) from y=0 upwards with ids, used by generators.
func (c *Chunk) Column(x, z int, ids ...blocks.ID) {
	for y, id := range ids {
		c.SetBlock(LocalPos{x, y, z}, id)
	}
}

// BuildMesh emits one quad per block face that borders air or a transparent
// block. The result replaces the chunk's mesh only once it is complete.
func (c *Chunk) BuildMesh(reg *blocks.Registry, lookup NeighborLookup) *Mesh {
	b := newMeshBuilder()

	for x := 0; x < Width; x++ {
		for z := 0; z < Length; z++ {
			for y := 0; y < Height; y++ {
				l := LocalPos{x, y, z}
				id := c.data[l.index()]
				if id == blocks.Air {
					continue
				}
				for _, f := range blocks.Faces {
					if reg.Opaque(c.neighbour(l, f, lookup)) {
						continue
					}
					b.quad(l, f, reg.TextureIndex(id, f))
				}
			}
		}
	}

	m := b.finish()
	c.mesh = m
	c.dirty = false
	return m
}

func (c *Chunk) neighbour(l LocalPos, f blocks.Face, lookup NeighborLookup) blocks.ID {
	dx, dy, dz := f.Offset()
	n := LocalPos{l.X + dx, l.Y + dy, l.Z + dz}
	if n.valid() {
		return c.data[n.index()]
	}
	if lookup == nil {
		return blocks.Air
	}
	return lookup(c.pos.World(n))
}
