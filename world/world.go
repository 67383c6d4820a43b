// Package world stores the chunked block grid and keeps chunk meshes current.
package world

import (
	"errors"
	"fmt"
	"iter"

	"MinecraftGolang/blocks"
	"MinecraftGolang/logging"
	"MinecraftGolang/physics"

	"go.uber.org/zap"
)

var ErrBadChunkData = errors.New("bad chunk data")

// Generator fills a freshly created chunk. Implementations must be pure
// functions of the chunk position so generation order never matters.
type Generator interface {
	Generate(pos ChunkPos, c *Chunk)
}

// Renderer receives rebuilt meshes and draws chunks. The world never talks to
// the GPU itself.
type Renderer interface {
	Upload(pos ChunkPos, m *Mesh) error
	DrawChunk(pos ChunkPos)
}

// World owns every chunk. It is not safe for concurrent use.
type World struct {
	reg    *blocks.Registry
	gen    Generator
	logger *zap.Logger
	chunks map[ChunkPos]*Chunk
}

// New returns an empty world. A nil generator leaves new chunks empty.
func New(reg *blocks.Registry, gen Generator, logger *zap.Logger) *World {
	logger = logging.OrNop(logger)
	return &World{
		reg:    reg,
		gen:    gen,
		logger: logger.Named("world"),
		chunks: make(map[ChunkPos]*Chunk),
	}
}

func (w *World) Registry() *blocks.Registry { return w.reg }

// Chunk looks a chunk up without generating it.
func (w *World) Chunk(pos ChunkPos) (*Chunk, bool) {
	c, ok := w.chunks[pos]
	return c, ok
}

// GetOrCreate returns the chunk at pos, generating it on first use.
func (w *World) GetOrCreate(pos ChunkPos) *Chunk {
	if c, ok := w.chunks[pos]; ok {
		return c
	}
	c := NewChunk(pos)
	if w.gen != nil {
		w.gen.Generate(pos, c)
	}
	w.insert(c)
	w.logger.Debug("generated chunk", zap.Stringer("pos", pos))
	return c
}

// insert adds c and dirties the chunks around it, whose boundary faces were
// built while c was missing.
func (w *World) insert(c *Chunk) {
	w.chunks[c.pos] = c
	for _, f := range blocks.Faces {
		if n, ok := w.chunks[c.pos.Neighbour(f)]; ok {
			n.MarkDirty()
		}
	}
}

// Block returns the block at p, generating its chunk if needed. Positions
// above or below the world read as air.
func (w *World) Block(p BlockPos) blocks.ID {
	if !p.InHeight() {
		return blocks.Air
	}
	return w.GetOrCreate(p.Chunk()).Block(p.Local())
}

// BlockNumber is Block under the name the pick interaction uses.
func (w *World) BlockNumber(p BlockPos) blocks.ID {
	return w.Block(p)
}

// SetBlock writes id at p and dirties every existing chunk whose mesh can see
// the edited cell. Writes outside the world height are ignored.
func (w *World) SetBlock(p BlockPos, id blocks.ID) {
	if !p.InHeight() {
		return
	}
	c := w.GetOrCreate(p.Chunk())
	c.SetBlock(p.Local(), id)

	for _, f := range blocks.Faces {
		n := p.Neighbour(f)
		if !n.InHeight() || n.Chunk() == c.pos {
			continue
		}
		if nc, ok := w.chunks[n.Chunk()]; ok {
			nc.MarkDirty()
		}
	}
}

// TrySetBlock places id at p unless the new block would overlap collider.
// Clearing a cell is never rejected.
func (w *World) TrySetBlock(p BlockPos, id blocks.ID, collider physics.AABB) bool {
	if !p.InHeight() {
		return false
	}
	if w.reg.Solid(id) && physics.BlockBox(p.X, p.Y, p.Z).Intersects(collider) {
		return false
	}
	w.SetBlock(p, id)
	return true
}

// Solid lets physics collide against the grid.
func (w *World) Solid(x, y, z int) bool {
	return w.reg.Solid(w.Block(BlockPos{x, y, z}))
}

// peek reads a block for meshing. It never creates chunks: a missing chunk
// reads as air until it exists, at which point insert dirties its neighbours.
func (w *World) peek(p BlockPos) blocks.ID {
	if !p.InHeight() {
		return blocks.Air
	}
	c, ok := w.chunks[p.Chunk()]
	if !ok {
		return blocks.Air
	}
	return c.Block(p.Local())
}

// Remesh rebuilds every dirty chunk and returns their positions.
func (w *World) Remesh() []ChunkPos {
	var rebuilt []ChunkPos
	for pos, c := range w.chunks {
		if !c.Dirty() {
			continue
		}
		c.BuildMesh(w.reg, w.peek)
		rebuilt = append(rebuilt, pos)
	}
	return rebuilt
}

// Draw brings every mesh up to date, hands the rebuilt ones to r and then
// draws every chunk with something to show.
func (w *World) Draw(r Renderer) error {
	for _, pos := range w.Remesh() {
		if err := r.Upload(pos, w.chunks[pos].Mesh()); err != nil {
			return fmt.Errorf("upload %v: %w", pos, err)
		}
	}
	for pos, c := range w.chunks {
		if c.Mesh().Empty() {
			continue
		}
		r.DrawChunk(pos)
	}
	return nil
}

// Chunks iterates the chunk map. Callers must not add or remove chunks while
// iterating.
func (w *World) Chunks() iter.Seq2[ChunkPos, *Chunk] {
	return func(yield func(ChunkPos, *Chunk) bool) {
		for pos, c := range w.chunks {
			if !yield(pos, c) {
				return
			}
		}
	}
}

func (w *World) Len() int { return len(w.chunks) }

// Extents returns the block-space bounds covered by generated chunks.
func (w *World) Extents() (lo, hi BlockPos, ok bool) {
	for pos := range w.chunks {
		o := pos.Origin()
		top := BlockPos{o.X + Width - 1, o.Y + Height - 1, o.Z + Length - 1}
		if !ok {
			lo, hi, ok = o, top, true
			continue
		}
		lo = BlockPos{min(lo.X, o.X), min(lo.Y, o.Y), min(lo.Z, o.Z)}
		hi = BlockPos{max(hi.X, top.X), max(hi.Y, top.Y), max(hi.Z, top.Z)}
	}
	return lo, hi, ok
}

// SurfaceHeight returns the y of the topmost non-air block in column (x, z).
func (w *World) SurfaceHeight(x, z int) (int, bool) {
	p := BlockPos{x, 0, z}
	c := w.GetOrCreate(p.Chunk())
	l := p.Local()
	for y := Height - 1; y >= 0; y-- {
		l.Y = y
		if c.Block(l) != blocks.Air {
			return y, true
		}
	}
	return 0, false
}

// Install replaces the block arrays of the given chunks, creating missing ones
// without running the generator. Every array is checked before anything is
// written, so a bad entry leaves the world untouched.
func (w *World) Install(data map[ChunkPos][]blocks.ID) error {
	for pos, ids := range data {
		if pos.Y != 0 {
			return fmt.Errorf("%w: chunk %v outside the world column", ErrBadChunkData, pos)
		}
		if len(ids) != Volume {
			return fmt.Errorf("%w: chunk %v has %d blocks, want %d", ErrBadChunkData, pos, len(ids), Volume)
		}
		for _, id := range ids {
			if int(id) >= w.reg.Count() {
				return fmt.Errorf("%w: chunk %v: %w", ErrBadChunkData, pos, blocks.ErrUnknownBlock)
			}
		}
	}

	for pos, ids := range data {
		c, ok := w.chunks[pos]
		if !ok {
			c = NewChunk(pos)
			w.chunks[pos] = c
		}
		// lengths were validated above
		_ = c.Fill(ids)
		// neighbours culled their border against the old blocks
		for _, f := range blocks.Faces {
			if n, ok := w.chunks[pos.Neighbour(f)]; ok {
				n.MarkDirty()
			}
		}
	}
	w.logger.Info("installed chunks", zap.Int("count", len(data)))
	return nil
}
