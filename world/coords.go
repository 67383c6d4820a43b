package world

import (
	"fmt"
	"math"

	"MinecraftGolang/blocks"
	"MinecraftGolang/config"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Width  = config.ChunkWidth
	Height = config.ChunkHeight
	Length = config.ChunkLength
	Volume = Width * Height * Length
)

// BlockPos is a block in world space. Y is bounded by Height, X and Z are not.
type BlockPos struct {
	X, Y, Z int
}

// ChunkPos is a chunk in chunk space. A chunk spans the full world height, so Y is 0
// for every chunk the world creates.
type ChunkPos struct {
	X, Y, Z int
}

// LocalPos addresses a block inside one chunk.
type LocalPos struct {
	X, Y, Z int
}

func (p BlockPos) String() string { return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z) }
func (p ChunkPos) String() string { return fmt.Sprintf("chunk(%d, %d, %d)", p.X, p.Y, p.Z) }

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Chunk returns the chunk holding p.
func (p BlockPos) Chunk() ChunkPos {
	return ChunkPos{floorDiv(p.X, Width), floorDiv(p.Y, Height), floorDiv(p.Z, Length)}
}

// Local returns p relative to the origin of its chunk.
func (p BlockPos) Local() LocalPos {
	return LocalPos{floorMod(p.X, Width), floorMod(p.Y, Height), floorMod(p.Z, Length)}
}

// InHeight reports whether p lies within the vertical bounds of the world.
func (p BlockPos) InHeight() bool {
	return p.Y >= 0 && p.Y < Height
}

func (p BlockPos) Add(dx, dy, dz int) BlockPos {
	return BlockPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// Neighbour steps across face f.
func (p BlockPos) Neighbour(f blocks.Face) BlockPos {
	dx, dy, dz := f.Offset()
	return p.Add(dx, dy, dz)
}

// Vec returns the centre of p.
func (p BlockPos) Vec() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}

// BlockAt rounds a point to the block containing it. Blocks are centred on
// integer coordinates.
func BlockAt(v mgl32.Vec3) BlockPos {
	return BlockPos{
		int(math.Floor(float64(v.X()) + 0.5)),
		int(math.Floor(float64(v.Y()) + 0.5)),
		int(math.Floor(float64(v.Z()) + 0.5)),
	}
}

// Origin is the world position of local (0, 0, 0).
func (c ChunkPos) Origin() BlockPos {
	return BlockPos{c.X * Width, c.Y * Height, c.Z * Length}
}

// World converts a local position inside c to world space.
func (c ChunkPos) World(l LocalPos) BlockPos {
	o := c.Origin()
	return BlockPos{o.X + l.X, o.Y + l.Y, o.Z + l.Z}
}

// Neighbour returns the chunk adjacent to c across face f.
func (c ChunkPos) Neighbour(f blocks.Face) ChunkPos {
	dx, dy, dz := f.Offset()
	return ChunkPos{c.X + dx, c.Y + dy, c.Z + dz}
}

func (l LocalPos) valid() bool {
	return l.X >= 0 && l.X < Width && l.Y >= 0 && l.Y < Height && l.Z >= 0 && l.Z < Length
}

// index lays columns out contiguously: y varies fastest.
func (l LocalPos) index() int {
	return (l.X*Length+l.Z)*Height + l.Y
}
