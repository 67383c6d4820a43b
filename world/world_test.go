package world

import (
	"context"
	"testing"

	"MinecraftGolang/blocks"
	"MinecraftGolang/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatGen struct {
	height int
}

func (g flatGen) Generate(_ ChunkPos, c *Chunk) {
	for x := 0; x < Width; x++ {
		for z := 0; z < Length; z++ {
			for y := 0; y < g.height; y++ {
				c.SetBlock(LocalPos{x, y, z}, blocks.Stone)
			}
		}
	}
}

type recorder struct {
	uploads map[ChunkPos]int
	draws   map[ChunkPos]int
}

func newRecorder() *recorder {
	return &recorder{uploads: map[ChunkPos]int{}, draws: map[ChunkPos]int{}}
}

func (r *recorder) Upload(pos ChunkPos, _ *Mesh) error {
	r.uploads[pos]++
	return nil
}

func (r *recorder) DrawChunk(pos ChunkPos) { r.draws[pos]++ }

func face(local LocalPos, f blocks.Face) func(Quad) bool {
	return func(q Quad) bool { return q.Local == local && q.Face == f }
}

func TestBlockPosConversion(t *testing.T) {
	p := BlockPos{-1, 5, -33}
	assert.Equal(t, ChunkPos{-1, 0, -2}, p.Chunk())
	assert.Equal(t, LocalPos{31, 5, 31}, p.Local())
	assert.Equal(t, p, p.Chunk().World(p.Local()))

	assert.Equal(t, BlockPos{0, 1, -1}, BlockAt(mgl32.Vec3{0.49, 0.5, -0.51}))
}

func TestLazyGenerationIsIdempotent(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 4}, nil)
	p := BlockPos{40, 3, -7}

	first := w.Block(p)
	c, ok := w.Chunk(p.Chunk())
	require.True(t, ok)

	assert.Equal(t, first, w.Block(p))
	assert.Equal(t, blocks.Stone, first)
	assert.Equal(t, 1, w.Len())
	again, _ := w.Chunk(p.Chunk())
	assert.Same(t, c, again)
}

func TestOutOfHeightReadsAirWithoutChunks(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 4}, nil)

	assert.Equal(t, blocks.Air, w.Block(BlockPos{0, -1, 0}))
	assert.Equal(t, blocks.Air, w.Block(BlockPos{0, Height, 0}))
	w.SetBlock(BlockPos{0, Height + 10, 0}, blocks.Stone)
	assert.Zero(t, w.Len())
}

func TestFaceCulling(t *testing.T) {
	w := New(blocks.Default(), nil, nil)
	w.SetBlock(BlockPos{0, 10, 0}, blocks.Stone)
	w.SetBlock(BlockPos{1, 10, 0}, blocks.Stone)
	w.SetBlock(BlockPos{5, 10, 5}, blocks.Dirt)
	w.Remesh()

	c, _ := w.Chunk(ChunkPos{})
	m := c.Mesh()
	assert.Equal(t, 10+6, m.QuadCount(nil))
	assert.Zero(t, m.QuadCount(face(LocalPos{0, 10, 0}, blocks.East)), "shared face hidden")
	assert.Zero(t, m.QuadCount(face(LocalPos{1, 10, 0}, blocks.West)), "shared face hidden")
	assert.Equal(t, 1, m.QuadCount(face(LocalPos{0, 10, 0}, blocks.West)))
	assert.Equal(t, 1, m.QuadCount(face(LocalPos{1, 10, 0}, blocks.Up)))

	assert.Len(t, m.Vertices, m.QuadCount(nil)*4*VertexStride)
	assert.Len(t, m.Indices, m.QuadCount(nil)*6)
}

func TestTransparentNeighbourKeepsFace(t *testing.T) {
	w := New(blocks.Default(), nil, nil)
	w.SetBlock(BlockPos{3, 3, 3}, blocks.Stone)
	w.SetBlock(BlockPos{4, 3, 3}, blocks.Glass)
	w.Remesh()

	c, _ := w.Chunk(ChunkPos{})
	assert.Equal(t, 1, c.Mesh().QuadCount(face(LocalPos{3, 3, 3}, blocks.East)))
	assert.Zero(t, c.Mesh().QuadCount(face(LocalPos{4, 3, 3}, blocks.West)), "glass hidden by opaque stone")
}

func TestCullingAcrossChunkBorder(t *testing.T) {
	w := New(blocks.Default(), nil, nil)
	w.SetBlock(BlockPos{31, 10, 0}, blocks.Stone)
	w.SetBlock(BlockPos{32, 10, 0}, blocks.Stone)
	w.Remesh()

	left, _ := w.Chunk(ChunkPos{0, 0, 0})
	right, _ := w.Chunk(ChunkPos{1, 0, 0})
	assert.Zero(t, left.Mesh().QuadCount(face(LocalPos{31, 10, 0}, blocks.East)))
	assert.Zero(t, right.Mesh().QuadCount(face(LocalPos{0, 10, 0}, blocks.West)))
	assert.Equal(t, 5, left.Mesh().QuadCount(nil))
	assert.Equal(t, 5, right.Mesh().QuadCount(nil))
}

func TestMeshRebuildIsIdempotent(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 3}, nil)
	w.SetBlock(BlockPos{7, 3, 7}, blocks.Grass)
	c := w.GetOrCreate(ChunkPos{})

	first := c.BuildMesh(w.reg, w.peek)
	second := c.BuildMesh(w.reg, w.peek)
	assert.Equal(t, first, second)
	assert.Same(t, second, c.Mesh())
	assert.False(t, c.Dirty())
}

func TestBoundaryEditDirtiesNeighbour(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 12}, nil)
	for _, pos := range []ChunkPos{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}} {
		w.GetOrCreate(pos)
	}
	w.Remesh()

	w.SetBlock(BlockPos{31, 10, 5}, blocks.Air)

	own, _ := w.Chunk(ChunkPos{0, 0, 0})
	east, _ := w.Chunk(ChunkPos{1, 0, 0})
	south, _ := w.Chunk(ChunkPos{0, 0, 1})
	assert.True(t, own.Dirty())
	assert.True(t, east.Dirty())
	assert.False(t, south.Dirty(), "edit does not touch the south border")

	r := newRecorder()
	require.NoError(t, w.Draw(r))
	assert.Equal(t, 1, r.uploads[ChunkPos{0, 0, 0}])
	assert.Equal(t, 1, r.uploads[ChunkPos{1, 0, 0}])
	assert.Zero(t, r.uploads[ChunkPos{0, 0, 1}])
	assert.Equal(t, 1, r.draws[ChunkPos{0, 0, 1}])
	assert.False(t, east.Dirty())
	assert.Equal(t, 1, east.Mesh().QuadCount(face(LocalPos{0, 10, 5}, blocks.West)), "newly exposed face")
}

func TestNewChunkDirtiesExistingNeighbours(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 2}, nil)
	a := w.GetOrCreate(ChunkPos{})
	w.Remesh()
	require.False(t, a.Dirty())

	w.GetOrCreate(ChunkPos{0, 0, -1})
	assert.True(t, a.Dirty())
}

func TestInstallOverExistingChunkDirtiesNeighbours(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 12}, nil)
	west := w.GetOrCreate(ChunkPos{})
	w.GetOrCreate(ChunkPos{X: 1})
	w.Remesh()
	require.Zero(t, west.Mesh().QuadCount(face(LocalPos{31, 5, 5}, blocks.East)))

	require.NoError(t, w.Install(map[ChunkPos][]blocks.ID{{X: 1}: make([]blocks.ID, Volume)}))
	assert.True(t, west.Dirty())

	w.Remesh()
	assert.Equal(t, 1, west.Mesh().QuadCount(face(LocalPos{31, 5, 5}, blocks.East)), "border now faces air")
}

func TestTrySetBlockRejectsOverlap(t *testing.T) {
	w := New(blocks.Default(), nil, nil)
	p := BlockPos{2, 20, 2}
	collider := physics.NewAABB(mgl32.Vec3{1.7, 19.2, 1.7}, mgl32.Vec3{2.3, 21, 2.3})

	assert.False(t, w.TrySetBlock(p, blocks.Stone, collider))
	assert.Equal(t, blocks.Air, w.Block(p))

	assert.True(t, w.TrySetBlock(p.Add(0, -2, 0), blocks.Stone, collider))
	assert.Equal(t, blocks.Stone, w.Block(p.Add(0, -2, 0)))

	w.SetBlock(p, blocks.Dirt)
	assert.True(t, w.TrySetBlock(p, blocks.Air, collider), "clearing never collides")
}

func TestInstallIsAllOrNothing(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 2}, nil)
	w.GetOrCreate(ChunkPos{})

	good := make([]blocks.ID, Volume)
	good[LocalPos{1, 50, 1}.index()] = blocks.Bricks
	err := w.Install(map[ChunkPos][]blocks.ID{
		{0, 0, 0}: good,
		{4, 0, 4}: make([]blocks.ID, 10),
	})
	require.ErrorIs(t, err, ErrBadChunkData)
	assert.Equal(t, blocks.Stone, w.Block(BlockPos{1, 0, 1}))
	assert.Equal(t, 1, w.Len())

	require.NoError(t, w.Install(map[ChunkPos][]blocks.ID{{0, 0, 0}: good, {-1, 0, 0}: good}))
	assert.Equal(t, blocks.Bricks, w.Block(BlockPos{1, 50, 1}))
	assert.Equal(t, blocks.Air, w.Block(BlockPos{1, 0, 1}))
	assert.Equal(t, blocks.Bricks, w.Block(BlockPos{-31, 50, 1}))
}

func TestExtentsAndSurface(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 5}, nil)
	_, _, ok := w.Extents()
	assert.False(t, ok)

	w.GetOrCreate(ChunkPos{-1, 0, 0})
	w.GetOrCreate(ChunkPos{1, 0, 2})
	lo, hi, ok := w.Extents()
	require.True(t, ok)
	assert.Equal(t, BlockPos{-32, 0, 0}, lo)
	assert.Equal(t, BlockPos{63, Height - 1, 95}, hi)

	y, ok := w.SurfaceHeight(10, 10)
	require.True(t, ok)
	assert.Equal(t, 4, y)
}

func TestPregenerate(t *testing.T) {
	w := New(blocks.Default(), flatGen{height: 3}, nil)
	w.GetOrCreate(ChunkPos{})

	require.NoError(t, w.Pregenerate(context.Background(), ChunkPos{}, 1, 4))
	assert.Equal(t, 9, w.Len())
	assert.Equal(t, blocks.Stone, w.Block(BlockPos{-20, 2, 40}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	empty := New(blocks.Default(), flatGen{height: 3}, nil)
	assert.ErrorIs(t, empty.Pregenerate(ctx, ChunkPos{}, 2, 2), context.Canceled)
	assert.Zero(t, empty.Len())
}
