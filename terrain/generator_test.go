package terrain

import (
	"testing"

	"MinecraftGolang/blocks"
	"MinecraftGolang/config"
	"MinecraftGolang/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(g world.Generator, pos world.ChunkPos) *world.Chunk {
	c := world.NewChunk(pos)
	g.Generate(pos, c)
	return c
}

func TestGenerationIsDeterministic(t *testing.T) {
	for _, pos := range []world.ChunkPos{{}, {X: -3, Z: 7}, {X: 1000, Z: -1000}} {
		a := generate(New(config.Seed), pos)
		b := generate(New(config.Seed), pos)
		assert.Equal(t, a.Blocks(), b.Blocks(), "chunk %v", pos)
	}

	other := generate(New(config.Seed+1), world.ChunkPos{})
	assert.NotEqual(t, generate(New(config.Seed), world.ChunkPos{}).Blocks(), other.Blocks())
}

func TestColumnStrata(t *testing.T) {
	g := New(config.Seed, WithTreeChance(0))
	c := generate(g, world.ChunkPos{X: 2, Z: -1})
	o := c.Pos().Origin()

	for _, col := range [][2]int{{0, 0}, {5, 17}, {31, 31}} {
		x, z := col[0], col[1]
		h := g.Height(o.X+x, o.Z+z)
		require.GreaterOrEqual(t, h, 1)

		assert.Equal(t, blocks.Bedrock, c.Block(world.LocalPos{X: x, Y: 0, Z: z}))
		top := c.Block(world.LocalPos{X: x, Y: h, Z: z})
		assert.Contains(t, []blocks.ID{blocks.Grass, blocks.Sand}, top)
		assert.Equal(t, blocks.Air, c.Block(world.LocalPos{X: x, Y: h + 1, Z: z}))
		if h > 4 {
			assert.Equal(t, blocks.Dirt, c.Block(world.LocalPos{X: x, Y: h - 1, Z: z}))
			assert.Equal(t, blocks.Stone, c.Block(world.LocalPos{X: x, Y: h - 4, Z: z}))
		}
	}
}

func TestTreesCrossChunkBorders(t *testing.T) {
	g := New(config.Seed, WithTreeChance(0.5))

	var tree Tree
	found := false
	for z := 0; z < 4096 && !found; z++ {
		tree, found = g.TreeAt(world.Width-1, z)
	}
	require.True(t, found, "no tree on the chunk edge")

	zc := tree.Z / world.Length
	west := generate(g, world.ChunkPos{X: 0, Z: zc})
	east := generate(g, world.ChunkPos{X: 1, Z: zc})
	top := tree.Base + tree.Trunk - 1
	lz := tree.Z - zc*world.Length

	assert.Equal(t, blocks.Log, west.Block(world.LocalPos{X: world.Width - 1, Y: tree.Base, Z: lz}))
	assert.Equal(t, blocks.Log, west.Block(world.LocalPos{X: world.Width - 1, Y: top, Z: lz}))
	// the canopy spills one and two blocks into the next chunk
	assert.NotEqual(t, blocks.Air, east.Block(world.LocalPos{X: 0, Y: top - 1, Z: lz}))
	assert.NotEqual(t, blocks.Air, east.Block(world.LocalPos{X: 1, Y: top - 1, Z: lz}))
}

func TestTreesNeverReplaceTerrain(t *testing.T) {
	g := New(config.Seed, WithTreeChance(1))
	bare := New(config.Seed, WithTreeChance(0))
	pos := world.ChunkPos{X: 3, Z: 3}

	withTrees := generate(g, pos).Blocks()
	without := generate(bare, pos).Blocks()
	for i, id := range without {
		if id != blocks.Air {
			require.Equal(t, id, withTrees[i])
		}
	}
}

func TestFlat(t *testing.T) {
	c := generate(NewFlat(5), world.ChunkPos{X: -8, Z: 2})
	want := []blocks.ID{blocks.Bedrock, blocks.Stone, blocks.Dirt, blocks.Dirt, blocks.Grass, blocks.Air}
	for y, id := range want {
		assert.Equal(t, id, c.Block(world.LocalPos{X: 9, Y: y, Z: 30}), "y=%d", y)
	}
	assert.Equal(t, 1, NewFlat(0).Height)
}
