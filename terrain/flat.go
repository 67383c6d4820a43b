package terrain

import (
	"MinecraftGolang/blocks"
	"MinecraftGolang/world"
)

// Flat builds a superflat world: bedrock, stone, two layers of dirt and grass
// on top, Height blocks in total.
type Flat struct {
	Height int
}

func NewFlat(height int) Flat {
	return Flat{Height: min(max(height, 1), world.Height)}
}

func (f Flat) Generate(_ world.ChunkPos, c *world.Chunk) {
	layers := make([]blocks.ID, f.Height)
	for y := range layers {
		switch {
		case y == 0:
			layers[y] = blocks.Bedrock
		case y == f.Height-1:
			layers[y] = blocks.Grass
		case y >= f.Height-3:
			layers[y] = blocks.Dirt
		default:
			layers[y] = blocks.Stone
		}
	}
	for x := 0; x < world.Width; x++ {
		for z := 0; z < world.Length; z++ {
			c.Column(x, z, layers...)
		}
	}
}
