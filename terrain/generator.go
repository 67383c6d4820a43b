// Package terrain fills chunks from a seed. Every generator here is a pure
// function of the chunk position, so chunks can be built in any order and on
// any goroutine.
package terrain

import (
	"MinecraftGolang/blocks"
	"MinecraftGolang/config"
	"MinecraftGolang/world"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

const (
	amplitude   = 24
	octaves     = 4
	lacunarity  = 2
	persistence = 0.5
	scale       = 96

	forestScale = 64
	leafRadius  = 2
	minTrunk    = 4
	maxTrunk    = 6
	// heights stay low enough for the tallest tree to fit.
	maxHeight = world.Height - 10
)

// Tree is one tree rooted on the surface of column (X, Z).
type Tree struct {
	X, Z  int
	Base  int // first log, one above the surface
	Trunk int
}

// Generator is the default hills-and-forests terrain.
type Generator struct {
	seed      uint32
	noise     opensimplex.Noise32
	forest    *perlin.Perlin
	treeMin   float64
	treeRange float64
}

type Option func(*Generator)

// WithTreeChance sets the chance of a tree on a grass column in the densest forest.
func WithTreeChance(p float64) Option {
	return func(g *Generator) {
		g.treeMin = min(g.treeMin, p)
		g.treeRange = p - g.treeMin
	}
}

func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		seed:      uint32(seed) ^ uint32(seed>>32),
		noise:     opensimplex.New32(seed),
		forest:    perlin.NewPerlin(2, 2, 3, seed),
		treeMin:   0.002,
		treeRange: 0.02,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// fractalNoise sums octaves of simplex noise, each at double the frequency
// and half the weight of the last.
func (g *Generator) fractalNoise(x, z int) float32 {
	var val float32
	amp := float32(amplitude)
	x1, z1 := float32(x), float32(z)
	for i := 0; i < octaves; i++ {
		val += g.noise.Eval2(x1/scale, z1/scale) * amp
		x1 *= lacunarity
		z1 *= lacunarity
		amp *= persistence
	}
	return val
}

// Height is the y of the surface block of column (x, z).
func (g *Generator) Height(x, z int) int {
	h := config.SeaLevel + int(g.fractalNoise(x, z))
	return min(max(h, 1), maxHeight)
}

// surface is the top block of a column of height h.
func surface(h int) blocks.ID {
	if h <= config.SeaLevel {
		return blocks.Sand
	}
	return blocks.Grass
}

func (g *Generator) Generate(pos world.ChunkPos, c *world.Chunk) {
	o := pos.Origin()
	for x := 0; x < world.Width; x++ {
		for z := 0; z < world.Length; z++ {
			g.column(c, x, z, g.Height(o.X+x, o.Z+z))
		}
	}

	// trees rooted in the surrounding ring can still reach into this chunk
	for _, t := range g.Trees(o.X-leafRadius, o.Z-leafRadius, o.X+world.Width+leafRadius-1, o.Z+world.Length+leafRadius-1) {
		g.stamp(c, o, t)
	}
}

func (g *Generator) column(c *world.Chunk, x, z, h int) {
	for y := 0; y <= h; y++ {
		var id blocks.ID
		switch {
		case y == 0:
			id = blocks.Bedrock
		case y < h-3:
			id = blocks.Stone
		case y < h:
			id = blocks.Dirt
		default:
			id = surface(h)
		}
		c.SetBlock(world.LocalPos{X: x, Y: y, Z: z}, id)
	}
}

// TreeAt reports the tree rooted at column (x, z), if any. Only grass grows trees.
func (g *Generator) TreeAt(x, z int) (Tree, bool) {
	h := g.Height(x, z)
	if surface(h) != blocks.Grass {
		return Tree{}, false
	}
	roll := hash2(g.seed, x, z)
	density := (g.forest.Noise2D(float64(x)/forestScale, float64(z)/forestScale) + 1) / 2
	if unit(roll) >= g.treeMin+g.treeRange*min(max(density, 0), 1) {
		return Tree{}, false
	}
	trunk := minTrunk + int(mix32(roll)%(maxTrunk-minTrunk+1))
	return Tree{X: x, Z: z, Base: h + 1, Trunk: trunk}, true
}

// Trees lists every tree rooted inside the inclusive column range.
func (g *Generator) Trees(minX, minZ, maxX, maxZ int) []Tree {
	var out []Tree
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			if t, ok := g.TreeAt(x, z); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

// stamp writes the part of t that falls inside the chunk at origin o. Leaves
// only fill air and logs only replace air or leaves, so overlapping trees give
// the same result whichever is stamped first.
func (g *Generator) stamp(c *world.Chunk, o world.BlockPos, t Tree) {
	top := t.Base + t.Trunk - 1

	for y := top - 2; y <= top+1; y++ {
		r := leafRadius
		if y >= top {
			r = 1
		}
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if r == leafRadius && abs(dx) == r && abs(dz) == r {
					continue
				}
				set(c, o, world.BlockPos{X: t.X + dx, Y: y, Z: t.Z + dz}, blocks.Leaves, blocks.Air)
			}
		}
	}
	for y := t.Base; y <= top; y++ {
		set(c, o, world.BlockPos{X: t.X, Y: y, Z: t.Z}, blocks.Log, blocks.Air, blocks.Leaves)
	}
}

// set writes id at p when p lies in the chunk and currently holds one of over.
func set(c *world.Chunk, o world.BlockPos, p world.BlockPos, id blocks.ID, over ...blocks.ID) {
	l := world.LocalPos{X: p.X - o.X, Y: p.Y, Z: p.Z - o.Z}
	if l.X < 0 || l.X >= world.Width || l.Z < 0 || l.Z >= world.Length || l.Y < 0 || l.Y >= world.Height {
		return
	}
	cur := c.Block(l)
	for _, ok := range over {
		if cur == ok {
			c.SetBlock(l, id)
			return
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
