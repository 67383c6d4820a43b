// Package physics resolves axis-aligned boxes against the block grid.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box. Blocks are unit boxes centred on integer coordinates.
type AABB struct {
	Min, Max mgl32.Vec3
}

func NewAABB(min, max mgl32.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BlockBox is the box occupied by the block at (x, y, z).
func BlockBox(x, y, z int) AABB {
	c := mgl32.Vec3{float32(x), float32(y), float32(z)}
	half := mgl32.Vec3{0.5, 0.5, 0.5}
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Intersects reports strict overlap; boxes that only touch do not intersect.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

func (a AABB) Translate(d mgl32.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Expand grows the box in the direction of d, giving the region swept by a move of d.
func (a AABB) Expand(d mgl32.Vec3) AABB {
	out := a
	for i := 0; i < 3; i++ {
		if d[i] < 0 {
			out.Min[i] += d[i]
		} else {
			out.Max[i] += d[i]
		}
	}
	return out
}

// Blocks returns the inclusive range of block coordinates the box touches.
func (a AABB) Blocks() (min, max [3]int) {
	for i := 0; i < 3; i++ {
		min[i] = int(math.Floor(float64(a.Min[i]) + 0.5))
		max[i] = int(math.Floor(float64(a.Max[i]) + 0.5))
	}
	return min, max
}
