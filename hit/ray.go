// Package hit walks a ray through the block grid to find what the player is
// looking at.
package hit

import (
	"iter"
	"math"

	"MinecraftGolang/config"
	"MinecraftGolang/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Grid answers whether a block stops the ray.
type Grid interface {
	Solid(x, y, z int) bool
}

// Sample is one step of the traversal: the ray left Current and entered Next
// after travelling Distance.
type Sample struct {
	Current  world.BlockPos
	Next     world.BlockPos
	Distance float32
	// Hit is set when Next is solid. Current is then the last empty cell,
	// where a placed block would go.
	Hit bool
}

// Ray is a restartable voxel traversal. It visits every cell the ray passes
// through, jumping from one cell boundary to the next, so it cannot skip a
// block however thin.
type Ray struct {
	grid     Grid
	dir      mgl32.Vec3
	maxRange float32

	cell     [3]int
	step     [3]int
	tMax     [3]float32
	tDelta   [3]float32
	distance float32
	stopped  bool
}

// Direction converts a (yaw, pitch) rotation into a unit vector.
func Direction(rotation mgl32.Vec2) mgl32.Vec3 {
	yaw, pitch := float64(rotation[0]), float64(rotation[1])
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
}

// New starts a ray at origin reaching config.HitRange blocks.
func New(grid Grid, rotation mgl32.Vec2, origin mgl32.Vec3) *Ray {
	return NewWithRange(grid, rotation, origin, config.HitRange)
}

func NewWithRange(grid Grid, rotation mgl32.Vec2, origin mgl32.Vec3, maxRange float32) *Ray {
	r := &Ray{grid: grid, dir: Direction(rotation), maxRange: maxRange}

	// blocks are centred on integers; shift so cell boundaries are integers
	q := origin.Add(mgl32.Vec3{0.5, 0.5, 0.5})
	inf := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		r.cell[i] = int(math.Floor(float64(q[i])))
		d := r.dir[i]
		switch {
		case d > 0:
			r.step[i] = 1
			r.tDelta[i] = 1 / d
			r.tMax[i] = (float32(r.cell[i]+1) - q[i]) / d
		case d < 0:
			r.step[i] = -1
			r.tDelta[i] = -1 / d
			r.tMax[i] = (q[i] - float32(r.cell[i])) / -d
		default:
			r.tDelta[i] = inf
			r.tMax[i] = inf
		}
	}
	return r
}

func (r *Ray) Direction() mgl32.Vec3 { return r.dir }

// Distance travelled so far. It never decreases.
func (r *Ray) Distance() float32 { return r.distance }

// Done reports whether the ray has hit something or run out of range.
func (r *Ray) Done() bool { return r.stopped }

// Next crosses the nearest cell boundary. ok is false once the ray has
// stopped; it stops after a hit or when the next boundary lies beyond range.
func (r *Ray) Next() (s Sample, ok bool) {
	if r.stopped {
		return Sample{}, false
	}

	// ties go to x, then y, then z
	axis := 0
	if r.tMax[1] < r.tMax[axis] {
		axis = 1
	}
	if r.tMax[2] < r.tMax[axis] {
		axis = 2
	}
	t := r.tMax[axis]
	if t > r.maxRange {
		r.stopped = true
		return Sample{}, false
	}

	s.Current = r.pos()
	r.cell[axis] += r.step[axis]
	r.tMax[axis] += r.tDelta[axis]
	r.distance = t
	s.Next = r.pos()
	s.Distance = t

	if r.grid.Solid(s.Next.X, s.Next.Y, s.Next.Z) {
		s.Hit = true
		r.stopped = true
	}
	return s, true
}

func (r *Ray) pos() world.BlockPos {
	return world.BlockPos{X: r.cell[0], Y: r.cell[1], Z: r.cell[2]}
}

// Step advances once and calls callback when the ray hits a solid block.
// It returns true on a hit.
func (r *Ray) Step(callback func(current, next world.BlockPos)) bool {
	s, ok := r.Next()
	if !ok || !s.Hit {
		return false
	}
	callback(s.Current, s.Next)
	return true
}

// Samples yields every step until a hit or the end of the range.
func (r *Ray) Samples() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for {
			s, ok := r.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Cast returns the first solid block within maxRange of origin.
func Cast(grid Grid, rotation mgl32.Vec2, origin mgl32.Vec3, maxRange float32) (Sample, bool) {
	for s := range NewWithRange(grid, rotation, origin, maxRange).Samples() {
		if s.Hit {
			return s, true
		}
	}
	return Sample{}, false
}
