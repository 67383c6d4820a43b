package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Grid answers whether a block cell stops movement.
type Grid interface {
	Solid(x, y, z int) bool
}

// maxIterations bounds how many faces one move can slide along (floor, wall, corner).
const maxIterations = 3

// skin keeps a resolved box a hair away from the face it hit so the next
// sweep does not start overlapping.
const skin = 0.001

func entryTime(distance, speed float32) float32 {
	if speed == 0 {
		if distance > 0 {
			return float32(math.Inf(-1))
		}
		return float32(math.Inf(1))
	}
	return distance / speed
}

// Sweep returns the fraction of vel at which a moving box first touches other,
// and the normal of the face it touches. ok is false when no contact happens
// within this move.
func Sweep(box, other AABB, vel mgl32.Vec3) (entry float32, normal [3]int, ok bool) {
	var entries, exits [3]float32
	for i := 0; i < 3; i++ {
		if vel[i] > 0 {
			entries[i] = entryTime(other.Min[i]-box.Max[i], vel[i])
			exits[i] = entryTime(other.Max[i]-box.Min[i], vel[i])
		} else {
			entries[i] = entryTime(other.Max[i]-box.Min[i], vel[i])
			exits[i] = entryTime(other.Min[i]-box.Max[i], vel[i])
		}
	}

	if entries[0] < 0 && entries[1] < 0 && entries[2] < 0 {
		return 1, normal, false
	}
	if entries[0] > 1 || entries[1] > 1 || entries[2] > 1 {
		return 1, normal, false
	}

	entry = max(entries[0], entries[1], entries[2])
	exit := min(exits[0], exits[1], exits[2])
	if entry > exit {
		return 1, normal, false
	}

	for i := 0; i < 3; i++ {
		if entry != entries[i] {
			continue
		}
		if vel[i] > 0 {
			normal[i] = -1
		} else {
			normal[i] = 1
		}
	}
	return entry, normal, true
}

// Result is the outcome of one Move.
type Result struct {
	// Offset is the displacement to apply to the owner's position.
	Offset   mgl32.Vec3
	Velocity mgl32.Vec3
	// Grounded is set when the box landed on an upward-facing surface.
	Grounded   bool
	Collisions int
}

// Move sweeps box through the grid with velocity vel for dt seconds. Every
// block in the swept region is a candidate, so the distance covered in one
// call cannot skip over a block however large it is.
func Move(grid Grid, box AABB, vel mgl32.Vec3, dt float32) Result {
	res := Result{Velocity: vel}

	for i := 0; i < maxIterations; i++ {
		step := res.Velocity.Mul(dt)
		if step.Len() == 0 {
			break
		}

		lo, hi := box.Expand(step).Blocks()
		best := float32(math.Inf(1))
		var bestNormal [3]int
		found := false

		for x := lo[0]; x <= hi[0]; x++ {
			for y := lo[1]; y <= hi[1]; y++ {
				for z := lo[2]; z <= hi[2]; z++ {
					if !grid.Solid(x, y, z) {
						continue
					}
					entry, normal, ok := Sweep(box, BlockBox(x, y, z), step)
					if !ok || entry >= best {
						continue
					}
					best, bestNormal, found = entry, normal, true
				}
			}
		}
		if !found {
			break
		}

		res.Collisions++
		best -= skin
		var moved mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			if bestNormal[axis] == 0 {
				continue
			}
			moved[axis] = step[axis] * best
			res.Velocity[axis] = 0
		}
		if bestNormal[1] == 1 {
			res.Grounded = true
		}
		res.Offset = res.Offset.Add(moved)
		box = box.Translate(moved)
	}

	res.Offset = res.Offset.Add(res.Velocity.Mul(dt))
	return res
}
