package terrain

// mix32 is a murmur-style finalizer. Stable across versions, unlike math/rand.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 gives every world column a fixed pseudo-random value for a seed.
func hash2(seed uint32, x, z int) uint32 {
	h := seed
	h ^= uint32(int32(x)) * 0x9e3779b1
	h ^= uint32(int32(z)) * 0x85ebca6b
	return mix32(h)
}

// unit maps a hash to [0, 1).
func unit(h uint32) float64 {
	return float64(h>>8) / float64(1<<24)
}
