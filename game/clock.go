package game

import "MinecraftGolang/config"

// Clock turns frame times into fixed simulation ticks.
type Clock struct {
	accumulator float32
}

// Advance adds elapsed seconds and returns how many ticks to run and how far
// into the next tick the frame lies, in [0, 1]. A frame longer than
// MaxFrameTime counts as MaxFrameTime, so a stall does not turn into a burst
// of catch-up ticks.
func (c *Clock) Advance(elapsed float32) (ticks int, alpha float32) {
	c.accumulator += min(max(elapsed, 0), config.MaxFrameTime)
	for c.accumulator >= config.TickRate {
		c.accumulator -= config.TickRate
		ticks++
	}
	return ticks, min(c.accumulator/config.TickRate, 1)
}
