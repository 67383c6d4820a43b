package player

import (
	"testing"

	"MinecraftGolang/config"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ground is solid at and below y=0, so its surface sits at y=0.5.
type ground struct{}

func (ground) Solid(_, y, _ int) bool { return y <= 0 }

func settle(p *Player) {
	for i := 0; i < 180; i++ {
		p.Update(config.TickRate, ground{})
	}
}

func TestPitchIsClamped(t *testing.T) {
	p := New(mgl32.Vec3{})
	p.Rotate(10, 1e6)
	assert.Equal(t, float32(config.MaxPitch), p.Rotation[1])
	assert.InDelta(t, 10*config.MouseSensitivity, p.Rotation[0], 1e-6)

	p.Rotate(0, -1e7)
	assert.Equal(t, float32(-config.MaxPitch), p.Rotation[1])
}

func TestIntentPressAndRelease(t *testing.T) {
	p := New(mgl32.Vec3{})
	forward := mgl32.Vec3{0, 0, 1}
	right := mgl32.Vec3{1, 0, 0}

	p.ApplyIntent(forward, true)
	p.ApplyIntent(right, true)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, p.Intent)

	p.ApplyIntent(forward, false)
	p.ApplyIntent(right, false)
	assert.Equal(t, mgl32.Vec3{}, p.Intent)
}

func TestClearIntent(t *testing.T) {
	p := New(mgl32.Vec3{})
	p.ApplyIntent(mgl32.Vec3{0, 0, 1}, true)
	p.SetSprinting(true)

	p.ClearIntent()
	assert.Equal(t, mgl32.Vec3{}, p.Intent)
	assert.Equal(t, config.WalkingSpeed, p.TargetSpeed)

	// held keys start over from nothing
	p.ApplyIntent(mgl32.Vec3{0, 0, 1}, true)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, p.Intent)
}

func TestFallsAndLands(t *testing.T) {
	p := New(mgl32.Vec3{0, 6, 0})
	settle(p)

	assert.True(t, p.Grounded)
	assert.GreaterOrEqual(t, p.Position.Y(), float32(0.5))
	assert.Less(t, p.Position.Y(), float32(0.52))
}

func TestWalksWhereItLooks(t *testing.T) {
	p := New(mgl32.Vec3{0, 1, 0})
	settle(p)

	p.ApplyIntent(mgl32.Vec3{0, 0, 1}, true)
	for i := 0; i < 60; i++ {
		p.Update(config.TickRate, ground{})
	}
	assert.Greater(t, p.Position.X(), float32(2))
	assert.InDelta(t, 0, p.Position.Z(), 1e-3)
	assert.LessOrEqual(t, p.Velocity.Len(), config.WalkingSpeed+0.01)
}

func TestJumpNeedsGround(t *testing.T) {
	p := New(mgl32.Vec3{0, 10, 0})
	p.Intent[1] = 1
	p.Update(config.TickRate, ground{})
	assert.Less(t, p.Velocity.Y(), float32(0), "no jumping mid-air")

	p.Intent[1] = 0
	settle(p)
	require.True(t, p.Grounded)

	p.Intent[1] = 1
	p.Update(config.TickRate, ground{})
	assert.Greater(t, p.Velocity.Y(), float32(0))
	assert.Greater(t, p.Position.Y(), float32(0.6))
	assert.False(t, p.Grounded)
}

func TestFlyingIgnoresGravity(t *testing.T) {
	p := New(mgl32.Vec3{0, 40, 0})
	p.ToggleFlying()
	for i := 0; i < 30; i++ {
		p.Update(config.TickRate, ground{})
	}
	assert.Equal(t, float32(40), p.Position.Y())

	p.ApplyIntent(mgl32.Vec3{0, 1, 0}, true)
	p.Update(config.TickRate, ground{})
	assert.Greater(t, p.Position.Y(), float32(40))
}

func TestSprintAndTeleport(t *testing.T) {
	p := New(mgl32.Vec3{})
	p.SetSprinting(true)
	assert.Equal(t, config.SprintingSpeed, p.TargetSpeed)
	p.SetSprinting(false)
	assert.Equal(t, config.WalkingSpeed, p.TargetSpeed)

	p.Velocity = mgl32.Vec3{1, 2, 3}
	p.Teleport(mgl32.Vec3{5, 80, -5})
	assert.Equal(t, mgl32.Vec3{5, 80, -5}, p.Position)
	assert.Equal(t, mgl32.Vec3{}, p.Velocity)
	assert.True(t, p.EyePosition().ApproxEqual(mgl32.Vec3{5, 81.6, -5}))
}

func TestColliderSurroundsFeet(t *testing.T) {
	box := New(mgl32.Vec3{1, 2, 3}).Collider()
	assert.InDelta(t, 0.7, box.Min.X(), 1e-6)
	assert.InDelta(t, 2, box.Min.Y(), 1e-6)
	assert.InDelta(t, 3.8, box.Max.Y(), 1e-6)
}
