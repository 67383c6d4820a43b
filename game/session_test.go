package game

import (
	"math"
	"testing"

	"MinecraftGolang/blocks"
	"MinecraftGolang/config"
	"MinecraftGolang/player"
	"MinecraftGolang/save"
	"MinecraftGolang/terrain"
	"MinecraftGolang/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flat worlds here are 5 blocks deep: grass at y=4, surface at y=4.5.
func newSession(t *testing.T, store *save.Store) *Session {
	t.Helper()
	w := world.New(blocks.Default(), terrain.NewFlat(5), nil)
	p := player.New(Spawn(w, 0, 0))
	return NewSession(w, p, store, 7, nil)
}

func TestSpawnStandsOnSurface(t *testing.T) {
	s := newSession(t, nil)
	assert.Equal(t, mgl32.Vec3{0, 4.5, 0}, s.Player.Position)
}

func TestBreakAndPlaceLookingDown(t *testing.T) {
	s := newSession(t, nil)
	s.Player.Rotation = mgl32.Vec2{0, -math.Pi / 2}

	target, ok := s.Target()
	require.True(t, ok)
	assert.Equal(t, world.BlockPos{Y: 4}, target.Next)
	assert.Equal(t, world.BlockPos{Y: 5}, target.Current)

	// placing into the cell the player stands in is refused
	require.True(t, s.Interact(ButtonRight))
	assert.Equal(t, blocks.Air, s.World.Block(world.BlockPos{Y: 5}))

	require.True(t, s.Interact(ButtonLeft))
	assert.Equal(t, blocks.Air, s.World.Block(world.BlockPos{Y: 4}))
}

func TestPlaceAndPickAgainstWall(t *testing.T) {
	s := newSession(t, nil)
	wall := world.BlockPos{X: 3, Y: 6}
	s.World.SetBlock(wall, blocks.Bricks)

	require.True(t, s.Interact(ButtonRight))
	assert.Equal(t, blocks.Grass, s.World.Block(world.BlockPos{X: 2, Y: 6}))

	s.World.SetBlock(world.BlockPos{X: 2, Y: 6}, blocks.Air)
	require.True(t, s.Interact(ButtonMiddle))
	assert.Equal(t, blocks.Bricks, s.Holding)
}

func TestNothingInReach(t *testing.T) {
	s := newSession(t, nil)
	s.Player.Rotation = mgl32.Vec2{0, 0.3}
	assert.False(t, s.Interact(ButtonLeft))
}

func TestRandomHoldingIsPlaceable(t *testing.T) {
	s := newSession(t, nil)
	for i := 0; i < 100; i++ {
		s.RandomHolding()
		require.NotEqual(t, blocks.Air, s.Holding)
		_, err := s.World.Registry().Get(s.Holding)
		require.NoError(t, err)
	}
}

func TestRandomTeleportStaysInsideWorld(t *testing.T) {
	s := newSession(t, nil)
	s.World.GetOrCreate(world.ChunkPos{X: 1, Z: 1})
	lo, hi, _ := s.World.Extents()

	for i := 0; i < 20; i++ {
		s.RandomTeleport()
		pos := s.Player.Position
		assert.GreaterOrEqual(t, int(pos.X()), lo.X)
		assert.LessOrEqual(t, int(pos.X()), hi.X)
		assert.GreaterOrEqual(t, int(pos.Z()), lo.Z)
		assert.LessOrEqual(t, int(pos.Z()), hi.Z)
		assert.Equal(t, float32(4.5), pos.Y())
	}
}

func TestUpdateKeepsPlayerOnGround(t *testing.T) {
	s := newSession(t, nil)
	s.Player.Teleport(mgl32.Vec3{0, 20, 0})
	for i := 0; i < 240; i++ {
		s.Update(config.TickRate)
	}
	assert.True(t, s.Player.Grounded)
	assert.InDelta(t, 4.5, s.Player.Position.Y(), 0.02)
}

func TestSaveAndLoad(t *testing.T) {
	assert.ErrorIs(t, newSession(t, nil).Save(), ErrNoStore)

	b, err := save.OpenLevelDBMemory()
	require.NoError(t, err)
	store, err := save.New(b, 7, nil)
	require.NoError(t, err)
	defer store.Close()

	s := newSession(t, store)
	require.NoError(t, s.Load(), "no save yet is not an error")
	s.World.SetBlock(world.BlockPos{X: 1, Y: 10, Z: 1}, blocks.Log)
	require.NoError(t, s.Save())

	fresh := newSession(t, store)
	require.NoError(t, fresh.Load())
	assert.Equal(t, blocks.Log, fresh.World.Block(world.BlockPos{X: 1, Y: 10, Z: 1}))
}
