// Package game ties the world, the player and the save together and turns
// input into world edits.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"MinecraftGolang/blocks"
	"MinecraftGolang/config"
	"MinecraftGolang/hit"
	"MinecraftGolang/logging"
	"MinecraftGolang/player"
	"MinecraftGolang/save"
	"MinecraftGolang/world"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var ErrNoStore = errors.New("session has no save store")

// Button is a mouse button as the session understands it.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Session is one running game. It is driven from a single goroutine.
type Session struct {
	World   *world.World
	Player  *player.Player
	Holding blocks.ID

	store  *save.Store
	rng    *rand.Rand
	logger *zap.Logger
}

// NewSession starts a session. store may be nil, in which case Save fails.
func NewSession(w *world.World, p *player.Player, store *save.Store, seed int64, logger *zap.Logger) *Session {
	logger = logging.OrNop(logger)
	return &Session{
		World:   w,
		Player:  p,
		Holding: blocks.Grass,
		store:   store,
		rng:     rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1)),
		logger:  logger.Named("game"),
	}
}

// Spawn is the feet position standing on column (x, z).
func Spawn(w *world.World, x, z int) mgl32.Vec3 {
	y, ok := w.SurfaceHeight(x, z)
	if !ok {
		return mgl32.Vec3{float32(x), float32(world.Height), float32(z)}
	}
	// a block centred on y has its top face at y+0.5
	return mgl32.Vec3{float32(x), float32(y) + 0.5, float32(z)}
}

func (s *Session) Update(dt float32) {
	s.Player.Update(dt, s.World)
}

func (s *Session) Draw(r world.Renderer) error {
	return s.World.Draw(r)
}

// Target is the block under the crosshair, if one is within reach.
func (s *Session) Target() (hit.Sample, bool) {
	return hit.Cast(s.World, s.Player.Rotation, s.Player.EyePosition(), config.HitRange)
}

// Interact applies a mouse click to the targeted block and reports whether
// anything was in reach.
func (s *Session) Interact(b Button) bool {
	ray := hit.New(s.World, s.Player.Rotation, s.Player.EyePosition())
	for sample := range ray.Samples() {
		if !sample.Hit {
			continue
		}
		switch b {
		case ButtonRight:
			s.Place(sample.Current, s.Holding)
		case ButtonLeft:
			s.Break(sample.Next)
		case ButtonMiddle:
			s.Pick(sample.Next)
		}
		return true
	}
	return false
}

// Place puts id at p unless it would overlap the player.
func (s *Session) Place(p world.BlockPos, id blocks.ID) bool {
	ok := s.World.TrySetBlock(p, id, s.Player.Collider())
	if ok {
		s.logger.Debug("placed block", zap.Stringer("pos", p), zap.Uint8("id", uint8(id)))
	}
	return ok
}

func (s *Session) Break(p world.BlockPos) {
	s.World.SetBlock(p, blocks.Air)
	s.logger.Debug("broke block", zap.Stringer("pos", p))
}

// Pick holds whatever block is at p. Picking air keeps the current block.
func (s *Session) Pick(p world.BlockPos) {
	if id := s.World.BlockNumber(p); id != blocks.Air {
		s.Holding = id
	}
}

// RandomHolding holds a random non-air block.
func (s *Session) RandomHolding() {
	n := s.World.Registry().Count()
	s.Holding = blocks.ID(1 + s.rng.IntN(n-1))
}

// RandomTeleport drops the player onto the surface of a random column inside
// the generated part of the world.
func (s *Session) RandomTeleport() {
	lo, hi, ok := s.World.Extents()
	if !ok {
		return
	}
	x := lo.X + s.rng.IntN(hi.X-lo.X+1)
	z := lo.Z + s.rng.IntN(hi.Z-lo.Z+1)
	pos := Spawn(s.World, x, z)
	s.Player.Teleport(pos)
	s.logger.Info("teleported", zap.Float32("x", pos.X()), zap.Float32("y", pos.Y()), zap.Float32("z", pos.Z()))
}

func (s *Session) Save() error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Save(s.World); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load replaces the world's chunks with the saved ones. With nothing saved
// the world is left as it is.
func (s *Session) Load() error {
	if s.store == nil {
		return ErrNoStore
	}
	err := s.store.Load(s.World)
	if errors.Is(err, save.ErrNotFound) {
		s.logger.Info("no save found, starting fresh")
		return nil
	}
	return err
}
