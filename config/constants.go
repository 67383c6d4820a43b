package config

import "math"

// World dimensions. Shared by the world, the terrain generators and the save format.
const (
	ChunkWidth  = 32
	ChunkHeight = 256
	ChunkLength = 32

	SeaLevel = 62
)

const (
	Seed int64 = 12

	// HitRange is how far (in blocks) the player can reach.
	HitRange float32 = 3

	WalkingSpeed   float32 = 4.317
	SprintingSpeed float32 = 7
	FlyingFactor   float32 = 2

	MouseSensitivity float32 = 0.004

	PlayerWidth  float32 = 0.6
	PlayerHeight float32 = 1.8
	EyeLevel             = PlayerHeight - 0.2
	JumpHeight   float32 = 1.25

	TickRate float32 = 1.0 / 60
	// MaxFrameTime caps how much simulation a single frame may ask for.
	MaxFrameTime float32 = 0.25
)

// MaxPitch keeps the camera from flipping over the poles.
const MaxPitch = math.Pi / 2
