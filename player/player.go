// Package player moves the first-person player through the world.
package player

import (
	"math"

	"MinecraftGolang/config"
	"MinecraftGolang/hit"
	"MinecraftGolang/physics"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	gravity = -32

	fieldOfView = 70
	nearPlane   = 0.1
	farPlane    = 500
)

var (
	friction = mgl32.Vec3{20, 20, 20}
	dragFly  = mgl32.Vec3{5, 5, 5}
	dragJump = mgl32.Vec3{1.8, 0, 1.8}
	dragFall = mgl32.Vec3{1.8, 0.4, 1.8}
)

// Player is the camera and body of the person playing. Position is the
// centre of the feet.
type Player struct {
	Position mgl32.Vec3
	// Rotation is yaw then pitch, in radians.
	Rotation mgl32.Vec2
	Velocity mgl32.Vec3
	// Intent is the movement the keys ask for: X strafes right, Y rises
	// and Z walks forward.
	Intent      mgl32.Vec3
	Flying      bool
	Grounded    bool
	TargetSpeed float32

	speed    float32
	previous mgl32.Vec3
}

func New(position mgl32.Vec3) *Player {
	return &Player{
		Position:    position,
		previous:    position,
		TargetSpeed: config.WalkingSpeed,
		speed:       config.WalkingSpeed,
	}
}

// Collider is the box the player occupies.
func (p *Player) Collider() physics.AABB {
	half := config.PlayerWidth / 2
	return physics.NewAABB(
		p.Position.Sub(mgl32.Vec3{half, 0, half}),
		p.Position.Add(mgl32.Vec3{half, config.PlayerHeight, half}),
	)
}

// Rotate turns the camera by a mouse delta, keeping the pitch short of straight up or down.
func (p *Player) Rotate(dx, dy float32) {
	p.Rotation[0] += dx * config.MouseSensitivity
	p.Rotation[1] += dy * config.MouseSensitivity
	p.Rotation[1] = mgl32.Clamp(p.Rotation[1], -config.MaxPitch, config.MaxPitch)
}

// ApplyIntent adds delta to the intent while a key is held and removes it on release.
func (p *Player) ApplyIntent(delta mgl32.Vec3, pressed bool) {
	if pressed {
		p.Intent = p.Intent.Add(delta)
	} else {
		p.Intent = p.Intent.Sub(delta)
	}
}

// ClearIntent forgets every held key, for when input stops reaching the game.
func (p *Player) ClearIntent() {
	p.Intent = mgl32.Vec3{}
	p.SetSprinting(false)
}

func (p *Player) SetSprinting(sprinting bool) {
	if sprinting {
		p.TargetSpeed = config.SprintingSpeed
	} else {
		p.TargetSpeed = config.WalkingSpeed
	}
}

func (p *Player) ToggleFlying() {
	p.Flying = !p.Flying
}

func (p *Player) Teleport(position mgl32.Vec3) {
	p.Position = position
	p.previous = position
	p.Velocity = mgl32.Vec3{}
}

func (p *Player) jump() {
	if !p.Grounded {
		return
	}
	p.Velocity[1] = float32(math.Sqrt(-2 * gravity * float64(config.JumpHeight)))
}

// drag depends on whether the player is flying, standing, rising or falling.
func (p *Player) drag() mgl32.Vec3 {
	switch {
	case p.Flying:
		return dragFly
	case p.Grounded:
		return friction
	case p.Velocity[1] > 0:
		return dragJump
	}
	return dragFall
}

// Update advances the player by one tick of dt seconds against grid.
func (p *Player) Update(dt float32, grid physics.Grid) {
	p.previous = p.Position

	if !p.Flying && p.Intent[1] > 0 {
		p.jump()
	}

	p.speed += (p.TargetSpeed - p.speed) * dt * 20
	multiplier := p.speed
	if p.Flying {
		multiplier *= config.FlyingFactor
	}

	var accel mgl32.Vec3
	if p.Flying && p.Intent[1] != 0 {
		accel[1] = p.Intent[1] * multiplier
	}
	if p.Intent[0] != 0 || p.Intent[2] != 0 {
		angle := float64(p.Rotation[0]) - math.Atan2(float64(p.Intent[2]), float64(p.Intent[0])) + math.Pi/2
		accel[0] = float32(math.Cos(angle)) * multiplier
		accel[2] = float32(math.Sin(angle)) * multiplier
	}

	d := p.drag()
	for i := 0; i < 3; i++ {
		p.Velocity[i] += accel[i] * d[i] * dt
	}

	res := physics.Move(grid, p.Collider(), p.Velocity, dt)
	p.Position = p.Position.Add(res.Offset)
	p.Velocity = res.Velocity
	p.Grounded = res.Grounded

	if !p.Flying {
		p.Velocity[1] += gravity * dt
	}

	d = p.drag()
	for i := 0; i < 3; i++ {
		p.Velocity[i] -= towardZero(p.Velocity[i]*d[i]*dt, p.Velocity[i])
	}
}

// towardZero is whichever of a and b has the smaller magnitude, so drag can
// stop the player but never push them backwards.
func towardZero(a, b float32) float32 {
	if abs(a) < abs(b) {
		return a
	}
	return b
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// EyePosition is where the camera sits.
func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, config.EyeLevel, 0})
}

// Look is the unit vector the camera faces.
func (p *Player) Look() mgl32.Vec3 {
	return hit.Direction(p.Rotation)
}

// ViewMatrix places the camera between the last two ticks; alpha is the
// fraction of a tick elapsed since the last update.
func (p *Player) ViewMatrix(alpha float32) mgl32.Mat4 {
	feet := p.Position.Sub(p.previous).Mul(alpha).Add(p.previous)
	eye := feet.Add(mgl32.Vec3{0, config.EyeLevel, 0})
	return mgl32.LookAtV(eye, eye.Add(p.Look()), mgl32.Vec3{0, 1, 0})
}

func (p *Player) ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(width) / float32(max(height, 1))
	return mgl32.Perspective(mgl32.DegToRad(fieldOfView), aspect, nearPlane, farPlane)
}
