package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"MinecraftGolang/blocks"
	"MinecraftGolang/config"
	"MinecraftGolang/game"
	"MinecraftGolang/logging"
	"MinecraftGolang/player"
	"MinecraftGolang/render"
	"MinecraftGolang/save"
	"MinecraftGolang/terrain"
	"MinecraftGolang/textures"
	"MinecraftGolang/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// app is the window and everything the input callbacks reach for.
type app struct {
	settings config.Settings
	logger   *zap.Logger
	window   *glfw.Window
	monitor  *glfw.Monitor
	session  *game.Session

	width, height int

	captured     bool
	held         map[glfw.Key]bool
	firstMouse   bool
	lastX, lastY float64
}

func main() {
	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(settings.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(settings, logger); err != nil {
		logger.Fatal("game stopped", zap.Error(err))
	}
}

func newGenerator(s config.WorldSettings, seed int64) world.Generator {
	if s.Superflat {
		return terrain.NewFlat(s.FlatHeight)
	}
	return terrain.New(seed)
}

// newSession builds the world, restores the save if there is one and places
// the player on the surface at the origin.
func newSession(s config.Settings, reg *blocks.Registry, logger *zap.Logger) (*game.Session, *save.Store, error) {
	backend, err := save.Open(s.Save)
	if err != nil {
		return nil, nil, err
	}
	store, err := save.New(backend, s.World.Seed, logger)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	// an existing save decides the seed
	w := world.New(reg, newGenerator(s.World, store.Seed()), logger)
	session := game.NewSession(w, player.New(mgl32.Vec3{}), store, store.Seed(), logger)
	if err := session.Load(); err != nil {
		store.Close()
		return nil, nil, err
	}

	start := time.Now()
	if err := w.Pregenerate(context.Background(), world.ChunkPos{}, s.World.Pregenerate, s.World.Workers); err != nil {
		store.Close()
		return nil, nil, err
	}
	logger.Info("world ready", zap.Int("chunks", w.Len()), zap.Duration("took", time.Since(start)))

	session.Player.Teleport(game.Spawn(w, 0, 0))
	return session, store, nil
}

func run(s config.Settings, logger *zap.Logger) error {
	reg := blocks.Default()
	session, store, err := newSession(s, reg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close save", zap.Error(err))
		}
	}()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(s.Window.Width, s.Window.Height, s.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if s.Window.Vsync {
		glfw.SwapInterval(1)
	}

	a := &app{
		settings: s,
		logger:   logger,
		window:   window,
		session:  session,
		held:     make(map[glfw.Key]bool),
	}
	a.width, a.height = window.GetFramebufferSize()
	if s.Window.Fullscreen {
		a.toggleFullscreen()
	}

	if err := render.Init(); err != nil {
		return err
	}
	program, err := render.NewBlockProgram()
	if err != nil {
		return err
	}
	defer program.Delete()

	images, err := textures.Load(s.Assets.Textures, reg.Textures(), s.Assets.TextureSize, logger)
	if err != nil {
		return err
	}
	atlas, err := render.NewTextureArray(images)
	if err != nil {
		return err
	}
	defer atlas.Delete()

	chunks := render.NewChunkRenderer(program)
	defer chunks.Delete()

	window.SetFramebufferSizeCallback(a.onResize)
	window.SetKeyCallback(a.onKey)
	window.SetCursorPosCallback(a.onMouseMove)
	window.SetMouseButtonCallback(a.onMouseButton)

	return a.loop(program, atlas, chunks)
}

func (a *app) onResize(_ *glfw.Window, width, height int) {
	a.width, a.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// loop steps the simulation at a fixed rate and draws as often as it can,
// interpolating the camera between the last two ticks.
func (a *app) loop(program *render.Program, atlas *render.TextureArray, chunks *render.ChunkRenderer) error {
	var (
		clock    game.Clock
		previous = time.Now()
		frames   int
		fpsStart = previous
	)
	for !a.window.ShouldClose() {
		now := time.Now()
		ticks, alpha := clock.Advance(float32(now.Sub(previous).Seconds()))
		previous = now

		glfw.PollEvents()

		for i := 0; i < ticks; i++ {
			a.session.Update(config.TickRate)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		p := a.session.Player
		chunks.Begin(p.ViewMatrix(alpha), p.ProjectionMatrix(a.width, a.height))
		atlas.Bind(program)
		if err := a.session.Draw(chunks); err != nil {
			return err
		}
		a.window.SwapBuffers()

		frames++
		if elapsed := now.Sub(fpsStart); elapsed >= time.Second {
			fps := float64(frames) / elapsed.Seconds()
			a.window.SetTitle(a.settings.Window.Title + " | FPS: " + strconv.FormatFloat(mgl64.Round(fps, 1), 'f', -1, 64))
			frames = 0
			fpsStart = now
		}
	}
	return nil
}
