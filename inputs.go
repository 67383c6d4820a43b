package main

import (
	"MinecraftGolang/game"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// movementKeys add their vector to the player's intent while held.
var movementKeys = map[glfw.Key]mgl32.Vec3{
	glfw.KeyW:         {0, 0, 1},
	glfw.KeyS:         {0, 0, -1},
	glfw.KeyA:         {-1, 0, 0},
	glfw.KeyD:         {1, 0, 0},
	glfw.KeySpace:     {0, 1, 0},
	glfw.KeyLeftShift: {0, -1, 0},
}

// actionKeys fire once per press.
var actionKeys = map[glfw.Key]func(a *app){
	glfw.KeyF:      func(a *app) { a.session.Player.ToggleFlying() },
	glfw.KeyG:      func(a *app) { a.session.RandomHolding() },
	glfw.KeyR:      func(a *app) { a.session.RandomTeleport() },
	glfw.KeyO:      (*app).save,
	glfw.KeyF11:    (*app).toggleFullscreen,
	glfw.KeyEscape: (*app).releaseMouse,
}

var mouseButtons = map[glfw.MouseButton]game.Button{
	glfw.MouseButtonLeft:   game.ButtonLeft,
	glfw.MouseButtonRight:  game.ButtonRight,
	glfw.MouseButtonMiddle: game.ButtonMiddle,
}

func (a *app) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	pressed := action == glfw.Press
	// only fullscreen works before the mouse is captured
	if !a.captured && key != glfw.KeyF11 {
		return
	}

	if delta, ok := movementKeys[key]; ok {
		// a press seen before capture has no matching release here
		if a.held[key] == pressed {
			return
		}
		a.held[key] = pressed
		a.session.Player.ApplyIntent(delta, pressed)
		return
	}
	if key == glfw.KeyLeftControl {
		a.session.Player.SetSprinting(pressed)
		return
	}
	if fn, ok := actionKeys[key]; ok && pressed {
		fn(a)
	}
}

func (a *app) onMouseMove(_ *glfw.Window, x, y float64) {
	if !a.captured {
		return
	}
	if a.firstMouse {
		a.lastX, a.lastY = x, y
		a.firstMouse = false
	}
	dx := x - a.lastX
	// window y grows downwards
	dy := a.lastY - y
	a.lastX, a.lastY = x, y
	a.session.Player.Rotate(float32(dx), float32(dy))
}

func (a *app) onMouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if !a.captured {
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.captured = true
		a.firstMouse = true
		return
	}
	if b, ok := mouseButtons[button]; ok {
		a.session.Interact(b)
	}
}

func (a *app) releaseMouse() {
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	a.captured = false
	a.session.Player.ClearIntent()
	clear(a.held)
}

func (a *app) save() {
	if err := a.session.Save(); err != nil {
		a.logger.Error("save failed", zap.Error(err))
	}
}

func (a *app) toggleFullscreen() {
	if a.monitor == nil {
		a.monitor = glfw.GetPrimaryMonitor()
		mode := a.monitor.GetVideoMode()
		a.window.SetMonitor(a.monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	mode := a.monitor.GetVideoMode()
	a.monitor = nil
	width, height := a.settings.Window.Width, a.settings.Window.Height
	a.window.SetMonitor(nil, (mode.Width-width)/2, (mode.Height-height)/2, width, height, 0)
}
