package game

import (
	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/render"
)

// Manager adapts a Controller to the engine's frame loop.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Controller   *Controller
	Renderer     render.Renderer
	InputMgr     render.InputManager

	frames *FrameClock
}

// NewManager creates a new game manager.
func NewManager(cfg *config.Config, ctrl *Controller, r render.Renderer, input render.InputManager, clock Clock) *Manager {
	return &Manager{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Controller:   ctrl,
		Renderer:     r,
		InputMgr:     input,
		frames:       NewFrameClock(clock),
	}
}

// Update samples input and real elapsed time, then advances the round.
// Escape ends the game with render.ErrQuit.
func (m *Manager) Update() error {
	dt := m.frames.Tick()
	in := ReadInput(m.InputMgr)
	if in.Quit {
		return render.ErrQuit
	}
	m.Controller.Tick(in, dt)
	return nil
}

// Layout keeps the logical screen at the field size; the engine scales it.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
