package game

import "chosenoffset.com/daruma/internal/render"

// Input is the key state sampled once per tick.
type Input struct {
	Up, Down, Left, Right bool

	// Restart and Quit are edges: true only on the tick the key went down
	Restart bool
	Quit    bool
}

// ReadInput samples the arrow keys (or WASD), restart and quit.
func ReadInput(m render.InputManager) Input {
	return Input{
		Up:      m.IsKeyPressed(render.KeyUp) || m.IsKeyPressed(render.KeyW),
		Down:    m.IsKeyPressed(render.KeyDown) || m.IsKeyPressed(render.KeyS),
		Left:    m.IsKeyPressed(render.KeyLeft) || m.IsKeyPressed(render.KeyA),
		Right:   m.IsKeyPressed(render.KeyRight) || m.IsKeyPressed(render.KeyD),
		Restart: m.IsKeyJustPressed(render.KeyR),
		Quit:    m.IsKeyJustPressed(render.KeyEscape),
	}
}
