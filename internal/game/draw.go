package game

import (
	"image/color"

	"chosenoffset.com/daruma/internal/render"
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorPlayer     = color.RGBA{0, 0, 255, 255}
	colorCaught     = color.RGBA{100, 100, 100, 255}
	colorDaruma     = color.RGBA{255, 0, 0, 255}
	colorGoal       = color.RGBA{0, 255, 0, 255}
	colorText       = color.RGBA{0, 0, 0, 255}
	colorEyes       = color.RGBA{0, 0, 0, 255}
	colorWin        = color.RGBA{0, 160, 0, 255}
	colorLose       = color.RGBA{255, 0, 0, 255}
)

// Draw renders the field, both figures and the round banner.
func (m *Manager) Draw(screen render.Image) {
	screen.Fill(colorBackground)

	c := m.Controller
	_, h := screen.Size()
	m.drawGoal(screen, c.GoalX, h)
	m.drawPlayer(screen, c.Player)
	m.drawDaruma(screen, c.Daruma)

	if c.GameOver {
		m.drawBanner(screen, c.Win)
	}
}

func (m *Manager) drawGoal(screen render.Image, goalX float64, height int) {
	x := float32(goalX)
	m.Renderer.StrokeLine(screen, x, 0, x, float32(height), 5, colorGoal)
}

func (m *Manager) drawPlayer(screen render.Image, p *Player) {
	clr := colorPlayer
	if p.Caught {
		clr = colorCaught
	}
	m.Renderer.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), clr)
}

func (m *Manager) drawDaruma(screen render.Image, d *Daruma) {
	x, y := float32(d.X), float32(d.Y)
	m.Renderer.FillRect(screen, x, y, float32(d.Width), float32(d.Height), colorDaruma)

	// Eyes only show when it is looking at the player
	if d.Watching() {
		m.Renderer.FillCircle(screen, x+10, y+30, 5, colorEyes)
		m.Renderer.FillCircle(screen, x+40, y+30, 5, colorEyes)
	}

	phrase := d.Phrase().Text(m.Renderer.Localized())
	m.Renderer.DrawText(screen, phrase, d.X-150, d.Y-50, colorText)
}

func (m *Manager) drawBanner(screen render.Image, win bool) {
	localized := m.Renderer.Localized()
	banner, clr := BannerLose, colorLose
	if win {
		banner, clr = BannerWin, colorWin
	}

	w, h := screen.Size()
	cx, cy := float64(w)/2, float64(h)/2

	msg := banner.Text(localized)
	mw, _ := m.Renderer.MeasureText(msg)
	m.Renderer.DrawText(screen, msg, cx-mw/2, cy, clr)

	hint := BannerRestart.Text(localized)
	hw, _ := m.Renderer.MeasureText(hint)
	m.Renderer.DrawText(screen, hint, cx-hw/2, cy+50, colorText)
}
