package game

import (
	"math"

	"chosenoffset.com/daruma/internal/config"
)

// ReferenceTPS is the tick rate the per-tick player speed was tuned for.
const ReferenceTPS = 60

// Player is the sprite walking toward the goal line.
type Player struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Pixels per tick at ReferenceTPS

	// Moving is recomputed by every Move
	Moving bool
	Caught bool

	fieldWidth, fieldHeight float64
	frameIndependent        bool
}

// NewPlayer places a player at the configured spawn point.
func NewPlayer(cfg config.PlayerConfig, fieldWidth, fieldHeight float64) *Player {
	return &Player{
		X:                cfg.SpawnX,
		Y:                cfg.SpawnY,
		Width:            cfg.Width,
		Height:           cfg.Height,
		Speed:            cfg.Speed,
		fieldWidth:       fieldWidth,
		fieldHeight:      fieldHeight,
		frameIndependent: cfg.FrameIndependent,
	}
}

// Move applies one tick of input. Each axis is handled independently so
// diagonals work; the position is clamped to the field and a key pushing
// against an edge does not count as movement.
func (p *Player) Move(in Input, dt float64) {
	step := p.Speed
	if p.frameIndependent {
		step = p.Speed * dt * ReferenceTPS
	}
	maxX := p.fieldWidth - p.Width
	maxY := p.fieldHeight - p.Height

	p.Moving = false
	if in.Up {
		p.Moving = shift(&p.Y, -step, maxY) || p.Moving
	}
	if in.Down {
		p.Moving = shift(&p.Y, step, maxY) || p.Moving
	}
	if in.Left {
		p.Moving = shift(&p.X, -step, maxX) || p.Moving
	}
	if in.Right {
		p.Moving = shift(&p.X, step, maxX) || p.Moving
	}
}

// shift moves *v by delta within [0, limit] and reports whether it changed.
func shift(v *float64, delta, limit float64) bool {
	next := math.Max(0, math.Min(limit, *v+delta))
	if next == *v {
		return false
	}
	*v = next
	return true
}

// CheckGoal reports whether the player's leading edge has reached goalX.
func (p *Player) CheckGoal(goalX float64) bool {
	return p.X+p.Width >= goalX
}
