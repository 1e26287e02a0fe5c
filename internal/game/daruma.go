package game

import (
	"log/slog"
	"math/rand"

	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/voice"
)

// Facing is the Daruma's turn state.
type Facing int

const (
	// FacingAway means the Daruma's back is turned and moving is safe.
	FacingAway Facing = iota
	// FacingToward means the Daruma is watching.
	FacingToward
)

func (f Facing) String() string {
	switch f {
	case FacingAway:
		return "away"
	case FacingToward:
		return "toward"
	default:
		return "unknown"
	}
}

// Daruma is the figure that turns around at random intervals.
type Daruma struct {
	X, Y          float64
	Width, Height float64

	Facing         Facing
	TurnTimer      float64 // Seconds spent in the current phase
	AwayDuration   float64
	TowardDuration float64

	away, toward config.Range
	rng          *rand.Rand
	voice        *voiceSync // nil selects the timer-only policy
	logger       *slog.Logger
}

// NewDaruma creates a Daruma with its back turned. When provider is non-nil
// the AWAY phase follows the voice clips; otherwise it uses cfg.Away.
func NewDaruma(cfg config.DarumaConfig, rng *rand.Rand, provider voice.ClipProvider, voiceCfg config.VoiceConfig, clock Clock, logger *slog.Logger) *Daruma {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Daruma{
		X:      cfg.X,
		Y:      cfg.Y,
		Width:  cfg.Width,
		Height: cfg.Height,
		away:   cfg.Away,
		toward: cfg.Toward,
		rng:    rng,
		logger: logger,
	}
	if provider != nil {
		d.voice = newVoiceSync(provider, clock, voiceCfg, logger)
	}
	d.TowardDuration = uniform(rng, d.toward)
	d.enterAway()
	return d
}

// Update advances the turn timer by dt seconds and turns when the current
// phase is over.
func (d *Daruma) Update(dt float64) {
	d.TurnTimer += dt

	switch d.Facing {
	case FacingAway:
		if d.TurnTimer >= d.AwayDuration && d.voiceFinished() {
			d.enterToward()
		}
	case FacingToward:
		if d.TurnTimer >= d.TowardDuration {
			d.enterAway()
		}
	}
}

// Watching reports whether moving now gets the player caught.
func (d *Daruma) Watching() bool {
	return d.Facing == FacingToward
}

// Phrase is the chant line shown for the current phase.
func (d *Daruma) Phrase() Phrase {
	if d.Facing == FacingToward {
		return PhraseKoronda
	}
	return PhraseDarumaSanGa
}

// StopVoice silences any clip in flight.
func (d *Daruma) StopVoice() {
	if d.voice != nil {
		d.voice.stop()
	}
}

func (d *Daruma) enterAway() {
	d.Facing = FacingAway
	d.TurnTimer = 0

	if d.voice != nil {
		if duration, ok := d.voice.begin(d.rng); ok {
			d.AwayDuration = duration
			return
		}
	}
	d.AwayDuration = uniform(d.rng, d.away)
	d.logger.Debug("daruma turned away", "duration", d.AwayDuration)
}

func (d *Daruma) enterToward() {
	d.Facing = FacingToward
	d.TurnTimer = 0
	d.StopVoice()
	d.TowardDuration = uniform(d.rng, d.toward)
	d.logger.Debug("daruma turned toward", "duration", d.TowardDuration)
}

func (d *Daruma) voiceFinished() bool {
	return d.voice == nil || d.voice.finished()
}

// uniform draws from [r.Min, r.Max].
func uniform(rng *rand.Rand, r config.Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
