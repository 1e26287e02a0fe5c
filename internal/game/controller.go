package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/voice"
)

// Controller owns one round: the player, the Daruma and the outcome.
type Controller struct {
	Player *Player
	Daruma *Daruma
	GoalX  float64

	GameOver bool
	Win      bool

	// RoundID tags log lines belonging to the current round
	RoundID uuid.UUID

	cfg      *config.Config
	provider voice.ClipProvider
	rng      *rand.Rand
	clock    Clock
	logger   *slog.Logger
}

// Option customizes a Controller.
type Option func(*Controller)

// WithRand sets the random source used for phase durations.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithClock sets the wall clock used for voice deadlines.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController starts a round. provider may be nil, in which case (or when
// voice is disabled in cfg) the Daruma runs on plain timers.
func NewController(cfg *config.Config, provider voice.ClipProvider, opts ...Option) *Controller {
	c := &Controller{
		GoalX:    cfg.GoalX,
		cfg:      cfg,
		provider: provider,
		clock:    SystemClock{},
		logger:   slog.Default(),
	}
	if !cfg.Voice.Enabled {
		c.provider = nil
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.rng = rand.New(rand.NewSource(seed))
	}
	c.newRound()
	return c
}

// Tick runs one frame of game logic. While the round is over only the
// restart key is honoured.
func (c *Controller) Tick(in Input, dt float64) {
	if c.GameOver {
		if in.Restart {
			c.Reset()
		}
		return
	}

	c.Player.Move(in, dt)
	c.Daruma.Update(dt)

	// Caught is checked first so reaching the goal while seen is a loss
	c.CheckCaught()
	c.CheckWin()
}

// CheckCaught ends the round if the player moved while watched.
func (c *Controller) CheckCaught() bool {
	if c.GameOver {
		return false
	}
	if !c.Daruma.Watching() || !c.Player.Moving {
		return false
	}

	c.GameOver = true
	c.Player.Caught = true
	c.Daruma.StopVoice()
	c.logger.Info("player caught moving",
		"round_id", c.RoundID,
		"x", c.Player.X,
		"y", c.Player.Y)
	return true
}

// CheckWin ends the round if the player reached the goal line.
func (c *Controller) CheckWin() bool {
	if c.GameOver {
		return false
	}
	if !c.Player.CheckGoal(c.GoalX) {
		return false
	}

	c.Win = true
	c.GameOver = true
	c.Daruma.StopVoice()
	c.logger.Info("player reached the goal", "round_id", c.RoundID)
	return true
}

// Reset silences the voice and starts a fresh round.
func (c *Controller) Reset() {
	if c.Daruma != nil {
		c.Daruma.StopVoice()
	}
	c.newRound()
}

func (c *Controller) newRound() {
	c.GameOver = false
	c.Win = false
	c.RoundID = uuid.New()
	c.logger.Info("round started", "round_id", c.RoundID)

	c.Player = NewPlayer(c.cfg.Player, float64(c.cfg.Window.Width), float64(c.cfg.Window.Height))
	c.Daruma = NewDaruma(c.cfg.Daruma, c.rng, c.provider, c.cfg.Voice, c.clock, c.logger.With("round_id", c.RoundID))
}
