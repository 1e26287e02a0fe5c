package game

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/voice"
)

const tick = 1.0 / 60.0

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// manualClock advances only when told to.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakePlayback stays busy until stopped or marked idle.
type fakePlayback struct {
	busy    bool
	stopped bool
}

func (p *fakePlayback) IsPlaying() bool { return p.busy && !p.stopped }
func (p *fakePlayback) Stop()           { p.stopped = true }

// fakeProvider records every Play call.
type fakeProvider struct {
	clips   []voice.Clip
	playErr error
	plays   []*fakePlayback
	speeds  []float64
}

func (f *fakeProvider) Clips() []voice.Clip { return f.clips }

func (f *fakeProvider) Play(i int, speed float64) (voice.Playback, error) {
	if f.playErr != nil {
		return nil, f.playErr
	}
	pb := &fakePlayback{busy: true}
	f.plays = append(f.plays, pb)
	f.speeds = append(f.speeds, speed)
	return pb, nil
}

func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) last() *fakePlayback {
	if len(f.plays) == 0 {
		return nil
	}
	return f.plays[len(f.plays)-1]
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Voice.Enabled = false
	return cfg
}

func newTestController(cfg *config.Config, provider voice.ClipProvider, clock Clock) *Controller {
	if clock == nil {
		clock = newManualClock()
	}
	return NewController(cfg, provider,
		WithRand(rand.New(rand.NewSource(1))),
		WithClock(clock),
		WithLogger(quietLogger))
}
