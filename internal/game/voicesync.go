package game

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/voice"
)

// voiceSync ties the AWAY phase to a spoken clip so the Daruma turns just as
// the chant ends.
type voiceSync struct {
	provider voice.ClipProvider
	clock    Clock
	cfg      config.VoiceConfig
	logger   *slog.Logger

	clip      int
	speed     float64
	effective time.Duration
	startedAt time.Time
	playing   bool
	playback  voice.Playback
}

func newVoiceSync(provider voice.ClipProvider, clock Clock, cfg config.VoiceConfig, logger *slog.Logger) *voiceSync {
	return &voiceSync{
		provider: provider,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
		clip:     -1,
	}
}

// begin picks a clip and speed, starts playback and returns the AWAY duration
// in seconds. ok is false when the pool is empty and the caller should use
// its plain timer.
func (v *voiceSync) begin(rng *rand.Rand) (awayDuration float64, ok bool) {
	v.stop()

	clips := v.provider.Clips()
	if len(clips) == 0 {
		return 0, false
	}

	v.clip = rng.Intn(len(clips))
	v.speed = uniform(rng, config.Range{Min: v.cfg.SpeedMin, Max: v.cfg.SpeedMax})
	v.effective = voice.EffectiveDuration(clips[v.clip], v.speed)
	v.startedAt = v.clock.Now()

	pb, err := v.provider.Play(v.clip, v.speed)
	if err != nil {
		v.logger.Warn("voice playback failed", "clip", clips[v.clip].Name, "error", err)
	} else {
		v.playback = pb
		v.playing = true
	}

	awayDuration = math.Max(v.cfg.MinAway, v.effective.Seconds()-v.cfg.LeadTime)
	v.logger.Debug("voice started",
		"clip", clips[v.clip].Name,
		"speed", v.speed,
		"effective", v.effective,
		"away", awayDuration)
	return awayDuration, true
}

// finished is true once any of: nothing was started, the output channel went
// idle, or the effective clip length has elapsed on the wall clock. The
// deadline alone is enough, so a backend that never reports idle cannot
// stall the Daruma.
func (v *voiceSync) finished() bool {
	if !v.playing {
		return true
	}
	if v.playback == nil || !v.playback.IsPlaying() {
		return true
	}
	return v.clock.Now().Sub(v.startedAt) >= v.effective
}

// stop halts any clip in flight.
func (v *voiceSync) stop() {
	if v.playback != nil {
		v.playback.Stop()
	}
	v.playback = nil
	v.playing = false
}
