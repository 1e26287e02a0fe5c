// Package voice loads the pool of spoken "Daruma-san ga koronda" clips and
// plays them back at a chosen speed. Backends live in sub-packages; the game
// only sees the ClipProvider interface.
package voice

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrNoClips is returned by a loader that found no usable clip files.
	ErrNoClips = errors.New("voice: no clips found")

	// ErrUnsupportedFormat is returned for files no decoder accepts.
	ErrUnsupportedFormat = errors.New("voice: unsupported audio format")

	// ErrClipIndex is returned by Play for an index outside the pool.
	ErrClipIndex = errors.New("voice: clip index out of range")
)

// Clip describes one entry of the pool.
type Clip struct {
	Name     string
	Duration time.Duration // Length at normal speed
}

// Playback is a single in-flight play of a clip.
type Playback interface {
	// IsPlaying reports whether the output channel is still busy with this clip.
	IsPlaying() bool
	// Stop halts playback. Calling Stop more than once is safe.
	Stop()
}

// ClipProvider exposes a fixed pool of clips.
type ClipProvider interface {
	Clips() []Clip
	// Play starts clip i at the given speed multiplier and returns immediately.
	Play(i int, speed float64) (Playback, error)
	// Close stops everything and releases the audio device.
	Close() error
}

// Loader attempts to build a provider.
type Loader struct {
	Name string
	Load func() (ClipProvider, error)
}

// FirstAvailable tries each loader in order and returns the first provider
// with a non-empty pool. Failures are logged; if every loader fails the
// silent provider is returned, which makes the Daruma fall back to plain
// timers.
func FirstAvailable(logger *slog.Logger, loaders ...Loader) ClipProvider {
	if logger == nil {
		logger = slog.Default()
	}
	for _, l := range loaders {
		p, err := l.Load()
		if err == nil && p != nil && len(p.Clips()) == 0 {
			p.Close()
			err = ErrNoClips
		}
		if err != nil {
			logger.Warn("voice loader unavailable", "loader", l.Name, "error", err)
			continue
		}
		logger.Info("voice clips loaded", "loader", l.Name, "clips", len(p.Clips()))
		return p
	}
	logger.Warn("no voice clips available, using timer-only turns")
	return Silent{}
}

// Silent is a provider with an empty pool.
type Silent struct{}

// Clips implements ClipProvider.
func (Silent) Clips() []Clip { return nil }

// Play implements ClipProvider.
func (Silent) Play(i int, speed float64) (Playback, error) {
	return nil, fmt.Errorf("%w: %d", ErrClipIndex, i)
}

// Close implements ClipProvider.
func (Silent) Close() error { return nil }

// EffectiveDuration is the wall time a clip takes at the given speed.
func EffectiveDuration(c Clip, speed float64) time.Duration {
	if speed <= 0 {
		return c.Duration
	}
	return time.Duration(float64(c.Duration) / speed)
}
