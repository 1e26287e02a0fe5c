// Package beepvoice plays voice clips through the beep speaker.
package beepvoice

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"chosenoffset.com/daruma/internal/voice"
)

const (
	speakerRate = beep.SampleRate(44100)

	// resampleQuality trades CPU for fidelity when applying the speed multiplier
	resampleQuality = 4
)

var errSpeakerClosed = errors.New("beepvoice: speaker closed")

// Provider holds decoded clips in beep buffers and mixes them on the speaker.
type Provider struct {
	volume float64
	logger *slog.Logger

	clips   []voice.Clip
	buffers []*beep.Buffer

	initialized bool
}

// Load decodes every clip in dir matching patterns and initializes the
// speaker. Files that fail to decode are skipped with a warning.
func Load(dir string, patterns []string, volume float64, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	files, err := voice.ScanDirectory(dir, patterns)
	if err != nil {
		return nil, err
	}

	p := &Provider{volume: volume, logger: logger}
	for _, path := range files {
		buf, err := decodeFile(path)
		if err != nil {
			logger.Warn("skipping voice clip", "path", path, "error", err)
			continue
		}
		p.clips = append(p.clips, voice.Clip{
			Name:     voice.ClipName(path),
			Duration: buf.Format().SampleRate.D(buf.Len()),
		})
		p.buffers = append(p.buffers, buf)
	}
	if len(p.clips) == 0 {
		return nil, fmt.Errorf("%w: none of %d files decoded", voice.ErrNoClips, len(files))
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(speakerRate, speakerRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.initialized = true
	return p, nil
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clip: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", voice.ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode clip: %w", err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode clip: %w", err)
	}
	return buf, nil
}

// Clips implements voice.ClipProvider.
func (p *Provider) Clips() []voice.Clip {
	return p.clips
}

// Play implements voice.ClipProvider.
func (p *Provider) Play(i int, speed float64) (voice.Playback, error) {
	if i < 0 || i >= len(p.buffers) {
		return nil, fmt.Errorf("%w: %d", voice.ErrClipIndex, i)
	}
	if !p.initialized {
		return nil, errSpeakerClosed
	}
	if speed <= 0 {
		speed = 1
	}

	buf := p.buffers[i]
	ratio := speed * float64(buf.Format().SampleRate) / float64(speakerRate)
	resampled := beep.ResampleRatio(resampleQuality, ratio, buf.Streamer(0, buf.Len()))

	pb := &playback{}
	pb.playing.Store(true)
	pb.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(resampled, beep.Callback(func() {
			pb.playing.Store(false)
		})),
	}

	speaker.Play(withVolume(pb.ctrl, p.volume))
	return pb, nil
}

// withVolume maps a linear 0..1 volume onto beep's logarithmic control.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume == 1 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-3)),
		Silent:   volume <= 0,
	}
}

// Close implements voice.ClipProvider.
func (p *Provider) Close() error {
	if !p.initialized {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
	return nil
}

type playback struct {
	ctrl    *beep.Ctrl
	playing atomic.Bool
}

func (pb *playback) IsPlaying() bool {
	return pb.playing.Load()
}

func (pb *playback) Stop() {
	speaker.Lock()
	pb.ctrl.Paused = true
	// a nil streamer makes the mixer drop the Ctrl
	pb.ctrl.Streamer = nil
	speaker.Unlock()
	pb.playing.Store(false)
}
