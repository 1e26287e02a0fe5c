// Package ebitenvoice plays voice clips through Ebiten's audio context.
package ebitenvoice

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"chosenoffset.com/daruma/internal/voice"
)

const (
	sampleRate = 44100

	// Decoded streams are 16-bit little-endian stereo.
	bytesPerFrame = 4
)

// Provider keeps every clip decoded in memory so playback never touches disk.
type Provider struct {
	ctx    *audio.Context
	volume float64
	logger *slog.Logger

	clips []voice.Clip
	pcm   [][]byte
	rates []int

	active []*playback
}

type decodedStream interface {
	io.Reader
	SampleRate() int
}

// Load decodes every clip in dir matching patterns. Files that fail to decode
// are skipped with a warning; an empty result is reported as voice.ErrNoClips.
func Load(dir string, patterns []string, volume float64, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	files, err := voice.ScanDirectory(dir, patterns)
	if err != nil {
		return nil, err
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}

	p := &Provider{
		ctx:    ctx,
		volume: volume,
		logger: logger,
	}
	for _, path := range files {
		pcm, rate, err := decodeFile(path)
		if err != nil {
			logger.Warn("skipping voice clip", "path", path, "error", err)
			continue
		}
		p.clips = append(p.clips, voice.Clip{
			Name:     voice.ClipName(path),
			Duration: pcmDuration(len(pcm), rate),
		})
		p.pcm = append(p.pcm, pcm)
		p.rates = append(p.rates, rate)
	}

	if len(p.clips) == 0 {
		return nil, fmt.Errorf("%w: none of %d files decoded", voice.ErrNoClips, len(files))
	}
	return p, nil
}

func decodeFile(path string) ([]byte, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read clip: %w", err)
	}

	var stream decodedStream
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err = wav.DecodeWithoutResampling(bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithoutResampling(bytes.NewReader(data))
	default:
		return nil, 0, fmt.Errorf("%w: %s", voice.ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode clip: %w", err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode clip: %w", err)
	}
	return pcm, stream.SampleRate(), nil
}

func pcmDuration(n, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	frames := n / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

// Clips implements voice.ClipProvider.
func (p *Provider) Clips() []voice.Clip {
	return p.clips
}

// Play implements voice.ClipProvider. The speed multiplier is applied by
// resampling: the clip is read as if recorded at rate*speed.
func (p *Provider) Play(i int, speed float64) (voice.Playback, error) {
	if i < 0 || i >= len(p.clips) {
		return nil, fmt.Errorf("%w: %d", voice.ErrClipIndex, i)
	}
	if speed <= 0 {
		speed = 1
	}

	pcm := p.pcm[i]
	from := int(float64(p.rates[i]) * speed)
	src := audio.Resample(bytes.NewReader(pcm), int64(len(pcm)), from, p.ctx.SampleRate())

	player, err := p.ctx.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create player for %s: %w", p.clips[i].Name, err)
	}
	player.SetVolume(p.volume)
	player.Play()

	pb := &playback{player: player}
	p.track(pb)
	return pb, nil
}

// track remembers pb for Close and forgets finished players.
func (p *Provider) track(pb *playback) {
	live := p.active[:0]
	for _, a := range p.active {
		if a.IsPlaying() {
			live = append(live, a)
		} else {
			a.Stop()
		}
	}
	p.active = append(live, pb)
}

// Close implements voice.ClipProvider.
func (p *Provider) Close() error {
	for _, a := range p.active {
		a.Stop()
	}
	p.active = nil
	return nil
}

type playback struct {
	player  *audio.Player
	stopped bool
}

func (pb *playback) IsPlaying() bool {
	return !pb.stopped && pb.player.IsPlaying()
}

func (pb *playback) Stop() {
	if pb.stopped {
		return
	}
	pb.stopped = true
	pb.player.Pause()
	if err := pb.player.Close(); err != nil {
		slog.Debug("closing voice player", "error", err)
	}
}
