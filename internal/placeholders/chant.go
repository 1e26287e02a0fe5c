// Package placeholders synthesizes stand-in voice clips so the voice-synced
// Daruma can be tried without recorded audio.
package placeholders

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// SampleRate of generated clips.
const SampleRate = beep.SampleRate(44100)

type syllable struct {
	text string
	freq float64
}

// Da-ru-ma-sa-n-ga ko-ro-n-da, pitched roughly like the playground chant
var chant = []syllable{
	{"da", 392.00},
	{"ru", 440.00},
	{"ma", 392.00},
	{"sa", 329.63},
	{"n", 329.63},
	{"ga", 392.00},
	{"ko", 440.00},
	{"ro", 523.25},
	{"n", 523.25},
	{"da", 440.00},
}

// Beats used for successive clips: steady, hurried, drawn out.
var Beats = []time.Duration{
	250 * time.Millisecond,
	160 * time.Millisecond,
	340 * time.Millisecond,
}

// pause between "ga" and "ko" in beats
const pauseBeats = 2

// Chant returns one rendition of the chant at the given beat.
func Chant(beat time.Duration) (beep.Streamer, error) {
	n := SampleRate.N(beat)
	parts := make([]beep.Streamer, 0, len(chant)+1)
	for i, s := range chant {
		tone, err := generators.SineTone(SampleRate, s.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %q: %w", s.text, err)
		}
		parts = append(parts, newShape(beep.Take(n, tone), n, n/8))
		if i == 5 {
			parts = append(parts, beep.Silence(pauseBeats*n))
		}
	}
	return beep.Seq(parts...), nil
}

// ChantLen is the number of samples Chant produces for beat.
func ChantLen(beat time.Duration) int {
	return (len(chant) + pauseBeats) * SampleRate.N(beat)
}

// WriteChant encodes one clip to path as 16-bit stereo WAV.
func WriteChant(path string, beat time.Duration) error {
	s, err := Chant(beat)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, s, format); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// GenerateAndSave writes count clips named voice_N.wav into dir, cycling
// through Beats. It returns the written paths.
func GenerateAndSave(dir string, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("voice_%d.wav", i+1))
		if err := WriteChant(path, Beats[i%len(Beats)]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// shape ramps a syllable in and out to avoid clicks and lowers its level.
type shape struct {
	streamer beep.Streamer
	pos      int
	total    int
	ramp     int
}

const gain = 0.4

func newShape(s beep.Streamer, total, ramp int) beep.Streamer {
	return &shape{streamer: s, total: total, ramp: ramp}
}

func (s *shape) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := gain
		switch {
		case s.ramp > 0 && s.pos < s.ramp:
			vol *= float64(s.pos) / float64(s.ramp)
		case s.ramp > 0 && s.total-s.pos < s.ramp:
			vol *= float64(s.total-s.pos) / float64(s.ramp)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		s.pos++
	}
	return n, ok
}

func (s *shape) Err() error { return s.streamer.Err() }
