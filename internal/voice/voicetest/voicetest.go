// Package voicetest provides helpers for voice backend tests.
package voicetest

import (
	"os"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV writes a silent 16-bit stereo PCM file with the given number of
// frames at rate Hz.
func WriteWAV(t testing.TB, path string, rate, frames int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create wav: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(frames), format); err != nil {
		t.Fatalf("failed to write wav: %v", err)
	}
}
