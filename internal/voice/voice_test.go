package voice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	clips  []Clip
	closed bool
}

func (s *stubProvider) Clips() []Clip { return s.clips }
func (s *stubProvider) Play(i int, speed float64) (Playback, error) {
	return nil, errors.New("not implemented")
}
func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func TestFirstAvailableSkipsFailuresAndEmptyPools(t *testing.T) {
	empty := &stubProvider{}
	full := &stubProvider{clips: []Clip{{Name: "voice_1", Duration: time.Second}}}

	got := FirstAvailable(nil,
		Loader{Name: "broken", Load: func() (ClipProvider, error) { return nil, errors.New("no device") }},
		Loader{Name: "empty", Load: func() (ClipProvider, error) { return empty, nil }},
		Loader{Name: "full", Load: func() (ClipProvider, error) { return full, nil }},
	)

	assert.Same(t, full, got)
	assert.True(t, empty.closed, "empty provider should be released")
}

func TestFirstAvailableFallsBackToSilent(t *testing.T) {
	got := FirstAvailable(nil,
		Loader{Name: "broken", Load: func() (ClipProvider, error) { return nil, ErrNoClips }},
	)

	assert.Equal(t, Silent{}, got)
	assert.Empty(t, got.Clips())

	_, err := got.Play(0, 1)
	assert.ErrorIs(t, err, ErrClipIndex)
}

func TestEffectiveDuration(t *testing.T) {
	c := Clip{Duration: 3 * time.Second}

	assert.Equal(t, 3*time.Second, EffectiveDuration(c, 1))
	assert.Equal(t, 2500*time.Millisecond, EffectiveDuration(c, 1.2))
	assert.Equal(t, 3750*time.Millisecond, EffectiveDuration(c, 0.8))
	assert.Equal(t, 3*time.Second, EffectiveDuration(c, 0))
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"voice_2.wav", "voice_1.WAV", "voice_3.mp3", "music.wav", ".voice_4.wav", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "voice_dir.wav"), 0o755))

	files, err := ScanDirectory(dir, []string{"voice_*.wav", "voice_*.mp3"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "voice_1.WAV"),
		filepath.Join(dir, "voice_2.wav"),
		filepath.Join(dir, "voice_3.mp3"),
	}, files)
}

func TestScanDirectoryNoMatches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "music.wav"), []byte("x"), 0o644))

	_, err := ScanDirectory(dir, []string{"voice_*.wav"})
	assert.ErrorIs(t, err, ErrNoClips)
}

func TestScanDirectoryMissing(t *testing.T) {
	_, err := ScanDirectory(filepath.Join(t.TempDir(), "missing"), []string{"*.wav"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClipName(t *testing.T) {
	assert.Equal(t, "voice_1", ClipName("/a/b/voice_1.wav"))
	assert.Equal(t, "voice", ClipName("voice"))
}
