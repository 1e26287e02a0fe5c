// Package config provides the tunable rules and asset locations for a game of
// Daruma-san ga koronda. Values are loaded from an optional JSON file layered
// over defaults, then overridden from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all settings for a game instance
type Config struct {
	Window WindowConfig `json:"window"`
	Player PlayerConfig `json:"player"`
	Daruma DarumaConfig `json:"daruma"`
	Voice  VoiceConfig  `json:"voice"`
	Fonts  FontConfig   `json:"fonts"`
	Log    LogConfig    `json:"log"`

	// GoalX is the x-coordinate of the goal line
	GoalX float64 `json:"goal_x"`

	// Seed fixes the random source when non-zero
	Seed int64 `json:"seed"`
}

// WindowConfig defines the playing field and window
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	TPS    int    `json:"tps"` // Target ticks per second
}

// PlayerConfig defines the player sprite
type PlayerConfig struct {
	SpawnX float64 `json:"spawn_x"`
	SpawnY float64 `json:"spawn_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"` // Pixels per tick

	// FrameIndependent scales the step by elapsed time instead of moving a
	// fixed distance per tick
	FrameIndependent bool `json:"frame_independent"`
}

// DarumaConfig defines the Daruma figure and its phase timers
type DarumaConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Away   Range `json:"away"`   // Seconds with back turned (timer-only policy)
	Toward Range `json:"toward"` // Seconds spent watching
}

// VoiceConfig defines voice-synchronized timing and clip discovery
type VoiceConfig struct {
	Enabled  bool     `json:"enabled"`
	Backend  string   `json:"backend"` // "ebiten" or "beep"
	Dir      string   `json:"dir"`
	Patterns []string `json:"patterns"` // Glob patterns matched against file names
	Volume   float64  `json:"volume"`

	SpeedMin float64 `json:"speed_min"`
	SpeedMax float64 `json:"speed_max"`
	MinAway  float64 `json:"min_away"`  // Floor for the AWAY phase in seconds
	LeadTime float64 `json:"lead_time"` // Turn this many seconds before the clip ends
}

// FontConfig lists font files tried in order before the embedded fallback
type FontConfig struct {
	Candidates []string `json:"candidates"`
	Size       float64  `json:"size"`
}

// LogConfig selects slog level and output format
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text, json
}

// Range is a closed interval of seconds
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Backends accepted by VoiceConfig.Backend
const (
	BackendEbiten = "ebiten"
	BackendBeep   = "beep"
)

// DefaultPath is used when DARUMA_CONFIG is not set
const DefaultPath = "daruma.json"

// DefaultConfig returns the classic rules: an 800x600 field, the player on the
// left and the Daruma watching from the right.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "だるまさんが転んだ",
			TPS:    60,
		},
		Player: PlayerConfig{
			SpawnX: 50,
			SpawnY: 300,
			Width:  30,
			Height: 50,
			Speed:  5,
		},
		Daruma: DarumaConfig{
			X:      700,
			Y:      225,
			Width:  50,
			Height: 150,
			Away:   Range{Min: 2.0, Max: 5.0},
			Toward: Range{Min: 1.0, Max: 3.0},
		},
		Voice: VoiceConfig{
			Enabled:  true,
			Backend:  BackendEbiten,
			Dir:      "assets/voice",
			Patterns: []string{"voice_*.wav", "voice_*.mp3"},
			Volume:   1.0,
			SpeedMin: 0.8,
			SpeedMax: 1.2,
			MinAway:  0.5,
			LeadTime: 0.1,
		},
		Fonts: FontConfig{
			Candidates: []string{
				"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
				"/System/Library/Fonts/Hiragino Sans GB.ttc",
				"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
				"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
				"C:\\Windows\\Fonts\\meiryo.ttc",
				"C:\\Windows\\Fonts\\YuGothM.ttc",
			},
			Size: 28,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		GoalX: 650,
	}
}

// Load reads a JSON config from path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PathFromEnv returns the config path named by DARUMA_CONFIG or DefaultPath.
func PathFromEnv() string {
	return getEnv(os.Getenv, "DARUMA_CONFIG", DefaultPath)
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Log.Level = getEnv(getenv, "DARUMA_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv(getenv, "DARUMA_LOG_FORMAT", c.Log.Format)
	c.Voice.Dir = getEnv(getenv, "DARUMA_VOICE_DIR", c.Voice.Dir)
	c.Voice.Backend = getEnv(getenv, "DARUMA_VOICE_BACKEND", c.Voice.Backend)
	c.Voice.Enabled = getEnvBool(getenv, "DARUMA_VOICE_ENABLED", c.Voice.Enabled)
	c.Seed = getEnvInt64(getenv, "DARUMA_SEED", c.Seed)
}

// Validate checks that sizes are positive and every range is well-formed.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps must be positive, got %d", c.Window.TPS))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.Speed <= 0 {
		errs = append(errs, errors.New("player width, height and speed must be positive"))
	}
	if c.Player.Width > float64(c.Window.Width) || c.Player.Height > float64(c.Window.Height) {
		errs = append(errs, errors.New("player does not fit in the window"))
	}
	errs = append(errs, validateRange("daruma.away", c.Daruma.Away))
	errs = append(errs, validateRange("daruma.toward", c.Daruma.Toward))

	if c.Voice.SpeedMin <= 0 || c.Voice.SpeedMin > c.Voice.SpeedMax {
		errs = append(errs, fmt.Errorf("voice speed range invalid: [%g, %g]", c.Voice.SpeedMin, c.Voice.SpeedMax))
	}
	if c.Voice.MinAway < 0 || c.Voice.LeadTime < 0 {
		errs = append(errs, errors.New("voice min_away and lead_time must not be negative"))
	}
	switch strings.ToLower(c.Voice.Backend) {
	case BackendEbiten, BackendBeep:
	default:
		errs = append(errs, fmt.Errorf("unknown voice backend %q", c.Voice.Backend))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validateRange(name string, r Range) error {
	if r.Min < 0 || r.Min > r.Max {
		return fmt.Errorf("%s range invalid: [%g, %g]", name, r.Min, r.Max)
	}
	return nil
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(getenv func(string) string, key string, fallback bool) bool {
	if v := getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt64(getenv func(string) string, key string, fallback int64) int64 {
	if v := getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}
