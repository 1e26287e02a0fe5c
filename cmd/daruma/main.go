package main

import (
	"log/slog"
	"os"
	"strings"

	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/game"
	ebitenrender "chosenoffset.com/daruma/internal/render/ebiten"
	"chosenoffset.com/daruma/internal/voice"
	"chosenoffset.com/daruma/internal/voice/beepvoice"
	"chosenoffset.com/daruma/internal/voice/ebitenvoice"
)

func main() {
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	font, err := ebitenrender.LoadFont(slog.Default(), ebitenrender.FontChain(cfg.Fonts.Candidates)...)
	if err != nil {
		slog.Error("failed to load any font", "error", err)
		os.Exit(1)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer(font, cfg.Fonts.Size)
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	var provider voice.ClipProvider = voice.Silent{}
	if cfg.Voice.Enabled {
		provider = voice.FirstAvailable(slog.Default(), voiceLoaders(cfg)...)
	}
	defer func() {
		if err := provider.Close(); err != nil {
			slog.Warn("failed to close audio", "error", err)
		}
	}()

	clock := game.SystemClock{}
	ctrl := game.NewController(cfg, provider, game.WithClock(clock))
	manager := game.NewManager(cfg, ctrl, renderer, inputMgr, clock)

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.Window.TPS)

	slog.Info("starting game", "voice_clips", len(provider.Clips()), "localized_font", font.Localized)
	if err := engine.RunGame(manager); err != nil {
		slog.Error("game loop failed", "error", err)
		ctrl.Daruma.StopVoice()
		provider.Close()
		os.Exit(1)
	}
	ctrl.Daruma.StopVoice()
	slog.Info("window closed")
}

// voiceLoaders orders the configured backend first and the other as fallback.
func voiceLoaders(cfg *config.Config) []voice.Loader {
	v := cfg.Voice
	ebitenLoader := voice.Loader{
		Name: config.BackendEbiten,
		Load: func() (voice.ClipProvider, error) {
			return ebitenvoice.Load(v.Dir, v.Patterns, v.Volume, slog.Default())
		},
	}
	beepLoader := voice.Loader{
		Name: config.BackendBeep,
		Load: func() (voice.ClipProvider, error) {
			return beepvoice.Load(v.Dir, v.Patterns, v.Volume, slog.Default())
		},
	}

	if strings.EqualFold(v.Backend, config.BackendBeep) {
		return []voice.Loader{beepLoader, ebitenLoader}
	}
	return []voice.Loader{ebitenLoader, beepLoader}
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.Log.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.Log.Format {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
